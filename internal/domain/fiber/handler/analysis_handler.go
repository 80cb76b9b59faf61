package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/resumatch/resumatch/internal/dto"
	"github.com/resumatch/resumatch/internal/middleware"
	"github.com/resumatch/resumatch/internal/usecase"
	"github.com/resumatch/resumatch/internal/util"
)

type AnalysisHandler struct {
	uc *usecase.AnalysisUsecase
}

func NewAnalysisHandler(uc *usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/analyses", middleware.RateLimiter(10, 10*time.Second), h.Start)
	app.Get("/analyses/:id", h.Result)
}

func (h *AnalysisHandler) Start(c *fiber.Ctx) error {
	var req dto.StartAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.ResumeID == "" || req.JobPostingID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume_id and job_posting_id are required",
		})
	}

	result, err := h.uc.Start(req.ResumeID, req.JobPostingID)
	if err != nil {
		var ve *usecase.ValidationError
		if errors.As(err, &ve) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: ve.Reason,
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to start analysis",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Analysis accepted",
		Data:    dto.NewAnalysisDTO(result),
	})
}

func (h *AnalysisHandler) Result(c *fiber.Ctx) error {
	result, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "analysis not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get analysis result",
		Data:    dto.NewAnalysisDTO(result),
	})
}
