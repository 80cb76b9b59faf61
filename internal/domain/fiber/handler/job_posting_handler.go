package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/resumatch/resumatch/internal/engine"
	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/repository"
	"github.com/resumatch/resumatch/internal/taxonomy"
	"github.com/resumatch/resumatch/internal/util"
)

type JobPostingHandler struct {
	repo repository.JobPostingRepositoryInterface
	tax  *taxonomy.Taxonomy
}

func NewJobPostingHandler(repo repository.JobPostingRepositoryInterface, tax *taxonomy.Taxonomy) *JobPostingHandler {
	return &JobPostingHandler{repo: repo, tax: tax}
}

func (h *JobPostingHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/job-postings", h.Create)
	app.Get("/job-postings/:id", h.Get)
}

func (h *JobPostingHandler) Create(c *fiber.Ctx) error {
	posting, err := util.ParseJobPostingPayload(c.Body())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job posting payload",
		}, err)
	}
	fieldErrors := map[string]string{}
	if strings.TrimSpace(posting.Title) == "" {
		fieldErrors["title"] = "title is required"
	}
	if strings.TrimSpace(posting.Description) == "" {
		fieldErrors["description"] = "description is required"
	}
	if !model.ValidSeniority(posting.SeniorityLevel) {
		fieldErrors["seniority_level"] = fmt.Sprintf("unknown seniority level %q", posting.SeniorityLevel)
	}
	if len(fieldErrors) > 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job posting",
		}, util.NewFormError("invalid job posting", fieldErrors))
	}

	// postings that do not list skills get them mined from their text
	if len(posting.RequiredSkills) == 0 && len(posting.PreferredSkills) == 0 {
		posting.RequiredSkills, posting.PreferredSkills = engine.DeriveSkills(h.tax, posting)
	}

	if err := h.repo.Create(posting); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to store job posting",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create job posting",
		Data:    posting,
	})
}

func (h *JobPostingHandler) Get(c *fiber.Ctx) error {
	posting, err := h.repo.FindByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job posting not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get job posting",
		Data:    posting,
	})
}
