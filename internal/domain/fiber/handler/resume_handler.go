package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/repository"
	"github.com/resumatch/resumatch/internal/taxonomy"
	"github.com/resumatch/resumatch/internal/util"
)

type ResumeHandler struct {
	repo repository.ResumeRepositoryInterface
	tax  *taxonomy.Taxonomy
}

func NewResumeHandler(repo repository.ResumeRepositoryInterface, tax *taxonomy.Taxonomy) *ResumeHandler {
	return &ResumeHandler{repo: repo, tax: tax}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/resumes", h.Create)
	app.Get("/resumes/:id", h.Get)
}

func (h *ResumeHandler) Create(c *fiber.Ctx) error {
	resume, err := util.ParseResumePayload(c.Body())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume payload",
		}, err)
	}
	if strings.TrimSpace(resume.FullName) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume",
		}, util.NewFormError("invalid resume", map[string]string{
			"full_name": "full_name is required",
		}))
	}

	// flat skill lists get grouped under dictionary categories
	if len(resume.Skills) == 1 && resume.Skills[0].Category == "" {
		resume.Skills = groupSkills(h.tax, resume.Skills[0].Items)
	}

	if err := h.repo.Create(resume); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to store resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create resume",
		Data:    resume,
	})
}

// groupSkills organizes a flat skill list into dictionary categories,
// preserving item order. Terms the dictionary does not know land under
// "other".
func groupSkills(tax *taxonomy.Taxonomy, items []string) model.SkillEntries {
	var order []string
	grouped := make(map[string][]string)
	for _, item := range items {
		category, ok := tax.Category(item)
		if !ok {
			category = "other"
		}
		if _, seen := grouped[category]; !seen {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], item)
	}

	entries := make(model.SkillEntries, 0, len(order))
	for _, category := range order {
		entries = append(entries, model.SkillEntry{Category: category, Items: grouped[category]})
	}
	return entries
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	resume, err := h.repo.FindByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "resume not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get resume",
		Data:    resume,
	})
}
