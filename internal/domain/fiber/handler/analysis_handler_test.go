package handler

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/resumatch/resumatch/internal/engine"
	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/taxonomy"
	"github.com/resumatch/resumatch/internal/usecase"
)

type memResumeRepo struct {
	records map[uuid.UUID]*model.ResumeProfile
}

func (m *memResumeRepo) Create(resume *model.ResumeProfile) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	m.records[resume.ID] = resume
	return nil
}

func (m *memResumeRepo) FindByID(id string) (*model.ResumeProfile, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	rec, ok := m.records[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

type memJobRepo struct {
	records map[uuid.UUID]*model.JobPosting
}

func (m *memJobRepo) Create(posting *model.JobPosting) error {
	if posting.ID == uuid.Nil {
		posting.ID = uuid.New()
	}
	m.records[posting.ID] = posting
	return nil
}

func (m *memJobRepo) FindByID(id string) (*model.JobPosting, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	rec, ok := m.records[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

type memAnalysisRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*model.AnalysisResult
}

func (m *memAnalysisRepo) Create(result *model.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *result
	m.records[result.ID] = &stored
	return nil
}

func (m *memAnalysisRepo) FindByID(id string) (*model.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	rec, ok := m.records[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *memAnalysisRepo) TransitionStatus(id string, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	rec, ok := m.records[parsed]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.Status = to
	return nil
}

func (m *memAnalysisRepo) CompleteFrom(result *model.AnalysisResult, from string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[result.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *result
	stored.ResumeID = rec.ResumeID
	stored.JobPostingID = rec.JobPostingID
	stored.CreatedAt = rec.CreatedAt
	m.records[result.ID] = &stored
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *memResumeRepo, *memJobRepo) {
	t.Helper()

	resumeRepo := &memResumeRepo{records: make(map[uuid.UUID]*model.ResumeProfile)}
	jobRepo := &memJobRepo{records: make(map[uuid.UUID]*model.JobPosting)}
	analysisRepo := &memAnalysisRepo{records: make(map[uuid.UUID]*model.AnalysisResult)}

	tax := taxonomy.Default()
	eng := engine.New(tax, engine.DefaultConfig())
	uc := usecase.NewAnalysisUsecase(analysisRepo, resumeRepo, jobRepo, eng, 5*time.Second, zap.NewNop())

	app := fiber.New()
	NewResumeHandler(resumeRepo, tax).RegisterRoutes(app)
	NewJobPostingHandler(jobRepo, tax).RegisterRoutes(app)
	NewAnalysisHandler(uc).RegisterRoutes(app)
	return app, resumeRepo, jobRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, gjson.Result) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, gjson.ParseBytes(raw)
}

func TestCreateResumeAndJobPosting(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/resumes",
		`{"full_name": "Jordan Reyes", "skills": ["Go", "PostgreSQL"]}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body.Raw)
	}
	if body.Get("data.id").String() == "" {
		t.Fatalf("created resume has no id: %s", body.Raw)
	}

	resp, body = doJSON(t, app, "POST", "/job-postings",
		`{"title": "Backend Engineer", "description": "Build Go services", "requirements": "Go and PostgreSQL required. Kubernetes is a plus.", "seniority_level": "mid"}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body.Raw)
	}

	// skills not listed explicitly get mined from the posting text
	required := body.Get("data.required_skills").Array()
	if len(required) == 0 {
		t.Fatalf("expected derived required skills, body = %s", body.Raw)
	}
	preferred := body.Get("data.preferred_skills").Array()
	if len(preferred) != 1 || preferred[0].String() != "kubernetes" {
		t.Fatalf("expected derived preferred skills, body = %s", body.Raw)
	}
}

func TestCreateResumeGroupsFlatSkills(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/resumes",
		`{"full_name": "Jordan Reyes", "skills": ["Go", "PostgreSQL", "Underwater Basket Weaving"]}`)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body.Raw)
	}

	entries := body.Get("data.skills").Array()
	if len(entries) != 3 {
		t.Fatalf("expected 3 category groups, body = %s", body.Raw)
	}
	if entries[0].Get("category").String() != "programming_languages" {
		t.Fatalf("first category = %q", entries[0].Get("category").String())
	}
	if entries[1].Get("category").String() != "databases" {
		t.Fatalf("second category = %q", entries[1].Get("category").String())
	}
	if entries[2].Get("category").String() != "other" {
		t.Fatalf("unknown terms should group under other, body = %s", body.Raw)
	}
}

func TestCreateResumeRejectsMissingName(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/resumes", `{"email": "x@example.com"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", resp.StatusCode)
	}
	if body.Get("details.full_name").String() == "" {
		t.Fatalf("expected a full_name field error, body = %s", body.Raw)
	}
}

func TestCreateJobPostingRejectsBadSeniority(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/job-postings",
		`{"title": "X", "description": "Y", "seniority_level": "rockstar"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", resp.StatusCode)
	}
	if body.Get("details.seniority_level").String() == "" {
		t.Fatalf("expected a seniority_level field error, body = %s", body.Raw)
	}
}

func TestStartAnalysisFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, resumeBody := doJSON(t, app, "POST", "/resumes",
		`{"full_name": "Jordan Reyes", "skills": ["Go", "PostgreSQL"]}`)
	_, jobBody := doJSON(t, app, "POST", "/job-postings",
		`{"title": "Backend Engineer", "description": "Build Go services", "required_skills": ["Go"]}`)

	resumeID := resumeBody.Get("data.id").String()
	jobID := jobBody.Get("data.id").String()

	resp, body := doJSON(t, app, "POST", "/analyses",
		`{"resume_id": "`+resumeID+`", "job_posting_id": "`+jobID+`"}`)
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body.Raw)
	}
	if got := body.Get("data.status").String(); got != model.StatusPending {
		t.Fatalf("status = %q, expected pending", got)
	}

	analysisID := body.Get("data.id").String()
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, body = doJSON(t, app, "GET", "/analyses/"+analysisID, "")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, body = %s", resp.StatusCode, body.Raw)
		}
		status := body.Get("data.status").String()
		if status == model.StatusCompleted {
			break
		}
		if status == model.StatusFailed {
			t.Fatalf("analysis failed: %s", body.Raw)
		}
		if time.Now().After(deadline) {
			t.Fatalf("analysis never completed: %s", body.Raw)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if score := body.Get("data.overall_score").Float(); score < 0 || score > 100 {
		t.Fatalf("overall score %v out of range", score)
	}
	if !body.Get("data.matched_skills").IsArray() {
		t.Fatalf("matched_skills missing: %s", body.Raw)
	}
}

func TestStartAnalysisValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/analyses", `{"resume_id": "", "job_posting_id": ""}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, expected 400 for empty ids", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/analyses",
		`{"resume_id": "`+uuid.NewString()+`", "job_posting_id": "`+uuid.NewString()+`"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, expected 400 for unknown records", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "GET", "/analyses/"+uuid.NewString(), "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, expected 404", resp.StatusCode)
	}
}
