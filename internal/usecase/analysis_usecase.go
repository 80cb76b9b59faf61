package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/resumatch/resumatch/internal/engine"
	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/repository"
)

// ValidationError marks input problems detected before an analysis is
// created: missing referenced records or structurally invalid ones. No
// analysis record exists when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// AnalysisUsecase orchestrates the analysis lifecycle:
// pending -> processing -> completed | failed. It owns the per-identity
// in-flight guard and the run timeout; the scoring itself lives in the
// engine.
type AnalysisUsecase struct {
	analysisRepo repository.AnalysisRepositoryInterface
	resumeRepo   repository.ResumeRepositoryInterface
	jobRepo      repository.JobPostingRepositoryInterface
	engine       *engine.Engine
	timeout      time.Duration
	logger       *zap.Logger

	mu       sync.Mutex
	inflight map[string]*model.AnalysisResult
}

func NewAnalysisUsecase(
	analysisRepo repository.AnalysisRepositoryInterface,
	resumeRepo repository.ResumeRepositoryInterface,
	jobRepo repository.JobPostingRepositoryInterface,
	eng *engine.Engine,
	timeout time.Duration,
	logger *zap.Logger,
) *AnalysisUsecase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AnalysisUsecase{
		analysisRepo: analysisRepo,
		resumeRepo:   resumeRepo,
		jobRepo:      jobRepo,
		engine:       eng,
		timeout:      timeout,
		logger:       logger,
		inflight:     make(map[string]*model.AnalysisResult),
	}
}

// Start validates both referenced records, creates a pending result and
// kicks off the run in the background. A second request for the same
// (resume, posting) pair while a run is still in flight returns the
// existing record instead of starting a competing writer.
func (uc *AnalysisUsecase) Start(resumeID, jobPostingID string) (*model.AnalysisResult, error) {
	resume, err := uc.resumeRepo.FindByID(resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Reason: "resume not found"}
		}
		return nil, fmt.Errorf("load resume: %w", err)
	}
	posting, err := uc.jobRepo.FindByID(jobPostingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Reason: "job posting not found"}
		}
		return nil, fmt.Errorf("load job posting: %w", err)
	}

	if err := validateResume(resume); err != nil {
		return nil, err
	}
	if err := validatePosting(posting); err != nil {
		return nil, err
	}

	key := resume.ID.String() + ":" + posting.ID.String()

	// reserve the identity first; the insert happens outside the lock so
	// a slow one cannot stall unrelated callers
	uc.mu.Lock()
	if existing, ok := uc.inflight[key]; ok {
		uc.mu.Unlock()
		if current, err := uc.analysisRepo.FindByID(existing.ID.String()); err == nil {
			return current, nil
		}
		// row not visible yet; the reserved pending snapshot is current
		snapshot := *existing
		return &snapshot, nil
	}
	result := &model.AnalysisResult{
		ID:           uuid.New(),
		ResumeID:     resume.ID,
		JobPostingID: posting.ID,
		Status:       model.StatusPending,
	}
	reserved := *result
	uc.inflight[key] = &reserved
	uc.mu.Unlock()

	if err := uc.analysisRepo.Create(result); err != nil {
		uc.mu.Lock()
		delete(uc.inflight, key)
		uc.mu.Unlock()
		return nil, fmt.Errorf("create analysis: %w", err)
	}

	go uc.process(key, result.ID, resume, posting)

	return result, nil
}

// Get returns the current snapshot of an analysis; safe to poll.
func (uc *AnalysisUsecase) Get(id string) (*model.AnalysisResult, error) {
	return uc.analysisRepo.FindByID(id)
}

func (uc *AnalysisUsecase) process(key string, id uuid.UUID, resume *model.ResumeProfile, posting *model.JobPosting) {
	defer func() {
		uc.mu.Lock()
		delete(uc.inflight, key)
		uc.mu.Unlock()
	}()
	defer func() {
		if r := recover(); r != nil {
			uc.fail(id, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := uc.analysisRepo.TransitionStatus(id.String(), model.StatusPending, model.StatusProcessing); err != nil {
		uc.logger.Warn("analysis not started",
			zap.String("analysis_id", id.String()),
			zap.Error(err),
		)
		return
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), uc.timeout)
	defer cancel()

	type outcome struct {
		report *engine.Report
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		report, err := uc.engine.Analyze(ctx, resume, posting)
		done <- outcome{report, err}
	}()

	var report *engine.Report
	select {
	case <-ctx.Done():
		uc.fail(id, fmt.Sprintf("analysis timed out after %s", uc.timeout))
		return
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				uc.fail(id, fmt.Sprintf("analysis timed out after %s", uc.timeout))
			} else {
				uc.fail(id, out.err.Error())
			}
			return
		}
		report = out.report
	}

	result := &model.AnalysisResult{
		ID:                       id,
		Status:                   model.StatusCompleted,
		OverallScore:             report.OverallScore,
		SkillsScore:              report.SkillsScore,
		KeywordsScore:            report.KeywordsScore,
		ExperienceScore:          report.ExperienceScore,
		EducationScore:           report.EducationScore,
		MatchedSkills:            report.MatchedSkills,
		MissingSkills:            report.MissingSkills,
		Suggestions:              report.Suggestions,
		ATSIssues:                report.ATSIssues,
		ProcessingTimeSeconds:    time.Since(start).Seconds(),
		AnalysisAlgorithmVersion: engine.AlgorithmVersion,
		NLPModelVersion:          engine.NLPModelVersion,
	}

	if err := uc.analysisRepo.CompleteFrom(result, model.StatusProcessing); err != nil {
		uc.logger.Warn("completed analysis not stored",
			zap.String("analysis_id", id.String()),
			zap.Error(err),
		)
		return
	}

	uc.logger.Info("analysis completed",
		zap.String("analysis_id", id.String()),
		zap.Float64("overall_score", report.OverallScore),
		zap.Duration("took", time.Since(start)),
	)
}

func (uc *AnalysisUsecase) fail(id uuid.UUID, reason string) {
	msg := reason
	result := &model.AnalysisResult{
		ID:           id,
		Status:       model.StatusFailed,
		ErrorMessage: &msg,
	}
	if err := uc.analysisRepo.CompleteFrom(result, model.StatusProcessing); err != nil {
		uc.logger.Warn("failed analysis not stored",
			zap.String("analysis_id", id.String()),
			zap.Error(err),
		)
		return
	}
	uc.logger.Warn("analysis failed",
		zap.String("analysis_id", id.String()),
		zap.String("reason", reason),
	)
}

func validateResume(resume *model.ResumeProfile) error {
	if strings.TrimSpace(resume.FullName) == "" {
		return &ValidationError{Reason: "resume has no name"}
	}
	return nil
}

func validatePosting(posting *model.JobPosting) error {
	if strings.TrimSpace(posting.Title) == "" {
		return &ValidationError{Reason: "job posting has no title"}
	}
	if strings.TrimSpace(posting.Description) == "" {
		return &ValidationError{Reason: "job posting has no description"}
	}
	if !model.ValidSeniority(posting.SeniorityLevel) {
		return &ValidationError{Reason: fmt.Sprintf("unknown seniority level %q", posting.SeniorityLevel)}
	}
	return nil
}
