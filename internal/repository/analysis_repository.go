package repository

import (
	"errors"

	"github.com/resumatch/resumatch/internal/model"
	"gorm.io/gorm"
)

// ErrStaleStatus is returned when a guarded status transition finds the
// record no longer in the expected state (already terminal, or deleted
// mid-run).
var ErrStaleStatus = errors.New("analysis status changed concurrently")

type AnalysisRepositoryInterface interface {
	Create(result *model.AnalysisResult) error
	FindByID(id string) (*model.AnalysisResult, error)
	TransitionStatus(id string, from, to string) error
	CompleteFrom(result *model.AnalysisResult, from string) error
}

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db}
}

func (r *AnalysisRepository) Create(result *model.AnalysisResult) error {
	return r.db.Create(result).Error
}

func (r *AnalysisRepository) FindByID(id string) (*model.AnalysisResult, error) {
	var result model.AnalysisResult
	err := r.db.First(&result, "id = ?", id).Error
	return &result, err
}

// TransitionStatus moves the record from one status to another only if it
// is still in the expected one. Status transitions are monotonic; the
// WHERE clause is the compare-and-set that keeps them that way under
// concurrency.
func (r *AnalysisRepository) TransitionStatus(id string, from, to string) error {
	res := r.db.Model(&model.AnalysisResult{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

// CompleteFrom writes a terminal snapshot (completed or failed) guarded
// by the status the record must still hold. A record invalidated mid-run
// is left untouched and ErrStaleStatus is returned.
func (r *AnalysisRepository) CompleteFrom(result *model.AnalysisResult, from string) error {
	res := r.db.Model(&model.AnalysisResult{}).
		Where("id = ? AND status = ?", result.ID, from).
		Select("status", "error_message", "overall_score", "skills_score",
			"keywords_score", "experience_score", "education_score",
			"matched_skills", "missing_skills", "suggestions", "ats_issues",
			"processing_time_seconds", "analysis_algorithm_version",
			"nlp_model_version", "updated_at").
		Updates(result)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
