package repository

import (
	"github.com/resumatch/resumatch/internal/model"
	"gorm.io/gorm"
)

type JobPostingRepositoryInterface interface {
	Create(posting *model.JobPosting) error
	FindByID(id string) (*model.JobPosting, error)
}

type JobPostingRepository struct {
	db *gorm.DB
}

func NewJobPostingRepository(db *gorm.DB) *JobPostingRepository {
	return &JobPostingRepository{db}
}

func (r *JobPostingRepository) Create(posting *model.JobPosting) error {
	return r.db.Create(posting).Error
}

func (r *JobPostingRepository) FindByID(id string) (*model.JobPosting, error) {
	var posting model.JobPosting
	err := r.db.First(&posting, "id = ?", id).Error
	return &posting, err
}
