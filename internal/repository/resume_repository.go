package repository

import (
	"github.com/resumatch/resumatch/internal/model"
	"gorm.io/gorm"
)

type ResumeRepositoryInterface interface {
	Create(resume *model.ResumeProfile) error
	FindByID(id string) (*model.ResumeProfile, error)
}

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

func (r *ResumeRepository) Create(resume *model.ResumeProfile) error {
	return r.db.Create(resume).Error
}

func (r *ResumeRepository) FindByID(id string) (*model.ResumeProfile, error) {
	var resume model.ResumeProfile
	err := r.db.First(&resume, "id = ?", id).Error
	return &resume, err
}
