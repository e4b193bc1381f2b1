package repository

import (
	"errors"

	"gorm.io/gorm"

	"adelanta/internal/domain/entity"
)

type DefaultBenefitRepository struct {
	db *gorm.DB
}

func NewBenefitRepository(db *gorm.DB) *DefaultBenefitRepository {
	return &DefaultBenefitRepository{db: db}
}

// FindVisibleTo returns the company's own benefits plus the global ones.
func (r *DefaultBenefitRepository) FindVisibleTo(companyID int64) ([]*entity.Benefit, error) {
	var benefits []*entity.Benefit
	err := r.db.
		Where("company_id = ? OR company_id IS NULL", companyID).
		Order("name").
		Find(&benefits).Error
	if err != nil {
		return nil, err
	}
	return benefits, nil
}

func (r *DefaultBenefitRepository) FindByID(id int64) (*entity.Benefit, error) {
	var benefit entity.Benefit
	err := r.db.First(&benefit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &benefit, nil
}

func (r *DefaultBenefitRepository) Save(benefit *entity.Benefit) error {
	return r.db.Save(benefit).Error
}

func (r *DefaultBenefitRepository) Delete(benefit *entity.Benefit) error {
	return r.db.Delete(benefit).Error
}
