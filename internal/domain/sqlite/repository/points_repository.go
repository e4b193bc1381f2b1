package repository

import (
	"errors"

	"gorm.io/gorm"

	"adelanta/internal/domain/entity"
	"adelanta/internal/domain/points"
	"adelanta/internal/utils"
)

type DefaultPointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *DefaultPointsRepository {
	return &DefaultPointsRepository{db: db}
}

// Apply runs one ledger entry: subject balance mutation, aggregate
// upsert and audit-row append commit together or not at all.
//
// The aggregate row is created zero-valued when the company has none
// yet, so the first TRANSFER/REWARD seeds currentBudget and
// circulatingPoints with the transaction's value.
func (r *DefaultPointsRepository) Apply(entry points.Entry) error {
	subjectID, ok := entry.SubjectID()
	if !ok {
		return errors.New("repository: ledger entry has no subject employee")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var emp entity.Employee
		err := tx.First(&emp, subjectID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return points.ErrEmployeeNotFound
		}
		if err != nil {
			return err
		}

		// The subject must belong to the company whose books the entry
		// mutates; an employee of another tenant does not exist here.
		if emp.CompanyID != entry.CompanyID {
			return points.ErrEmployeeNotFound
		}

		agg, err := loadOrCreatePoints(tx, entry.CompanyID)
		if err != nil {
			return err
		}

		audit, err := points.Apply(entry, &emp, agg)
		if err != nil {
			return err
		}

		now := utils.NowUTC()
		emp.UpdatedAt = now
		agg.UpdatedAt = now
		audit.CreatedAt = now

		if err := tx.Omit("Company", "BankAccount", "Wallet").Save(&emp).Error; err != nil {
			return err
		}
		if err := tx.Save(agg).Error; err != nil {
			return err
		}
		return tx.Create(&audit).Error
	})
}

func (r *DefaultPointsRepository) FindAggregate(companyID int64) (*entity.CompanyPoints, error) {
	var agg entity.CompanyPoints
	err := r.db.Where("company_id = ?", companyID).First(&agg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *DefaultPointsRepository) FindTransactions(companyID int64) ([]*entity.PointTransaction, error) {
	var txs []*entity.PointTransaction
	err := r.db.
		Where("company_id = ?", companyID).
		Order("created_at DESC, id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *DefaultPointsRepository) CountTransactions(companyID int64) (int64, error) {
	var count int64
	err := r.db.Model(&entity.PointTransaction{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func loadOrCreatePoints(tx *gorm.DB, companyID int64) (*entity.CompanyPoints, error) {
	var agg entity.CompanyPoints
	err := tx.Where("company_id = ?", companyID).First(&agg).Error
	if err == nil {
		return &agg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	agg = entity.CompanyPoints{CompanyID: companyID, UpdatedAt: utils.NowUTC()}
	if err := tx.Create(&agg).Error; err != nil {
		return nil, err
	}
	return &agg, nil
}
