package repository

import (
	"errors"

	"gorm.io/gorm"

	"adelanta/internal/domain/entity"
	"adelanta/internal/utils"
)

type DefaultAdvanceRepository struct {
	db *gorm.DB
}

func NewAdvanceRepository(db *gorm.DB) *DefaultAdvanceRepository {
	return &DefaultAdvanceRepository{db: db}
}

// Create persists the advance with its tax rows, the initial history
// entry and the hold on the employee's per-method available amount, in
// one transaction. The advance must carry its Taxes preassembled and
// its Status set to REQUESTED. On return adv carries its Reason and the
// freshly written history row, so callers can render it without a
// second fetch.
func (r *DefaultAdvanceRepository) Create(adv *entity.Advance, actor entity.AdvanceActor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var emp entity.Employee
		if err := tx.First(&emp, adv.EmployeeID).Error; err != nil {
			return err
		}

		holdAmount(&emp, adv)
		emp.UpdatedAt = utils.NowUTC()
		if err := tx.Omit("Company", "BankAccount", "Wallet").Save(&emp).Error; err != nil {
			return err
		}

		if err := tx.Omit("Employee", "Reason", "History").Create(adv).Error; err != nil {
			return err
		}

		if err := tx.First(&adv.Reason, adv.RequestReasonID).Error; err != nil {
			return err
		}

		history := entity.AdvanceHistory{
			AdvanceID: adv.ID,
			ToStatus:  adv.Status,
			Actor:     actor,
			CreatedAt: adv.CreatedAt,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		adv.History = append(adv.History, history)
		return nil
	})
}

// UpdateStatus moves the advance to its new status and appends the
// history row. A transition into DENIED or CANCELLED releases the held
// amount back to the employee in the same transaction.
func (r *DefaultAdvanceRepository) UpdateStatus(adv *entity.Advance, to entity.AdvanceStatus, actor entity.AdvanceActor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := utils.NowUTC()

		adv.Status = to
		adv.UpdatedAt = now
		err := tx.Omit("Employee", "Reason", "Taxes", "History").Save(adv).Error
		if err != nil {
			return err
		}

		if to == entity.AdvanceDenied || to == entity.AdvanceCancelled {
			var emp entity.Employee
			if err := tx.First(&emp, adv.EmployeeID).Error; err != nil {
				return err
			}
			releaseAmount(&emp, adv)
			emp.UpdatedAt = now
			if err := tx.Omit("Company", "BankAccount", "Wallet").Save(&emp).Error; err != nil {
				return err
			}
		}

		history := entity.AdvanceHistory{
			AdvanceID: adv.ID,
			ToStatus:  to,
			Actor:     actor,
			CreatedAt: now,
		}
		return tx.Create(&history).Error
	})
}

func (r *DefaultAdvanceRepository) FindByID(id int64) (*entity.Advance, error) {
	var adv entity.Advance
	err := r.db.
		Preload("Taxes", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Reason").
		First(&adv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &adv, nil
}

func (r *DefaultAdvanceRepository) FindByCompany(companyID int64) ([]*entity.Advance, error) {
	var advances []*entity.Advance
	err := r.db.
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&advances).Error
	if err != nil {
		return nil, err
	}
	return advances, nil
}

func (r *DefaultAdvanceRepository) FindByEmployee(employeeID int64) ([]*entity.Advance, error) {
	var advances []*entity.Advance
	err := r.db.
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&advances).Error
	if err != nil {
		return nil, err
	}
	return advances, nil
}

func (r *DefaultAdvanceRepository) FindReasons() ([]*entity.RequestReason, error) {
	var reasons []*entity.RequestReason
	err := r.db.Order("name").Find(&reasons).Error
	if err != nil {
		return nil, err
	}
	return reasons, nil
}

func (r *DefaultAdvanceRepository) ReasonExists(id int64) (bool, error) {
	var exists int
	err := r.db.
		Raw("SELECT EXISTS(SELECT 1 FROM request_reasons WHERE id = ?)", id).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

// holdAmount decrements the ceiling the advance was requested against.
func holdAmount(emp *entity.Employee, adv *entity.Advance) {
	switch adv.PaymentMethod {
	case entity.PaymentWallet:
		emp.AdvanceCryptoAvailableAmount = emp.AdvanceCryptoAvailableAmount.Sub(adv.RequestedAmount)
	default:
		emp.AdvanceAvailableAmount = emp.AdvanceAvailableAmount.Sub(adv.RequestedAmount)
	}
}

func releaseAmount(emp *entity.Employee, adv *entity.Advance) {
	switch adv.PaymentMethod {
	case entity.PaymentWallet:
		emp.AdvanceCryptoAvailableAmount = emp.AdvanceCryptoAvailableAmount.Add(adv.RequestedAmount)
	default:
		emp.AdvanceAvailableAmount = emp.AdvanceAvailableAmount.Add(adv.RequestedAmount)
	}
}
