package repository

import (
	"errors"

	"gorm.io/gorm"

	"adelanta/internal/domain/entity"
)

type DefaultEmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *DefaultEmployeeRepository {
	return &DefaultEmployeeRepository{db: db}
}

func (r *DefaultEmployeeRepository) FindByCompany(companyID int64) ([]*entity.Employee, error) {
	var employees []*entity.Employee
	err := r.db.Where("company_id = ?", companyID).Order("last_name").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *DefaultEmployeeRepository) FindByID(id int64) (*entity.Employee, error) {
	var emp entity.Employee
	err := r.db.First(&emp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// FindWithContext loads the employee with everything the advance flow
// needs: company, bank account (+bank) and wallet (+network).
func (r *DefaultEmployeeRepository) FindWithContext(id int64) (*entity.Employee, error) {
	var emp entity.Employee
	err := r.db.
		Preload("Company").
		Preload("BankAccount.Bank").
		Preload("Wallet.Network").
		First(&emp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *DefaultEmployeeRepository) FindActiveBySub(sub string) (*entity.Employee, error) {
	var emp entity.Employee
	err := r.db.
		Preload("Company").
		Where("sub_uuid = ? AND status = ?", sub, entity.EmployeeStatusActive).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *DefaultEmployeeRepository) ExistsByEmail(email string) (bool, error) {
	var exists int
	err := r.db.
		Raw("SELECT EXISTS(SELECT 1 FROM employees WHERE email = ?)", email).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (r *DefaultEmployeeRepository) Save(emp *entity.Employee) error {
	return r.db.Omit("Company", "BankAccount", "Wallet").Save(emp).Error
}
