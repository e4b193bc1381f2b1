package repository_test

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbsqlite "adelanta/internal/domain/sqlite"
	"adelanta/internal/domain/sqlite/repository"

	"adelanta/internal/domain/entity"
	"adelanta/internal/domain/points"
	"adelanta/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbsqlite.Migrate(db))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, balance int) *entity.Employee {
	now := utils.NowUTC()
	company := &entity.Company{
		Name:      "Acme",
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(company).Error)

	emp := &entity.Employee{
		SubUUID:         "sub-1",
		CompanyID:       company.ID,
		FirstName:       "Ana",
		LastName:        "Torres",
		Email:           "ana@acme.test",
		Status:          entity.EmployeeStatusActive,
		AvailablePoints: balance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, db.Omit("Company", "BankAccount", "Wallet").Create(emp).Error)
	return emp
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestPointsRepository_FirstRewardSeedsAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPointsRepository(db)
	emp := seedEmployee(t, db, 0)

	err := repo.Apply(points.Entry{
		Type:       entity.TransactionReward,
		Value:      100,
		ReceiverID: int64Ptr(emp.ID),
		CompanyID:  emp.CompanyID,
	})
	require.NoError(t, err)

	agg, err := repo.FindAggregate(emp.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, int64(100), agg.CurrentBudget)
	assert.Equal(t, int64(100), agg.CirculatingPoints)
	assert.Equal(t, int64(0), agg.SpentPoints)

	var fresh entity.Employee
	require.NoError(t, db.First(&fresh, emp.ID).Error)
	assert.Equal(t, 100, fresh.AvailablePoints)

	count, err := repo.CountTransactions(emp.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPointsRepository_ConsumptionUpdatesAllThree(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPointsRepository(db)
	emp := seedEmployee(t, db, 0)

	require.NoError(t, repo.Apply(points.Entry{
		Type:       entity.TransactionReward,
		Value:      100,
		ReceiverID: int64Ptr(emp.ID),
		CompanyID:  emp.CompanyID,
	}))

	require.NoError(t, repo.Apply(points.Entry{
		Type:      entity.TransactionConsumption,
		Value:     30,
		SenderID:  int64Ptr(emp.ID),
		CompanyID: emp.CompanyID,
	}))

	var fresh entity.Employee
	require.NoError(t, db.First(&fresh, emp.ID).Error)
	assert.Equal(t, 70, fresh.AvailablePoints)

	agg, err := repo.FindAggregate(emp.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, int64(100), agg.CurrentBudget)
	assert.Equal(t, int64(70), agg.CirculatingPoints)
	assert.Equal(t, int64(30), agg.SpentPoints)

	txs, err := repo.FindTransactions(emp.CompanyID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestPointsRepository_MissingEmployee(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPointsRepository(db)

	err := repo.Apply(points.Entry{
		Type:       entity.TransactionReward,
		Value:      10,
		ReceiverID: int64Ptr(404),
		CompanyID:  1,
	})

	assert.ErrorIs(t, err, points.ErrEmployeeNotFound)
}

func TestPointsRepository_SubjectMustBelongToCompany(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPointsRepository(db)
	emp := seedEmployee(t, db, 0)

	now := utils.NowUTC()
	rival := &entity.Company{
		Name:      "Globex",
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(rival).Error)

	err := repo.Apply(points.Entry{
		Type:       entity.TransactionReward,
		Value:      100,
		ReceiverID: int64Ptr(emp.ID),
		CompanyID:  rival.ID,
	})
	assert.ErrorIs(t, err, points.ErrEmployeeNotFound)

	var fresh entity.Employee
	require.NoError(t, db.First(&fresh, emp.ID).Error)
	assert.Equal(t, 0, fresh.AvailablePoints, "no points may land through another company's books")

	agg, aggErr := repo.FindAggregate(rival.ID)
	require.NoError(t, aggErr)
	assert.Nil(t, agg, "the other company's aggregate must stay untouched")

	count, countErr := repo.CountTransactions(rival.ID)
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), count)
}

func TestPointsRepository_AuditFailureRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPointsRepository(db)
	emp := seedEmployee(t, db, 0)

	require.NoError(t, repo.Apply(points.Entry{
		Type:       entity.TransactionReward,
		Value:      50,
		ReceiverID: int64Ptr(emp.ID),
		CompanyID:  emp.CompanyID,
	}))

	// Force the audit-row insert to fail so the surrounding transaction
	// must roll the balance and aggregate writes back.
	auditErr := errors.New("audit insert rejected")
	err := db.Callback().Create().Before("gorm:create").Register("fail_audit_insert", func(d *gorm.DB) {
		if d.Statement.Table == "point_transactions" {
			_ = d.AddError(auditErr)
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove("fail_audit_insert")
	})

	err = repo.Apply(points.Entry{
		Type:       entity.TransactionReward,
		Value:      25,
		ReceiverID: int64Ptr(emp.ID),
		CompanyID:  emp.CompanyID,
	})
	require.Error(t, err)

	var fresh entity.Employee
	require.NoError(t, db.First(&fresh, emp.ID).Error)
	assert.Equal(t, 50, fresh.AvailablePoints, "balance write must not survive the rollback")

	agg, aggErr := repo.FindAggregate(emp.CompanyID)
	require.NoError(t, aggErr)
	require.NotNil(t, agg)
	assert.Equal(t, int64(50), agg.CurrentBudget)
	assert.Equal(t, int64(50), agg.CirculatingPoints)

	count, countErr := repo.CountTransactions(emp.CompanyID)
	require.NoError(t, countErr)
	assert.Equal(t, int64(1), count, "no audit row for the failed operation")
}

func TestPointsRepository_FindAggregateMissingIsNil(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPointsRepository(db)

	agg, err := repo.FindAggregate(42)
	require.NoError(t, err)
	assert.Nil(t, agg)
}
