package service_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/domain/points"
	"adelanta/internal/service"
	"adelanta/internal/utils/apierror"
)

type fakeLedger struct {
	applied   []points.Entry
	applyErr  error
	aggregate *entity.CompanyPoints
	txs       []*entity.PointTransaction
	findErr   error
}

func (f *fakeLedger) Apply(entry points.Entry) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, entry)
	return nil
}

func (f *fakeLedger) FindAggregate(companyID int64) (*entity.CompanyPoints, error) {
	return f.aggregate, f.findErr
}

func (f *fakeLedger) FindTransactions(companyID int64) ([]*entity.PointTransaction, error) {
	return f.txs, f.findErr
}

func int64Ptr(v int64) *int64 {
	return &v
}

func pointsAdmin() *entity.Employee {
	return &entity.Employee{
		ID:          1,
		CompanyID:   1,
		Permissions: entity.PermissionManagePoints,
	}
}

func newPointsService(ledger *fakeLedger) *service.PointsService {
	return service.NewPointsService(ledger, validator.New())
}

func TestApplyTransaction_HappyPath(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newPointsService(ledger)

	apierr := svc.ApplyTransaction(pointsAdmin(), &contract.PointTransactionRequest{
		Type:       "REWARD",
		Value:      100,
		ReceiverID: int64Ptr(2),
		CompanyID:  1,
	})

	require.Nil(t, apierr)
	require.Len(t, ledger.applied, 1)
	assert.Equal(t, entity.TransactionReward, ledger.applied[0].Type)
	assert.Equal(t, 100, ledger.applied[0].Value)
}

func TestApplyTransaction_RequiresManagePoints(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newPointsService(ledger)

	actor := pointsAdmin()
	actor.Permissions = 0

	apierr := svc.ApplyTransaction(actor, &contract.PointTransactionRequest{
		Type:       "REWARD",
		Value:      10,
		ReceiverID: int64Ptr(2),
		CompanyID:  1,
	})

	assert.Equal(t, apierror.MissingPermsError, apierr)
	assert.Empty(t, ledger.applied)
}

func TestApplyTransaction_AdministratorBypassesPerms(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newPointsService(ledger)

	actor := pointsAdmin()
	actor.Permissions = entity.PermissionAdministrator

	apierr := svc.ApplyTransaction(actor, &contract.PointTransactionRequest{
		Type:       "REWARD",
		Value:      10,
		ReceiverID: int64Ptr(2),
		CompanyID:  1,
	})

	assert.Nil(t, apierr)
}

func TestApplyTransaction_UnknownTypeIsFieldError(t *testing.T) {
	svc := newPointsService(&fakeLedger{})

	apierr := svc.ApplyTransaction(pointsAdmin(), &contract.PointTransactionRequest{
		Type:       "GIFT",
		Value:      10,
		ReceiverID: int64Ptr(2),
		CompanyID:  1,
	})

	se, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, se.Errors, "type")
}

func TestApplyTransaction_NegativeValueRejected(t *testing.T) {
	svc := newPointsService(&fakeLedger{})

	apierr := svc.ApplyTransaction(pointsAdmin(), &contract.PointTransactionRequest{
		Type:      "CONSUMPTION",
		Value:     -1,
		SenderID:  int64Ptr(2),
		CompanyID: 1,
	})

	se, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, se.Errors, "value")
}

func TestApplyTransaction_SameSenderAndReceiver(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newPointsService(ledger)

	apierr := svc.ApplyTransaction(pointsAdmin(), &contract.PointTransactionRequest{
		Type:       "TRANSFER",
		Value:      10,
		SenderID:   int64Ptr(2),
		ReceiverID: int64Ptr(2),
		CompanyID:  1,
	})

	se, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, se.Errors, "senderId")
	assert.Empty(t, ledger.applied, "invalid entries never reach the ledger")
}

func TestApplyTransaction_RejectsForeignCompany(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newPointsService(ledger)

	apierr := svc.ApplyTransaction(pointsAdmin(), &contract.PointTransactionRequest{
		Type:       "REWARD",
		Value:      100,
		ReceiverID: int64Ptr(2),
		CompanyID:  99,
	})

	assert.Equal(t, apierror.MissingPermsError, apierr)
	assert.Empty(t, ledger.applied, "entries for other tenants never reach the ledger")
}

func TestApplyTransaction_AdministratorCrossesCompanies(t *testing.T) {
	ledger := &fakeLedger{}
	svc := newPointsService(ledger)

	actor := pointsAdmin()
	actor.Permissions = entity.PermissionAdministrator

	apierr := svc.ApplyTransaction(actor, &contract.PointTransactionRequest{
		Type:       "REWARD",
		Value:      100,
		ReceiverID: int64Ptr(2),
		CompanyID:  99,
	})

	require.Nil(t, apierr)
	require.Len(t, ledger.applied, 1)
}

func TestApplyTransaction_MissingEmployeeIs404(t *testing.T) {
	svc := newPointsService(&fakeLedger{applyErr: points.ErrEmployeeNotFound})

	apierr := svc.ApplyTransaction(pointsAdmin(), &contract.PointTransactionRequest{
		Type:       "REWARD",
		Value:      10,
		ReceiverID: int64Ptr(404),
		CompanyID:  1,
	})

	assert.Equal(t, apierror.NotFoundError, apierr)
}

func TestApplyTransaction_StoreFailureIsOpaque(t *testing.T) {
	svc := newPointsService(&fakeLedger{applyErr: errors.New("disk on fire")})

	apierr := svc.ApplyTransaction(pointsAdmin(), &contract.PointTransactionRequest{
		Type:       "REWARD",
		Value:      10,
		ReceiverID: int64Ptr(2),
		CompanyID:  1,
	})

	assert.Equal(t, apierror.InternalServerError, apierr)
}

func TestGetCompanyBalance_DefaultsToZeroes(t *testing.T) {
	svc := newPointsService(&fakeLedger{aggregate: nil})

	actor := pointsAdmin()
	actor.CompanyID = 7

	resp, apierr := svc.GetCompanyBalance(actor, 7)

	require.Nil(t, apierr)
	assert.Equal(t, int64(7), resp.CompanyID)
	assert.Equal(t, int64(0), resp.CurrentBudget)
	assert.Equal(t, int64(0), resp.CirculatingPoints)
	assert.Equal(t, int64(0), resp.SpentPoints)
}

func TestGetCompanyBalance_RequiresManagePoints(t *testing.T) {
	svc := newPointsService(&fakeLedger{})

	actor := pointsAdmin()
	actor.Permissions = entity.PermissionManageBenefits

	_, apierr := svc.GetCompanyBalance(actor, 1)
	assert.Equal(t, apierror.MissingPermsError, apierr)
}

func TestGetCompanyBalance_RejectsForeignCompany(t *testing.T) {
	svc := newPointsService(&fakeLedger{})

	_, apierr := svc.GetCompanyBalance(pointsAdmin(), 99)
	assert.Equal(t, apierror.MissingPermsError, apierr)
}

func TestGetTransactions_RejectsForeignCompany(t *testing.T) {
	svc := newPointsService(&fakeLedger{})

	_, apierr := svc.GetTransactions(pointsAdmin(), 99)
	assert.Equal(t, apierror.MissingPermsError, apierr)
}

func TestGetTransactions(t *testing.T) {
	svc := newPointsService(&fakeLedger{
		txs: []*entity.PointTransaction{
			{ID: 2, Type: entity.TransactionReward, Value: 50, ReceiverID: int64Ptr(3), CompanyID: 1},
			{ID: 1, Type: entity.TransactionConsumption, Value: 20, SenderID: int64Ptr(3), CompanyID: 1},
		},
	})

	resp, apierr := svc.GetTransactions(pointsAdmin(), 1)

	require.Nil(t, apierr)
	require.Len(t, resp, 2)
	assert.Equal(t, "REWARD", resp[0].Type)
	assert.Equal(t, "CONSUMPTION", resp[1].Type)
}
