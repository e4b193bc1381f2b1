package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/domain/points"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

// PointsLedger is the atomic store behind the points service. Apply
// commits the balance mutation, aggregate upsert and audit row as one
// unit or not at all.
type PointsLedger interface {
	Apply(entry points.Entry) error
	FindAggregate(companyID int64) (*entity.CompanyPoints, error)
	FindTransactions(companyID int64) ([]*entity.PointTransaction, error)
}

type PointsService struct {
	Ledger   PointsLedger
	Validate *validator.Validate
}

func NewPointsService(ledger PointsLedger, validate *validator.Validate) *PointsService {
	return &PointsService{
		Ledger:   ledger,
		Validate: validate,
	}
}

// checkCompanyScope keeps points operations inside the actor's own
// company. Only platform administrators may reach another tenant.
func checkCompanyScope(actor *entity.Employee, companyID int64) apierror.ErrorResponse {
	if companyID == actor.CompanyID || actor.Permissions.Has(entity.PermissionAdministrator) {
		return nil
	}
	return apierror.MissingPermsError
}

// ApplyTransaction validates and applies one ledger operation.
// Validation problems come back field-keyed; a missing subject
// employee is a not-found failure; anything else is logged and
// surfaced as an opaque server error with no partial state left.
func (s *PointsService) ApplyTransaction(actor *entity.Employee, req *contract.PointTransactionRequest) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(entity.PermissionManagePoints) {
		return apierror.MissingPermsError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}
	if scoperr := checkCompanyScope(actor, req.CompanyID); scoperr != nil {
		return scoperr
	}

	entry := points.Entry{
		Type:       entity.TransactionType(req.Type),
		Value:      req.Value,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		CompanyID:  req.CompanyID,
	}
	if se := entry.Validate(); se != nil {
		return se
	}

	err := s.Ledger.Apply(entry)
	if errors.Is(err, points.ErrEmployeeNotFound) {
		return apierror.NotFoundError
	}
	if err != nil {
		log.Errorf("failed to apply %s transaction for company %d: %v", entry.Type, entry.CompanyID, err)
		return apierror.InternalServerError
	}
	return nil
}

// GetCompanyBalance returns the aggregate counters for the dashboard.
// Companies that never received points report all zeroes rather than
// a not-found error.
func (s *PointsService) GetCompanyBalance(actor *entity.Employee, companyID int64) (*contract.CompanyPointsResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManagePoints) {
		return nil, apierror.MissingPermsError
	}
	if scoperr := checkCompanyScope(actor, companyID); scoperr != nil {
		return nil, scoperr
	}

	agg, err := s.Ledger.FindAggregate(companyID)
	if err != nil {
		log.Errorf("failed to fetch points aggregate for company %d: %v", companyID, err)
		return nil, apierror.InternalServerError
	}

	if agg == nil {
		agg = &entity.CompanyPoints{CompanyID: companyID}
	}
	return toCompanyPointsResponse(agg), nil
}

func (s *PointsService) GetTransactions(actor *entity.Employee, companyID int64) ([]*contract.PointTransactionResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManagePoints) {
		return nil, apierror.MissingPermsError
	}
	if scoperr := checkCompanyScope(actor, companyID); scoperr != nil {
		return nil, scoperr
	}

	txs, err := s.Ledger.FindTransactions(companyID)
	if err != nil {
		log.Errorf("failed to fetch point transactions for company %d: %v", companyID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.PointTransactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toPointTransactionResponse(tx)
	}
	return resp, nil
}

func toPointTransactionResponse(tx *entity.PointTransaction) *contract.PointTransactionResponse {
	return &contract.PointTransactionResponse{
		ID:         tx.ID,
		Type:       string(tx.Type),
		Value:      tx.Value,
		SenderID:   tx.SenderID,
		ReceiverID: tx.ReceiverID,
		CompanyID:  tx.CompanyID,
		CreatedAt:  utils.FormatEpoch(tx.CreatedAt),
	}
}

func toCompanyPointsResponse(agg *entity.CompanyPoints) *contract.CompanyPointsResponse {
	return &contract.CompanyPointsResponse{
		CompanyID:         agg.CompanyID,
		CurrentBudget:     agg.CurrentBudget,
		CirculatingPoints: agg.CirculatingPoints,
		SpentPoints:       agg.SpentPoints,
		UpdatedAt:         utils.FormatEpoch(agg.UpdatedAt),
	}
}
