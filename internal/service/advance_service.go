package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"adelanta/internal/contract"
	advancecalc "adelanta/internal/domain/advance"
	"adelanta/internal/domain/entity"
	"adelanta/internal/domain/policy"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type AdvanceRepository interface {
	Create(adv *entity.Advance, actor entity.AdvanceActor) error
	UpdateStatus(adv *entity.Advance, to entity.AdvanceStatus, actor entity.AdvanceActor) error
	FindByID(id int64) (*entity.Advance, error)
	FindByCompany(companyID int64) ([]*entity.Advance, error)
	FindByEmployee(employeeID int64) ([]*entity.Advance, error)
	FindReasons() ([]*entity.RequestReason, error)
	ReasonExists(id int64) (bool, error)
}

// AdvanceNotifier pushes advance lifecycle events to connected
// dashboards. Notification failures never fail the operation.
type AdvanceNotifier interface {
	AdvanceRequested(adv *contract.AdvanceResponse)
	AdvanceStatusChanged(employeeID int64, advanceID int64, status entity.AdvanceStatus)
}

type AdvanceService struct {
	AdvanceRepo  AdvanceRepository
	EmployeeRepo EmployeeRepository
	Policy       *policy.AdvancePolicy
	Notifier     AdvanceNotifier
	Validate     *validator.Validate
}

func NewAdvanceService(
	advanceRepo AdvanceRepository,
	employeeRepo EmployeeRepository,
	advancePolicy *policy.AdvancePolicy,
	notifier AdvanceNotifier,
	validate *validator.Validate,
) *AdvanceService {
	return &AdvanceService{
		AdvanceRepo:  advanceRepo,
		EmployeeRepo: employeeRepo,
		Policy:       advancePolicy,
		Notifier:     notifier,
		Validate:     validate,
	}
}

// Calculate produces the advisory quote for the confirmation screen.
// It is side-effect free; Create re-validates everything against fresh
// data before committing.
func (s *AdvanceService) Calculate(actor *entity.Employee, req *contract.AdvanceCalculationRequest) (*advancecalc.Quote, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	emp, apierr := s.loadRequestContext(actor)
	if apierr != nil {
		return nil, apierr
	}

	if apierr := s.checkReason(req.RequestReasonID); apierr != nil {
		return nil, apierr
	}

	quote, se := advancecalc.Calculate(advancecalc.Input{
		Employee:        emp,
		RequestedAmount: req.RequestedAmount,
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
	})
	if se != nil {
		return nil, se
	}
	return quote, nil
}

// Create submits the advance. The ceiling is re-validated here against
// a fresh read: the calculate step is advisory only and the window
// between the two belongs to whoever commits first.
func (s *AdvanceService) Create(actor *entity.Employee, req *contract.AdvanceCreateRequest) (*contract.AdvanceResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	emp, apierr := s.loadRequestContext(actor)
	if apierr != nil {
		return nil, apierr
	}

	if apierr := s.checkReason(req.RequestReasonID); apierr != nil {
		return nil, apierr
	}

	quote, se := advancecalc.Calculate(advancecalc.Input{
		Employee:        emp,
		RequestedAmount: req.RequestedAmount,
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
	})
	if se != nil {
		return nil, se
	}

	advanceType := entity.AdvanceType(req.Type)
	if advanceType == "" {
		advanceType = entity.AdvancePayroll
	}

	now := utils.NowUTC()
	adv := &entity.Advance{
		PublicID:                 uuid.NewString(),
		Type:                     advanceType,
		EmployeeID:               emp.ID,
		CompanyID:                emp.CompanyID,
		RequestedAmount:          quote.RequestedAmount,
		TotalAmount:              quote.TotalAmount,
		PaymentMethod:            entity.PaymentMethod(req.PaymentMethod),
		Status:                   entity.AdvanceRequested,
		RequestReasonID:          req.RequestReasonID,
		RequestReasonDescription: req.RequestReasonDescription,
		CreatedAt:                now,
		UpdatedAt:                now,
		Taxes:                    toTaxRows(quote.Taxes),
	}

	if err := s.AdvanceRepo.Create(adv, entity.ActorEmployee); err != nil {
		log.Errorf("failed to create advance for employee %d: %v", emp.ID, err)
		return nil, apierror.InternalServerError
	}

	resp := toAdvanceResponse(adv, true)
	if s.Notifier != nil {
		go s.Notifier.AdvanceRequested(resp)
	}
	return resp, nil
}

// UpdateStatus moves the advance through the status machine. The
// policy decides who may perform which transition; every transition
// appends an actor-stamped history row.
func (s *AdvanceService) UpdateStatus(actor *entity.Employee, advanceID int64, req *contract.AdvanceStatusRequest) (*contract.AdvanceResponse, apierror.ErrorResponse) {
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	adv, err := s.AdvanceRepo.FindByID(advanceID)
	if err != nil {
		log.Errorf("failed to fetch advance %d: %v", advanceID, err)
		return nil, apierror.InternalServerError
	}
	if adv == nil {
		return nil, apierror.NotFoundError
	}

	to := entity.AdvanceStatus(req.Status)
	if apierr := s.Policy.CanTransition(actor, adv, to); apierr != nil {
		return nil, apierr
	}

	actorKind := s.Policy.ActorKind(actor, adv)
	if err := s.AdvanceRepo.UpdateStatus(adv, to, actorKind); err != nil {
		log.Errorf("failed to move advance %d to %s: %v", advanceID, to, err)
		return nil, apierror.InternalServerError
	}

	if s.Notifier != nil {
		go s.Notifier.AdvanceStatusChanged(adv.EmployeeID, adv.ID, to)
	}
	return toAdvanceResponse(adv, false), nil
}

func (s *AdvanceService) GetAdvance(actor *entity.Employee, advanceID int64) (*contract.AdvanceResponse, apierror.ErrorResponse) {
	adv, err := s.AdvanceRepo.FindByID(advanceID)
	if err != nil {
		log.Errorf("failed to fetch advance %d: %v", advanceID, err)
		return nil, apierror.InternalServerError
	}
	if adv == nil {
		return nil, apierror.NotFoundError
	}

	if adv.EmployeeID != actor.ID && !actor.Permissions.HasEffective(entity.PermissionManageAdvances) {
		return nil, apierror.MissingPermsError
	}
	return toAdvanceResponse(adv, true), nil
}

// GetAdvances lists the actor's own requests, or the whole company's
// when the actor manages advances.
func (s *AdvanceService) GetAdvances(actor *entity.Employee) ([]*contract.AdvanceResponse, apierror.ErrorResponse) {
	var advances []*entity.Advance
	var err error

	if actor.Permissions.HasEffective(entity.PermissionManageAdvances) {
		advances, err = s.AdvanceRepo.FindByCompany(actor.CompanyID)
	} else {
		advances, err = s.AdvanceRepo.FindByEmployee(actor.ID)
	}
	if err != nil {
		log.Errorf("failed to fetch advances: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.AdvanceResponse, len(advances))
	for i, adv := range advances {
		resp[i] = toAdvanceResponse(adv, false)
	}
	return resp, nil
}

func (s *AdvanceService) GetReasons() ([]*contract.RequestReasonResponse, apierror.ErrorResponse) {
	reasons, err := s.AdvanceRepo.FindReasons()
	if err != nil {
		log.Errorf("failed to fetch request reasons: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.RequestReasonResponse, len(reasons))
	for i, reason := range reasons {
		resp[i] = &contract.RequestReasonResponse{ID: reason.ID, Name: reason.Name}
	}
	return resp, nil
}

// GetMonthlySummary buckets the company's advances by creation month
// for the payroll dashboard.
func (s *AdvanceService) GetMonthlySummary(actor *entity.Employee, year int) ([]advancecalc.MonthTotal, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageAdvances) {
		return nil, apierror.MissingPermsError
	}

	advances, err := s.AdvanceRepo.FindByCompany(actor.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch advances for summary: %v", err)
		return nil, apierror.InternalServerError
	}
	return advancecalc.MonthlySummary(advances, year), nil
}

// loadRequestContext re-reads the actor with company and payout
// destinations and applies the policy gate for the advance flow.
func (s *AdvanceService) loadRequestContext(actor *entity.Employee) (*entity.Employee, apierror.ErrorResponse) {
	emp, err := s.EmployeeRepo.FindWithContext(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch employee %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}
	if emp == nil {
		return nil, apierror.NotFoundError
	}

	if apierr := s.Policy.CanRequest(emp); apierr != nil {
		return nil, apierr
	}
	return emp, nil
}

func (s *AdvanceService) checkReason(reasonID int64) apierror.ErrorResponse {
	exists, err := s.AdvanceRepo.ReasonExists(reasonID)
	if err != nil {
		log.Errorf("failed to check request reason %d: %v", reasonID, err)
		return apierror.InternalServerError
	}
	if !exists {
		return apierror.NewFieldError("requestReasonId", "Unknown request reason")
	}
	return nil
}

func toTaxRows(taxes []advancecalc.TaxItem) []entity.AdvanceTax {
	rows := make([]entity.AdvanceTax, len(taxes))
	for i, tax := range taxes {
		rows[i] = entity.AdvanceTax{
			Position:    i,
			Name:        tax.Name,
			Value:       tax.Value,
			Description: tax.Description,
		}
	}
	return rows
}

func toAdvanceResponse(adv *entity.Advance, detailed bool) *contract.AdvanceResponse {
	resp := &contract.AdvanceResponse{
		ID:                       adv.ID,
		PublicID:                 adv.PublicID,
		Type:                     string(adv.Type),
		EmployeeID:               adv.EmployeeID,
		CompanyID:                adv.CompanyID,
		RequestedAmount:          adv.RequestedAmount,
		TotalAmount:              adv.TotalAmount,
		PaymentMethod:            string(adv.PaymentMethod),
		Status:                   string(adv.Status),
		RequestReasonDescription: adv.RequestReasonDescription,
		CreatedAt:                utils.FormatEpoch(adv.CreatedAt),
		UpdatedAt:                utils.FormatEpoch(adv.UpdatedAt),
	}

	if !detailed {
		return resp
	}

	resp.RequestReason = adv.Reason.Name
	resp.Taxes = make([]advancecalc.TaxItem, len(adv.Taxes))
	for i, tax := range adv.Taxes {
		resp.Taxes[i] = advancecalc.TaxItem{
			Name:        tax.Name,
			Value:       tax.Value,
			Description: tax.Description,
		}
	}

	resp.History = make([]contract.AdvanceHistoryResponse, len(adv.History))
	for i, h := range adv.History {
		resp.History[i] = contract.AdvanceHistoryResponse{
			ToStatus:  string(h.ToStatus),
			Actor:     string(h.Actor),
			CreatedAt: utils.FormatEpoch(h.CreatedAt),
		}
	}
	return resp
}
