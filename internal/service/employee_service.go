package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	cognitoclient "adelanta/internal/infrastructure/aws/cognito"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type EmployeeRepository interface {
	FindByCompany(companyID int64) ([]*entity.Employee, error)
	FindByID(id int64) (*entity.Employee, error)
	FindWithContext(id int64) (*entity.Employee, error)
	FindActiveBySub(sub string) (*entity.Employee, error)
	ExistsByEmail(email string) (bool, error)
	Save(emp *entity.Employee) error
}

type CompanyRepository interface {
	FindByID(id int64) (*entity.Company, error)
}

type EmployeeService struct {
	EmployeeRepo EmployeeRepository
	CompanyRepo  CompanyRepository
	Cognito      cognitoclient.CognitoInterface
	Validate     *validator.Validate
}

func NewEmployeeService(employeeRepo EmployeeRepository, companyRepo CompanyRepository, cogClient cognitoclient.CognitoInterface, validate *validator.Validate) *EmployeeService {
	return &EmployeeService{
		EmployeeRepo: employeeRepo,
		CompanyRepo:  companyRepo,
		Cognito:      cogClient,
		Validate:     validate,
	}
}

func (s *EmployeeService) GetEmployees(actor *entity.Employee) ([]*contract.EmployeeResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageEmployees) {
		return nil, apierror.MissingPermsError
	}

	employees, err := s.EmployeeRepo.FindByCompany(actor.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch employees for company %d: %v", actor.CompanyID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = toEmployeeResponse(emp)
	}
	return resp, nil
}

func (s *EmployeeService) GetEmployee(actor *entity.Employee, id int64) (*contract.EmployeeResponse, apierror.ErrorResponse) {
	if id != actor.ID && !actor.Permissions.HasEffective(entity.PermissionManageEmployees) {
		return nil, apierror.MissingPermsError
	}

	emp, err := s.EmployeeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch employee %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if emp == nil {
		return nil, apierror.NotFoundError
	}
	return toEmployeeResponse(emp), nil
}

// CreateEmployee onboards a new employee: the identity lives in
// Cognito, the profile row here. Employees are never hard-deleted;
// offboarding is a status change.
func (s *EmployeeService) CreateEmployee(ctx context.Context, actor *entity.Employee, req *contract.CreateEmployeeRequest) (*contract.EmployeeResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageEmployees) {
		return nil, apierror.MissingPermsError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	company, err := s.CompanyRepo.FindByID(req.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch company %d: %v", req.CompanyID, err)
		return nil, apierror.InternalServerError
	}
	if company == nil {
		return nil, apierror.NewFieldError("companyId", "Unknown company")
	}
	if company.Status != entity.CompanyStatusActive {
		return nil, apierror.InactiveCompanyError
	}

	exists, err := s.EmployeeRepo.ExistsByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check employee email: %v", err)
		return nil, apierror.InternalServerError
	}
	if exists {
		return nil, apierror.IDPExistingEmailError
	}

	sub, err := s.Cognito.SignUp(ctx, &cognitoclient.SignupData{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, utils.MapCognitoError(err)
	}

	now := utils.NowUTC()
	emp := &entity.Employee{
		SubUUID:   sub,
		CompanyID: req.CompanyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Status:    entity.EmployeeStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.EmployeeRepo.Save(emp); err != nil {
		log.Errorf("failed to save employee: %v", err)
		return nil, apierror.InternalServerError
	}
	return toEmployeeResponse(emp), nil
}

// UpdateEmployee is the admin PATCH: status, permissions, ceilings.
// Administrators cannot be modified through the API.
func (s *EmployeeService) UpdateEmployee(actor *entity.Employee, id int64, req *contract.UpdateEmployeeRequest) (*contract.EmployeeResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageEmployees) {
		return nil, apierror.MissingPermsError
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	emp, err := s.EmployeeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch employee %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if emp == nil {
		return nil, apierror.NotFoundError
	}

	if emp.Permissions.Has(entity.PermissionAdministrator) && emp.ID != actor.ID {
		return nil, apierror.MissingPermsError
	}

	if req.Status != nil {
		emp.Status = entity.EmployeeStatus(*req.Status)
	}
	if req.Perms != nil {
		if !actor.Permissions.Has(entity.PermissionAdministrator) {
			return nil, apierror.MissingPermsError
		}
		emp.Permissions = entity.Permission(*req.Perms)
	}
	if req.AdvanceMaxAmount != nil {
		emp.AdvanceMaxAmount = *req.AdvanceMaxAmount
	}
	if req.AdvanceAvailableAmount != nil {
		emp.AdvanceAvailableAmount = *req.AdvanceAvailableAmount
	}
	if req.AdvanceCryptoAvailableAmount != nil {
		emp.AdvanceCryptoAvailableAmount = *req.AdvanceCryptoAvailableAmount
	}

	emp.UpdatedAt = utils.NowUTC()
	if err := s.EmployeeRepo.Save(emp); err != nil {
		log.Errorf("failed to update employee %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toEmployeeResponse(emp), nil
}

func (s *EmployeeService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	auth, err := s.Cognito.SignIn(ctx, &cognitoclient.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, utils.MapCognitoError(err)
	}

	return &contract.LoginResponse{
		AccessToken: auth.AccessToken,
		IDToken:     auth.IDToken,
	}, nil
}

func (s *EmployeeService) ConfirmSignup(ctx context.Context, req *contract.ConfirmSignupRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	err := s.Cognito.ConfirmAccount(ctx, &cognitoclient.Confirmation{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func (s *EmployeeService) ResendConfirmation(ctx context.Context, req *contract.ResendConfirmRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	if err := s.Cognito.ResendConfirmation(ctx, req.Email); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func toEmployeeResponse(emp *entity.Employee) *contract.EmployeeResponse {
	return &contract.EmployeeResponse{
		ID:                           emp.ID,
		CompanyID:                    emp.CompanyID,
		FirstName:                    emp.FirstName,
		LastName:                     emp.LastName,
		Email:                        emp.Email,
		Status:                       string(emp.Status),
		Perms:                        int64(emp.Permissions),
		AvailablePoints:              emp.AvailablePoints,
		AdvanceAvailableAmount:       emp.AdvanceAvailableAmount,
		AdvanceMaxAmount:             emp.AdvanceMaxAmount,
		AdvanceCryptoAvailableAmount: emp.AdvanceCryptoAvailableAmount,
		CreatedAt:                    utils.FormatEpoch(emp.CreatedAt),
		UpdatedAt:                    utils.FormatEpoch(emp.UpdatedAt),
	}
}
