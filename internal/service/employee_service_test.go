package service_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	cognitoclient "adelanta/internal/infrastructure/aws/cognito"
	"adelanta/internal/service"
	"adelanta/internal/utils/apierror"
	"adelanta/internal/utils/validators"
)

type fakeCognito struct {
	signups    []*cognitoclient.SignupData
	signUpErr  error
	signInErr  error
	authResult *cognitoclient.AuthResult
}

func (f *fakeCognito) SignUp(ctx context.Context, data *cognitoclient.SignupData) (string, error) {
	if f.signUpErr != nil {
		return "", f.signUpErr
	}
	f.signups = append(f.signups, data)
	return "sub-new", nil
}

func (f *fakeCognito) SignIn(ctx context.Context, creds *cognitoclient.Credentials) (*cognitoclient.AuthResult, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.authResult, nil
}

func (f *fakeCognito) ConfirmAccount(ctx context.Context, confirmation *cognitoclient.Confirmation) error {
	return nil
}

func (f *fakeCognito) ResendConfirmation(ctx context.Context, email string) error {
	return nil
}

type fakeCompanyRepo struct {
	byID map[int64]*entity.Company
}

func (f *fakeCompanyRepo) FindByID(id int64) (*entity.Company, error) {
	return f.byID[id], nil
}

type fakeOnboardEmployeeRepo struct {
	fakeEmployeeRepo
	saved       []*entity.Employee
	emailExists bool
}

func (f *fakeOnboardEmployeeRepo) ExistsByEmail(email string) (bool, error) {
	return f.emailExists, nil
}

func (f *fakeOnboardEmployeeRepo) Save(emp *entity.Employee) error {
	f.saved = append(f.saved, emp)
	return nil
}

func employeeAdmin() *entity.Employee {
	return &entity.Employee{
		ID:          1,
		CompanyID:   1,
		Permissions: entity.PermissionManageEmployees,
	}
}

func newEmployeeValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("hasupper", validators.HasUpper))
	require.NoError(t, v.RegisterValidation("haslower", validators.HasLower))
	require.NoError(t, v.RegisterValidation("hasdigit", validators.HasDigit))
	require.NoError(t, v.RegisterValidation("hasspecial", validators.HasSpecial))
	require.NoError(t, v.RegisterValidation("nospaces", validators.NoWhiteSpaces))
	return v
}

func activeCompanies() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: map[int64]*entity.Company{
		1: {ID: 1, Status: entity.CompanyStatusActive},
		2: {ID: 2, Status: entity.CompanyStatusInactive},
	}}
}

func createReq() *contract.CreateEmployeeRequest {
	return &contract.CreateEmployeeRequest{
		CompanyID: 1,
		FirstName: "Ana",
		LastName:  "Torres",
		Email:     "ana@acme.test",
		Password:  "Sup3r#Secret",
	}
}

func TestCreateEmployee(t *testing.T) {
	repo := &fakeOnboardEmployeeRepo{}
	cog := &fakeCognito{}
	svc := service.NewEmployeeService(repo, activeCompanies(), cog, newEmployeeValidator(t))

	resp, apierr := svc.CreateEmployee(context.Background(), employeeAdmin(), createReq())

	require.Nil(t, apierr)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "sub-new", repo.saved[0].SubUUID)
	assert.Equal(t, entity.EmployeeStatusActive, repo.saved[0].Status)
	assert.Equal(t, "ana@acme.test", resp.Email)
	require.Len(t, cog.signups, 1)
}

func TestCreateEmployee_RequiresManageEmployees(t *testing.T) {
	repo := &fakeOnboardEmployeeRepo{}
	svc := service.NewEmployeeService(repo, activeCompanies(), &fakeCognito{}, newEmployeeValidator(t))

	actor := employeeAdmin()
	actor.Permissions = 0

	_, apierr := svc.CreateEmployee(context.Background(), actor, createReq())
	assert.Equal(t, apierror.MissingPermsError, apierr)
	assert.Empty(t, repo.saved)
}

func TestCreateEmployee_UnknownCompany(t *testing.T) {
	svc := service.NewEmployeeService(&fakeOnboardEmployeeRepo{}, activeCompanies(), &fakeCognito{}, newEmployeeValidator(t))

	req := createReq()
	req.CompanyID = 99

	_, apierr := svc.CreateEmployee(context.Background(), employeeAdmin(), req)
	se, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, se.Errors, "companyId")
}

func TestCreateEmployee_InactiveCompany(t *testing.T) {
	svc := service.NewEmployeeService(&fakeOnboardEmployeeRepo{}, activeCompanies(), &fakeCognito{}, newEmployeeValidator(t))

	req := createReq()
	req.CompanyID = 2

	_, apierr := svc.CreateEmployee(context.Background(), employeeAdmin(), req)
	assert.Equal(t, apierror.InactiveCompanyError, apierr)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	repo := &fakeOnboardEmployeeRepo{emailExists: true}
	cog := &fakeCognito{}
	svc := service.NewEmployeeService(repo, activeCompanies(), cog, newEmployeeValidator(t))

	_, apierr := svc.CreateEmployee(context.Background(), employeeAdmin(), createReq())
	assert.Equal(t, apierror.IDPExistingEmailError, apierr)
	assert.Empty(t, cog.signups, "rejected before reaching the identity provider")
}

func TestCreateEmployee_WeakPassword(t *testing.T) {
	svc := service.NewEmployeeService(&fakeOnboardEmployeeRepo{}, activeCompanies(), &fakeCognito{}, newEmployeeValidator(t))

	req := createReq()
	req.Password = "alllowercase"

	_, apierr := svc.CreateEmployee(context.Background(), employeeAdmin(), req)
	se, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Contains(t, se.Errors, "password")
}

func TestUpdateEmployee_AdministratorImmunity(t *testing.T) {
	target := &entity.Employee{ID: 2, CompanyID: 1, Permissions: entity.PermissionAdministrator}
	repo := &fakeOnboardEmployeeRepo{
		fakeEmployeeRepo: fakeEmployeeRepo{byID: map[int64]*entity.Employee{2: target}},
	}
	svc := service.NewEmployeeService(repo, activeCompanies(), &fakeCognito{}, newEmployeeValidator(t))

	status := "INACTIVE"
	_, apierr := svc.UpdateEmployee(employeeAdmin(), 2, &contract.UpdateEmployeeRequest{Status: &status})
	assert.Equal(t, apierror.MissingPermsError, apierr)
}

func TestUpdateEmployee_PermsRequireAdministrator(t *testing.T) {
	target := &entity.Employee{ID: 2, CompanyID: 1}
	repo := &fakeOnboardEmployeeRepo{
		fakeEmployeeRepo: fakeEmployeeRepo{byID: map[int64]*entity.Employee{2: target}},
	}
	svc := service.NewEmployeeService(repo, activeCompanies(), &fakeCognito{}, newEmployeeValidator(t))

	perms := int64(entity.PermissionManagePoints)
	_, apierr := svc.UpdateEmployee(employeeAdmin(), 2, &contract.UpdateEmployeeRequest{Perms: &perms})
	assert.Equal(t, apierror.MissingPermsError, apierr)

	admin := employeeAdmin()
	admin.Permissions = entity.PermissionAdministrator
	resp, apierr := svc.UpdateEmployee(admin, 2, &contract.UpdateEmployeeRequest{Perms: &perms})
	require.Nil(t, apierr)
	assert.Equal(t, perms, resp.Perms)
}

func TestUpdateEmployee_StatusChange(t *testing.T) {
	target := &entity.Employee{ID: 2, CompanyID: 1, Status: entity.EmployeeStatusActive}
	repo := &fakeOnboardEmployeeRepo{
		fakeEmployeeRepo: fakeEmployeeRepo{byID: map[int64]*entity.Employee{2: target}},
	}
	svc := service.NewEmployeeService(repo, activeCompanies(), &fakeCognito{}, newEmployeeValidator(t))

	status := "INACTIVE"
	resp, apierr := svc.UpdateEmployee(employeeAdmin(), 2, &contract.UpdateEmployeeRequest{Status: &status})
	require.Nil(t, apierr)
	assert.Equal(t, "INACTIVE", resp.Status)
	require.Len(t, repo.saved, 1)
}

func TestLogin(t *testing.T) {
	cog := &fakeCognito{authResult: &cognitoclient.AuthResult{
		AccessToken: "access",
		IDToken:     "id",
	}}
	svc := service.NewEmployeeService(&fakeOnboardEmployeeRepo{}, activeCompanies(), cog, newEmployeeValidator(t))

	resp, apierr := svc.Login(context.Background(), &contract.LoginRequest{
		Email:    "ana@acme.test",
		Password: "Sup3r#Secret",
	})

	require.Nil(t, apierr)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "id", resp.IDToken)
}

func TestLogin_ChallengeRequired(t *testing.T) {
	cog := &fakeCognito{signInErr: cognitoclient.ErrChallengeRequired}
	svc := service.NewEmployeeService(&fakeOnboardEmployeeRepo{}, activeCompanies(), cog, newEmployeeValidator(t))

	_, apierr := svc.Login(context.Background(), &contract.LoginRequest{
		Email:    "ana@acme.test",
		Password: "Sup3r#Secret",
	})

	require.NotNil(t, apierr)
	assert.Equal(t, apierror.IDPChallengeRequiredError, apierr)
}
