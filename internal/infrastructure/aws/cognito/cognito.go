package cognitoclient

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// ErrChallengeRequired is returned by SignIn when Cognito answers with
// an auth challenge (NEW_PASSWORD_REQUIRED, MFA, ...) instead of
// tokens. The password flow cannot complete such sessions.
var ErrChallengeRequired = errors.New("cognito: authentication challenge required")

// SignupData is the default structure for all basic signup operations.
type SignupData struct {
	Email    string
	Password string
}

// Confirmation is the default structure for approving e-mail verification.
type Confirmation struct {
	Email string
	Code  string
}

// Credentials defines the standard structure for logging in to the application.
type Credentials struct {
	Email    string
	Password string
}

// AuthResult represents the response of a Cognito sign in approval.
type AuthResult struct {
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token"`
}

type CognitoInterface interface {
	SignUp(ctx context.Context, data *SignupData) (string, error)
	SignIn(ctx context.Context, creds *Credentials) (*AuthResult, error)
	ConfirmAccount(ctx context.Context, confirmation *Confirmation) error
	ResendConfirmation(ctx context.Context, email string) error
}

type cognitoClient struct {
	client      *cognito.Client
	appClientId string
}

func InitCognitoClient() (CognitoInterface, error) {
	region := os.Getenv("AWS_COGNITO_REGION")
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &cognitoClient{
		client:      cognito.NewFromConfig(cfg),
		appClientId: os.Getenv("AWS_COGNITO_CLIENT_ID"),
	}, nil
}

// SignUp creates a new user row on Cognito and returns its "sub" (the UUID)
func (c *cognitoClient) SignUp(ctx context.Context, data *SignupData) (string, error) {
	out, err := c.client.SignUp(ctx, &cognito.SignUpInput{
		ClientId: aws.String(c.appClientId),
		Username: aws.String(data.Email),
		Password: aws.String(data.Password),
		UserAttributes: []types.AttributeType{
			{
				Name:  aws.String("email"),
				Value: aws.String(data.Email),
			},
		},
	})
	if err != nil {
		return "", err
	}
	return *out.UserSub, nil
}

// SignIn signs the user in... pretty straightforward
func (c *cognitoClient) SignIn(ctx context.Context, creds *Credentials) (*AuthResult, error) {
	result, err := c.client.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": creds.Email,
			"PASSWORD": creds.Password,
		},
		ClientId: aws.String(c.appClientId),
	})
	if err != nil {
		return nil, err
	}
	if result.AuthenticationResult == nil {
		return nil, ErrChallengeRequired
	}
	return &AuthResult{
		IDToken:     *result.AuthenticationResult.IdToken,
		AccessToken: *result.AuthenticationResult.AccessToken,
	}, nil
}

// ConfirmAccount is used to verify the user's e-mail address
func (c *cognitoClient) ConfirmAccount(ctx context.Context, confirmation *Confirmation) error {
	_, err := c.client.ConfirmSignUp(ctx, &cognito.ConfirmSignUpInput{
		Username:         aws.String(confirmation.Email),
		ConfirmationCode: aws.String(confirmation.Code),
		ClientId:         aws.String(c.appClientId),
	})
	return err
}

// ResendConfirmation resends the verification code to the provided e-mail
func (c *cognitoClient) ResendConfirmation(ctx context.Context, email string) error {
	_, err := c.client.ResendConfirmationCode(ctx, &cognito.ResendConfirmationCodeInput{
		Username: aws.String(email),
		ClientId: aws.String(c.appClientId),
	})
	return err
}
