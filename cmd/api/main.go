package main

import (
	"context"
	"os"

	"adelanta/internal/domain/policy"
	"adelanta/internal/domain/sqlite"
	"adelanta/internal/domain/sqlite/repository"
	handler2 "adelanta/internal/http/handler"
	authmw "adelanta/internal/http/middleware"
	cognitoclient "adelanta/internal/infrastructure/aws/cognito"
	"adelanta/internal/infrastructure/aws/storage"
	gateway "adelanta/internal/infrastructure/aws/websocket"
	"adelanta/internal/service"
	"adelanta/internal/service/jobs"
	"adelanta/internal/utils"
	"adelanta/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/adelanta/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	// Init SQLite
	db, err := sqlite.Init(os.Getenv("SQLITE_PATH"))
	if err != nil {
		panic(err)
	}

	// Cognito publishes the signing keys our auth middleware verifies with
	err = utils.InitJWKS(os.Getenv("AWS_COGNITO_REGION"), os.Getenv("AWS_COGNITO_POOL_ID"))
	if err != nil {
		panic(err)
	}

	// Init cognito client
	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		panic(err)
	}

	// Init S3 client
	s3Client, err := storage.NewStorageClient()
	if err != nil {
		panic(err)
	}

	// Init API Gateway management client (websocket pushes)
	gwClient, err := gateway.NewAWSGatewayClient(
		context.Background(),
		os.Getenv("AWS_GATEWAY_ENDPOINT"),
		os.Getenv("AWS_GATEWAY_REGION"),
	)
	if err != nil {
		panic(err)
	}

	// Gettings repos
	employeeRepo := repository.NewEmployeeRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	advanceRepo := repository.NewAdvanceRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	// Getting services
	notificationService := service.NewNotificationService(connRepo, gwClient)
	employeeService := service.NewEmployeeService(employeeRepo, companyRepo, cogClient, validate)
	pointsService := service.NewPointsService(pointsRepo, validate)
	advanceService := service.NewAdvanceService(advanceRepo, employeeRepo, policy.NewAdvancePolicy(), notificationService, validate)
	benefitService := service.NewBenefitService(benefitRepo, s3Client, validate)

	// Gettings handler
	employeeRoutes := handler2.NewEmployeeDefault(employeeService)
	pointsRoutes := handler2.NewPointsDefault(pointsService)
	advanceRoutes := handler2.NewAdvanceDefault(advanceService)
	benefitRoutes := handler2.NewBenefitDefault(benefitService)
	wsRoutes := handler2.NewWSDefault(notificationService)

	// Stale websocket connections are reaped in the background
	cleaner := jobs.NewConnectionCleaner(notificationService)
	go cleaner.Start(context.Background())

	authRequired := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{
		EmployeeRepo: employeeRepo,
	})

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("30M"))

	// Employees
	e.POST("/api/employees/login", employeeRoutes.Login)
	e.POST("/api/employees/confirms", employeeRoutes.ConfirmSignup)
	e.POST("/api/employees/confirms/resend", employeeRoutes.ResendConfirmation)
	e.GET("/api/employees", employeeRoutes.GetEmployees, authRequired)
	e.GET("/api/employees/:id", employeeRoutes.GetEmployee, authRequired)
	e.POST("/api/employees", employeeRoutes.CreateEmployee, authRequired)
	e.PATCH("/api/employees/:id", employeeRoutes.UpdateEmployee, authRequired)

	// Points
	e.POST("/api/points/transactions", pointsRoutes.CreateTransaction, authRequired)
	e.GET("/api/points/transactions", pointsRoutes.GetTransactions, authRequired)
	e.GET("/api/points/companies/:id", pointsRoutes.GetCompanyBalance, authRequired)

	// Advances
	e.POST("/api/advances/calculate", advanceRoutes.Calculate, authRequired)
	e.POST("/api/advances", advanceRoutes.Create, authRequired)
	e.PATCH("/api/advances/:id/status", advanceRoutes.UpdateStatus, authRequired)
	e.GET("/api/advances", advanceRoutes.GetAdvances, authRequired)
	e.GET("/api/advances/reasons", advanceRoutes.GetReasons, authRequired)
	e.GET("/api/advances/summary", advanceRoutes.GetMonthlySummary, authRequired)
	e.GET("/api/advances/:id", advanceRoutes.GetAdvance, authRequired)

	// Benefits
	e.GET("/api/benefits", benefitRoutes.GetBenefits, authRequired)
	e.POST("/api/benefits", benefitRoutes.CreateBenefit, authRequired)
	e.PATCH("/api/benefits/:id", benefitRoutes.UpdateBenefit, authRequired)
	e.DELETE("/api/benefits/:id", benefitRoutes.DeleteBenefit, authRequired)

	// API Gateway websocket lifecycle callbacks
	e.POST("/ws/connect", wsRoutes.HandleConnect, authRequired)
	e.POST("/ws/disconnect", wsRoutes.HandleDisconnect)
	e.POST("/ws/messages", wsRoutes.HandleMessage)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
