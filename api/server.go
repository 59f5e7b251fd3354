package api

import (
	"context"
	"fmt"
	"github.com/alex-pricope/simple-polls/api/controllers"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/auth"
	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/alex-pricope/simple-polls/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"os"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(s.config.Mode, s.config.AllowOrigins)

	// Create storage
	db, err := storage.OpenDatabase(s.config.Driver, s.config.DSN)
	if err != nil {
		panic("failed to open database: " + err.Error())
	}
	if err := storage.Migrate(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	questionStorage := &storage.GormQuestionStorage{DB: db}
	choiceStorage := &storage.GormChoiceStorage{DB: db}
	voteStorage := &storage.GormVoteStorage{DB: db}
	userStorage := &storage.GormUserStorage{DB: db}
	sessionStorage := &storage.RedisSessionStorage{Client: storage.MustRedis(s.config.RedisURL)}
	attemptStorage := s.loginAttemptStorage(db)

	// Create services
	policy := services.Policy{MaxChoices: s.config.MaxChoices, IndexSize: s.config.IndexSize}
	questions := services.NewQuestionService(questionStorage, choiceStorage, voteStorage, policy)
	voting := services.NewVotingService(questionStorage, voteStorage)
	search := services.NewSearchService(questionStorage)
	throttle := services.NewLoginThrottle(attemptStorage, s.config.MaxFailures, s.config.Window)
	accounts, err := services.NewAccountService(userStorage, sessionStorage, throttle,
		auth.NewTokenIssuer([]byte(s.config.JWTSecret), s.config.TokenTTL))
	if err != nil {
		panic("failed to create account service: " + err.Error())
	}

	//Register controllers
	authMiddleware := transport.AuthMiddleware(accounts, s.config.CookieName)
	controllers.NewQuestionController(questions).RegisterRoutes(r, authMiddleware)
	controllers.NewChoiceController(questions).RegisterRoutes(r, authMiddleware)
	controllers.NewVotingController(voting).RegisterRoutes(r, authMiddleware)
	controllers.NewSearchController(search).RegisterRoutes(r, authMiddleware)
	controllers.NewAccountController(accounts, controllers.SessionCookie{
		Name:   s.config.CookieName,
		Secure: s.config.SecureCookie,
	}).RegisterRoutes(r, authMiddleware)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// loginAttemptStorage picks the throttle backend: the SQL database or a DynamoDB table.
func (s *Server) loginAttemptStorage(db *gorm.DB) storage.LoginAttemptStorage {
	if s.config.LoginAttemptsBackend != "dynamo" {
		return &storage.GormLoginAttemptStorage{DB: db}
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}
	return &storage.DynamoLoginAttemptStorage{
		Client:    dynamodb.NewFromConfig(cfg),
		TableName: s.config.TableNameLoginAttempts,
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
