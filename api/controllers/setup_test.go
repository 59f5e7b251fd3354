package controllers

import (
	"encoding/json"
	testutils "github.com/alex-pricope/simple-polls/api/controllers/testing"
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/auth"
	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/alex-pricope/simple-polls/storage"
	"github.com/alex-pricope/simple-polls/storage/storagetest"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	logging.Log = logrus.New()
	logging.Log.SetOutput(io.Discard)

	db := storagetest.NewDatabase(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	questionStorage := &storage.GormQuestionStorage{DB: db}
	voteStorage := &storage.GormVoteStorage{DB: db}
	throttle := services.NewLoginThrottle(&storage.GormLoginAttemptStorage{DB: db}, 5, 5*time.Minute)
	accounts, err := services.NewAccountService(
		&storage.GormUserStorage{DB: db},
		&storage.RedisSessionStorage{Client: client},
		throttle,
		auth.NewTokenIssuer([]byte("test-secret"), time.Hour),
	)
	require.NoError(t, err)
	questions := services.NewQuestionService(questionStorage, &storage.GormChoiceStorage{DB: db}, voteStorage, services.DefaultPolicy())

	r := transport.NewRouter(gin.TestMode, nil)
	authMiddleware := transport.AuthMiddleware(accounts, "sessionid")
	NewQuestionController(questions).RegisterRoutes(r, authMiddleware)
	NewChoiceController(questions).RegisterRoutes(r, authMiddleware)
	NewVotingController(services.NewVotingService(questionStorage, voteStorage)).RegisterRoutes(r, authMiddleware)
	NewSearchController(services.NewSearchService(questionStorage)).RegisterRoutes(r, authMiddleware)
	NewAccountController(accounts, SessionCookie{Name: "sessionid"}).RegisterRoutes(r, authMiddleware)

	return &testApp{router: r, db: db}
}

// register creates an account through the API and returns its bearer headers.
func (a *testApp) register(t *testing.T, username string) map[string]string {
	t.Helper()
	res := testutils.PerformRequest(a.router, http.MethodPost, "/polls/register/", models.RegisterRequest{
		Username:  username,
		Password1: "correct-horse",
		Password2: "correct-horse",
	}, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var session models.SessionResponse
	decode(t, res, &session)
	return testutils.Bearer(session.Token)
}

func (a *testApp) createQuestion(t *testing.T, headers map[string]string, text string, choices ...string) models.QuestionResponse {
	t.Helper()
	res := testutils.PerformRequest(a.router, http.MethodPost, "/polls/add/", models.QuestionRequest{
		QuestionText: text,
		Choices:      choices,
	}, headers)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var q models.QuestionResponse
	decode(t, res, &q)
	return q
}

func decode(t *testing.T, res *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v), "body: %s", res.Body.String())
}
