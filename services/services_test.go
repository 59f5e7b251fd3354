package services

import (
	"context"
	"testing"
	"time"

	"github.com/alex-pricope/simple-polls/auth"
	"github.com/alex-pricope/simple-polls/storage"
	"github.com/alex-pricope/simple-polls/storage/storagetest"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	redis     *miniredis.Miniredis
	questions *QuestionService
	voting    *VotingService
	search    *SearchService
	throttle  *LoginThrottle
	accounts  *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storagetest.NewDatabase(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	questionStorage := &storage.GormQuestionStorage{DB: db}
	voteStorage := &storage.GormVoteStorage{DB: db}
	throttle := NewLoginThrottle(&storage.GormLoginAttemptStorage{DB: db}, 5, 5*time.Minute)

	accounts, err := NewAccountService(
		&storage.GormUserStorage{DB: db},
		&storage.RedisSessionStorage{Client: client},
		throttle,
		auth.NewTokenIssuer([]byte("test-secret"), time.Hour),
	)
	require.NoError(t, err)

	return &fixture{
		db:        db,
		redis:     mr,
		questions: NewQuestionService(questionStorage, &storage.GormChoiceStorage{DB: db}, voteStorage, DefaultPolicy()),
		voting:    NewVotingService(questionStorage, voteStorage),
		search:    NewSearchService(questionStorage),
		throttle:  throttle,
		accounts:  accounts,
	}
}

// user inserts a user row and returns the identity acting as them.
func (f *fixture) user(t *testing.T, username string) Identity {
	t.Helper()
	u := storagetest.CreateUser(t, f.db, username)
	return Identity{UserID: u.ID, Username: u.Username, TokenID: username + "-token", ExpiresAt: time.Now().Add(time.Hour)}
}

func (f *fixture) tallies(t *testing.T, questionID uint) []int {
	t.Helper()
	var choices []storage.Choice
	require.NoError(t, f.db.Where("question_id = ?", questionID).Order("id").Find(&choices).Error)
	votes := make([]int, 0, len(choices))
	for _, c := range choices {
		votes = append(votes, c.Votes)
	}
	return votes
}

var ctx = context.Background()
