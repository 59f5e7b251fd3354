package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVote(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	q, err := f.questions.CreateQuestion(ctx, alice, "Pick one", []string{"A", "B"})
	require.NoError(t, err)
	other, err := f.questions.CreateQuestion(ctx, alice, "Other", []string{"X"})
	require.NoError(t, err)

	t.Run("Unhappy path - anonymous caller", func(t *testing.T) {
		_, err := f.voting.CastVote(ctx, Identity{}, q.ID, q.Choices[0].ID)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Unhappy path - missing question", func(t *testing.T) {
		_, err := f.voting.CastVote(ctx, bob, 9999, q.Choices[0].ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unhappy path - no choice selected", func(t *testing.T) {
		_, err := f.voting.CastVote(ctx, bob, q.ID, 0)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "choice", verr.Field)
	})

	t.Run("Unhappy path - choice of another question", func(t *testing.T) {
		_, err := f.voting.CastVote(ctx, bob, q.ID, other.Choices[0].ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []int{0, 0}, f.tallies(t, q.ID))
	})

	t.Run("Happy path - vote counted", func(t *testing.T) {
		res, err := f.voting.CastVote(ctx, bob, q.ID, q.Choices[1].ID)
		require.NoError(t, err)
		assert.Equal(t, q.ID, res.QuestionID)
		assert.Equal(t, q.Choices[1].ID, res.ChoiceID)
		assert.Equal(t, 1, res.Votes)

		detail, err := f.questions.GetQuestion(ctx, bob, q.ID)
		require.NoError(t, err)
		assert.True(t, detail.HasVoted)
	})

	t.Run("Unhappy path - second vote rejected, tallies unchanged", func(t *testing.T) {
		_, err := f.voting.CastVote(ctx, bob, q.ID, q.Choices[0].ID)
		assert.ErrorIs(t, err, ErrAlreadyVoted)
		assert.Equal(t, []int{0, 1}, f.tallies(t, q.ID))
	})

	t.Run("Happy path - owner may vote on their own question", func(t *testing.T) {
		_, err := f.voting.CastVote(ctx, alice, q.ID, q.Choices[0].ID)
		require.NoError(t, err)

		results, err := f.questions.Results(ctx, bob, q.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, results.Question.TotalVotes())
	})
}

func TestCastVoteConcurrentSubmissions(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	q, err := f.questions.CreateQuestion(ctx, alice, "Race", []string{"A", "B"})
	require.NoError(t, err)

	const attempts = 6
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.voting.CastVote(ctx, bob, q.ID, q.Choices[i%2].ID)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded, rejected := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyVoted):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)

	total := 0
	for _, v := range f.tallies(t, q.ID) {
		total += v
	}
	assert.Equal(t, 1, total)
}
