package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alex-pricope/simple-polls/storage"
	"github.com/alex-pricope/simple-polls/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionSearch(t *testing.T) {
	db := storagetest.NewDatabase(t)
	s := &storage.GormQuestionStorage{DB: db}
	owner := storagetest.CreateUser(t, db, "alice")

	storagetest.CreateQuestion(t, db, owner, "Is your CAT happy?")
	storagetest.CreateQuestion(t, db, owner, "Best concatenation operator")
	storagetest.CreateQuestion(t, db, owner, "Dogs or birds?")
	storagetest.CreateQuestion(t, db, owner, "100% sure_thing")

	t.Run("Happy path - case insensitive substring", func(t *testing.T) {
		res, err := s.Search(context.Background(), "cat")
		require.NoError(t, err)
		require.Len(t, res, 2)
		texts := []string{res[0].Text, res[1].Text}
		assert.ElementsMatch(t, []string{"Is your CAT happy?", "Best concatenation operator"}, texts)
	})

	t.Run("Unhappy path - injection attempt matches nothing", func(t *testing.T) {
		res, err := s.Search(context.Background(), "' OR '1'='1")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Wildcards are matched literally", func(t *testing.T) {
		res, err := s.Search(context.Background(), "%")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "100% sure_thing", res[0].Text)

		res, err = s.Search(context.Background(), "s_r")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Happy path - non-ASCII letters match across case", func(t *testing.T) {
		q := storagetest.CreateQuestion(t, db, owner, "Quelle ÉCOLE choisir?")

		res, err := s.Search(context.Background(), "école")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, q.ID, res[0].ID)
		assert.Equal(t, "Quelle ÉCOLE choisir?", res[0].Text)
	})
}

func TestSearchTextBackfill(t *testing.T) {
	db := storagetest.NewDatabase(t)
	s := &storage.GormQuestionStorage{DB: db}
	owner := storagetest.CreateUser(t, db, "alice")
	q := storagetest.CreateQuestion(t, db, owner, "Über alles?")

	// Rows from before the column existed have it empty.
	require.NoError(t, db.Model(&storage.Question{}).Where("id = ?", q.ID).UpdateColumn("search_text", "").Error)
	res, err := s.Search(context.Background(), "über")
	require.NoError(t, err)
	assert.Empty(t, res)

	require.NoError(t, storage.Migrate(db))
	res, err = s.Search(context.Background(), "über")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, q.ID, res[0].ID)
}

func TestQuestionLatest(t *testing.T) {
	db := storagetest.NewDatabase(t)
	s := &storage.GormQuestionStorage{DB: db}
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 7; i++ {
		q := &storage.Question{Text: "q", PubDate: now.Add(-time.Duration(7-i) * time.Minute)}
		require.NoError(t, s.Create(ctx, q))
	}
	future := &storage.Question{Text: "future", PubDate: now.Add(time.Hour)}
	require.NoError(t, s.Create(ctx, future))

	res, err := s.Latest(ctx, now, 5)
	require.NoError(t, err)
	require.Len(t, res, 5)
	for i := 1; i < len(res); i++ {
		assert.True(t, !res[i].PubDate.After(res[i-1].PubDate), "expected newest first")
	}
	for _, q := range res {
		assert.NotEqual(t, future.ID, q.ID, "future question must not be listed")
	}
}

func TestQuestionReplaceChoices(t *testing.T) {
	db := storagetest.NewDatabase(t)
	s := &storage.GormQuestionStorage{DB: db}
	votes := &storage.GormVoteStorage{DB: db}
	ctx := context.Background()

	owner := storagetest.CreateUser(t, db, "alice")
	voter := storagetest.CreateUser(t, db, "bob")
	q := storagetest.CreateQuestion(t, db, owner, "Old text", "A", "B")

	_, err := votes.Cast(ctx, &storage.Vote{UserID: voter.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID})
	require.NoError(t, err)

	updated, err := s.ReplaceChoices(ctx, q.ID, "New text", []*storage.Choice{
		{Text: "C", UserID: owner.ID},
		{Text: "D", UserID: owner.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "New text", updated.Text)
	require.Len(t, updated.Choices, 2)
	assert.Equal(t, "C", updated.Choices[0].Text)
	assert.Equal(t, 0, updated.Choices[0].Votes)
	assert.NotEqual(t, q.Choices[0].ID, updated.Choices[0].ID)

	var oldCount int64
	require.NoError(t, db.Model(&storage.Choice{}).Where("id IN ?", []uint{q.Choices[0].ID, q.Choices[1].ID}).Count(&oldCount).Error)
	assert.Zero(t, oldCount, "old choices must be gone")

	voted, err := votes.Exists(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.False(t, voted, "votes on replaced choices are discarded")

	found, err := s.Search(ctx, "NEW TEXT")
	require.NoError(t, err)
	require.Len(t, found, 1, "search follows the edited text")
	found, err = s.Search(ctx, "old")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = s.ReplaceChoices(ctx, 9999, "x", nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQuestionDelete(t *testing.T) {
	db := storagetest.NewDatabase(t)
	s := &storage.GormQuestionStorage{DB: db}
	votes := &storage.GormVoteStorage{DB: db}
	ctx := context.Background()

	owner := storagetest.CreateUser(t, db, "alice")
	q := storagetest.CreateQuestion(t, db, owner, "Doomed", "A")
	_, err := votes.Cast(ctx, &storage.Vote{UserID: owner.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, q.ID))

	_, err = s.Get(ctx, q.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	var choices, voteRows int64
	require.NoError(t, db.Model(&storage.Choice{}).Where("question_id = ?", q.ID).Count(&choices).Error)
	require.NoError(t, db.Model(&storage.Vote{}).Where("question_id = ?", q.ID).Count(&voteRows).Error)
	assert.Zero(t, choices)
	assert.Zero(t, voteRows)

	assert.ErrorIs(t, s.Delete(ctx, q.ID), storage.ErrNotFound)
}
