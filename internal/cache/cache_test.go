package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"quorum/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	require.NotNil(t, GetClient(), "miniredis should be reachable")
	t.Cleanup(func() {
		_ = client.Close()
		client = nil
	})
	return mr
}

func TestJSONRoundTrip(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	user := models.User{ID: 7, Username: "alice"}
	require.NoError(t, SetJSON(ctx, UserKey(7), user, UserTTL))

	var got models.User
	found, err := GetJSON(ctx, UserKey(7), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, user.Username, got.Username)

	found, err = GetJSON(ctx, UserKey(99), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideFetchesOnceThenServesFromCache(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *[]models.Question) func() error {
		return func() error {
			calls++
			*dest = []models.Question{{ID: 3, Text: "newest?"}, {ID: 2}, {ID: 1}}
			return nil
		}
	}

	var first []models.Question
	require.NoError(t, Aside(ctx, QuestionListKey, &first, QuestionListTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	require.Len(t, first, 3)

	var second []models.Question
	require.NoError(t, Aside(ctx, QuestionListKey, &second, QuestionListTTL, fetch(&second)))
	assert.Equal(t, 1, calls, "second read must be a cache hit")
	assert.Equal(t, first, second)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	withMiniredis(t)

	sentinel := errors.New("db down")
	var dest models.User
	err := Aside(context.Background(), UserKey(1), &dest, UserTTL, func() error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, QuestionListKey, []models.Question{{ID: 1}}, time.Minute))
	InvalidateQuestionList(ctx)
	assert.False(t, mr.Exists(QuestionListKey))

	require.NoError(t, SetJSON(ctx, UserKey(4), models.User{ID: 4}, time.Minute))
	InvalidateUser(ctx, 4)
	assert.False(t, mr.Exists(UserKey(4)))
}

func TestHelpersNoopWithoutClient(t *testing.T) {
	client = nil
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", "v", time.Minute))

	var dest string
	found, err := GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	calls := 0
	require.NoError(t, Aside(ctx, "k", &dest, time.Minute, func() error {
		calls++
		dest = "fetched"
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", dest)
}
