package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func reflectionAt(docID string, composite float64, accepted bool, tier types.AccessTier, at time.Time) *types.Reflection {
	return &types.Reflection{
		ID:         uuid.NewString(),
		DocumentID: docID,
		UserID:     "user-1",
		Text:       "reflection text",
		WordCount:  60,
		Composite:  composite,
		Accepted:   accepted,
		Tier:       tier,
		CreatedAt:  at,
	}
}

func TestLatestAcceptedEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.LatestAccepted(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLatestAcceptedSkipsDenied(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	accepted := reflectionAt("doc-1", 7.5, true, types.TierStandard, base)
	require.NoError(t, s.SaveReflection(ctx, accepted))
	// A later denied reflection must not change the projection.
	denied := reflectionAt("doc-1", 2.5, false, types.TierNone, base.Add(time.Minute))
	require.NoError(t, s.SaveReflection(ctx, denied))

	got, err := s.LatestAccepted(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, accepted.ID, got.ID)
	assert.Equal(t, types.TierStandard, got.Tier)
	assert.InDelta(t, 7.5, got.Composite, 1e-9)
}

func TestLatestAcceptedPicksMostRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	first := reflectionAt("doc-1", 5.5, true, types.TierBasic, base)
	second := reflectionAt("doc-1", 8.2, true, types.TierAdvanced, base.Add(time.Minute))
	require.NoError(t, s.SaveReflection(ctx, first))
	require.NoError(t, s.SaveReflection(ctx, second))

	got, err := s.LatestAccepted(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, types.TierAdvanced, got.Tier)
}

func TestLatestAcceptedScopedToDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveReflection(ctx, reflectionAt("doc-1", 7.0, true, types.TierStandard, time.Now())))

	got, err := s.LatestAccepted(ctx, "doc-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAppendAndReadTurns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	userTurn := types.ConversationTurn{
		ID:         uuid.NewString(),
		DocumentID: "doc-1",
		Role:       types.RoleUser,
		Content:    "How do I start?",
		CreatedAt:  base,
	}
	assistantTurn := types.ConversationTurn{
		ID:           uuid.NewString(),
		DocumentID:   "doc-1",
		Role:         types.RoleAssistant,
		Content:      "What do you think your reader needs first?",
		QuestionType: types.QuestionAnalytical,
		CreatedAt:    base.Add(time.Second),
	}
	require.NoError(t, s.AppendTurns(ctx, userTurn, assistantTurn))

	turns, err := s.Turns(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, types.RoleUser, turns[0].Role)
	assert.Equal(t, types.RoleAssistant, turns[1].Role)
	assert.Equal(t, types.QuestionAnalytical, turns[1].QuestionType)
}

func TestAppendTurnsEmptyNoop(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AppendTurns(context.Background()))
}

func TestTurnsOrderedChronologically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now()

	var want []string
	for i := 0; i < 5; i++ {
		turn := types.ConversationTurn{
			ID:         uuid.NewString(),
			DocumentID: "doc-1",
			Role:       types.RoleUser,
			Content:    string(rune('a' + i)),
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		want = append(want, turn.Content)
		require.NoError(t, s.AppendTurns(ctx, turn))
	}

	turns, err := s.Turns(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, turns, 5)
	for i, turn := range turns {
		assert.Equal(t, want[i], turn.Content)
	}
}
