package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/aevon-lab/aevon-rules/internal/api/v1"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/aevon-lab/aevon-rules/internal/engine"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
	enginemocks "github.com/aevon-lab/aevon-rules/internal/mocks/engine"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)

const fullRule = `
name: "cart_push"
trigger_event: "add_cart"
profile:
  - tag: "gender"
    value: "female"
counts:
  - event_type: "view_item"
    threshold: 3
    lookback: "24h"
sequence:
  lookback: "2h"
  steps:
    - event_type: "view_item"
    - event_type: "add_cart"
`

const countOnlyRule = `
name: "browse_streak"
trigger_event: "add_cart"
counts:
  - event_type: "view_item"
    threshold: 2
    lookback: "1h"
`

func mustParse(t *testing.T, doc string) rule.Rule {
	t.Helper()
	r, skip, err := rule.Parse([]byte(doc))
	require.NoError(t, err)
	require.False(t, skip)
	return r
}

func addCart() *v1.Event {
	return &v1.Event{ID: "evt-1", DeviceID: "dev-1", Type: "add_cart", OccurredAt: now.Add(-time.Second)}
}

func TestEvaluator_IgnoresEventsWithoutRules(t *testing.T) {
	router := enginemocks.NewQuerier(t)
	ev := engine.NewEvaluator([]rule.Rule{mustParse(t, fullRule)}, router)

	evt := addCart()
	evt.Type = "view_item"

	require.False(t, ev.Triggers("view_item"))
	matches, err := ev.Evaluate(context.Background(), evt, hotstore.NewWindowState("dev-1"), now)
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestEvaluator_AllGroupsHold(t *testing.T) {
	router := enginemocks.NewQuerier(t)
	state := hotstore.NewWindowState("dev-1")
	evt := addCart()

	router.EXPECT().ProfileQuery(mock.Anything, evt, mock.Anything).Return(true, nil).Once()
	router.EXPECT().
		CountConditionQuery(mock.Anything, evt, mock.MatchedBy(func(s *rule.RuleSpec) bool {
			return len(s.Counts) == 1 && s.Counts[0].Window == rule.Window{Start: now.Add(-24 * time.Hour), End: now}
		}), state, now).
		Return(true, nil).
		Once()
	router.EXPECT().SequenceConditionQuery(mock.Anything, evt, mock.Anything, state, now).Return(true, nil).Once()

	r := mustParse(t, fullRule)
	matches, err := engine.NewEvaluator([]rule.Rule{r}, router).Evaluate(context.Background(), evt, state, now)
	require.NoError(t, err)
	require.Equal(t, []engine.Match{{
		RuleName:    "cart_push",
		Fingerprint: r.Fingerprint,
		DeviceID:    "dev-1",
		EventID:     "evt-1",
		EventType:   "add_cart",
		OccurredAt:  evt.OccurredAt,
		EvaluatedAt: now,
	}}, matches)
}

func TestEvaluator_ShortCircuits(t *testing.T) {
	t.Run("profile fails", func(t *testing.T) {
		router := enginemocks.NewQuerier(t)
		router.EXPECT().ProfileQuery(mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()

		matches, err := engine.NewEvaluator([]rule.Rule{mustParse(t, fullRule)}, router).
			Evaluate(context.Background(), addCart(), hotstore.NewWindowState("dev-1"), now)
		require.NoError(t, err)
		require.Empty(t, matches)
	})

	t.Run("count fails", func(t *testing.T) {
		router := enginemocks.NewQuerier(t)
		router.EXPECT().ProfileQuery(mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Once()
		router.EXPECT().
			CountConditionQuery(mock.Anything, mock.Anything, mock.Anything, mock.Anything, now).
			Return(false, nil).
			Once()

		matches, err := engine.NewEvaluator([]rule.Rule{mustParse(t, fullRule)}, router).
			Evaluate(context.Background(), addCart(), hotstore.NewWindowState("dev-1"), now)
		require.NoError(t, err)
		require.Empty(t, matches)
	})

	t.Run("no profile conditions skips the profile lookup", func(t *testing.T) {
		router := enginemocks.NewQuerier(t)
		router.EXPECT().
			CountConditionQuery(mock.Anything, mock.Anything, mock.Anything, mock.Anything, now).
			Return(true, nil).
			Once()

		matches, err := engine.NewEvaluator([]rule.Rule{mustParse(t, countOnlyRule)}, router).
			Evaluate(context.Background(), addCart(), hotstore.NewWindowState("dev-1"), now)
		require.NoError(t, err)
		require.Len(t, matches, 1)
	})
}

func TestEvaluator_FailingRuleDoesNotStopOthers(t *testing.T) {
	boom := errors.New("cold store down")
	router := enginemocks.NewQuerier(t)
	router.EXPECT().ProfileQuery(mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Once()
	router.EXPECT().
		CountConditionQuery(mock.Anything, mock.Anything, mock.MatchedBy(func(s *rule.RuleSpec) bool {
			return s.RuleName == "cart_push"
		}), mock.Anything, now).
		Return(false, boom).
		Once()
	router.EXPECT().
		CountConditionQuery(mock.Anything, mock.Anything, mock.MatchedBy(func(s *rule.RuleSpec) bool {
			return s.RuleName == "browse_streak"
		}), mock.Anything, now).
		Return(true, nil).
		Once()

	rules := []rule.Rule{mustParse(t, fullRule), mustParse(t, countOnlyRule)}
	matches, err := engine.NewEvaluator(rules, router).
		Evaluate(context.Background(), addCart(), hotstore.NewWindowState("dev-1"), now)

	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), `rule "cart_push"`)
	require.Len(t, matches, 1)
	require.Equal(t, "browse_streak", matches[0].RuleName)
}

func TestEvaluator_CancelledContext(t *testing.T) {
	router := enginemocks.NewQuerier(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	matches, err := engine.NewEvaluator([]rule.Rule{mustParse(t, countOnlyRule)}, router).
		Evaluate(ctx, addCart(), hotstore.NewWindowState("dev-1"), now)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, matches)
}
