package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/preenbot/preen/ghapi"
)

// Action is a mutation applied to a candidate.
type Action string

const (
	ActionFollow   = Action("follow")
	ActionUnfollow = Action("unfollow")
)

// Outcome classifies what happened to one candidate.
type Outcome string

const (
	OutcomeSucceeded = Outcome("succeeded")
	OutcomeNotFound  = Outcome("not_found")
	OutcomeSkipped   = Outcome("skipped")
	OutcomeFailed    = Outcome("failed")
)

// ActionResult is the outcome for one candidate, with optional diagnostic
// detail.
type ActionResult struct {
	Outcome Outcome
	Detail  string
}

// OutcomeMap records per-candidate results for one executed phase.
type OutcomeMap map[string]ActionResult

// Succeeded counts candidates whose mutation was applied.
func (m OutcomeMap) Succeeded() int {
	n := 0
	for _, r := range m {
		if r.Outcome == OutcomeSucceeded {
			n++
		}
	}
	return n
}

// executeActions applies an action to the first limit candidates, in the
// given order. The limit bounds candidates considered, not successful
// mutations: skips consume a slot, so a skip-heavy run applies fewer than
// limit actions. Per-candidate failures are recorded and the loop continues;
// a throttling response or cancellation aborts the phase with partial
// results. The courtesy delay runs only after a successful mutation (skips
// cost no API write).
func (e *Engine) executeActions(ctx context.Context, candidates []string, act Action, limit int) (OutcomeMap, error) {
	if limit < len(candidates) {
		candidates = candidates[:limit]
	}
	results := make(OutcomeMap, len(candidates))

	for _, login := range candidates {
		// cooperative cancellation between candidates, never mid-mutation
		if err := ctx.Err(); err != nil {
			return results, err
		}

		u, err := e.Directory.GetUser(ctx, login)
		if errors.Is(err, ghapi.ErrNotFound) {
			e.record(results, act, login, OutcomeSkipped, "profile unavailable")
			continue
		} else if err != nil {
			if isThrottled(err) {
				return results, fmt.Errorf("rate limited while resolving @%s: %w", login, err)
			}
			e.record(results, act, login, OutcomeFailed, err.Error())
			continue
		}

		if skip, reason := e.Config.ShouldSkip(u); skip {
			e.record(results, act, login, OutcomeSkipped, reason)
			continue
		}

		switch act {
		case ActionFollow:
			err = e.Directory.Follow(ctx, login)
		case ActionUnfollow:
			err = e.Directory.Unfollow(ctx, login)
		default:
			return results, fmt.Errorf("unsupported action: %s", act)
		}
		if errors.Is(err, ghapi.ErrNotFound) {
			e.record(results, act, login, OutcomeNotFound, "")
			continue
		} else if err != nil {
			if isThrottled(err) {
				return results, fmt.Errorf("rate limited on %s @%s: %w", act, login, err)
			}
			e.record(results, act, login, OutcomeFailed, err.Error())
			continue
		}
		e.record(results, act, login, OutcomeSucceeded, "")

		if err := e.sleep(ctx, e.Config.ActionDelay); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (e *Engine) record(m OutcomeMap, act Action, login string, outcome Outcome, detail string) {
	m[login] = ActionResult{Outcome: outcome, Detail: detail}
	actionCount.WithLabelValues(string(act), string(outcome)).Inc()
	if detail != "" {
		e.Logger.Info("candidate processed", "action", act, "candidate", login, "outcome", outcome, "detail", detail)
	} else {
		e.Logger.Info("candidate processed", "action", act, "candidate", login, "outcome", outcome)
	}
}

func isThrottled(err error) bool {
	var apiErr *ghapi.Error
	return errors.As(err, &apiErr) && apiErr.IsThrottled()
}
