package engine

import (
	"context"
	"fmt"
	"time"
)

// Phase names the states of a run. Transitions are strictly sequential; a
// failure in any phase moves to PhaseFailed and skips the rest. Actions
// already applied are not rolled back.
type Phase string

const (
	PhaseInit         = Phase("init")
	PhaseStatsInitial = Phase("stats_initial")
	PhaseFollowBack   = Phase("follow_back")
	PhaseCooldown     = Phase("cooldown")
	PhaseCleanup      = Phase("cleanup")
	PhaseStatsFinal   = Phase("stats_final")
	PhaseDone         = Phase("done")
	PhaseFailed       = Phase("failed")
)

// RunReport is the outcome of one orchestrated run.
type RunReport struct {
	Mode  Mode
	Phase Phase

	Initial Stats
	// Final and the deltas are only populated when both action phases ran.
	Final          *Stats
	FollowerDelta  int
	FollowingDelta int

	FollowBack OutcomeMap
	Cleanup    OutcomeMap
	Followed   int
	Unfollowed int
}

// Snapshot collects both sets and summarizes them, with no mutations.
func (e *Engine) Snapshot(ctx context.Context) (Stats, error) {
	followers, err := e.CollectFollowers(ctx)
	if err != nil {
		return Stats{}, err
	}
	following, err := e.CollectFollowing(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Summarize(followers, following)
	e.Logger.Info("graph statistics",
		"followers", stats.Followers,
		"following", stats.Following,
		"mutual", stats.Mutual,
		"onlyFollowers", stats.OnlyFollowers,
		"onlyFollowing", stats.OnlyFollowing,
		"followRatio", fmt.Sprintf("%.2f", stats.FollowRatio),
	)
	return stats, nil
}

// Run executes the orchestrated phases for the configured mode: baseline
// statistics, then follow-back and/or cleanup with a cool-down between them,
// then (for a full run) final statistics with net deltas against the
// baseline.
func (e *Engine) Run(ctx context.Context) (*RunReport, error) {
	start := time.Now()
	report := &RunReport{Mode: e.Config.Mode, Phase: PhaseInit}
	defer func() {
		runDuration.WithLabelValues(string(e.Config.Mode)).Observe(time.Since(start).Seconds())
	}()

	fail := func(err error) (*RunReport, error) {
		e.Logger.Error("run aborted", "phase", report.Phase, "err", err)
		report.Phase = PhaseFailed
		return report, err
	}

	e.Logger.Info("starting follower reconciliation",
		"mode", e.Config.Mode,
		"maxFollows", e.Config.MaxFollows,
		"maxUnfollows", e.Config.MaxUnfollows,
		"actionDelay", e.Config.ActionDelay,
	)

	report.Phase = PhaseStatsInitial
	initial, err := e.Snapshot(ctx)
	if err != nil {
		return fail(err)
	}
	report.Initial = initial

	if e.Config.Mode == ModeBoth || e.Config.Mode == ModeFollowBack {
		report.Phase = PhaseFollowBack
		outcomes, err := e.runFollowBack(ctx)
		if err != nil {
			return fail(err)
		}
		report.FollowBack = outcomes
		report.Followed = outcomes.Succeeded()
	}

	if e.Config.Mode == ModeBoth {
		report.Phase = PhaseCooldown
		e.Logger.Info("cooling down between phases", "pause", e.Config.Cooldown)
		if err := e.sleep(ctx, e.Config.Cooldown); err != nil {
			return fail(err)
		}
	}

	if e.Config.Mode == ModeBoth || e.Config.Mode == ModeCleanup {
		report.Phase = PhaseCleanup
		outcomes, err := e.runCleanup(ctx)
		if err != nil {
			return fail(err)
		}
		report.Cleanup = outcomes
		report.Unfollowed = outcomes.Succeeded()
	}

	if e.Config.Mode == ModeBoth {
		report.Phase = PhaseStatsFinal
		final, err := e.Snapshot(ctx)
		if err != nil {
			return fail(err)
		}
		report.Final = &final
		report.FollowerDelta = final.Followers - initial.Followers
		report.FollowingDelta = final.Following - initial.Following
		e.Logger.Info("net changes this run",
			"followers", fmt.Sprintf("%+d", report.FollowerDelta),
			"following", fmt.Sprintf("%+d", report.FollowingDelta),
		)
	}

	report.Phase = PhaseDone
	e.Logger.Info("run complete", "followed", report.Followed, "unfollowed", report.Unfollowed)
	return report, nil
}

// runFollowBack follows accounts that follow us but we do not follow.
func (e *Engine) runFollowBack(ctx context.Context) (OutcomeMap, error) {
	e.Logger.Info("starting follow-back phase")
	followers, err := e.CollectFollowers(ctx)
	if err != nil {
		return nil, err
	}
	following, err := e.CollectFollowing(ctx)
	if err != nil {
		return nil, err
	}
	rec := Reconcile(followers, following)
	e.Logger.Info("follower analysis",
		"followers", followers.Len(),
		"following", following.Len(),
		"toFollowBack", rec.ToFollowBack.Len(),
	)
	if rec.ToFollowBack.Len() == 0 {
		e.Logger.Info("already following all followers")
		return OutcomeMap{}, nil
	}
	outcomes, err := e.executeActions(ctx, rec.ToFollowBack.Sorted(), ActionFollow, e.Config.MaxFollows)
	if err != nil {
		return outcomes, err
	}
	e.Logger.Info("follow-back phase complete", "followed", outcomes.Succeeded())
	return outcomes, nil
}

// runCleanup unfollows accounts we follow that do not follow back.
func (e *Engine) runCleanup(ctx context.Context) (OutcomeMap, error) {
	e.Logger.Info("starting cleanup phase")
	followers, err := e.CollectFollowers(ctx)
	if err != nil {
		return nil, err
	}
	following, err := e.CollectFollowing(ctx)
	if err != nil {
		return nil, err
	}
	rec := Reconcile(followers, following)
	e.Logger.Info("following analysis",
		"following", following.Len(),
		"mutual", rec.Mutual.Len(),
		"nonReciprocators", rec.NonReciprocators.Len(),
	)
	if rec.NonReciprocators.Len() == 0 {
		e.Logger.Info("everyone followed follows back")
		return OutcomeMap{}, nil
	}
	outcomes, err := e.executeActions(ctx, rec.NonReciprocators.Sorted(), ActionUnfollow, e.Config.MaxUnfollows)
	if err != nil {
		return outcomes, err
	}
	e.Logger.Info("cleanup phase complete", "unfollowed", outcomes.Succeeded())
	return outcomes, nil
}
