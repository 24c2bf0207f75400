package engine

import (
	"context"
	"fmt"

	"github.com/preenbot/preen/ghapi"
)

type listPageFunc func(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error)

// CollectFollowers drains the paginated followers listing into a complete,
// deduplicated set.
func (e *Engine) CollectFollowers(ctx context.Context) (UserSet, error) {
	return e.collectSet(ctx, "followers", e.Directory.ListFollowers)
}

// CollectFollowing drains the paginated following listing into a complete,
// deduplicated set.
func (e *Engine) CollectFollowing(ctx context.Context) (UserSet, error) {
	return e.collectSet(ctx, "following", e.Directory.ListFollowing)
}

// collectSet pages through a listing from page 1 until an empty page. Any
// page failure aborts the whole collection: a partial set must surface as an
// error, never as a smaller-looking account. Consecutive fetches are paced by
// the page limiter, and MaxPages bounds a listing that never terminates.
func (e *Engine) collectSet(ctx context.Context, kind string, list listPageFunc) (UserSet, error) {
	set := make(UserSet)
	for page := 1; ; page++ {
		if page > e.Config.MaxPages {
			return nil, fmt.Errorf("listing %s: exceeded page ceiling (%d pages)", kind, e.Config.MaxPages)
		}
		if err := e.pageLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		users, err := list(ctx, e.Config.Username, page, e.Config.PageSize)
		if err != nil {
			return nil, fmt.Errorf("listing %s (page %d): %w", kind, page, err)
		}
		if len(users) == 0 {
			break
		}
		for _, u := range users {
			set.Add(u.Login)
		}
		listingPageCount.WithLabelValues(kind).Inc()
		e.Logger.Debug("collected listing page", "kind", kind, "page", page, "pageSize", len(users), "total", set.Len())
	}
	e.Logger.Info("collected listing", "kind", kind, "total", set.Len())
	return set, nil
}
