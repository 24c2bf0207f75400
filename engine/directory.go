package engine

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/preenbot/preen/ghapi"
)

// Directory is the remote social-graph surface the engine operates against.
// Implementations return ghapi.ErrNotFound for definitively missing accounts
// or relationships, distinct from transport failures.
type Directory interface {
	ListFollowers(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error)
	ListFollowing(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error)
	GetUser(ctx context.Context, login string) (*ghapi.User, error)
	Follow(ctx context.Context, login string) error
	Unfollow(ctx context.Context, login string) error
	IsFollowing(ctx context.Context, login string) (bool, error)
}

// APIDirectory is a Directory backed by the GitHub REST API.
type APIDirectory struct {
	Client *ghapi.Client
}

var _ Directory = (*APIDirectory)(nil)

func NewAPIDirectory(client *ghapi.Client) *APIDirectory {
	return &APIDirectory{Client: client}
}

func (d *APIDirectory) ListFollowers(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error) {
	return ghapi.UsersListFollowers(ctx, d.Client, login, page, perPage)
}

func (d *APIDirectory) ListFollowing(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error) {
	return ghapi.UsersListFollowing(ctx, d.Client, login, page, perPage)
}

func (d *APIDirectory) GetUser(ctx context.Context, login string) (*ghapi.User, error) {
	profileFetchCount.Inc()
	return ghapi.UsersGet(ctx, d.Client, login)
}

func (d *APIDirectory) Follow(ctx context.Context, login string) error {
	return ghapi.FollowingPut(ctx, d.Client, login)
}

func (d *APIDirectory) Unfollow(ctx context.Context, login string) error {
	return ghapi.FollowingDelete(ctx, d.Client, login)
}

func (d *APIDirectory) IsFollowing(ctx context.Context, login string) (bool, error) {
	return ghapi.FollowingCheck(ctx, d.Client, login)
}

type userEntry struct {
	User *ghapi.User
	Err  error
}

// CachedDirectory wraps an inner Directory with an expiring LRU cache over
// profile lookups, so a profile resolved for one phase is not re-fetched by a
// later phase in the same run. Definitive not-found results are cached too;
// transport failures are not.
type CachedDirectory struct {
	Inner     Directory
	userCache *expirable.LRU[string, userEntry]
}

var _ Directory = (*CachedDirectory)(nil)

// Capacity of zero means unlimited size. Similarly, ttl of zero means
// unlimited duration.
func NewCachedDirectory(inner Directory, capacity int, hitTTL time.Duration) *CachedDirectory {
	return &CachedDirectory{
		Inner:     inner,
		userCache: expirable.NewLRU[string, userEntry](capacity, nil, hitTTL),
	}
}

func (d *CachedDirectory) GetUser(ctx context.Context, login string) (*ghapi.User, error) {
	if entry, ok := d.userCache.Get(login); ok {
		profileCacheHits.Inc()
		return entry.User, entry.Err
	}
	u, err := d.Inner.GetUser(ctx, login)
	if err != nil && !errors.Is(err, ghapi.ErrNotFound) {
		return nil, err
	}
	d.userCache.Add(login, userEntry{User: u, Err: err})
	return u, err
}

func (d *CachedDirectory) ListFollowers(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error) {
	return d.Inner.ListFollowers(ctx, login, page, perPage)
}

func (d *CachedDirectory) ListFollowing(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error) {
	return d.Inner.ListFollowing(ctx, login, page, perPage)
}

func (d *CachedDirectory) Follow(ctx context.Context, login string) error {
	return d.Inner.Follow(ctx, login)
}

func (d *CachedDirectory) Unfollow(ctx context.Context, login string) error {
	return d.Inner.Unfollow(ctx, login)
}

func (d *CachedDirectory) IsFollowing(ctx context.Context, login string) (bool, error) {
	return d.Inner.IsFollowing(ctx, login)
}
