package engine

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/preenbot/preen/ghapi"
)

// A fake social-graph directory, for use in tests. Follow and Unfollow update
// the Following slice, so re-collection after a phase observes the mutations.
type MockDirectory struct {
	Users     map[string]*ghapi.User
	Followers []string
	Following []string

	// per-login injected failures
	GetUserErrs  map[string]error
	FollowErrs   map[string]error
	UnfollowErrs map[string]error

	// listing failures; page is matched against FailPage (0 = first call)
	FollowersErr error
	FollowingErr error
	FailPage     int

	FollowedLog   []string
	UnfollowedLog []string
	GetUserCalls  []string
}

var _ Directory = (*MockDirectory)(nil)

func NewMockDirectory() *MockDirectory {
	return &MockDirectory{
		Users:        make(map[string]*ghapi.User),
		GetUserErrs:  make(map[string]error),
		FollowErrs:   make(map[string]error),
		UnfollowErrs: make(map[string]error),
	}
}

// Insert registers a profile and returns it for further tweaking.
func (d *MockDirectory) Insert(login string, followers int64, accountType string) *ghapi.User {
	u := &ghapi.User{Login: login, Followers: followers, Type: accountType}
	d.Users[login] = u
	return u
}

func pageOf(logins []string, page, perPage int) []string {
	lo := (page - 1) * perPage
	if lo >= len(logins) {
		return nil
	}
	hi := min(lo+perPage, len(logins))
	return logins[lo:hi]
}

func (d *MockDirectory) list(logins []string, listErr error, page, perPage int) ([]*ghapi.User, error) {
	if listErr != nil && (d.FailPage == 0 || d.FailPage == page) {
		return nil, listErr
	}
	var out []*ghapi.User
	for _, l := range pageOf(logins, page, perPage) {
		out = append(out, &ghapi.User{Login: l, Type: ghapi.TypeUser})
	}
	return out, nil
}

func (d *MockDirectory) ListFollowers(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error) {
	return d.list(d.Followers, d.FollowersErr, page, perPage)
}

func (d *MockDirectory) ListFollowing(ctx context.Context, login string, page, perPage int) ([]*ghapi.User, error) {
	return d.list(d.Following, d.FollowingErr, page, perPage)
}

func (d *MockDirectory) GetUser(ctx context.Context, login string) (*ghapi.User, error) {
	d.GetUserCalls = append(d.GetUserCalls, login)
	if err, ok := d.GetUserErrs[login]; ok {
		return nil, err
	}
	u, ok := d.Users[login]
	if !ok {
		return nil, ghapi.ErrNotFound
	}
	return u, nil
}

func (d *MockDirectory) Follow(ctx context.Context, login string) error {
	if err, ok := d.FollowErrs[login]; ok {
		return err
	}
	d.FollowedLog = append(d.FollowedLog, login)
	if !slices.Contains(d.Following, login) {
		d.Following = append(d.Following, login)
	}
	return nil
}

func (d *MockDirectory) Unfollow(ctx context.Context, login string) error {
	if err, ok := d.UnfollowErrs[login]; ok {
		return err
	}
	d.UnfollowedLog = append(d.UnfollowedLog, login)
	d.Following = slices.DeleteFunc(d.Following, func(l string) bool { return l == login })
	return nil
}

func (d *MockDirectory) IsFollowing(ctx context.Context, login string) (bool, error) {
	return slices.Contains(d.Following, login), nil
}

// EngineTestFixture returns an engine over the given directory with all
// delays zeroed and a discarded logger.
func EngineTestFixture(dir Directory) *Engine {
	cfg := DefaultConfig("tester")
	cfg.ActionDelay = 0
	cfg.PageFetchInterval = 0
	cfg.Cooldown = 0
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	eng, err := New(dir, cfg, logger)
	if err != nil {
		panic(err)
	}
	return eng
}
