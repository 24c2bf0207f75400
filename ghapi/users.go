package ghapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
)

const (
	TypeUser         = "User"
	TypeOrganization = "Organization"
)

// User is a GitHub account as returned by the users endpoints. Listing
// endpoints return the abbreviated form (no follower counts); the single-user
// endpoint fills in the full profile.
type User struct {
	Login     string  `json:"login"`
	Id        int64   `json:"id"`
	Type      string  `json:"type"`
	Name      *string `json:"name,omitempty"`
	Followers int64   `json:"followers"`
	Following int64   `json:"following"`

	// Raw preserves the complete response object, for fields this struct
	// does not model.
	Raw json.RawMessage `json:"-"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	type shadow User
	var s shadow
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*u = User(s)
	u.Raw = append([]byte(nil), b...)
	return nil
}

// ErrNotFound is returned when the API definitively reports that an account
// (or following relationship) does not exist, as opposed to a request failure.
var ErrNotFound = errors.New("account not found")

func asNotFound(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		return ErrNotFound
	}
	return err
}

// UsersListFollowers fetches one page of accounts following the given user.
// An empty page indicates the end of the listing.
//
// GET /users/{login}/followers
func UsersListFollowers(ctx context.Context, c *Client, login string, page, perPage int) ([]*User, error) {
	var out []*User
	params := map[string]any{
		"page":     page,
		"per_page": perPage,
	}
	if err := c.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(login)+"/followers", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UsersListFollowing fetches one page of accounts the given user follows.
//
// GET /users/{login}/following
func UsersListFollowing(ctx context.Context, c *Client, login string, page, perPage int) ([]*User, error) {
	var out []*User
	params := map[string]any{
		"page":     page,
		"per_page": perPage,
	}
	if err := c.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(login)+"/following", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UsersGet fetches the full profile for a single account. Returns ErrNotFound
// for accounts that no longer exist.
//
// GET /users/{login}
func UsersGet(ctx context.Context, c *Client, login string) (*User, error) {
	var out User
	if err := c.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(login), nil, &out); err != nil {
		return nil, asNotFound(err)
	}
	return &out, nil
}

// FollowingCheck reports whether the authenticated user follows the given
// account. The API answers 204 for yes and 404 for no.
//
// GET /user/following/{login}
func FollowingCheck(ctx context.Context, c *Client, login string) (bool, error) {
	err := c.Do(ctx, http.MethodGet, "/user/following/"+url.PathEscape(login), nil, nil)
	if err == nil {
		return true, nil
	}
	if errors.Is(asNotFound(err), ErrNotFound) {
		return false, nil
	}
	return false, err
}

// FollowingPut makes the authenticated user follow the given account.
//
// PUT /user/following/{login}
func FollowingPut(ctx context.Context, c *Client, login string) error {
	if err := c.Do(ctx, http.MethodPut, "/user/following/"+url.PathEscape(login), nil, nil); err != nil {
		return asNotFound(err)
	}
	return nil
}

// FollowingDelete makes the authenticated user unfollow the given account.
// ErrNotFound covers both a missing account and an absent relationship.
//
// DELETE /user/following/{login}
func FollowingDelete(ctx context.Context, c *Client, login string) error {
	if err := c.Do(ctx, http.MethodDelete, "/user/following/"+url.PathEscape(login), nil, nil); err != nil {
		return asNotFound(err)
	}
	return nil
}
