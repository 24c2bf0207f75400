package ghapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		Client: srv.Client(),
		Host:   srv.URL,
		Token:  "test-token",
	}
}

func TestUsersListFollowersRequest(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/users/someone/followers", r.URL.Path)
		assert.Equal("3", r.URL.Query().Get("page"))
		assert.Equal("100", r.URL.Query().Get("per_page"))
		assert.Equal("token test-token", r.Header.Get("Authorization"))
		assert.Equal("application/vnd.github.v3+json", r.Header.Get("Accept"))
		fmt.Fprint(w, `[{"login":"alice","id":1,"type":"User"},{"login":"bob","id":2,"type":"User"}]`)
	}))
	defer srv.Close()

	users, err := UsersListFollowers(ctx, testClient(srv), "someone", 3, 100)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal("alice", users[0].Login)
	assert.NotEmpty(users[0].Raw)
}

func TestUsersGetNotFound(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer srv.Close()

	_, err := UsersGet(ctx, testClient(srv), "ghost")
	assert.ErrorIs(err, ErrNotFound)
}

func TestUsersGetProfile(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/users/alice", r.URL.Path)
		fmt.Fprint(w, `{"login":"alice","id":1,"type":"User","followers":12345,"following":6,"hireable":true}`)
	}))
	defer srv.Close()

	u, err := UsersGet(ctx, testClient(srv), "alice")
	require.NoError(t, err)
	assert.Equal(int64(12345), u.Followers)
	// unmodeled fields survive in the raw payload
	assert.Contains(string(u.Raw), "hireable")
}

func TestFollowingCheckMapping(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodGet, r.Method)
		if r.URL.Path == "/user/following/friend" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer srv.Close()

	ok, err := FollowingCheck(ctx, testClient(srv), "friend")
	require.NoError(t, err)
	assert.True(ok)

	ok, err = FollowingCheck(ctx, testClient(srv), "stranger")
	require.NoError(t, err)
	assert.False(ok)
}

func TestFollowingPutAndDelete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	var gotMethods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method)
		assert.Equal("/user/following/alice", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, FollowingPut(ctx, testClient(srv), "alice"))
	require.NoError(t, FollowingDelete(ctx, testClient(srv), "alice"))
	assert.Equal([]string{http.MethodPut, http.MethodDelete}, gotMethods)
}

func TestRatelimitErrorParsing(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	reset := time.Now().Add(time.Hour).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ratelimit-limit", "5000")
		w.Header().Set("x-ratelimit-remaining", "0")
		w.Header().Set("x-ratelimit-reset", fmt.Sprint(reset))
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	}))
	defer srv.Close()

	err := testClient(srv).Do(ctx, http.MethodGet, "/users/alice", nil, nil)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(apiErr.IsThrottled())
	assert.Equal(5000, apiErr.Ratelimit.Limit)
	assert.Equal(0, apiErr.Ratelimit.Remaining)
	assert.Equal(time.Unix(reset, 0), apiErr.Ratelimit.Reset)
	assert.ErrorContains(err, "rate limit exceeded")
}

func TestForbiddenWithRemainingIsNotThrottled(t *testing.T) {
	assert := assert.New(t)

	err := &Error{StatusCode: http.StatusForbidden, Ratelimit: &RatelimitInfo{Remaining: 100}}
	assert.False(err.IsThrottled())

	err = &Error{StatusCode: http.StatusTooManyRequests}
	assert.True(err.IsThrottled())
}

func TestMakeParams(t *testing.T) {
	testCases := []struct {
		name     string
		input    map[string]any
		expected string
	}{
		{
			name:     "Empty input",
			input:    map[string]any{},
			expected: "",
		},
		{
			name: "Mixed values",
			input: map[string]any{
				"page":     2,
				"per_page": 100,
			},
			expected: "page=2&per_page=100",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := makeParams(tc.input)
			if result != tc.expected {
				t.Errorf("got '%q', want '%q'", result, tc.expected)
			}
		})
	}
}

func TestErrNotFoundDistinctFromTransport(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"message":"upstream broke"}`)
	}))
	defer srv.Close()

	_, err := UsersGet(ctx, testClient(srv), "alice")
	assert.Error(err)
	assert.False(errors.Is(err, ErrNotFound))
}
