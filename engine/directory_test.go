package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preenbot/preen/ghapi"
)

func TestCachedDirectoryServesRepeatLookups(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	inner := NewMockDirectory()
	inner.Insert("alice", 42, ghapi.TypeUser)
	dir := NewCachedDirectory(inner, 0, time.Hour)

	u1, err := dir.GetUser(ctx, "alice")
	require.NoError(t, err)
	u2, err := dir.GetUser(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(u1, u2)
	assert.Len(inner.GetUserCalls, 1)
}

func TestCachedDirectoryCachesNotFound(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	inner := NewMockDirectory()
	dir := NewCachedDirectory(inner, 0, time.Hour)

	_, err := dir.GetUser(ctx, "ghost")
	assert.ErrorIs(err, ghapi.ErrNotFound)
	_, err = dir.GetUser(ctx, "ghost")
	assert.ErrorIs(err, ghapi.ErrNotFound)
	assert.Len(inner.GetUserCalls, 1)
}

func TestCachedDirectoryDoesNotCacheTransportErrors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	inner := NewMockDirectory()
	inner.GetUserErrs["flaky"] = fmt.Errorf("connection reset")
	dir := NewCachedDirectory(inner, 0, time.Hour)

	_, err := dir.GetUser(ctx, "flaky")
	assert.Error(err)

	// once the failure clears, the next lookup goes through
	delete(inner.GetUserErrs, "flaky")
	inner.Insert("flaky", 7, ghapi.TypeUser)
	u, err := dir.GetUser(ctx, "flaky")
	require.NoError(t, err)
	assert.Equal(int64(7), u.Followers)
	assert.Len(inner.GetUserCalls, 2)
}
