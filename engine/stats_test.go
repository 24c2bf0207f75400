package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeScenario(t *testing.T) {
	assert := assert.New(t)

	stats := Summarize(NewUserSet("alice", "bob", "carol"), NewUserSet("bob", "carol", "dave"))
	assert.Equal(3, stats.Followers)
	assert.Equal(3, stats.Following)
	assert.Equal(2, stats.Mutual)
	assert.Equal(1, stats.OnlyFollowers)
	assert.Equal(1, stats.OnlyFollowing)
	assert.Equal(1.0, stats.FollowRatio)
}

func TestSummarizeZeroFollowing(t *testing.T) {
	assert := assert.New(t)

	// denominator floors at 1, never divides by zero
	stats := Summarize(NewUserSet("a", "b", "c"), NewUserSet())
	assert.Equal(3.0, stats.FollowRatio)

	stats = Summarize(NewUserSet(), NewUserSet())
	assert.Equal(0.0, stats.FollowRatio)
}
