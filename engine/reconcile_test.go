package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileScenario(t *testing.T) {
	assert := assert.New(t)

	followers := NewUserSet("alice", "bob", "carol")
	following := NewUserSet("bob", "carol", "dave")

	rec := Reconcile(followers, following)
	assert.Equal([]string{"alice"}, rec.ToFollowBack.Sorted())
	assert.Equal([]string{"dave"}, rec.NonReciprocators.Sorted())
	assert.Equal([]string{"bob", "carol"}, rec.Mutual.Sorted())
}

func TestReconcilePartition(t *testing.T) {
	assert := assert.New(t)

	followers := NewUserSet("a", "b", "c", "x", "y")
	following := NewUserSet("b", "c", "d", "z")
	rec := Reconcile(followers, following)

	// the three parts are disjoint
	for l := range rec.ToFollowBack {
		assert.False(rec.NonReciprocators.Contains(l))
		assert.False(rec.Mutual.Contains(l))
	}
	for l := range rec.NonReciprocators {
		assert.False(rec.Mutual.Contains(l))
	}

	// and together they cover the union exactly
	union := make(UserSet)
	for l := range followers {
		union.Add(l)
	}
	for l := range following {
		union.Add(l)
	}
	assert.Equal(union.Len(), rec.ToFollowBack.Len()+rec.NonReciprocators.Len()+rec.Mutual.Len())
}

func TestReconcileEmpty(t *testing.T) {
	assert := assert.New(t)

	rec := Reconcile(NewUserSet(), NewUserSet("a"))
	assert.Equal(0, rec.ToFollowBack.Len())
	assert.Equal(1, rec.NonReciprocators.Len())
	assert.Equal(0, rec.Mutual.Len())
}

func TestUserSetDedupe(t *testing.T) {
	assert := assert.New(t)

	s := NewUserSet("a", "b", "a", "a")
	assert.Equal(2, s.Len())
	assert.Equal([]string{"a", "b"}, s.Sorted())
}
