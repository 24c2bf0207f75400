package engine

// Reconciliation is the directed comparison of a followers set against a
// following set.
type Reconciliation struct {
	// ToFollowBack are accounts that follow us but we do not follow.
	ToFollowBack UserSet
	// NonReciprocators are accounts we follow that do not follow back.
	NonReciprocators UserSet
	// Mutual are accounts with a follow in both directions.
	Mutual UserSet
}

// Reconcile computes the set differences between followers and following.
// Pure; does no I/O.
func Reconcile(followers, following UserSet) Reconciliation {
	return Reconciliation{
		ToFollowBack:     followers.Difference(following),
		NonReciprocators: following.Difference(followers),
		Mutual:           followers.Intersect(following),
	}
}
