package engine

// Stats summarizes one snapshot of the social graph. Derived from fresh
// UserSets each time, never cached across runs.
type Stats struct {
	Followers     int
	Following     int
	Mutual        int
	OnlyFollowers int
	OnlyFollowing int
	// FollowRatio is followers over following, with a floor of 1 on the
	// denominator so an account following nobody still gets a ratio.
	FollowRatio float64
}

// Summarize computes summary counts and the follow ratio from two collected
// sets. Pure arithmetic over set sizes.
func Summarize(followers, following UserSet) Stats {
	rec := Reconcile(followers, following)
	denom := following.Len()
	if denom < 1 {
		denom = 1
	}
	return Stats{
		Followers:     followers.Len(),
		Following:     following.Len(),
		Mutual:        rec.Mutual.Len(),
		OnlyFollowers: rec.ToFollowBack.Len(),
		OnlyFollowing: rec.NonReciprocators.Len(),
		FollowRatio:   float64(followers.Len()) / float64(denom),
	}
}
