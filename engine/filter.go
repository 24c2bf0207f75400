package engine

import (
	"fmt"
	"strings"

	"github.com/preenbot/preen/ghapi"
)

// Accounts whose login contains this substring and which are organizations
// are never acted on (official platform accounts).
const platformBrand = "github"

// ShouldSkip decides whether an action on the account must be skipped, and
// why. Rules are checked in order; first match wins:
//
//  1. very popular accounts (follower count strictly above the threshold) are
//     likely false positives from API lag;
//  2. platform-brand organizations are protected.
//
// Pure; the profile must already be resolved.
func (c *Config) ShouldSkip(u *ghapi.User) (bool, string) {
	if u.Followers > c.PopularityThreshold {
		return true, fmt.Sprintf("popular account (%d followers)", u.Followers)
	}
	if u.Type == ghapi.TypeOrganization && strings.Contains(strings.ToLower(u.Login), platformBrand) {
		return true, "platform organization"
	}
	return false, ""
}
