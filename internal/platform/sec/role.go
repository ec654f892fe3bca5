// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package sec

// # Site Roles

// UserRole represents the site-wide authorization level granted to an account.
//
// These are platform roles (who may administer the site itself). They are
// distinct from the per-paper and per-journal roles managed by the perm
// package, which scope what a user may do to an individual entity.
type UserRole string

const (
	// Unrestricted system access, including feature-flag administration
	RoleAdmin UserRole = "admin"

	// Can moderate community content (reviews, comments)
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
