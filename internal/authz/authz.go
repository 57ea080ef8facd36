// Package authz decides whether the current user may mutate a backend
// record. The checks here are advisory UI/proxy affordances; the backend
// remains the authorization source of truth. Every predicate fails closed:
// malformed input is a deny, never a panic.
package authz

import (
	"strings"

	"github.com/partyline/partyline/internal/normalize"
	"github.com/partyline/partyline/internal/record"
)

const (
	// RoleOwner is the least-privileged delete role hint.
	RoleOwner = "owner"
	// RoleAdmin marks a delete performed under admin rights.
	RoleAdmin = "admin"
)

// User is the authenticated identity, decoded from the identity provider's
// token. The zero value means "not signed in".
type User struct {
	UID   string
	Email string
}

// SignedIn reports whether the user carries any identity at all.
func (u User) SignedIn() bool {
	return strings.TrimSpace(u.UID) != "" || strings.TrimSpace(u.Email) != ""
}

// AllowList is the static set of admin emails, lower-cased. Built once at
// startup and read-only afterwards.
type AllowList map[string]struct{}

// ParseAllowList builds an AllowList from a comma-separated email string.
// Entries are trimmed and lower-cased; empties are dropped. An empty or
// missing value yields an empty set, meaning nobody is admin.
func ParseAllowList(raw string) AllowList {
	list := AllowList{}
	for _, entry := range strings.Split(raw, ",") {
		email := normalize.Lower(entry)
		if email == "" {
			continue
		}
		list[email] = struct{}{}
	}
	return list
}

// Contains reports membership, case-insensitively.
func (a AllowList) Contains(email string) bool {
	_, ok := a[normalize.Lower(email)]
	return ok
}

// Authorizer evaluates ownership and admin rights against a configured
// allow-list.
type Authorizer struct {
	Admins AllowList
}

// IsAdmin reports whether the user's email is on the admin allow-list.
// Admin status is independent of ownership and grants mutate rights on any
// record.
func (a Authorizer) IsAdmin(u User) bool {
	if strings.TrimSpace(u.Email) == "" {
		return false
	}
	return a.Admins.Contains(u.Email)
}

// IsOwner reports whether the record belongs to the user. Checks
// short-circuit on the first match: the explicit can_edit hint, then UID
// fields (including the author_username field some serializers reuse for the
// Firebase UID), then case-insensitive email fields.
func IsOwner(r record.Record, u User) bool {
	if !u.SignedIn() {
		return false
	}
	if r.CanEdit() {
		return true
	}

	uid := strings.TrimSpace(u.UID)
	if uid != "" {
		if owner := r.OwnerUID(); owner != "" && owner == uid {
			return true
		}
		if author := r.AuthorUID(); author != "" && author == uid {
			return true
		}
	}

	email := normalize.Lower(u.Email)
	if email != "" {
		if owner := r.OwnerEmail(); owner != "" && owner == email {
			return true
		}
		if author := r.AuthorEmail(); author != "" && author == email {
			return true
		}
	}
	return false
}

// CanMutate is the single predicate every destructive route evaluates before
// forwarding an edit or delete upstream.
func (a Authorizer) CanMutate(r record.Record, u User) bool {
	return a.IsAdmin(u) || IsOwner(r, u)
}

// DeleteRole derives the X-Delete-Role hint sent upstream with a delete.
// Owners delete as "owner"; allow-list admins deleting someone else's record
// act as "admin". When neither can be established the hint stays at the
// least-privileged "owner" and the backend makes the real call.
func (a Authorizer) DeleteRole(r record.Record, u User) string {
	if IsOwner(r, u) {
		return RoleOwner
	}
	if a.IsAdmin(u) {
		return RoleAdmin
	}
	return RoleOwner
}
