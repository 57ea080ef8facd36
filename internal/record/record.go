// Package record normalizes the loosely-shaped JSON records returned by the
// external party backend. The backend spells owner identity and display-name
// fields a dozen different ways depending on the resource and serializer
// version; every accessor here walks an ordered candidate chain and returns
// the first usable value, degrading to a safe fallback instead of failing.
package record

import (
	"github.com/partyline/partyline/internal/normalize"
)

// Record is a decoded backend entity (RSVP, guestbook message, photo, score,
// timeline event). A nil Record is valid input for every accessor.
type Record map[string]any

// Kind selects resource-specific synonym chains and fallbacks.
type Kind string

const (
	KindRSVP    Kind = "rsvp"
	KindMessage Kind = "message"
	KindPhoto   Kind = "photo"
)

// Flattened owner-UID fields, highest priority first.
var ownerUIDFields = []string{
	"firebase_uid",
	"firebase_user_id",
	"user_uid",
	"uploader_uid",
	"owner_uid",
	"user_id",
}

// Nested owner-UID lookups tried after the flattened fields.
var ownerUIDPaths = [][2]string{
	{"uploaded_by", "firebase_uid"},
	{"uploaded_by", "uid"},
	{"uploaded_by", "id"},
	{"user", "firebase_uid"},
	{"user", "uid"},
}

func (r Record) scalar(key string) string {
	if r == nil {
		return ""
	}
	return normalize.Scalar(r[key])
}

func (r Record) object(key string) Record {
	if r == nil {
		return nil
	}
	m, ok := r[key].(map[string]any)
	if !ok {
		return nil
	}
	return Record(m)
}

// ID returns the record identifier ("id" or "pk"), coerced to a string.
func (r Record) ID() string {
	if id := r.scalar("id"); id != "" {
		return id
	}
	return r.scalar("pk")
}

// OwnerUID extracts the owning user's UID, or "" when no candidate field
// carries one.
func (r Record) OwnerUID() string {
	for _, key := range ownerUIDFields {
		if v := r.scalar(key); v != "" {
			return v
		}
	}
	for _, path := range ownerUIDPaths {
		if v := r.object(path[0]).scalar(path[1]); v != "" {
			return v
		}
	}
	return ""
}

// OwnerEmail extracts the owning user's email, trimmed and lower-cased, or
// "" when absent.
func (r Record) OwnerEmail() string {
	candidates := []string{
		r.object("uploaded_by").scalar("email"),
		r.scalar("uploaded_by_email"),
		r.object("user").scalar("email"),
		r.scalar("user_email"),
		r.scalar("email"),
	}
	for _, v := range candidates {
		if v != "" {
			return normalize.Lower(v)
		}
	}
	return ""
}

// AuthorUID extracts author identity fields carried by guestbook-style
// records. Some backend serializers put the Firebase UID in
// "author_username"; others flatten it into "author_id" or return the author
// as a bare scalar.
func (r Record) AuthorUID() string {
	if v := r.scalar("author_username"); v != "" {
		return v
	}
	author := r.object("author")
	for _, key := range []string{"username", "id", "pk"} {
		if v := author.scalar(key); v != "" {
			return v
		}
	}
	if v := r.scalar("author_id"); v != "" {
		return v
	}
	return r.scalar("author")
}

// AuthorEmail extracts the nested author object's email, lower-cased.
func (r Record) AuthorEmail() string {
	if v := r.object("author").scalar("email"); v != "" {
		return normalize.Lower(v)
	}
	return ""
}

// CanEdit reports whether the backend supplied an explicit can_edit hint.
// Only a literal boolean true counts.
func (r Record) CanEdit() bool {
	if r == nil {
		return false
	}
	v, ok := r["can_edit"].(bool)
	return ok && v
}

// Deleted reports whether the record carries a soft-delete marker. Soft
// deleted records must be excluded from listings even when the backend still
// returns them.
func (r Record) Deleted() bool {
	if r == nil {
		return false
	}
	for _, key := range []string{"deleted", "is_deleted"} {
		switch v := r[key].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			switch normalize.Lower(v) {
			case "true", "1", "yes":
				return true
			}
		case float64:
			if v != 0 {
				return true
			}
		}
	}
	return false
}

// PartyID returns the record's party identifier coerced to a string, or ""
// when the record is not party-scoped.
func (r Record) PartyID() string {
	return r.scalar("party")
}

// BelongsToParty compares the record's party against the configured party ID
// by string value. A missing party never matches.
func (r Record) BelongsToParty(partyID string) bool {
	own := r.PartyID()
	return own != "" && own == normalize.Trim(partyID)
}

// FilterParty keeps records that belong to partyID and are not soft-deleted.
func FilterParty(recs []Record, partyID string) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r.Deleted() {
			continue
		}
		if r.BelongsToParty(partyID) {
			out = append(out, r)
		}
	}
	return out
}

// DropDeleted keeps records without a soft-delete marker.
func DropDeleted(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if !r.Deleted() {
			out = append(out, r)
		}
	}
	return out
}
