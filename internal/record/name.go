package record

import (
	"github.com/partyline/partyline/internal/normalize"
)

// Flattened name fields shared by every resource.
var flatNameFields = []string{
	"name",
	"display_name",
	"user_name",
	"guest_name",
	"full_name",
}

// Resource-specific flattened synonyms, tried after the shared chain.
var kindNameFields = map[Kind][]string{
	KindMessage: {"author_name"},
	KindPhoto:   {"uploader_name"},
}

// Nested owner objects per resource, most specific first.
var kindNameObjects = map[Kind][]string{
	KindRSVP:    {"user"},
	KindMessage: {"author", "user"},
	KindPhoto:   {"uploaded_by", "user"},
}

// DisplayName derives a presentable owner name for the record. The result is
// never empty: after every candidate chain is exhausted it falls back to a
// "Guest {id}" placeholder and finally to "Guest" ("Anonymous" for guestbook
// messages).
func (r Record) DisplayName(kind Kind) string {
	for _, key := range flatNameFields {
		if v := r.scalar(key); v != "" {
			return v
		}
	}
	for _, key := range kindNameFields[kind] {
		if v := r.scalar(key); v != "" {
			return v
		}
	}

	for _, objKey := range kindNameObjects[kind] {
		if v := r.object(objKey).personName(); v != "" {
			return v
		}
	}

	if local := normalize.EmailLocalPart(r.OwnerEmail()); local != "" {
		return local
	}
	if v := r.scalar("username"); v != "" {
		return v
	}
	if id := r.ID(); id != "" {
		return "Guest " + id
	}
	if kind == KindMessage {
		return "Anonymous"
	}
	return "Guest"
}

// personName derives a name from a nested user-like object, checking its
// profile sub-object with the same chain before giving up.
func (r Record) personName() string {
	if r == nil {
		return ""
	}
	for _, key := range []string{"display_name", "displayName"} {
		if v := r.scalar(key); v != "" {
			return v
		}
	}
	first, last := r.scalar("first_name"), r.scalar("last_name")
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	}
	for _, key := range []string{"full_name", "name", "username"} {
		if v := r.scalar(key); v != "" {
			return v
		}
	}
	if profile := r.object("profile"); profile != nil {
		if v := profile.personName(); v != "" {
			return v
		}
	}
	return normalize.EmailLocalPart(r.scalar("email"))
}
