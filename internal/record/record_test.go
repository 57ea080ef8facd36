package record

import "testing"

func TestOwnerUID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  Record
		want string
	}{
		{name: "nil record", rec: nil, want: ""},
		{name: "empty record", rec: Record{}, want: ""},
		{name: "flattened firebase uid", rec: Record{"firebase_uid": "abc123"}, want: "abc123"},
		{name: "priority order", rec: Record{"user_id": "low", "firebase_uid": "high"}, want: "high"},
		{name: "numeric user id", rec: Record{"user_id": float64(42)}, want: "42"},
		{name: "whitespace is absent", rec: Record{"firebase_uid": "   ", "user_uid": "u1"}, want: "u1"},
		{
			name: "nested uploaded_by",
			rec:  Record{"uploaded_by": map[string]any{"uid": "nested-uid"}},
			want: "nested-uid",
		},
		{
			name: "nested user after uploaded_by",
			rec: Record{
				"uploaded_by": map[string]any{"email": "a@b.c"},
				"user":        map[string]any{"firebase_uid": "user-uid"},
			},
			want: "user-uid",
		},
		{name: "uploaded_by not an object", rec: Record{"uploaded_by": "someone"}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.rec.OwnerUID(); got != tc.want {
				t.Fatalf("OwnerUID() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOwnerEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  Record
		want string
	}{
		{name: "nil record", rec: nil, want: ""},
		{name: "lowercased", rec: Record{"email": "Foo@Example.Com"}, want: "foo@example.com"},
		{
			name: "nested beats flattened",
			rec: Record{
				"uploaded_by": map[string]any{"email": "Nested@X.Com"},
				"email":       "flat@x.com",
			},
			want: "nested@x.com",
		},
		{name: "uploaded_by_email", rec: Record{"uploaded_by_email": " up@x.com "}, want: "up@x.com"},
		{name: "user_email", rec: Record{"user_email": "ue@x.com"}, want: "ue@x.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.rec.OwnerEmail(); got != tc.want {
				t.Fatalf("OwnerEmail() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAuthorUID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  Record
		want string
	}{
		{name: "author_username", rec: Record{"author_username": "UID1"}, want: "UID1"},
		{name: "nested author username", rec: Record{"author": map[string]any{"username": "u2"}}, want: "u2"},
		{name: "nested author id", rec: Record{"author": map[string]any{"id": float64(7)}}, want: "7"},
		{name: "flattened author_id", rec: Record{"author_id": float64(9)}, want: "9"},
		{name: "bare author scalar", rec: Record{"author": "raw-uid"}, want: "raw-uid"},
		{name: "none", rec: Record{}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.rec.AuthorUID(); got != tc.want {
				t.Fatalf("AuthorUID() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDeleted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rec  Record
		want bool
	}{
		{name: "nil", rec: nil, want: false},
		{name: "clean", rec: Record{"id": 1}, want: false},
		{name: "deleted bool", rec: Record{"deleted": true}, want: true},
		{name: "is_deleted bool", rec: Record{"is_deleted": true}, want: true},
		{name: "deleted string", rec: Record{"deleted": "true"}, want: true},
		{name: "deleted numeric", rec: Record{"is_deleted": float64(1)}, want: true},
		{name: "deleted false", rec: Record{"deleted": false}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.rec.Deleted(); got != tc.want {
				t.Fatalf("Deleted() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterParty(t *testing.T) {
	t.Parallel()

	recs := []Record{
		{"id": 1, "party": float64(1)},
		{"id": 2, "party": "1"},
		{"id": 3, "party": float64(2)},
		{"id": 4},
		{"id": 5, "party": "1", "deleted": true},
	}

	got := FilterParty(recs, "1")
	if len(got) != 2 {
		t.Fatalf("FilterParty kept %d records, want 2", len(got))
	}
	if got[0].ID() != "1" || got[1].ID() != "2" {
		t.Fatalf("FilterParty kept ids %q and %q", got[0].ID(), got[1].ID())
	}
}

func TestBelongsToPartyMissingPartyNeverMatches(t *testing.T) {
	t.Parallel()

	if (Record{}).BelongsToParty("") {
		t.Fatalf("record without a party must not match an empty configured id")
	}
	if (Record{}).BelongsToParty("1") {
		t.Fatalf("record without a party must not wildcard-match")
	}
}
