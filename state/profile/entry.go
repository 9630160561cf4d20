// Package profile defines the profile entry carried by the ledger: a required nickname
// plus free-form text fields. Entries are values; nothing in this package does I/O.
package profile

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"nostrprofiles/engine/library"
)

// Entry is an immutable profile record. The nickname is what other agents search for,
// fields hold anything else the owning agent wants to publish (bio, avatar, location).
type Entry struct {
	nickname string
	fields   map[string]string
}

// New copies fields, so later changes to the caller's map never reach the entry.
func New(nickname string, fields map[string]string) Entry {
	e := Entry{nickname: nickname, fields: make(map[string]string, len(fields))}
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

// NewFromPairs builds the fields from key/value pairs in order. A repeated key keeps the
// last value given for it.
func NewFromPairs(nickname string, pairs ...[2]string) Entry {
	e := Entry{nickname: nickname, fields: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		e.fields[p[0]] = p[1]
	}
	return e
}

func (e Entry) Nickname() string {
	return e.nickname
}

// Fields returns a copy of the entry's fields. It is never nil.
func (e Entry) Fields() map[string]string {
	m := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		m[k] = v
	}
	return m
}

func (e Entry) Field(key string) (string, bool) {
	v, ok := e.fields[key]
	return v, ok
}

// Keys returns the field keys in canonical (bytewise) order.
func (e Entry) Keys() []string {
	keys := maps.Keys(e.fields)
	slices.Sort(keys)
	return keys
}

func (e Entry) Len() int {
	return len(e.fields)
}

// Equal reports structural equality. A nil and an empty field set are the same.
func (e Entry) Equal(o Entry) bool {
	return e.nickname == o.nickname && maps.Equal(e.fields, o.fields)
}

// Validate is the structural check a node runs before admitting an entry. Nickname
// format, length and uniqueness are left to whoever consumes the entry.
func (e Entry) Validate() error {
	if len(e.nickname) == 0 {
		return &SchemaViolation{Field: "nickname", Reason: ErrMissingNickname}
	}
	return e.validateText()
}

func (e Entry) validateText() error {
	if !utf8.ValidString(e.nickname) {
		return &SchemaViolation{Field: "nickname", Reason: errInvalidUTF8}
	}
	for _, k := range e.Keys() {
		if !utf8.ValidString(k) {
			return &SchemaViolation{Field: "fields", Reason: errInvalidUTF8}
		}
		if !utf8.ValidString(e.fields[k]) {
			return &SchemaViolation{Field: "fields." + k, Reason: errInvalidUTF8}
		}
	}
	return nil
}

var errInvalidUTF8 = errors.New("text is not valid UTF-8")

// Address is the content address of the entry's canonical encoding.
func (e Entry) Address() (library.Sha256, error) {
	b, err := e.Encode()
	if err != nil {
		return "", err
	}
	return Address(b), nil
}

// Address hashes already-encoded entry bytes. It does not check them.
func Address(b []byte) library.Sha256 {
	return library.Sha256Sum(b)
}
