package profile

import (
	"bytes"
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// wireEntry is version 1 of the encoding. Member order here and map key sorting in
// encoding/json give the canonical byte layout; adding a member means a new event kind.
type wireEntry struct {
	Fields   map[string]string `json:"fields"`
	Nickname *string           `json:"nickname"`
}

// Encode returns the canonical bytes of the entry. An empty nickname still encodes, it
// is Validate that rejects it.
func (e Entry) Encode() ([]byte, error) {
	if err := e.validateText(); err != nil {
		return nil, err
	}
	nickname := e.nickname
	w := wireEntry{Fields: e.fields, Nickname: &nickname}
	if w.Fields == nil {
		w.Fields = map[string]string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses canonical entry bytes. Anything other than the exact canonical encoding
// of some entry is a *DecodeError; the result is not validated.
func Decode(b []byte) (Entry, error) {
	if !utf8.Valid(b) {
		return Entry{}, decodeErr("input is not valid UTF-8")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var w wireEntry
	if err := dec.Decode(&w); err != nil {
		return Entry{}, &DecodeError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Entry{}, decodeErr("trailing data after entry")
	}
	if w.Nickname == nil {
		return Entry{}, &DecodeError{Err: ErrMissingNickname}
	}
	if w.Fields == nil {
		return Entry{}, decodeErr("fields member is missing or null")
	}
	e := Entry{nickname: *w.Nickname, fields: w.Fields}
	canonical, err := e.Encode()
	if err != nil {
		return Entry{}, &DecodeError{Err: err}
	}
	if !bytes.Equal(canonical, b) {
		return Entry{}, &DecodeError{Err: ErrNonCanonical}
	}
	return e, nil
}

// Verify decodes and validates in one step. This is the full admission check for bytes
// arriving from the network.
func Verify(b []byte) (Entry, error) {
	e, err := Decode(b)
	if err != nil {
		return Entry{}, err
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Nickname pulls the nickname out of encoded bytes without decoding the fields, for
// indexers that only need the handle. It does not check canonical form.
func Nickname(b []byte) (string, error) {
	if !gjson.ValidBytes(b) {
		return "", decodeErr("input is not valid JSON")
	}
	r := gjson.ParseBytes(b)
	if !r.IsObject() {
		return "", decodeErr("entry is not a JSON object")
	}
	n := r.Get("nickname")
	if !n.Exists() || n.Type == gjson.Null {
		return "", &DecodeError{Err: ErrMissingNickname}
	}
	if n.Type != gjson.String {
		return "", decodeErr("nickname is not a string")
	}
	return n.Str, nil
}
