package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliceRoundTrip(t *testing.T) {
	e := New("alice", map[string]string{"bio": "hello"})
	require.NoError(t, e.Validate())

	b, err := e.Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{"bio":"hello"},"nickname":"alice"}`, string(b))

	got, err := Decode(b)
	require.NoError(t, err)
	assert.True(t, e.Equal(got))
	assert.Equal(t, "alice", got.Nickname())
	v, ok := got.Field("bio")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestEmptyNicknameIsSchemaViolation(t *testing.T) {
	for name, e := range map[string]Entry{
		"empty":      New("", map[string]string{}),
		"zero value": {},
	} {
		t.Run(name, func(t *testing.T) {
			err := e.Validate()
			var sv *SchemaViolation
			require.ErrorAs(t, err, &sv)
			assert.Equal(t, "nickname", sv.Field)
			assert.ErrorIs(t, err, ErrMissingNickname)
		})
	}
}

func TestEmptyFieldsAreValid(t *testing.T) {
	for _, e := range []Entry{New("bob", map[string]string{}), New("bob", nil), NewFromPairs("bob")} {
		require.NoError(t, e.Validate())
		b, err := e.Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"fields":{},"nickname":"bob"}`, string(b))
		assert.NotNil(t, e.Fields())
		assert.Zero(t, e.Len())
	}
	assert.True(t, New("bob", nil).Equal(New("bob", map[string]string{})))
}

func TestSameNicknameDifferentFieldsDiffer(t *testing.T) {
	a := New("carol", map[string]string{"bio": "one"})
	b := New("carol", map[string]string{"bio": "two"})
	ab, err := a.Encode()
	require.NoError(t, err)
	bb, err := b.Encode()
	require.NoError(t, err)
	assert.NotEqual(t, ab, bb)

	aa, err := a.Address()
	require.NoError(t, err)
	ba, err := b.Address()
	require.NoError(t, err)
	assert.NotEqual(t, aa, ba)
	assert.False(t, a.Equal(b))
}

func TestAddressIsSha256OfEncoding(t *testing.T) {
	e := New("alice", map[string]string{"bio": "hello"})
	b, err := e.Encode()
	require.NoError(t, err)
	sum := sha256.Sum256(b)
	addr, err := e.Address()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), addr)
	assert.Equal(t, addr, Address(b))
}

func TestDuplicatePairsLastWriteWins(t *testing.T) {
	e := NewFromPairs("dave", [2]string{"bio", "first"}, [2]string{"site", "x"}, [2]string{"bio", "second"})
	assert.Equal(t, 2, e.Len())
	v, _ := e.Field("bio")
	assert.Equal(t, "second", v)
	assert.Equal(t, []string{"bio", "site"}, e.Keys())
}

func TestEntryDoesNotShareFields(t *testing.T) {
	in := map[string]string{"bio": "hello"}
	e := New("alice", in)
	in["bio"] = "changed"
	in["extra"] = "x"

	out := e.Fields()
	out["bio"] = "also changed"

	v, _ := e.Field("bio")
	assert.Equal(t, "hello", v)
	assert.Equal(t, 1, e.Len())

	c := e
	assert.True(t, c.Equal(e))
}

func TestHTMLIsNotEscaped(t *testing.T) {
	b, err := New("<b>&", map[string]string{"a<": ">"}).Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{"a<":">"},"nickname":"<b>&"}`, string(b))
	_, err = Decode(b)
	require.NoError(t, err)
}

func TestInvalidUTF8(t *testing.T) {
	for _, e := range []Entry{
		New("\xff", nil),
		New("erin", map[string]string{"\xfe": "v"}),
		New("erin", map[string]string{"k": "\xfe"}),
	} {
		var sv *SchemaViolation
		assert.ErrorAs(t, e.Validate(), &sv)
		_, err := e.Encode()
		assert.ErrorAs(t, err, &sv)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]struct {
		in   string
		want error
	}{
		"missing nickname":     {`{"fields":{}}`, ErrMissingNickname},
		"null nickname":        {`{"fields":{},"nickname":null}`, ErrMissingNickname},
		"missing fields":       {`{"nickname":"alice"}`, nil},
		"null fields":          {`{"fields":null,"nickname":"alice"}`, nil},
		"unknown member":       {`{"fields":{},"nickname":"alice","version":2}`, nil},
		"number value":         {`{"fields":{"age":30},"nickname":"alice"}`, nil},
		"number nickname":      {`{"fields":{},"nickname":7}`, nil},
		"not json":             {`nickname=alice`, nil},
		"empty":                {``, nil},
		"array":                {`[]`, nil},
		"trailing value":       {`{"fields":{},"nickname":"alice"}{}`, nil},
		"trailing newline":     {"{\"fields\":{},\"nickname\":\"alice\"}\n", ErrNonCanonical},
		"whitespace":           {`{"fields":{}, "nickname":"alice"}`, ErrNonCanonical},
		"member order":         {`{"nickname":"alice","fields":{}}`, ErrNonCanonical},
		"unsorted keys":        {`{"fields":{"b":"1","a":"2"},"nickname":"alice"}`, ErrNonCanonical},
		"duplicate member":     {`{"fields":{},"nickname":"alice","nickname":"mallory"}`, ErrNonCanonical},
		"member case":          {`{"fields":{},"Nickname":"alice"}`, ErrNonCanonical},
		"escaped html":         {`{"fields":{},"nickname":"\u003cb\u003e"}`, ErrNonCanonical},
		"invalid utf8 content": {"{\"fields\":{},\"nickname\":\"\xff\"}", nil},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(c.in))
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			if c.want != nil {
				assert.ErrorIs(t, err, c.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	_, err := Verify([]byte(`{"fields":{},"nickname":""}`))
	var sv *SchemaViolation
	require.ErrorAs(t, err, &sv)
	assert.ErrorIs(t, err, ErrMissingNickname)

	_, err = Verify([]byte(`{"fields":{}}`))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.False(t, errors.As(err, &sv))

	e, err := Verify([]byte(`{"fields":{"bio":"hello"},"nickname":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, "alice", e.Nickname())
}

func TestNicknameLookup(t *testing.T) {
	n, err := Nickname([]byte(`{"fields":{"bio":"hello"},"nickname":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, "alice", n)

	// fields are never looked at
	n, err = Nickname([]byte(`{"fields":{"bio":[1,2,{"x":null}]},"nickname":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, "alice", n)

	n, err = Nickname([]byte(`{"fields":{},"nickname":""}`))
	require.NoError(t, err)
	assert.Equal(t, "", n)

	for _, in := range []string{`{"fields":{}}`, `{"fields":{},"nickname":null}`} {
		_, err = Nickname([]byte(in))
		assert.ErrorIs(t, err, ErrMissingNickname)
	}
	for _, in := range []string{`{"nickname":5}`, `"alice"`, `{"nickname":"alice"`} {
		_, err = Nickname([]byte(in))
		var de *DecodeError
		assert.ErrorAs(t, err, &de, in)
	}
}
