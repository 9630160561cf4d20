package profile

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEntryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	fields := gen.MapOf(gen.AnyString(), gen.AnyString())

	properties.Property("decode(encode(x)) == x", prop.ForAll(
		func(nickname string, fields map[string]string) bool {
			e := New(nickname, fields)
			b, err := e.Encode()
			if err != nil {
				return false
			}
			got, err := Decode(b)
			return err == nil && got.Equal(e)
		},
		gen.AnyString(), fields,
	))

	properties.Property("encoding ignores insertion order", prop.ForAll(
		func(nickname string, fields map[string]string) bool {
			keys := New(nickname, fields).Keys()
			forward := make([][2]string, 0, len(keys))
			backward := make([][2]string, 0, len(keys))
			for i := range keys {
				forward = append(forward, [2]string{keys[i], fields[keys[i]]})
				j := len(keys) - 1 - i
				backward = append(backward, [2]string{keys[j], fields[keys[j]]})
			}
			a, errA := NewFromPairs(nickname, forward...).Encode()
			b, errB := NewFromPairs(nickname, backward...).Encode()
			return errA == nil && errB == nil && bytes.Equal(a, b)
		},
		gen.AnyString(), fields,
	))

	properties.Property("non-empty nickname always validates", prop.ForAll(
		func(nickname string, fields map[string]string) bool {
			return New(nickname, fields).Validate() == nil
		},
		gen.Identifier(), fields,
	))

	properties.Property("repeated key keeps the last value", prop.ForAll(
		func(key, first, second string) bool {
			e := NewFromPairs("frank", [2]string{key, first}, [2]string{key, second})
			v, ok := e.Field(key)
			return ok && v == second && e.Len() == 1
		},
		gen.AnyString(), gen.AnyString(), gen.AnyString(),
	))

	properties.TestingRun(t)
}
