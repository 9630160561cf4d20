package library

import (
	"github.com/nbd-wtf/go-nostr"
)

// GetFirstTag returns the value of the first tag named exactly key. A tag without a
// value is skipped.
func GetFirstTag(e nostr.Event, key string) (string, bool) {
	for _, tag := range e.Tags {
		if len(tag) > 1 && tag[0] == key {
			return tag[1], true
		}
	}
	return "", false
}

// GetEventReferences returns every well formed event ID named in an "e" tag.
func GetEventReferences(e nostr.Event) (r []Sha256) {
	for _, tag := range e.Tags {
		if len(tag) > 1 && tag[0] == "e" {
			if IsSha256(tag[1]) {
				r = append(r, tag[1])
			}
		}
	}
	return
}
