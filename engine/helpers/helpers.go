package helpers

import (
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/library"
	"nostrprofiles/state/profile"
)

// ProfileEvent signs a profile event for entry with the local wallet.
func ProfileEvent(entry profile.Entry) (nostr.Event, error) {
	w, err := actors.MyWallet()
	if err != nil {
		return nostr.Event{}, err
	}
	return NewProfileEvent(w.PrivateKey, entry, time.Now())
}

// NewProfileEvent builds and signs a profile event. The entry is validated first so an
// agent never publishes something every node would reject.
func NewProfileEvent(privateKey string, entry profile.Entry, createdAt time.Time) (r nostr.Event, err error) {
	if err = entry.Validate(); err != nil {
		return
	}
	content, err := entry.Encode()
	if err != nil {
		return
	}
	return sign(privateKey, nostr.Event{
		CreatedAt: nostr.Timestamp(createdAt.Unix()),
		Kind:      actors.ProfileKind,
		Tags:      nostr.Tags{nostr.Tag{"d", profile.Address(content)}},
		Content:   string(content),
	})
}

// DeleteEvent tombstones a profile event previously published by the local wallet.
func DeleteEvent(id library.Sha256, reason string) (nostr.Event, error) {
	w, err := actors.MyWallet()
	if err != nil {
		return nostr.Event{}, err
	}
	return NewDeleteEvent(w.PrivateKey, id, reason, time.Now())
}

func NewDeleteEvent(privateKey string, id library.Sha256, reason string, createdAt time.Time) (nostr.Event, error) {
	if !library.IsSha256(id) {
		return nostr.Event{}, fmt.Errorf("invalid event id %q", id)
	}
	return sign(privateKey, nostr.Event{
		CreatedAt: nostr.Timestamp(createdAt.Unix()),
		Kind:      actors.DeletionKind,
		Tags:      nostr.Tags{nostr.Tag{"e", id}},
		Content:   reason,
	})
}

func sign(privateKey string, r nostr.Event) (nostr.Event, error) {
	pk, err := actors.PubKey(privateKey)
	if err != nil {
		return nostr.Event{}, err
	}
	r.PubKey = pk
	r.ID = r.GetID()
	if err = r.Sign(privateKey); err != nil {
		return nostr.Event{}, err
	}
	return r, nil
}
