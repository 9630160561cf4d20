package profiles

import (
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/library"
	"nostrprofiles/state/profile"
)

// HandleEvent applies a profile or deletion event to the current state. Any event that
// does not change state is returned as an error.
func HandleEvent(event nostr.Event) (m Mapped, e error) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return currentState.handleEvent(event)
}

func (s *db) handleEvent(event nostr.Event) (Mapped, error) {
	if sig, err := event.CheckSignature(); !sig {
		if err != nil {
			return nil, fmt.Errorf("event %s has an invalid signature: %w", event.ID, err)
		}
		return nil, fmt.Errorf("event %s has an invalid signature", event.ID)
	}
	switch event.Kind {
	case actors.ProfileKind:
		if err := s.handleProfile(event); err != nil {
			return nil, err
		}
	case actors.DeletionKind:
		if err := s.handleDeletion(event); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("event %s did not cause a state change", event.ID)
	}
	return s.getMap(), nil
}

func (s *db) handleProfile(event nostr.Event) error {
	if _, deleted := s.tombstones[event.ID]; deleted {
		return fmt.Errorf("event %s has been deleted", event.ID)
	}
	content := []byte(event.Content)
	entry, err := profile.Verify(content)
	if err != nil {
		return fmt.Errorf("event %s rejected: %w", event.ID, err)
	}
	address := profile.Address(content)
	if d, ok := library.GetFirstTag(event, "d"); ok && d != address {
		return fmt.Errorf("event %s names address %s but carries %s", event.ID, d, address)
	}
	if existing, ok := s.data[event.PubKey]; ok && !supersedes(event, existing) {
		return fmt.Errorf("event %s is not newer than profile event %s", event.ID, existing.EventID)
	}
	s.upsert(Record{
		Account:   event.PubKey,
		Entry:     entry,
		EventID:   event.ID,
		Address:   address,
		CreatedAt: int64(event.CreatedAt),
	}, event)
	return nil
}

// supersedes orders profile events from one agent by creation time, then by lowest event
// ID so every node picks the same winner for simultaneous updates.
func supersedes(event nostr.Event, existing Record) bool {
	if created := int64(event.CreatedAt); created != existing.CreatedAt {
		return created > existing.CreatedAt
	}
	return event.ID < existing.EventID
}

// handleDeletion only tombstones the author's own current profile event.
func (s *db) handleDeletion(event nostr.Event) error {
	current, ok := s.data[event.PubKey]
	if !ok || current.Deleted {
		return fmt.Errorf("event %s did not cause a state change", event.ID)
	}
	for _, id := range library.GetEventReferences(event) {
		if id == current.EventID {
			s.tombstone(current)
			library.LogCLI(fmt.Sprintf("profile %s of %s deleted by %s", current.EventID, current.Account, event.ID), 4)
			return nil
		}
	}
	return fmt.Errorf("event %s did not cause a state change", event.ID)
}
