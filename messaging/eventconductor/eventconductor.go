package eventconductor

import (
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/library"
	"nostrprofiles/state/profiles"
)

var seen = make(map[library.Sha256]struct{})
var seenLock = &deadlock.Mutex{}

// Start routes events into the profiles Mind until the terminate channel is closed.
// The same event arriving from several relays is handled once.
func Start(eventChan <-chan nostr.Event) {
	actors.GetWaitGroup().Add(1)
	go func() {
		defer actors.GetWaitGroup().Done()
		for {
			select {
			case event := <-eventChan:
				if err := HandleEvent(event); err != nil {
					library.LogCLI(err.Error(), 3)
				}
			case <-actors.GetTerminateChan():
				return
			}
		}
	}()
}

// HandleEvent applies one event, skipping events already applied. Rejected events are
// not remembered so a deletion that arrived before its profile can be offered again.
func HandleEvent(event nostr.Event) error {
	seenLock.Lock()
	defer seenLock.Unlock()
	if _, ok := seen[event.ID]; ok {
		return nil
	}
	if _, err := profiles.HandleEvent(event); err != nil {
		return err
	}
	seen[event.ID] = struct{}{}
	if event.Kind == actors.ProfileKind {
		if r, ok := profiles.GetProfile(event.PubKey); ok {
			library.LogCLI(fmt.Sprintf("profile %q of %s is now %s", r.Entry.Nickname(), r.Account, r.EventID), 4)
		}
	}
	return nil
}
