package profiles

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/library"
)

const mindName = "profiles"

type db struct {
	data       map[library.Account]Record
	events     map[library.Account]nostr.Event // the event behind each record, for snapshots
	tombstones map[library.Sha256]struct{}
	mutex      *deadlock.Mutex
}

func newDb() *db {
	return &db{
		data:       make(map[library.Account]Record),
		events:     make(map[library.Account]nostr.Event),
		tombstones: make(map[library.Sha256]struct{}),
		mutex:      &deadlock.Mutex{},
	}
}

var currentState = newDb()

var started = false
var available = &deadlock.Mutex{}

// startDb starts the profiles Mind. It blocks until state has been restored from disk.
func startDb() {
	available.Lock()
	defer available.Unlock()
	if !started {
		started = true
		ready := make(chan struct{})
		go start(ready)
		<-ready
		library.LogCLI("Profiles Mind has started", 4)
	}
}

func start(ready chan struct{}) {
	currentState.mutex.Lock()
	if f, ok := actors.Open(mindName, "current"); ok {
		err := currentState.restore(f)
		f.Close()
		if err != nil {
			library.LogCLI(err.Error(), 1)
		}
	}
	currentState.mutex.Unlock()
	terminate := actors.GetTerminateChan()
	if terminate == nil {
		close(ready)
		return
	}
	actors.GetWaitGroup().Add(1)
	close(ready)
	<-terminate
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	if err := currentState.persistToDisk(); err != nil {
		library.LogCLI(err.Error(), 1)
	}
	actors.GetWaitGroup().Done()
	library.LogCLI("Profiles Mind has shut down", 4)
}

func (s *db) upsert(r Record, event nostr.Event) {
	s.data[r.Account] = r
	s.events[r.Account] = event
}

func (s *db) tombstone(r Record) {
	r.Deleted = true
	s.data[r.Account] = r
	s.tombstones[r.EventID] = struct{}{}
}

func (s *db) getMap() Mapped {
	m := make(Mapped, len(s.data))
	for account, r := range s.data {
		if !r.Deleted {
			m[account] = r
		}
	}
	return m
}

type snapshot struct {
	Events     []nostr.Event    `json:"events"`
	Tombstones []library.Sha256 `json:"tombstones"`
}

func (s *db) snapshot() snapshot {
	accounts := maps.Keys(s.events)
	slices.Sort(accounts)
	snap := snapshot{Events: make([]nostr.Event, 0, len(accounts))}
	for _, a := range accounts {
		snap.Events = append(snap.Events, s.events[a])
	}
	snap.Tombstones = maps.Keys(s.tombstones)
	slices.Sort(snap.Tombstones)
	return snap
}

// restore replays a snapshot. Every event goes through the same checks as live events.
func (s *db) restore(f io.Reader) error {
	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return fmt.Errorf("could not restore profiles: %w", err)
	}
	if skipped := s.load(snap); skipped > 0 {
		library.LogCLI(fmt.Sprintf("restored profiles with %d of %d stored events skipped", skipped, len(snap.Events)), 2)
	}
	return nil
}

// load replays a snapshot. A stored event that no longer passes admission is logged and
// skipped; the rest of the snapshot still loads. Tombstoned
// events are replayed before their tombstones are applied, so a deleted profile still
// blocks older events from the same agent.
func (s *db) load(snap snapshot) (skipped int) {
	for _, event := range snap.Events {
		if _, err := s.handleEvent(event); err != nil {
			library.LogCLI(fmt.Sprintf("skipping stored profile event %s: %s", event.ID, err), 1)
			skipped++
		}
	}
	for _, id := range snap.Tombstones {
		s.tombstones[id] = struct{}{}
	}
	for account, r := range s.data {
		if _, deleted := s.tombstones[r.EventID]; deleted {
			r.Deleted = true
			s.data[account] = r
		}
	}
	return skipped
}

// persistToDisk persists the current state to disk
func (s *db) persistToDisk() error {
	b, err := json.MarshalIndent(s.snapshot(), "", " ")
	if err != nil {
		return err
	}
	return actors.Write(mindName, "current", b)
}
