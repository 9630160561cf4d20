package relays

import (
	"context"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/sasha-s/go-deadlock"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/library"
)

// ProfileFilters matches profile and deletion events, optionally from a set of authors.
func ProfileFilters(authors ...library.Account) nostr.Filters {
	f := nostr.Filter{Kinds: []int{actors.ProfileKind, actors.DeletionKind}}
	if len(authors) > 0 {
		f.Authors = authors
	}
	return nostr.Filters{f}
}

// Subscribe streams matching events from every relay into eChan until ctx is done. eose
// receives the relay URL once each relay has sent its stored events.
func Subscribe(ctx context.Context, urls []string, filters nostr.Filters, eChan chan<- nostr.Event, eose chan<- string) {
	wait := &deadlock.WaitGroup{}
	for _, url := range urls {
		wait.Add(1)
		go func(url string) {
			defer wait.Done()
			relay, err := nostr.RelayConnect(ctx, url)
			if err != nil {
				library.LogCLI(fmt.Sprintf("could not connect to relay %s: %s", url, err), 2)
				return
			}
			defer relay.Close()
			sub, err := relay.Subscribe(ctx, filters)
			if err != nil {
				library.LogCLI(err.Error(), 2)
				return
			}
			defer sub.Close()
			for {
				select {
				case ev, ok := <-sub.Events:
					if !ok {
						return
					}
					select {
					case eChan <- *ev:
					case <-ctx.Done():
						return
					}
				case <-sub.EndOfStoredEvents:
					if eose != nil {
						select {
						case eose <- url:
						case <-ctx.Done():
							return
						}
					}
				case <-ctx.Done():
					return
				}
			}
		}(url)
	}
	wait.Wait()
}

// PublishToRelays sends events to every relay and returns the first failure seen.
func PublishToRelays(ctx context.Context, events []nostr.Event, urls []string) error {
	var wg = &deadlock.WaitGroup{}
	var mu = &deadlock.Mutex{}
	var first error
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		library.LogCLI(err.Error(), 2)
		if first == nil {
			first = err
		}
	}
	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			relay, err := nostr.RelayConnect(cctx, url)
			if err != nil {
				fail(fmt.Errorf("could not connect to relay %s: %w", url, err))
				return
			}
			defer relay.Close()
			for _, event := range events {
				if _, err := relay.Publish(cctx, event); err != nil {
					fail(fmt.Errorf("could not publish %s to relay %s: %w", event.ID, url, err))
				}
			}
		}(url)
	}
	wg.Wait()
	return first
}
