package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/viper"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/library"
	"nostrprofiles/messaging/eventconductor"
	"nostrprofiles/messaging/relays"
	"nostrprofiles/state/profiles"
)

func main() {
	// Various aspect of this application require global and local settings. To keep things
	// clean and tidy we put these settings in a Viper configuration.
	conf := viper.New()

	// Now we initialise this configuration with basic settings that are required on startup.
	actors.InitConfig(conf)
	// make the config accessible globally
	actors.SetConfig(conf)
	terminateChan := make(chan struct{})
	actors.SetTerminateChan(terminateChan)

	// touching the Mind restores its snapshot before any relay traffic arrives
	library.LogCLI(fmt.Sprintf("%d profiles restored", len(profiles.GetMap())), 4)

	ctx, cancel := context.WithCancel(context.Background())
	eventChan := make(chan nostr.Event)
	eoseChan := make(chan string)
	eventconductor.Start(eventChan)
	go relays.Subscribe(ctx, conf.GetStringSlice("relaysMust"), relays.ProfileFilters(), eventChan, eoseChan)

	interrupt := make(chan struct{})
	go cliListener(interrupt)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
L:
	for {
		select {
		case url := <-eoseChan:
			library.LogCLI("caught up with "+url, 4)
		case <-interrupt:
			break L
		case <-sigs:
			break L
		}
	}
	cancel()
	close(terminateChan)
	actors.GetWaitGroup().Wait()
	fmt.Println("Bye")
}
