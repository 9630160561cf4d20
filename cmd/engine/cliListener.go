package main

import (
	"fmt"

	"github.com/eiannone/keyboard"
	"nostrprofiles/engine/actors"
	"nostrprofiles/state/profiles"
)

// cliListener is a cheap and nasty way to inspect the engine while it runs. It listens for keypresses and executes commands.
func cliListener(interrupt chan struct{}) {
	fmt.Println("VIEW CURRENT STATE:\np: profiles table\nw: current wallet\nc: engine config\nq: to quit")
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			fmt.Println(err)
			return
		}
		str := string(r)
		switch str {
		default:
			if k == keyboard.KeyEnter {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to anything. See cliListener.go for more details.")
		case "q":
			close(interrupt)
			return
		case "w":
			w, err := actors.MyWallet()
			if err != nil {
				fmt.Println(err)
				break
			}
			fmt.Printf("Current Wallet: \n%s\n", w.Account)
		case "p":
			for account, record := range profiles.GetMap() {
				fmt.Printf("ACCOUNT: %s\nNICKNAME: %s\nFIELDS: %v\nEVENT: %s\nADDRESS: %s\n\n",
					account, record.Entry.Nickname(), record.Entry.Fields(), record.EventID, record.Address)
			}
		case "c":
			fmt.Println("CURRENT CONFIG")
			for k, v := range actors.MakeOrGetConfig().AllSettings() {
				fmt.Printf("\nKey: %s; Value: %v\n", k, v)
			}
		}
	}
}
