package actors

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/nbd-wtf/go-nostr/nip06"
	"github.com/sasha-s/go-deadlock"
	"nostrprofiles/engine/library"
)

// Wallet is the local agent's signing key and the nip06 seed words it was derived from.
type Wallet struct {
	PrivateKey string
	SeedWords  string
	Account    library.Account
}

var currentWallet Wallet
var currentWalletMutex = &deadlock.Mutex{}

// MyWallet returns the current Wallet or creates a new one if there isn't one already.
// The agent that signs profile events is this wallet's account.
func MyWallet() (Wallet, error) {
	currentWalletMutex.Lock()
	defer currentWalletMutex.Unlock()
	if len(currentWallet.PrivateKey) == 0 {
		if w, ok := getWalletFromDisk(); ok {
			currentWallet = w
		} else {
			library.LogCLI("Generating a new wallet, write down the seed words if you want to keep it", 4)
			w, err := makeNewWallet()
			if err != nil {
				return Wallet{}, err
			}
			currentWallet = w
			if err := persistCurrentWallet(); err != nil {
				return Wallet{}, err
			}
		}
	}
	return currentWallet, nil
}

func makeNewWallet() (Wallet, error) {
	seedWords, err := nip06.GenerateSeedWords()
	if err != nil {
		return Wallet{}, err
	}
	seed := nip06.SeedFromWords(seedWords)
	sk, err := nip06.PrivateKeyFromSeed(seed)
	if err != nil {
		return Wallet{}, err
	}
	pk, err := PubKey(sk)
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{
		PrivateKey: sk,
		SeedWords:  seedWords,
		Account:    pk,
	}, nil
}

// PubKey derives the x-only schnorr pubkey (the nostr account) for a hex private key.
func PubKey(privateKey string) (library.Account, error) {
	keyb, err := hex.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("error decoding key from hex: %w", err)
	}
	if len(keyb) != 32 {
		return "", fmt.Errorf("private key must be 32 bytes, got %d", len(keyb))
	}
	_, pubkey := btcec.PrivKeyFromBytes(keyb)
	return hex.EncodeToString(pubkey.SerializeCompressed()[1:]), nil
}

func walletFile() (string, bool) {
	c := MakeOrGetConfig()
	if c == nil {
		return "", false
	}
	return filepath.Join(c.GetString("rootDir"), "wallet.dat"), true
}

func persistCurrentWallet() error {
	name, ok := walletFile()
	if !ok {
		return nil
	}
	bytes, err := json.Marshal(currentWallet)
	if err != nil {
		return err
	}
	return os.WriteFile(name, bytes, 0600)
}

func getWalletFromDisk() (w Wallet, ok bool) {
	name, ok := walletFile()
	if !ok {
		return Wallet{}, false
	}
	file, err := os.ReadFile(name)
	if err != nil {
		library.LogCLI(fmt.Sprintf("Error getting wallet file: %s", err.Error()), 2)
		return Wallet{}, false
	}
	err = json.Unmarshal(file, &w)
	if err != nil {
		library.LogCLI(fmt.Sprintf("Error parsing wallet file: %s", err.Error()), 3)
		return Wallet{}, false
	}
	return w, true
}
