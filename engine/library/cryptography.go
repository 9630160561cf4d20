package library

import (
	"crypto/sha256"
	"encoding/hex"
)

func Sha256Sum(b []byte) Sha256 {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// IsSha256 reports whether s looks like a hex digest (event ID, address or pubkey).
func IsSha256(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
