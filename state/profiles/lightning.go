package profiles

import (
	"net/mail"
	"strings"

	"github.com/fiatjaf/go-lnurl"
	"nostrprofiles/engine/library"
	"nostrprofiles/state/profile"
)

// GetLightningEndpoint reads the payment details an agent chose to publish in its
// profile fields: a lud16 lightning address, else the URL behind a lud06 LNURL.
func GetLightningEndpoint(account library.Account) (string, bool) {
	r, ok := GetProfile(account)
	if !ok {
		return "", false
	}
	return lightningEndpoint(r.Entry)
}

func lightningEndpoint(e profile.Entry) (string, bool) {
	if lud16, ok := e.Field("lud16"); ok {
		if addr, err := mail.ParseAddress(lud16); err == nil {
			return addr.Address, true
		}
	}
	if lud06, ok := e.Field("lud06"); ok {
		if u, err := lnurl.LNURLDecode(strings.TrimSpace(lud06)); err == nil {
			return u, true
		}
	}
	return "", false
}
