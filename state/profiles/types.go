package profiles

import (
	"nostrprofiles/engine/library"
	"nostrprofiles/state/profile"
)

// Mapped is a snapshot of every live profile, keyed by the owning agent.
type Mapped map[library.Account]Record

// Record is an admitted profile entry and the event that carried it.
type Record struct {
	Account   library.Account
	Entry     profile.Entry
	EventID   library.Sha256
	Address   library.Sha256 // content address of Entry
	CreatedAt int64
	Deleted   bool
}
