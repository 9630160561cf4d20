package library

// Account is a hex encoded nostr pubkey, the agent that owns a profile.
type Account = string

// Sha256 is a hex encoded sha256 digest, used for event IDs and content addresses.
type Sha256 = string
