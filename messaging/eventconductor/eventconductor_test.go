package eventconductor

import (
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/helpers"
	"nostrprofiles/state/profile"
	"nostrprofiles/state/profiles"
)

func TestHandleEventOnce(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	pk, err := actors.PubKey(sk)
	require.NoError(t, err)
	at := time.Unix(1700000000, 0)

	ev, err := helpers.NewProfileEvent(sk, profile.New("gina", map[string]string{"bio": "hi"}), at)
	require.NoError(t, err)
	require.NoError(t, HandleEvent(ev))
	// the same event from a second relay is not an error
	require.NoError(t, HandleEvent(ev))

	r, ok := profiles.GetProfile(pk)
	require.True(t, ok)
	assert.Equal(t, ev.ID, r.EventID)
}

func TestRejectedEventCanBeRetried(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	pk, err := actors.PubKey(sk)
	require.NoError(t, err)
	at := time.Unix(1700000000, 0)

	ev, err := helpers.NewProfileEvent(sk, profile.New("hank", nil), at)
	require.NoError(t, err)
	del, err := helpers.NewDeleteEvent(sk, ev.ID, "gone", at.Add(time.Second))
	require.NoError(t, err)

	// the deletion overtook its profile on the wire
	assert.Error(t, HandleEvent(del))
	require.NoError(t, HandleEvent(ev))
	require.NoError(t, HandleEvent(del))

	_, ok := profiles.GetProfile(pk)
	assert.False(t, ok)
}
