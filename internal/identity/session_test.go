package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animetracker/internal/domain"
)

func TestSession_StartsAsGuest(t *testing.T) {
	s := NewSession()
	assert.True(t, s.Current().Guest())
}

func TestSession_SignInNotifiesSubscribers(t *testing.T) {
	s := NewSession()

	var seen []Identity
	s.Subscribe(func(id Identity) { seen = append(seen, id) })

	require.NoError(t, s.SignIn(Identity{UserID: " user-1 ", Token: "t"}))
	require.NoError(t, s.SignIn(Identity{UserID: "user-1", Token: "t"}))
	s.SignOut()

	require.Len(t, seen, 2, "unchanged identity is not re-announced")
	assert.Equal(t, "user-1", seen[0].UserID)
	assert.True(t, seen[1].Guest())
}

func TestSession_SignInRequiresUser(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.SignIn(Identity{}), domain.ErrInvalidInput)
}

func TestSession_Unsubscribe(t *testing.T) {
	s := NewSession()

	calls := 0
	unsubscribe := s.Subscribe(func(Identity) { calls++ })
	require.NoError(t, s.SignIn(Identity{UserID: "a"}))
	unsubscribe()
	require.NoError(t, s.SignIn(Identity{UserID: "b"}))

	assert.Equal(t, 1, calls)
}

func TestSession_SubscriberMayReadCurrent(t *testing.T) {
	s := NewSession()

	var inside Identity
	s.Subscribe(func(Identity) { inside = s.Current() })
	require.NoError(t, s.SignIn(Identity{UserID: "a"}))

	assert.Equal(t, "a", inside.UserID)
}

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateToken("user-7", secret, time.Hour)
	require.NoError(t, err)

	userID, err := UserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-7", userID)
}

func TestToken_Rejected(t *testing.T) {
	secret := []byte("secret")

	expired, err := GenerateToken("user-7", secret, -time.Minute)
	require.NoError(t, err)
	_, err = UserIDFromToken(expired, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	valid, err := GenerateToken("user-7", secret, time.Hour)
	require.NoError(t, err)
	_, err = UserIDFromToken(valid, []byte("other"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = UserIDFromToken("not-a-jwt", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
