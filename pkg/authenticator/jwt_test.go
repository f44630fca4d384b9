package authenticator_test

import (
	"testing"
	"time"

	"github.com/questx-lab/rewards/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type session struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[session]("secret", time.Minute)
	token, err := engine.Generate("user1", session{ID: "user1", Kind: "human"})
	require.NoError(t, err)

	s, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, session{ID: "user1", Kind: "human"}, s)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[session]("secret", time.Nanosecond)
	token, err := engine.Generate("user1", session{ID: "user1"})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine[session]("secret", time.Minute).
		Generate("user1", session{ID: "user1"})
	require.NoError(t, err)

	_, err = authenticator.NewTokenEngine[session]("other", time.Minute).Verify(token)
	require.Error(t, err)
}
