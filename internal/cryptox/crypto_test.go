package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("fixed-salt-value")

	k1 := DeriveKey([]byte("passphrase"), salt)
	k2 := DeriveKey([]byte("passphrase"), salt)

	require.Len(t, k1, KeySize)
	require.Equal(t, k1, k2)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	k1 := DeriveKey([]byte("passphrase"), []byte("salt-1"))
	k2 := DeriveKey([]byte("passphrase"), []byte("salt-2"))

	require.False(t, bytes.Equal(k1, k2))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("pw"), NewSalt())

	blob, err := Seal(key, []byte("tok1"))
	require.NoError(t, err)
	require.NotContains(t, string(blob), "tok1")

	got, err := Open(key, blob)
	require.NoError(t, err)
	require.Equal(t, []byte("tok1"), got)
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	key := DeriveKey([]byte("pw"), NewSalt())

	a, err := Seal(key, []byte("same"))
	require.NoError(t, err)
	b, err := Seal(key, []byte("same"))
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	salt := NewSalt()
	blob, err := Seal(DeriveKey([]byte("right"), salt), []byte("tok1"))
	require.NoError(t, err)

	_, err = Open(DeriveKey([]byte("wrong"), salt), blob)
	require.Error(t, err)
}

func TestOpen_TamperedAndShortBlobs(t *testing.T) {
	key := DeriveKey([]byte("pw"), NewSalt())
	blob, err := Seal(key, []byte("tok1"))
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xFF
	_, err = Open(key, blob)
	require.Error(t, err)

	_, err = Open(key, []byte{1, 2, 3})
	require.ErrorIs(t, err, ErrMalformedBlob)
}
