package checksum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumKnownVectors(t *testing.T) {
	cases := []struct {
		algo Algorithm
		in   string
		want string
	}{
		{XXHash, "", "ef46db3751d8e999"},
		{SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{BLAKE3, "", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		{None, "ignored", ""},
	}

	for _, c := range cases {
		got, err := Sum(c.algo, []byte(c.in))
		require.NoError(t, err)
		require.Equal(t, c.want, got, "algorithm %q", c.algo)
	}
}

func TestParse(t *testing.T) {
	for in, want := range map[string]Algorithm{
		"":        None,
		"none":    None,
		"XXHash":  XXHash,
		"xxh64":   XXHash,
		" blake3": BLAKE3,
		"sha256":  SHA256,
	} {
		got, err := Parse(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := Parse("md5")
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestNewHasherRejectsUnknown(t *testing.T) {
	_, err := NewHasher("crc32")
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = Sum("crc32", nil)
	require.ErrorIs(t, err, ErrUnsupported)
}
