package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	for in, want := range map[int64]string{
		0:            "0B",
		1023:         "1023B",
		1024:         "1KB",
		1536:         "1.50KB",
		64 * MB:      "64MB",
		3 * GB / 2:   "1.50GB",
		2 * TB:       "2TB",
	} {
		require.Equal(t, want, FormatBytes(in))
	}
}

func TestParseBytes(t *testing.T) {
	for in, want := range map[string]int64{
		"0":      0,
		"512":    512,
		"512B":   512,
		"4k":     4 * KB,
		"4KB":    4 * KB,
		"64MB":   64 * MB,
		" 1.5gb": 3 * GB / 2,
		"2T":     2 * TB,
	} {
		got, err := ParseBytes(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "MB", "-1KB", "ten"} {
		_, err := ParseBytes(in)
		require.Error(t, err, in)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int64{1, 1024, 4 * MB, 10 * GB} {
		got, err := ParseBytes(FormatBytes(n))
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}
