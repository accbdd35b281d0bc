package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	require.Equal(t, logrus.InfoLevel, ParseLevel("INFO"))
	require.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	require.Equal(t, logrus.WarnLevel, ParseLevel("Warning"))
	require.Equal(t, logrus.ErrorLevel, ParseLevel("ERROR"))
	require.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, logrus.WarnLevel)

	l.Info("hidden")
	l.WithField("path", "a.png").Warn("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "level=warning")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "path=a.png")
}
