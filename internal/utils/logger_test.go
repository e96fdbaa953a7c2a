package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestServiceHookStampsEntries(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.AddHook(&serviceHook{service: "sales-service"})

	l.Info("schema ensured")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "sales-service", entry["service"])
	require.Equal(t, "schema ensured", entry["msg"])
}

func TestInitLoggerFormatSelection(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	InitLogger("sales-service")
	require.IsType(t, &logrus.JSONFormatter{}, Logger.Formatter)

	t.Setenv("LOG_FORMAT", "")
	InitLogger("sales-service")
	require.IsType(t, &logrus.TextFormatter{}, Logger.Formatter)
}
