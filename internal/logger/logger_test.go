package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWith_JSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := NewWith("production", "debug", &buf)

	log.Component("store").Debug("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, "voice-trends-go", entry["service"])
}

func TestNewWith_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewWith("test", tt.level, &bytes.Buffer{})
			assert.Equal(t, tt.want, log.Logger.GetLevel())
		})
	}
}

func TestWithRequest_UsesHeaderID(t *testing.T) {
	log := Discard()
	r := httptest.NewRequest("GET", "/api/insights/kpis", nil)
	r.Header.Set("X-Request-ID", "req-42")

	entry := log.WithRequest(r)

	assert.Equal(t, "req-42", entry.Data["req_id"])
	assert.Equal(t, "/api/insights/kpis", entry.Data["path"])
}

func TestWithRequest_GeneratesID(t *testing.T) {
	log := Discard()
	r := httptest.NewRequest("GET", "/healthz", nil)

	entry := log.WithRequest(r)

	id, _ := entry.Data["req_id"].(string)
	assert.Len(t, id, 36)
}

func TestWithError(t *testing.T) {
	log := Discard()

	assert.Equal(t, "boom", log.WithError(errors.New("boom")).Data["error"])
	assert.NotContains(t, log.WithError(nil).Data, "error")
}
