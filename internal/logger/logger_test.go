package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"WARN", false},
		{"bogus", true},
	}

	for _, tt := range tests {
		err := Setup(Config{Level: tt.level, Format: "json"})
		if (err != nil) != tt.wantErr {
			t.Errorf("Setup(level=%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

// Component loggers are value types; callers bind them to a variable and
// log through that binding.
func TestWithComponentTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	defer func() { log.Logger = prev }()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	componentLog := WithComponent("billing")
	componentLog.Info().Str("serial_no", "AMR-8001").Msg("bill generated")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if line["component"] != "billing" {
		t.Errorf("component = %v, want billing", line["component"])
	}
	if line["serial_no"] != "AMR-8001" {
		t.Errorf("serial_no = %v, want AMR-8001", line["serial_no"])
	}
}
