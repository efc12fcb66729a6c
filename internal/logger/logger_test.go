package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Jhoney47/GameCodeBase/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		app     config.AppConfig
		level   zapcore.Level
		wantErr bool
	}{
		{"production info", config.AppConfig{Environment: "production", LogLevel: "info"}, zapcore.InfoLevel, false},
		{"development warn", config.AppConfig{Environment: "development", LogLevel: "warn"}, zapcore.WarnLevel, false},
		{"debug flag wins", config.AppConfig{Environment: "production", LogLevel: "error", Debug: true}, zapcore.DebugLevel, false},
		{"bad level", config.AppConfig{Environment: "production", LogLevel: "loud"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.app)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !l.Core().Enabled(tt.level) {
				t.Errorf("Expected level %s to be enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && l.Core().Enabled(tt.level-1) {
				t.Errorf("Expected level %s to be disabled", tt.level-1)
			}
		})
	}
}
