package logger

import (
	"testing"

	"github.com/rs/zerolog"

	corelogger "github.com/mbrivio/turni/core/logger"
)

func TestNewReturnsLogger(t *testing.T) {
	l := New("test")
	if l == nil {
		t.Fatal("New returned nil")
	}
	// Must not panic.
	l.Debugf("debug %d", 1)
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("error: %v", nil)
}

func TestConfigureAppliesLevel(t *testing.T) {
	t.Cleanup(func() { Configure("info", "json") })

	Configure("warn", "json")
	l := New("test").(*ZerologLogger)
	if got := l.log.GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("level = %s, want warn", got)
	}

	Configure("debug", "console")
	l = New("test").(*ZerologLogger)
	if got := l.log.GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("level = %s, want debug", got)
	}
	l.Debugf("console output must not panic")
}

func TestConfigureUnknownLevelFallsBack(t *testing.T) {
	t.Cleanup(func() { Configure("info", "json") })

	Configure("verbose", "json")
	l := New("test").(*ZerologLogger)
	if got := l.log.GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("level = %s, want info fallback", got)
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infof("discarded %s", "message")
	// Same type as the core package's no-op logger.
	var _ corelogger.NopLogger = NopLogger{}
}
