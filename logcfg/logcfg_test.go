package logcfg

import (
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, btclog.LevelInfo, cfg.Level)
	assert.False(t, cfg.DisableConsoleLog)
	assert.False(t, cfg.FileLoggingEnabled)
}

func TestBackendDiscardsWhenNoSinksEnabled(t *testing.T) {
	cfg := Default()
	cfg.DisableConsoleLog = true
	backend := Backend(cfg)
	assert.NotNil(t, backend)
}

func TestNewSubsystemAppliesLevel(t *testing.T) {
	cfg := Default()
	cfg.Level = btclog.LevelDebug
	backend := Backend(cfg)
	l := NewSubsystem(backend, cfg)
	assert.Equal(t, btclog.LevelDebug, l.Level())
}

func TestInstallCallsEveryHook(t *testing.T) {
	cfg := Default()
	backend := Backend(cfg)

	var got []btclog.Logger
	hook := func(l btclog.Logger) { got = append(got, l) }

	Install(backend, cfg, hook, hook)
	assert.Len(t, got, 2)
}
