// Package logcfg wires btclog subsystem loggers to a stdout writer plus an
// optional rolling file sink (gopkg.in/natefinch/lumberjack.v2), matching
// corelog/adapter.go's FileLoggingEnabled/DisableConsoleLog two-sink shape
// but standardized on btclog rather than zerolog, since the PoS kernel
// reference code (ihavenoface-btcd/blockchain/kernel.go) logs through
// btclog directly.
package logcfg

import (
	"io"
	"os"

	"github.com/btcsuite/btclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where subsystem logs go.
type Config struct {
	DisableConsoleLog bool
	FileLoggingEnabled bool
	Directory          string
	Filename           string
	MaxSizeMB          int
	MaxBackups         int
	MaxAgeDays         int
	Level              btclog.Level
}

// Default returns the logcfg defaults: console only, info level.
func Default() Config {
	return Config{
		Directory:  "logs",
		Filename:   "posd.log",
		MaxSizeMB:  150,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Level:      btclog.LevelInfo,
	}
}

// Backend builds the shared btclog.Backend that every subsystem logger
// (chaincfg, pow, stake, chainindex, orphanpool) derives its Logger from
// via UseLogger.
func Backend(cfg Config) *btclog.Backend {
	var writers []io.Writer
	if !cfg.DisableConsoleLog {
		writers = append(writers, os.Stdout)
	}
	if cfg.FileLoggingEnabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Directory + "/" + cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}
	return btclog.NewBackend(io.MultiWriter(writers...))
}

// Install creates a subsystem logger from backend at the configured level
// and registers it with every package that exposes a UseLogger hook.
func Install(backend *btclog.Backend, cfg Config, use ...func(btclog.Logger)) {
	for _, fn := range use {
		fn(NewSubsystem(backend, cfg))
	}
}

// NewSubsystem returns one logger at cfg.Level. Every logger it returns
// carries the same "POSD" subsystem tag.
func NewSubsystem(backend *btclog.Backend, cfg Config) btclog.Logger {
	l := backend.Logger("POSD")
	l.SetLevel(cfg.Level)
	return l
}
