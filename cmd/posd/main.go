// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"

	"github.com/ppcstake/ppcstaked/chaincfg"
	"github.com/ppcstake/ppcstaked/chainindex"
	"github.com/ppcstake/ppcstaked/config"
	"github.com/ppcstake/ppcstaked/logcfg"
	"github.com/ppcstake/ppcstaked/orphanpool"
	"github.com/ppcstake/ppcstaked/pow"
	"github.com/ppcstake/ppcstaked/stake"
)

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	params, err := config.Apply(opts)
	if err != nil {
		return err
	}

	logCfg := logcfg.Default()
	logCfg.Directory = opts.LogDir
	logCfg.FileLoggingEnabled = opts.LogDir != ""
	if lvl, ok := btclog.LevelFromString(opts.Debug); ok {
		logCfg.Level = lvl
	}
	backend := logcfg.Backend(logCfg)
	logcfg.Install(backend, logCfg,
		chaincfg.UseLogger,
		pow.UseLogger,
		stake.UseLogger,
		chainindex.UseLogger,
		orphanpool.UseLogger,
	)

	log := logcfg.NewSubsystem(backend, logCfg)
	log.Infof("posd starting, network=%s datadir=%s", params.Name, opts.DataDir)

	idx := chainindex.NewIndex()
	if _, err := idx.AddGenesis(params.GenesisHash, params.GenesisHeader.Bits, params.GenesisHeader.Timestamp, big.NewInt(0)); err != nil {
		return err
	}

	store, err := chainindex.OpenStore(filepath.Join(opts.DataDir, "chainindex"))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Flush(idx); err != nil {
		return err
	}

	log.Infof("posd: block index initialized at genesis %s", params.GenesisHash)
	return nil
}
