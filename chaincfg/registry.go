package chaincfg

import (
	"sync"

	"github.com/pkg/errors"
)

// Recognized network tags.
const (
	Main    = "main"
	Test    = "test"
	Signet  = "signet"
	Regtest = "regtest"
)

var registry = map[string]*Params{
	Main:    &MainNetParams,
	Test:    &TestNetParams,
	Signet:  &SignetParams,
	Regtest: &RegtestParams,
}

var (
	installMu     sync.Mutex
	installedOnce bool
	active        *Params
)

// ForNetwork returns the immutable Params for a recognized network tag.
func ForNetwork(name string) (*Params, error) {
	p, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("chaincfg: unknown network %q", name)
	}
	return p, nil
}

// Install selects the process-wide active network. It may be called exactly
// once per process; subsequent calls fail, matching the "write-once global
// state" design note in SPEC_FULL.md.
func Install(name string) (*Params, error) {
	installMu.Lock()
	defer installMu.Unlock()

	if installedOnce {
		return nil, errors.New("chaincfg: network params already installed for this process")
	}
	p, err := ForNetwork(name)
	if err != nil {
		return nil, err
	}
	if name == Regtest {
		p.mutable = true
	}
	active = p
	installedOnce = true
	return p, nil
}

// Active returns the process-wide installed Params, or nil if Install has
// not been called yet.
func Active() *Params {
	installMu.Lock()
	defer installMu.Unlock()
	return active
}
