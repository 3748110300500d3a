// Package config defines the CLI/INI option struct for the posd
// entrypoint, using github.com/jessevdk/go-flags exactly as the teacher's
// cmd/jaxctl/config.go does. It covers only the flags this consensus-core
// module cares about: network selection and spec §6.4's five
// activation/signet flags. Everything else (RPC, wallet, peer tuning) is an
// external collaborator's concern and lives outside this repository's
// scope.
package config

import (
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/ppcstake/ppcstaked/chaincfg"
)

// Options is the top-level flag/INI struct parsed by go-flags.
type Options struct {
	Network string `short:"n" long:"network" description:"Network to run on" default:"main" choice:"main" choice:"test" choice:"signet" choice:"regtest"`

	SignetChallenge string   `long:"signetchallenge" description:"Hex-encoded signet challenge script, replacing the default"`
	SignetSeedNode  []string `long:"signetseednode" description:"Signet seed node host, repeatable; accepted only with -network=signet and not otherwise used (Params carries no seed list)"`

	TestActivationHeight []string `long:"testactivationheight" description:"name@height, regtest only, repeatable"`
	VBParams             []string `long:"vbparams" description:"dep:start:end[:minH], regtest only, repeatable"`

	FastPrune bool `long:"fastprune" description:"Regtest only; accepted but changes nothing, as Params has no prune-after-height"`

	DataDir string `short:"d" long:"datadir" description:"Data directory"`
	LogDir  string `long:"logdir" description:"Directory to write log files to"`
	Debug   string `long:"debuglevel" description:"Logging level" default:"info"`
}

// Parse parses args (typically os.Args[1:]) into an Options value.
// Invalid flag syntax is a go-flags error already; the five spec §6.4
// flags get their own validation in Apply.
func Parse(args []string) (*Options, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Apply validates opts and returns the resulting, possibly mutated,
// chaincfg.Params for the selected network. Startup errors echo the
// offending argument per spec §6.4's "Invalid values MUST produce a
// startup error with the offending argument echoed."
func Apply(opts *Options) (*chaincfg.Params, error) {
	params, err := chaincfg.Install(networkTag(opts.Network))
	if err != nil {
		return nil, errors.Wrapf(err, "config: invalid -network %q", opts.Network)
	}

	if opts.SignetChallenge != "" && opts.Network != chaincfg.Signet {
		return nil, errors.Errorf("config: -signetchallenge=%s is only valid with -network=signet", opts.SignetChallenge)
	}
	if len(opts.SignetSeedNode) > 0 && opts.Network != chaincfg.Signet {
		return nil, errors.Errorf("config: -signetseednode is only valid with -network=signet")
	}
	if opts.SignetChallenge != "" {
		signet, err := chaincfg.NewSignetParams(opts.SignetChallenge)
		if err != nil {
			return nil, errors.Wrapf(err, "config: invalid -signetchallenge=%s", opts.SignetChallenge)
		}
		*params = signet
	}

	if len(opts.TestActivationHeight) > 0 || len(opts.VBParams) > 0 || opts.FastPrune {
		if opts.Network != chaincfg.Regtest {
			return nil, errors.Errorf("config: -testactivationheight/-vbparams/-fastprune are regtest-only, got -network=%s", opts.Network)
		}
	}

	for _, v := range opts.TestActivationHeight {
		if err := params.ApplyTestActivationHeight(v); err != nil {
			return nil, errors.Wrapf(err, "config: -testactivationheight=%s", v)
		}
	}
	for _, v := range opts.VBParams {
		if err := params.UpdateVersionBitsParameters(v); err != nil {
			return nil, errors.Wrapf(err, "config: -vbparams=%s", v)
		}
	}

	return params, nil
}

func networkTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// String implements fmt.Stringer for debug logging of the parsed options.
func (o *Options) String() string {
	return fmt.Sprintf("network=%s datadir=%s debuglevel=%s", o.Network, o.DataDir, o.Debug)
}
