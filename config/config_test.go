package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "main", opts.Network)
	assert.Equal(t, "info", opts.Debug)
}

func TestParseNetworkChoice(t *testing.T) {
	opts, err := Parse([]string{"--network=regtest"})
	require.NoError(t, err)
	assert.Equal(t, "regtest", opts.Network)
}

func TestParseRejectsUnknownNetwork(t *testing.T) {
	_, err := Parse([]string{"--network=mainnet-typo"})
	assert.Error(t, err)
}

func TestParseRepeatableFlags(t *testing.T) {
	opts, err := Parse([]string{
		"--network=regtest",
		"--testactivationheight=segwit@100",
		"--testactivationheight=bip34@50",
		"--vbparams=csv:10:20",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"segwit@100", "bip34@50"}, opts.TestActivationHeight)
	assert.Equal(t, []string{"csv:10:20"}, opts.VBParams)
}

func TestOptionsString(t *testing.T) {
	opts := &Options{Network: "regtest", DataDir: "/tmp/x", Debug: "debug"}
	s := opts.String()
	assert.Contains(t, s, "regtest")
	assert.Contains(t, s, "/tmp/x")
}

// TestApplyInstallsOnceThenRejects exercises chaincfg's process-wide
// install-once gate through Apply's own wiring: the first call in this test
// binary succeeds and applies the regtest-only flags; every subsequent call
// fails because chaincfg.Install can only run once per process.
func TestApplyInstallsOnceThenRejects(t *testing.T) {
	opts := &Options{
		Network:              "regtest",
		TestActivationHeight: []string{"segwit@500"},
		VBParams:             []string{"csv:10:20:5"},
		FastPrune:            true,
	}

	params, err := Apply(opts)
	require.NoError(t, err)
	assert.Equal(t, "regtest", params.Name)
	assert.Equal(t, int32(500), params.SegwitHeight)

	_, err = Apply(opts)
	assert.Error(t, err, "a second Apply/Install in the same process must fail")
}

func TestApplyRejectsSignetOnlyFlagsOffSignet(t *testing.T) {
	opts := &Options{Network: "main", SignetChallenge: "ab12"}
	_, err := Apply(opts)
	assert.Error(t, err)
}

func TestApplyRejectsRegtestOnlyFlagsOffRegtest(t *testing.T) {
	opts := &Options{Network: "main", VBParams: []string{"csv:10:20"}}
	_, err := Apply(opts)
	assert.Error(t, err)
}
