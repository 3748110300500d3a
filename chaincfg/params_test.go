package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetSpacingSelectsByFork3Height(t *testing.T) {
	p := &Params{
		Fork3TachyonHeight:   1000,
		StakeTargetSpacingV1: 60,
		StakeTargetSpacingV2: 30,
	}
	assert.Equal(t, int64(60), p.TargetSpacing(999))
	assert.Equal(t, int64(30), p.TargetSpacing(1000))
	assert.Equal(t, int64(30), p.TargetSpacing(1001))
}

func TestStakeMinAgeSelectsByFork3Height(t *testing.T) {
	p := &Params{
		Fork3TachyonHeight: 500,
		StakeMinAgeV1:      3600,
		StakeMinAgeV2:      1800,
	}
	assert.Equal(t, int64(3600), p.StakeMinAge(499))
	assert.Equal(t, int64(1800), p.StakeMinAge(500))
}

func TestCoinbaseMaturitySelectsByForkHeights(t *testing.T) {
	p := &Params{
		Fork2ConfsChangedHeight:    100,
		Fork4RetargetCorrectHeight: 200,
		CoinbaseMaturityV1:         500,
		CoinbaseMaturityV2:         50,
		CoinbaseMaturityV3:         10,
	}
	assert.Equal(t, int32(500), p.CoinbaseMaturity(50))
	assert.Equal(t, int32(50), p.CoinbaseMaturity(100))
	assert.Equal(t, int32(50), p.CoinbaseMaturity(199))
	assert.Equal(t, int32(10), p.CoinbaseMaturity(200))
}

func TestIsPoWHeightAllowed(t *testing.T) {
	p := &Params{
		NLastPoWBlock: 10,
		PowHeights:    map[int32]struct{}{2: {}, 5: {}},
	}
	assert.True(t, p.IsPoWHeightAllowed(2))
	assert.False(t, p.IsPoWHeightAllowed(3))
	assert.True(t, p.IsPoWHeightAllowed(11), "past NLastPoWBlock every height is allowed")
}

func TestForNetworkUnknown(t *testing.T) {
	_, err := ForNetwork("not-a-real-network")
	require.Error(t, err)
}

func TestForNetworkKnown(t *testing.T) {
	p, err := ForNetwork(Main)
	require.NoError(t, err)
	assert.Equal(t, Main, p.Name)

	p, err = ForNetwork(Regtest)
	require.NoError(t, err)
	assert.Equal(t, Regtest, p.Name)
}

func TestApplyTestActivationHeightRejectsNonMutable(t *testing.T) {
	p := &Params{Name: Main, mutable: false}
	err := p.ApplyTestActivationHeight("segwit@100")
	assert.Error(t, err)
}

func TestApplyTestActivationHeightAppliesKnownName(t *testing.T) {
	p := &Params{Name: Regtest, mutable: true}
	err := p.ApplyTestActivationHeight("segwit@500")
	require.NoError(t, err)
	assert.Equal(t, int32(500), p.SegwitHeight)
}

func TestApplyTestActivationHeightRejectsBadFormat(t *testing.T) {
	p := &Params{Name: Regtest, mutable: true}
	assert.Error(t, p.ApplyTestActivationHeight("segwit-500"))
	assert.Error(t, p.ApplyTestActivationHeight("unknownname@500"))
	assert.Error(t, p.ApplyTestActivationHeight("segwit@notanumber"))
}

func TestUpdateVersionBitsParametersRejectsNonMutable(t *testing.T) {
	p := &Params{Name: Test, mutable: false}
	err := p.UpdateVersionBitsParameters("csv:100:200")
	assert.Error(t, err)
}

func TestUpdateVersionBitsParametersAppliesDeployment(t *testing.T) {
	p := &Params{Name: Regtest, mutable: true}
	err := p.UpdateVersionBitsParameters("segwit:1000:2000:50")
	require.NoError(t, err)

	d := p.Deployments[DeploymentSegwit]
	assert.Equal(t, int64(1000), d.StartTime)
	assert.Equal(t, int64(2000), d.ExpireTime)
	assert.Equal(t, int32(50), d.MinActivationHeight)
}

func TestUpdateVersionBitsParametersRejectsBadShape(t *testing.T) {
	p := &Params{Name: Regtest, mutable: true}
	assert.Error(t, p.UpdateVersionBitsParameters("segwit:1000"))
	assert.Error(t, p.UpdateVersionBitsParameters("notadeployment:1000:2000"))
	assert.Error(t, p.UpdateVersionBitsParameters("segwit:notanumber:2000"))
}

// TestInstallOnce exercises the process-wide, install-exactly-once registry
// gate. Since Install's guard is shared global state, this is the single
// test in the package permitted to call it.
func TestInstallOnce(t *testing.T) {
	if Active() != nil {
		t.Skip("chaincfg.Install already called earlier in this test binary")
	}

	p, err := Install(Regtest)
	require.NoError(t, err)
	assert.Equal(t, Regtest, p.Name)
	assert.True(t, p.mutable, "Install must flip mutable on for regtest")

	assert.Same(t, p, Active())

	_, err = Install(Main)
	assert.Error(t, err, "a second Install call must fail regardless of network")
}
