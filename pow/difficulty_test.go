package pow

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal BlockNode used to build small synthetic chains for
// the retarget tests, independent of chainindex.
type fakeNode struct {
	hash    chainhash.Hash
	height  int32
	ts      int64
	bits    uint32
	isStake bool
	parent  *fakeNode
}

func (n *fakeNode) Hash() chainhash.Hash   { return n.hash }
func (n *fakeNode) Height() int32          { return n.height }
func (n *fakeNode) Timestamp() int64       { return n.ts }
func (n *fakeNode) Bits() uint32           { return n.bits }
func (n *fakeNode) IsProofOfStake() bool   { return n.isStake }
func (n *fakeNode) Parent() BlockNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func buildChain(n int, spacing int64, bits uint32) *fakeNode {
	var prev *fakeNode
	var tip *fakeNode
	for i := 0; i < n; i++ {
		node := &fakeNode{
			height: int32(i),
			ts:     int64(i) * spacing,
			bits:   bits,
			parent: prev,
		}
		node.hash[0] = byte(i)
		node.hash[1] = byte(i >> 8)
		prev = node
		tip = node
	}
	return tip
}

func TestNextTargetGenesis(t *testing.T) {
	params := Params{
		PowLimit:       CompactToBig(0x1e0fffff),
		PosLimit:       CompactToBig(0x1e0fffff),
		TargetTimespan: 7 * 24 * 60 * 60,
		TargetSpacing:  10 * 60,
	}
	bits, err := NextTarget(nil, false, params)
	require.NoError(t, err)
	assert.Equal(t, BigToCompact(params.PowLimit), bits)
}

func TestNextTargetNoRetargeting(t *testing.T) {
	params := Params{
		PowLimit:         CompactToBig(0x1e0fffff),
		PosLimit:         CompactToBig(0x1e0fffff),
		TargetTimespan:   7200,
		TargetSpacing:    30,
		PowNoRetargeting: true,
	}
	tip := buildChain(5, 30, 0x1d00ffff)
	bits, err := NextTarget(tip, false, params)
	require.NoError(t, err)
	assert.Equal(t, tip.Bits(), bits, "PowNoRetargeting should carry the tip's own bits forward for PoW")
}

func TestCalculateActualBlockSpacingV3(t *testing.T) {
	tip := buildChain(10, 30, 0x1d00ffff)
	spacing, err := CalculateActualBlockSpacingV3(tip, false)
	require.NoError(t, err)
	assert.Equal(t, int64(30), spacing, "uniform 30s spacing should average back out to 30s")
}

func TestCalculateActualBlockSpacingV3NotEnoughSamples(t *testing.T) {
	tip := buildChain(1, 30, 0x1d00ffff)
	_, err := CalculateActualBlockSpacingV3(tip, false)
	assert.Error(t, err)
}

func TestPastFutureDrift(t *testing.T) {
	assert.Equal(t, int64(600), FutureDrift(0))
	assert.Equal(t, int64(-600), PastDrift(0))
}

func TestClampToLimit(t *testing.T) {
	limit := big.NewInt(1000)
	assert.Equal(t, limit, clampToLimit(big.NewInt(-1), limit))
	assert.Equal(t, limit, clampToLimit(big.NewInt(2000), limit))
	assert.Equal(t, big.NewInt(500), clampToLimit(big.NewInt(500), limit))
}
