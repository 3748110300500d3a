package stake

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppcstake/ppcstaked/consensus"
)

func TestCheckStakeKernelHashTimestampViolation(t *testing.T) {
	_, _, err := CheckStakeKernelHash(
		0x1e0fffff, 1, 1000, 0, 2000, wire.OutPoint{}, 1500, 1000000,
		KernelParams{StakeMinAge: 60, StakeMaxAge: 1000000000},
	)
	assert.Error(t, err, "a tx time older than its own prevout must be rejected")
}

func TestCheckStakeKernelHashMinAgeViolation(t *testing.T) {
	_, _, err := CheckStakeKernelHash(
		0x1e0fffff, 1, 1000, 0, 500, wire.OutPoint{}, 1010, 1000000,
		KernelParams{StakeMinAge: 3600, StakeMaxAge: 1000000000},
	)
	assert.Error(t, err)
}

func TestCheckStakeKernelHashDeterministic(t *testing.T) {
	params := KernelParams{StakeMinAge: 60, StakeMaxAge: 1000000000}
	h1, ok1, err1 := CheckStakeKernelHash(0x1e0fffff, 42, 1000, 7, 500, wire.OutPoint{Index: 1}, 5000, 100000000, params)
	require.NoError(t, err1)
	h2, ok2, err2 := CheckStakeKernelHash(0x1e0fffff, 42, 1000, 7, 500, wire.OutPoint{Index: 1}, 5000, 100000000, params)
	require.NoError(t, err2)

	assert.Equal(t, h1, h2)
	assert.Equal(t, ok1, ok2)
}

func TestCheckStakeKernelHashOverflowAccepts(t *testing.T) {
	// A maximally loose target (powLimit-ish, high nBits exponent) combined
	// with a very large coin-day weight should overflow the product and be
	// accepted unconditionally per the overflow policy.
	params := KernelParams{StakeMinAge: 0, StakeMaxAge: 1 << 40}
	_, ok, err := CheckStakeKernelHash(
		0x20123456, 1, 0, 0, 0, wire.OutPoint{}, 1<<40, 1<<62, params,
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckCoinStakeTimestamp(t *testing.T) {
	assert.True(t, CheckCoinStakeTimestamp(100, 100))
	assert.False(t, CheckCoinStakeTimestamp(100, 101))
}

type fakeLocator struct {
	blockHash  chainhash.Hash
	blockTime  int64
	txOffset   uint32
	txPrevTime int64
	value      int64
	found      bool
}

func (f fakeLocator) Locate(wire.OutPoint) (chainhash.Hash, int64, uint32, int64, int64, bool) {
	return f.blockHash, f.blockTime, f.txOffset, f.txPrevTime, f.value, f.found
}

type fakeVerifier struct{ err error }

func (f fakeVerifier) VerifyScript([]byte, []byte) error { return f.err }

type fakeIndexLookup struct {
	node BlockNode
	ok   bool
}

func (f fakeIndexLookup) Lookup(chainhash.Hash) (BlockNode, bool) { return f.node, f.ok }

type fakeChainView struct{ tip BlockNode }

func (f fakeChainView) NodeByHeight(height int32) (BlockNode, bool) {
	node := f.tip
	for node != nil {
		if node.Height() == height {
			return node, true
		}
		node = parentOf(node)
	}
	return nil, false
}
func (f fakeChainView) Tip() BlockNode { return f.tip }

func TestCheckProofOfStakePrevoutNotFound(t *testing.T) {
	locator := fakeLocator{found: false}
	_, err := CheckProofOfStake(CoinStakeKernel{}, 0x1e0fffff, fakeChainView{}, fakeIndexLookup{}, locator, fakeVerifier{}, 600, KernelParams{})
	require.Error(t, err)
	assert.True(t, consensus.IsKind(err, consensus.KindDOS1))
}

func TestCheckProofOfStakeInvalidPrevout(t *testing.T) {
	locator := fakeLocator{found: true}
	_, err := CheckProofOfStake(CoinStakeKernel{}, 0x1e0fffff, fakeChainView{}, fakeIndexLookup{ok: false}, locator, fakeVerifier{}, 600, KernelParams{})
	require.Error(t, err)
	assert.True(t, consensus.IsKind(err, consensus.KindDOS100))
}
