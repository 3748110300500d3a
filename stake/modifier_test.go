package stake

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppcstake/ppcstaked/pow"
)

// fakeNode is a minimal stake.BlockNode used to build synthetic ancestries
// for the stake-modifier and kernel tests, independent of chainindex.
type fakeNode struct {
	hash                   chainhash.Hash
	height                 int32
	ts                     int64
	bits                   uint32
	isStake                bool
	entropyBit             uint32
	generatedStakeModifier bool
	stakeModifier          uint64
	hashProofOfStake       chainhash.Hash
	parent                 *fakeNode
}

func (n *fakeNode) Hash() chainhash.Hash        { return n.hash }
func (n *fakeNode) Height() int32               { return n.height }
func (n *fakeNode) Timestamp() int64            { return n.ts }
func (n *fakeNode) Bits() uint32                { return n.bits }
func (n *fakeNode) IsProofOfStake() bool        { return n.isStake }
func (n *fakeNode) EntropyBit() uint32          { return n.entropyBit }
func (n *fakeNode) HasGeneratedStakeModifier() bool { return n.generatedStakeModifier }
func (n *fakeNode) StakeModifier() uint64       { return n.stakeModifier }
func (n *fakeNode) HashProofOfStake() chainhash.Hash { return n.hashProofOfStake }
func (n *fakeNode) Parent() pow.BlockNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func hashN(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func buildFakeChain(n int, spacing int64) *fakeNode {
	var prev *fakeNode
	var tip *fakeNode
	for i := 0; i < n; i++ {
		node := &fakeNode{
			height: int32(i),
			ts:     int64(i) * spacing,
			bits:   0x1e0fffff,
			parent: prev,
		}
		node.hash[0] = byte(i + 1)
		if i == 0 {
			node.generatedStakeModifier = true
		}
		prev = node
		tip = node
	}
	return tip
}

func TestSelectionIntervalIsSumOfSections(t *testing.T) {
	const modifierInterval = 600
	total := SelectionInterval(modifierInterval)
	assert.Greater(t, total, int64(0))

	var sum int64
	for n := 0; n < 64; n++ {
		sum += SelectionIntervalSection(modifierInterval, n)
	}
	assert.Equal(t, total, sum)
}

func TestGetLastStakeModifierFindsGeneratedAncestor(t *testing.T) {
	tip := buildFakeChain(5, 60)
	tip.parent.generatedStakeModifier = true
	tip.parent.stakeModifier = 0xdeadbeef

	modifier, _, err := getLastStakeModifier(tip)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdeadbeef), modifier)
}

func TestGetLastStakeModifierNilNode(t *testing.T) {
	_, _, err := getLastStakeModifier(nil)
	assert.Error(t, err)
}

func TestComputeNextStakeModifierGenesisCase(t *testing.T) {
	genesis := &fakeNode{generatedStakeModifier: true}
	modifier, generated, err := ComputeNextStakeModifier(genesis, 21600)
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Equal(t, uint64(0), modifier)
}

func TestComputeNextStakeModifierSameIntervalKeepsValue(t *testing.T) {
	const modifierInterval = 21600
	genesis := &fakeNode{generatedStakeModifier: true, stakeModifier: 7, ts: 0}
	tip := &fakeNode{ts: 10, parent: genesis, height: 1}

	modifier, generated, err := ComputeNextStakeModifier(tip, modifierInterval)
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, uint64(7), modifier)
}

func TestComputeNextStakeModifierNewInterval(t *testing.T) {
	const modifierInterval = 600
	genesis := &fakeNode{hash: hashN(1), generatedStakeModifier: true, stakeModifier: 0, ts: 0}
	chain := &fakeNode{hash: hashN(2), ts: 0, generatedStakeModifier: true, parent: genesis, height: 1}
	far := &fakeNode{hash: hashN(3), ts: modifierInterval * 3, parent: chain, height: 2}

	_, generated, err := ComputeNextStakeModifier(far, modifierInterval)
	require.NoError(t, err)
	assert.True(t, generated, "crossing a new modifier interval must regenerate the modifier")
}

func TestModifierChecksumDeterministic(t *testing.T) {
	a := ModifierChecksum(0, false, chainhash.Hash{}, 123, 0)
	b := ModifierChecksum(0, false, chainhash.Hash{}, 123, 0)
	assert.Equal(t, a, b)

	c := ModifierChecksum(0, false, chainhash.Hash{}, 124, 0)
	assert.NotEqual(t, a, c)
}

func TestCheckStakeModifierCheckpoints(t *testing.T) {
	checkpoints := map[int32]uint32{100: 0xcafebabe}
	assert.True(t, CheckStakeModifierCheckpoints(checkpoints, 50, 0x11111111), "an uncheckpointed height always passes")
	assert.True(t, CheckStakeModifierCheckpoints(checkpoints, 100, 0xcafebabe))
	assert.False(t, CheckStakeModifierCheckpoints(checkpoints, 100, 0x11111111))
}
