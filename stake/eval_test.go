package stake

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppcstake/ppcstaked/chainindex"
)

func TestEvaluateAndApplyProofOfWorkBlock(t *testing.T) {
	idx := chainindex.NewIndex()
	genesis, err := idx.AddGenesis(hashN(1), 0x1e0fffff, 0, big.NewInt(1))
	require.NoError(t, err)

	tipNode := &fakeNode{hash: genesis.Hash(), height: 0, ts: 0, generatedStakeModifier: true}

	child, err := idx.AddChild(genesis, hashN(2), 0x1e0fffff, 600, big.NewInt(1))
	require.NoError(t, err)

	blk := BlockInput{Hash: hashN(2), Height: 1, NBits: 0x1e0fffff, NTime: 600, IsProofOfStake: false}

	eval, err := EvaluateBlock(blk, tipNode, genesis, fakeChainView{tip: tipNode}, fakeIndexLookup{}, fakeLocator{}, fakeVerifier{}, 21600, KernelParams{})
	require.NoError(t, err)
	assert.False(t, eval.IsProofOfStake)

	err = Apply(idx, child, eval, nil)
	require.NoError(t, err)
	assert.Equal(t, eval.StakeModifierChecksum, child.StakeModifierChecksum())
}

func TestApplyRejectsCheckpointMismatch(t *testing.T) {
	idx := chainindex.NewIndex()
	genesis, err := idx.AddGenesis(hashN(1), 0x1e0fffff, 0, big.NewInt(1))
	require.NoError(t, err)

	eval := Eval{StakeModifierChecksum: 0x11111111}
	checkpoints := map[int32]uint32{0: 0x22222222}

	err = Apply(idx, genesis, eval, checkpoints)
	assert.Error(t, err)
}

func TestEntropyBitOfMatchesLowBit(t *testing.T) {
	var evenHash, oddHash chainhash.Hash
	evenHash[0] = 0x02
	oddHash[0] = 0x03
	assert.Equal(t, uint32(0), entropyBitOf(evenHash))
	assert.Equal(t, uint32(1), entropyBitOf(oddHash))
}
