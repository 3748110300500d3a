package primitives

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockHeaderHashDeterministic(t *testing.T) {
	h := BlockHeader{Version: 1, Timestamp: 1234567890, Bits: 0x1e0fffff, Nonce: 42}
	first, err := h.Hash()
	require.NoError(t, err)
	second, err := h.Hash()
	require.NoError(t, err)
	assert.Equal(t, first, second, "scrypt block hash must be a pure function of the header bytes")
}

func TestBlockHeaderHashChangesWithNonce(t *testing.T) {
	h1 := BlockHeader{Version: 1, Timestamp: 1234567890, Bits: 0x1e0fffff, Nonce: 1}
	h2 := h1
	h2.Nonce = 2

	hash1, err := h1.Hash()
	require.NoError(t, err)
	hash2, err := h2.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash2)
}

type fakeCoinStakeTx bool

func (f fakeCoinStakeTx) IsCoinStake() bool { return bool(f) }

func TestBlockIsProofOfStake(t *testing.T) {
	powBlock := &Block{Tx: []CoinStakeTx{fakeCoinStakeTx(false)}}
	assert.True(t, powBlock.IsProofOfWork())
	assert.False(t, powBlock.IsProofOfStake())

	posBlock := &Block{Tx: []CoinStakeTx{fakeCoinStakeTx(false), fakeCoinStakeTx(true)}}
	assert.True(t, posBlock.IsProofOfStake())
	assert.False(t, posBlock.IsProofOfWork())
}

func TestStakeEntropyBit(t *testing.T) {
	var evenHash, oddHash chainhash.Hash
	evenHash[0] = 0x02
	oddHash[0] = 0x03

	assert.Equal(t, uint32(0), StakeEntropyBit(evenHash))
	assert.Equal(t, uint32(1), StakeEntropyBit(oddHash))
}
