package orphanpool

import (
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppcstake/ppcstaked/primitives"
)

func hashN(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func TestAddBlockIdempotent(t *testing.T) {
	p := New(DefaultCapacity, rand.New(rand.NewSource(1)))
	added := p.AddBlock(&primitives.Block{}, hashN(1), hashN(0), nil)
	assert.True(t, added)

	addedAgain := p.AddBlock(&primitives.Block{}, hashN(1), hashN(0), nil)
	assert.False(t, addedAgain, "re-adding the same hash must be a no-op")
	assert.Equal(t, 1, p.Len())
}

func TestGetBlockRootFollowsChain(t *testing.T) {
	p := New(DefaultCapacity, rand.New(rand.NewSource(1)))
	p.AddBlock(&primitives.Block{}, hashN(1), hashN(0), nil)
	p.AddBlock(&primitives.Block{}, hashN(2), hashN(1), nil)
	p.AddBlock(&primitives.Block{}, hashN(3), hashN(2), nil)

	root := p.GetBlockRoot(hashN(3))
	assert.Equal(t, hashN(1), root)
}

func TestGetBlockRootUnknownHash(t *testing.T) {
	p := New(DefaultCapacity, rand.New(rand.NewSource(1)))
	root := p.GetBlockRoot(hashN(99))
	assert.Equal(t, hashN(99), root)
}

func TestTakeAllChildrenOf(t *testing.T) {
	p := New(DefaultCapacity, rand.New(rand.NewSource(1)))
	p.AddBlock(&primitives.Block{}, hashN(1), hashN(0), nil)
	p.AddBlock(&primitives.Block{}, hashN(2), hashN(0), nil)
	p.AddBlock(&primitives.Block{}, hashN(3), hashN(1), nil)

	children := p.TakeAllChildrenOf(hashN(0))
	require.Len(t, children, 2)
	assert.False(t, p.Has(hashN(1)))
	assert.False(t, p.Has(hashN(2)))
	assert.True(t, p.Has(hashN(3)), "a grandchild should be untouched by a one-level take")
}

func TestDropBlockRemovesFromBothIndexes(t *testing.T) {
	p := New(DefaultCapacity, rand.New(rand.NewSource(1)))
	p.AddBlock(&primitives.Block{}, hashN(1), hashN(0), nil)
	p.DropBlock(hashN(1))
	assert.False(t, p.Has(hashN(1)))
	assert.Equal(t, 0, p.Len())
}

func TestPruneDeterministicWithSeededRand(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := New(DefaultCapacity, rng)
	for i := byte(1); i <= 5; i++ {
		p.AddBlock(&primitives.Block{}, hashN(i), hashN(i-1), nil)
	}
	before := p.Len()
	p.Prune()
	assert.Equal(t, before-1, p.Len(), "Prune evicts exactly one orphan")
}

func TestPruneEmptyPoolIsNoop(t *testing.T) {
	p := New(DefaultCapacity, rand.New(rand.NewSource(1)))
	assert.NotPanics(t, func() { p.Prune() })
}
