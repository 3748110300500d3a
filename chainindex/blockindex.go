// Package chainindex holds the in-memory, never-freed arena of connected
// block headers (BlockIndexEntry) and the dual-keyed staging index used
// during header-first synchronization (IntermediateBlockIndexEntry,
// component F of the consensus core).
//
// BlockIndexEntry never holds an owning pointer to its parent; ancestry is
// modeled as a stable integer id into the owning Index's arena rather than
// a raw pointer, so the arena can be walked and grown without ever
// invalidating an existing entry's identity.
package chainindex

import (
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/ppcstake/ppcstaked/pow"
)

// BlockFlags is the nFlags bitset carried on every connected block: the
// entropy bit contributed to future stake modifiers, whether this block
// generated a new stake modifier, and the PoW/PoS discriminant.
type BlockFlags uint32

const (
	FlagStakeEntropyBit BlockFlags = 1 << iota
	FlagGeneratedStakeModifier
	FlagProofOfStake
)

func (f BlockFlags) EntropyBit() uint32                { return uint32(f & FlagStakeEntropyBit) }
func (f BlockFlags) HasGeneratedStakeModifier() bool    { return f&FlagGeneratedStakeModifier != 0 }
func (f BlockFlags) IsProofOfStake() bool               { return f&FlagProofOfStake != 0 }
func (f BlockFlags) WithEntropyBit(bit uint32) BlockFlags {
	if bit&1 != 0 {
		return f | FlagStakeEntropyBit
	}
	return f &^ FlagStakeEntropyBit
}

// noParent marks the genesis entry's PrevID.
const noParent int32 = -1

// BlockIndexEntry is the in-memory record for a connected block (spec §3).
// It is created once at block acceptance and its staking fields are
// mutated exactly once, by chainindex.Index.InstallStakingFields, during
// the compute/apply split described in SPEC_FULL.md's supplemented
// "EvaluateBlock"/"Apply" feature.
type BlockIndexEntry struct {
	index  *Index
	id     int32
	prevID int32

	hash   chainhash.Hash
	height int32

	nBits int64 // stored widened; Bits() narrows back to uint32
	nTime uint32

	chainWork *big.Int
	flags     BlockFlags

	stakeModifier          uint64
	stakeModifierChecksum  uint32
	hashProofOfStake       chainhash.Hash
	prevoutStake           wire.OutPoint
	stakeTime              uint32
}

// Hash returns the block hash this entry was indexed under.
func (e *BlockIndexEntry) Hash() chainhash.Hash { return e.hash }

// Height returns the entry's chain height; 0 at genesis.
func (e *BlockIndexEntry) Height() int32 { return e.height }

// Timestamp returns the block's nTime as a Unix timestamp.
func (e *BlockIndexEntry) Timestamp() int64 { return int64(e.nTime) }

// Bits returns the compact-encoded target (nBits) this block was mined or
// staked against.
func (e *BlockIndexEntry) Bits() uint32 { return uint32(e.nBits) }

// IsProofOfStake reports whether this block is a proof-of-stake block.
func (e *BlockIndexEntry) IsProofOfStake() bool { return e.flags.IsProofOfStake() }

// Parent returns the previous entry as a pow.BlockNode, or nil at genesis.
// chainindex is the one package that may reference pow.BlockNode by name in
// a concrete method signature without creating an import cycle, since pow
// never imports chainindex; see pow.BlockNode's doc comment.
func (e *BlockIndexEntry) Parent() pow.BlockNode {
	p := e.index.byID(e.prevID)
	if p == nil {
		return nil
	}
	return p
}

// ParentEntry returns the previous entry as a concrete *BlockIndexEntry, or
// nil at genesis. Callers that need chainindex-specific accessors (flags,
// stake fields) rather than the narrow pow.BlockNode/stake.BlockNode views
// should use this instead of Parent().
func (e *BlockIndexEntry) ParentEntry() *BlockIndexEntry { return e.index.byID(e.prevID) }

// ChainWork returns the cumulative proof-of-work/proof-of-stake work up to
// and including this block.
func (e *BlockIndexEntry) ChainWork() *big.Int { return e.chainWork }

// Flags returns the nFlags bitset.
func (e *BlockIndexEntry) Flags() BlockFlags { return e.flags }

// EntropyBit returns the low bit of this block's contribution to future
// stake modifiers.
func (e *BlockIndexEntry) EntropyBit() uint32 { return e.flags.EntropyBit() }

// HasGeneratedStakeModifier reports whether this block recomputed the stake
// modifier (as opposed to carrying the previous interval's value forward).
func (e *BlockIndexEntry) HasGeneratedStakeModifier() bool {
	return e.flags.HasGeneratedStakeModifier()
}

// StakeModifier returns the 64-bit stake modifier in effect as of this
// block.
func (e *BlockIndexEntry) StakeModifier() uint64 { return e.stakeModifier }

// StakeModifierChecksum returns the high 32 bits of this block's modifier
// checksum chain link.
func (e *BlockIndexEntry) StakeModifierChecksum() uint32 { return e.stakeModifierChecksum }

// HashProofOfStake returns the kernel hash proving this block's stake, the
// zero hash for a PoW block.
func (e *BlockIndexEntry) HashProofOfStake() chainhash.Hash { return e.hashProofOfStake }

// PrevoutStake returns the kernel's spent outpoint.
func (e *BlockIndexEntry) PrevoutStake() wire.OutPoint { return e.prevoutStake }

// StakeTime returns the coin-stake transaction's timestamp.
func (e *BlockIndexEntry) StakeTime() uint32 { return e.stakeTime }

// StakingFields bundles the fields InstallStakingFields writes, computed in
// one pure pass and applied in a second, per SPEC_FULL.md's compute/apply
// split.
type StakingFields struct {
	EntropyBit             uint32
	IsProofOfStake         bool
	StakeModifier          uint64
	GeneratedStakeModifier bool
	StakeModifierChecksum  uint32
	HashProofOfStake       chainhash.Hash
	PrevoutStake           wire.OutPoint
	StakeTime              uint32
}

// Index is the arena owning every connected BlockIndexEntry for the
// lifetime of the chain state. Entries are never freed. A single mutex
// guards both the arena slice and the hash map, matching spec §5's
// main-chain-lock model; callers that already hold a coarser lock may treat
// this as uncontended.
type Index struct {
	mu      sync.RWMutex
	entries []*BlockIndexEntry
	byHash  map[chainhash.Hash]int32
	dirty   map[chainhash.Hash]bool
}

// NewIndex returns an empty block index.
func NewIndex() *Index {
	return &Index{
		byHash: make(map[chainhash.Hash]int32),
		dirty:  make(map[chainhash.Hash]bool),
	}
}

// TakeDirty returns the hashes of every entry touched by InstallStakingFields
// since the last call, and clears the dirty set. Store.Flush uses this to
// know which entries to persist, per spec §5's "dirty-index entries pending
// flush" global state.
func (idx *Index) TakeDirty() []chainhash.Hash {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make([]chainhash.Hash, 0, len(idx.dirty))
	for h := range idx.dirty {
		out = append(out, h)
	}
	idx.dirty = make(map[chainhash.Hash]bool)
	return out
}

func (idx *Index) byID(id int32) *BlockIndexEntry {
	if id == noParent {
		return nil
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(idx.entries) {
		return nil
	}
	return idx.entries[id]
}

// Lookup returns the entry for hash, if present.
func (idx *Index) Lookup(hash chainhash.Hash) (*BlockIndexEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, ok := idx.byHash[hash]
	if !ok {
		return nil, false
	}
	return idx.entries[id], true
}

// AddGenesis installs the genesis entry. It must be called at most once,
// before any AddChild call.
func (idx *Index) AddGenesis(hash chainhash.Hash, nBits uint32, nTime uint32, work *big.Int) (*BlockIndexEntry, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if len(idx.entries) != 0 {
		return nil, errors.New("chainindex: genesis already installed")
	}
	e := &BlockIndexEntry{
		index:     idx,
		id:        0,
		prevID:    noParent,
		hash:      hash,
		height:    0,
		nBits:     int64(nBits),
		nTime:     nTime,
		chainWork: new(big.Int).Set(work),
	}
	idx.entries = append(idx.entries, e)
	idx.byHash[hash] = 0
	return e, nil
}

// AddChild appends a new entry whose parent is prev, with height and
// chainWork derived per spec invariant 1:
// height = prev.height + 1, chainWork = prev.chainWork + blockProof(nBits).
func (idx *Index) AddChild(prev *BlockIndexEntry, hash chainhash.Hash, nBits uint32, nTime uint32, blockProof *big.Int) (*BlockIndexEntry, error) {
	if prev == nil {
		return nil, errors.New("chainindex: AddChild requires a non-nil parent; use AddGenesis")
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.byHash[hash]; exists {
		return nil, errors.Errorf("chainindex: entry for %s already indexed", hash)
	}
	id := int32(len(idx.entries))
	e := &BlockIndexEntry{
		index:     idx,
		id:        id,
		prevID:    prev.id,
		hash:      hash,
		height:    prev.height + 1,
		nBits:     int64(nBits),
		nTime:     nTime,
		chainWork: new(big.Int).Add(prev.chainWork, blockProof),
	}
	idx.entries = append(idx.entries, e)
	idx.byHash[hash] = id
	return e, nil
}

// InstallStakingFields commits the second phase of block acceptance: the
// staking fields (stake modifier, checksum, entropy bit, kernel proof) that
// can only be known once the stake-modifier engine and kernel validator have
// run. This is the only mutation BlockIndexEntry ever undergoes after
// AddChild/AddGenesis.
func (idx *Index) InstallStakingFields(e *BlockIndexEntry, fields StakingFields) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	flags := e.flags.WithEntropyBit(fields.EntropyBit)
	if fields.IsProofOfStake {
		flags |= FlagProofOfStake
	} else {
		flags &^= FlagProofOfStake
	}
	if fields.GeneratedStakeModifier {
		flags |= FlagGeneratedStakeModifier
	} else {
		flags &^= FlagGeneratedStakeModifier
	}

	e.flags = flags
	e.stakeModifier = fields.StakeModifier
	e.stakeModifierChecksum = fields.StakeModifierChecksum
	e.hashProofOfStake = fields.HashProofOfStake
	e.prevoutStake = fields.PrevoutStake
	e.stakeTime = fields.StakeTime

	idx.dirty[e.hash] = true
}
