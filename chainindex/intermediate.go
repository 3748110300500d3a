package chainindex

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"

	"github.com/ppcstake/ppcstaked/primitives"
)

// IntermediateBlockIndexEntry is the dual-keyed, header-only staging record
// used during header-first synchronization (component F): it holds a
// header rather than a full block body, and lives only for the duration of
// one incoming headers batch.
type IntermediateBlockIndexEntry struct {
	Header    primitives.BlockHeader
	Hash      chainhash.Hash
	Height    int32
	ChainWork *big.Int
}

// IntermediateBlockIndex is a dual ordered index over the same
// shared-ownership entries, keyed by height and by hash; both indexes must
// be updated together so lookups by either key always agree (spec §8
// invariant 9).
type IntermediateBlockIndex struct {
	byHeight map[int32]*IntermediateBlockIndexEntry
	byHash   map[chainhash.Hash]*IntermediateBlockIndexEntry
	firstHeight int32
}

// NewIntermediateBlockIndex returns an empty intermediate index whose
// operator[] offsets are relative to firstHeight.
func NewIntermediateBlockIndex(firstHeight int32) *IntermediateBlockIndex {
	return &IntermediateBlockIndex{
		byHeight:    make(map[int32]*IntermediateBlockIndexEntry),
		byHash:      make(map[chainhash.Hash]*IntermediateBlockIndexEntry),
		firstHeight: firstHeight,
	}
}

// insert adds e to both indexes, failing (and leaving neither index
// mutated) if either key already exists.
func (idx *IntermediateBlockIndex) insert(e *IntermediateBlockIndexEntry) error {
	if _, exists := idx.byHeight[e.Height]; exists {
		return errors.Errorf("chainindex: intermediate entry at height %d already exists", e.Height)
	}
	if _, exists := idx.byHash[e.Hash]; exists {
		return errors.Errorf("chainindex: intermediate entry for %s already exists", e.Hash)
	}
	idx.byHeight[e.Height] = e
	idx.byHash[e.Hash] = e
	return nil
}

// ByHeight looks up an entry by absolute height.
func (idx *IntermediateBlockIndex) ByHeight(height int32) (*IntermediateBlockIndexEntry, bool) {
	e, ok := idx.byHeight[height]
	return e, ok
}

// ByHash looks up an entry by hash.
func (idx *IntermediateBlockIndex) ByHash(hash chainhash.Hash) (*IntermediateBlockIndexEntry, bool) {
	e, ok := idx.byHash[hash]
	return e, ok
}

// At returns the entry at offset i from the first entry by height:
// heightIndex.find(firstHeight + i), mirroring the reference's operator[].
func (idx *IntermediateBlockIndex) At(i int) (*IntermediateBlockIndexEntry, bool) {
	return idx.ByHeight(idx.firstHeight + int32(i))
}

// Len reports how many entries the index currently holds.
func (idx *IntermediateBlockIndex) Len() int { return len(idx.byHeight) }

// EraseByHash removes the entry for hash from both indexes atomically. A
// no-op if hash isn't present.
func (idx *IntermediateBlockIndex) EraseByHash(hash chainhash.Hash) {
	e, ok := idx.byHash[hash]
	if !ok {
		return
	}
	delete(idx.byHash, hash)
	delete(idx.byHeight, e.Height)
}

// PrecedingBlock is the narrow view HeadersToIntermediateBlockIndex needs of
// the already-connected block the incoming header run extends.
type PrecedingBlock interface {
	Hash() chainhash.Hash
	Height() int32
	ChainWork() *big.Int
}

// blockProof computes the proof-of-work/proof-of-stake contribution of a
// single block's compact target to cumulative chain work: 2^256 / (target+1).
func blockProof(nBits uint32) *big.Int {
	target := new(big.Int)
	// Decodes the compact target inline, as pow.CompactToBig does but
	// without its sign bit, since only the work contribution is needed.
	mantissa := nBits & 0x007fffff
	exponent := uint(nBits >> 24)
	if exponent <= 3 {
		target.SetInt64(int64(mantissa >> (8 * (3 - exponent))))
	} else {
		target.SetInt64(int64(mantissa))
		target.Lsh(target, 8*(exponent-3))
	}
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}
	denom := new(big.Int).Add(target, big.NewInt(1))
	work := new(big.Int).Lsh(big.NewInt(1), 256)
	return work.Div(work, denom)
}

// HeadersToIntermediateBlockIndex builds a fresh intermediate index
// chaining height and chainWork forward from preceding, for headers[toSkip:].
// It asserts preceding.Hash() == headers[toSkip].PrevBlock — the
// authoritative initializer per spec §9's open question (the reference
// implementation's two copies disagree on headers[toSkip] vs headers[0];
// headers[toSkip] is correct since toSkip entries are assumed already
// connected or otherwise accounted for).
func HeadersToIntermediateBlockIndex(toSkip int, preceding PrecedingBlock, headers []primitives.BlockHeader) (*IntermediateBlockIndex, error) {
	if toSkip < 0 || toSkip >= len(headers) {
		return nil, errors.Errorf("chainindex: toSkip %d out of range for %d headers", toSkip, len(headers))
	}
	if preceding.Hash() != headers[toSkip].PrevBlock {
		return nil, errors.New("chainindex: preceding block hash does not match headers[toSkip].PrevBlock")
	}

	idx := NewIntermediateBlockIndex(preceding.Height() + 1)

	prevHash := preceding.Hash()
	prevHeight := preceding.Height()
	prevWork := preceding.ChainWork()

	for i := toSkip; i < len(headers); i++ {
		h := headers[i]
		if h.PrevBlock != prevHash {
			return nil, errors.Errorf("chainindex: headers[%d].PrevBlock does not chain from the previous header", i)
		}
		hash, err := h.Hash()
		if err != nil {
			return nil, errors.Wrapf(err, "chainindex: hashing headers[%d]", i)
		}
		entry := &IntermediateBlockIndexEntry{
			Header:    h,
			Hash:      hash,
			Height:    prevHeight + 1,
			ChainWork: new(big.Int).Add(prevWork, blockProof(h.Bits)),
		}
		if err := idx.insert(entry); err != nil {
			return nil, err
		}
		prevHash = hash
		prevHeight = entry.Height
		prevWork = entry.ChainWork
	}

	return idx, nil
}

// BIVariant unifies access to either a connected BlockIndexEntry or an
// IntermediateBlockIndexEntry, so callers staging header-first sync don't
// need to branch on which kind of index produced a given node.
type BIVariant struct {
	connected    *BlockIndexEntry
	intermediate *IntermediateBlockIndexEntry
}

// NewBIVariantConnected wraps an already-connected entry.
func NewBIVariantConnected(e *BlockIndexEntry) BIVariant { return BIVariant{connected: e} }

// NewBIVariantIntermediate wraps a not-yet-connected entry.
func NewBIVariantIntermediate(e *IntermediateBlockIndexEntry) BIVariant {
	return BIVariant{intermediate: e}
}

// ChainWork dispatches to whichever variant is held.
func (v BIVariant) ChainWork() *big.Int {
	if v.connected != nil {
		return v.connected.ChainWork()
	}
	return v.intermediate.ChainWork
}

// Height dispatches to whichever variant is held.
func (v BIVariant) Height() int32 {
	if v.connected != nil {
		return v.connected.Height()
	}
	return v.intermediate.Height
}

// BlockHash dispatches to whichever variant is held.
func (v BIVariant) BlockHash() chainhash.Hash {
	if v.connected != nil {
		return v.connected.Hash()
	}
	return v.intermediate.Hash
}

// IsIntermediate reports whether this variant wraps a not-yet-connected
// header rather than a connected block.
func (v BIVariant) IsIntermediate() bool { return v.intermediate != nil }
