package stake

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/ppcstake/ppcstaked/chainindex"
	"github.com/ppcstake/ppcstaked/pow"
)

// Eval bundles everything EvaluateBlock computes about a candidate block's
// staking fields, before anything is written to the block index. Splitting
// compute from apply is SPEC_FULL.md's supplemented feature #2, grounded on
// validation_pos.cpp's PeercoinContextualBlockChecks
// backup/recompute/compare-then-commit structure, and is the "const-correct,
// side-effect-isolated variant" spec §9 calls out as authoritative over the
// reference's mutating ComputeNextStakeModifier/CheckProofOfStake/GetCoinAge.
type Eval struct {
	EntropyBit             uint32
	IsProofOfStake         bool
	StakeModifier          uint64
	GeneratedStakeModifier bool
	StakeModifierChecksum  uint32
	HashProofOfStake       chainhash.Hash
	PrevoutStake           wire.OutPoint
	StakeTime              uint32
	CoinAge                *big.Int
}

// BlockInput is everything EvaluateBlock needs about the candidate block
// itself, beyond its not-yet-indexed ancestry (tip).
type BlockInput struct {
	Hash           chainhash.Hash
	Height         int32
	NBits          uint32
	NTime          uint32
	IsProofOfStake bool
	// Kernel and CoinAgeInputs are only consulted when IsProofOfStake.
	Kernel        CoinStakeKernel
	CoinAgeInputs []CoinInput
}

// EvaluateBlock computes (but does not install) a candidate block's full
// staking field set: its entropy bit, the next stake modifier, the
// modifier-checksum chain link, the kernel proof (for PoS blocks), and the
// coin-age its coin-stake earns. tip is the block's about-to-be-parent;
// tipEntry is the already-indexed parent, needed for checksum chaining.
func EvaluateBlock(
	blk BlockInput,
	tip BlockNode,
	tipEntry *chainindex.BlockIndexEntry,
	view ChainView,
	index BlockIndexLookup,
	locator TxPrevLocator,
	verifier ScriptVerifier,
	modifierInterval int64,
	kernelParams KernelParams,
) (Eval, error) {
	var eval Eval
	eval.IsProofOfStake = blk.IsProofOfStake

	if blk.IsProofOfStake {
		hashProof, err := CheckProofOfStake(blk.Kernel, blk.NBits, view, index, locator, verifier, modifierInterval, kernelParams)
		if err != nil {
			return Eval{}, err
		}
		eval.HashProofOfStake = hashProof
		eval.PrevoutStake = blk.Kernel.Prevout
		eval.StakeTime = uint32(blk.Kernel.TxTime)
		eval.CoinAge = GetCoinAge(false, blk.Kernel.TxTime, blk.CoinAgeInputs, kernelParams.StakeMinAge)
	} else {
		eval.CoinAge = big.NewInt(0)
	}

	eval.EntropyBit = entropyBitOf(blk.Hash)

	modifier, generated, err := ComputeNextStakeModifier(candidateNode{BlockNode: tip, blk: blk}, modifierInterval)
	if err != nil {
		return Eval{}, errors.Wrap(err, "stake: EvaluateBlock")
	}
	eval.StakeModifier = modifier
	eval.GeneratedStakeModifier = generated

	var prevChecksum uint32
	if tipEntry != nil {
		prevChecksum = tipEntry.StakeModifierChecksum()
	}
	var flags uint32
	flags |= eval.EntropyBit & 1
	if generated {
		flags |= 1 << 1
	}
	if blk.IsProofOfStake {
		flags |= 1 << 2
	}
	eval.StakeModifierChecksum = ModifierChecksum(prevChecksum, blk.IsProofOfStake, eval.HashProofOfStake, modifier, flags)

	return eval, nil
}

// candidateNode presents the not-yet-indexed candidate block as a child of
// tip, so ComputeNextStakeModifier sees the candidate's own time and tip as
// its parent.
type candidateNode struct {
	BlockNode
	blk BlockInput
}

func (c candidateNode) Hash() chainhash.Hash  { return c.blk.Hash }
func (c candidateNode) Height() int32         { return c.blk.Height }
func (c candidateNode) Timestamp() int64      { return int64(c.blk.NTime) }
func (c candidateNode) Parent() pow.BlockNode { return c.BlockNode }

// entropyBitOf extracts the low bit of a hash's first 8 little-endian
// bytes, matching primitives.StakeEntropyBit without importing primitives
// (which has no reason to depend back on stake).
func entropyBitOf(h chainhash.Hash) uint32 {
	var low uint64
	for i := 0; i < 8; i++ {
		low |= uint64(h[i]) << (8 * uint(i))
	}
	return uint32(low & 1)
}

// Apply commits a computed Eval to idx's entry for e, the single mutation
// BlockIndexEntry undergoes after AddChild/AddGenesis. It also enforces the
// stake-modifier hard checkpoints (spec §4.C): a mismatch at a checkpointed
// height is never applied and is reported for the caller to reject the
// block as DOS_100.
func Apply(idx *chainindex.Index, e *chainindex.BlockIndexEntry, eval Eval, checkpoints map[int32]uint32) error {
	if !CheckStakeModifierCheckpoints(checkpoints, e.Height(), eval.StakeModifierChecksum) {
		return errors.Errorf("stake: modifier checksum mismatch at checkpointed height %d", e.Height())
	}

	idx.InstallStakingFields(e, chainindex.StakingFields{
		EntropyBit:             eval.EntropyBit,
		IsProofOfStake:         eval.IsProofOfStake,
		StakeModifier:          eval.StakeModifier,
		GeneratedStakeModifier: eval.GeneratedStakeModifier,
		StakeModifierChecksum:  eval.StakeModifierChecksum,
		HashProofOfStake:       eval.HashProofOfStake,
		PrevoutStake:           eval.PrevoutStake,
		StakeTime:              eval.StakeTime,
	})
	return nil
}
