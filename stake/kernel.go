package stake

import (
	"encoding/binary"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/ppcstake/ppcstaked/consensus"
	"github.com/ppcstake/ppcstaked/pow"
)

// ChainView is the minimal forward-navigable view of the main chain
// GetKernelStakeModifier needs, distinct from BlockNode's backward-only
// Parent() walk.
type ChainView interface {
	// NodeByHeight returns the main-chain block at height, if connected.
	NodeByHeight(height int32) (BlockNode, bool)
	// Tip returns the current best block.
	Tip() BlockNode
}

// GetKernelStakeModifier walks forward on the main chain from kernelBlock
// (the block containing the kernel's prevout) until it reaches a block that
// generated a new stake modifier at a time at least
// kernelBlock.Timestamp()+selectionInterval, returning that block's stake
// modifier. modifierHeight/modifierTime are the height/time of the last
// modifier-generating block visited (kernelBlock's own until one is found),
// and modifierTime is what ends the walk. Fails ("may reconvene after more
// sync") if the chain tip is reached before the interval has elapsed.
func GetKernelStakeModifier(view ChainView, kernelBlock BlockNode, selectionInterval int64) (modifier uint64, modifierHeight int32, modifierTime int64, err error) {
	modifierHeight = kernelBlock.Height()
	modifierTime = kernelBlock.Timestamp()
	target := kernelBlock.Timestamp() + selectionInterval

	node := kernelBlock
	tip := view.Tip()
	for modifierTime < target {
		if node.Height() >= tip.Height() {
			return 0, 0, 0, errors.Errorf(
				"stake: reached best block at height %d before stake modifier selection interval elapsed from height %d",
				tip.Height(), kernelBlock.Height())
		}
		next, ok := view.NodeByHeight(node.Height() + 1)
		if !ok {
			return 0, 0, 0, errors.Errorf("stake: no main-chain block at height %d", node.Height()+1)
		}
		node = next
		if node.HasGeneratedStakeModifier() {
			modifierHeight = node.Height()
			modifierTime = node.Timestamp()
		}
	}
	return node.StakeModifier(), modifierHeight, modifierTime, nil
}

// KernelParams carries the per-height consensus knobs CheckStakeKernelHash
// needs, resolved by the caller from chaincfg.Params.
type KernelParams struct {
	StakeMinAge int64
	StakeMaxAge int64
}

func le32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// CheckStakeKernelHash implements the PPCoin kernel protocol (spec §4.D):
// the kernel input's hash, mixed with the stake modifier and the previous
// transaction's on-chain position, must not exceed the per-coin-day target
// scaled by the coin's weighted age. Returns the kernel hash regardless of
// whether it met target, the target-met verdict, and an error only for a
// structural violation (timestamp ordering, min-age).
func CheckStakeKernelHash(
	nBits uint32,
	stakeModifier uint64,
	blockFromTime int64,
	txPrevOffset uint32,
	txPrevTime int64,
	prevout wire.OutPoint,
	txTime int64,
	valueIn int64,
	params KernelParams,
) (hashProofOfStake chainhash.Hash, ok bool, err error) {
	if txTime < txPrevTime {
		return chainhash.Hash{}, false, errors.New("stake: kernel timestamp violation: tx older than its input")
	}
	if blockFromTime+params.StakeMinAge > txTime {
		return chainhash.Hash{}, false, errors.New("stake: kernel min-age violation")
	}

	targetPerCoinDay := pow.CompactToBig(nBits)

	timeWeight := txTime - txPrevTime
	if timeWeight > params.StakeMaxAge {
		timeWeight = params.StakeMaxAge
	}
	timeWeight -= params.StakeMinAge

	coinDayWeight := new(big.Int).Mul(big.NewInt(valueIn), big.NewInt(timeWeight))
	coinDayWeight.Div(coinDayWeight, big.NewInt(consensus.Coin))
	coinDayWeight.Div(coinDayWeight, big.NewInt(consensus.SecondsPerDay))

	buf := make([]byte, 0, 8+4+4+4+4+4)
	var modBuf [8]byte
	binary.LittleEndian.PutUint64(modBuf[:], stakeModifier)
	buf = append(buf, modBuf[:]...)
	buf = append(buf, le32(uint32(blockFromTime))...)
	buf = append(buf, le32(txPrevOffset)...)
	buf = append(buf, le32(uint32(txPrevTime))...)
	buf = append(buf, le32(prevout.Index)...)
	buf = append(buf, le32(uint32(txTime))...)

	hashProofOfStake = doubleSHA256(buf)

	hashInt := hashToBig(hashProofOfStake)
	target := new(big.Int).Mul(coinDayWeight, targetPerCoinDay)

	// Overflow policy (spec §4.D): the product may exceed 256 bits. When it
	// would, any 256-bit hash satisfies the (true, wider) target, so accept
	// unconditionally. big.Int computes the product exactly, so the
	// comparison alone would also accept; the explicit branch states the
	// policy in the reference's own terms.
	overflowed := targetPerCoinDay.Sign() != 0 && coinDayWeight.Cmp(new(big.Int).Div(maxUint256, targetPerCoinDay)) > 0

	ok = overflowed || hashInt.Cmp(target) <= 0
	return hashProofOfStake, ok, nil
}

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// CheckCoinStakeTimestamp reports whether a coin-stake transaction's
// timestamp matches its block's, as the v0.3 protocol requires (spec §4.D):
// the two must be exactly equal.
func CheckCoinStakeTimestamp(blockTime, txTime int64) bool {
	return blockTime == txTime
}

// CoinStakeKernel is the minimal view of a coin-stake transaction's kernel
// input CheckProofOfStake needs; the transaction/script/UTXO types
// themselves are external collaborators per spec §1.
type CoinStakeKernel struct {
	Prevout      wire.OutPoint
	TxTime       int64
	ScriptSig    []byte
	PrevOutScript []byte
}

// TxPrevLocator resolves a kernel's previous output to the block that
// contains it and that block's position, standing in for the external
// transaction index (spec §4.D step 2) this package deliberately does not
// implement.
type TxPrevLocator interface {
	// Locate returns the block hash containing outpoint's transaction, its
	// timestamp, the transaction's byte offset within that block's
	// serialized form, the spent output's value, and the coin's own
	// timestamp (txPrev.nTime).
	Locate(outpoint wire.OutPoint) (blockHash chainhash.Hash, blockTime int64, txOffset uint32, txPrevTime int64, value int64, found bool)
}

// ScriptVerifier stands in for the black-box VerifyScript collaborator
// (spec §1): script interpreter internals are out of scope here.
type ScriptVerifier interface {
	VerifyScript(scriptSig, scriptPubKey []byte) error
}

// BlockIndexLookup resolves a block hash to its indexed ancestry node.
type BlockIndexLookup interface {
	Lookup(hash chainhash.Hash) (BlockNode, bool)
}

// CheckProofOfStake implements spec §4.D's top-level kernel check: locate
// the kernel's previous output, verify its script, find the block-index
// entry for the block that contains it, and check the kernel hash against
// target. Errors are tagged consensus.RuleError per §7's severity classes,
// except a GetKernelStakeModifier failure, which is returned as a plain
// wrapped error.
func CheckProofOfStake(
	kernel CoinStakeKernel,
	nBits uint32,
	view ChainView,
	index BlockIndexLookup,
	locator TxPrevLocator,
	verifier ScriptVerifier,
	modifierInterval int64,
	params KernelParams,
) (chainhash.Hash, error) {
	blockHash, blockTime, txOffset, txPrevTime, value, found := locator.Locate(kernel.Prevout)
	if !found {
		return chainhash.Hash{}, consensus.NewRuleError(consensus.KindDOS1, "prevout-not-found", nil)
	}

	kernelBlock, ok := index.Lookup(blockHash)
	if !ok {
		return chainhash.Hash{}, consensus.NewRuleError(consensus.KindDOS100, "invalid-prevout", nil)
	}

	if err := verifier.VerifyScript(kernel.ScriptSig, kernel.PrevOutScript); err != nil {
		return chainhash.Hash{}, consensus.NewRuleError(consensus.KindDOS100, "verify-cs-script-failed", err)
	}

	selectionInterval := SelectionInterval(modifierInterval)
	modifier, _, _, err := GetKernelStakeModifier(view, kernelBlock, selectionInterval)
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "stake: CheckProofOfStake")
	}

	hashProof, okTarget, err := CheckStakeKernelHash(
		nBits, modifier, blockTime, txOffset, txPrevTime, kernel.Prevout, kernel.TxTime, value, params)
	if err != nil {
		return chainhash.Hash{}, consensus.NewRuleError(consensus.KindDOS1, "prevout-not-found", err)
	}
	if !okTarget {
		return hashProof, consensus.NewRuleError(consensus.KindDOS1, "check-kernel-failed", nil)
	}
	return hashProof, nil
}
