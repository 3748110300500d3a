// Package pow implements the proof-of-work/proof-of-stake difficulty
// retargeting engine (component B) and the compact-target encoding it
// shares with the chain parameter registry.
//
// The three retarget algorithms (V1, V2, V3) are pure functions of ancestry:
// given a tip and whether the next block must be PoW or PoS, they return the
// next compact target with no side effects and no package-level state.
package pow

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// BlockNode is the minimal ancestry view the retarget engine needs from a
// connected block. chainindex.BlockIndexEntry satisfies this directly.
type BlockNode interface {
	Hash() chainhash.Hash
	Height() int32
	Timestamp() int64
	Bits() uint32
	IsProofOfStake() bool
	Parent() BlockNode
}

// Params is the narrow slice of the chain parameter registry the difficulty
// engine needs. Keeping it separate from chaincfg.Params (rather than
// importing chaincfg directly) avoids a package cycle, since chaincfg in
// turn depends on this package for compact-target math at genesis
// construction time.
type Params struct {
	PowLimit                   *big.Int
	PosLimit                   *big.Int
	TargetTimespan             int64
	TargetSpacing              int64 // already resolved for the relevant height
	Fork4RetargetCorrectHeight int32
	PowNoRetargeting           bool
}

const (
	// v3RetargetK, v3RetargetL and v3RetargetM are the fine-tuning
	// constants of the V3 retarget formula; they only make sense together
	// with the asserted spacing/timespan below.
	v3RetargetK = 15
	v3RetargetL = 7
	v3RetargetM = 90

	// v3RequiredFutureDrift, v3RequiredTargetSpacing and
	// v3RequiredTargetTimespan are the values the V3 formula was tuned
	// against; NextTarget asserts them before using V3.
	v3RequiredFutureDrift    = 600
	v3RequiredTargetSpacing  = 30
	v3RequiredTargetTimespan = 7200

	v1RetargetHeightCeiling = 2000

	// v3SpacingSampleCap bounds how many recent block timestamps the V3
	// spacing estimator averages over.
	v3SpacingSampleCap = 100
)

// PastDrift and FutureDrift bound the wall-clock tolerance a block or
// transaction timestamp is allowed relative to local time: up to 10 minutes
// in the past or future.
func PastDrift(t int64) int64   { return t - 10*60 }
func FutureDrift(t int64) int64 { return t + 10*60 }

// getLastBlockIndex rewinds from start (inclusive) to the nearest ancestor
// matching the requested PoW/PoS kind, stopping at genesis.
func getLastBlockIndex(start BlockNode, isPoS bool) BlockNode {
	node := start
	for node != nil && node.Parent() != nil && node.IsProofOfStake() != isPoS {
		node = node.Parent()
	}
	return node
}

// NextTarget computes the compact target the next block — of the requested
// PoW/PoS kind — must meet, given the current tip.
func NextTarget(tip BlockNode, isPoS bool, params Params) (uint32, error) {
	if tip == nil {
		if isPoS {
			return BigToCompact(params.PosLimit), nil
		}
		return BigToCompact(params.PowLimit), nil
	}

	targetLimit := params.PowLimit
	if isPoS {
		targetLimit = params.PosLimit
	}

	if params.PowNoRetargeting {
		if isPoS {
			return BigToCompact(targetLimit), nil
		}
		return tip.Bits(), nil
	}

	prev := getLastBlockIndex(tip, isPoS)
	if prev == nil || prev.Parent() == nil {
		return BigToCompact(targetLimit), nil
	}
	prevPrev := getLastBlockIndex(prev.Parent(), isPoS)
	if prevPrev == nil || prevPrev.Parent() == nil {
		return BigToCompact(targetLimit), nil
	}

	switch {
	case tip.Height() < v1RetargetHeightCeiling:
		return retargetV1(prev, prevPrev, targetLimit, params)
	case tip.Height() >= params.Fork4RetargetCorrectHeight:
		return retargetV3(prev, prevPrev, targetLimit, params)
	default:
		return retargetV2(prev, prevPrev, targetLimit, params)
	}
}

func clampToLimit(target, limit *big.Int) *big.Int {
	if target.Sign() <= 0 || target.Cmp(limit) > 0 {
		return limit
	}
	return target
}

func intervalCount(params Params) int64 {
	return params.TargetTimespan / params.TargetSpacing
}

func retargetV1(prev, prevPrev BlockNode, limit *big.Int, params Params) (uint32, error) {
	actual := prev.Timestamp() - prevPrev.Timestamp()
	interval := intervalCount(params)

	newTarget := CompactToBig(prev.Bits())
	nTS := big.NewInt(params.TargetSpacing)

	num := new(big.Int).Mul(big.NewInt(interval-1), nTS)
	num.Add(num, big.NewInt(2*actual))
	den := new(big.Int).Mul(big.NewInt(interval+1), nTS)

	newTarget.Mul(newTarget, num)
	newTarget.Div(newTarget, den)

	return BigToCompact(clampToLimit(newTarget, limit)), nil
}

func retargetV2(prev, prevPrev BlockNode, limit *big.Int, params Params) (uint32, error) {
	actual := prev.Timestamp() - prevPrev.Timestamp()
	if actual < 0 {
		actual = params.TargetSpacing
	}
	interval := intervalCount(params)

	newTarget := CompactToBig(prev.Bits())
	nTS := big.NewInt(params.TargetSpacing)

	num := new(big.Int).Mul(big.NewInt(interval-1), nTS)
	num.Add(num, big.NewInt(2*actual))
	den := new(big.Int).Mul(big.NewInt(interval+1), nTS)

	newTarget.Mul(newTarget, num)
	newTarget.Div(newTarget, den)

	if newTarget.Sign() <= 0 {
		newTarget = limit
	}
	return BigToCompact(clampToLimit(newTarget, limit)), nil
}

// CalculateActualBlockSpacingV3 implements the V3 sorted-adjacent-difference
// spacing estimator: sort the last (up to v3SpacingSampleCap) block
// timestamps ending at tip, take adjacent differences, and average the tail
// len-1 of them. At least three timestamps (two differences) are required.
func CalculateActualBlockSpacingV3(tip BlockNode, isPoS bool) (int64, error) {
	times := make([]int64, 0, v3SpacingSampleCap)
	node := tip
	for node != nil && len(times) < v3SpacingSampleCap {
		times = append(times, node.Timestamp())
		node = getLastBlockIndex(node.Parent(), isPoS)
	}
	if len(times) < 2 {
		return 0, errors.New("pow: not enough samples for V3 spacing estimate")
	}

	sortInt64(times)

	diffs := make([]int64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		diffs = append(diffs, times[i]-times[i-1])
	}

	var sum int64
	for _, d := range diffs[1:] {
		sum += d
	}
	n := int64(len(diffs) - 1)
	if n <= 0 {
		return 0, errors.New("pow: not enough adjacent differences for V3 spacing estimate")
	}
	return sum / n, nil
}

func sortInt64(s []int64) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func retargetV3(prev, prevPrev BlockNode, limit *big.Int, params Params) (uint32, error) {
	if FutureDrift(0) != v3RequiredFutureDrift ||
		params.TargetSpacing != v3RequiredTargetSpacing ||
		params.TargetTimespan != v3RequiredTargetTimespan {
		return 0, errors.New("pow: V3 retarget constants require FutureDrift(0)=600, TargetSpacing=30, TargetTimespan=7200")
	}

	actual, err := CalculateActualBlockSpacingV3(prev, prev.IsProofOfStake())
	if err != nil {
		return 0, err
	}
	if actual < 0 {
		actual = params.TargetSpacing
	}

	interval := intervalCount(params)
	nTS := big.NewInt(params.TargetSpacing)

	newTarget := CompactToBig(prev.Bits())

	num := new(big.Int).Mul(big.NewInt(interval-v3RetargetL+v3RetargetK), nTS)
	num.Add(num, new(big.Int).Mul(big.NewInt(v3RetargetM+v3RetargetL), big.NewInt(actual)))

	den := new(big.Int).Mul(big.NewInt(interval+v3RetargetK), nTS)
	den.Add(den, new(big.Int).Mul(big.NewInt(v3RetargetM), big.NewInt(actual)))

	newTarget.Mul(newTarget, num)
	newTarget.Div(newTarget, den)

	return BigToCompact(clampToLimit(newTarget, limit)), nil
}

// CheckProofOfWork validates that hash meets the target encoded by nBits,
// rejecting a negative, zero, or out-of-range (> powLimit) target.
func CheckProofOfWork(hash chainhash.Hash, nBits uint32, powLimit *big.Int) error {
	target := CompactToBig(nBits)

	if target.Sign() <= 0 {
		return errors.New("pow: target is zero or negative")
	}
	if target.Cmp(powLimit) > 0 {
		return errors.New("pow: target exceeds powLimit")
	}

	hashNum := new(big.Int).SetBytes(reverse(hash[:]))
	if hashNum.Cmp(target) > 0 {
		return errors.New("pow: hash does not meet target")
	}
	return nil
}

// reverse returns a little-endian-to-big-endian reversed copy of b, since
// chainhash.Hash stores bytes in internal (reversed display) order and
// big.Int.SetBytes expects big-endian.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
