package chaincfg

import (
	"math/big"

	"github.com/ppcstake/ppcstaked/pow"
)

// neverActive and noTimeout are the BIP9Deployment::NEVER_ACTIVE / NO_TIMEOUT
// sentinels used by deployments that aren't meant to activate on their own.
const (
	neverActive  = -1
	alwaysActive = -2
	noTimeout    = 0x7fffffffffffffff
)

// bigToCompact re-exports pow.BigToCompact for the per-network constructors,
// which need it to turn a powLimit/posLimit literal into a genesis nBits.
func bigToCompact(n *big.Int) uint32 { return pow.BigToCompact(n) }

// buildPowHeightSet builds the set of heights at which a PoW block is still
// permitted: every height in [lo, hi] plus any extra scattered heights above
// hi that the network's history also allows.
func buildPowHeightSet(lo, hi int32, extra []int32) map[int32]struct{} {
	set := make(map[int32]struct{}, int(hi-lo+1)+len(extra))
	for h := lo; h <= hi; h++ {
		set[h] = struct{}{}
	}
	for _, h := range extra {
		set[h] = struct{}{}
	}
	return set
}
