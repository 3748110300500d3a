// Package stake implements the proof-of-stake kernel protocol: the
// stake-modifier engine (component C), the kernel-hash validator
// (component D), and the coin-age accountant (component E).
package stake

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/ppcstake/ppcstaked/pow"
)

// BlockNode is the ancestry view the stake-modifier engine and kernel
// validator need from a connected block, beyond what pow.BlockNode already
// exposes. It embeds pow.BlockNode rather than redeclaring Hash/Height/
// Timestamp/Bits/IsProofOfStake/Parent so the two packages agree on a
// single walk-back shape; chainindex.BlockIndexEntry satisfies both without
// either package importing chainindex.
type BlockNode interface {
	pow.BlockNode

	EntropyBit() uint32
	HasGeneratedStakeModifier() bool
	StakeModifier() uint64
	HashProofOfStake() chainhash.Hash
}

// parentOf upcasts n.Parent() (declared as pow.BlockNode) back to
// stake.BlockNode via a type assertion. It succeeds whenever the
// underlying concrete type — in practice always chainindex.BlockIndexEntry
// — implements both interfaces, which every block this package is ever
// asked to walk does. Returns nil at genesis (Parent() == nil) or if the
// concrete type genuinely lacks the stake-specific methods.
func parentOf(n BlockNode) BlockNode {
	p := n.Parent()
	if p == nil {
		return nil
	}
	sp, ok := p.(BlockNode)
	if !ok {
		return nil
	}
	return sp
}
