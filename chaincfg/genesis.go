package chaincfg

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
	"github.com/ppcstake/ppcstaked/primitives"
)

// CreateGenesisBlock builds the genesis block header from its literal wire
// fields. The coinbase scriptSig / merkle-root derivation it would normally
// come from is explicitly out of scope (spec.md §1: "the genesis-block byte
// layout ... [is] not algorithmic") — merkleRoot is supplied as a literal,
// exactly as the per-network constructors in this package do.
func CreateGenesisBlock(version int32, nTime, nNonce, nBits uint32, merkleRoot chainhash.Hash) primitives.BlockHeader {
	return primitives.BlockHeader{
		Version:    version,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: merkleRoot,
		Timestamp:  nTime,
		Bits:       nBits,
		Nonce:      nNonce,
	}
}

// assertGenesis computes the scrypt hash of header and panics if it doesn't
// match want. Network constructors call this at package init time so a
// mismatched literal fails loudly at startup rather than silently forking.
func assertGenesis(header primitives.BlockHeader, want chainhash.Hash) chainhash.Hash {
	got, err := header.Hash()
	if err != nil {
		panic(errors.Wrap(err, "chaincfg: computing genesis hash"))
	}
	if got != want {
		panic(errors.Errorf("chaincfg: genesis hash mismatch: got %s want %s", got, want))
	}
	return got
}

func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(errors.Wrapf(err, "chaincfg: invalid hash literal %q", s))
	}
	return *h
}
