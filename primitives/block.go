// Package primitives defines the wire block header and the handful of
// primitive block-level computations consensus code needs directly: the
// scrypt block hash, the proof-of-stake/proof-of-work discriminant, and the
// stake entropy bit (component H).
package primitives

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// HeaderSize is the serialized size, in bytes, of a BlockHeader.
const HeaderSize = 80

// BlockHeader is the 80-byte block header. Unlike a pure-PoW Bitcoin-lineage
// chain, nTime on this header also carries forward onto the coin-stake
// transaction of a PoS block so that CheckCoinStakeTimestamp can compare the
// two for exact equality.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Serialize writes the fixed 80-byte wire encoding of the header.
func (h *BlockHeader) Serialize(w *bytes.Buffer) error {
	if err := binary.Write(w, binary.LittleEndian, h.Version); err != nil {
		return errors.Wrap(err, "primitives: serialize version")
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return errors.Wrap(err, "primitives: serialize prev block")
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return errors.Wrap(err, "primitives: serialize merkle root")
	}
	if err := binary.Write(w, binary.LittleEndian, h.Timestamp); err != nil {
		return errors.Wrap(err, "primitives: serialize timestamp")
	}
	if err := binary.Write(w, binary.LittleEndian, h.Bits); err != nil {
		return errors.Wrap(err, "primitives: serialize bits")
	}
	if err := binary.Write(w, binary.LittleEndian, h.Nonce); err != nil {
		return errors.Wrap(err, "primitives: serialize nonce")
	}
	return nil
}

// Bytes returns the fixed 80-byte wire encoding of the header.
func (h *BlockHeader) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	if err := h.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash computes the block hash as scrypt-1024-1-1-256 over the serialized
// header. This is consensus-critical and deliberately NOT double-SHA256.
func (h *BlockHeader) Hash() (chainhash.Hash, error) {
	raw, err := h.Bytes()
	if err != nil {
		return chainhash.Hash{}, err
	}
	digest, err := scrypt.Key(raw, raw, 1024, 1, 1, chainhash.HashSize)
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "primitives: scrypt block hash")
	}
	var out chainhash.Hash
	copy(out[:], digest)
	return out, nil
}

// CoinStakeTx is the minimal view of a transaction the block-kind
// discriminant needs: whether it is the coin-stake transaction (>=1 input,
// >=2 outputs, first output empty).
type CoinStakeTx interface {
	IsCoinStake() bool
}

// Block pairs a header with its transaction list. Tx[1], when present and a
// coin-stake transaction, makes the block a proof-of-stake block.
type Block struct {
	Header BlockHeader
	Tx     []CoinStakeTx
}

// IsProofOfStake reports whether this block's second transaction is a
// coin-stake transaction.
func (b *Block) IsProofOfStake() bool {
	return len(b.Tx) > 1 && b.Tx[1] != nil && b.Tx[1].IsCoinStake()
}

// IsProofOfWork is the complement of IsProofOfStake.
func (b *Block) IsProofOfWork() bool {
	return !b.IsProofOfStake()
}

// StakeEntropyBit extracts the low bit of a block hash's first 8 bytes
// (interpreted little-endian), used as one bit of stake-modifier entropy
// per selected block.
func StakeEntropyBit(hash chainhash.Hash) uint32 {
	low8 := binary.LittleEndian.Uint64(hash[:8])
	return uint32(low8 & 1)
}
