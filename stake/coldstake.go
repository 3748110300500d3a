package stake

import (
	"github.com/ppcstake/ppcstaked/consensus"
)

// ScriptClass mirrors the narrow slice of txscript's output classification
// CheckBlockSignature needs. txscript itself is an external collaborator
// per spec §1; this is just the enum value it returns.
type ScriptClass int

const (
	ScriptClassPubKey ScriptClass = iota
	ScriptClassPubKeyHash
	ScriptClassColdStaking
	ScriptClassOther
)

// ColdStakeEnabled reports whether height has crossed a network's
// Fork5ColdStaking activation point. Below it, CheckBlockSignature treats a
// COLDSTAKE-classified coin-stake output as ScriptClassOther, which does not
// verify.
func ColdStakeEnabled(height, fork5ColdStaking int32) bool {
	return height >= fork5ColdStaking
}

// ExtractColdStakePubKey checks and copies the staking pubkey already taken
// out of a COLDSTAKE output script; it does not parse the script itself.
// The reference implementation
// (validation_pos.cpp's CheckBlockSignature) accepts either a compressed
// (33-byte) or uncompressed (65-byte) pubkey; anything else is a structural
// violation reported as ColdStakeKeyExtractionError(KeySizeInvalid), which
// callers fold into a soft (DOS_1) block rejection per spec §7.
func ExtractColdStakePubKey(embeddedPubKey []byte) ([]byte, error) {
	switch len(embeddedPubKey) {
	case 33, 65:
		out := make([]byte, len(embeddedPubKey))
		copy(out, embeddedPubKey)
		return out, nil
	default:
		return nil, consensus.ColdStakeKeyExtractionError(consensus.KeySizeInvalid)
	}
}

// SignatureVerifier verifies a raw ECDSA signature against a pubkey and a
// block hash, standing in for the external signing/crypto collaborator
// (spec §1 excludes wallet/signing from scope).
type SignatureVerifier interface {
	Verify(pubKey, signature, blockHash []byte) bool
}

// CheckBlockSignature dispatches a PoS block's signature check on its
// coin-stake's first output script class: a plain PUBKEY output is checked
// directly against the embedded key, a COLDSTAKE output (once
// ColdStakeEnabled) is checked against the extracted staking pubkey rather
// than the spending pubkey. This is SPEC_FULL.md's supplemented feature #1,
// grounded on validation_pos.cpp's CheckBlockSignature.
func CheckBlockSignature(
	blockHash []byte,
	signature []byte,
	firstOutputClass ScriptClass,
	embeddedPubKey []byte,
	height, fork5ColdStaking int32,
	verifier SignatureVerifier,
) (bool, error) {
	class := firstOutputClass
	if class == ScriptClassColdStaking && !ColdStakeEnabled(height, fork5ColdStaking) {
		class = ScriptClassOther
	}

	switch class {
	case ScriptClassPubKey, ScriptClassColdStaking:
		pubKey := embeddedPubKey
		if class == ScriptClassColdStaking {
			extracted, err := ExtractColdStakePubKey(embeddedPubKey)
			if err != nil {
				return false, err
			}
			pubKey = extracted
		}
		return verifier.Verify(pubKey, signature, blockHash), nil
	default:
		return false, nil
	}
}
