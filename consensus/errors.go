// Package consensus defines the shared error taxonomy used across the
// proof-of-work/proof-of-stake validation packages (chaincfg, pow, stake,
// chainindex, orphanpool). It unifies the mix of bool-with-out-params,
// sentinel errors and ad-hoc enums found in the reference implementation
// into a single tagged-variant result type.
package consensus

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the severity of a validation failure, mirroring the DOS
// scoring the reference node attaches to block rejection.
type Kind int

const (
	// KindDOS100 is a fatal rejection: the peer that supplied the offending
	// data should be banned. Malformed transactions, an invalid prevout
	// reference, a coin-stake script verification failure, and a
	// stake-modifier checkpoint mismatch all fall here.
	KindDOS100 Kind = iota
	// KindDOS1 is a soft rejection: the block is rejected but the sender is
	// tolerated, since this is expected to happen during initial block
	// download (e.g. a kernel hash that fails its target, or a prevout not
	// yet visible to the local UTXO view).
	KindDOS1
	// KindTransient covers failures outside of consensus itself: a missing
	// transaction index, or a block-file I/O error. Callers should log and
	// retry rather than treat the block as invalid.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindDOS100:
		return "DOS_100"
	case KindDOS1:
		return "DOS_1"
	case KindTransient:
		return "transient"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RuleError is a consensus rule violation tagged with its severity and the
// short machine-readable reason string the reference implementation logs
// alongside a DOS score (e.g. "invalid-prevout", "verify-cs-script-failed",
// "prevout-not-found").
type RuleError struct {
	Kind   Kind
	Reason string
	cause  error
}

func (e *RuleError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *RuleError) Unwrap() error { return e.cause }

// NewRuleError builds a RuleError, wrapping cause (which may be nil) with
// call-site context the same way the rest of this module uses
// github.com/pkg/errors.
func NewRuleError(kind Kind, reason string, cause error) *RuleError {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &RuleError{Kind: kind, Reason: reason, cause: cause}
}

// IsKind reports whether err is a *RuleError of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// ColdStakeKeyExtractionError is the narrow error cold-stake pubkey
// extraction can fail with; it collapses to a soft (DOS_1) block rejection
// at the caller.
type ColdStakeKeyExtractionError int

const (
	// KeySizeInvalid means the embedded staking pubkey was not 33 or 65
	// bytes long.
	KeySizeInvalid ColdStakeKeyExtractionError = iota
)

func (e ColdStakeKeyExtractionError) Error() string {
	switch e {
	case KeySizeInvalid:
		return "cold-stake pubkey has invalid size"
	default:
		return "cold-stake key extraction error"
	}
}
