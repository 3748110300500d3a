// Package chaincfg is the chain parameter registry (component A): one
// immutable, constructor-built Params value per network, installed once at
// process start and read thereafter without locking.
package chaincfg

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ppcstake/ppcstaked/primitives"
)

// DeploymentID identifies a version-bits soft-fork deployment slot.
type DeploymentID int

const (
	DeploymentTestDummy DeploymentID = iota
	DeploymentCSV
	DeploymentSegwit
	DeploymentTaproot

	// DefinedDeployments is the number of deployment slots a Params value
	// carries; keep it last.
	DefinedDeployments
)

// ConsensusDeployment describes one version-bits soft-fork's activation
// window. Only Regtest permits mutating these after construction, via
// UpdateVersionBitsParameters.
type ConsensusDeployment struct {
	BitNumber            uint8
	StartTime            int64
	ExpireTime           int64
	MinActivationHeight  int32
}

// Params holds the full set of per-network consensus constants, the
// checkpoint sets, and the genesis block. Treat a *Params as immutable once
// returned by its network constructor, except on Regtest where
// UpdateVersionBitsParameters and ApplyTestActivationHeight are permitted.
type Params struct {
	Name        string
	MessageStart [4]byte
	DefaultPort string

	GenesisHeader     primitives.BlockHeader
	GenesisHash       chainhash.Hash
	GenesisMerkleRoot chainhash.Hash

	SubsidyHalvingInterval int32

	BIP34Height        int32
	BIP65Height        int32
	BIP66Height        int32
	CSVHeight          int32
	SegwitHeight       int32
	MinBIP9WarningHeight int32

	PowLimit     *big.Int
	PowLimitBits uint32
	PosLimit     *big.Int

	TargetTimespan int64 // seconds

	NLastPoWBlock int32

	Fork2ConfsChangedHeight     int32
	Fork3TachyonHeight          int32
	Fork4RetargetCorrectHeight  int32
	Fork5ColdStaking            int32

	StakeMinAgeV1 int64
	StakeMinAgeV2 int64
	StakeMaxAge   int64

	ModifierInterval int64

	CoinbaseMaturityV1 int32
	CoinbaseMaturityV2 int32
	CoinbaseMaturityV3 int32

	StakeTargetSpacingV1 int64
	StakeTargetSpacingV2 int64

	PowAllowMinDifficultyBlocks bool
	PowNoRetargeting            bool

	RuleChangeActivationThreshold uint32
	MinerConfirmationWindow       uint32
	Deployments                   [DefinedDeployments]ConsensusDeployment

	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte
	Bech32HRPSegwit  string

	// Checkpoints maps a height to the expected block hash at that height.
	Checkpoints map[int32]chainhash.Hash
	// StakeModifierCheckpoints maps a height to the expected stake
	// modifier checksum at that height.
	StakeModifierCheckpoints map[int32]uint32
	// PowHeights is the explicit set of heights at which a PoW block is
	// permitted (enforced only up to NLastPoWBlock).
	PowHeights map[int32]struct{}

	// mutable is set on Regtest only; it gates UpdateVersionBitsParameters
	// and ApplyTestActivationHeight.
	mutable bool
}

// TargetSpacing returns the target block spacing in effect at height,
// selecting the v1 (pre-Tachyon) or v2 (post-Tachyon) value.
func (p *Params) TargetSpacing(height int32) int64 {
	if height >= p.Fork3TachyonHeight {
		return p.StakeTargetSpacingV2
	}
	return p.StakeTargetSpacingV1
}

// StakeMinAge returns the minimum coin age in effect at height.
func (p *Params) StakeMinAge(height int32) int64 {
	if height >= p.Fork3TachyonHeight {
		return p.StakeMinAgeV2
	}
	return p.StakeMinAgeV1
}

// CoinbaseMaturity returns the number of confirmations a coinbase/coinstake
// output requires before it is spendable at height. The V1->V2 transition
// happens at Fork2ConfsChangedHeight, V2->V3 at Fork4RetargetCorrectHeight.
func (p *Params) CoinbaseMaturity(height int32) int32 {
	switch {
	case height >= p.Fork4RetargetCorrectHeight:
		return p.CoinbaseMaturityV3
	case height >= p.Fork2ConfsChangedHeight:
		return p.CoinbaseMaturityV2
	default:
		return p.CoinbaseMaturityV1
	}
}

// IsPoWHeightAllowed reports whether a PoW block is permitted at height:
// always true once past NLastPoWBlock (PoS-only era doesn't consult the
// set), otherwise only for explicitly listed heights.
func (p *Params) IsPoWHeightAllowed(height int32) bool {
	if height > p.NLastPoWBlock {
		return true
	}
	_, ok := p.PowHeights[height]
	return ok
}
