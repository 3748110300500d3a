package chaincfg

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// DefaultSignetChallenge is the signet challenge script used when the
// operator does not supply -signetchallenge.
const DefaultSignetChallenge = "512103ad5e0edad18cb1f0fc0d28a3d4f1f3e445640337489abb10404f2d1e086be430210359ef5021964fe22d6f8e05b2463c9540ce96883fe3b278760f048f5189f2e6c452ae"

var signetPowLimit, _ = new(big.Int).SetString("00000377ae000000000000000000000000000000000000000000000000000000", 16)

// signetMessageStart derives the network magic as the first 4 bytes of the
// double-SHA256 of the signet challenge script, matching how a custom
// -signetchallenge changes the magic along with it.
func signetMessageStart(challenge []byte) [4]byte {
	first := sha256.Sum256(challenge)
	second := sha256.Sum256(first[:])
	var out [4]byte
	copy(out[:], second[:4])
	return out
}

var signetGenesisHeader = CreateGenesisBlock(1, 1598918400, 52613770, 0x1e0377ae, chainhash.Hash{})

// SignetParams are the BIP325 signet consensus parameters for the default
// challenge. NewSignetParams rebuilds this value for a custom
// -signetchallenge; seed nodes are not part of Params.
var SignetParams = buildSignetParams(mustHexDecode(DefaultSignetChallenge))

// NewSignetParams builds signet Params for a custom challenge script. The
// genesis hash is not asserted here: the original leaves the signet genesis
// hash assertion commented out pending a literal, so this package follows
// suit rather than inventing one.
func NewSignetParams(challengeHex string) (Params, error) {
	challenge, err := hex.DecodeString(challengeHex)
	if err != nil {
		return Params{}, err
	}
	return buildSignetParams(challenge), nil
}

func buildSignetParams(challenge []byte) Params {
	genesisHeader := signetGenesisHeader
	genesisHash, _ := genesisHeader.Hash()

	return Params{
		Name:         "signet",
		MessageStart: signetMessageStart(challenge),
		DefaultPort:  "38333",

		GenesisHeader:     genesisHeader,
		GenesisHash:       genesisHash,
		GenesisMerkleRoot: genesisHeader.MerkleRoot,

		SubsidyHalvingInterval: 210000,

		BIP34Height:          1,
		BIP65Height:           1,
		BIP66Height:           1,
		CSVHeight:             1,
		SegwitHeight:          1,
		MinBIP9WarningHeight:  0,

		PowLimit:     signetPowLimit,
		PowLimitBits: bigToCompact(signetPowLimit),
		PosLimit:     signetPowLimit,

		TargetTimespan: 14 * 24 * 60 * 60,

		NLastPoWBlock: 0,

		PowAllowMinDifficultyBlocks: false,
		PowNoRetargeting:            false,

		RuleChangeActivationThreshold: 1815,
		MinerConfirmationWindow:       2016,
		Deployments: [DefinedDeployments]ConsensusDeployment{
			DeploymentTestDummy: {BitNumber: 28, StartTime: neverActive, ExpireTime: noTimeout},
			DeploymentTaproot:    {BitNumber: 2, StartTime: alwaysActive, ExpireTime: noTimeout},
		},

		PubKeyHashAddrID: 111,
		ScriptHashAddrID: 196,
		PrivateKeyID:     239,
		Bech32HRPSegwit:  "tb",

		Checkpoints:              map[int32]chainhash.Hash{},
		StakeModifierCheckpoints: map[int32]uint32{},
		PowHeights:               map[int32]struct{}{},
	}
}

func mustHexDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
