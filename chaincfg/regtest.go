package chaincfg

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var regtestPowLimit, _ = new(big.Int).SetString("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", 16)

var regtestGenesisHeader = CreateGenesisBlock(1, 1296688602, 2, 0x207fffff, chainhash.Hash{})

// RegtestParams are the regression-test consensus parameters. Unlike the
// other three networks, Regtest is mutable after construction via
// ApplyTestActivationHeight and UpdateVersionBitsParameters, mirroring
// -testactivationheight and -vbparams in the original.
var RegtestParams = func() Params {
	genesisHash, _ := regtestGenesisHeader.Hash()
	return Params{
		Name:         "regtest",
		MessageStart: [4]byte{0xfa, 0xbf, 0xb5, 0xda},
		DefaultPort:  "18444",

		GenesisHeader:     regtestGenesisHeader,
		GenesisHash:       genesisHash,
		GenesisMerkleRoot: regtestGenesisHeader.MerkleRoot,

		SubsidyHalvingInterval: 150,

		BIP34Height:          1,
		BIP65Height:           1,
		BIP66Height:           1,
		CSVHeight:             1,
		SegwitHeight:          1,
		MinBIP9WarningHeight:  0,

		PowLimit:     regtestPowLimit,
		PowLimitBits: bigToCompact(regtestPowLimit),
		PosLimit:     regtestPowLimit,

		TargetTimespan: 14 * 24 * 60 * 60,

		PowAllowMinDifficultyBlocks: true,
		PowNoRetargeting:            true,

		RuleChangeActivationThreshold: 108,
		MinerConfirmationWindow:       144,
		Deployments: [DefinedDeployments]ConsensusDeployment{
			DeploymentTestDummy: {BitNumber: 28, StartTime: 0, ExpireTime: noTimeout},
			DeploymentTaproot:    {BitNumber: 2, StartTime: alwaysActive, ExpireTime: noTimeout},
		},

		PubKeyHashAddrID: 111,
		ScriptHashAddrID: 196,
		PrivateKeyID:     239,
		Bech32HRPSegwit:  "bcrt",

		Checkpoints: map[int32]chainhash.Hash{
			0: genesisHash,
		},
		StakeModifierCheckpoints: map[int32]uint32{},
		PowHeights:               map[int32]struct{}{},
	}
}()
