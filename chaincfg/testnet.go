package chaincfg

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var testPowLimit = new(big.Int).Rsh(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), 1)
var testPosLimit = new(big.Int).Rsh(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), 20)

var testGenesisHeader = CreateGenesisBlock(1, 1500674579, 8485, bigToCompact(testPowLimit),
	mustHash("203fd13214321a12b01c0d8b32c780977cf52e56ae35b7383cd389c73291aee7"))

// testGenesisHash is split out of TestNetParams so testCheckpoints can
// reference it without creating a TestNetParams -> testCheckpoints ->
// TestNetParams initialization cycle.
var testGenesisHash = assertGenesis(testGenesisHeader, mustHash("7286972be4dbc1463d256049b7471c252e6557e222cab9be73181d359cd28bcc"))

// TestNetParams are the public testnet (v3) consensus parameters. Notably,
// Fork4RetargetCorrectHeight here is 1163000, the same consensus field
// mainnet sets to 1003125 — not the powHeights outlier it might look like at
// a glance.
var TestNetParams = Params{
	Name:         "testnet",
	MessageStart: [4]byte{0x1b, 0xba, 0x63, 0xc5},
	DefaultPort:  "16325",

	GenesisHeader:     testGenesisHeader,
	GenesisHash:       testGenesisHash,
	GenesisMerkleRoot: testGenesisHeader.MerkleRoot,

	SubsidyHalvingInterval: 210000,

	BIP34Height:          1,
	BIP65Height:           1,
	BIP66Height:           330776,
	CSVHeight:             770112,
	SegwitHeight:          834624,
	MinBIP9WarningHeight:  40000000,

	PowLimit:     testPowLimit,
	PowLimitBits: bigToCompact(testPowLimit),
	PosLimit:     testPosLimit,

	TargetTimespan: 2 * 60 * 60,

	NLastPoWBlock: 1000,

	Fork2ConfsChangedHeight:   0,
	Fork3TachyonHeight:        110100,
	Fork4RetargetCorrectHeight: 1163000,
	Fork5ColdStaking:          2386991,

	StakeMinAgeV1: 60,
	StakeMinAgeV2: 24 * 60 * 60,
	StakeMaxAge:   7 * 24 * 60 * 60,

	ModifierInterval: 10 * 60,

	CoinbaseMaturityV1: 10,
	CoinbaseMaturityV2: 10,
	CoinbaseMaturityV3: 120,

	StakeTargetSpacingV1: 2 * 60,
	StakeTargetSpacingV2: 30,

	PowAllowMinDifficultyBlocks: true,
	PowNoRetargeting:            false,

	RuleChangeActivationThreshold: 1512,
	MinerConfirmationWindow:       2016,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {BitNumber: 28, StartTime: neverActive, ExpireTime: noTimeout},
		DeploymentTaproot:    {BitNumber: 2, StartTime: 1619222400, ExpireTime: 1628640000},
	},

	PubKeyHashAddrID: 65,
	ScriptHashAddrID: 127,
	PrivateKeyID:     128 + 65,
	Bech32HRPSegwit:  "tnb",

	Checkpoints:              testCheckpoints,
	StakeModifierCheckpoints: testStakeModifierCheckpoints,
	PowHeights:               testPowHeights,
}

var testStakeModifierCheckpoints = map[int32]uint32{
	0:   0xfd11f4e7,
	100: 0x7bb33af1,
}

var testCheckpoints = map[int32]chainhash.Hash{
	0:       testGenesisHash,
	1:       mustHash("0e2eecad99db0eab96abbd7e2de769d92483a090eefcefc014b802d31131a0ce"),
	500:     mustHash("0000006939777fded9640797f3008d9fca5d6e177e440655ba10f8a900cabe61"),
	1000:    mustHash("000004715d8818cea9c2e5e9a727eb2f950964eb0d1060e1d5effd44c2ca45df"),
	100000:  mustHash("1fdbb9642e997fa13df3b0c11c95e959a2606ef9bc6c431e942cf3fc74ed344d"),
	200000:  mustHash("f4072b1e5b7ede5b33c82045b13f225b41ff3d8262e03ea5ed9521290e2d5e42"),
	300000:  mustHash("448d74d70dea376576217ef72518f18f289ab4680f6714cdac8a3903f7a2cacf"),
	400000:  mustHash("09c3bd420fa43ab4e591b0629ed8fe0e86fc264939483d6b7cb0a59f05020953"),
	500000:  mustHash("ae87c4f158e07623b88aa089f2de3e3437352873293febcfa1585b07e823d955"),
	600000:  mustHash("3c7dbe265d43da7834c3f291e031dda89ef6c74f2950f0af15acf33768831f91"),
	700000:  mustHash("a5bcfb2d5d52e8c0bdce1ae11019a7819d4d626e6836f1980fe6b5ce13c10039"),
	800000:  mustHash("13a2c603fbdb4ced718d6f7bba60b335651ddb832fbe8e11962e454c6625e20f"),
	900000:  mustHash("e5c4d6f1fbd90b6a2af9a02f1e947422a4c5a8756c34d7f0e45f57b341e47156"),
	1000000: mustHash("806506a6eafe00e213c666a8c8fd14dac0c6d6a52e0f05a4d175633361e5e377"),
	1100000: mustHash("397b5e6e0e95d74d7c01064feae627d11a2a99d08ebf91200dbb9d94b1d4ee26"),
	1200000: mustHash("54e813b81516c1a6169ff81abaec2715e13b2ec0796db4fcc510be1e0805d21e"),
	1300000: mustHash("75da223a32b31b3bbb1f32ab33ad5079b70698902ebed5594bebc02ffecb74a8"),
	1400000: mustHash("064c16b9c408e40f020ca455255e58da98b019eb424554259407d7461c5258e2"),
	1500000: mustHash("1fc65c5e904c0dda39a26826df0feaa1d35f5d49657acee2d1674271f38b2100"),
	1600000: mustHash("8510acea950aa7e2da8d287bacc66cca6056bf89f5f0d70109fd92adaf1023d9"),
	1700000: mustHash("65738a87a454cfe97b8200149cd4be7199d1ceff30b18778bd79d222203962ce"),
	1801000: mustHash("406fc58723c11eae128c85174e81b5b6b333eaf683ff4f6ca34bbd8cee3b24f5"),
	2521000: mustHash("d3dc0dd25f4850fa8a607620620959e1970e7bcfe9b36ffd8df3bda1004e5cab"),
	2581300: mustHash("e90b2a55da410f834e047a1f2c1d1901f6beeba2a366a6ce05b01112e9973432"),
}

var testPowHeights = buildPowHeightSet(1, 539, []int32{
	542, 576, 578, 584, 597, 599, 601, 607, 609, 610, 611, 612, 619, 620,
	622, 635, 639, 640, 641, 644, 645, 646, 650, 651, 653, 659, 661, 662,
	664, 665, 670, 677, 686, 693, 697, 698, 699, 701, 705, 706, 708, 709,
	711, 712, 713, 717, 719, 720, 724, 733, 734, 736, 740, 741, 742, 744,
	749, 750, 752, 753, 754, 756, 757, 758, 759, 760, 761, 766, 767, 770,
	773, 774, 775, 777, 778, 782, 784, 785, 791, 792, 793, 794, 795, 796,
	801, 802, 805, 806, 807, 808, 809, 810, 811, 819, 821, 822, 823, 824,
	825, 826, 827, 828, 830, 831, 832, 835, 838, 839, 840, 841, 842, 844,
	848, 850, 851, 852, 855, 860, 862, 866, 868, 870, 875, 877, 878, 879,
	880, 881, 882, 883, 884, 885, 886, 887, 888, 894, 895, 898, 899, 902,
	904, 905, 910, 911, 916, 917, 919, 922, 923, 925, 926, 929, 930, 931,
	933, 934, 935, 936, 937, 938, 940, 943, 950, 951, 952, 954, 956, 958,
	959, 960, 961, 962, 963, 965, 968, 984, 985, 988, 994, 995, 996, 998,
	999, 1000,
})
