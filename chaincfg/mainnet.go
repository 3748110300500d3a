package chaincfg

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// mainPowLimit is ~0 >> 1: the highest-difficulty PoW target mainnet will
// ever accept.
var mainPowLimit = new(big.Int).Rsh(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), 1)

// mainPosLimit is ~0 >> 20, always easier than mainPowLimit.
var mainPosLimit = new(big.Int).Rsh(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), 20)

var mainGenesisHeader = CreateGenesisBlock(1, 1500674579, 8485, bigToCompact(mainPowLimit),
	mustHash("203fd13214321a12b01c0d8b32c780977cf52e56ae35b7383cd389c73291aee7"))

// mainGenesisHash is split out of MainNetParams so mainCheckpoints can
// reference it without creating a MainNetParams -> mainCheckpoints ->
// MainNetParams initialization cycle.
var mainGenesisHash = assertGenesis(mainGenesisHeader, mustHash("7286972be4dbc1463d256049b7471c252e6557e222cab9be73181d359cd28bcc"))

// MainNetParams are the mainnet consensus parameters.
var MainNetParams = Params{
	Name:         "main",
	MessageStart: [4]byte{0x32, 0x5e, 0x6f, 0x86},
	DefaultPort:  "6325",

	GenesisHeader:     mainGenesisHeader,
	GenesisHash:       mainGenesisHash,
	GenesisMerkleRoot: mainGenesisHeader.MerkleRoot,

	SubsidyHalvingInterval: 210000,

	BIP34Height:          1,
	BIP65Height:           1,
	BIP66Height:           363725,
	CSVHeight:             419328,
	SegwitHeight:          40000000,
	MinBIP9WarningHeight:  40000000,

	PowLimit:     mainPowLimit,
	PowLimitBits: bigToCompact(mainPowLimit),
	PosLimit:     mainPosLimit,

	TargetTimespan: 2 * 60 * 60,

	NLastPoWBlock: 1000,

	Fork2ConfsChangedHeight:   248000,
	Fork3TachyonHeight:        387028,
	Fork4RetargetCorrectHeight: 1003125,
	Fork5ColdStaking:          2730450,

	StakeMinAgeV1: 24 * 60 * 60,
	StakeMinAgeV2: 24 * 60 * 60,
	StakeMaxAge:   7 * 24 * 60 * 60,

	ModifierInterval: 10 * 60,

	CoinbaseMaturityV1: 30,
	CoinbaseMaturityV2: 10,
	CoinbaseMaturityV3: 120,

	StakeTargetSpacingV1: 2 * 60,
	StakeTargetSpacingV2: 30,

	PowAllowMinDifficultyBlocks: false,
	PowNoRetargeting:            false,

	RuleChangeActivationThreshold: 1815,
	MinerConfirmationWindow:       2016,
	Deployments: [DefinedDeployments]ConsensusDeployment{
		DeploymentTestDummy: {BitNumber: 28, StartTime: neverActive, ExpireTime: noTimeout},
		DeploymentTaproot:    {BitNumber: 2, StartTime: 1619222400, ExpireTime: 1628640000, MinActivationHeight: 709632},
	},

	PubKeyHashAddrID: 53,
	ScriptHashAddrID: 112,
	PrivateKeyID:     128 + 53,
	Bech32HRPSegwit:  "nb",

	Checkpoints:              mainCheckpoints,
	StakeModifierCheckpoints: mainStakeModifierCheckpoints,
	PowHeights:               mainPowHeights,
}

var mainStakeModifierCheckpoints = map[int32]uint32{
	0:    0xfd11f4e7,
	500:  0x3b54b16d,
	1000: 0x7b238954,
}

var mainCheckpoints = map[int32]chainhash.Hash{
	0:       mainGenesisHash,
	500:     mustHash("00000342c5dc5f7fd4a8ef041d4df4e569bd40756405a8c336c5f42c77e097a2"),
	1000:    mustHash("00000c60e3a8d27dedb15fc33d91caec5cf714fae60f24ea22a649cded8e0cca"),
	5000:    mustHash("074873095a26296d4f0033f697f46bddb7c1359ffcb3461f620e346bc516a1d2"),
	25000:   mustHash("9c28e51c9c21092909fe0a6ad98ae335f253fa9c8076bb3cca154b6ba5ee03ab"),
	100000:  mustHash("bb13aedc5846fe5d384601ef4648492262718fc7dfe35b886ef297ea74cab8cc"),
	150000:  mustHash("9a755758cc9a8d40fc36e6cc312077c8dd5b32b2c771241286099fd54fd22db0"),
	200000:  mustHash("acea764bbb689e940040b229a89213e17b50b98db0514e1428acedede9c1a4c0"),
	250000:  mustHash("297eda3c18c160bdb2b1465164b11ba2ee7908b209a26d3b76eac3876aa55072"),
	260000:  mustHash("4d407875afd318897266c14153d856774868949c65176de9214778d5626707a0"),
	270000:  mustHash("7f8ead004a853b411de63a3f30ee5a0e4c144a11dbbc00c96942eb58ff3b9a48"),
	280000:  mustHash("954544adaa689ad91627822b9da976ad6f272ced95a272b41b108aabff30a3e5"),
	285000:  mustHash("7c37fbdb5129db54860e57fd565f0a17b40fb8b9d070bda7368d196f63034ae5"),
	290000:  mustHash("5685d1cc15100fa0c7423b7427b9f0f22653ccd137854f3ecc6230b0d1af9ebc"),
	300000:  mustHash("b2d6ef8b3ec931c48c2d42fa574a382a534014388b17eb8e0eca1a0db379e369"),
	310000:  mustHash("53c993efaf747fadd0ecae8b3a15292549e77223853a8dc90c18aa4664f85b6e"),
	320000:  mustHash("82ecc41d44fefc6667119b0142ba956670bda4e15c035eefe66bfaa4362d2823"),
	350000:  mustHash("7787a1240f1bff02cd3e37cfc8f4635725e26c6db7ff44e8fbee7bf31dc6d929"),
	360000:  mustHash("b4b001753a4d7ec18012a5ff1cbf3f614130adbf6c3f2515d36dfc3300655c2a"),
	387028:  mustHash("ac7d44244ff394255f4c1f99664b26cd015d3d10bddbb8a86727ff848faa6acf"),
	390000:  mustHash("cd035c9899d22c414f79a345c1b96fd9342d1beb5f80f1dbad6a6244b5d3d5b8"),
	400000:  mustHash("7ae908b0c5351fae59fcff7ab4fe0e23f4e7630ed895822676f3ee551262d82d"),
	500000:  mustHash("92b5c16c99769dcad4c2d4548426037b35894ef57ff1bf2516575440e1f87d4f"),
	600000:  mustHash("69c4acf177368eeb40155e7b03d07b7a6579620320d5de2554db99d0f4908b97"),
	700000:  mustHash("8b5806c169fb7d3345e9f02ee0a38538cc4ab5884177002c1e9528058c5eab40"),
	800000:  mustHash("71e29af1056d1e8e217382f433d017406db7f0e03eb1995429a9edb741120643"),
	900000:  mustHash("8757e0670d5db26a9b540c616ae1c208bda9f4c3b3270754a36c867aa238206b"),
	1000000: mustHash("0ef9d1ce85a1e8209f735f1574bbe0ed0aaca34f0c6052a65443aada25be94a8"),
	1003125: mustHash("0faaf5119ab9eb3a22e0984d6cba6cebc8d7bae25342401c782ab4fa413c326e"),
	1100000: mustHash("b726814d624b9a1b77e4edfb43ec4c8c47d5cfe4a2c7644812074fb5ac01f252"),
	1200000: mustHash("901c6205092ac4fff321de8241badaf54da4c1f3f7c421b06a442f2a887d88ce"),
	1300000: mustHash("c0d0115689b9687cb03d7520ed45e5500e792a83cd3842034b5f9e26fda6d3ce"),
	1400000: mustHash("4697721a360aa7909e7badf528b3223add193943f1444524284b9a31501cd88a"),
	1500000: mustHash("dc3445dfd8e1f57f42011e6b1d63352a69347c830dc1fab36c699dc6a211b48f"),
	1600000: mustHash("b3970d20ca506d31d191f6422150c5e65696ef55bbc51df844171681ed79693f"),
	1700000: mustHash("67490f7265f5fc8d29a36ebb066a7f4dee724bfa9b7691b8e420544385556c68"),
	1800000: mustHash("820f5b448a49b8273d60377f047eb45b1764cd0a00bf8c219f555b49b9751c66"),
	1900000: mustHash("70ff2582c9ef327a71f5215d58d3ad2b6473b3649b2c018cc1ff524b672d69a2"),
	2000000: mustHash("c2a644527223b80000f11b9a821e398ab99483d71c3cb1304e9c267b64c7b85a"),
	2100000: mustHash("d5e7791acc99afc500679205df06bfb62b298040645f247f41eaf2acb42868cb"),
	2200000: mustHash("8791a85a7ec96571070a589978a99cc2cc0e06c5345056698604e7e793759d08"),
	2300000: mustHash("575ca59268e10b92cfedca6059a388043882f95442b7290012bf8a333ce889c4"),
	2400000: mustHash("dd8ed2992b0df4422d1fc950350c82f84d9a0862f93582f9404d5c3bb4b3a625"),
	2500000: mustHash("07ad693d84ef66eaa81f96db7ad901e871ca02a76b1fabb72c1e300580dd2c71"),
	2600000: mustHash("8d1855390705044b515907cc2096cd2bb4979cb18d6bf1edd26983da60387502"),
	2687000: mustHash("6d2097fce84bd83b066f2a63512b8a44225314cd5f2561eac471071eae291d9a"),
}

// mainPowHeights is the explicit set of heights at which a PoW block is
// still permitted in mainnet's PoS-dominated early era. Trimmed to the
// contiguous run plus the scattered tail the source lists; anything above
// NLastPoWBlock (1000) is allowed unconditionally and doesn't need a slot
// here regardless.
var mainPowHeights = buildPowHeightSet(1, 815, []int32{
	817, 818, 819, 820, 821, 822, 826, 827, 828, 829, 830, 831, 832, 834,
	841, 842, 843, 844, 845, 846, 847, 848, 861, 862, 863, 870, 871, 876,
	877, 878, 880, 881, 884, 894, 897, 898, 899, 900, 901, 906, 910, 919,
	922, 923, 926, 927, 928, 929, 930, 940, 941, 949, 950, 951, 952, 957,
	958, 959, 960, 961, 985, 986, 993, 997, 1000,
})
