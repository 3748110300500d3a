package stake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppcstake/ppcstaked/consensus"
)

func TestExtractColdStakePubKeyAcceptsCompressedAndUncompressed(t *testing.T) {
	compressed := make([]byte, 33)
	_, err := ExtractColdStakePubKey(compressed)
	require.NoError(t, err)

	uncompressed := make([]byte, 65)
	_, err = ExtractColdStakePubKey(uncompressed)
	require.NoError(t, err)
}

func TestExtractColdStakePubKeyRejectsBadSize(t *testing.T) {
	_, err := ExtractColdStakePubKey(make([]byte, 20))
	require.Error(t, err)
	assert.Equal(t, consensus.KeySizeInvalid, err)
}

func TestColdStakeEnabled(t *testing.T) {
	assert.False(t, ColdStakeEnabled(99, 100))
	assert.True(t, ColdStakeEnabled(100, 100))
	assert.True(t, ColdStakeEnabled(101, 100))
}

type alwaysVerifier bool

func (a alwaysVerifier) Verify([]byte, []byte, []byte) bool { return bool(a) }

func TestCheckBlockSignaturePubKey(t *testing.T) {
	ok, err := CheckBlockSignature(nil, nil, ScriptClassPubKey, make([]byte, 33), 0, 100, alwaysVerifier(true))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckBlockSignatureColdStakeBeforeActivationFallsBackToOther(t *testing.T) {
	ok, err := CheckBlockSignature(nil, nil, ScriptClassColdStaking, make([]byte, 33), 50, 100, alwaysVerifier(true))
	require.NoError(t, err)
	assert.False(t, ok, "a cold-stake output before activation should not verify via either path")
}

func TestCheckBlockSignatureColdStakeAfterActivation(t *testing.T) {
	ok, err := CheckBlockSignature(nil, nil, ScriptClassColdStaking, make([]byte, 65), 150, 100, alwaysVerifier(true))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckBlockSignatureColdStakeBadKeySize(t *testing.T) {
	_, err := CheckBlockSignature(nil, nil, ScriptClassColdStaking, make([]byte, 10), 150, 100, alwaysVerifier(true))
	require.Error(t, err)
}
