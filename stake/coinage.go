package stake

import (
	"math/big"

	"github.com/ppcstake/ppcstaked/consensus"
)

// CoinInput is the minimal read-only view GetCoinAge needs of one spent
// coin: its value, the block time it was created in, and whether that
// block is still known to the caller's UTXO view.
type CoinInput struct {
	Value   int64
	NTime   int64
	Found   bool // false if the coin isn't visible in the current UTXO view
}

// GetCoinAge sums the cent-seconds of every input of a non-coinbase
// transaction into coin-days (spec §4.E). inputs that are missing from the
// UTXO view, or whose coin is younger than stakeMinAge relative to txTime,
// are skipped rather than rejected. isCoinbase short-circuits to a
// zero-but-successful result, matching the reference GetCoinAge.
func GetCoinAge(isCoinbase bool, txTime int64, inputs []CoinInput, stakeMinAge int64) *big.Int {
	if isCoinbase {
		return big.NewInt(0)
	}

	centSeconds := big.NewInt(0)
	for _, in := range inputs {
		if !in.Found {
			continue
		}
		if in.NTime+stakeMinAge > txTime {
			continue
		}
		age := txTime - in.NTime
		contribution := new(big.Int).Mul(big.NewInt(in.Value), big.NewInt(age))
		contribution.Div(contribution, big.NewInt(consensus.Cent))
		centSeconds.Add(centSeconds, contribution)
	}

	coinDays := new(big.Int).Mul(centSeconds, big.NewInt(consensus.Cent))
	coinDays.Div(coinDays, big.NewInt(consensus.Coin))
	coinDays.Div(coinDays, big.NewInt(consensus.SecondsPerDay))
	return coinDays
}

// ProofOfStakeReward computes the block subsidy a successful coin-stake
// earns: roughly 10% annualized on the staked coin-age, with the 33/(33*365+8)
// factor the reference implementation uses to compensate for an 8-day shift
// relative to pure per-diem accrual (spec §4.E).
func ProofOfStakeReward(coinAge *big.Int, fees int64) *big.Int {
	reward := new(big.Int).Mul(coinAge, big.NewInt(10*consensus.Cent))
	reward.Mul(reward, big.NewInt(33))
	reward.Div(reward, big.NewInt(365*33+8))
	reward.Add(reward, big.NewInt(fees))
	return reward
}
