package consensus

// Coin and Cent are the base-unit denominations coin-age and kernel-hash
// arithmetic divide by. One Coin is 10^8 base units; one Cent is 10^6.
const (
	Coin = 100000000
	Cent = 1000000
)

// SecondsPerDay is the wall-clock day length used throughout the coin-age
// and kernel-hash target arithmetic (spec §4.D/§4.E).
const SecondsPerDay = 24 * 60 * 60
