package stake

import (
	"encoding/binary"
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

// modifierIntervalRatio is the geometric ratio (3) between successive
// modifier-interval sections; section 63 (most recent) is the largest.
const modifierIntervalRatio = 3

// modifierSelectionRounds is the number of sections a selection interval is
// divided into, and the number of entropy bits folded into a new modifier.
const modifierSelectionRounds = 64

// SelectionIntervalSection returns the length, in seconds, of section n
// (0 <= n < 64) of a modifier-interval selection window.
func SelectionIntervalSection(modifierInterval int64, n int) int64 {
	return modifierInterval * 63 / (63 + int64(63-n)*(modifierIntervalRatio-1))
}

// SelectionInterval returns the total length, in seconds, of the 64-section
// selection window: the sum of SelectionIntervalSection over n in [0, 64).
func SelectionInterval(modifierInterval int64) int64 {
	var total int64
	for n := 0; n < modifierSelectionRounds; n++ {
		total += SelectionIntervalSection(modifierInterval, n)
	}
	return total
}

// getLastStakeModifier walks back from node (inclusive) until it finds a
// block that generated a new stake modifier, returning that modifier and
// its generation time. Fails if no ancestor (including genesis) carries the
// generated-modifier flag.
func getLastStakeModifier(node BlockNode) (modifier uint64, modifierTime int64, err error) {
	if node == nil {
		return 0, 0, errors.New("stake: getLastStakeModifier called with nil node")
	}
	cur := node
	for cur != nil && !cur.HasGeneratedStakeModifier() {
		cur = parentOf(cur)
	}
	if cur == nil || !cur.HasGeneratedStakeModifier() {
		return 0, 0, errors.New("stake: no ancestor generated a stake modifier")
	}
	return cur.StakeModifier(), cur.Timestamp(), nil
}

// doubleSHA256 hashes b twice with SHA-256 (sha256-simd backend), matching
// the reference kernel's use of a double hash for the selection hash and
// the checksum chain.
func doubleSHA256(b []byte) chainhash.Hash {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return chainhash.Hash(second)
}

// hashToBig interprets a chainhash.Hash as a big-endian 256-bit unsigned
// integer, reversing the hash's internal (reversed-display) byte order.
func hashToBig(h chainhash.Hash) *big.Int {
	reversed := make([]byte, chainhash.HashSize)
	for i, v := range h[:] {
		reversed[chainhash.HashSize-1-i] = v
	}
	return new(big.Int).SetBytes(reversed)
}

type candidate struct {
	node BlockNode
	time int64
	hash chainhash.Hash
}

// candidateSorter orders candidates by (time ascending, hash ascending as
// big-endian uint256), matching the reference implementation's
// blockTimeHashSorter.
type candidateSorter []candidate

func (s candidateSorter) Len() int      { return len(s) }
func (s candidateSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s candidateSorter) Less(i, j int) bool {
	if s[i].time != s[j].time {
		return s[i].time < s[j].time
	}
	return hashToBig(s[i].hash).Cmp(hashToBig(s[j].hash)) < 0
}

// selectBlockFromCandidates scans sorted (by time) candidates not already
// in selected, returning the one with the smallest selection hash
// H(kernelHash || prevModifier), with PoS candidates' selection hash
// right-shifted 32 bits so they always win over a PoW candidate of
// comparable magnitude. Scanning stops once a selected candidate's
// timestamp exceeds stopTime.
func selectBlockFromCandidates(sorted []candidate, selected map[chainhash.Hash]bool, stopTime int64, prevModifier uint64) (BlockNode, error) {
	var best BlockNode
	var bestHash *big.Int
	found := false

	var modBuf [8]byte
	binary.LittleEndian.PutUint64(modBuf[:], prevModifier)

	for _, c := range sorted {
		if found && c.time > stopTime {
			break
		}
		if selected[c.hash] {
			continue
		}

		kernelHash := c.node.HashProofOfStake()
		if kernelHash == (chainhash.Hash{}) {
			kernelHash = c.hash
		}

		buf := make([]byte, 0, chainhash.HashSize+8)
		buf = append(buf, kernelHash[:]...)
		buf = append(buf, modBuf[:]...)
		selectionHash := doubleSHA256(buf)

		selectionInt := hashToBig(selectionHash)
		if c.node.IsProofOfStake() {
			selectionInt = new(big.Int).Rsh(selectionInt, 32)
		}

		if !found || selectionInt.Cmp(bestHash) < 0 {
			found = true
			bestHash = selectionInt
			best = c.node
		}
	}
	if !found {
		return nil, errors.New("stake: no candidate selected in round")
	}
	return best, nil
}

// ComputeNextStakeModifier computes the stake modifier tip's own block
// should carry, given tip's parent chain. It is a pure function: nothing is
// mutated, matching the "const-correct, side-effect-isolated" variant
// SPEC_FULL.md mandates. Returns (modifier, generated).
func ComputeNextStakeModifier(tip BlockNode, modifierInterval int64) (uint64, bool, error) {
	prev := parentOf(tip)
	if prev == nil {
		return 0, true, nil
	}

	modifier, genTime, err := getLastStakeModifier(prev)
	if err != nil {
		return 0, false, errors.Wrap(err, "stake: ComputeNextStakeModifier")
	}

	if genTime/modifierInterval >= tip.Timestamp()/modifierInterval {
		log.Tracef("ComputeNextStakeModifier: same interval, keeping modifier %d", modifier)
		return modifier, false, nil
	}

	selectionInterval := SelectionInterval(modifierInterval)
	selectionIntervalStart := (tip.Timestamp()/modifierInterval)*modifierInterval - selectionInterval

	var candidates []candidate
	cur := prev
	for cur != nil && cur.Timestamp() >= selectionIntervalStart {
		candidates = append(candidates, candidate{node: cur, time: cur.Timestamp(), hash: cur.Hash()})
		cur = parentOf(cur)
	}
	sort.Sort(candidateSorter(candidates))

	selected := make(map[chainhash.Hash]bool, modifierSelectionRounds)
	var newModifier uint64
	stop := selectionIntervalStart
	rounds := modifierSelectionRounds
	if len(candidates) < rounds {
		rounds = len(candidates)
	}
	for round := 0; round < rounds; round++ {
		stop += SelectionIntervalSection(modifierInterval, round)
		picked, err := selectBlockFromCandidates(candidates, selected, stop, modifier)
		if err != nil {
			return 0, false, errors.Wrapf(err, "stake: ComputeNextStakeModifier round %d", round)
		}
		newModifier |= uint64(picked.EntropyBit()) << uint(round)
		selected[picked.Hash()] = true
	}

	return newModifier, true, nil
}

// ModifierChecksum computes the stake-modifier checksum chain link for a
// block: the high 32 bits of
// H(prevChecksum || nFlags || (isPoS ? hashProofOfStake : 0) || nStakeModifier).
// This is the authoritative signature per SPEC_FULL.md's supplemented
// feature #3, confirmed against the reference kernel.cpp.
func ModifierChecksum(prevChecksum uint32, isPoS bool, hashProofOfStake chainhash.Hash, modifier uint64, flags uint32) uint32 {
	buf := make([]byte, 0, 4+4+chainhash.HashSize+8)

	var scratch4 [4]byte
	binary.LittleEndian.PutUint32(scratch4[:], prevChecksum)
	buf = append(buf, scratch4[:]...)

	binary.LittleEndian.PutUint32(scratch4[:], flags)
	buf = append(buf, scratch4[:]...)

	if isPoS {
		buf = append(buf, hashProofOfStake[:]...)
	} else {
		buf = append(buf, make([]byte, chainhash.HashSize)...)
	}

	var scratch8 [8]byte
	binary.LittleEndian.PutUint64(scratch8[:], modifier)
	buf = append(buf, scratch8[:]...)

	h := doubleSHA256(buf)
	full := hashToBig(h)
	return uint32(new(big.Int).Rsh(full, 256-32).Uint64())
}

// CheckStakeModifierCheckpoints reports whether checksum matches the hard
// checkpoint recorded for height, if any. A missing height always passes.
func CheckStakeModifierCheckpoints(checkpoints map[int32]uint32, height int32, checksum uint32) bool {
	want, ok := checkpoints[height]
	if !ok {
		return true
	}
	return want == checksum
}
