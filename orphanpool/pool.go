// Package orphanpool implements the bounded in-memory cache of blocks whose
// parent is not yet known (component G): lookup by hash and by parent,
// randomized single-victim pruning once the pool is at capacity.
package orphanpool

import (
	"bytes"
	"math/rand"
	"sort"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/ppcstake/ppcstaked/primitives"
)

// DefaultCapacity is the default bound on the number of orphans kept: once
// reached, every further insert evicts one existing orphan first.
const DefaultCapacity = 64

// Block pairs an orphan block with the id of the peer that supplied it, if
// known, matching the source OrphanBlock record.
type Block struct {
	Block        *primitives.Block
	Hash         chainhash.Hash
	PrevHash     chainhash.Hash
	SenderNodeID *uint64
}

// Pool is a mutex-guarded map of orphan blocks keyed by hash, with a
// secondary index keyed by each orphan's parent hash. All exported
// operations hold the pool's single mutex; AcquireLock lets a caller batch
// several of the *_unsafe operations under one critical section.
type Pool struct {
	mu sync.Mutex

	capacity int
	rng      *rand.Rand

	byHash     map[chainhash.Hash]*Block
	byPrevHash map[chainhash.Hash][]*Block
}

// New returns an empty pool with the given capacity and source of
// randomness. Per SPEC_FULL.md/the reference design note, tests should
// inject a deterministic *rand.Rand rather than rely on the global source.
func New(capacity int, rng *rand.Rand) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Pool{
		capacity:   capacity,
		rng:        rng,
		byHash:     make(map[chainhash.Hash]*Block),
		byPrevHash: make(map[chainhash.Hash][]*Block),
	}
}

// AcquireLock locks the pool and returns an unlocker that must be called
// exactly once (typically via defer) to release it. Use this to batch
// several *_unsafe calls atomically; every exported method here already
// takes the lock itself and must not be called while holding it.
func (p *Pool) AcquireLock() func() {
	p.mu.Lock()
	return p.mu.Unlock
}

// AddBlock inserts blk into the pool, pruning one existing orphan first if
// the pool is already at capacity. Returns false if blk's hash is already
// present (idempotent per hash); the pool is left unchanged in that case.
func (p *Pool) AddBlock(blk *primitives.Block, hash, prevHash chainhash.Hash, sender *uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addBlockUnsafe(blk, hash, prevHash, sender)
}

func (p *Pool) addBlockUnsafe(blk *primitives.Block, hash, prevHash chainhash.Hash, sender *uint64) bool {
	if _, exists := p.byHash[hash]; exists {
		return false
	}

	if len(p.byHash) >= p.capacity {
		p.pruneUnsafe()
	}

	o := &Block{Block: blk, Hash: hash, PrevHash: prevHash, SenderNodeID: sender}
	p.byHash[hash] = o
	p.byPrevHash[prevHash] = append(p.byPrevHash[prevHash], o)
	return true
}

// Prune evicts exactly one orphan: a uniformly random entry is chosen from
// byHash, then the pool descends through byPrevHash to that entry's
// deepest descendant still in the pool and drops it. AddBlock calls this
// only once the pool is already at capacity, which bounds growth rather
// than enforcing the eviction on every insert (spec §8 invariant 8).
func (p *Pool) Prune() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneUnsafe()
}

func (p *Pool) pruneUnsafe() {
	if len(p.byHash) == 0 {
		return
	}

	// Index into the hashes in sorted order so that a seeded rng picks the
	// same root every time; Go's map iteration order is randomized.
	hashes := make([]chainhash.Hash, 0, len(p.byHash))
	for h := range p.byHash {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return bytes.Compare(hashes[i][:], hashes[j][:]) < 0 })
	root := p.byHash[hashes[p.rng.Intn(len(hashes))]]

	victim := root
	for {
		children := p.byPrevHash[victim.Hash]
		if len(children) == 0 {
			break
		}
		victim = children[0]
	}

	log.Debugf("orphanpool: pruning %s (root %s)", victim.Hash, root.Hash)
	p.dropBlockUnsafe(victim.Hash)
}

// GetBlockRoot follows PrevHash pointers within the pool while they resolve
// to another orphan, returning the hash of the topmost ancestor still
// present. If hash itself isn't in the pool, it is returned unchanged.
func (p *Pool) GetBlockRoot(hash chainhash.Hash) chainhash.Hash {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := hash
	for {
		o, ok := p.byHash[cur]
		if !ok {
			return cur
		}
		parent, ok := p.byHash[o.PrevHash]
		if !ok {
			return cur
		}
		cur = parent.Hash
	}
}

// TakeAllChildrenOf returns and removes every orphan whose parent is
// exactly parentHash — one level only, not a recursive subtree drain.
// Idempotent: a second call with nothing left returns an empty slice.
func (p *Pool) TakeAllChildrenOf(parentHash chainhash.Hash) []*Block {
	p.mu.Lock()
	defer p.mu.Unlock()

	children := p.byPrevHash[parentHash]
	if len(children) == 0 {
		return nil
	}

	out := make([]*Block, len(children))
	copy(out, children)
	for _, c := range out {
		delete(p.byHash, c.Hash)
	}
	delete(p.byPrevHash, parentHash)
	return out
}

// DropBlock removes hash from byHash and from its parent's byPrevHash
// bucket, deleting the bucket if it becomes empty. Panics if hash is
// present in byHash but the matching byPrevHash bucket entry is missing —
// that would mean the two indexes have already desynced.
func (p *Pool) DropBlock(hash chainhash.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dropBlockUnsafe(hash)
}

func (p *Pool) dropBlockUnsafe(hash chainhash.Hash) {
	o, ok := p.byHash[hash]
	if !ok {
		return
	}
	delete(p.byHash, hash)

	bucket := p.byPrevHash[o.PrevHash]
	found := false
	for i, c := range bucket {
		if c.Hash == hash {
			bucket = append(bucket[:i], bucket[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		panic("orphanpool: byHash/byPrevHash desync on drop")
	}
	if len(bucket) == 0 {
		delete(p.byPrevHash, o.PrevHash)
	} else {
		p.byPrevHash[o.PrevHash] = bucket
	}
}

// Len reports the current number of orphans held.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byHash)
}

// Has reports whether hash is currently held.
func (p *Pool) Has(hash chainhash.Hash) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byHash[hash]
	return ok
}
