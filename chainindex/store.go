package chainindex

import (
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	badger "github.com/dgraph-io/badger"
	"github.com/pkg/errors"
)

// Store persists the staking fields of dirty BlockIndexEntry records to a
// badger key/value database, the same embedded-KV role badger plays in the
// reference mmr package. Block bodies and the rest of the in-memory arena
// stay unpersisted: this is only the flush target for spec §5's "dirty-index
// entries pending flush" state, not a general block store.
type Store struct {
	db *badger.DB
}

// OpenStore opens (creating if needed) a badger database rooted at path.
func OpenStore(path string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(path))
	if err != nil {
		return nil, errors.Wrap(err, "chainindex: open store")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying badger handles.
func (s *Store) Close() error {
	return s.db.Close()
}

// stakingRecord is the JSON shape written per dirty hash; it mirrors
// StakingFields directly so Flush/Load round-trip without drift.
type stakingRecord struct {
	EntropyBit             uint32
	IsProofOfStake         bool
	StakeModifier          uint64
	GeneratedStakeModifier bool
	StakeModifierChecksum  uint32
	HashProofOfStake       chainhash.Hash
	PrevoutStake           wire.OutPoint
	StakeTime              uint32
}

// Flush writes the staking fields of every entry idx.TakeDirty reports to
// the store, one badger transaction per call.
func (s *Store) Flush(idx *Index) error {
	dirty := idx.TakeDirty()
	if len(dirty) == 0 {
		return nil
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for _, hash := range dirty {
			e, ok := idx.Lookup(hash)
			if !ok {
				continue
			}
			rec := stakingRecord{
				EntropyBit:             e.EntropyBit(),
				IsProofOfStake:         e.IsProofOfStake(),
				StakeModifier:          e.StakeModifier(),
				GeneratedStakeModifier: e.HasGeneratedStakeModifier(),
				StakeModifierChecksum:  e.StakeModifierChecksum(),
				HashProofOfStake:       e.HashProofOfStake(),
				PrevoutStake:           e.PrevoutStake(),
				StakeTime:              e.StakeTime(),
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return errors.Wrapf(err, "chainindex: marshal %s", hash)
			}
			if err := txn.Set(hash[:], data); err != nil {
				return errors.Wrapf(err, "chainindex: set %s", hash)
			}
		}
		return nil
	})
}

// Load reads back the persisted staking fields for hash, if any were ever
// flushed.
func (s *Store) Load(hash chainhash.Hash) (StakingFields, bool, error) {
	var fields StakingFields
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(hash[:])
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var rec stakingRecord
			if err := json.Unmarshal(val, &rec); err != nil {
				return err
			}
			fields = StakingFields{
				EntropyBit:             rec.EntropyBit,
				IsProofOfStake:         rec.IsProofOfStake,
				StakeModifier:          rec.StakeModifier,
				GeneratedStakeModifier: rec.GeneratedStakeModifier,
				StakeModifierChecksum:  rec.StakeModifierChecksum,
				HashProofOfStake:       rec.HashProofOfStake,
				PrevoutStake:           rec.PrevoutStake,
				StakeTime:              rec.StakeTime,
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return StakingFields{}, false, errors.Wrapf(err, "chainindex: load %s", hash)
	}
	return fields, found, nil
}
