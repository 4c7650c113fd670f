package catalog

import (
	"fmt"
	"hash/maphash"
	"slices"
	"sync"

	"github.com/samber/lo"
)

const shardCount = 16

type shard struct {
	mu      sync.RWMutex
	records map[string]Message
}

// Store is the in-memory message table. Records are kept by value and spread
// over lock shards by code, so writes to one code never block readers of a
// code living in another shard.
type Store struct {
	hashSeed maphash.Seed
	shards   [shardCount]*shard
}

// NewStore builds a store populated with seed. Seeding happens here, before the
// store can be shared; a later entry with the same code replaces an earlier one.
func NewStore(seed []Message) (*Store, error) {
	s := &Store{hashSeed: maphash.MakeSeed()}
	for i := range s.shards {
		s.shards[i] = &shard{records: map[string]Message{}}
	}
	for i, m := range seed {
		if m.Code == "" {
			return nil, fmt.Errorf("%w: seed entry %d has empty code", ErrInvalidArgument, i)
		}
		s.shardFor(m.Code).records[m.Code] = m
	}
	return s, nil
}

// NewSeededStore builds a store holding the embedded default seed set.
func NewSeededStore() (*Store, error) {
	return NewStore(DefaultSeed())
}

func (s *Store) shardFor(code string) *shard {
	return s.shards[maphash.String(s.hashSeed, code)%shardCount]
}

// Get returns the record for code; ok is false when the code is absent.
func (s *Store) Get(code string) (Message, bool) {
	sh := s.shardFor(code)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	m, ok := sh.records[code]
	return m, ok
}

// GetAll returns a point-in-time copy of the whole table.
func (s *Store) GetAll() map[string]Message {
	s.rlockAll()
	defer s.runlockAll()
	return lo.Assign(lo.Map(s.shards[:], func(sh *shard, _ int) map[string]Message {
		return sh.records
	})...)
}

// Upsert inserts msg or fully replaces the record stored under msg.Code.
func (s *Store) Upsert(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidArgument)
	}
	if msg.Code == "" {
		return fmt.Errorf("%w: message code is empty", ErrInvalidArgument)
	}
	m := *msg
	sh := s.shardFor(m.Code)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.records[m.Code] = m
	return nil
}

// Remove deletes code and returns the record it held, if any.
func (s *Store) Remove(code string) (Message, bool) {
	sh := s.shardFor(code)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	m, ok := sh.records[code]
	if ok {
		delete(sh.records, code)
	}
	return m, ok
}

func (s *Store) Len() int {
	s.rlockAll()
	defer s.runlockAll()
	return lo.SumBy(s.shards[:], func(sh *shard) int { return len(sh.records) })
}

// Codes returns the present codes in ascending order.
func (s *Store) Codes() []string {
	codes := lo.Keys(s.GetAll())
	slices.Sort(codes)
	return codes
}

// rlockAll takes every shard's read lock in index order. Writers only ever
// hold a single shard lock, so the fixed order cannot deadlock.
func (s *Store) rlockAll() {
	for _, sh := range s.shards {
		sh.mu.RLock()
	}
}

func (s *Store) runlockAll() {
	for _, sh := range s.shards {
		sh.mu.RUnlock()
	}
}
