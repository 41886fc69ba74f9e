package repo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gorm.io/gorm"
)

// Collection names one of the record collections. The declaration order is
// the lock order used by MutateMany.
type Collection int

const (
	Users Collection = iota
	Photos
	Likes
	Comments
	Tags
)

var collectionTables = map[Collection]string{
	Users:    "users",
	Photos:   "photos",
	Likes:    "likes",
	Comments: "comments",
	Tags:     "tags",
}

func (c Collection) String() string { return collectionTables[c] }

// Store serializes writers per collection. Every read-check-write against a
// collection goes through Mutate so two writers can never interleave on the
// same collection; readers use DB() directly and are not blocked by locks.
type Store struct {
	db    *gorm.DB
	locks map[Collection]*sync.Mutex
}

func NewStore(db *gorm.DB) *Store {
	locks := make(map[Collection]*sync.Mutex, len(collectionTables))
	for c := range collectionTables {
		locks[c] = &sync.Mutex{}
	}
	return &Store{db: db, locks: locks}
}

func (s *Store) DB() *gorm.DB { return s.db }

// Mutate runs fn in a transaction while holding the writer lock of c.
// fn must only use tx; the sqlite pool has a single connection.
func (s *Store) Mutate(ctx context.Context, c Collection, fn func(tx *gorm.DB) error) error {
	return s.MutateMany(ctx, []Collection{c}, fn)
}

// MutateMany takes the writer locks of every collection in cs in declaration
// order and runs fn in a single transaction.
func (s *Store) MutateMany(ctx context.Context, cs []Collection, fn func(tx *gorm.DB) error) error {
	ordered := append([]Collection(nil), cs...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	var prev Collection = -1
	for _, c := range ordered {
		if c == prev {
			continue
		}
		prev = c
		mu, ok := s.locks[c]
		if !ok {
			return errors.New("repo: unknown collection")
		}
		mu.Lock()
		defer mu.Unlock()
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// Count returns the number of rows in c matching the optional condition.
func (s *Store) Count(ctx context.Context, c Collection, query any, args ...any) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Table(c.String())
	if query != nil {
		q = q.Where(query, args...)
	}
	return n, q.Count(&n).Error
}
