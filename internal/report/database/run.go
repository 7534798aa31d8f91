package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/go-sod/avl/internal/database"
	"github.com/go-sod/avl/internal/report/model"
)

const (
	kindKeys = "run:kinds:"
	prefix   = "run:"
)

var ErrNotFound = errors.New("run not found")

type FilterFn func(run model.Run) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) extractKind(key string) model.Kind {
	prefixPos := strings.Index(key, prefix)

	return model.Kind(key[prefixPos+len(prefix):])
}

// Kinds returns every run kind that has been stored at least once.
func (db *DB) Kinds() ([]model.Kind, error) {
	var kinds []model.Kind
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(kindKeys))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			kinds = append(kinds, db.extractKind(string(k)))
		}
		return nil
	})

	return kinds, err
}

func (db *DB) Store(_ context.Context, run model.Run) error {
	bytes, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(prefix + string(run.Kind)))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put([]byte(run.ID.String()), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		b, err = tx.CreateBucketIfNotExists([]byte(kindKeys))
		if err != nil {
			return fmt.Errorf("unable create kinds bucket: %w", err)
		}
		if err := b.Put([]byte(prefix+string(run.Kind)), []byte{0x0}); err != nil {
			return fmt.Errorf("unable put to kinds bucket: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

// FindAll returns the stored runs accepted by filter, newest first.
func (db *DB) FindAll(_ context.Context, filter FilterFn) ([]model.Run, error) {
	var runs []model.Run
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		kinds := tx.Bucket([]byte(kindKeys))
		if kinds == nil {
			return nil
		}
		return kinds.ForEach(func(key, _ []byte) error {
			b := tx.Bucket(key)
			if b == nil {
				return nil
			}
			return b.ForEach(func(_, v []byte) error {
				var run model.Run
				if err := json.Unmarshal(v, &run); err != nil {
					return fmt.Errorf("run unmarshal error, %q", err)
				}
				if filter == nil || filter(run) {
					runs = append(runs, run)
				}
				return nil
			})
		})
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs, nil
}

func (db *DB) FindByID(_ context.Context, id uuid.UUID) (model.Run, error) {
	var (
		run   model.Run
		found bool
	)
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		kinds := tx.Bucket([]byte(kindKeys))
		if kinds == nil {
			return nil
		}
		return kinds.ForEach(func(key, _ []byte) error {
			if found {
				return nil
			}
			b := tx.Bucket(key)
			if b == nil {
				return nil
			}
			v := b.Get([]byte(id.String()))
			if v == nil {
				return nil
			}
			found = true
			return json.Unmarshal(v, &run)
		})
	}); err != nil {
		return model.Run{}, fmt.Errorf("view transaction error: %w", err)
	}
	if !found {
		return model.Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return run, nil
}

func (db *DB) Delete(_ context.Context, run model.Run) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + string(run.Kind)))
		if b == nil {
			return nil
		}

		return b.Delete([]byte(run.ID.String()))
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) CountByKind(kind model.Kind) (int, error) {
	var length int
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + string(kind)))
		if b == nil {
			return nil
		}
		length = b.Stats().KeyN
		return nil
	}); err != nil {
		return 0, fmt.Errorf("view transaction error: %w", err)
	}

	return length, nil
}
