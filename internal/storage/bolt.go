package storage

import (
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bolt is the durable persistence tier, backed by a single bbolt bucket.
// It survives process restarts and is used for the durable session token
// and every cache entry.
type Bolt struct {
	db       *bolt.DB
	bucket   []byte
	maxBytes int64

	mu   sync.Mutex
	size int64 // approximate sum of key+value bytes
}

type BoltOptions struct {
	// Bucket is the name of the bolt bucket to use.
	Bucket string
	// MaxBytes caps the approximate total size of keys plus values.
	// Zero means unbounded.
	MaxBytes int64
}

// OpenBolt initializes or opens the durable tier at the given path.
func OpenBolt(path string, opts BoltOptions) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	bucket := []byte("corkboard")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	s := &Bolt{db: db, bucket: bucket, maxBytes: opts.MaxBytes}
	if err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		// Seed the running size from whatever a previous run left behind.
		return b.ForEach(func(k, v []byte) error {
			s.size += int64(len(k) + len(v))
			return nil
		})
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Bolt) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Bolt) Get(key string) ([]byte, error) {
	var out []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *Bolt) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		k := []byte(key)
		prev := int64(0)
		if old := b.Get(k); old != nil {
			prev = int64(len(k) + len(old))
		}
		next := int64(len(k) + len(value))
		if s.maxBytes > 0 && s.size-prev+next > s.maxBytes {
			return ErrQuotaExceeded
		}
		if err := b.Put(k, value); err != nil {
			return err
		}
		s.size += next - prev
		return nil
	})
}

func (s *Bolt) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		k := []byte(key)
		if old := b.Get(k); old != nil {
			s.size -= int64(len(k) + len(old))
		}
		return b.Delete(k)
	})
}

func (s *Bolt) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

func (s *Bolt) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil {
			return err
		}
		if _, err := tx.CreateBucket(s.bucket); err != nil {
			return err
		}
		s.size = 0
		return nil
	})
}
