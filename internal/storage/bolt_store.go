package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	outcomeBucket = "outcomes"
	expiryBytes   = 8
)

var errBucketMissing = errors.New("outcome bucket missing")

// boltStore keeps one value per check id: an 8-byte big-endian unix expiry
// followed by the JSON encoded Record.
type boltStore struct {
	db              *bolt.DB
	recordTTL       time.Duration
	cleanupInterval time.Duration
	sweepMu         sync.Mutex
	lastSweep       atomic.Int64
}

func openBolt(path string, opts Options) (Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(outcomeBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	s := &boltStore{db: db, recordTTL: opts.RecordTTL, cleanupInterval: opts.CleanupInterval}
	s.lastSweep.Store(time.Now().Unix())
	return s, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// LastOutcome returns the unexpired record for checkID. Expired or corrupt
// entries are removed and reported as absent.
func (b *boltStore) LastOutcome(checkID string) (Record, bool, error) {
	if b == nil || b.db == nil {
		return Record{}, false, nil
	}
	now := time.Now()
	if err := b.sweepIfDue(now); err != nil {
		return Record{}, false, err
	}

	var (
		rec   Record
		found bool
		stale bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket, err := outcomes(tx)
		if err != nil {
			return err
		}
		value := bucket.Get([]byte(checkID))
		if value == nil {
			return nil
		}
		payload, live := decodeValue(value, now)
		if !live || json.Unmarshal(payload, &rec) != nil {
			stale = true
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return Record{}, false, err
	}
	if stale {
		return Record{}, false, b.delete(checkID)
	}
	return rec, found, nil
}

// RecordOutcome stores rec as the latest outcome for checkID.
func (b *boltStore) RecordOutcome(checkID string, rec Record) error {
	if b == nil || b.db == nil {
		return nil
	}
	now := time.Now()
	if err := b.sweepIfDue(now); err != nil {
		return err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	value := encodeValue(now.Add(b.recordTTL), payload)

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := outcomes(tx)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(checkID), value)
	})
}

func (b *boltStore) delete(checkID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := outcomes(tx)
		if err != nil {
			return err
		}
		return bucket.Delete([]byte(checkID))
	})
}

// sweepIfDue drops expired entries at most once per cleanup interval.
func (b *boltStore) sweepIfDue(now time.Time) error {
	due := func() bool {
		return now.Sub(time.Unix(b.lastSweep.Load(), 0)) >= b.cleanupInterval
	}
	if !due() {
		return nil
	}

	b.sweepMu.Lock()
	defer b.sweepMu.Unlock()
	if !due() {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := outcomes(tx)
		if err != nil {
			return err
		}
		var expired [][]byte
		err = bucket.ForEach(func(k, v []byte) error {
			if _, live := decodeValue(v, now); !live {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sweep expired outcomes: %w", err)
	}
	b.lastSweep.Store(now.Unix())
	return nil
}

func outcomes(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(outcomeBucket))
	if bucket == nil {
		return nil, errBucketMissing
	}
	return bucket, nil
}

func encodeValue(expiry time.Time, payload []byte) []byte {
	value := make([]byte, expiryBytes, expiryBytes+len(payload))
	binary.BigEndian.PutUint64(value, uint64(expiry.Unix()))
	return append(value, payload...)
}

// decodeValue returns the payload and whether the entry is still live at now.
func decodeValue(value []byte, now time.Time) ([]byte, bool) {
	if len(value) < expiryBytes {
		return nil, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryBytes]))
	if unix <= 0 || !time.Unix(unix, 0).After(now) {
		return nil, false
	}
	return value[expiryBytes:], true
}
