package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"github.com/wavefan/wavefan/internal/ui"
)

const (
	BucketStallThresholds = "stallThresholds"
)

// Persistence stores per-channel data that must survive restarts, most
// importantly stall duty thresholds learned while running.
type Persistence interface {
	Init() error

	LoadStallThreshold(channelId string) (float64, error)
	SaveStallThreshold(channelId string, duty float64) error
	DeleteStallThreshold(channelId string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	return &persistence{
		dbPath: dbPath,
	}
}

func (p persistence) Init() (err error) {
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (p persistence) SaveStallThreshold(channelId string, duty float64) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(duty)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(BucketStallThresholds))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(channelId), data)
	})
}

func (p persistence) LoadStallThreshold(channelId string) (duty float64, err error) {
	db, err := p.openPersistence()
	if err != nil {
		return 0, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketStallThresholds))
		if bucket == nil {
			return fmt.Errorf("no stall threshold data for channel: %s", channelId)
		}
		data := bucket.Get([]byte(channelId))
		if data == nil {
			return fmt.Errorf("no stall threshold data for channel: %s", channelId)
		}
		return json.Unmarshal(data, &duty)
	})

	return duty, err
}

func (p persistence) DeleteStallThreshold(channelId string) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketStallThresholds))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(channelId))
	})
}
