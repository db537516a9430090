package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/hakim/reconscan/internal/models"
)

// ErrNotFound is returned when no run exists under the requested ID.
var ErrNotFound = errors.New("run not found")

// SaveRun persists a run record and indexes it under its target
func (s *Store) SaveRun(rec *models.ScanRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bucketRuns)).Put([]byte(rec.ID), data); err != nil {
			return err
		}

		// target -> []run_id
		index := tx.Bucket([]byte(bucketRunIndex))
		key := []byte(rec.Target)

		var ids []string
		if existing := index.Get(key); existing != nil {
			if err := json.Unmarshal(existing, &ids); err != nil {
				return err
			}
		}
		if slices.Contains(ids, rec.ID) {
			return nil
		}
		ids = append(ids, rec.ID)

		indexData, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		return index.Put(key, indexData)
	})
}

// GetRun retrieves a run record by ID
func (s *Store) GetRun(id string) (*models.ScanRecord, error) {
	var rec *models.ScanRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketRuns)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		rec = &models.ScanRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRuns returns the runs recorded for target, newest first. A positive
// limit caps the number returned.
func (s *Store) ListRuns(target string, limit int) ([]*models.ScanRecord, error) {
	var runs []*models.ScanRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketRunIndex)).Get([]byte(target))
		if data == nil {
			return nil
		}

		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}

		bucket := tx.Bucket([]byte(bucketRuns))
		for _, id := range ids {
			raw := bucket.Get([]byte(id))
			if raw == nil {
				continue
			}
			var rec models.ScanRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return err
			}
			runs = append(runs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Targets lists every target with at least one recorded run, in key order.
func (s *Store) Targets() ([]string, error) {
	var targets []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketRunIndex)).ForEach(func(k, _ []byte) error {
			targets = append(targets, string(k))
			return nil
		})
	})
	return targets, err
}

// UpdateRunStatus changes the status of a run and stamps CompletedAt on the
// first transition into a terminal state.
func (s *Store) UpdateRunStatus(id string, status models.RunStatus) error {
	return s.update(id, func(rec *models.ScanRecord) {
		rec.Status = status
		if status.Terminal() && rec.CompletedAt == nil {
			now := time.Now()
			rec.CompletedAt = &now
		}
	})
}

// FinishRun records the outcome of a completed scan and what it found.
func (s *Store) FinishRun(id, outcome string, found []string, scanTime time.Duration) error {
	return s.update(id, func(rec *models.ScanRecord) {
		rec.Status = models.StatusComplete
		rec.Outcome = outcome
		rec.Found = found
		rec.Findings = len(found)
		rec.ScanTime = scanTime
		if rec.CompletedAt == nil {
			now := time.Now()
			rec.CompletedAt = &now
		}
	})
}

// FailRun marks a run failed with the error that stopped it.
func (s *Store) FailRun(id string, cause error) error {
	return s.update(id, func(rec *models.ScanRecord) {
		rec.Status = models.StatusFailed
		if cause != nil {
			rec.Error = cause.Error()
		}
		if rec.CompletedAt == nil {
			now := time.Now()
			rec.CompletedAt = &now
		}
	})
}

func (s *Store) update(id string, mutate func(*models.ScanRecord)) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketRuns))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}

		var rec models.ScanRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		mutate(&rec)

		updated, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), updated)
	})
}
