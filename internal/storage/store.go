// Package storage implements the locked JSON file store backing every
// repository. Each document is a single JSON file; an advisory lock on a
// sibling .lock file serializes access across processes.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/metrics"
)

// ErrLockTimeout is returned when the advisory lock could not be acquired
// within the configured number of attempts.
var ErrLockTimeout = errors.New("storage: lock acquisition timed out")

// Options tunes lock acquisition behavior
type Options struct {
	// Retries is the number of re-attempts after the initial try
	Retries int
	// MinBackoff is the delay before the first retry; it doubles per
	// attempt up to MaxBackoff
	MinBackoff time.Duration
	MaxBackoff time.Duration
	// StaleThreshold marks a lock file untouched for this long as debris.
	// flock은 보유 프로세스가 죽으면 커널이 풀어 주므로, 잠금이 잡히지
	// 않는 오래된 파일만 치운다
	StaleThreshold time.Duration
}

// DefaultOptions mirrors the retry profile the store has always used
func DefaultOptions() Options {
	return Options{
		Retries:        10,
		MinBackoff:     100 * time.Millisecond,
		MaxBackoff:     time.Second,
		StaleThreshold: 10 * time.Second,
	}
}

// Store provides locked read and write access to whole JSON documents.
//
// Read and Write each take and release the lock independently: a caller
// performing read-modify-write holds no lock between the two, so concurrent
// cycles race and the last writer wins. That is the store's documented
// contract, not a defect; callers accept it.
type Store struct {
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a Store. metrics may be nil.
func New(opts Options, logger *zap.Logger, m *metrics.Metrics) *Store {
	if opts.Retries <= 0 {
		opts.Retries = DefaultOptions().Retries
	}
	if opts.MinBackoff <= 0 {
		opts.MinBackoff = DefaultOptions().MinBackoff
	}
	if opts.MaxBackoff < opts.MinBackoff {
		opts.MaxBackoff = DefaultOptions().MaxBackoff
	}
	if opts.StaleThreshold <= 0 {
		opts.StaleThreshold = DefaultOptions().StaleThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{opts: opts, logger: logger, metrics: m}
}

// Read acquires the lock on path, decodes the whole document into v and
// releases the lock. A missing or unparsable file leaves v untouched so the
// caller's empty-shape default stands; neither is an error.
func (s *Store) Read(ctx context.Context, path string, v interface{}) error {
	start := time.Now()
	release, err := s.acquire(ctx, path)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordStoreError(filepath.Base(path), "read")
		}
		return err
	}
	defer release()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if s.metrics != nil {
			s.metrics.RecordStoreError(filepath.Base(path), "read")
		}
		return fmt.Errorf("storage: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt document must not take the API down; serve the
		// empty shape and let the next write repair the file.
		s.logger.Warn("Malformed JSON document, treating as empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}
	if s.metrics != nil {
		s.metrics.RecordStoreRead(filepath.Base(path), time.Since(start))
	}
	return nil
}

// Write acquires the lock on path, serializes the whole document and
// replaces the file. The document is written to a temp file in the same
// directory and renamed over the target so readers never observe a partial
// write.
func (s *Store) Write(ctx context.Context, path string, v interface{}) error {
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir for %s: %w", path, err)
	}

	release, err := s.acquire(ctx, path)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordStoreError(filepath.Base(path), "write")
		}
		return err
	}
	defer release()

	// 4-space indent, matching the documents already on disk
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		if s.metrics != nil {
			s.metrics.RecordStoreError(filepath.Base(path), "write")
		}
		return fmt.Errorf("storage: rename %s: %w", path, err)
	}
	if s.metrics != nil {
		s.metrics.RecordStoreWrite(filepath.Base(path), time.Since(start))
	}
	return nil
}

// acquire takes the advisory lock for path, retrying with doubling backoff
// and reclaiming stale lock files along the way.
func (s *Store) acquire(ctx context.Context, path string) (func(), error) {
	lockPath := path + ".lock"
	fl := flock.New(lockPath)
	start := time.Now()
	backoff := s.opts.MinBackoff

	for attempt := 0; ; attempt++ {
		locked, err := fl.TryLock()
		if err != nil {
			return nil, fmt.Errorf("storage: lock %s: %w", lockPath, err)
		}
		if locked {
			// mtime은 마지막 획득 시각이 된다; 만료 판정은 이 값을 본다
			now := time.Now()
			_ = os.Chtimes(lockPath, now, now)
			if s.metrics != nil {
				s.metrics.RecordLockWait(time.Since(start))
			}
			return func() {
				if err := fl.Unlock(); err != nil {
					s.logger.Warn("Failed to release store lock",
						zap.String("path", lockPath),
						zap.Error(err),
					)
				}
			}, nil
		}

		if attempt >= s.opts.Retries {
			if s.metrics != nil {
				s.metrics.RecordLockTimeout()
			}
			s.logger.Error("Lock acquisition exhausted",
				zap.String("path", lockPath),
				zap.Int("attempts", attempt+1),
				zap.Duration("waited", time.Since(start)),
			)
			return nil, ErrLockTimeout
		}

		s.reclaimStale(lockPath)
		if s.metrics != nil {
			s.metrics.RecordLockRetry()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > s.opts.MaxBackoff {
			backoff = s.opts.MaxBackoff
		}
	}
}

// reclaimStale removes a lock file nobody holds anymore. mtime alone does
// not prove abandonment (공유 잠금 파일은 보유 중에도 갱신되지 않는다), so
// the file is probed with its own flock and removed only under that lock —
// never out from under a live holder.
func (s *Store) reclaimStale(lockPath string) {
	info, err := os.Stat(lockPath)
	if err != nil || time.Since(info.ModTime()) < s.opts.StaleThreshold {
		return
	}

	probe := flock.New(lockPath)
	locked, err := probe.TryLock()
	if err != nil || !locked {
		// 살아있는 보유자가 있다
		return
	}
	defer probe.Unlock()

	// 잠금을 쥔 채로 재확인: 방금 획득한 보유자가 mtime을 갱신했을 수 있다
	if info, err = os.Stat(lockPath); err != nil || time.Since(info.ModTime()) < s.opts.StaleThreshold {
		return
	}
	if err := os.Remove(lockPath); err == nil {
		s.logger.Warn("Reclaimed stale store lock",
			zap.String("path", lockPath),
			zap.Time("mtime", info.ModTime()),
		)
	}
}
