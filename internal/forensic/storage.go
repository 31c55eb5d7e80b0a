package forensic

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppendOnlyStorage is the durable, tamper-evident audit store. One NDJSON
// record per line; writes are append-only and no update or delete path
// exists. Queries are served from the in-memory index rebuilt at startup by
// replaying the file.
//
// The storage holds no internal synchronization: one writer at a time is the
// contract, and callers needing concurrency must serialize access themselves
// (see Worker). Unsynchronized concurrent stores would also reorder the hash
// chain and break its verifiability.
type AppendOnlyStorage struct {
	path      string
	file      *os.File
	maxBytes  int64
	rotations int
	lastHash  string
	logger    *slog.Logger

	byIDOffset map[uuid.UUID]int64
	recordPos  map[uuid.UUID]int
	byStatute  map[string][]uuid.UUID
	bySubject  map[uuid.UUID][]uuid.UUID
	records    []AuditRecord
}

// StorageOption configures an AppendOnlyStorage.
type StorageOption func(*AppendOnlyStorage)

// WithMaxFileSize enables rotation once the active segment reaches the given
// size in bytes. Zero disables rotation.
func WithMaxFileSize(bytes int64) StorageOption {
	return func(s *AppendOnlyStorage) {
		s.maxBytes = bytes
	}
}

// WithLogger sets a logger for operational events (rotation, replay).
func WithLogger(logger *slog.Logger) StorageOption {
	return func(s *AppendOnlyStorage) {
		s.logger = logger
	}
}

// Open opens or creates the log file at path and rebuilds the in-memory
// index by replaying every line. A malformed line aborts the rebuild with
// ErrCorruptLog; recovering a truncated forensic log is a manual operation,
// never a silent skip.
func Open(path string, opts ...StorageOption) (*AppendOnlyStorage, error) {
	s := &AppendOnlyStorage{
		path:       path,
		logger:     slog.Default(),
		byIDOffset: make(map[uuid.UUID]int64),
		recordPos:  make(map[uuid.UUID]int),
		byStatute:  make(map[string][]uuid.UUID),
		bySubject:  make(map[uuid.UUID][]uuid.UUID),
	}
	for _, opt := range opts {
		opt(s)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	s.file = file

	if err := s.replay(); err != nil {
		_ = file.Close()
		return nil, err
	}
	s.rotations = highestRotation(path)

	return s, nil
}

// replay scans the file line by line, rebuilding the index and tracking the
// last record's hash for chain continuity.
func (s *AppendOnlyStorage) replay() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek audit log: %w", err)
	}

	var offset int64
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		var record AuditRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrCorruptLog, line, err)
		}
		s.indexRecord(record, offset)
		s.lastHash = record.RecordHash
		offset += int64(len(raw)) + 1
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}

	if line > 0 {
		s.logger.Info("audit log replayed", "path", s.path, "records", line)
	}
	return nil
}

func (s *AppendOnlyStorage) indexRecord(record AuditRecord, offset int64) {
	s.byIDOffset[record.ID] = offset
	s.recordPos[record.ID] = len(s.records)
	s.byStatute[record.StatuteID] = append(s.byStatute[record.StatuteID], record.ID)
	s.bySubject[record.SubjectID] = append(s.bySubject[record.SubjectID], record.ID)
	s.records = append(s.records, record)
}

// Store chains, serializes, and appends one record, then updates the index.
// The disk write and index update are not transactional; a crash in between
// is recovered by the rebuild-on-open path.
func (s *AppendOnlyStorage) Store(ctx context.Context, record *AuditRecord) error {
	if record == nil {
		return fmt.Errorf("audit record is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.maxBytes > 0 {
		if err := s.maybeRotate(); err != nil {
			return err
		}
	}

	prev := s.lastHash
	if prev != "" {
		p := prev
		record.PreviousHash = &p
	}
	record.RecordHash = computeHash(record, prev)

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	offset, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek audit log: %w", err)
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync audit log: %w", err)
	}

	s.indexRecord(*record, offset)
	s.lastHash = record.RecordHash
	return nil
}

// maybeRotate rotates the active segment once it reaches the size threshold.
// Rotation starts a new physical file but leaves the in-memory index (and
// the hash chain) intact: old records stay queryable in-process, and a
// from-scratch rebuild sees only the current segment unless the caller
// tracks rotated segments separately.
func (s *AppendOnlyStorage) maybeRotate() error {
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("stat audit log: %w", err)
	}
	if info.Size() < s.maxBytes {
		return nil
	}

	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync audit log before rotation: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close audit log before rotation: %w", err)
	}

	s.rotations++
	rotated := fmt.Sprintf("%s.aol.%d", s.path, s.rotations)
	if err := os.Rename(s.path, rotated); err != nil {
		return fmt.Errorf("rotate audit log: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open fresh audit log: %w", err)
	}
	s.file = file

	s.logger.Info("audit log rotated", "path", s.path, "segment", rotated)
	return nil
}

// Get returns a copy of the record with the given ID, or ErrRecordNotFound.
func (s *AppendOnlyStorage) Get(id uuid.UUID) (*AuditRecord, error) {
	pos, ok := s.recordPos[id]
	if !ok {
		return nil, notFound(id)
	}
	record := s.records[pos]
	return &record, nil
}

// GetByStatute returns all records for a statute in append order.
func (s *AppendOnlyStorage) GetByStatute(statuteID string) []*AuditRecord {
	return s.collect(s.byStatute[statuteID])
}

// GetBySubject returns all records for a subject in append order.
func (s *AppendOnlyStorage) GetBySubject(subjectID uuid.UUID) []*AuditRecord {
	return s.collect(s.bySubject[subjectID])
}

// GetByTimeRange returns records with start <= timestamp <= end, in append
// order.
func (s *AppendOnlyStorage) GetByTimeRange(start, end time.Time) []*AuditRecord {
	var out []*AuditRecord
	for i := range s.records {
		ts := s.records[i].Timestamp
		if !ts.Before(start) && !ts.After(end) {
			record := s.records[i]
			out = append(out, &record)
		}
	}
	return out
}

// Count reports the number of records held in the in-memory index.
func (s *AppendOnlyStorage) Count() int {
	return len(s.records)
}

// VerifyChain recomputes every record's hash against its predecessor and
// reports the first break. The first record's own previous-hash field seeds
// the walk so a log opened after rotation still verifies.
func (s *AppendOnlyStorage) VerifyChain() error {
	prev := ""
	for i := range s.records {
		record := s.records[i]
		if i == 0 && record.PreviousHash != nil {
			prev = *record.PreviousHash
		}
		if !verifyRecord(&record, prev) {
			return fmt.Errorf("%w: record %s at position %d", ErrChainBroken, record.ID, i)
		}
		prev = record.RecordHash
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *AppendOnlyStorage) Close() error {
	if err := s.file.Sync(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("sync audit log: %w", err)
	}
	return s.file.Close()
}

func (s *AppendOnlyStorage) collect(ids []uuid.UUID) []*AuditRecord {
	out := make([]*AuditRecord, 0, len(ids))
	for _, id := range ids {
		if pos, ok := s.recordPos[id]; ok {
			record := s.records[pos]
			out = append(out, &record)
		}
	}
	return out
}

// highestRotation scans for existing rotated segments so a reopened storage
// does not overwrite them.
func highestRotation(path string) int {
	matches, err := filepath.Glob(path + ".aol.*")
	if err != nil {
		return 0
	}
	highest := 0
	for _, m := range matches {
		n, err := strconv.Atoi(strings.TrimPrefix(m, path+".aol."))
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest
}
