package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/structures"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	snapshotPrefix = "backup_"
	snapshotExt    = ".json"
	// UTC ISO8601 with ':' replaced by '-' and no sub-seconds
	snapshotTimeLayout = "2006-01-02T15-04-05"
)

type SnapshotStoreInterface interface {
	Write(snapshot *models.Snapshot) (string, error)
	// List returns snapshots newest first.
	List() ([]models.SnapshotInfo, error)
	Read(filename string) (*models.Snapshot, error)
	// EnforceRetention deletes the oldest snapshots beyond maxCount and
	// returns how many were removed.
	EnforceRetention(maxCount int) (int, error)
}

type SnapshotStore struct {
	dir    string
	logger providers.Logger
}

func NewSnapshotStore(dir string, logger providers.Logger) *SnapshotStore {
	return &SnapshotStore{dir: dir, logger: logger}
}

func SnapshotName(t time.Time) string {
	return snapshotPrefix + t.UTC().Format(snapshotTimeLayout) + snapshotExt
}

func isSnapshotName(name string) bool {
	if !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

// freeName returns the snapshot name for t, adding a -N counter before the
// extension when a file of that name already exists.
func (s *SnapshotStore) freeName(t time.Time) (string, error) {
	base := strings.TrimSuffix(SnapshotName(t), snapshotExt)
	name := base + snapshotExt
	for n := 1; ; n++ {
		_, err := os.Lstat(filepath.Join(s.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
		name = fmt.Sprintf("%s-%d%s", base, n, snapshotExt)
	}
}

func (s *SnapshotStore) Write(snapshot *models.Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", &apperr.IOError{Op: "create dir", Path: s.dir, Err: err}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", &apperr.IOError{Op: "encode", Path: s.dir, Err: err}
	}

	name, err := s.freeName(snapshot.Timestamp)
	if err != nil {
		return "", &apperr.IOError{Op: "stat", Path: s.dir, Err: err}
	}
	path := filepath.Join(s.dir, name)
	tmpFile := filepath.Join(s.dir, "."+name+".tmp")

	file, err := os.Create(tmpFile)
	if err != nil {
		return "", &apperr.IOError{Op: "create", Path: tmpFile, Err: err}
	}

	fail := func(op string, err error) (string, error) {
		os.Remove(tmpFile)
		return "", &apperr.IOError{Op: op, Path: tmpFile, Err: err}
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		return fail("write", err)
	}
	if err = file.Sync(); err != nil {
		file.Close()
		return fail("sync", err)
	}
	if err = file.Close(); err != nil {
		return fail("close", err)
	}
	if err = os.Rename(tmpFile, path); err != nil {
		return fail("rename", err)
	}

	// listing and retention order by modification time
	if err = os.Chtimes(path, snapshot.Timestamp, snapshot.Timestamp); err != nil {
		s.logger.Warnf(providers.TypeBackup, "Unable to set time of %s: %s", name, err)
	}

	return name, nil
}

func (s *SnapshotStore) scan() ([]models.SnapshotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.SnapshotInfo{}, nil
	}
	if err != nil {
		return nil, &apperr.IOError{Op: "read dir", Path: s.dir, Err: err}
	}

	infos := make([]models.SnapshotInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !isSnapshotName(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			// removed since ReadDir
			continue
		}
		infos = append(infos, models.SnapshotInfo{Filename: e.Name(), CreatedAt: fi.ModTime().UTC()})
	}
	return infos, nil
}

// collisionKey splits a snapshot name into its time stem and -N counter,
// 0 when there is none.
func collisionKey(name string) (string, int) {
	stem := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotExt)
	if len(stem) > len(snapshotTimeLayout) && stem[len(snapshotTimeLayout)] == '-' {
		if n, err := strconv.Atoi(stem[len(snapshotTimeLayout)+1:]); err == nil && n > 0 {
			return stem[:len(snapshotTimeLayout)], n
		}
	}
	return stem, 0
}

// oldestFirst orders by creation time, ties broken by name and collision
// counter so that backup_X.json precedes backup_X-1.json.
func oldestFirst(infos []models.SnapshotInfo) {
	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.Before(infos[j].CreatedAt)
		}
		si, ni := collisionKey(infos[i].Filename)
		sj, nj := collisionKey(infos[j].Filename)
		if si != sj {
			return si < sj
		}
		if ni != nj {
			return ni < nj
		}
		return infos[i].Filename < infos[j].Filename
	})
}

func (s *SnapshotStore) List() ([]models.SnapshotInfo, error) {
	infos, err := s.scan()
	if err != nil {
		return nil, err
	}
	oldestFirst(infos)
	for i, j := 0, len(infos)-1; i < j; i, j = i+1, j-1 {
		infos[i], infos[j] = infos[j], infos[i]
	}
	return infos, nil
}

func (s *SnapshotStore) Read(filename string) (*models.Snapshot, error) {
	if !isSnapshotName(filename) {
		return nil, apperr.NotFound("backup", filename)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.NotFound("backup", filename)
	}
	if err != nil {
		return nil, &apperr.IOError{Op: "read", Path: filename, Err: err}
	}

	var header struct {
		Timestamp json.RawMessage `json:"timestamp"`
		Students  json.RawMessage `json:"students"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, &apperr.NotFoundError{Resource: "backup", Key: filename, Err: err}
	}
	// restore replaces every student, so a file without the students array is not a snapshot
	if !present(header.Timestamp) || !present(header.Students) {
		return nil, &apperr.NotFoundError{Resource: "backup", Key: filename, Err: errNotSnapshot}
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, &apperr.NotFoundError{Resource: "backup", Key: filename, Err: err}
	}
	return &snapshot, nil
}

var errNotSnapshot = errors.New("timestamp or students missing")

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func (s *SnapshotStore) EnforceRetention(maxCount int) (int, error) {
	infos, err := s.scan()
	if err != nil {
		return 0, err
	}
	if maxCount < 0 || len(infos) <= maxCount {
		return 0, nil
	}

	oldestFirst(infos)
	removed := 0
	for _, info := range infos[:len(infos)-maxCount] {
		if err := os.Remove(filepath.Join(s.dir, info.Filename)); err != nil {
			s.logger.Errorf(providers.TypeBackup, "Unable to delete old backup %s: %s", info.Filename, err)
			continue
		}
		removed++
		s.logger.Infof(providers.TypeBackup, "Deleted old backup: %s", info.Filename)
	}
	return removed, nil
}

func ProvideSnapshotStore(conf *structures.Config, logger providers.Logger) SnapshotStoreInterface {
	return NewSnapshotStore(conf.Backup.Dir, logger)
}
