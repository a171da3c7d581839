// Package backup drives full-database SQL dumps through the database
// vendor's command-line tooling. Dumps after mutations are best-effort and
// never surface errors to the caller; restores are explicit admin actions
// and always report their outcome.
package backup

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"maintlog/internal/models"
)

// ErrNoBackups is returned by RestoreLatest when the backup directory
// holds no dump files.
var ErrNoBackups = errors.New("no backup found")

// Driver produces and replays backup_<YYYYMMDD_HHMMSS>.sql dump files.
type Driver struct {
	Dir            string
	DBPath         string
	DumpCommand    string
	RestoreCommand string
	// Retention is the number of dump files kept after each successful
	// backup. 0 disables pruning.
	Retention int

	logger *zap.Logger
	events chan struct{}
}

// NewDriver creates a Driver. logger may be nil.
func NewDriver(dir, dbPath, dumpCmd, restoreCmd string, retention int, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		Dir:            dir,
		DBPath:         dbPath,
		DumpCommand:    dumpCmd,
		RestoreCommand: restoreCmd,
		Retention:      retention,
		logger:         logger,
		events:         make(chan struct{}, 1),
	}
}

// Notify requests a backup without blocking. Requests arriving while a
// dump is already pending coalesce into one.
func (d *Driver) Notify() {
	select {
	case d.events <- struct{}{}:
	default:
	}
}

// Run consumes backup requests until stop is closed. Failures are logged
// and swallowed; a failed dump must never affect the mutation that
// triggered it.
func (d *Driver) Run(stop <-chan struct{}) {
	for {
		select {
		case <-d.events:
			if err := d.Backup(); err != nil {
				d.logger.Warn("auto backup failed", zap.Error(err))
			}
		case <-stop:
			return
		}
	}
}

// Backup dumps the whole database to a timestamped .sql file. When the
// dump utility is not installed the backup is skipped silently with a log
// note and a nil error.
func (d *Driver) Backup() error {
	if _, err := exec.LookPath(d.DumpCommand); err != nil {
		d.logger.Info("dump utility not found, skipping backup",
			zap.String("command", d.DumpCommand))
		return nil
	}

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	filename := fmt.Sprintf("backup_%s.sql", time.Now().Format("20060102_150405"))
	path := filepath.Join(d.Dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(d.DumpCommand, d.DBPath, ".dump")
	cmd.Stdout = out
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	closeErr := out.Close()

	if runErr != nil {
		os.Remove(path)
		return fmt.Errorf("dump failed: %w: %s", runErr, strings.TrimSpace(stderr.String()))
	}
	if closeErr != nil {
		return fmt.Errorf("write backup file: %w", closeErr)
	}

	d.logger.Info("backup written", zap.String("file", filename))
	d.prune()
	return nil
}

// RestoreLatest replays the most recent dump file into the database and
// returns its filename. Unlike Backup, every failure is reported to the
// caller.
func (d *Driver) RestoreLatest() (string, error) {
	latest, err := latestBackup(d.Dir)
	if err != nil {
		return "", err
	}

	f, err := os.Open(filepath.Join(d.Dir, latest))
	if err != nil {
		return "", fmt.Errorf("open backup %s: %w", latest, err)
	}
	defer f.Close()

	var stderr bytes.Buffer
	cmd := exec.Command(d.RestoreCommand, d.DBPath)
	cmd.Stdin = f
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("restore from %s failed: %w: %s", latest, err, strings.TrimSpace(stderr.String()))
	}

	d.logger.Info("database restored", zap.String("file", latest))
	return latest, nil
}

// List returns the dump files in the backup directory, newest first.
func (d *Driver) List() ([]models.BackupInfo, error) {
	names, err := backupFiles(d.Dir)
	if err != nil {
		return nil, err
	}

	backups := []models.BackupInfo{}
	for _, name := range names {
		info, err := os.Stat(filepath.Join(d.Dir, name))
		if err != nil {
			continue
		}
		backups = append(backups, models.BackupInfo{
			Filename:  name,
			Size:      info.Size(),
			CreatedAt: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Filename > backups[j].Filename
	})
	return backups, nil
}

func (d *Driver) prune() {
	if d.Retention <= 0 {
		return
	}
	names, err := backupFiles(d.Dir)
	if err != nil || len(names) <= d.Retention {
		return
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-d.Retention] {
		if err := os.Remove(filepath.Join(d.Dir, name)); err != nil {
			d.logger.Warn("failed to remove old backup", zap.String("file", name), zap.Error(err))
		} else {
			d.logger.Info("removed old backup", zap.String("file", name))
		}
	}
}

// latestBackup picks the lexicographically greatest dump filename, which
// is the most recent given the zero-padded timestamp format.
func latestBackup(dir string) (string, error) {
	names, err := backupFiles(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoBackups
	}
	latest := names[0]
	for _, name := range names[1:] {
		if name > latest {
			latest = name
		}
	}
	return latest, nil
}

func backupFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "backup_") || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
