package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// dateLayout renders dates as e.g. "Fri-Oct-16-2026".
const dateLayout = "Mon-Jan-02-2006"

// maxBackupAttempts bounds the search for a free backup name.
const maxBackupAttempts = 1000

// backupFile is the part of *os.File used to store a backup.
type backupFile interface {
	io.Writer
	Close() error
}

// createExclusive creates path, failing with fs.ErrExist if it is taken.
func createExclusive(path string) (backupFile, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func humanDate(t time.Time) string {
	return t.Format(dateLayout)
}

// backupName builds "<base>-<date>-<millis><ext>".
func backupName(base, date string, millis int64, ext string) string {
	return fmt.Sprintf("%s-%s-%d%s", base, date, millis, ext)
}

// nextMillis returns a timestamp strictly greater than any handed out
// before by this pipeline, so names stay unique inside one process even when
// the clock has not moved.
func (p *Pipeline) nextMillis() int64 {
	ms := p.now().UnixMilli()
	if ms <= p.lastMillis {
		ms = p.lastMillis + 1
	}
	p.lastMillis = ms
	return ms
}

// writeBackup stores data in the backup directory under a name that did not
// exist before. Existing backups are never overwritten.
func (p *Pipeline) writeBackup(base, date string, data []byte) (string, error) {
	dir := p.settings.BackupDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	for range maxBackupAttempts {
		path := filepath.Join(dir, backupName(base, date, p.nextMillis(), p.settings.SourceExtension()))
		f, err := p.create(path)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// Incomplete backups are never left behind.
			_ = os.Remove(path)
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("no free backup name for %s after %d attempts", base, maxBackupAttempts)
}
