package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/easycompile/internal/compiler"
	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/specialistvlad/easycompile/internal/ctxlog"
	"github.com/specialistvlad/easycompile/internal/fsutil"
	"github.com/specialistvlad/easycompile/internal/resolve"
)

// Options tunes a Pipeline. The zero value is usable.
type Options struct {
	// FailFast stops the batch at the first failing file.
	FailFast bool
	// Observer is notified of progress. Nil means no notifications.
	Observer Observer
	// Now is the clock used for backup names. Nil means time.Now.
	Now func() time.Time
}

// Pipeline compiles targets one file at a time.
type Pipeline struct {
	settings   *config.Settings
	compiler   compiler.Compiler
	observer   Observer
	failFast   bool
	now        func() time.Time
	create     func(path string) (backupFile, error)
	lastMillis int64
}

// New creates a pipeline for the given settings and compiler.
func New(settings *config.Settings, c compiler.Compiler, opts Options) *Pipeline {
	p := &Pipeline{
		settings: settings,
		compiler: c,
		observer: opts.Observer,
		failFast: opts.FailFast,
		now:      opts.Now,
		create:   createExclusive,
	}
	if p.observer == nil {
		p.observer = nopObserver{}
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Run processes every eligible file of target. The returned summary is never
// nil. A non-nil error means the batch was cut short, either by cancellation
// or by a failure while FailFast is set.
func (p *Pipeline) Run(ctx context.Context, target resolve.Target) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Pipeline run started.", "kind", target.Kind.String(), "target", target.Name)

	// The date is fixed for the whole run; only the millis vary per file.
	date := humanDate(p.now())
	summary := &Summary{}

	var err error
	switch target.Kind {
	case resolve.KindProjectType, resolve.KindDirectory:
		for _, dir := range target.Paths {
			if err = p.runDir(ctx, dir, date, summary); err != nil {
				break
			}
		}
	case resolve.KindFile:
		for _, path := range target.Paths {
			if !p.eligible(path) {
				logger.Debug("File skipped.", "path", path)
				continue
			}
			if err = p.runFile(ctx, path, date, summary); err != nil {
				break
			}
		}
	default:
		err = fmt.Errorf("unsupported target kind %s", target.Kind)
	}

	logger.Debug("Pipeline run finished.", "compiled", summary.Compiled, "failed", len(summary.Failures))
	return summary, err
}

func (p *Pipeline) runDir(ctx context.Context, dir, date string, summary *Summary) error {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ListFilesByExtension(dir, p.settings.SourceExtension())
	if err != nil {
		return p.fail(summary, &FileError{Path: dir, Step: StepList, Err: err})
	}
	logger.Debug("Directory listed.", "dir", dir, "candidates", len(files))

	for _, path := range files {
		if !p.eligible(path) {
			logger.Debug("File excluded.", "path", path)
			continue
		}
		if err := p.runFile(ctx, path, date, summary); err != nil {
			return err
		}
	}
	return nil
}

// runFile processes one file and records the outcome. It only returns an
// error when the batch has to stop.
func (p *Pipeline) runFile(ctx context.Context, path, date string, summary *Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ferr := p.process(ctxlog.With(ctx, "file", path), path, date); ferr != nil {
		return p.fail(summary, ferr)
	}
	summary.Compiled++
	return nil
}

func (p *Pipeline) fail(summary *Summary, ferr *FileError) error {
	summary.Failures = append(summary.Failures, ferr)
	p.observer.Failed(ferr)
	if p.failFast {
		return ferr
	}
	return nil
}

// eligible applies the extension and exclusion rules to a single path.
func (p *Pipeline) eligible(path string) bool {
	ext := p.settings.SourceExtension()
	if !strings.HasSuffix(path, ext) {
		return false
	}
	return !p.settings.Excluded(fsutil.BaseName(path, ext))
}

// process runs read, backup, compile and delete for one file. The source is
// only removed once the preceding steps have all succeeded.
func (p *Pipeline) process(ctx context.Context, path, date string) *FileError {
	logger := ctxlog.FromContext(ctx)
	base := fsutil.BaseName(path, p.settings.SourceExtension())

	data, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Path: path, Step: StepRead, Err: err}
	}

	backup, err := p.writeBackup(base, date, data)
	if err != nil {
		return &FileError{Path: path, Step: StepBackup, Err: err}
	}
	logger.Debug("Backup written.", "backup", backup, "bytes", len(data))
	p.observer.BackupCreated(path, backup)

	artifact := filepath.Join(filepath.Dir(path), base+p.settings.FileExtension())
	if err := p.compiler.Compile(ctx, path, artifact); err != nil {
		return &FileError{Path: path, Step: StepCompile, Err: err}
	}
	logger.Debug("Artifact written.", "artifact", artifact)
	p.observer.Compiled(path, artifact)

	if err := os.Remove(path); err != nil {
		return &FileError{Path: path, Step: StepDelete, Err: err}
	}
	logger.Debug("Source removed.")
	p.observer.Dropped(path)
	return nil
}
