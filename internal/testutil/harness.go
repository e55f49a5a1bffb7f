// Package testutil provides a harness for running the whole application
// against a throwaway directory tree.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/specialistvlad/easycompile/internal/app"
	"github.com/specialistvlad/easycompile/internal/compiler"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Harness owns a temporary project root. Relative paths given to its methods
// are resolved against that root.
type Harness struct {
	t    *testing.T
	Root string
}

// HarnessResult holds the outcomes of a single application run. Output has
// terminal escape sequences removed.
type HarnessResult struct {
	Code      int
	Output    string
	LogOutput string
}

// New creates a harness with an empty temporary root.
func New(t *testing.T) *Harness {
	t.Helper()
	return &Harness{t: t, Root: t.TempDir()}
}

// Path returns rel resolved against the root.
func (h *Harness) Path(rel string) string {
	return filepath.Join(h.Root, filepath.FromSlash(rel))
}

// WriteFiles creates every file in files. In contents, the token {{root}}
// is replaced by the slash-separated root path.
func (h *Harness) WriteFiles(files map[string]string) {
	h.t.Helper()
	root := filepath.ToSlash(h.Root)
	for rel, content := range files {
		path := h.Path(rel)
		require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(h.t, os.WriteFile(path, []byte(strings.ReplaceAll(content, "{{root}}", root)), 0o600))
	}
}

// Backups lists the file names inside the backup directory, or nil if it
// does not exist.
func (h *Harness) Backups(rel string) []string {
	h.t.Helper()
	entries, err := os.ReadDir(h.Path(rel))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(h.t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// CopyCompiler "compiles" by prefixing the source with a marker.
func CopyCompiler() compiler.Compiler {
	return compiler.Func(func(_ context.Context, src, out string) error {
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		return os.WriteFile(out, append([]byte("bytecode:"), data...), 0o644)
	})
}

// Run builds the application from cfg (ConfigPath is resolved against the
// root) and runs it with the given stdin.
func (h *Harness) Run(cfg app.Config, stdin string, opts ...app.Option) *HarnessResult {
	h.t.Helper()

	if cfg.ConfigPath == "" {
		cfg.ConfigPath = app.DefaultConfigPath
	}
	cfg.ConfigPath = h.Path(cfg.ConfigPath)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	opts = append([]app.Option{app.WithCompiler(CopyCompiler())}, opts...)
	a, err := app.NewApp(strings.NewReader(stdin), out, logs, &cfg, opts...)
	require.NoError(h.t, err)

	code := a.Run(context.Background())

	h.t.Cleanup(func() {
		if os.Getenv("EASYCOMPILE_TEST_LOGS") == "true" {
			h.t.Logf("--- Full Log Output for %s ---\n%s", h.t.Name(), logs.String())
		}
	})

	return &HarnessResult{Code: code, Output: ansi.Strip(out.String()), LogOutput: logs.String()}
}
