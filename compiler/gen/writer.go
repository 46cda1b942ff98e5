package gen

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer writes rendered files below an output directory in parallel,
// normalizing their formatting on the way.
type Writer struct {
	outDir  string
	workers int

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks write performance.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
	FormatTime   time.Duration
	WriteTime    time.Duration
}

// formatOptions only sorts and formats: the import set of rendered files is
// already complete.
var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// NewWriter creates a writer for the given output directory.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns a snapshot of the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteAll writes every file, keyed by slash separated path relative to the
// output directory.
func (w *Writer) WriteAll(ctx context.Context, files map[string][]byte) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewGenerationError("write", "", "create output directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for rel, src := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(rel, src)
			}
		})
	}
	return eg.Wait()
}

// writeFile formats and writes a single file. Sources that fail to format are
// written next to the target with an ".error" suffix.
func (w *Writer) writeFile(rel string, src []byte) error {
	fullPath := filepath.Join(w.outDir, filepath.FromSlash(rel))

	start := time.Now()
	formatted, err := imports.Process(fullPath, src, formatOptions)
	formatTime := time.Since(start)
	if err != nil {
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, src, 0o644)
		return NewGenerationError("format", rel, "unformatted source written to "+debugPath, err)
	}

	start = time.Now()
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", rel, "", err)
	}
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return NewGenerationError("write", rel, "", err)
	}
	writeTime := time.Since(start)

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(formatted))
	w.metrics.FormatTime += formatTime
	w.metrics.WriteTime += writeTime
	w.mu.Unlock()
	return nil
}
