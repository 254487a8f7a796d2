package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Recorder collects one plane per step of a run and writes them out as a
// numbered PNG and HTML series after the run.
type Recorder struct {
	mu        sync.Mutex
	enabled   bool
	outputDir string
	prefix    string
	frames    []Plane
}

// NewRecorder creates a recorder whose files are named <prefix>_NNN.*.
func NewRecorder(prefix string) *Recorder {
	return &Recorder{prefix: prefix}
}

// Start prepares outputDir and clears any previous frames.
func (r *Recorder) Start(outputDir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	r.outputDir = outputDir
	r.enabled = true
	r.frames = nil
	return nil
}

// Stop disables recording. Call Generate to write files.
func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
}

// IsEnabled reports whether Record currently keeps frames.
func (r *Recorder) IsEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Record appends a frame. It is a no-op while stopped.
func (r *Recorder) Record(p Plane) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	r.frames = append(r.frames, p)
}

// Generate writes every recorded frame and returns the number written.
func (r *Recorder) Generate() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.outputDir == "" {
		return 0, fmt.Errorf("no output directory configured")
	}

	for i, p := range r.frames {
		base := filepath.Join(r.outputDir, fmt.Sprintf("%s_%03d", r.prefix, i))
		if err := WritePNG(p, base+".png"); err != nil {
			return i, fmt.Errorf("frame %d: %w", i, err)
		}
		if err := writeHTMLFile(p, base+".html"); err != nil {
			return i, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return len(r.frames), nil
}

// WriteHTMLFile renders the plane into a new HTML file at path.
func WriteHTMLFile(p Plane, path string) error {
	return writeHTMLFile(p, path)
}

func writeHTMLFile(p Plane, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteHTML(f, p)
}
