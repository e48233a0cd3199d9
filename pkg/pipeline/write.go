package pipeline

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/ticketgraph/pkg/errors"
)

// Write stores the artifacts at their [Options.Path], creating parent
// directories as needed. Files are written in render order; a failed write
// is logged and reported without stopping the rest.
func (r *Runner) Write(artifacts map[string][]byte, opts Options) ([]File, []FormatError) {
	opts.SetRenderDefaults()

	var (
		files  []File
		failed []FormatError
	)
	for _, format := range AllFormats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := opts.Path(format)
		if err := writeFile(path, data); err != nil {
			err = errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
			r.Logger.Warn("Could not write output", "format", format, "path", path, "err", err)
			failed = append(failed, FormatError{Format: format, Err: err})
			continue
		}
		r.Logger.Debug("Wrote output", "format", format, "path", path, "bytes", len(data))
		files = append(files, File{Format: format, Path: path, Size: len(data)})
	}
	return files, failed
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
