package pipeline

import (
	"os"
	"path/filepath"

	errs "github.com/matzehuels/logogds/pkg/errors"
)

// WriteArtifacts writes every rendered artifact to its [Options.Path], in
// format order, and returns the paths written.
//
// Each file is written to a temporary sibling and renamed into place, so an
// interrupted or failed write never leaves a truncated file behind. A file
// that already exists at the destination is replaced.
func WriteArtifacts(result *Result, opts Options) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return paths, errs.New(errs.ErrCodeInternal, "no %s artifact was rendered", format)
		}
		path := opts.Path(format)
		if err := writeFileAtomic(path, data); err != nil {
			return paths, errs.Wrap(errs.ErrCodeOutput, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
