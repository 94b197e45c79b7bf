package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/matzehuels/logogds/pkg/errors"
)

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Input:   writeLogo(t, "#"),
		Output:  filepath.Join(dir, "logo.gds"),
		Preview: filepath.Join(dir, "preview.svg"),
		Report:  filepath.Join(dir, "report.json"),
	}

	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := WriteArtifacts(result, opts)
	if err != nil {
		t.Fatalf("WriteArtifacts() error: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v, want 3 files", paths)
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("read %s: %v", p, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", p)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only the three outputs", names)
	}
}

func TestWriteArtifactsReplaces(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "logo.gds")
	if err := os.WriteFile(out, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := Options{Input: writeLogo(t, "#"), Output: out}
	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WriteArtifacts(result, opts); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "stale" {
		t.Error("existing output was not replaced")
	}
}

func TestWriteArtifactsMissingDir(t *testing.T) {
	opts := Options{
		Input:  writeLogo(t, "#"),
		Output: filepath.Join(t.TempDir(), "no", "such", "dir", "logo.gds"),
	}
	result, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	_, err = WriteArtifacts(result, opts)
	if !errs.Is(err, errs.ErrCodeOutput) {
		t.Errorf("error = %v, want %v", err, errs.ErrCodeOutput)
	}
	if _, statErr := os.Stat(opts.Output); !os.IsNotExist(statErr) {
		t.Error("failed write left a file behind")
	}
}
