package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open archive entry %q: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("failed to read archive entry %q: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_StoreAndClose(t *testing.T) {
	tmpDir := t.TempDir()

	storedPath := filepath.Join(tmpDir, "snippets.yaml")
	if err := os.WriteFile(storedPath, []byte("d: \"display:block\"\n"), 0644); err != nil {
		t.Fatalf("failed to write stored file: %v", err)
	}

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.StoreData("config/effective.yaml", []byte("version: 1\n"))
	r.Store("tables/snippets.yaml", storedPath)
	r.Store("missing.log", filepath.Join(tmpDir, "nonesuch.log"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readArchive(t, conf.Destination)

	if _, ok := entries["MANIFEST"]; !ok {
		t.Error("report archive missing MANIFEST")
	}
	if got := entries["config/effective.yaml"]; got != "version: 1\n" {
		t.Errorf("stored data = %q, want config dump", got)
	}
	if got := entries["tables/snippets.yaml"]; got != "d: \"display:block\"\n" {
		t.Errorf("stored file = %q, want table content", got)
	}
	// absent files are quietly skipped
	if _, ok := entries["missing.log"]; ok {
		t.Error("absent stored file ended up in archive")
	}
}

func TestReport_NilIsSafe(t *testing.T) {
	var r *Report
	r.Store("name", "path")
	r.StoreData("name", nil)
	if n := r.Name(); n != "" {
		t.Errorf("Name() on nil report = %q, want empty", n)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
}

func TestReport_CloseWithoutFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without file error = %v", err)
	}
}
