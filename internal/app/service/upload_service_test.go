package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/linktrove/linktrove/config"
)

type staticPhotoURLs []string

func (s staticPhotoURLs) AllPhotoURLs(ctx context.Context) ([]string, error) { return s, nil }

type staticImagePaths []string

func (s staticImagePaths) AllImagePaths(ctx context.Context) ([]string, error) { return s, nil }

func TestUploadService_Cleanup_ReportsOrphans(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"kept.png", "orphan-a.jpg", "orphan-b.webp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewUploadService(
		config.UploadConfig{Dir: dir, PublicPath: "/uploads"},
		staticPhotoURLs{"/uploads/kept.png"},
		staticImagePaths(nil),
	)

	report, err := svc.Cleanup(context.Background(), false)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if report.Scanned != 3 || report.Referred != 1 || len(report.Orphans) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Deleted != 0 {
		t.Fatal("dry run must not delete")
	}

	// The dry run left everything in place.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Fatalf("expected 3 files after dry run, got %d", len(entries))
	}
}

func TestUploadService_Cleanup_DeletesOrphans(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"kept.png", "orphan.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewUploadService(
		config.UploadConfig{Dir: dir, PublicPath: "/uploads"},
		staticPhotoURLs(nil),
		staticImagePaths{"/uploads/kept.png"},
	)

	report, err := svc.Cleanup(context.Background(), true)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if report.Deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", report.Deleted)
	}

	if _, err := os.Stat(filepath.Join(dir, "kept.png")); err != nil {
		t.Fatal("referenced file must survive cleanup")
	}
	if _, err := os.Stat(filepath.Join(dir, "orphan.jpg")); !os.IsNotExist(err) {
		t.Fatal("orphan must be removed")
	}
}

func TestUploadService_Cleanup_MissingDir(t *testing.T) {
	svc := NewUploadService(
		config.UploadConfig{Dir: filepath.Join(t.TempDir(), "never-created")},
		staticPhotoURLs(nil),
		staticImagePaths(nil),
	)

	report, err := svc.Cleanup(context.Background(), true)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if report.Scanned != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
