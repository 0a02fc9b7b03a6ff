package main

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pepasm/internal/config"
)

func TestViewerScrollClamps(t *testing.T) {
	page := image.NewRGBA(image.Rect(0, 0, 100, 1000))
	v := NewViewer(page, "")
	limit := 1000 - (screenHeight - statusHeight)

	v.Scroll(-50)
	if v.offset != 0 {
		t.Errorf("offset = %d after scrolling above the top", v.offset)
	}
	v.Scroll(100)
	if v.offset != 100 {
		t.Errorf("offset = %d, want 100", v.offset)
	}
	v.Scroll(10000)
	if v.offset != limit {
		t.Errorf("offset = %d, want %d", v.offset, limit)
	}
}

func TestViewerShortPage(t *testing.T) {
	v := NewViewer(image.NewRGBA(image.Rect(0, 0, 10, 10)), "")
	v.Scroll(500)
	if v.offset != 0 {
		t.Errorf("short page scrolled to %d", v.offset)
	}
	if w, h := v.Layout(1, 1); w != screenWidth || h != screenHeight {
		t.Errorf("Layout = %d, %d", w, h)
	}
}

func TestLoadListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.pep")
	if err := os.WriteFile(path, []byte("main: LDWA 5,i\nBR nowhere\nRET\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	page, status, err := loadListing(config.DefaultPath, path)
	if err != nil {
		t.Fatalf("loadListing: %v", err)
	}
	if page.Bounds().Dy() == 0 {
		t.Error("empty page")
	}
	if !strings.Contains(status, "7 bytes") || !strings.Contains(status, "1 errors") {
		t.Errorf("status = %q", status)
	}
}

func TestLoadListingMissingFile(t *testing.T) {
	if _, _, err := loadListing(config.DefaultPath, filepath.Join(t.TempDir(), "none.pep")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
