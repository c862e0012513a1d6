package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestSaveWritesFile(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}

	result, err := saver.Save(bytes.NewReader(createTestPNG(t)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(result.Filename, ".png") {
		t.Errorf("expected .png extension, got %q", result.Filename)
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("expected file on disk: %v", err)
	}
}

func TestSaveCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	saver := &Saver{Dir: dir}

	if _, err := saver.Save(bytes.NewReader(createTestPNG(t))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected upload directory created: %v", err)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}
	data := createTestPNG(t)

	first, err := saver.Save(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := saver.Save(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if first.Filename == second.Filename {
		t.Errorf("expected distinct filenames, both were %q", first.Filename)
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}

	_, err := saver.Save(strings.NewReader("<?php echo 'gotcha'; ?>"))
	if err == nil {
		t.Fatal("expected error for non-image upload")
	}
	if !Rejected(err) {
		t.Errorf("expected validation rejection, got %v", err)
	}
}

func TestSaveRejectsOversized(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}

	// Valid PNG header followed by padding past the limit.
	data := append(createTestPNG(t), make([]byte, 5<<20)...)
	_, err := saver.Save(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for oversized upload")
	}
	if !Rejected(err) {
		t.Errorf("expected validation rejection, got %v", err)
	}
}

func TestSaveAcceptsAtLimit(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}

	// Pad a valid PNG to exactly 5 MiB. PNG decoding of the header ignores
	// trailing bytes, and the size check is inclusive.
	base := createTestPNG(t)
	data := append(base, make([]byte, 5<<20-len(base))...)
	if _, err := saver.Save(bytes.NewReader(data)); err != nil {
		t.Fatalf("Save at limit: %v", err)
	}
}

func TestRemove(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}

	result, err := saver.Save(bytes.NewReader(createTestPNG(t)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := saver.Remove(result.Filename); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(result.Path); !os.IsNotExist(err) {
		t.Errorf("expected file removed, stat err: %v", err)
	}

	// Removing again is not an error.
	if err := saver.Remove(result.Filename); err != nil {
		t.Errorf("Remove (missing file): %v", err)
	}
}

func TestRemoveRejectsPathTraversal(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}

	if err := saver.Remove("../etc/passwd"); err == nil {
		t.Error("expected error for path traversal")
	}
}

func TestRemoveEmptyFilename(t *testing.T) {
	saver := &Saver{Dir: t.TempDir()}

	if err := saver.Remove(""); err != nil {
		t.Errorf("Remove(\"\"): %v", err)
	}
}
