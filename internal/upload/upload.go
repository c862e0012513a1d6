package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/inventar/internal/imaging"
)

// ErrTooLarge marks uploads over the size limit.
var ErrTooLarge = errors.New("image exceeds the 5 MiB size limit")

// Saver validates uploaded images and writes them to the upload directory.
type Saver struct {
	Dir string
}

// Result describes a stored upload.
type Result struct {
	Filename string
	Path     string
}

// Save reads an uploaded image, validates its size and actual content type,
// and writes it under a generated filename. The name combines a UUID with
// the upload time, so repeated uploads of the same file never collide.
func (s *Saver) Save(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, imaging.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > imaging.MaxUploadSize {
		return nil, ErrTooLarge
	}

	// Extension comes from the detected type, never from the client's filename.
	_, ext, err := imaging.Detect(data)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().Unix(), ext)
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing upload: %w", err)
	}

	return &Result{Filename: filename, Path: path}, nil
}

// Remove deletes a stored upload by filename. Missing files are not an
// error, so callers can treat removal as best-effort cleanup.
func (s *Saver) Remove(filename string) error {
	if filename == "" {
		return nil
	}

	// Refuse names that escape the upload directory.
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid upload filename: %q", filename)
	}

	err := os.Remove(filepath.Join(s.Dir, filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}

// Rejected reports whether err is a client-side validation failure
// rather than an I/O failure.
func Rejected(err error) bool {
	return errors.Is(err, ErrTooLarge) || errors.Is(err, imaging.ErrUnsupported)
}
