package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/inventar/internal/imaging"
	"github.com/erazemk/inventar/internal/upload"
)

// UploadHandler accepts a single multipart image and stores it in the
// upload directory under a generated filename.
type UploadHandler struct {
	Uploads *upload.Saver
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	// Cap the request body; the slack covers multipart framing so that a
	// file of exactly the allowed size still gets through.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)

	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonMessage(w, http.StatusBadRequest, "No image file uploaded or upload error.")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonMessage(w, http.StatusBadRequest, "No image file uploaded or upload error.")
		return
	}
	defer file.Close()

	result, err := h.Uploads.Save(file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			jsonMessage(w, http.StatusBadRequest, "File size must be less than 5MB.")
		case errors.Is(err, imaging.ErrUnsupported):
			jsonMessage(w, http.StatusBadRequest, "Only JPG, PNG, GIF, and WebP images are allowed.")
		default:
			slog.Error("failed to store upload", "error", err)
			jsonMessage(w, http.StatusInternalServerError, "Failed to upload image.")
		}
		return
	}

	slog.Info("image uploaded", "filename", result.Filename)
	jsonResponse(w, http.StatusOK, map[string]string{
		"message":  "Image uploaded successfully.",
		"filename": result.Filename,
		"filepath": result.Path,
	})
}
