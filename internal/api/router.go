package api

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/inventar/internal/metrics"
	"github.com/erazemk/inventar/internal/upload"
	webembed "github.com/erazemk/inventar/web"
)

// NewRouter creates the HTTP handler with all endpoints registered: the
// item CRUD endpoint, the image upload endpoint, static serving of stored
// uploads, Prometheus metrics, and the embedded frontend at the root.
func NewRouter(db *sql.DB, uploadDir string) http.Handler {
	metrics.Register()
	saver := &upload.Saver{Dir: uploadDir}

	mux := http.NewServeMux()
	mux.Handle("/items", &ItemsHandler{DB: db, Uploads: saver})
	mux.Handle("/upload", &UploadHandler{Uploads: saver})
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /", http.FileServerFS(webembed.StaticFS()))

	return CORSMiddleware(mux)
}
