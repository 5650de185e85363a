// Package web serves the public wishlist page, the admin page, and uploaded
// images. All page logic lives client-side; the server only hands out static
// documents.
package web

import (
	"net/http"

	webembed "github.com/erazemk/zelje/web"
)

// NewRouter creates the web page router. uploadsDir is the on-disk directory
// uploaded images are served from.
func NewRouter(uploadsDir string) http.Handler {
	mux := http.NewServeMux()

	static := webembed.StaticFS()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "index.html")
	})
	mux.HandleFunc("GET /admin", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "admin.html")
	})

	return mux
}
