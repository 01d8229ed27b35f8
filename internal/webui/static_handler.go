package webui

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]bool{
	".html": true, ".css": true, ".js": true,
	".png": true, ".jpg": true, ".jpeg": true, ".svg": true,
	".ico": true, ".webmanifest": true,
}

// staticHandler serves the board from the configured static directory. The
// root path maps to index.html.
func (webUI *WebUI) staticHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" {
		name = "index.html"
	}

	if strings.Contains(name, "..") || strings.ContainsAny(name, "\\\x00") {
		http.NotFound(w, r)
		return
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(name))] {
		http.NotFound(w, r)
		return
	}

	root, err := filepath.Abs(webUI.Config.StaticDir)
	if err != nil {
		http.Error(w, "Internal configuration error", http.StatusInternalServerError)
		return
	}
	absPath := filepath.Join(root, filepath.FromSlash(name))

	rel, err := filepath.Rel(root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		slog.Warn("potential path traversal attempt blocked", "path", absPath)
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(absPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		http.NotFound(w, r)
		return
	}

	// ServeFile would redirect /index.html to /.
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), f)
}
