package common

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fieldops/internal/response"
)

// DocumentInfo describes one file in the document library (P&IDs,
// SOPs, permit templates dropped into the docs directory).
type DocumentInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// ListDocuments handles GET /api/v1/documents. A missing docs
// directory is an empty library, not an error.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.DocsDir)
	if err != nil {
		response.JSON(w, []DocumentInfo{})
		return
	}
	docs := []DocumentInfo{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		docs = append(docs, DocumentInfo{
			Name:     e.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().Format(time.RFC3339),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	response.JSON(w, docs)
}

// ServeDocument handles GET /api/v1/documents/{name}. The name is
// restricted to a bare file name inside the docs directory.
func (h *Handler) ServeDocument(w http.ResponseWriter, r *http.Request, name string) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		response.Err(w, "invalid document name", 400)
		return
	}
	path := filepath.Join(h.DocsDir, name)
	if _, err := os.Stat(path); err != nil {
		response.Err(w, "not found", 404)
		return
	}
	http.ServeFile(w, r, path)
}
