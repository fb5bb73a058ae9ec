// Package webembed serves the dashboard frontend compiled into the binary.
package webembed

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed static
var embeddedStatic embed.FS

var (
	staticFS  fs.FS
	fileCache sync.Map
)

func init() {
	var err error
	staticFS, err = fs.Sub(embeddedStatic, "static")
	if err != nil {
		staticFS = nil
	}
}

// Register mounts the embedded frontend on the provided router. API and
// health routes are never shadowed.
func Register(router *gin.Engine) bool {
	handler := spaHandler{fs: staticFS}
	router.GET("/", handler.Serve)
	router.GET("/index.html", handler.Serve)
	router.NoRoute(handler.Serve)
	return handler.fs != nil
}

type spaHandler struct {
	fs fs.FS
}

func (h spaHandler) Serve(c *gin.Context) {
	if shouldBypass(c.Request.URL.Path) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	if h.fs == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "frontend_not_built"})
		return
	}

	requestPath := normalizePath(c.Request.URL.Path)
	data, name, err := h.readFile(requestPath)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "frontend_unavailable"})
		return
	}

	reader := bytes.NewReader(data)
	http.ServeContent(c.Writer, c.Request, name, time.Time{}, reader)
}

type cachedFile struct {
	data []byte
	name string
}

func (h spaHandler) readFile(requestPath string) ([]byte, string, error) {
	if requestPath == "" {
		requestPath = "index.html"
	}

	if cached, ok := fileCache.Load(requestPath); ok {
		entry := cached.(cachedFile)
		return entry.data, entry.name, nil
	}

	data, err := fs.ReadFile(h.fs, requestPath)
	if err == nil {
		fileCache.Store(requestPath, cachedFile{data: data, name: requestPath})
		return data, requestPath, nil
	}

	data, err = fs.ReadFile(h.fs, "index.html")
	if err != nil {
		return nil, "", err
	}
	entry := cachedFile{data: data, name: "index.html"}
	fileCache.Store("index.html", entry)
	return entry.data, entry.name, nil
}

func normalizePath(requestPath string) string {
	clean := strings.TrimPrefix(path.Clean(requestPath), "/")
	if clean == "" || strings.HasSuffix(requestPath, "/") {
		return "index.html"
	}
	return clean
}

func shouldBypass(requestPath string) bool {
	return strings.HasPrefix(requestPath, "/api/") || requestPath == "/health"
}
