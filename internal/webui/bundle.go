// Package webui serves a prebuilt single page front-end from disk.
package webui

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// Bundle exposes web UI assets for serving.
type Bundle struct {
	DistFS    fs.FS           // Root dist filesystem.
	AssetsFS  http.FileSystem // Assets subdirectory filesystem.
	IndexHTML []byte          // Raw index HTML content.
}

// Load reads the built front-end from dir. dir must contain index.html.
func Load(dir string) (Bundle, error) {
	info, errStat := os.Stat(dir)
	if errStat != nil {
		return Bundle{}, fmt.Errorf("webui: %w", errStat)
	}
	if !info.IsDir() {
		return Bundle{}, fmt.Errorf("webui: %s is not a directory", dir)
	}
	distFS := os.DirFS(dir)
	indexHTML, errReadFile := fs.ReadFile(distFS, "index.html")
	if errReadFile != nil {
		return Bundle{}, fmt.Errorf("webui: read index.html: %w", errReadFile)
	}
	assetsFS, errSub := fs.Sub(distFS, "assets")
	if errSub != nil {
		return Bundle{}, errSub
	}
	return Bundle{
		DistFS:    distFS,
		AssetsFS:  http.FS(assetsFS),
		IndexHTML: indexHTML,
	}, nil
}

// Register serves assets and falls back to index.html for client side routes.
func Register(engine *gin.Engine, bundle Bundle) {
	engine.StaticFS("/assets", bundle.AssetsFS)
	fileServer := http.FileServer(http.FS(bundle.DistFS))
	engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		requestPath := c.Request.URL.Path
		if IsAPIRoute(requestPath) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		filePath := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
		if filePath != "" {
			fileInfo, errStat := fs.Stat(bundle.DistFS, filePath)
			if errStat == nil && !fileInfo.IsDir() {
				fileServer.ServeHTTP(c.Writer, c.Request)
				return
			}
			if errStat != nil && !errors.Is(errStat, fs.ErrNotExist) {
				c.Status(http.StatusInternalServerError)
				return
			}
			if strings.HasPrefix(requestPath, "/assets/") || strings.Contains(path.Base(filePath), ".") {
				c.Status(http.StatusNotFound)
				return
			}
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", bundle.IndexHTML)
	})
}

// IsAPIRoute reports whether a path targets API endpoints.
func IsAPIRoute(requestPath string) bool {
	for _, prefix := range []string{"/healthz", "/api"} {
		if requestPath == prefix || strings.HasPrefix(requestPath, prefix+"/") {
			return true
		}
	}
	return false
}
