package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultIndex is the document served for directories and by SPA.
const DefaultIndex = "index.html"

// Assets returns a middleware that serves GET and HEAD requests naming a
// regular file under root. A directory, including "/", is served through
// its index file. Dotfiles, traversal attempts and misses pass through to
// next untouched. It panics when root is not a readable directory.
func Assets(root string) func(http.Handler) http.Handler {
	dir := mustOpenRoot(root)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			name, ok := assetName(r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if serveFile(w, r, dir, name) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SPA returns a handler that always answers with root/index and 200, so a
// client side router can take over. It panics when the document is missing.
func SPA(root, index string) http.Handler {
	if index == "" {
		index = DefaultIndex
	}
	dir := mustOpenRoot(root)

	info, err := dir.Stat(index)
	if err != nil {
		panic(fmt.Sprintf("static: fallback document %s: %v", filepath.Join(root, index), err))
	}
	if !info.Mode().IsRegular() {
		panic(fmt.Sprintf("static: fallback document %s is not a regular file", filepath.Join(root, index)))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		if !serveFile(w, r, dir, index) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// assetName maps a URL path to a slash separated name relative to the
// asset root. Paths with dot segments, dotfiles or NUL bytes are refused.
func assetName(urlPath string) (string, bool) {
	if strings.IndexByte(urlPath, 0) >= 0 || strings.Contains(urlPath, "\\") {
		return "", false
	}

	clean := path.Clean("/" + urlPath)
	if clean != "/" && clean != strings.TrimSuffix(urlPath, "/") {
		// The request relied on "." / ".." segments or duplicate slashes.
		return "", false
	}

	name := strings.TrimPrefix(clean, "/")
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", false
		}
	}
	if name == "" {
		name = "."
	}
	return name, true
}

// serveFile writes name (or name/index.html for directories) and reports
// whether it did.
func serveFile(w http.ResponseWriter, r *http.Request, dir *os.Root, name string) bool {
	info, err := dir.Stat(name)
	if err != nil {
		return false
	}
	if info.IsDir() {
		name = path.Join(name, DefaultIndex)
		if info, err = dir.Stat(name); err != nil {
			return false
		}
	}
	if !info.Mode().IsRegular() {
		return false
	}

	f, err := dir.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

func mustOpenRoot(root string) *os.Root {
	dir, err := os.OpenRoot(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			panic("static: root directory does not exist: " + root)
		}
		panic("static: cannot open root directory: " + err.Error())
	}
	return dir
}
