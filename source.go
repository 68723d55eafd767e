package pashmak

import (
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// A Loader reads script source text for the entry file and for include
// expansion. Paths are as the script wrote them, already resolved against
// the including file's directory.
type Loader interface {
	Load(path string) (io.ReadCloser, error)
}

// FileLoader reads scripts from the filesystem. Sources are UTF-8; a leading
// byte-order mark is stripped.
type FileLoader struct{}

// Load opens the named script file.
func (FileLoader) Load(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &decodeCloser{
		Reader: transform.NewReader(f, unicode.UTF8BOM.NewDecoder()),
		c:      f,
	}, nil
}

type decodeCloser struct {
	io.Reader
	c io.Closer
}

func (d *decodeCloser) Close() error { return d.c.Close() }

// MapLoader serves scripts from memory, keyed by path. It makes include
// expansion testable without touching the filesystem.
type MapLoader map[string]string

// Load returns the source stored under the given path.
func (m MapLoader) Load(path string) (io.ReadCloser, error) {
	src, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return io.NopCloser(strings.NewReader(src)), nil
}
