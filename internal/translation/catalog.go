package translation

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Catalog tracks which language-pair resources are installed locally.
// Each installed pair is a file or directory named "<source>-<target>"
// (e.g. "fr-en") under the resource directory.
type Catalog struct {
	dir string

	mu    sync.Mutex
	pairs map[string]struct{}
}

// LoadCatalog scans dir for installed language pairs. A missing directory is
// an empty catalog, not an error: nothing is installed yet.
func LoadCatalog(dir string) (*Catalog, error) {
	c := &Catalog{dir: dir, pairs: make(map[string]struct{})}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("translation: read resource dir: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		// strip extensions like fr-en.pack
		if i := strings.IndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
		parts := strings.Split(name, "-")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		c.pairs[strings.ToLower(name)] = struct{}{}
	}
	return c, nil
}

// Installed reports whether the (source, target) resource is present.
func (c *Catalog) Installed(source, target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pairs[strings.ToLower(source)+"-"+strings.ToLower(target)]
	return ok
}

// Add marks a pair installed. Used by tests and by install tooling.
func (c *Catalog) Add(source, target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pairs[strings.ToLower(source)+"-"+strings.ToLower(target)] = struct{}{}
}
