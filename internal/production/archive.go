package production

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound reports a requested instance document that does not exist in
// the archive directory.
var ErrNotFound = errors.New("instance not found")

// Archive lists and removes persisted instance documents in a directory,
// covering both persister formats. It is the "use existing instance" surface
// for callers that need to enumerate what has been saved.
type Archive struct {
	dir string
}

// NewArchive creates an Archive over dir, ensuring the directory exists.
func NewArchive(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Archive{dir: dir}, nil
}

// List returns the IDs of all persisted instances, sorted, without
// duplicates when an ID exists in both formats.
func (a *Archive) List() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", a.dir, err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := trimDocumentExt(entry.Name())
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes all persisted documents for id.
func (a *Archive) Delete(id string) error {
	removed := false
	for _, ext := range []string{jsonExt, yamlExt} {
		fn := filepath.Join(a.dir, id+ext)
		err := os.Remove(fn)
		if err == nil {
			removed = true
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", fn, err)
		}
	}
	if !removed {
		return fmt.Errorf("instance %q: %w", id, ErrNotFound)
	}
	return nil
}

// trimDocumentExt strips a persister extension, reporting whether name was a
// persisted document at all. The YAML extension is checked first since it
// contains the JSON one as a prefix.
func trimDocumentExt(name string) (string, bool) {
	if strings.HasSuffix(name, yamlExt) {
		return strings.TrimSuffix(name, yamlExt), true
	}
	if strings.HasSuffix(name, jsonExt) {
		return strings.TrimSuffix(name, jsonExt), true
	}
	return "", false
}
