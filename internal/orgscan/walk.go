package orgscan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// ListFiles walks the tree under root and returns every regular file
// whose name ends in ext, in walk order. Hidden directories are skipped
// entirely; the root itself is exempt, so a hidden org dir like ~/.org
// still gets scanned. Hidden files are not filtered.
func ListFiles(root string, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
