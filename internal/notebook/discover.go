package notebook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension is the notebook file extension.
const DefaultExtension = ".ipynb"

// CheckpointDir is the directory Jupyter uses for auto-saved checkpoint copies.
const CheckpointDir = ".ipynb_checkpoints"

// Notebook is a discovered notebook file.
type Notebook struct {
	// Path is the notebook location as found during the scan.
	Path string
	// Rel is Path relative to the scanned root, using OS separators.
	Rel string
}

// Options controls discovery filtering.
type Options struct {
	Extension   string
	ExcludeDirs []string
	// Sort orders results by relative path. Without it results follow the
	// directory walk order.
	Sort bool
}

func (o Options) extension() string {
	if ext := strings.TrimSpace(o.Extension); ext != "" {
		return ext
	}
	return DefaultExtension
}

func (o Options) excludeDirs() []string {
	if o.ExcludeDirs == nil {
		return []string{CheckpointDir}
	}
	return o.ExcludeDirs
}

// Discover walks root recursively and returns every notebook that matches the
// extension filter and does not live under an excluded directory. A missing
// root yields no notebooks and no error.
func Discover(root string, opts Options) ([]Notebook, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("inspect notebooks dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notebooks dir %s is not a directory", root)
	}

	// WalkDir does not descend into a symlinked root, so walk its target and
	// report paths under root as configured.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve notebooks dir: %w", err)
	}

	ext := opts.extension()
	exclude := opts.excludeDirs()

	var notebooks []Notebook
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != walkRoot && containsName(exclude, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) || !isRegularOrLink(d) {
			return nil
		}
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		if IsExcluded(rel, exclude) {
			return nil
		}
		notebooks = append(notebooks, Notebook{Path: filepath.Join(root, rel), Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan notebooks: %w", err)
	}

	if opts.Sort {
		sort.Slice(notebooks, func(i, j int) bool {
			return filepath.ToSlash(notebooks[i].Rel) < filepath.ToSlash(notebooks[j].Rel)
		})
	}
	return notebooks, nil
}

// IsExcluded reports whether any segment of path equals one of the excluded
// directory names.
func IsExcluded(path string, excludeDirs []string) bool {
	if len(excludeDirs) == 0 {
		return false
	}
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if containsName(excludeDirs, segment) {
			return true
		}
	}
	return false
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// Symlinked notebooks are followed like the directory scan would list them;
// other non-regular entries (sockets, devices) are ignored.
func isRegularOrLink(d fs.DirEntry) bool {
	mode := d.Type()
	return mode.IsRegular() || mode&fs.ModeSymlink != 0
}
