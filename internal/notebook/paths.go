package notebook

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MirrorDir returns the directory under outputRoot that mirrors the location
// of path under sourceRoot. When path is not inside sourceRoot the output root
// itself is returned with inside=false. Both roots and path are compared as
// absolute, cleaned paths.
func MirrorDir(sourceRoot, outputRoot, path string) (dir string, inside bool) {
	rel, ok := relativeTo(sourceRoot, path)
	if !ok {
		return outputRoot, false
	}
	return filepath.Join(outputRoot, filepath.Dir(rel)), true
}

func relativeTo(root, path string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// Stem returns the file name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReportName returns the HTML file name the converter produces for path.
func ReportName(path string) string {
	return Stem(path) + ".html"
}

// Title derives a human-friendly title from a notebook file name, e.g.
// "01_exploratory-analysis.ipynb" becomes "01 Exploratory Analysis".
func Title(path string) string {
	stem := Stem(path)
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range stem {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return stem
	}
	return cases.Title(language.Und).String(title)
}
