package scanner

import (
	"os"
	"strings"

	"convertts/internal/config"
)

type Decision int

const (
	Included Decision = iota
	ExcludedInProcess
	ExcludedExtension
)

func (d Decision) String() string {
	switch d {
	case Included:
		return "included"
	case ExcludedInProcess:
		return "in process"
	case ExcludedExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Classifier decides which discovered files are queued for conversion.
type Classifier struct {
	Prefix string
	Ext    string
}

func NewClassifier(cfg config.Config) Classifier {
	return Classifier{Prefix: cfg.MarkerPrefix, Ext: cfg.SourceExt}
}

// Classify inspects only the path string. Names carrying the marker prefix
// are excluded before the extension is looked at.
func (c Classifier) Classify(path string) Decision {
	base := BaseName(path)
	if len(base) > len(c.Prefix) && base[:len(c.Prefix)] == c.Prefix {
		return ExcludedInProcess
	}
	if Ext(path) != c.Ext {
		return ExcludedExtension
	}
	return Included
}

// BaseName returns everything after the last path separator.
func BaseName(path string) string {
	return path[strings.LastIndexFunc(path, isSeparator)+1:]
}

// Ext returns the base name from its last '.' onward, or "" when there is no dot.
func Ext(path string) string {
	base := BaseName(path)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return base[idx:]
}

// SplitPath breaks path into its directory (with trailing separator), the
// base name without extension, and the extension.
func SplitPath(path string) (dir, stem, ext string) {
	cut := strings.LastIndexFunc(path, isSeparator) + 1
	dir = path[:cut]
	base := path[cut:]
	ext = Ext(base)
	stem = base[:len(base)-len(ext)]
	return dir, stem, ext
}

func isSeparator(r rune) bool {
	return r < 0x80 && os.IsPathSeparator(uint8(r))
}
