package home

import (
	"path"
	"strings"
)

// PatternType enumerates the path pattern generalizations offered for a
// home-interface request. The ordinals are load-bearing: they are sent
// to the UI as HomePatternType and must match this order exactly.
type PatternType int

const (
	RequestedDirectory PatternType = iota
	RequestedFile
	RequestedDirectoryContents
	TopLevelDirectory
	HomeDirectory
	MatchingFileExtension
	ContainingDirectory
)

func (t PatternType) String() string {
	switch t {
	case RequestedDirectory:
		return "requested-directory"
	case RequestedFile:
		return "requested-file"
	case TopLevelDirectory:
		return "top-level-directory"
	case HomeDirectory:
		return "home-directory"
	case MatchingFileExtension:
		return "matching-file-extension"
	case ContainingDirectory:
		return "containing-directory"
	case RequestedDirectoryContents:
		return "requested-directory-contents"
	default:
		return "unknown"
	}
}

// TypedPathPattern is one pattern option offered to the user, along with
// whether it should be pre-selected in the UI.
type TypedPathPattern struct {
	PatternType   PatternType
	PathPattern   string
	ShowInitially bool
}

// Patterns synthesizes the ordered list of pattern options for a
// requested path under a home directory, along with the index of the
// first option that should be shown initially (0 if none qualifies).
//
// A requested path ending in "/" is treated as a directory-scoped
// request (the kernel/policy service always terminates directory paths
// with a trailing slash); anything else is a file request.
func Patterns(requestedPath, homeDir string) ([]TypedPathPattern, int) {
	dirIntent := strings.HasSuffix(requestedPath, "/")

	opts := make([]TypedPathPattern, 0, 7)
	opts = append(opts, TypedPathPattern{
		PatternType:   RequestedDirectory,
		PathPattern:   requestedDirPattern(requestedPath),
		ShowInitially: dirIntent,
	})
	opts = append(opts, TypedPathPattern{
		PatternType:   RequestedFile,
		PathPattern:   requestedPath,
		ShowInitially: !dirIntent,
	})
	opts = append(opts, TypedPathPattern{
		PatternType:   RequestedDirectoryContents,
		PathPattern:   requestedDirPattern(requestedPath) + "**",
		ShowInitially: dirIntent,
	})
	opts = append(opts, TypedPathPattern{
		PatternType:   TopLevelDirectory,
		PathPattern:   topLevelDirPattern(requestedPath, homeDir),
		ShowInitially: true,
	})
	opts = append(opts, TypedPathPattern{
		PatternType:   HomeDirectory,
		PathPattern:   strings.TrimSuffix(homeDir, "/") + "/**",
		ShowInitially: true,
	})
	if ext := fileExtension(requestedPath); !dirIntent && ext != "" {
		opts = append(opts, TypedPathPattern{
			PatternType:   MatchingFileExtension,
			PathPattern:   strings.TrimSuffix(homeDir, "/") + "/**/*" + ext,
			ShowInitially: true,
		})
	}
	opts = append(opts, TypedPathPattern{
		PatternType:   ContainingDirectory,
		PathPattern:   parentDir(requestedPath) + "/*",
		ShowInitially: true,
	})

	initial := 0
	for i, o := range opts {
		if o.ShowInitially {
			initial = i
			break
		}
	}
	return opts, initial
}

// requestedDirPattern returns the requested path itself if it already
// names a directory, or its parent directory otherwise.
func requestedDirPattern(requestedPath string) string {
	if strings.HasSuffix(requestedPath, "/") {
		return requestedPath
	}
	return parentDir(requestedPath) + "/"
}

// parentDir returns the parent directory of p with no trailing slash.
func parentDir(p string) string {
	trimmed := strings.TrimSuffix(p, "/")
	dir := path.Dir(trimmed)
	if dir == "." {
		return ""
	}
	return dir
}

// fileExtension returns the extension (including the leading dot) of the
// final path segment, or "" if there is none.
func fileExtension(p string) string {
	trimmed := strings.TrimSuffix(p, "/")
	return path.Ext(trimmed)
}

// topLevelDirPattern returns the immediate child of homeDir that
// contains requestedPath, suffixed with "/**". If requestedPath is not
// nested under homeDir (should not happen for a well-formed home-
// interface prompt) it falls back to homeDir itself.
func topLevelDirPattern(requestedPath, homeDir string) string {
	base := strings.TrimSuffix(homeDir, "/")
	rel := strings.TrimPrefix(requestedPath, base+"/")
	if rel == requestedPath {
		// requestedPath wasn't actually under homeDir.
		return base + "/**"
	}
	top := rel
	if idx := strings.Index(rel, "/"); idx >= 0 {
		top = rel[:idx]
	}
	return base + "/" + top + "/**"
}
