// Package discover walks the filesystem for source files and derives their
// output paths. Neither concern belongs to the compiler proper: the spec
// treats file-system traversal and output-file creation as the caller's
// responsibility.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const sourceExt = ".jack"

// CollectJackFiles returns every .jack file named by fileOrDir: itself, if
// it is a file, or its immediate children (sorted by name, non-recursive)
// if it is a directory.
func CollectJackFiles(fileOrDir string) ([]string, error) {
	info, err := os.Stat(fileOrDir)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %q: %w", fileOrDir, err)
	}

	if !info.IsDir() {
		if filepath.Ext(fileOrDir) != sourceExt {
			return nil, fmt.Errorf("%q is not a %s file", fileOrDir, sourceExt)
		}
		return []string{fileOrDir}, nil
	}

	entries, err := os.ReadDir(fileOrDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %w", fileOrDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var files []string
	for _, name := range names {
		if filepath.Ext(name) != sourceExt {
			continue
		}
		files = append(files, filepath.Join(fileOrDir, name))
	}
	return files, nil
}

// ClassName derives a class's expected name from its source file path: the
// base name with the extension stripped.
func ClassName(path string) string {
	return removeExt(filepath.Base(path))
}

// OutputPath derives the .vm name for a .jack source path: the basename
// with its extension swapped, to be written in the process's working
// directory regardless of where the source file lives.
func OutputPath(path string) string {
	return removeExt(filepath.Base(path)) + ".vm"
}

func removeExt(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}
