package anki

import "fmt"

// InvalidOutputPathError indicates that the directory a package should be
// written into does not exist. Directories are never created implicitly.
type InvalidOutputPathError struct {
	Dir string
}

func (e *InvalidOutputPathError) Error() string {
	return fmt.Sprintf("output directory does not exist: %s", e.Dir)
}

// InvalidPackageError indicates that a path given to Read does not carry the
// .apkg extension.
type InvalidPackageError struct {
	Path string
}

func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf("file is not an Anki package: %s", e.Path)
}
