package compiler

import (
	"os"
	"path/filepath"

	"github.com/jot-lang/jot/internal/source"
)

// FileLoader resolves `load "path";` directives against the directory
// of the compilation's entry file, and reads the result through
// the standard library's own os.ReadFile the way the rest of the
// toolchain treats file I/O as a boundary concern kept out of the
// parser.
type FileLoader struct {
	baseDir string
	sources *source.Manager
}

// NewFileLoader returns a Loader rooted at entryDir, registering every
// file it reads into sources so its tokens share one id space with the
// entry file.
func NewFileLoader(entryDir string, sources *source.Manager) *FileLoader {
	return &FileLoader{baseDir: entryDir, sources: sources}
}

func (l *FileLoader) Load(path string) (int, string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.baseDir, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return 0, "", err
	}
	return l.sources.Register(full), string(data), nil
}
