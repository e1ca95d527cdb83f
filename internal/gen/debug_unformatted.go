package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted saves source that go/format rejected next to the
// intended output, as <name>.unformatted.go. Errors are returned but
// callers ignore them.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, name), content, filePerm)
}
