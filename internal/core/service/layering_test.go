package service

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// The core packages sit below the HTTP and storage adapters and must not
// depend on them.
func TestCorePackagesDoNotImportAdapters(t *testing.T) {
	forbidden := []string{
		"github.com/foodmarket/platform-api/internal/api",
		"github.com/foodmarket/platform-api/internal/infrastructure",
	}
	for _, dir := range []string{".", "../domain", "../ports"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		if err != nil {
			t.Fatalf("glob %s: %v", dir, err)
		}
		for _, file := range files {
			f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", file, err)
			}
			for _, spec := range f.Imports {
				path, _ := strconv.Unquote(spec.Path.Value)
				for _, prefix := range forbidden {
					if path == prefix || strings.HasPrefix(path, prefix+"/") {
						t.Errorf("%s imports %s", file, path)
					}
				}
			}
		}
	}
}
