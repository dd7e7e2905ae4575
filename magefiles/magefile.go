//go:build mage

// Package main provides build targets for the gqlmirror project using Mage.
//
// Usage:
//
//	mage build          Vet, then compile gqlmirror binary to bin/
//	mage test           Run all tests
//	mage testUnit       Run only internal/pkg unit tests
//	mage testIntegration Run cmd/ tests (builds first)
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts and stray local databases
//	mage install        Install gqlmirror to GOPATH/bin
//	mage stats          Print Go LOC and, if present, a schema's layout counts
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/localmirror/gqlmirror/internal/schemafile"
	"github.com/localmirror/gqlmirror/pkg/schema"
)

const (
	binaryName = "gqlmirror"
	binaryDir  = "bin"
	cmdDir     = "./cmd/gqlmirror"
)

// defaultSchemaFile is the conventional location Stats looks for a schema
// document to report layout counts for. Its absence is not an error: Stats
// still reports line counts and simply skips the schema section.
const defaultSchemaFile = "schema.yaml"

// Build vets the tree, then compiles the gqlmirror binary to bin/.
func Build() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestUnit runs only unit tests, excluding the cmd/ CLI package.
func TestUnit() error {
	pkgs, err := sh.Output("go", "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for _, pkg := range strings.Split(pkgs, "\n") {
		if pkg != "" && !strings.Contains(pkg, "/cmd/") {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test"}, unitPkgs...)
	return sh.RunV("go", args...)
}

// TestIntegration builds first, then runs only the CLI package's tests.
func TestIntegration() error {
	mg.Deps(Build)
	return sh.RunV("go", "test", "./cmd/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and any *.sqlite file in the repo root.
// Databases inside the CWD-relative default data directory (.gqlmirror-db)
// are not removed.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}

	strays, err := filepath.Glob("*.sqlite")
	if err != nil {
		return err
	}
	for _, path := range strays {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	if err := sh.Copy(dst, src); err != nil {
		return err
	}
	return os.Chmod(dst, 0o755)
}

// Stats prints Go lines of code, then, if defaultSchemaFile exists, the
// relational layout it would decompose into: how many primitives_* tables
// Initialize creates, how many primitive columns they carry between them,
// and how many link and connection fields the schema declares.
func Stats() error {
	prodLines, testLines, err := countGoLines()
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of code (Go, total):      %d\n", prodLines+testLines)

	if err := schemaStats(defaultSchemaFile); err != nil {
		fmt.Printf("Schema stats skipped (%s not usable: %v)\n", defaultSchemaFile, err)
	}
	return nil
}

func countGoLines() (prod, test int, err error) {
	err = filepath.Walk(".", func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if info.IsDir() {
			if path == "vendor" || path == ".git" || path == binaryDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasPrefix(path, "magefiles") {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		count := bytes.Count(data, []byte("\n"))
		if strings.HasSuffix(path, "_test.go") {
			test += count
		} else {
			prod += count
		}
		return nil
	})
	return prod, test, err
}

// schemaStats reports the primitives_* table and column counts Initialize
// would produce for the schema document at path.
func schemaStats(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("not found")
	}

	sch, err := schemafile.Load(path)
	if err != nil {
		return err
	}
	info, err := schema.Decompose(sch)
	if err != nil {
		return err
	}

	var primCols, linkCols, connCols int
	for _, obj := range info.ObjectTypes {
		primCols += len(obj.PrimitiveFieldNames)
		linkCols += len(obj.LinkFieldNames)
		connCols += len(obj.ConnectionFieldNames)
	}

	fmt.Printf("Object types (primitives_* tables): %d\n", len(info.ObjectTypes))
	fmt.Printf("Union types:                        %d\n", len(info.UnionTypes))
	fmt.Printf("Primitive columns:                  %d\n", primCols)
	fmt.Printf("Link fields:                         %d\n", linkCols)
	fmt.Printf("Connection fields:                   %d\n", connCols)
	return nil
}
