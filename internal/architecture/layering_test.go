package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const modulePrefix = "focusdrive/internal/"

// importsUnder parses every non-test file below dir and returns its imports
// keyed by slash-separated file path.
func importsUnder(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()
	out := map[string][]string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(path)
		for _, is := range file.Imports {
			out[key] = append(out[key], strings.Trim(is.Path.Value, `"`))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return out
}

type location struct {
	module string
	layer  string
}

var layers = []string{"adapter/in", "adapter/out", "port/in", "port/out", "usecase", "service", "domain", "dto"}

func locate(path string) location {
	_, rest, ok := strings.Cut(path, "modules/")
	if !ok {
		return location{}
	}
	module, inner, _ := strings.Cut(rest, "/")
	for _, layer := range layers {
		if inner == layer || strings.HasPrefix(inner, layer+"/") {
			return location{module: module, layer: layer}
		}
	}
	return location{module: module}
}

// allowed lists, per layer, which layers of the same module it may import.
// Any layer may import another module's port/in and dto.
var allowed = map[string][]string{
	"domain":      {"domain"},
	"dto":         {},
	"port/in":     {"dto"},
	"port/out":    {"domain", "dto"},
	"service":     {"domain", "port/out", "dto"},
	"usecase":     {"service", "domain", "dto", "port/in", "port/out"},
	"adapter/in":  {"port/in", "dto"},
	"adapter/out": {"domain", "dto", "port/out", "port/in"},
}

func TestModuleLayerImports(t *testing.T) {
	t.Parallel()
	for file, imports := range importsUnder(t, filepath.Join("..", "modules")) {
		from := locate(file)
		if from.layer == "" {
			continue
		}
		for _, imp := range imports {
			if !strings.HasPrefix(imp, modulePrefix+"modules/") {
				continue
			}
			to := locate(imp)
			if to.module != from.module {
				if to.layer != "port/in" && to.layer != "dto" {
					t.Errorf("%s reaches into %s/%s: %s", file, to.module, to.layer, imp)
				}
				continue
			}
			if to.layer == from.layer {
				continue
			}
			ok := false
			for _, layer := range allowed[from.layer] {
				ok = ok || layer == to.layer
			}
			if !ok {
				t.Errorf("%s (%s) must not import %s", file, from.layer, imp)
			}
		}
	}
}

func TestDomainStaysFreeOfLibraries(t *testing.T) {
	t.Parallel()
	for file, imports := range importsUnder(t, filepath.Join("..", "modules")) {
		if locate(file).layer != "domain" {
			continue
		}
		for _, imp := range imports {
			if strings.HasPrefix(imp, modulePrefix) {
				if !strings.HasPrefix(imp, modulePrefix+"platform/") && locate(imp).layer != "domain" {
					t.Errorf("%s imports %s", file, imp)
				}
				continue
			}
			if strings.Contains(strings.SplitN(imp, "/", 2)[0], ".") {
				t.Errorf("domain file %s imports third-party %s", file, imp)
			}
		}
	}
}

func TestPlatformDoesNotDependOnModules(t *testing.T) {
	t.Parallel()
	for file, imports := range importsUnder(t, filepath.Join("..", "platform")) {
		for _, imp := range imports {
			if strings.HasPrefix(imp, modulePrefix+"modules/") || strings.HasPrefix(imp, modulePrefix+"ui/") || strings.HasPrefix(imp, modulePrefix+"bootstrap") {
				t.Errorf("platform file %s imports %s", file, imp)
			}
		}
	}
}

func TestUISeesOnlyContracts(t *testing.T) {
	t.Parallel()
	for file, imports := range importsUnder(t, filepath.Join("..", "ui")) {
		for _, imp := range imports {
			if !strings.HasPrefix(imp, modulePrefix+"modules/") {
				continue
			}
			if layer := locate(imp).layer; layer != "dto" && layer != "port/in" {
				t.Errorf("ui file %s imports %s", file, imp)
			}
		}
	}
}
