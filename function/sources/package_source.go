package sources

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/packages"

	"github.com/NotAdityaPawar/monkeypatch/function/entities"
	"github.com/NotAdityaPawar/monkeypatch/function/services"
	"github.com/NotAdityaPawar/monkeypatch/function/values"
)

// LoadMode is the packages.Load mode used to locate type declarations.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedModule

// PackageSource reads type declarations from Go source files using the go
// toolchain's package loader. Loaded packages and file contents are cached
// for the lifetime of the provider.
type PackageSource struct {
	services.BaseSource
	dir     string
	tests   bool
	exclude []string
	logger  *slog.Logger

	mu    sync.Mutex
	fset  *token.FileSet
	pkgs  map[string]loadResult
	files map[string][]byte
}

type loadResult struct {
	pkg *packages.Package
	err error
}

// PackageSourceOption configures a PackageSource.
type PackageSourceOption func(*PackageSource)

// WithDir sets the directory packages are resolved from.
func WithDir(dir string) PackageSourceOption {
	return func(s *PackageSource) { s.dir = dir }
}

// WithTests includes _test.go files when loading packages.
func WithTests(enabled bool) PackageSourceOption {
	return func(s *PackageSource) { s.tests = enabled }
}

// WithExclude skips files matching any of the doublestar patterns.
// Patterns are matched against the path relative to the load directory.
func WithExclude(patterns ...string) PackageSourceOption {
	return func(s *PackageSource) { s.exclude = append(s.exclude, patterns...) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) PackageSourceOption {
	return func(s *PackageSource) { s.logger = l }
}

// NewPackageSource creates a PackageSource.
func NewPackageSource(opts ...PackageSourceOption) *PackageSource {
	s := &PackageSource{
		logger: slog.Default(),
		fset:   token.NewFileSet(),
		pkgs:   make(map[string]loadResult),
		files:  make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the declaration text of a user-defined type, otherwise
// delegates to next.
func (s *PackageSource) Source(ctx context.Context, t reflect.Type) (string, error) {
	if t.PkgPath() == "" || t.Name() == "" {
		return s.SourceNext(ctx, t)
	}

	src, err := s.Lookup(ctx, t.PkgPath(), values.BaseTypeName(t))
	if err == nil {
		return src, nil
	}
	if !errors.Is(err, entities.ErrSourceUnavailable) {
		return "", err
	}

	s.logger.Debug("type declaration not found in package sources",
		"type", t.String(),
		"error", err)
	return s.SourceNext(ctx, t)
}

// Lookup returns the declaration text of typeName in pkgPath, including its
// doc comment.
func (s *PackageSource) Lookup(ctx context.Context, pkgPath, typeName string) (string, error) {
	qualified := pkgPath + "." + typeName

	pkg, err := s.load(ctx, pkgPath)
	if err != nil {
		return "", err
	}

	for _, file := range pkg.Syntax {
		filename := s.fset.Position(file.Package).Filename
		if s.excluded(filename) {
			continue
		}
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != typeName {
					continue
				}
				src, err := s.text(filename, gd, ts)
				if err != nil {
					return "", &entities.SourceUnavailableError{Type: qualified, Err: err}
				}
				return src, nil
			}
		}
	}

	return "", &entities.SourceUnavailableError{
		Type: qualified,
		Err:  fmt.Errorf("no declaration in %d files", len(pkg.Syntax)),
	}
}

func (s *PackageSource) load(ctx context.Context, pkgPath string) (*packages.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.pkgs[pkgPath]; ok {
		return r.pkg, r.err
	}

	pkg, err := s.loadUncached(ctx, pkgPath)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.pkgs[pkgPath] = loadResult{pkg: pkg, err: err}
	return pkg, err
}

func (s *PackageSource) loadUncached(ctx context.Context, pkgPath string) (*packages.Package, error) {
	// External test packages are only reachable through their parent.
	pattern := pkgPath
	tests := s.tests
	if strings.HasSuffix(pkgPath, "_test") {
		pattern = strings.TrimSuffix(pkgPath, "_test")
		tests = true
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     s.dir,
		Fset:    s.fset,
		Tests:   tests,
	}

	s.logger.Debug("loading package", "package", pattern, "tests", tests)

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, &entities.SourceUnavailableError{Type: pkgPath, Err: err}
	}

	// Test variants share the PkgPath; prefer the one with the most files.
	var best *packages.Package
	for _, p := range pkgs {
		if p.PkgPath != pkgPath {
			continue
		}
		if best == nil || len(p.Syntax) > len(best.Syntax) {
			best = p
		}
	}
	if best == nil {
		return nil, &entities.SourceUnavailableError{
			Type: pkgPath,
			Err:  errors.New("package not found"),
		}
	}
	if len(best.Syntax) == 0 && len(best.Errors) > 0 {
		return nil, &entities.SourceUnavailableError{
			Type: pkgPath,
			Err:  errors.New(best.Errors[0].Msg),
		}
	}
	return best, nil
}

// text slices the declaration out of the file. A spec inside a grouped
// declaration is rendered as a standalone declaration.
func (s *PackageSource) text(filename string, gd *ast.GenDecl, ts *ast.TypeSpec) (string, error) {
	content, err := s.readFile(filename)
	if err != nil {
		return "", err
	}

	slice := func(from, to token.Pos) string {
		return string(content[s.fset.Position(from).Offset:s.fset.Position(to).Offset])
	}

	if !gd.Lparen.IsValid() {
		start := gd.Pos()
		if gd.Doc != nil {
			start = gd.Doc.Pos()
		}
		return slice(start, gd.End()), nil
	}

	var b strings.Builder
	if ts.Doc != nil {
		b.WriteString(slice(ts.Doc.Pos(), ts.Doc.End()))
		b.WriteString("\n")
	}
	b.WriteString("type ")
	b.WriteString(slice(ts.Pos(), ts.End()))
	return b.String(), nil
}

// readFile is called with s.mu unlocked; it guards the file cache itself.
func (s *PackageSource) readFile(filename string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content, ok := s.files[filename]; ok {
		return content, nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	s.files[filename] = content
	return content, nil
}

func (s *PackageSource) excluded(filename string) bool {
	if len(s.exclude) == 0 {
		return false
	}
	rel := filename
	if s.dir != "" {
		if r, err := filepath.Rel(s.dir, filename); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.Base(filename)); ok {
			return true
		}
	}
	return false
}
