package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/suji-lang/suji/internal/value"
)

func fakeEvaluator(exports map[string]value.Value) SourceEvaluator {
	return func(src string, env *value.Env, reg *Registry) (value.Value, error) {
		if v, ok := exports[src]; ok {
			return v, nil
		}
		return value.Nil, nil
	}
}

func newTestEnv() *value.Env { return value.NewEnv() }

func TestResolveVirtualBuiltinLeaf(t *testing.T) {
	root := map[string]*VirtualNode{
		"std": {Children: map[string]*VirtualNode{
			"pi": {Builtin: value.String("3.14159")},
		}},
	}
	reg := NewRegistry("", root, fakeEvaluator(nil), newTestEnv)

	got, err := reg.Resolve("std:pi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := got.(value.String); !ok || s != "3.14159" {
		t.Fatalf("got %#v, want String(3.14159)", got)
	}
}

func TestResolveVirtualSourceModule(t *testing.T) {
	exportVal := value.NewList([]value.Value{value.NumberFromInt(1)})
	root := map[string]*VirtualNode{
		"mymod": {Source: "export [1]"},
	}
	reg := NewRegistry("", root, fakeEvaluator(map[string]value.Value{"export [1]": exportVal}), newTestEnv)

	got, err := reg.Resolve("mymod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Value(exportVal) {
		t.Fatalf("got %#v, want the evaluated export", got)
	}
}

func TestResolveWholeModuleWhenNoDeeperSegments(t *testing.T) {
	root := map[string]*VirtualNode{
		"leaf": {Source: "export 42"},
	}
	want := value.NumberFromInt(42)
	reg := NewRegistry("", root, fakeEvaluator(map[string]value.Value{"export 42": want}), newTestEnv)

	got, err := reg.Resolve("leaf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestResolveNestedPathRequiresMapModule(t *testing.T) {
	root := map[string]*VirtualNode{
		"leaf": {Source: "export 1"},
	}
	reg := NewRegistry("", root, fakeEvaluator(map[string]value.Value{"export 1": value.NumberFromInt(1)}), newTestEnv)

	_, err := reg.Resolve("leaf:sub")
	if err == nil {
		t.Fatal("expected an error indexing into a leaf module")
	}
	modErr, ok := err.(*Error)
	if !ok || modErr.Kind != NotAMap {
		t.Fatalf("got %v, want NotAMap", err)
	}
}

func TestResolveUnknownPathIsNotFound(t *testing.T) {
	reg := NewRegistry(t.TempDir(), nil, fakeEvaluator(nil), newTestEnv)
	_, err := reg.Resolve("doesnotexist")
	if err == nil {
		t.Fatal("expected a not-found error")
	}
	if modErr, ok := err.(*Error); !ok || modErr.Kind != NotFound {
		t.Fatalf("got %v, want NotFound", err)
	}
}

func TestResolveFromFilesystemFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greet.si"), []byte("export \"hi\""), 0o644); err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(dir, nil, fakeEvaluator(map[string]value.Value{`export "hi"`: value.String("hi")}), newTestEnv)

	got, err := reg.Resolve("greet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := got.(value.String); !ok || s != "hi" {
		t.Fatalf("got %#v, want String(hi)", got)
	}
}

func TestResolveFromFilesystemDirectory(t *testing.T) {
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "pkg")
	if err := os.Mkdir(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkgDir, "item.si"), []byte("export 7"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry(dir, nil, fakeEvaluator(map[string]value.Value{"export 7": value.NumberFromInt(7)}), newTestEnv)

	got, err := reg.Resolve("pkg:item")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(got, value.NumberFromInt(7)) {
		t.Fatalf("got %#v, want 7", got)
	}
}

func TestResolveCaching(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "once.si"), []byte("export 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	calls := 0
	evaluator := func(src string, env *value.Env, reg *Registry) (value.Value, error) {
		calls++
		return value.NumberFromInt(1), nil
	}
	reg := NewRegistry(dir, nil, evaluator, newTestEnv)

	if _, err := reg.Resolve("once"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.Resolve("once"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 evaluation, got %d", calls)
	}
}

func TestResolveCycleDetection(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.si"), []byte("import a\nexport 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	var reg *Registry
	evaluator := func(src string, env *value.Env, r *Registry) (value.Value, error) {
		// Simulate the evaluator re-entering Resolve for its own "import a".
		return reg.Resolve("a")
	}
	reg = NewRegistry(dir, nil, evaluator, newTestEnv)

	_, err := reg.Resolve("a")
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	outer, ok := err.(*Error)
	if !ok || outer.Kind != EvalFailed {
		t.Fatalf("got %v, want an EvalFailed wrapping the cycle", err)
	}
	inner, ok := outer.Unwrap().(*Error)
	if !ok || inner.Kind != Cycle {
		t.Fatalf("got %v, want the wrapped cause to be Cycle", outer.Unwrap())
	}
}
