package module

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/suji-lang/suji/internal/value"
)

// VirtualNode is one entry of the in-memory virtual standard library tree
// rooted at "std" (spec §4.5). A node is either a Builtin value (a Go-backed
// function or map, already a value.Value — no source to evaluate) or a
// Source string (Suji source text evaluated the same way a filesystem
// module is), or a directory-like node with Children for further `:`
// navigation. Exactly one of Builtin/Source/Children should be set.
type VirtualNode struct {
	Builtin  value.Value
	Source   string
	Children map[string]*VirtualNode
}

// Registry resolves import paths (spec §4.5 "Resolution sources, in
// order"): the virtual standard library, then the filesystem rooted at
// BaseDir. It caches modules by canonical path and detects import cycles
// via an IN-PROGRESS marker.
type Registry struct {
	BaseDir string

	virtual   map[string]*VirtualNode
	evaluator SourceEvaluator
	newEnv    func() *value.Env

	cache   map[string]*value.Module
	loading map[string]bool
}

// NewRegistry builds a Registry. virtualRoot is the root of the "std" tree
// (typically built by internal/stdlib); evaluator parses and evaluates a
// module source against a fresh env; newEnv produces an environment
// configured identically to the top-level program environment, per spec
// §4.5's "fresh env" requirement.
func NewRegistry(baseDir string, virtualRoot map[string]*VirtualNode, evaluator SourceEvaluator, newEnv func() *value.Env) *Registry {
	return &Registry{
		BaseDir:   baseDir,
		virtual:   virtualRoot,
		evaluator: evaluator,
		newEnv:    newEnv,
		cache:     make(map[string]*value.Module),
		loading:   make(map[string]bool),
	}
}

// Resolve looks up an import path such as "std", "std:json", or
// "a:b:item" (spec §4.5), force-loading every module on the path and
// returning the final value: a module's export for a whole-module import,
// or the indexed member for a nested path.
func (r *Registry) Resolve(path string) (value.Value, error) {
	segs := strings.Split(path, ":")
	if len(segs) == 0 || segs[0] == "" {
		return nil, &Error{Kind: NotFound, Path: path}
	}

	mod, err := r.resolveRoot(segs[0])
	if err != nil {
		return nil, err
	}
	if err := r.ForceLoad(mod); err != nil {
		return nil, err
	}

	current := mod.Export
	consumedPath := segs[0]
	for _, seg := range segs[1:] {
		m, ok := current.(*value.Map)
		if !ok {
			return nil, &Error{Kind: NotAMap, Path: consumedPath}
		}
		key, err := value.ToMapKey(value.String(seg))
		if err != nil {
			return nil, &Error{Kind: NotFound, Path: path}
		}
		next, ok := m.Get(key)
		if !ok {
			return nil, &Error{Kind: NotFound, Path: path}
		}
		if sub, ok := next.(*value.Module); ok {
			if err := r.ForceLoad(sub); err != nil {
				return nil, err
			}
			next = sub.Export
		}
		current = next
		consumedPath += ":" + seg
	}
	return current, nil
}

// ForceLoad evaluates a module's source (if not already loaded) and caches
// its export value under its canonical path, per spec §4.5 "Caching and
// cycles". A module resolved straight from the virtual stdlib's Builtin
// field is already "loaded" and needs no evaluation.
func (r *Registry) ForceLoad(mod *value.Module) error {
	if mod.Loaded {
		return nil
	}
	cached, ok := r.cache[mod.Path]
	if ok && cached.Loaded {
		mod.Export = cached.Export
		mod.Loaded = true
		return nil
	}
	if r.loading[mod.Path] {
		return &Error{Kind: Cycle, Path: mod.Path}
	}

	src, ok := mod.Export.(pendingSource)
	if !ok {
		return &Error{Kind: NotFound, Path: mod.Path}
	}

	r.loading[mod.Path] = true
	r.cache[mod.Path] = mod
	defer delete(r.loading, mod.Path)

	export, err := r.evaluator(src.text, r.newEnv(), r)
	if err != nil {
		return &Error{Kind: EvalFailed, Path: mod.Path, Err: err}
	}
	mod.Export = export
	mod.Loaded = true
	return nil
}

// pendingSource is a sentinel placeholder value.Value used as a module's
// Export before it has been force-loaded, carrying the source text to
// evaluate. It never escapes this package — ForceLoad always replaces it.
type pendingSource struct{ text string }

func (pendingSource) Kind() string   { return "pending_source" }
func (pendingSource) String() string { return "<pending module source>" }

// resolveRoot resolves the first path segment to an unloaded or cached
// module handle, trying the virtual stdlib before the filesystem (spec
// §4.5 resolution order).
func (r *Registry) resolveRoot(name string) (*value.Module, error) {
	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}
	if node, ok := r.virtual[name]; ok {
		return r.moduleFromVirtualNode(name, node), nil
	}
	return r.resolveFromFilesystem(name)
}

func (r *Registry) moduleFromVirtualNode(path string, node *VirtualNode) *value.Module {
	if node.Builtin != nil {
		return &value.Module{Path: path, Loaded: true, Export: node.Builtin}
	}
	if node.Children != nil {
		m := value.NewMap()
		for name, child := range node.Children {
			childMod := r.moduleFromVirtualNode(path+":"+name, child)
			key, _ := value.ToMapKey(value.String(name))
			m.Set(key, childMod)
		}
		return &value.Module{Path: path, Loaded: true, Export: m}
	}
	return &value.Module{Path: path, Export: pendingSource{text: node.Source}}
}

// resolveFromFilesystem implements "file `name.si`, or a directory with
// child `name.si` files" (spec §4.5). A directory module's export is a map
// of lazily-loadable child Module handles, one per `*.si` file found.
func (r *Registry) resolveFromFilesystem(name string) (*value.Module, error) {
	filePath := filepath.Join(r.BaseDir, name+".si")
	if data, err := os.ReadFile(filePath); err == nil {
		return &value.Module{Path: name, Export: pendingSource{text: string(data)}}, nil
	}

	dirPath := filepath.Join(r.BaseDir, name)
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, &Error{Kind: NotFound, Path: name}
	}
	m := value.NewMap()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".si") {
			continue
		}
		childName := strings.TrimSuffix(entry.Name(), ".si")
		data, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			continue
		}
		childPath := name + ":" + childName
		child := &value.Module{Path: childPath, Export: pendingSource{text: string(data)}}
		key, _ := value.ToMapKey(value.String(childName))
		m.Set(key, child)
	}
	return &value.Module{Path: name, Loaded: true, Export: m}, nil
}
