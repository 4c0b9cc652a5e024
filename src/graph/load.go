// Package graph supplies module graphs to the guard outside of a bundler:
// from JSON files or by collecting import requests from a source tree.
package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sofmeright/fedguard/src/guard"
)

// statsModule covers both the native graph format and webpack stats modules.
type statsModule struct {
	Resource     string     `json:"resource"`
	Dependencies []statsDep `json:"dependencies"`

	Identifier       string        `json:"identifier"`
	NameForCondition string        `json:"nameForCondition"`
	Reasons          []statsReason `json:"reasons"`
	Modules          []statsModule `json:"modules"`
}

type statsDep struct {
	Request string `json:"request"`
}

type statsReason struct {
	ModuleIdentifier string `json:"moduleIdentifier"`
	UserRequest      string `json:"userRequest"`
}

type statsFile struct {
	Modules  []statsModule `json:"modules"`
	Children []statsFile   `json:"children"`
}

// LoadFile reads a module graph from a JSON file.
func LoadFile(path string) ([]guard.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph: %w", err)
	}
	defer f.Close()

	mods, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return mods, nil
}

// Decode reads a graph in either format:
//
//	{"modules":[{"resource":"/abs/a.ts","dependencies":[{"request":"next/image"}]}]}
//
// or webpack stats JSON, where dependencies are rebuilt from each module's
// reasons: the reason's origin module requested the module with userRequest.
// Entries missing the fields needed are skipped.
func Decode(r io.Reader) ([]guard.Module, error) {
	var sf statsFile
	if err := json.NewDecoder(r).Decode(&sf); err != nil {
		return nil, err
	}

	var all []statsModule
	flatten(&all, sf)

	// identifier -> resource path, for resolving reason origins.
	resources := make(map[string]string, len(all))
	for _, m := range all {
		if m.Identifier == "" {
			continue
		}
		if res := m.resource(); res != "" {
			resources[m.Identifier] = res
		}
	}

	b := newBuilder()
	for _, m := range all {
		if m.Identifier == "" || len(m.Dependencies) > 0 {
			deps := make([]guard.Dependency, 0, len(m.Dependencies))
			for _, d := range m.Dependencies {
				deps = append(deps, guard.Dependency{Request: d.Request})
			}
			b.add(m.resource(), deps...)
		}
		for _, reason := range m.Reasons {
			origin := resources[reason.ModuleIdentifier]
			if origin == "" || reason.UserRequest == "" {
				continue
			}
			b.add(origin, guard.Dependency{Request: reason.UserRequest})
		}
	}
	return b.modules(), nil
}

func (m statsModule) resource() string {
	if m.Resource != "" {
		return m.Resource
	}
	return m.NameForCondition
}

func flatten(dst *[]statsModule, sf statsFile) {
	var walk func(mods []statsModule)
	walk = func(mods []statsModule) {
		for _, m := range mods {
			*dst = append(*dst, m)
			walk(m.Modules)
		}
	}
	walk(sf.Modules)
	for _, child := range sf.Children {
		flatten(dst, child)
	}
}

// builder merges dependencies per resource, keeping first-seen order.
// Modules without a resource are kept separately, one entry each.
type builder struct {
	order []string
	deps  map[string][]guard.Dependency
	anon  []guard.Module
}

func newBuilder() *builder {
	return &builder{deps: make(map[string][]guard.Dependency)}
}

func (b *builder) add(resource string, deps ...guard.Dependency) {
	if resource == "" {
		b.anon = append(b.anon, guard.Module{Dependencies: deps})
		return
	}
	if _, ok := b.deps[resource]; !ok {
		b.order = append(b.order, resource)
		b.deps[resource] = nil
	}
	b.deps[resource] = append(b.deps[resource], deps...)
}

func (b *builder) modules() []guard.Module {
	out := make([]guard.Module, 0, len(b.order)+len(b.anon))
	for _, res := range b.order {
		out = append(out, guard.Module{Resource: res, Dependencies: b.deps[res]})
	}
	return append(out, b.anon...)
}
