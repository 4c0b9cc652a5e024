package plugin

import (
	"fmt"

	"github.com/sofmeright/fedguard/src/guard"
)

// GraphHook receives the resolved module graph of one build.
type GraphHook func(modules []guard.Module) error

// Hooks is the extension point a build system exposes to the guard.
type Hooks interface {
	OnModuleGraphReady(name string, fn GraphHook)
}

type namedHook struct {
	name string
	fn   GraphHook
}

// Pipeline is a minimal in-process build pipeline. It runs the registered
// graph hooks once the module graph is complete.
type Pipeline struct {
	hooks []namedHook
}

// OnModuleGraphReady implements Hooks.
func (p *Pipeline) OnModuleGraphReady(name string, fn GraphHook) {
	p.hooks = append(p.hooks, namedHook{name: name, fn: fn})
}

// Complete hands modules to every hook in registration order and stops at
// the first failure.
func (p *Pipeline) Complete(modules []guard.Module) error {
	for _, h := range p.hooks {
		if err := h.fn(modules); err != nil {
			return fmt.Errorf("%s: %w", h.name, err)
		}
	}
	return nil
}
