package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/prefabs"
	"github.com/milk9111/jigsaw/puzzle"
)

// ScriptLoader returns the source of a hook script.
type ScriptLoader func(path string) ([]byte, error)

// HookSystem runs the tengo script bound to each lifecycle event. Scripts
// see an `event` map and may call notify(msg) and play(sound).
type HookSystem struct {
	hooks map[ecs.EventType]string
	load  ScriptLoader
	cache map[string]*tengo.Compiled
	// failed remembers paths that did not compile until invalidated.
	failed map[string]error
}

// NewHookSystem binds event names to script paths.
func NewHookSystem(hooks map[string]string, load ScriptLoader) *HookSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	h := &HookSystem{load: load}
	h.SetHooks(hooks)
	return h
}

// SetHooks replaces the bindings and drops compiled scripts.
func (h *HookSystem) SetHooks(hooks map[string]string) {
	h.hooks = make(map[ecs.EventType]string, len(hooks))
	for ev, path := range hooks {
		if path = strings.TrimSpace(path); path != "" {
			h.hooks[ecs.EventType(ev)] = path
		}
	}
	h.Invalidate("")
}

// Invalidate forgets the compiled script at path so that the next event
// recompiles it. An empty path forgets every script.
func (h *HookSystem) Invalidate(path string) {
	if path == "" {
		h.cache = map[string]*tengo.Compiled{}
		h.failed = map[string]error{}
		return
	}
	for _, p := range h.hooks {
		if p == path || strings.HasSuffix(path, "/"+p) || strings.HasSuffix(p, "/"+path) {
			delete(h.cache, p)
			delete(h.failed, p)
		}
	}
}

func (h *HookSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, ev := range w.Events().Items() {
		path, ok := h.hooks[ev.Type]
		if !ok {
			continue
		}
		if err := h.run(w, path, ev); err != nil {
			puzzle.Logger().Warn("hooks: script failed", "event", string(ev.Type), "script", path, "err", err)
		}
	}
}

func (h *HookSystem) run(w *ecs.World, path string, ev ecs.Event) error {
	compiled, err := h.compiled(path)
	if err != nil {
		return err
	}
	if err := compiled.Set("event", eventData(w, ev)); err != nil {
		return err
	}
	if err := compiled.Set("notify", notifyFunc(w)); err != nil {
		return err
	}
	if err := compiled.Set("play", playFunc(w)); err != nil {
		return err
	}
	return compiled.Run()
}

func (h *HookSystem) compiled(path string) (*tengo.Compiled, error) {
	if c, ok := h.cache[path]; ok {
		return c, nil
	}
	if err, ok := h.failed[path]; ok {
		return nil, err
	}
	c, err := h.compile(path)
	if err != nil {
		h.failed[path] = err
		return nil, err
	}
	h.cache[path] = c
	return c, nil
}

func (h *HookSystem) compile(path string) (*tengo.Compiled, error) {
	src, err := h.load(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("event", map[string]any{})
	_ = script.Add("notify", &tengo.UserFunction{Name: "notify"})
	_ = script.Add("play", &tengo.UserFunction{Name: "play"})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return compiled, nil
}

func eventData(w *ecs.World, ev ecs.Event) map[string]any {
	data := map[string]any{"type": string(ev.Type)}
	if p := w.Puzzle(); p != nil {
		size := p.GridSize()
		data["grid_x"] = size.X
		data["grid_y"] = size.Y
		data["pieces"] = size.Count()
		data["seed"] = fmt.Sprint(p.Seed())
		data["image"] = p.Image()
		if p.IsReady() {
			data["share"] = p.ShareCode()
		}
		if s := p.State(); s != nil {
			data["components"] = s.Components()
			data["resolved"] = s.Resolved
		}
	}
	switch d := ev.Data.(type) {
	case ecs.MergeEvent:
		data["node"] = d.Node
		data["neighbor"] = d.Neighbor
		data["kind"] = d.Kind.String()
		data["group"] = d.Group
		data["size"] = d.Size
	case ecs.ResolveEvent:
		data["forced"] = d.Forced
	}
	return data
}

func notifyFunc(w *ecs.World) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "notify", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		msg, _ := tengo.ToString(args[0])
		w.SetStatus(msg)
		return tengo.TrueValue, nil
	}}
}

func playFunc(w *ecs.World) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		if PlaySound(w, strings.TrimSpace(name)) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
}
