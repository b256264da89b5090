package ecs

import (
	"github.com/milk9111/jigsaw/ecs/component"
	"github.com/milk9111/jigsaw/puzzle"
)

// World owns entities, component stores, systems and the puzzle they
// present.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	events    EventQueue

	puzzle *puzzle.Puzzle
	pieces map[string]Entity
	status string
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		pieces:    make(map[string]Entity),
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs all systems once, then drops events nobody drained.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPuzzle attaches the puzzle the systems drive.
func (w *World) SetPuzzle(p *puzzle.Puzzle) {
	if w == nil {
		return
	}
	w.puzzle = p
}

// Puzzle returns the attached puzzle, if any.
func (w *World) Puzzle() *puzzle.Puzzle {
	if w == nil {
		return nil
	}
	return w.puzzle
}

// SetStatus sets the one-line message shown by the HUD.
func (w *World) SetStatus(s string) {
	if w == nil {
		return
	}
	w.status = s
}

func (w *World) Status() string {
	if w == nil {
		return ""
	}
	return w.status
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. A piece
// entity also leaves the piece index.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	if pc, ok := Get(w, e, component.PieceComponent.Kind()); ok && w.pieces[pc.ID] == e {
		delete(w.pieces, pc.ID)
	}
	for _, s := range w.stores {
		if s.Has(e) {
			s.Remove(e)
		}
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// Add sets the component of kind k on e.
func Add[T any](w *World, e Entity, k component.ComponentKind[T], v *T) error {
	if !k.Valid() {
		return component.ErrInvalidComponentKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(k.ID(), true).Set(e, v)
	return nil
}

// Get returns the component of kind k on e.
func Get[T any](w *World, e Entity, k component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v, ok := w.store(k.ID(), false).Get(e).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	return IsAlive(w, e) && w.store(k.ID(), false).Has(e)
}

func Remove[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(k.ID(), false).Remove(e)
}

// First returns the first entity holding kind k.
func First[T any](w *World, k component.ComponentKind[T]) (Entity, *T, bool) {
	if w == nil {
		return 0, nil, false
	}
	s := w.store(k.ID(), false)
	for i, e := range s.Entities() {
		if w.entities.isAlive(e) {
			return e, s.Values()[i].(*T), true
		}
	}
	return 0, nil, false
}

// ForEach calls fn for every live entity holding kind k. fn must not add
// or remove components of kind k.
func ForEach[T any](w *World, k component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	s := w.store(k.ID(), false)
	for i, e := range s.Entities() {
		if w.entities.isAlive(e) {
			fn(e, s.Values()[i].(*T))
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range IntersectEntities(sa, sb) {
		if w.entities.isAlive(e) {
			fn(e, sa.Get(e).(*A), sb.Get(e).(*B))
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil {
		return
	}
	sa, sb, sc := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range IntersectEntities(sa, sb, sc) {
		if w.entities.isAlive(e) {
			fn(e, sa.Get(e).(*A), sb.Get(e).(*B), sc.Get(e).(*C))
		}
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil {
		return
	}
	sa, sb, sc, sd := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false), w.store(kd.ID(), false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, e := range IntersectEntities(sa, sb, sc, sd) {
		if w.entities.isAlive(e) {
			fn(e, sa.Get(e).(*A), sb.Get(e).(*B), sc.Get(e).(*C), sd.Get(e).(*D))
		}
	}
}
