package system

import (
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/puzzle"
)

// Callbacks turns puzzle notifications into world events.
func Callbacks(w *ecs.World) puzzle.Callbacks {
	return puzzle.Callbacks{
		Init: func(*puzzle.Puzzle) {
			w.Events().Push(ecs.Event{Type: ecs.EventInit})
		},
		Destroy: func(*puzzle.Puzzle) {
			w.Events().Push(ecs.Event{Type: ecs.EventDestroy})
		},
		Resolve: func(p *puzzle.Puzzle) {
			w.Events().Push(ecs.Event{Type: ecs.EventResolve, Data: ecs.ResolveEvent{Forced: p.Forced()}})
		},
	}
}
