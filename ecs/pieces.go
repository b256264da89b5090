package ecs

import (
	"fmt"

	"github.com/milk9111/jigsaw/ecs/component"
	"github.com/milk9111/jigsaw/puzzle"
)

// SpawnPiece creates the entity that draws p with sprite. Spawning the
// same piece id twice replaces the earlier entity.
func SpawnPiece(w *World, p *puzzle.Piece, sprite *component.Sprite) (Entity, error) {
	if w == nil || p == nil {
		return 0, fmt.Errorf("ecs: spawn piece: %w", component.ErrNilComponent)
	}
	if old, ok := w.pieces[p.ID()]; ok {
		DestroyEntity(w, old)
	}
	e := CreateEntity(w)
	if err := Add(w, e, component.PieceComponent.Kind(), &component.Piece{ID: p.ID(), Piece: p}); err != nil {
		DestroyEntity(w, e)
		return 0, err
	}
	if err := Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		DestroyEntity(w, e)
		return 0, err
	}
	w.pieces[p.ID()] = e
	return e, nil
}

// PieceEntity finds the entity of a piece id.
func PieceEntity(w *World, id string) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	e, ok := w.pieces[id]
	if !ok || !IsAlive(w, e) {
		return 0, false
	}
	return e, true
}

// PieceCount is the number of spawned piece entities.
func PieceCount(w *World) int {
	if w == nil {
		return 0
	}
	return len(w.pieces)
}

// ClearPieces destroys every piece entity. Sprite images are deallocated
// by the caller.
func ClearPieces(w *World) []*component.Sprite {
	if w == nil {
		return nil
	}
	var sprites []*component.Sprite
	for id, e := range w.pieces {
		if s, ok := Get(w, e, component.SpriteComponent.Kind()); ok {
			sprites = append(sprites, s)
		}
		DestroyEntity(w, e)
		delete(w.pieces, id)
	}
	return sprites
}
