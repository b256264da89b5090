package system

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/puzzle"
)

var ErrNoPuzzle = errors.New("system: no puzzle loaded")

// Shuffle scatters the pieces and announces it.
func Shuffle(w *ecs.World) error {
	p := w.Puzzle()
	if p == nil || !p.IsReady() {
		return ErrNoPuzzle
	}
	p.Shuffle()
	w.Events().Push(ecs.Event{Type: ecs.EventShuffle})
	w.SetStatus("Shuffled")
	return nil
}

// Resolve snaps every piece into place. The puzzle's resolve callback
// emits the event.
func Resolve(w *ecs.World) error {
	p := w.Puzzle()
	if p == nil || !p.IsReady() {
		return ErrNoPuzzle
	}
	if p.State().Resolved {
		return nil
	}
	p.Resolve()
	return nil
}

// SetPreset re-splits the image with the named grid preset.
func SetPreset(w *ecs.World, name string) error {
	p := w.Puzzle()
	if p == nil {
		return ErrNoPuzzle
	}
	if err := p.SetGridSize(context.Background(), puzzle.GridSpec{Preset: name}); err != nil {
		w.SetStatus(fmt.Sprintf("Grid %s failed: %v", name, err))
		return err
	}
	return nil
}

// CopyCode puts the share code of the current layout on the clipboard.
func CopyCode(w *ecs.World, clip Clipboard) (string, error) {
	p := w.Puzzle()
	if p == nil || !p.IsReady() {
		return "", ErrNoPuzzle
	}
	code := p.ShareCode()
	if clip != nil {
		if err := clip.WriteText(code); err != nil {
			w.SetStatus("Copy failed")
			return code, err
		}
	}
	w.SetStatus("Copied " + code)
	return code, nil
}

// PasteCode rebuilds the layout from a share code on the clipboard.
func PasteCode(w *ecs.World, clip Clipboard) error {
	p := w.Puzzle()
	if p == nil {
		return ErrNoPuzzle
	}
	if clip == nil {
		return ErrNoClipboard
	}
	code, err := clip.ReadText()
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if err := p.LoadShareCode(context.Background(), code); err != nil {
		w.SetStatus(fmt.Sprintf("Bad code %q", code))
		return err
	}
	return nil
}
