package system

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/jigsaw/common"
	"github.com/milk9111/jigsaw/ecs"
	"github.com/milk9111/jigsaw/ecs/component"
	"github.com/milk9111/jigsaw/prefabs"
	"github.com/milk9111/jigsaw/puzzle"
)

// AudioSystem plays the sounds requested since the last frame.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players))
		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := audioComp.Players[i]
			if player == nil {
				continue
			}
			player.SetVolume(common.Clamp(audioComp.Volume[i], 0, 1))
			if err := player.Rewind(); err != nil {
				puzzle.Logger().Warn("audio: rewind", "sound", audioComp.Names[i], "err", err)
				continue
			}
			player.Play()
		}
	})
}

// PlayerOpener creates a player for an asset file.
type PlayerOpener func(file string) (*audio.Player, error)

// SpawnSounds creates the entity holding every configured sound. A sound
// that fails to open is registered without a player so that requests for
// it stay silent.
func SpawnSounds(w *ecs.World, sounds []prefabs.AudioSpec, open PlayerOpener) (ecs.Entity, error) {
	comp := &component.Audio{}
	for _, s := range sounds {
		var p *audio.Player
		if open != nil {
			var err error
			if p, err = open(s.File); err != nil {
				puzzle.Logger().Warn("audio: open", "sound", s.Name, "file", s.File, "err", err)
				p = nil
			}
		}
		comp.AddSound(s.Name, p, s.Volume)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AudioComponent.Kind(), comp); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

// PlaySound flags a configured sound for the next audio update.
func PlaySound(w *ecs.World, name string) bool {
	_, comp, ok := ecs.First(w, component.AudioComponent.Kind())
	if !ok {
		return false
	}
	return comp.Request(name)
}
