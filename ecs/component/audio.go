package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named sound players. Play flags are consumed by the audio
// system once per frame.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
}

// Request flags the named sound for playback and reports whether it exists.
func (a *Audio) Request(name string) bool {
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

// AddSound registers a player under name.
func (a *Audio) AddSound(name string, p *audio.Player, volume float64) {
	a.Names = append(a.Names, name)
	a.Players = append(a.Players, p)
	a.Volume = append(a.Volume, volume)
	a.Play = append(a.Play, false)
}

var AudioComponent = NewComponent[Audio]()
