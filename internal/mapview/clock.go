package mapview

import "github.com/jonboulle/clockwork"

// clock stamps GeneratedAt on assembled maps. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for map assembly. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
