// Package player schedules a compiled event sequence in wall-clock time
// and drives a Sink with it. The transport (play/pause/stop/seek) is the
// whole contract; synthesis lives behind the Sink.
package player

import (
	"sort"
	"sync"
	"time"

	"github.com/texmexdex/motherchord/sequence"
)

// tickResolution bounds scheduling jitter.
const tickResolution = 5 * time.Millisecond

// Sink receives note edges as they come due. Silence must cut every
// sounding note; it is called on pause, stop and end of song.
type Sink interface {
	NoteOn(channel, pitch, velocity uint8)
	NoteOff(channel, pitch uint8)
	Silence()
}

type Player struct {
	sink Sink

	mu       sync.Mutex
	events   []sequence.Event
	duration float64
	playing  bool
	paused   bool
	start    time.Time // playback origin, shifted on resume and seek
	pausedAt time.Time
	idx      int
	stop     chan struct{}
	done     chan struct{}
}

func New(sink Sink) *Player {
	return &Player{sink: sink}
}

// Load replaces the current sequence. The slice is taken as immutable;
// the caller must not mutate it afterwards.
func (p *Player) Load(events []sequence.Event, duration float64) {
	p.Stop()
	p.mu.Lock()
	p.events = events
	p.duration = duration
	p.idx = 0
	p.mu.Unlock()
}

// Play starts playback, or resumes it after a pause without losing
// position. Returns false when nothing is loaded.
func (p *Player) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events) == 0 {
		return false
	}
	if p.paused {
		p.start = p.start.Add(time.Since(p.pausedAt))
		p.paused = false
		return true
	}
	if p.playing {
		return true
	}

	p.playing = true
	p.paused = false
	p.idx = 0
	p.start = time.Now()
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.run(p.stop, p.done)
	return true
}

func (p *Player) Pause() {
	p.mu.Lock()
	if !p.playing || p.paused {
		p.mu.Unlock()
		return
	}
	p.paused = true
	p.pausedAt = time.Now()
	p.mu.Unlock()
	p.sink.Silence()
}

func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	p.paused = false
	stop, done := p.stop, p.done
	p.mu.Unlock()

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	p.sink.Silence()
}

// Seek jumps to a position in seconds. Notes already sounding are cut
// rather than replayed.
func (p *Player) Seek(seconds float64) {
	p.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	p.idx = sort.Search(len(p.events), func(i int) bool {
		return p.events[i].Time >= seconds
	})
	now := time.Now()
	p.start = now.Add(-time.Duration(seconds * float64(time.Second)))
	if p.paused {
		p.pausedAt = now
	}
	p.mu.Unlock()
	p.sink.Silence()
}

// Position reports the current playback position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing && !p.paused {
		return 0
	}
	if p.paused {
		return p.pausedAt.Sub(p.start).Seconds()
	}
	return time.Since(p.start).Seconds()
}

// Playing reports whether the transport is running, including while
// paused.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Duration reports the loaded song length in seconds.
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

func (p *Player) run(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(tickResolution)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if p.paused {
			p.mu.Unlock()
			continue
		}

		now := time.Since(p.start).Seconds()
		var due []sequence.Event
		for p.idx < len(p.events) && p.events[p.idx].Time <= now {
			due = append(due, p.events[p.idx])
			p.idx++
		}
		finished := p.idx >= len(p.events)
		if finished {
			p.playing = false
		}
		p.mu.Unlock()

		for _, evt := range due {
			switch evt.Kind {
			case sequence.NoteOn:
				p.sink.NoteOn(evt.Channel, evt.Pitch, evt.Velocity)
			case sequence.NoteOff:
				p.sink.NoteOff(evt.Channel, evt.Pitch)
			}
		}

		if finished {
			p.sink.Silence()
			return
		}
	}
}
