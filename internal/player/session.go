// Package player owns playback state for one client session. The session
// object replaces a free-floating "currently playing" pointer: whoever
// constructs it owns it, and because all playback goes through one session,
// at most one track is ever active.
package player

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Device is the opaque playback engine behind a session. Implementations
// wrap the platform audio/video APIs; the session only drives the contract.
type Device interface {
	Play(ctx context.Context, url string) error
	Pause() error
	Resume() error
	Stop() error
	Seek(position time.Duration) error
}

// State is the session's playback state.
type State int

const (
	Idle State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Track identifies the media record currently loaded into the session.
type Track struct {
	ID     string
	Title  string
	Artist string
	URL    string
}

// Event describes a state transition delivered to listeners.
type Event struct {
	State State
	Track *Track
}

// Listener receives session state transitions.
type Listener func(Event)

// Session serializes playback control over a single device.
type Session struct {
	mu        sync.Mutex
	device    Device
	current   *Track
	state     State
	listeners []Listener
}

// NewSession returns an idle session over the given device.
func NewSession(device Device) *Session {
	return &Session{device: device}
}

// Subscribe registers a listener for state transitions. Listeners are
// invoked after the transition completes, outside the session lock.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Play starts the given track. Any track already playing or paused is
// stopped first, so starting playback from one screen silences the other.
func (s *Session) Play(ctx context.Context, track Track) error {
	s.mu.Lock()
	if s.state != Idle {
		if err := s.device.Stop(); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("stop current track: %w", err)
		}
		s.current = nil
		s.state = Idle
	}
	if err := s.device.Play(ctx, track.URL); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("start playback: %w", err)
	}
	s.current = &track
	s.state = Playing
	s.unlockAndNotify()
	return nil
}

// Pause pauses the current track. Pausing an idle session is an error.
func (s *Session) Pause() error {
	s.mu.Lock()
	if s.state != Playing {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot pause while %s", state)
	}
	if err := s.device.Pause(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = Paused
	s.unlockAndNotify()
	return nil
}

// Resume continues a paused track.
func (s *Session) Resume() error {
	s.mu.Lock()
	if s.state != Paused {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot resume while %s", state)
	}
	if err := s.device.Resume(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = Playing
	s.unlockAndNotify()
	return nil
}

// Stop halts playback and clears the current track. Stopping an idle
// session is a no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.state == Idle {
		s.mu.Unlock()
		return nil
	}
	if err := s.device.Stop(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = nil
	s.state = Idle
	s.unlockAndNotify()
	return nil
}

// Seek moves the playhead of the current track.
func (s *Session) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle {
		return fmt.Errorf("cannot seek while idle")
	}
	return s.device.Seek(position)
}

// Current returns the loaded track and state. ok is false when idle.
func (s *Session) Current() (track Track, state State, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Track{}, s.state, false
	}
	return *s.current, s.state, true
}

// unlockAndNotify snapshots listeners and state, releases the lock, then
// delivers the event. Listeners may call back into the session.
func (s *Session) unlockAndNotify() {
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	event := Event{State: s.state}
	if s.current != nil {
		track := *s.current
		event.Track = &track
	}
	s.mu.Unlock()
	for _, l := range listeners {
		l(event)
	}
}
