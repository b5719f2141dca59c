package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeDevice records calls and can be told to fail.
type fakeDevice struct {
	mu      sync.Mutex
	calls   []string
	playErr error
}

func (d *fakeDevice) record(call string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)
}

func (d *fakeDevice) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *fakeDevice) Play(ctx context.Context, url string) error {
	if d.playErr != nil {
		return d.playErr
	}
	d.record("play " + url)
	return nil
}

func (d *fakeDevice) Pause() error  { d.record("pause"); return nil }
func (d *fakeDevice) Resume() error { d.record("resume"); return nil }
func (d *fakeDevice) Stop() error   { d.record("stop"); return nil }

func (d *fakeDevice) Seek(p time.Duration) error {
	d.record("seek " + p.String())
	return nil
}

func TestPlayStopsPreviousTrack(t *testing.T) {
	device := &fakeDevice{}
	session := NewSession(device)
	ctx := context.Background()

	if err := session.Play(ctx, Track{ID: "a", URL: "a.mp3"}); err != nil {
		t.Fatalf("play a: %v", err)
	}
	if err := session.Play(ctx, Track{ID: "b", URL: "b.mp3"}); err != nil {
		t.Fatalf("play b: %v", err)
	}

	want := []string{"play a.mp3", "stop", "play b.mp3"}
	got := device.Calls()
	if len(got) != len(want) {
		t.Fatalf("calls: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls: got %v want %v", got, want)
		}
	}

	track, state, ok := session.Current()
	if !ok || track.ID != "b" || state != Playing {
		t.Fatalf("expected track b playing, got %+v %s ok=%v", track, state, ok)
	}
}

func TestPauseResume(t *testing.T) {
	session := NewSession(&fakeDevice{})
	ctx := context.Background()

	if err := session.Pause(); err == nil {
		t.Error("pausing an idle session must fail")
	}

	if err := session.Play(ctx, Track{ID: "a", URL: "a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := session.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, state, _ := session.Current(); state != Paused {
		t.Fatalf("expected paused, got %s", state)
	}
	if err := session.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if _, state, _ := session.Current(); state != Playing {
		t.Fatalf("expected playing, got %s", state)
	}
}

func TestStopClearsTrack(t *testing.T) {
	session := NewSession(&fakeDevice{})

	if err := session.Stop(); err != nil {
		t.Fatalf("stopping idle session must be a no-op, got %v", err)
	}

	if err := session.Play(context.Background(), Track{ID: "a", URL: "a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := session.Stop(); err != nil {
		t.Fatal(err)
	}
	if _, state, ok := session.Current(); ok || state != Idle {
		t.Fatalf("expected idle with no track, got state=%s ok=%v", state, ok)
	}
}

func TestFailedPlayLeavesSessionIdle(t *testing.T) {
	device := &fakeDevice{playErr: errors.New("codec unavailable")}
	session := NewSession(device)

	if err := session.Play(context.Background(), Track{ID: "a", URL: "a.mp3"}); err == nil {
		t.Fatal("expected play error")
	}
	if _, state, ok := session.Current(); ok || state != Idle {
		t.Fatalf("failed play must leave session idle, got state=%s ok=%v", state, ok)
	}
}

func TestListenersObserveTransitions(t *testing.T) {
	session := NewSession(&fakeDevice{})

	var mu sync.Mutex
	var states []State
	session.Subscribe(func(e Event) {
		mu.Lock()
		states = append(states, e.State)
		mu.Unlock()
	})

	ctx := context.Background()
	if err := session.Play(ctx, Track{ID: "a", URL: "a.mp3"}); err != nil {
		t.Fatal(err)
	}
	if err := session.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := session.Stop(); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []State{Playing, Paused, Idle}
	if len(states) != len(want) {
		t.Fatalf("events: got %v want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("events: got %v want %v", states, want)
		}
	}
}
