package event

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/parameter"
)

func TestQueueFIFO(t *testing.T) {
	eq := NewEventQueue()
	eq.Push(WindowCreated("a"))
	eq.Push(FocusChanged("a"))
	eq.Push(CommandEvent(input.Navigate(1)))
	eq.Push(WindowDestroyed("a"))

	got := eq.Consume()
	want := []EventType{EventWindowCreated, EventFocusChanged, EventCommand, EventWindowDestroyed}
	if len(got) != len(want) {
		t.Fatalf("Consume returned %d events, want %d", len(got), len(want))
	}
	for i, ev := range got {
		if ev.Type != want[i] {
			t.Errorf("event %d = %v, want %v", i, ev.Type, want[i])
		}
	}
	if got[2].Command != input.Navigate(1) {
		t.Errorf("command payload = %v", got[2].Command)
	}
	if eq.Len() != 0 || eq.Consume() != nil {
		t.Error("queue not empty after Consume")
	}
}

func TestQueueOverflowRejectsNewest(t *testing.T) {
	eq := NewEventQueue()
	for i := 0; i < parameter.EventQueueSize; i++ {
		if !eq.Push(WindowCreated(core.WindowRef(fmt.Sprint(i)))) {
			t.Fatalf("push %d rejected below capacity", i)
		}
	}
	if eq.Push(WindowCreated("overflow")) {
		t.Fatal("push accepted past capacity")
	}
	if eq.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", eq.Dropped())
	}

	got := eq.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Consume returned %d events, want %d", len(got), parameter.EventQueueSize)
	}
	if got[0].Window != "0" || got[len(got)-1].Window != core.WindowRef(fmt.Sprint(parameter.EventQueueSize-1)) {
		t.Errorf("unexpected order: first %s last %s", got[0].Window, got[len(got)-1].Window)
	}

	// Space is reclaimed after consumption and indices wrap
	for i := 0; i < 10; i++ {
		if !eq.Push(FocusChanged("w")) {
			t.Fatalf("push %d rejected after drain", i)
		}
	}
	if n := len(eq.Consume()); n != 10 {
		t.Errorf("Consume after wrap returned %d, want 10", n)
	}
}

func TestQueueReadySignal(t *testing.T) {
	eq := NewEventQueue()
	select {
	case <-eq.Ready():
		t.Fatal("ready signalled on empty queue")
	default:
	}

	eq.Push(FocusChanged("a"))
	eq.Push(FocusChanged("b"))

	select {
	case <-eq.Ready():
	default:
		t.Fatal("ready not signalled after push")
	}
	// Multiple pushes coalesce into one signal
	select {
	case <-eq.Ready():
		t.Fatal("second signal without new push")
	default:
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	eq := NewEventQueue()
	const producers = 4
	const perProducer = 50 // total stays under capacity

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				eq.Push(CommandEvent(input.Navigate(1)))
			}
		}(p)
	}
	wg.Wait()

	total := 0
	for batch := eq.Consume(); batch != nil; batch = eq.Consume() {
		total += len(batch)
	}
	if total != producers*perProducer {
		t.Errorf("consumed %d events, want %d", total, producers*perProducer)
	}
}
