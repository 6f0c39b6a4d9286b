package comm

import (
	"testing"
	"time"

	"github.com/vgerber/grbl-interface/grbl"
)

func TestSimulatorLifecycle(t *testing.T) {
	sim := NewSimulator(nil)
	if err := sim.Write("$$"); err == nil {
		t.Error("writes before open must fail")
	}
	if err := sim.Open(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Open(); err == nil {
		t.Error("double open must fail")
	}
	if err := sim.Close(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Close(); err == nil {
		t.Error("double close must fail")
	}
}

func TestSimulatorScript(t *testing.T) {
	sim := NewSimulator(func(line string) []string {
		if line == grbl.GetInfo+"\n" {
			return []string{"[VER:1.1:sim]", "ok"}
		}
		return []string{"ok"}
	})
	if err := sim.Open(); err != nil {
		t.Fatal(err)
	}
	if err := sim.Write(grbl.GetInfo + "\n"); err != nil {
		t.Fatal(err)
	}
	lines := sim.ReadNewMessages(10 * time.Millisecond)
	if len(lines) != 2 || lines[0] != "[VER:1.1:sim]" {
		t.Errorf("got %v", lines)
	}
	if w := sim.Written(); len(w) != 1 || w[0] != grbl.GetInfo+"\n" {
		t.Errorf("written: got %v", w)
	}
}

func TestSimulatorReadTimeoutBounded(t *testing.T) {
	sim := NewSimulator(nil)
	if err := sim.Open(); err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	lines := sim.ReadNewMessages(20 * time.Millisecond)
	if len(lines) != 0 {
		t.Errorf("got %v", lines)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("read blocked too long: %v", elapsed)
	}
}

func TestSimulatorInject(t *testing.T) {
	sim := NewSimulator(nil)
	if err := sim.Open(); err != nil {
		t.Fatal(err)
	}
	sim.Inject("<Idle|MPos:0,0>")
	lines := sim.ReadNewMessages(10 * time.Millisecond)
	if len(lines) != 1 || lines[0] != "<Idle|MPos:0,0>" {
		t.Errorf("got %v", lines)
	}
}
