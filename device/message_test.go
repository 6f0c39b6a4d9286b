package device

import "testing"

func TestParseMessageVerbatim(t *testing.T) {
	m, err := ParseMessage("[MSG:Reset to continue]")
	if err != nil {
		t.Fatal(err)
	}
	if m.Message != "Reset to continue" {
		t.Errorf("got %q", m.Message)
	}

	// bodies are byte-for-byte, padding included
	m, err = ParseMessage("[MSG:  two  spaces ]")
	if err != nil {
		t.Fatal(err)
	}
	if m.Message != "  two  spaces " {
		t.Errorf("got %q", m.Message)
	}
}

func TestParseMessageEmptyBody(t *testing.T) {
	m, err := ParseMessage("[MSG:]")
	if err != nil {
		t.Fatal(err)
	}
	if m.Message != "" {
		t.Errorf("got %q", m.Message)
	}
}

func TestParseEchoMessage(t *testing.T) {
	e, err := ParseEchoMessage("[echo:G1X10]")
	if err != nil {
		t.Fatal(err)
	}
	if e.Echo != "G1X10" {
		t.Errorf("got %q", e.Echo)
	}
	if IsEchoResponse("[ECHO:G1X10]") {
		t.Error("echo prefix is lowercase on the wire")
	}
}

func TestParseHelp(t *testing.T) {
	h, err := ParseHelp("[HLP:$$ $# $G  $I $N]")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"$$", "$#", "$G", "$I", "$N"}
	if len(h.Values) != len(want) {
		t.Fatalf("got %v", h.Values)
	}
	for i := range want {
		if h.Values[i] != want[i] {
			t.Errorf("token %d: expected %q got %q", i, want[i], h.Values[i])
		}
	}
}

func TestParseGCodeState(t *testing.T) {
	g, err := ParseGCodeState("[GC:G0 G54 G17  G21]")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"G0", "G54", "G17", "G21"}
	if len(g.Values) != len(want) {
		t.Fatalf("got %v", g.Values)
	}
	for i := range want {
		if g.Values[i] != want[i] {
			t.Errorf("token %d: expected %q got %q", i, want[i], g.Values[i])
		}
	}
}
