package device

import "testing"

func TestParseResponseStatusOk(t *testing.T) {
	code, err := ParseResponseStatus("ok")
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Errorf("got %d", code)
	}
}

func TestParseResponseStatusError(t *testing.T) {
	code, err := ParseResponseStatus("error:2")
	if err != nil {
		t.Fatal(err)
	}
	if code != 2 {
		t.Errorf("got %d", code)
	}
}

func TestParseResponseStatusMalformed(t *testing.T) {
	for _, line := range []string{"error", "error:x", "okay"} {
		if _, err := ParseResponseStatus(line); err == nil {
			t.Errorf("%q: expected error", line)
		}
	}
}

func TestIsResponseStatus(t *testing.T) {
	if IsResponseStatus("okay") {
		t.Error("only the exact word ok is an acknowledgement")
	}
	if !IsResponseStatus("error:11") {
		t.Error("error lines are acknowledgements")
	}
}
