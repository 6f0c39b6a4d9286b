package device

import (
	"strings"
	"testing"

	"github.com/vgerber/grbl-interface/grbl"
)

// the everything report from the firmware documentation examples
const fullReport = "<Idle:2|WPos:3.32,67|Bf:100,10|Ln:9|FS:100,23,20|PN:DRH|WCO:23.2,0|WCS:G55|Ov:10,12,115|A:TF|MPG:0|H:1,7|D:1|Sc:XYZABC|TLR:0|FW:test|In:-1>"

func TestParseReportAllFields(t *testing.T) {
	report, err := ParseReport(fullReport)
	if err != nil {
		t.Fatal(err)
	}

	if report.MachineState.Status != StatusIdle {
		t.Errorf("status: got %v", report.MachineState.Status)
	}
	if report.MachineState.SubStatus == nil || *report.MachineState.SubStatus != 2 {
		t.Errorf("sub status: got %v", report.MachineState.SubStatus)
	}

	if report.GlobalPosition != nil {
		t.Error("global position must be absent for a WPos report")
	}
	if len(report.LocalPosition) != 2 || report.LocalPosition[0] != 3.32 || report.LocalPosition[1] != 67 {
		t.Errorf("local position: got %v", report.LocalPosition)
	}

	if report.BufferState == nil || report.BufferState.BlockBuffersFree != 100 || report.BufferState.RxCharactersFree != 10 {
		t.Errorf("buffer state: got %+v", report.BufferState)
	}
	if report.LineNumber == nil || *report.LineNumber != 9 {
		t.Errorf("line number: got %v", report.LineNumber)
	}

	speed := report.MachineSpeed
	if speed == nil || speed.FeedRate != 100 || speed.SpindleProgrammedRPM != 23 {
		t.Fatalf("machine speed: got %+v", speed)
	}
	if speed.SpindleActualRPM == nil || *speed.SpindleActualRPM != 20 {
		t.Errorf("spindle actual rpm: got %v", speed.SpindleActualRPM)
	}

	wantSignals := []MachineSignal{DoorSwitchAsserted, ResetSwitchAsserted, FeedHoldSwitchAsserted}
	if len(report.MachineSignals) != len(wantSignals) {
		t.Fatalf("signals: got %v", report.MachineSignals)
	}
	for i := range wantSignals {
		if report.MachineSignals[i] != wantSignals[i] {
			t.Errorf("signal %d: expected %v got %v", i, wantSignals[i], report.MachineSignals[i])
		}
	}

	if len(report.LocalOffset) != 2 || report.LocalOffset[0] != 23.2 || report.LocalOffset[1] != 0 {
		t.Errorf("local offset: got %v", report.LocalOffset)
	}
	if report.MachineCoordinateSystem == nil || *report.MachineCoordinateSystem != "G55" {
		t.Errorf("coordinate system: got %v", report.MachineCoordinateSystem)
	}

	ov := report.OverrideValues
	if ov == nil || ov.FeedRatePercentage != 10 || ov.RapidsPercentage != 12 || ov.SpindleSpeedPercentage != 115 {
		t.Errorf("overrides: got %+v", ov)
	}

	wantAccessories := []AccessoryState{ToolChangePending, FloodCoolantEnabled}
	if len(report.AccessoryState) != len(wantAccessories) {
		t.Fatalf("accessories: got %v", report.AccessoryState)
	}
	for i := range wantAccessories {
		if report.AccessoryState[i] != wantAccessories[i] {
			t.Errorf("accessory %d: expected %v got %v", i, wantAccessories[i], report.AccessoryState[i])
		}
	}

	if report.PendantControl == nil || *report.PendantControl != PendantReleased {
		t.Errorf("pendant: got %v", report.PendantControl)
	}

	homing := report.HomingState
	if homing == nil || !homing.Homed {
		t.Fatalf("homing: got %+v", homing)
	}
	wantAxes := []grbl.Axis{grbl.AxisX, grbl.AxisY, grbl.AxisZ}
	if len(homing.HomedAxes) != len(wantAxes) {
		t.Fatalf("homed axes: got %v", homing.HomedAxes)
	}
	for i := range wantAxes {
		if homing.HomedAxes[i] != wantAxes[i] {
			t.Errorf("homed axis %d: expected %v got %v", i, wantAxes[i], homing.HomedAxes[i])
		}
	}

	if report.ArcMode == nil || *report.ArcMode != ArcDiameter {
		t.Errorf("arc mode: got %v", report.ArcMode)
	}
	if len(report.ScaledAxes) != 6 {
		t.Errorf("scaled axes: got %v", report.ScaledAxes)
	}
	if report.ToolLengthReferenceSet == nil || *report.ToolLengthReferenceSet {
		t.Errorf("tool length reference: got %v", report.ToolLengthReferenceSet)
	}
	if report.Firmware == nil || *report.Firmware != "test" {
		t.Errorf("firmware: got %v", report.Firmware)
	}
	if report.InputWaitResult == nil || *report.InputWaitResult {
		t.Errorf("input wait result: got %v", report.InputWaitResult)
	}
}

func TestParseReportGlobalPosition(t *testing.T) {
	report, err := ParseReport("<Run|MPos:0.000,1.500,-2.000>")
	if err != nil {
		t.Fatal(err)
	}
	if report.LocalPosition != nil {
		t.Error("local position must be absent for an MPos report")
	}
	if len(report.GlobalPosition) != 3 || report.GlobalPosition[2] != -2 {
		t.Errorf("global position: got %v", report.GlobalPosition)
	}
	if report.MachineState.SubStatus != nil {
		t.Errorf("sub status must be absent, got %v", report.MachineState.SubStatus)
	}
}

func TestParseReportRequiresPosition(t *testing.T) {
	for _, line := range []string{"<Idle>", "<Idle|Bf:10,5>", "<Idle|Pos:1,2>"} {
		if _, err := ParseReport(line); err == nil {
			t.Errorf("%q: expected failure without a machine position", line)
		}
	}
}

func TestParseReportUnknownStateName(t *testing.T) {
	if _, err := ParseReport("<Cruise|MPos:0,0>"); err == nil {
		t.Error("expected failure for unknown machine state")
	}
}

func TestParseReportUnknownTokenIgnored(t *testing.T) {
	report, err := ParseReport("<Idle|MPos:1,2|XYZZY:7>")
	if err != nil {
		t.Fatalf("unknown tokens must be ignored, got %v", err)
	}
	if len(report.GlobalPosition) != 2 {
		t.Errorf("position: got %v", report.GlobalPosition)
	}
}

func TestParseReportLastFieldWins(t *testing.T) {
	report, err := ParseReport("<Idle|MPos:1|Ln:3|Ln:9>")
	if err != nil {
		t.Fatal(err)
	}
	if report.LineNumber == nil || *report.LineNumber != 9 {
		t.Errorf("last occurrence must win, got %v", report.LineNumber)
	}
}

func TestParseReportFieldFailureAborts(t *testing.T) {
	cases := []struct {
		line  string
		kind  grbl.Kind
		value string
	}{
		{"<Idle|MPos:1|In:3>", grbl.NumericOutOfRange, "3"},
		{"<Idle|MPos:1|H:3>", grbl.NumericOutOfRange, "3"},
		{"<Idle|MPos:1|H:a>", grbl.MalformedGrammar, "a"},
		{"<Idle|MPos:1|PN:Q>", grbl.UnknownEnumValue, "Q"},
		{"<Idle|MPos:1|TLR:x>", grbl.MalformedGrammar, "x"},
	}
	for _, tc := range cases {
		_, err := ParseReport(tc.line)
		perr, ok := err.(*grbl.Error)
		if !ok {
			t.Fatalf("%q: expected *grbl.Error, got %v", tc.line, err)
		}
		if perr.Kind != tc.kind {
			t.Errorf("%q: expected kind %v, got %v", tc.line, tc.kind, perr.Kind)
		}
		if perr.Value != tc.value {
			t.Errorf("%q: expected value %q, got %q", tc.line, tc.value, perr.Value)
		}
		if !strings.HasPrefix(perr.Error(), "Report parsing failed: ") {
			t.Errorf("%q: field failures must carry the report scope, got %q", tc.line, perr.Error())
		}
	}
}

func TestParseReportPositionArity(t *testing.T) {
	if _, err := ParseReport("<Idle|MPos:1,2,3,4,5,6>"); err != nil {
		t.Errorf("six axes are valid: %v", err)
	}
	_, err := ParseReport("<Idle|MPos:1,2,3,4,5,6,7>")
	perr, ok := err.(*grbl.Error)
	if !ok || perr.Kind != grbl.WrongFieldCount {
		t.Errorf("seven axes must fail with WrongFieldCount, got %v", err)
	}
}

func TestSignalMaskFromReport(t *testing.T) {
	signals, err := ParseMachineSignals("PN:XPR")
	if err != nil {
		t.Fatal(err)
	}
	want := grbl.SignalLimitX | grbl.SignalProbe | grbl.SignalReset
	if mask := SignalMask(signals); mask != want {
		t.Errorf("expected mask %b, got %b", want, mask)
	}
}
