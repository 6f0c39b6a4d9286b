package device

import (
	"strconv"
	"testing"

	"github.com/vgerber/grbl-interface/grbl"
	"pgregory.net/rapid"
)

func TestParseSetting(t *testing.T) {
	s, err := ParseSetting("$32=72.001")
	if err != nil {
		t.Fatal(err)
	}
	if s.Index != 32 {
		t.Errorf("index: got %d", s.Index)
	}
	if s.Value != "72.001" {
		t.Errorf("value must be verbatim, got %q", s.Value)
	}
}

func TestParseSettingValueVerbatim(t *testing.T) {
	// values keep whatever the firmware printed, equals signs included
	s, err := ParseSetting("$74=my=pass")
	if err != nil {
		t.Fatal(err)
	}
	if s.Value != "my=pass" {
		t.Errorf("got %q", s.Value)
	}
}

func TestParseSettingBadIndex(t *testing.T) {
	if _, err := ParseSetting("$x=1"); err == nil {
		t.Error("expected error for non-numeric index")
	}
	if _, err := ParseSetting("$32"); err == nil {
		t.Error("expected error without a value")
	}
}

func TestParseSettingGroup(t *testing.T) {
	g, err := ParseSettingGroup("[SETTINGGROUP:30|29|X-axis]")
	if err != nil {
		t.Fatal(err)
	}
	if g.Index != 30 || g.ParentIndex != 29 || g.Name != "X-axis" {
		t.Errorf("got %+v", g)
	}
}

func TestParseSettingGroupFieldCount(t *testing.T) {
	_, err := ParseSettingGroup("[SETTINGGROUP:30|29]")
	perr, ok := err.(*grbl.Error)
	if !ok || perr.Kind != grbl.WrongFieldCount {
		t.Errorf("expected WrongFieldCount, got %v", err)
	}
}

func TestParseSettingDescription(t *testing.T) {
	d, err := ParseSettingDescription("[SETTING:0|27|Step pulse time|microseconds|6|#0.0|2.0|]")
	if err != nil {
		t.Fatal(err)
	}
	if d.Index != 0 || d.GroupIndex != 27 {
		t.Errorf("indices: got %+v", d)
	}
	if d.Description != "Step pulse time" || d.Unit != "microseconds" {
		t.Errorf("text fields: got %+v", d)
	}
	if d.ValueType != 6 || d.ValueFormat != "#0.0" || d.ValueMin != "2.0" {
		t.Errorf("value fields: got %+v", d)
	}
	if d.ValueMax != "" {
		t.Errorf("empty wire field must decode empty, got %q", d.ValueMax)
	}
}

func TestParseSettingDescriptionBadValueType(t *testing.T) {
	_, err := ParseSettingDescription("[SETTING:0|27|Step pulse time|microseconds|999h|#0.0|2.0|3.0]")
	perr, ok := err.(*grbl.Error)
	if !ok {
		t.Fatalf("expected *grbl.Error, got %v", err)
	}
	if perr.Kind != grbl.NumericOutOfRange {
		t.Errorf("expected NumericOutOfRange on value type, got %v", perr.Kind)
	}
	if perr.Value != "999h" {
		t.Errorf("offending value: got %q", perr.Value)
	}
}

func TestParseSettingDescriptionFieldCount(t *testing.T) {
	if _, err := ParseSettingDescription("[SETTING:0|27|desc|unit|6|#0.0|2.0]"); err == nil {
		t.Error("seven fields must fail")
	}
	if _, err := ParseSettingDescription("[SETTING:0|27|desc|unit|6|#0.0|2.0|3.0|extra]"); err == nil {
		t.Error("nine fields must fail")
	}
}

func TestDeviceSettingsOverwrite(t *testing.T) {
	ds := NewDeviceSettings()
	ds.PutSetting(DeviceSetting{Index: 1, Value: "a"})
	ds.PutSetting(DeviceSetting{Index: 1, Value: "b"})
	s, ok := ds.GetSetting(1)
	if !ok || s.Value != "b" {
		t.Errorf("last write must win, got %+v", s)
	}
	if len(ds.Settings()) != 1 {
		t.Errorf("overwrite must not grow the catalog, got %d entries", len(ds.Settings()))
	}
}

func TestDeviceSettingsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ds := NewDeviceSettings()
		indices := rapid.SliceOfDistinct(rapid.Uint32(), func(v uint32) uint32 { return v }).Draw(t, "indices")
		for _, idx := range indices {
			ds.PutSetting(DeviceSetting{Index: idx, Value: strconv.FormatUint(uint64(idx), 10)})
		}
		for _, idx := range indices {
			s, ok := ds.GetSetting(idx)
			if !ok {
				t.Fatalf("setting %d vanished", idx)
			}
			if s.Value != strconv.FormatUint(uint64(idx), 10) {
				t.Fatalf("setting %d: wrong value %q", idx, s.Value)
			}
		}
		// iteration is ascending by index for deterministic rendering
		all := ds.Settings()
		for i := 1; i < len(all); i++ {
			if all[i-1].Index >= all[i].Index {
				t.Fatalf("settings not sorted at %d: %v", i, all)
			}
		}
	})
}
