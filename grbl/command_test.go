package grbl

import "testing"

func TestHasStatusResponse(t *testing.T) {
	for _, cmd := range []string{StatusReport, CycleStart, FeedHold} {
		if HasStatusResponse(cmd) {
			t.Errorf("realtime command %q must not await a status line", cmd)
		}
	}
	for _, cmd := range []string{Unlock, Check, GetSettings, HomeAll, "G0 X10"} {
		if !HasStatusResponse(cmd) {
			t.Errorf("command %q is acknowledged with ok/error", cmd)
		}
	}
}

func TestLoadDeviceMetadataCommands(t *testing.T) {
	cmds := LoadDeviceMetadataCommands()
	if len(cmds) == 0 {
		t.Fatal("metadata sequence is empty")
	}
	if cmds[len(cmds)-1] != Sync {
		t.Errorf("metadata sequence must end with a sync, got %q", cmds[len(cmds)-1])
	}
	seen := map[string]bool{}
	for _, c := range cmds {
		seen[c] = true
	}
	for _, required := range []string{GetAllSettings, GetSettingDetails, GetSettingGroups, GetInfoExtended, GetErrorCodes, GetAlarmCodes, StatusReport} {
		if !seen[required] {
			t.Errorf("metadata sequence is missing %q", required)
		}
	}
}
