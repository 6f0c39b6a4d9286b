package service

import (
	"strings"
	"testing"
	"time"

	"github.com/vgerber/grbl-interface/comm"
	"github.com/vgerber/grbl-interface/device"
	"github.com/vgerber/grbl-interface/grbl"
)

// controllerScript answers like an idle grblHAL build.
func controllerScript(line string) []string {
	switch strings.TrimSuffix(line, "\n") {
	case grbl.GetInfoExtended:
		return []string{
			"[VER:1.1f.20220123:sim]",
			"[OPT:VNM,35,1024,3]",
			"[NEWOPT:ETH,HOME]",
			"[BOARD:SIMBOARD]",
			"ok",
		}
	case grbl.GetAllSettings:
		return []string{"$0=10.0", "$1=25", "ok"}
	case grbl.GetErrorCodes:
		return []string{"[ERRORCODE:2||Bad number format]", "ok"}
	case grbl.GetAlarmCodes:
		return []string{"[ALARMCODE:1||Hard limit]", "ok"}
	case grbl.StatusReport:
		return []string{"<Idle|MPos:0.000,0.000,0.000|FS:0,0>"}
	case grbl.Sync, "":
		return nil
	}
	return []string{"ok"}
}

func newSimService(t *testing.T) (*DeviceService, *comm.Simulator) {
	t.Helper()
	sim := comm.NewSimulator(controllerScript)
	svc := New()
	svc.NewEndpoint = func(DeviceDescription) (comm.Endpoint, error) {
		return sim, nil
	}
	return svc, sim
}

// waitFor polls the device snapshot until the predicate holds.
func waitFor(t *testing.T, svc *DeviceService, id string, what string, pred func(device.DeviceInfo) bool) device.DeviceInfo {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		info, err := svc.GetDeviceInfo(id)
		if err != nil {
			t.Fatal(err)
		}
		if pred(info) {
			return info
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
	return device.DeviceInfo{}
}

func TestOpenDeviceConvergesModel(t *testing.T) {
	svc, _ := newSimService(t)
	defer svc.Close()

	desc := DeviceDescription{ID: "sim0", Kind: Serial}
	if err := svc.OpenDevice(desc); err != nil {
		t.Fatal(err)
	}
	if !svc.IsDeviceConnected("sim0") {
		t.Fatal("device must be connected after open")
	}

	info := waitFor(t, svc, "sim0", "firmware identity", func(i device.DeviceInfo) bool {
		return i.Firmware.Version != nil && i.MachineInfo != nil
	})
	if info.Firmware.Version.Name != "sim" {
		t.Errorf("version name: got %q", info.Firmware.Version.Name)
	}
	if info.Firmware.Board.Name != "SIMBOARD" {
		t.Errorf("board: got %q", info.Firmware.Board.Name)
	}
	if _, ok := info.Settings.GetSetting(1); !ok {
		t.Error("setting 1 missing from converged model")
	}
	if _, ok := info.StatusCodes.GetAlarmCode(1); !ok {
		t.Error("alarm catalog missing from converged model")
	}
	if info.MachineInfo.MachineState.Status != device.StatusIdle {
		t.Errorf("machine state: got %v", info.MachineInfo.MachineState.Status)
	}
}

func TestOpenDeviceDuplicate(t *testing.T) {
	svc, _ := newSimService(t)
	defer svc.Close()

	desc := DeviceDescription{ID: "sim0", Kind: Serial}
	if err := svc.OpenDevice(desc); err != nil {
		t.Fatal(err)
	}
	err := svc.OpenDevice(desc)
	perr, ok := err.(*grbl.Error)
	if !ok || perr.Kind != grbl.DuplicateDeviceID {
		t.Errorf("expected DuplicateDeviceID, got %v", err)
	}
}

func TestCloseDevice(t *testing.T) {
	svc, _ := newSimService(t)

	desc := DeviceDescription{ID: "sim0", Kind: Serial}
	if err := svc.OpenDevice(desc); err != nil {
		t.Fatal(err)
	}
	if err := svc.CloseDevice("sim0"); err != nil {
		t.Fatal(err)
	}
	if svc.IsDeviceConnected("sim0") {
		t.Error("device must be gone after close")
	}
	err := svc.CloseDevice("sim0")
	perr, ok := err.(*grbl.Error)
	if !ok || perr.Kind != grbl.UnknownDevice {
		t.Errorf("expected UnknownDevice, got %v", err)
	}
}

func TestUnknownDeviceOperations(t *testing.T) {
	svc, _ := newSimService(t)
	defer svc.Close()

	if _, err := svc.GetDeviceInfo("nope"); err == nil {
		t.Error("expected error for unknown device info")
	}
	if err := svc.WriteDeviceCommand("nope", grbl.Unlock); err == nil {
		t.Error("expected error for unknown device write")
	}
	if err := svc.EnableStatusPolling("nope", 5); err == nil {
		t.Error("expected error for unknown device polling")
	}
}

func TestWriteDeviceCommandFraming(t *testing.T) {
	svc, sim := newSimService(t)
	defer svc.Close()

	if err := svc.OpenDevice(DeviceDescription{ID: "sim0", Kind: Serial}); err != nil {
		t.Fatal(err)
	}
	if err := svc.WriteDeviceCommand("sim0", grbl.Unlock); err != nil {
		t.Fatal(err)
	}
	if err := svc.WriteDeviceCommand("sim0", grbl.StatusReport); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	var written []string
	for time.Now().Before(deadline) {
		written = sim.Written()
		if len(written) >= len(grbl.LoadDeviceMetadataCommands())+2 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	var sawUnlock, sawStatus bool
	for _, line := range written {
		if line == grbl.Unlock+"\n" {
			sawUnlock = true
		}
		if line == grbl.Unlock {
			t.Error("acknowledged commands must carry a newline")
		}
		if line == grbl.StatusReport {
			sawStatus = true
		}
		if line == grbl.StatusReport+"\n" {
			t.Error("realtime commands must not carry a terminator")
		}
	}
	if !sawUnlock || !sawStatus {
		t.Errorf("missing commands on the wire: %v", written)
	}
}

func TestStatusPolling(t *testing.T) {
	svc, sim := newSimService(t)
	defer svc.Close()

	if err := svc.OpenDevice(DeviceDescription{ID: "sim0", Kind: Serial}); err != nil {
		t.Fatal(err)
	}
	if err := svc.EnableStatusPolling("sim0", 100); err != nil {
		t.Fatal(err)
	}
	if err := svc.EnableStatusPolling("sim0", 100); err == nil {
		t.Error("double enable must fail")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		count := 0
		for _, line := range sim.Written() {
			if line == grbl.StatusReport {
				count++
			}
		}
		if count >= 3 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := svc.DisableStatusPolling("sim0"); err != nil {
		t.Fatal(err)
	}
	// the worker keeps consuming status reports the poll provoked
	waitFor(t, svc, "sim0", "a polled status report", func(i device.DeviceInfo) bool {
		return i.MachineInfo != nil
	})
}

func TestServiceCloseClosesAll(t *testing.T) {
	svc, _ := newSimService(t)
	if err := svc.OpenDevice(DeviceDescription{ID: "sim0", Kind: Serial}); err != nil {
		t.Fatal(err)
	}
	svc.Close()
	if svc.IsDeviceConnected("sim0") {
		t.Error("close must detach every device")
	}
}
