package cnc

import (
	"github.com/vgerber/grbl-interface/device"
)

// devicePayload flattens a DeviceInfo snapshot for JSON clients: the
// catalogs render as ascending-index lists and the last message/echo
// collapse to their strings.
type devicePayload struct {
	ID       string              `json:"id"`
	Firmware device.FirmwareInfo `json:"firmware"`

	MachineInfo *device.MachineInfo `json:"machineInfo,omitempty"`
	GCodeState  []string            `json:"gcodeState,omitempty"`

	LastMessage string `json:"lastMessage,omitempty"`
	LastEcho    string `json:"lastEcho,omitempty"`

	Settings            []device.DeviceSetting            `json:"settings"`
	SettingGroups       []device.DeviceSettingGroup       `json:"settingGroups"`
	SettingDescriptions []device.DeviceSettingDescription `json:"settingDescriptions"`

	ErrorCodes []device.StatusCode `json:"errorCodes"`
	AlarmCodes []device.StatusCode `json:"alarmCodes"`
}

func snapshotPayload(info device.DeviceInfo) devicePayload {
	p := devicePayload{
		ID:                  info.ID(),
		Firmware:            info.Firmware,
		MachineInfo:         info.MachineInfo,
		Settings:            info.Settings.Settings(),
		SettingGroups:       info.Settings.SettingGroups(),
		SettingDescriptions: info.Settings.SettingDescriptions(),
		ErrorCodes:          info.StatusCodes.ErrorCodes(),
		AlarmCodes:          info.StatusCodes.AlarmCodes(),
	}
	if info.GCodeState != nil {
		p.GCodeState = info.GCodeState.Values
	}
	if info.LastMessage != nil {
		p.LastMessage = info.LastMessage.Message
	}
	if info.LastEchoMessage != nil {
		p.LastEcho = info.LastEchoMessage.Echo
	}
	return p
}
