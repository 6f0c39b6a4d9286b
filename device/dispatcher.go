package device

import (
	"github.com/vgerber/grbl-interface/grbl"
)

// ReadResponse tag-dispatches one framed response line into the
// matching decoder family and merges the result into info.  The caller
// supplies exactly one line with the terminator already stripped; no
// trimming happens here or below.
//
// A parse failure leaves info untouched; an unrecognised line is
// reported as UnknownFormat.
func ReadResponse(line string, info *DeviceInfo) error {
	switch {
	case IsReportResponse(line):
		machineInfo, err := ParseReport(line)
		if err != nil {
			return err
		}
		info.UpdateMachineInfo(machineInfo)
		return nil
	case IsGCodeStateResponse(line):
		state, err := ParseGCodeState(line)
		if err != nil {
			return err
		}
		info.GCodeState = &state
		return nil
	case IsMessageResponse(line):
		message, err := ParseMessage(line)
		if err != nil {
			return err
		}
		info.LastMessage = &message
		return nil
	case IsEchoResponse(line):
		echo, err := ParseEchoMessage(line)
		if err != nil {
			return err
		}
		info.LastEchoMessage = &echo
		return nil
	case IsHelpResponse(line):
		help, err := ParseHelp(line)
		if err != nil {
			return err
		}
		info.LastHelp = &help
		return nil
	case IsResponseStatus(line):
		// command acknowledgements carry no device state; the worker
		// has no per-command correlation to attach them to
		_, err := ParseResponseStatus(line)
		return err
	case isSettingFamilyResponse(line):
		return readSettingResponse(line, info)
	case isFirmwareFamilyResponse(line):
		return readFirmwareResponse(line, info)
	}
	return &grbl.Error{Kind: grbl.UnknownFormat, Line: line}
}

// isSettingFamilyResponse reports whether any settings-family decoder
// recognises the line.  The plain setting test runs last: its "$"
// prefix is the loosest of the family.
func isSettingFamilyResponse(line string) bool {
	return IsSettingGroupResponse(line) ||
		IsSettingDescriptionResponse(line) ||
		IsErrorCodeResponse(line) ||
		IsAlarmCodeResponse(line) ||
		IsSettingResponse(line)
}

// isFirmwareFamilyResponse reports whether any firmware-family decoder
// recognises the line.
func isFirmwareFamilyResponse(line string) bool {
	return IsVersionResponse(line) ||
		IsStartupResponse(line) ||
		IsCompileOptionsResponse(line) ||
		IsExtendedCompileOptionsResponse(line) ||
		IsDriverNameResponse(line) ||
		IsDriverVersionResponse(line) ||
		IsDriverOptionsResponse(line) ||
		IsBoardNameResponse(line) ||
		IsAuxPortsResponse(line) ||
		IsStorageResponse(line)
}

func readSettingResponse(line string, info *DeviceInfo) error {
	switch {
	case IsSettingGroupResponse(line):
		group, err := ParseSettingGroup(line)
		if err != nil {
			return err
		}
		info.Settings.PutSettingGroup(group)
	case IsSettingDescriptionResponse(line):
		desc, err := ParseSettingDescription(line)
		if err != nil {
			return err
		}
		info.Settings.PutSettingDescription(desc)
	case IsErrorCodeResponse(line):
		code, err := ParseErrorCode(line)
		if err != nil {
			return err
		}
		info.StatusCodes.PutErrorCode(code)
	case IsAlarmCodeResponse(line):
		code, err := ParseAlarmCode(line)
		if err != nil {
			return err
		}
		info.StatusCodes.PutAlarmCode(code)
	default:
		setting, err := ParseSetting(line)
		if err != nil {
			return err
		}
		info.Settings.PutSetting(setting)
	}
	return nil
}

func readFirmwareResponse(line string, info *DeviceInfo) error {
	fw := &info.Firmware
	switch {
	case IsVersionResponse(line):
		version, err := ParseVersion(line)
		if err != nil {
			return err
		}
		fw.Version = &version
	case IsStartupResponse(line):
		result, err := ParseStartupResult(line)
		if err != nil {
			return err
		}
		fw.StartupResult = &result
	case IsCompileOptionsResponse(line):
		opts, err := ParseCompileOptions(line)
		if err != nil {
			return err
		}
		fw.CompileOptions = &opts
	case IsExtendedCompileOptionsResponse(line):
		opts, err := ParseExtendedCompileOptions(line)
		if err != nil {
			return err
		}
		fw.ExtendedCompileOptions = opts
	case IsDriverNameResponse(line):
		name, err := ParseDriverName(line)
		if err != nil {
			return err
		}
		fw.Driver.Name = name
	case IsDriverVersionResponse(line):
		version, err := ParseDriverVersion(line)
		if err != nil {
			return err
		}
		fw.Driver.Version = version
	case IsDriverOptionsResponse(line):
		options, err := ParseDriverOptions(line)
		if err != nil {
			return err
		}
		fw.Driver.Options = options
	case IsBoardNameResponse(line):
		name, err := ParseBoardName(line)
		if err != nil {
			return err
		}
		fw.Board.Name = name
	case IsAuxPortsResponse(line):
		aux, err := ParseAuxPorts(line)
		if err != nil {
			return err
		}
		fw.Board.Aux = &aux
	case IsStorageResponse(line):
		storage, err := ParseStorage(line)
		if err != nil {
			return err
		}
		fw.Board.Storage = &storage
	}
	return nil
}
