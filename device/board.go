package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	boardNamePrefix = "[BOARD:"
	boardNameSuffix = "]"
	auxPrefix       = "[AUX IO:"
	auxSuffix       = "]"
	storagePrefix   = "[NVS STORAGE:"
	storageSuffix   = "]"
	emulatedSymbol  = "*"
)

// BoardInfo aggregates what the firmware reports about the controller
// board itself.
type BoardInfo struct {
	Name    string
	Storage *Storage
	Aux     *AuxPorts
}

// AuxPorts is the auxiliary I/O count from "[AUX IO:...]".
type AuxPorts struct {
	DigitalIn  uint16
	DigitalOut uint16
	AnalogIn   uint16
	AnalogOut  uint16
}

// StorageType enumerates the NVS backends a board can carry.
type StorageType int

const (
	StorageFlash StorageType = iota
	StorageFRAM
	StorageEEPROM
)

// Storage describes the board's non-volatile settings storage.
type Storage struct {
	// Emulated is set when the firmware fakes the storage in RAM,
	// reported by a leading "*" on the type name.
	Emulated bool
	Type     StorageType
}

// IsBoardNameResponse reports whether line has the board-name shape.
func IsBoardNameResponse(line string) bool {
	return strings.HasPrefix(line, boardNamePrefix) && strings.HasSuffix(line, boardNameSuffix)
}

// ParseBoardName decodes "[BOARD:<name>]"; the name must be non-empty.
func ParseBoardName(line string) (string, error) {
	return grbl.StripFixNonEmpty(line, boardNamePrefix, boardNameSuffix, "board name")
}

// IsAuxPortsResponse reports whether line has the aux-ports shape.
func IsAuxPortsResponse(line string) bool {
	return strings.HasPrefix(line, auxPrefix) && strings.HasSuffix(line, auxSuffix)
}

// ParseAuxPorts decodes "[AUX IO:<di>,<do>,<ai>,<ao>]".
func ParseAuxPorts(line string) (AuxPorts, error) {
	body, err := grbl.StripFix(line, auxPrefix, auxSuffix, "aux ports")
	if err != nil {
		return AuxPorts{}, err
	}
	ports := grbl.SplitOn(body, ",")
	if len(ports) != 4 {
		return AuxPorts{}, grbl.ParseErr(grbl.WrongFieldCount, "aux ports", body)
	}

	fields := []string{"digital in port count", "digital out port count", "analog in port count", "analog out port count"}
	values := [4]uint16{}
	for i, tok := range ports {
		v, err := grbl.ParseUintField(tok, fields[i], 16)
		if err != nil {
			return AuxPorts{}, err
		}
		values[i] = uint16(v)
	}
	return AuxPorts{
		DigitalIn:  values[0],
		DigitalOut: values[1],
		AnalogIn:   values[2],
		AnalogOut:  values[3],
	}, nil
}

// IsStorageResponse reports whether line has the NVS storage shape.
func IsStorageResponse(line string) bool {
	return strings.HasPrefix(line, storagePrefix) && strings.HasSuffix(line, storageSuffix)
}

// ParseStorage decodes "[NVS STORAGE:[*]<type>]".
func ParseStorage(line string) (Storage, error) {
	body, err := grbl.StripFix(line, storagePrefix, storageSuffix, "storage type")
	if err != nil {
		return Storage{}, err
	}
	emulated := strings.HasPrefix(body, emulatedSymbol)
	name := strings.TrimPrefix(body, emulatedSymbol)

	var storageType StorageType
	switch name {
	case "FLASH":
		storageType = StorageFlash
	case "FRAM":
		storageType = StorageFRAM
	case "EEPROM":
		storageType = StorageEEPROM
	default:
		return Storage{}, grbl.ParseErr(grbl.UnknownEnumValue, "storage type", name)
	}
	return Storage{Emulated: emulated, Type: storageType}, nil
}
