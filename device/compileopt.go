package device

import (
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	compileOptionPrefix = "[OPT:"
	compileOptionSuffix = "]"
	extCompilePrefix    = "[NEWOPT:"
	extCompileSuffix    = "]"
)

// CompileOption is a build-time flag of grbl 1.1 class firmware,
// reported as a single letter in the "[OPT:...]" line.
type CompileOption int

const (
	VariableSpindleEnabled CompileOption = iota
	LineNumbersEnabled
	MistCoolantEnabled
	CoreXYEnabled
	ParkingMotionEnabled
	HomingForceOriginEnabled
	HomingSingleAxisEnabled
	TwoLimitSwitchOnAxisEnabled
	AllowFeedRateOverridesInProbeCycles
	RestoreAllEEPROMDisabled
	RestoreEEPROMDollarSettingsDisabled
	RestoreEEPROMParameterDataDisabled
	BuildInfoWriteUserStringDisabled
	ForceSyncEEPROMWriteDisabled
	ForceSyncWorkCoordinateOffsetChangeDisabled
	AlarmStateOnPowerUpWhenHomingInitLock
	DualAxisMotorsWithSelfSquaringEnabled
	SoftwareDebounce
)

var compileOptionLetters = map[string]CompileOption{
	"V": VariableSpindleEnabled,
	"N": LineNumbersEnabled,
	"M": MistCoolantEnabled,
	"C": CoreXYEnabled,
	"P": ParkingMotionEnabled,
	"Z": HomingForceOriginEnabled,
	"H": HomingSingleAxisEnabled,
	"T": TwoLimitSwitchOnAxisEnabled,
	"A": AllowFeedRateOverridesInProbeCycles,
	"*": RestoreAllEEPROMDisabled,
	"$": RestoreEEPROMDollarSettingsDisabled,
	"#": RestoreEEPROMParameterDataDisabled,
	"I": BuildInfoWriteUserStringDisabled,
	"E": ForceSyncEEPROMWriteDisabled,
	"W": ForceSyncWorkCoordinateOffsetChangeDisabled,
	"L": AlarmStateOnPowerUpWhenHomingInitLock,
	"2": DualAxisMotorsWithSelfSquaringEnabled,
	"S": SoftwareDebounce,
}

// ExtendedCompileOption is a grblHAL build capability, reported as a
// multi-letter token in the "[NEWOPT:...]" line.
type ExtendedCompileOption int

const (
	AutomaticToolChange ExtendedCompileOption = iota
	BlockDeleteSignal
	BluetoothStreaming
	CodeEnumerations
	EStopSignal
	EthernetStreaming
	Homing
	LatheMode
	MPGMode
	NoProbeInput
	Odometer
	OptionalStopSignal
	ProbeConnectedSignal
	PIDLog
	LegacyRealtimeCommands
	RealtimeCommands
	SettingsDescriptions
	SDCardStreaming
	// SpindelSync keeps the upstream grblHAL spelling of the "SS"
	// token's meaning to stay aligned with the wire documentation.
	SpindelSync
	ManualToolChange
	WifiStreaming
)

var extCompileOptionTokens = map[string]ExtendedCompileOption{
	"ATC":     AutomaticToolChange,
	"BD":      BlockDeleteSignal,
	"BT":      BluetoothStreaming,
	"ENUMS":   CodeEnumerations,
	"ES":      EStopSignal,
	"ETH":     EthernetStreaming,
	"HOME":    Homing,
	"LATHE":   LatheMode,
	"MPG":     MPGMode,
	"NOPROBE": NoProbeInput,
	"ODO":     Odometer,
	"OS":      OptionalStopSignal,
	"PC":      ProbeConnectedSignal,
	"PID":     PIDLog,
	"RT+":     LegacyRealtimeCommands,
	"RT-":     RealtimeCommands,
	"SED":     SettingsDescriptions,
	"SD":      SDCardStreaming,
	"SS":      SpindelSync,
	"TC":      ManualToolChange,
	"WIFI":    WifiStreaming,
}

// CompileOptions is the decoded "[OPT:...]" line: the recognised flag
// letters, any letters outside the table, and the firmware buffer
// geometry.  AxesCount and ToolTableEntries are grblHAL extensions and
// nil when the firmware does not report them.
type CompileOptions struct {
	Options        []CompileOption
	UnknownOptions []string

	BlockBufferSize int
	RxBufferSize    int

	AxesCount        *int
	ToolTableEntries *int
}

// IsCompileOptionsResponse reports whether line has the compile-options
// shape.
func IsCompileOptionsResponse(line string) bool {
	return strings.HasPrefix(line, compileOptionPrefix) && strings.HasSuffix(line, compileOptionSuffix)
}

// ParseCompileOptions decodes
// "[OPT:<letters>,<block>,<rx>[,<axes>[,<tools>]]]".
func ParseCompileOptions(line string) (CompileOptions, error) {
	body, err := grbl.StripFix(line, compileOptionPrefix, compileOptionSuffix, "compile options")
	if err != nil {
		return CompileOptions{}, err
	}

	// the letters field may be empty, so empty tokens survive the split
	values := grbl.SplitOn(body, ",")
	if len(values) < 3 || len(values) > 5 {
		return CompileOptions{}, grbl.ParseErr(grbl.MalformedGrammar, "compile options", body)
	}

	opts := CompileOptions{}
	opts.Options, opts.UnknownOptions = parseCompileOptionLetters(values[0])

	block, err := grbl.ParseIntField(values[1], "block buffer size", 32)
	if err != nil {
		return CompileOptions{}, err
	}
	opts.BlockBufferSize = int(block)

	rx, err := grbl.ParseIntField(values[2], "rx buffer size", 32)
	if err != nil {
		return CompileOptions{}, err
	}
	opts.RxBufferSize = int(rx)

	if len(values) >= 4 {
		axes, err := grbl.ParseIntField(values[3], "axes count", 32)
		if err != nil {
			return CompileOptions{}, err
		}
		if axes < grbl.MinAxes || axes > grbl.MaxAxes {
			return CompileOptions{}, grbl.ParseErr(grbl.NumericOutOfRange, "axes count", values[3])
		}
		n := int(axes)
		opts.AxesCount = &n
	}

	if len(values) == 5 {
		tools, err := grbl.ParseIntField(values[4], "tool table entries", 32)
		if err != nil {
			return CompileOptions{}, err
		}
		if tools < grbl.MinAxes || tools > grbl.MaxAxes {
			return CompileOptions{}, grbl.ParseErr(grbl.NumericOutOfRange, "tool table entries", values[4])
		}
		n := int(tools)
		opts.ToolTableEntries = &n
	}

	return opts, nil
}

// parseCompileOptionLetters walks the raw letter bytes; recognised
// flags land in the first slice, everything else in the second.
func parseCompileOptionLetters(letters string) ([]CompileOption, []string) {
	options := []CompileOption{}
	unknown := []string{}
	for _, tok := range grbl.SingleByteTokens(letters) {
		if opt, ok := compileOptionLetters[tok]; ok {
			options = append(options, opt)
		} else {
			unknown = append(unknown, tok)
		}
	}
	return options, unknown
}

// IsExtendedCompileOptionsResponse reports whether line has the
// extended compile-options shape.
func IsExtendedCompileOptionsResponse(line string) bool {
	return strings.HasPrefix(line, extCompilePrefix) && strings.HasSuffix(line, extCompileSuffix)
}

// ParseExtendedCompileOptions decodes "[NEWOPT:<csv>]".  An empty body
// yields an empty list; an unknown token fails the whole line.
func ParseExtendedCompileOptions(line string) ([]ExtendedCompileOption, error) {
	body, err := grbl.StripFix(line, extCompilePrefix, extCompileSuffix, "extended compile options")
	if err != nil {
		return nil, err
	}
	options := []ExtendedCompileOption{}
	if body == "" {
		return options, nil
	}
	for _, tok := range grbl.SplitOn(body, ",") {
		opt, ok := extCompileOptionTokens[tok]
		if !ok {
			return nil, grbl.ParseErr(grbl.UnknownEnumValue, "extended compile option", tok)
		}
		options = append(options, opt)
	}
	return options, nil
}
