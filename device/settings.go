package device

import (
	"sort"
	"strings"

	"github.com/vgerber/grbl-interface/grbl"
)

const (
	settingPrefix = "$"

	settingGroupPrefix = "[SETTINGGROUP:"
	settingGroupSuffix = "]"

	settingDescPrefix = "[SETTING:"
	settingDescSuffix = "]"
)

// DeviceSetting is one "$<idx>=<value>" line.  The value is whatever
// the firmware printed; numeric formatting quirks are not normalised.
type DeviceSetting struct {
	Index uint32
	Value string
}

// DeviceSettingGroup relates a setting group index to its parent group
// and display name.
type DeviceSettingGroup struct {
	Index       uint32
	ParentIndex uint32
	Name        string
}

// DeviceSettingDescription is the grblHAL "$ES" metadata for one
// setting: value type, display format and bounds.  Empty wire fields
// become empty strings.
type DeviceSettingDescription struct {
	Index       uint32
	GroupIndex  uint32
	Description string
	Unit        string
	ValueType   uint8
	ValueFormat string
	ValueMin    string
	ValueMax    string
}

// DeviceSettings is the per-device settings catalog.  Entries are
// keyed by index and never deleted; re-decoding an index overwrites in
// place.
type DeviceSettings struct {
	settings     map[uint32]DeviceSetting
	groups       map[uint32]DeviceSettingGroup
	descriptions map[uint32]DeviceSettingDescription
}

// NewDeviceSettings returns an empty catalog.
func NewDeviceSettings() *DeviceSettings {
	return &DeviceSettings{
		settings:     make(map[uint32]DeviceSetting),
		groups:       make(map[uint32]DeviceSettingGroup),
		descriptions: make(map[uint32]DeviceSettingDescription),
	}
}

// PutSetting stores the setting, overwriting any previous value.
func (ds *DeviceSettings) PutSetting(setting DeviceSetting) {
	ds.settings[setting.Index] = setting
}

// PutSettingGroup stores the group, overwriting any previous value.
func (ds *DeviceSettings) PutSettingGroup(group DeviceSettingGroup) {
	ds.groups[group.Index] = group
}

// PutSettingDescription stores the description, overwriting any
// previous value.
func (ds *DeviceSettings) PutSettingDescription(desc DeviceSettingDescription) {
	ds.descriptions[desc.Index] = desc
}

// GetSetting returns the setting for index, if present.
func (ds *DeviceSettings) GetSetting(index uint32) (DeviceSetting, bool) {
	s, ok := ds.settings[index]
	return s, ok
}

// GetSettingGroup returns the group for index, if present.
func (ds *DeviceSettings) GetSettingGroup(index uint32) (DeviceSettingGroup, bool) {
	g, ok := ds.groups[index]
	return g, ok
}

// GetSettingDescription returns the description for index, if present.
func (ds *DeviceSettings) GetSettingDescription(index uint32) (DeviceSettingDescription, bool) {
	d, ok := ds.descriptions[index]
	return d, ok
}

// Settings returns all settings in ascending index order.
func (ds *DeviceSettings) Settings() []DeviceSetting {
	out := make([]DeviceSetting, 0, len(ds.settings))
	for _, idx := range sortedKeys(ds.settings) {
		out = append(out, ds.settings[idx])
	}
	return out
}

// SettingGroups returns all groups in ascending index order.
func (ds *DeviceSettings) SettingGroups() []DeviceSettingGroup {
	out := make([]DeviceSettingGroup, 0, len(ds.groups))
	for _, idx := range sortedKeys(ds.groups) {
		out = append(out, ds.groups[idx])
	}
	return out
}

// SettingDescriptions returns all descriptions in ascending index
// order.
func (ds *DeviceSettings) SettingDescriptions() []DeviceSettingDescription {
	out := make([]DeviceSettingDescription, 0, len(ds.descriptions))
	for _, idx := range sortedKeys(ds.descriptions) {
		out = append(out, ds.descriptions[idx])
	}
	return out
}

func sortedKeys[V any](m map[uint32]V) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// clone copies the catalog for reader snapshots.
func (ds *DeviceSettings) clone() *DeviceSettings {
	out := NewDeviceSettings()
	for k, v := range ds.settings {
		out.settings[k] = v
	}
	for k, v := range ds.groups {
		out.groups[k] = v
	}
	for k, v := range ds.descriptions {
		out.descriptions[k] = v
	}
	return out
}

// IsSettingResponse reports whether line has the setting shape.
func IsSettingResponse(line string) bool {
	return strings.HasPrefix(line, settingPrefix)
}

// ParseSetting decodes "$<idx>=<value>".  The value is the remainder
// of the line verbatim.
func ParseSetting(line string) (DeviceSetting, error) {
	if !IsSettingResponse(line) {
		return DeviceSetting{}, grbl.ParseErr(grbl.MalformedGrammar, "setting", line)
	}
	pair := strings.SplitN(strings.TrimPrefix(line, settingPrefix), "=", 2)
	if len(pair) != 2 {
		return DeviceSetting{}, grbl.ParseErr(grbl.MalformedGrammar, "setting", line)
	}
	index, err := grbl.ParseUintField(pair[0], "setting index", 32)
	if err != nil {
		return DeviceSetting{}, err
	}
	return DeviceSetting{Index: uint32(index), Value: pair[1]}, nil
}

// IsSettingGroupResponse reports whether line has the setting-group
// shape.
func IsSettingGroupResponse(line string) bool {
	return strings.HasPrefix(line, settingGroupPrefix) && strings.HasSuffix(line, settingGroupSuffix)
}

// ParseSettingGroup decodes "[SETTINGGROUP:<idx>|<parent>|<name>]".
func ParseSettingGroup(line string) (DeviceSettingGroup, error) {
	body, err := grbl.StripFix(line, settingGroupPrefix, settingGroupSuffix, "setting group")
	if err != nil {
		return DeviceSettingGroup{}, err
	}
	fields := grbl.SplitOn(body, "|")
	if len(fields) != 3 {
		return DeviceSettingGroup{}, grbl.ParseErr(grbl.WrongFieldCount, "setting group fields", body)
	}
	index, err := grbl.ParseUintField(fields[0], "setting group index", 32)
	if err != nil {
		return DeviceSettingGroup{}, err
	}
	parent, err := grbl.ParseUintField(fields[1], "setting group parent index", 32)
	if err != nil {
		return DeviceSettingGroup{}, err
	}
	return DeviceSettingGroup{
		Index:       uint32(index),
		ParentIndex: uint32(parent),
		Name:        fields[2],
	}, nil
}

// IsSettingDescriptionResponse reports whether line has the setting
// description shape.
func IsSettingDescriptionResponse(line string) bool {
	return strings.HasPrefix(line, settingDescPrefix) && strings.HasSuffix(line, settingDescSuffix)
}

// ParseSettingDescription decodes
// "[SETTING:<idx>|<group>|<desc>|<unit>|<type>|<fmt>|<min>|<max>]".
// Exactly eight fields are required.
func ParseSettingDescription(line string) (DeviceSettingDescription, error) {
	body, err := grbl.StripFix(line, settingDescPrefix, settingDescSuffix, "setting description")
	if err != nil {
		return DeviceSettingDescription{}, err
	}
	fields := grbl.SplitOn(body, "|")
	if len(fields) != 8 {
		return DeviceSettingDescription{}, grbl.ParseErr(grbl.WrongFieldCount, "setting description fields", body)
	}

	index, err := grbl.ParseUintField(fields[0], "setting index", 32)
	if err != nil {
		return DeviceSettingDescription{}, err
	}
	group, err := grbl.ParseUintField(fields[1], "group index", 32)
	if err != nil {
		return DeviceSettingDescription{}, err
	}
	// type index failures always report as range errors: the value is a
	// one-byte enum ordinal and anything else is out of its domain
	valueType, err := grbl.ParseUintField(fields[4], "type index", 8)
	if err != nil {
		return DeviceSettingDescription{}, grbl.ParseErr(grbl.NumericOutOfRange, "type index", fields[4])
	}

	return DeviceSettingDescription{
		Index:       uint32(index),
		GroupIndex:  uint32(group),
		Description: fields[2],
		Unit:        fields[3],
		ValueType:   uint8(valueType),
		ValueFormat: fields[5],
		ValueMin:    fields[6],
		ValueMax:    fields[7],
	}, nil
}
