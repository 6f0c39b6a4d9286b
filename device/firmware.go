package device

// FirmwareInfo aggregates everything the firmware reports about
// itself.  The zero value is ready to use; slots fill in as the
// corresponding identity lines arrive.
type FirmwareInfo struct {
	StartupResult          *FirmwareStartupResult
	Version                *FirmwareVersion
	CompileOptions         *CompileOptions
	ExtendedCompileOptions []ExtendedCompileOption
	Driver                 DriverInfo
	Board                  BoardInfo
}
