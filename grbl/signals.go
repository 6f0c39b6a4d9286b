package grbl

// Signal mask bits for the internal u32 representation of controller
// input signals.
const (
	SignalOff                uint32 = 1 << iota // OFF
	SignalLimitX                                // LIMIT_X
	SignalLimitY                                // LIMIT_Y
	SignalLimitZ                                // LIMIT_Z
	SignalLimitA                                // LIMIT_A
	SignalLimitB                                // LIMIT_B
	SignalLimitC                                // LIMIT_C
	SignalEStop                                 // E_STOP
	SignalProbe                                 // PROBE
	SignalReset                                 // RESET
	SignalSafetyDoor                            // SAFETY_DOOR
	SignalHold                                  // HOLD
	SignalCycleStart                            // CYCLE_START
	SignalBlockDelete                           // BLOCK_DELETE
	SignalOptionalStop                          // OPTIONAL_STOP
	SignalProbeDisconnected                     // PROBE_DISCONNECTED
	SignalMotorWarning                          // MOTOR_WARNING
)
