package iqs7211e

// Register addresses.
//
// Refer to the IQS7211E datasheet for the full memory map:
// https://www.azoteq.com/design/datasheets/
const (
	// App and ROM version information (0x00..0x09)
	RegAppVersion = 0x00
	RegRomVersion = 0x05

	// Gesture and finger data (0x0A..0x17)
	RegRelativeX  = 0x0A
	RegRelativeY  = 0x0B
	RegGestureX   = 0x0C
	RegGestureY   = 0x0D
	RegGestures   = 0x0E
	RegInfoFlags  = 0x0F
	RegFinger1X   = 0x10
	RegFinger1Y   = 0x11
	RegFinger1Str = 0x12
	RegFinger1Aea = 0x13
	RegFinger2X   = 0x14
	RegFinger2Y   = 0x15
	RegFinger2Str = 0x16
	RegFinger2Aea = 0x17

	// Channel states and counts (0x18..0x1E)
	RegTouchState0 = 0x18
	RegTouchState1 = 0x19
	RegTouchState2 = 0x1A
	RegAlpCount    = 0x1B
	RegAlpLta      = 0x1C
	RegAlpCountA   = 0x1D
	RegAlpCountB   = 0x1E

	// ALP and trackpad ATI settings (0x1F..0x27)
	RegAlpAtiCompA       = 0x1F
	RegAlpAtiCompB       = 0x20
	RegTpAtiMultipliers  = 0x21
	RegTpRefDriftLimit   = 0x22
	RegTpAtiTarget       = 0x23
	RegTpMinCountReAti   = 0x24
	RegAlpAtiMultipliers = 0x25
	RegAlpLtaDriftLimit  = 0x26
	RegAlpAtiTarget      = 0x27

	// Report rates and timings (0x28..0x32)
	RegActiveModeReportRate = 0x28
	RegIdleTouchReportRate  = 0x29
	RegIdleModeReportRate   = 0x2A
	RegLp1ModeReportRate    = 0x2B
	RegLp2ModeReportRate    = 0x2C
	RegActiveModeTimeout    = 0x2D
	RegIdleTouchModeTimeout = 0x2E
	RegIdleModeTimeout      = 0x2F
	RegLp1ModeTimeout       = 0x30
	RegRefUpdateReatiTime   = 0x31
	RegI2CTimeout           = 0x32

	// System and ALP setup (0x33..0x37)
	RegSysControl     = 0x33
	RegConfigSettings = 0x34
	RegOtherSettings  = 0x35
	RegAlpSetup       = 0x36
	RegAlpTxEnable    = 0x37

	// Trackpad and ALP thresholds (0x38..0x3A)
	RegTouchMultipliers = 0x38
	RegAlpThreshold     = 0x39
	RegAlpDebounce      = 0x3A

	// ALP filter betas (0x3B..0x3C)
	RegLp1Filters = 0x3B
	RegLp2Filters = 0x3C

	// Hardware and conversion setup (0x3D..0x40)
	RegTpConvFreq  = 0x3D
	RegAlpConvFreq = 0x3E
	RegTpHardware  = 0x3F
	RegAlpHardware = 0x40

	// Trackpad geometry (0x41..0x49)
	RegTpRxSettings      = 0x41
	RegXResolution       = 0x43
	RegYResolution       = 0x44
	RegFilterBottomSpeed = 0x45
	RegFilterTopSpeed    = 0x46
	RegStaticFilter      = 0x47
	RegFingerSplit       = 0x48
	RegTrimValues        = 0x49

	// Settings version (0x4A)
	RegSettingsVersion = 0x4A

	// Gesture settings (0x4B..0x55)
	RegGestureEnable    = 0x4B
	RegTapTime          = 0x4C
	RegAirTime          = 0x4D
	RegTapDistance      = 0x4E
	RegHoldTime         = 0x4F
	RegSwipeTime        = 0x50
	RegXInitialDistance = 0x51
	RegYInitialDistance = 0x52
	RegXConsecDistance  = 0x53
	RegYConsecDistance  = 0x54
	RegThresholdAngle   = 0x55

	// Rx/Tx mapping (0x56..0x5C)
	RegRxTxMapping = 0x56

	// Cycle allocation (0x5D..0x7C)
	RegCycleTable0  = 0x5D
	RegCycleTable10 = 0x6C
	RegCycleTable20 = 0x7B
)

// Extended diagnostic pages, 16-bit big-endian addressed. Each address holds
// one little-endian 16-bit value, indexed per trackpad channel.
const (
	ExtBaseTargets = 0xE100
	ExtDeltas      = 0xE200
)

// Device constants.
const (
	// Addr is the fixed 7-bit bus address of the IQS7211E.
	Addr = 0x56
	// ProductNumber is the identification constant reported at RegAppVersion.
	ProductNumber = 0x0458

	// commsRequestReg provokes a communication window when written while RDY
	// is deasserted (datasheet 11.9.2).
	commsRequestReg = 0xFF
)

// Sensing matrix limits and cycle table encoding.
const (
	// MaxPins is the number of physical Rx/Tx pads on the device.
	MaxPins = 13
	// MaxCycles is the number of hardware sensing timeslots.
	MaxCycles = 21
	// UnusedChannel marks an empty prox slot in a cycle.
	UnusedChannel = 0xFF

	cycleHeader     = 0x05
	cycleTerminator = 0x01
	cycleTableLen   = MaxCycles*3 + 1
)

// maxWritePayload is the largest register write the transport buffer can
// carry: one 32-byte buffer minus the register address byte.
const maxWritePayload = 31
