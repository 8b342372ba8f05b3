package pmw3610

// Register map (base page unless noted).
const (
	regProductID      = 0x00
	regRevisionID     = 0x01
	regMotion         = 0x02
	regDeltaXL        = 0x03
	regDeltaYL        = 0x04
	regDeltaXYH       = 0x05
	regSQUAL          = 0x06
	regShutterHi      = 0x07
	regShutterLo      = 0x08
	regPerformance    = 0x11
	regMotionBurst    = 0x12
	regRunDownshift   = 0x1B
	regRest1Rate      = 0x1C
	regRest1Downshift = 0x1D
	regObservation    = 0x2D
	regSmartMode      = 0x32
	regPowerUpReset   = 0x3A
	regShutdown       = 0x3B
	regSPIClkOnReq    = 0x41
	regPageSelect     = 0x7F // shared address; value selects the page
	regResStep        = 0x85 // extended page only
)

// Fixed register values.
const (
	productID     = 0x3E
	resetValue    = 0x5A
	spiClkEnable  = 0xBA
	spiClkRelease = 0xB5
	pageExtended  = 0xFF
	pageBase      = 0x00

	// Observation low nibble must read back fully set after a clear.
	observationMask = 0x0F

	// Motion register / burst byte 0.
	motionBit = 0x80

	// High bit of the address byte marks a write transaction.
	writeMarker = 0x80

	// Baseline tuning written during initialization (datasheet defaults for
	// keyboard/trackball duty).
	performanceTuning  = 0x0D
	runDownshiftRate   = 0x04
	rest1SampleRate    = 0x04
	rest1DownshiftRate = 0x0F

	// Performance register force-mode field (bits 7:6).
	perfModeMask   = 0xC0
	perfModeForced = 0x80
	perfModeNormal = 0x00

	// Smart-mode register values.
	smartLowered = 0x80 // lowered sensitivity for low-reflectivity surfaces
	smartNormal  = 0x00
)

// Resolution-step register layout (extended page): low 5 bits hold CPI/200,
// bits 6 and 7 invert the X and Y axes.
const (
	resStepMask = 0x1F
	resInvertX  = 1 << 6
	resInvertY  = 1 << 7
)

// CPI limits. Values are divided by cpiStep; non-multiples round down.
const (
	cpiMin  = 200
	cpiMax  = 3200
	cpiStep = 200
)

// Burst frame layout. The short frame stops after the delta bytes; the
// extended frame adds surface-quality and shutter bytes for smart mode.
const (
	burstMotion    = 0
	burstDeltaXL   = 1
	burstDeltaYL   = 2
	burstDeltaXYH  = 3
	burstSQUAL     = 4
	burstShutterHi = 5
	burstShutterLo = 6

	burstSizeShort    = 4
	burstSizeExtended = 7
)

// Shutter threshold for the smart-mode hysteresis.
const shutterThreshold = 45

// Protocol timings from the datasheet timing diagram (µs). The transport
// must reproduce these exactly; undershooting risks garbled bytes.
const (
	tNCSSCLK    = 1  // chip-select assert to first clock
	tSRAD       = 4  // address to read data turn-around
	tSRX        = 1  // inter-byte / read hold
	tSWW        = 10 // write data hold before deassert
	tSWR        = 30 // write recovery after deassert
	tBEXIT      = 4  // burst exit hold after deassert, longer than the inter-byte gap
	tResetMs    = 10 // settle after power-up reset
	tSelfTestMs = 10 // settle after observation clear
)
