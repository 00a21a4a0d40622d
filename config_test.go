package iqs7211e

import (
	"bytes"
	"testing"
)

func TestAutoTuneRoundTrip(t *testing.T) {
	in := AutoTune{
		AlpCompensation: AlpCompensation{EngineA: 512, EngineB: 300},
		Tune: Tune{
			CoarseDivider:       3,
			CoarseMultiplier:    12,
			FineDivider:         31,
			CompensationDivider: 20,
			DriftLimit:          75,
			Target:              450,
		},
		RetuneThreshold: 99,
		AlpTune: Tune{
			CoarseDivider:       5,
			CoarseMultiplier:    2,
			FineDivider:         7,
			CompensationDivider: 1,
			DriftLimit:          10,
			Target:              123,
		},
	}
	buf := in.encode()
	if got := decodeAutoTune(buf[:]); got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestTimingRoundTrip(t *testing.T) {
	in := Timing{
		ReportRate:          ReportRate{Active: 5, IdleTouch: 25, Idle: 40, LP1: 100, LP2: 200},
		Timeouts:            Timeouts{Active: 20, IdleTouch: 30, Idle: 5, LP1: 2},
		RetuneRetryDelay:    60,
		LtaSamplingInterval: 12,
		I2CTimeout:          250,
	}
	buf := in.encode()
	if got := decodeTiming(buf[:]); got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestAlpRoundTrip(t *testing.T) {
	in := Alp{
		Rx:          0b0000_1100,
		SensingMode: AlpSelfCapacitance,
		CountFilter: false,
		Tx:          0b0_0011_0000_0000,
	}
	buf := in.encode()
	if got := decodeAlp(buf[:]); got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestChannelOutputRoundTrip(t *testing.T) {
	in := ChannelOutput{
		Touch:        TouchOutput{SetMultiplier: 12, ClearMultiplier: 6},
		Alp:          AlpOutput{Threshold: 400, SetDebounce: 2, ClearDebounce: 8},
		AlpFilterLP1: AlpFilterBetas{Count: 100, LTA: 50},
		AlpFilterLP2: AlpFilterBetas{Count: 150, LTA: 60},
	}
	buf := in.encode()
	if got := decodeChannelOutput(buf[:]); got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestConversionFrequencyRoundTrip(t *testing.T) {
	in := ConversionFrequency{
		Trackpad: Frequency{Period: 5, Fraction: 127},
		Alp:      Frequency{Period: 12, Fraction: 100},
	}
	buf := in.encode()
	if got := decodeConversionFrequency(buf[:]); got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestHardwareRoundTrip(t *testing.T) {
	in := Hardware{
		Trackpad: TrackpadHardware{
			InitDelay:   InitDelay16,
			MaxCount:    MaxCount4095,
			OpampBias:   OpampBias5,
			CSCap:       CSCap40,
			RFFilter:    true,
			CSDischarge: CSDischargeHalf,
			NMInStatic:  false,
		},
		Alp: AlpHardware{
			InitDelay:   InitDelay32,
			LP1AutoProx: AutoProxDisabled,
			LP2AutoProx: AutoProx4,
			MaxCount:    MaxCount16384,
			OpampBias:   OpampBias2,
			CSCap:       CSCap80,
			CSDischarge: CSDischarge0V,
			NMInStatic:  true,
		},
	}
	buf := in.encode()
	got, err := decodeHardware(buf[:])
	if err != nil {
		t.Fatalf("decodeHardware failed: %v", err)
	}
	if got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestDecodeHardwareReservedAutoProx(t *testing.T) {
	var buf [hardwareLen]byte
	putU16(buf[2:], 0b101<<2) // reserved LP1 auto-prox pattern
	if _, err := decodeHardware(buf[:]); err == nil {
		t.Error("decodeHardware accepted reserved auto-prox bits")
	}
}

func TestTrackpadRoundTrip(t *testing.T) {
	in := Trackpad{
		Axes:                Axes{FlipX: true, FlipY: false, Swap: true},
		Filters:             Filters{IRR: IrrFixed, MovingAverage: false},
		TotalRx:             3,
		TotalTx:             4,
		MaxTouches:          MaxTouchesOne,
		Resolution:          Resolution{X: 1920, Y: 1080},
		DynamicFilter:       DynamicFilterConfig{BottomSpeed: 10, TopSpeed: 200, BottomBeta: 12},
		StaticFilterBeta:    77,
		StationaryThreshold: 9,
		FingerSplitFactor:   0,
		Inset:               AxesInset{X: 5, Y: 15},
	}
	buf := in.encode()
	got, err := decodeTrackpad(buf[:])
	if err != nil {
		t.Fatalf("decodeTrackpad failed: %v", err)
	}
	if got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestDecodeTrackpadReservedBits(t *testing.T) {
	var buf [trackpadLen]byte
	buf[0] = 0b11 << 3 // reserved IRR filter pattern
	buf[3] = byte(MaxTouchesTwo)
	if _, err := decodeTrackpad(buf[:]); err == nil {
		t.Error("decodeTrackpad accepted reserved IRR filter bits")
	}

	buf[0] = 0
	buf[3] = 0b11 // reserved max-touches pattern
	if _, err := decodeTrackpad(buf[:]); err == nil {
		t.Error("decodeTrackpad accepted reserved max-touches bits")
	}
}

func TestGesturesRoundTrip(t *testing.T) {
	in := Gestures{
		Enable: GestureEnable{
			Tap:          TapEnable{Single: true, Triple: true},
			Palm:         true,
			Swipe:        SwipeEnable{PosX: true, NegY: true},
			SwipeAndHold: SwipeEnable{NegX: true},
		},
		Tap:           TapConfig{Duration: 120, AirDuration: 180, Distance: 25},
		HoldDuration:  500,
		Swipe:         SwipeConfig{Duration: 90, DistanceX: 150, DistanceY: 175, ConsecutiveX: 80, ConsecutiveY: 60, Angle: 37},
		PalmThreshold: 42,
	}
	buf := in.encode()
	if got := decodeGestures(buf[:]); got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestSysControlRoundTrip(t *testing.T) {
	in := SysControl{
		ChargeMode:     ChargeIdle,
		TrackpadReseed: true,
		AlpRetune:      true,
		SoftwareReset:  true,
		TxTest:         true,
	}
	got, err := sysControlFromBits(in.bits())
	if err != nil {
		t.Fatalf("sysControlFromBits failed: %v", err)
	}
	if got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}

	if _, err := sysControlFromBits(0b101); err == nil {
		t.Error("sysControlFromBits accepted a reserved charge mode")
	}
}

func TestConfigSettingsRoundTrip(t *testing.T) {
	in := ConfigSettings{
		TrackpadAutotune: true,
		CommsRequest:     true,
		EndComms:         true,
		InterruptMode:    Event,
		EventTriggers:    EventTriggers{Trackpad: true, Alp: true, TrackpadTouch: true},
	}
	if got := configSettingsFromBits(in.bits()); got != in {
		t.Errorf("decode(encode(x)) = %+v, want %+v", got, in)
	}
}

func TestDecodeVersion(t *testing.T) {
	buf := []byte{0x58, 0x04, 0x03, 0x00, 0x07, 0x00, 0x44, 0x33, 0x22, 0x11}
	want := Version{Number: ProductNumber, Major: 3, Minor: 7, Commit: 0x11223344}
	if got := decodeVersion(buf); got != want {
		t.Errorf("decodeVersion = %+v, want %+v", got, want)
	}
}

func TestWriteConfigStagesBlocks(t *testing.T) {
	d, bus := newTestDevice(t)

	if err := d.writeConfig(); err != nil {
		t.Fatalf("writeConfig failed: %v", err)
	}

	want := []byte{
		RegAlpAtiCompA,
		RegActiveModeReportRate,
		RegSysControl,
		RegAlpSetup,
		RegTouchMultipliers,
		RegTpConvFreq,
		RegTpHardware,
		RegTpRxSettings,
		RegSettingsVersion,
		RegGestureEnable,
		RegRxTxMapping,
		RegCycleTable0,
		RegCycleTable10,
		RegCycleTable20,
	}
	if got := bus.writeRegs(); !bytes.Equal(got, want) {
		t.Fatalf("write order = % #x, want % #x", got, want)
	}

	// The last chunk carries the final cycle plus the terminator.
	last := bus.writes[len(bus.writes)-1]
	if len(last) != 5 {
		t.Fatalf("last cycle chunk is %d bytes, want 5", len(last))
	}
	if last[4] != cycleTerminator {
		t.Errorf("cycle table terminator = %#02x, want %#02x", last[4], cycleTerminator)
	}
}

func TestWriteConfigDerivesLayoutFields(t *testing.T) {
	d, bus := newTestDevice(t)

	if err := d.writeConfig(); err != nil {
		t.Fatalf("writeConfig failed: %v", err)
	}

	// Trackpad block byte 1 and 2 carry the totals from the layout.
	if rx := bus.mem[int(RegTpRxSettings)*2+1]; rx != 2 {
		t.Errorf("staged TotalRx = %d, want 2", rx)
	}
	if tx := bus.mem[int(RegTpRxSettings)*2+2]; tx != 2 {
		t.Errorf("staged TotalTx = %d, want 2", tx)
	}

	// ALP setup byte 0 carries the Rx bitmap, bytes 2-3 the Tx bitmap.
	if m := bus.mem[int(RegAlpSetup)*2]; m != 1<<0 {
		t.Errorf("staged ALP Rx mask = %#02x, want %#02x", m, 1<<0)
	}
	txMask := getU16(bus.mem[int(RegAlpSetup)*2+2:])
	if txMask != 1<<8 {
		t.Errorf("staged ALP Tx mask = %#04x, want %#04x", txMask, 1<<8)
	}

	// The caller's config is never mutated.
	if d.config.Trackpad.TotalRx != 0 || d.config.Alp.Rx != 0 {
		t.Errorf("writeConfig mutated the config mirror: %+v", d.config.Trackpad)
	}
}
