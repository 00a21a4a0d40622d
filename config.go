package iqs7211e

import "fmt"

// Config aggregates every tunable block of the device. A zero Config is not
// usable; start from DefaultConfig and adjust fields for the sensor hardware
// at hand.
type Config struct {
	AutoTune            AutoTune
	Timing              Timing
	Alp                 Alp
	ChannelOutput       ChannelOutput
	ConversionFrequency ConversionFrequency
	Hardware            Hardware
	Trackpad            Trackpad
	Gestures            Gestures
	// Layout describes the electrode wiring. It drives the Rx/Tx mapping,
	// the cycle table and the derived fields of Trackpad and Alp.
	Layout PinLayout
	// InterruptMode is applied as the final bring-up step, after the ATI
	// routine has settled.
	InterruptMode InterruptMode
}

// DefaultConfig returns a configuration seeded with the datasheet defaults.
// The pin layout is empty and must be supplied before Initialize.
func DefaultConfig() Config {
	return Config{
		AutoTune:            defaultAutoTune(),
		Timing:              defaultTiming(),
		Alp:                 defaultAlp(),
		ChannelOutput:       defaultChannelOutput(),
		ConversionFrequency: defaultConversionFrequency(),
		Hardware:            defaultHardware(),
		Trackpad:            defaultTrackpad(),
		Gestures:            defaultGestures(),
		InterruptMode:       Event,
	}
}

// systemSettings is the control word block at registers 0x33-0x35, written
// with defaults during the configuration transfer. The live words are
// modified afterwards through SysControl and ConfigSettings operations.
type systemSettings struct {
	SysControl     SysControl
	ConfigSettings ConfigSettings
	Other          uint16
}

const systemSettingsLen = 6

func defaultSystemSettings() systemSettings {
	return systemSettings{
		SysControl:     defaultSysControl(),
		ConfigSettings: defaultConfigSettings(),
	}
}

func (s systemSettings) encode() [systemSettingsLen]byte {
	var out [systemSettingsLen]byte
	putU16(out[0:], s.SysControl.bits())
	putU16(out[2:], s.ConfigSettings.bits())
	putU16(out[4:], s.Other)
	return out
}

// writeConfig stages the full configuration into the register map. Fields
// derived from the pin layout (trackpad totals, ALP pin bitmaps) are
// recomputed on a local copy first, so the caller's Config is never mutated.
//
// The device must have a communication window open. The cycle table exceeds
// the 31-byte write ceiling and is transferred in three chunks; the last
// chunk carries the terminator byte.
func (d *Device) writeConfig() error {
	c := d.config
	c.Trackpad.TotalRx = uint8(c.Layout.RxCount())
	c.Trackpad.TotalTx = uint8(c.Layout.TxCount())
	c.Alp.Rx = c.Layout.alpRxMask()
	c.Alp.Tx = c.Layout.alpTxMask()

	autoTune := c.AutoTune.encode()
	if err := d.writeBytes(RegAlpAtiCompA, autoTune[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write auto-tune block: %w", err)
	}
	timing := c.Timing.encode()
	if err := d.writeBytes(RegActiveModeReportRate, timing[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write timing block: %w", err)
	}
	system := defaultSystemSettings().encode()
	if err := d.writeBytes(RegSysControl, system[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write system settings: %w", err)
	}
	alp := c.Alp.encode()
	if err := d.writeBytes(RegAlpSetup, alp[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write ALP setup: %w", err)
	}
	output := c.ChannelOutput.encode()
	if err := d.writeBytes(RegTouchMultipliers, output[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write channel output block: %w", err)
	}
	freq := c.ConversionFrequency.encode()
	if err := d.writeBytes(RegTpConvFreq, freq[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write conversion frequencies: %w", err)
	}
	hw := c.Hardware.encode()
	if err := d.writeBytes(RegTpHardware, hw[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write hardware block: %w", err)
	}
	tp := c.Trackpad.encode()
	if err := d.writeBytes(RegTpRxSettings, tp[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write trackpad block: %w", err)
	}
	if err := d.writeBytes(RegSettingsVersion, []byte{0, 0}); err != nil {
		return fmt.Errorf("iqs7211e: could not write settings version: %w", err)
	}
	gestures := c.Gestures.encode()
	if err := d.writeBytes(RegGestureEnable, gestures[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write gesture block: %w", err)
	}
	mapping := c.Layout.mapping()
	if err := d.writeBytes(RegRxTxMapping, mapping[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write Rx/Tx mapping: %w", err)
	}

	cycles := c.Layout.cycleBytes()
	if err := d.writeBytes(RegCycleTable0, cycles[:30]); err != nil {
		return fmt.Errorf("iqs7211e: could not write cycles 0-9: %w", err)
	}
	if err := d.writeBytes(RegCycleTable10, cycles[30:60]); err != nil {
		return fmt.Errorf("iqs7211e: could not write cycles 10-19: %w", err)
	}
	if err := d.writeBytes(RegCycleTable20, cycles[60:]); err != nil {
		return fmt.Errorf("iqs7211e: could not write cycle 20: %w", err)
	}

	return nil
}
