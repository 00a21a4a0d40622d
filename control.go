package iqs7211e

import (
	"fmt"
)

// ChargeMode is the sensing power mode the controller is running in. The
// controller moves between modes on its own based on activity and the
// configured timeouts, unless manual control is enabled.
type ChargeMode uint8

const (
	ChargeActive    ChargeMode = 0
	ChargeIdleTouch ChargeMode = 1
	ChargeIdle      ChargeMode = 2
	ChargeLowPower1 ChargeMode = 3
	ChargeLowPower2 ChargeMode = 4
)

func chargeModeFromBits(v uint8) (ChargeMode, error) {
	m := ChargeMode(v & 0x07)
	if m > ChargeLowPower2 {
		return 0, fmt.Errorf("iqs7211e: reserved charge mode bits 0b%03b", v&0x07)
	}
	return m, nil
}

// InterruptMode selects how the RDY line is driven.
type InterruptMode uint8

const (
	// Stream asserts RDY after every sensing cycle.
	Stream InterruptMode = 0
	// Event asserts RDY only when an enabled event trigger fires.
	Event InterruptMode = 1
)

// SysControl mirrors the system control word at RegSysControl. The reseed,
// retune, reset and ack bits are commands: the controller clears them once
// acted upon.
type SysControl struct {
	ChargeMode     ChargeMode
	TrackpadReseed bool
	AlpReseed      bool
	TrackpadRetune bool
	AlpRetune      bool
	AckReset       bool
	SoftwareReset  bool
	Suspend        bool
	TxTest         bool
}

func defaultSysControl() SysControl {
	return SysControl{ChargeMode: ChargeLowPower1}
}

func (s SysControl) bits() uint16 {
	v := uint16(s.ChargeMode) & 0x07
	if s.TrackpadReseed {
		v |= 1 << 3
	}
	if s.AlpReseed {
		v |= 1 << 4
	}
	if s.TrackpadRetune {
		v |= 1 << 5
	}
	if s.AlpRetune {
		v |= 1 << 6
	}
	if s.AckReset {
		v |= 1 << 7
	}
	if s.SoftwareReset {
		v |= 1 << 9
	}
	if s.Suspend {
		v |= 1 << 11
	}
	if s.TxTest {
		v |= 1 << 15
	}
	return v
}

func sysControlFromBits(v uint16) (SysControl, error) {
	mode, err := chargeModeFromBits(uint8(v))
	if err != nil {
		return SysControl{}, err
	}
	return SysControl{
		ChargeMode:     mode,
		TrackpadReseed: v&(1<<3) != 0,
		AlpReseed:      v&(1<<4) != 0,
		TrackpadRetune: v&(1<<5) != 0,
		AlpRetune:      v&(1<<6) != 0,
		AckReset:       v&(1<<7) != 0,
		SoftwareReset:  v&(1<<9) != 0,
		Suspend:        v&(1<<11) != 0,
		TxTest:         v&(1<<15) != 0,
	}, nil
}

// ConfigSettings mirrors the configuration word at RegConfigSettings.
type ConfigSettings struct {
	TrackpadAutotune bool
	AlpAutotune      bool
	CommsRequest     bool
	Watchdog         bool
	EndComms         bool
	ManualControl    bool
	InterruptMode    InterruptMode
	EventTriggers    EventTriggers
}

func defaultConfigSettings() ConfigSettings {
	return ConfigSettings{
		TrackpadAutotune: true,
		AlpAutotune:      true,
		Watchdog:         true,
		InterruptMode:    Stream,
		EventTriggers:    EventTriggers{Gesture: true, Trackpad: true},
	}
}

func (c ConfigSettings) bits() uint16 {
	var v uint16
	if c.TrackpadAutotune {
		v |= 1 << 2
	}
	if c.AlpAutotune {
		v |= 1 << 3
	}
	if c.CommsRequest {
		v |= 1 << 4
	}
	if c.Watchdog {
		v |= 1 << 5
	}
	if c.EndComms {
		v |= 1 << 6
	}
	if c.ManualControl {
		v |= 1 << 7
	}
	if c.InterruptMode == Event {
		v |= 1 << 8
	}
	t := c.EventTriggers
	if t.Gesture {
		v |= 1 << 9
	}
	if t.Trackpad {
		v |= 1 << 10
	}
	if t.Retuning {
		v |= 1 << 11
	}
	if t.Alp {
		v |= 1 << 13
	}
	if t.TrackpadTouch {
		v |= 1 << 14
	}
	return v
}

func configSettingsFromBits(v uint16) ConfigSettings {
	mode := Stream
	if v&(1<<8) != 0 {
		mode = Event
	}
	return ConfigSettings{
		TrackpadAutotune: v&(1<<2) != 0,
		AlpAutotune:      v&(1<<3) != 0,
		CommsRequest:     v&(1<<4) != 0,
		Watchdog:         v&(1<<5) != 0,
		EndComms:         v&(1<<6) != 0,
		ManualControl:    v&(1<<7) != 0,
		InterruptMode:    mode,
		EventTriggers: EventTriggers{
			Gesture:       v&(1<<9) != 0,
			Trackpad:      v&(1<<10) != 0,
			Retuning:      v&(1<<11) != 0,
			Alp:           v&(1<<13) != 0,
			TrackpadTouch: v&(1<<14) != 0,
		},
	}
}

// EventTriggers selects which events assert the RDY line in Event mode.
type EventTriggers struct {
	Gesture       bool
	Trackpad      bool
	Retuning      bool
	Alp           bool
	TrackpadTouch bool
}

// Version is the application or ROM version block starting at RegAppVersion.
type Version struct {
	// Number identifies the product. An IQS7211E reports ProductNumber.
	Number uint16
	Major  uint8
	Minor  uint8
	Commit uint32
}

const versionLen = 10

func decodeVersion(buf []byte) Version {
	return Version{
		Number: getU16(buf[0:]),
		Major:  buf[2],
		Minor:  buf[4],
		Commit: uint32(buf[6]) | uint32(buf[7])<<8 | uint32(buf[8])<<16 | uint32(buf[9])<<24,
	}
}

// AppVersion reads the application version block from the device.
func (d *Device) AppVersion() (Version, error) {
	var buf [versionLen]byte
	if err := d.readBytes(RegAppVersion, buf[:]); err != nil {
		return Version{}, fmt.Errorf("iqs7211e: could not read app version: %w", err)
	}
	return decodeVersion(buf[:]), nil
}

// SysControl reads the current system control word.
func (d *Device) SysControl() (SysControl, error) {
	v, err := d.readU16(RegSysControl)
	if err != nil {
		return SysControl{}, fmt.Errorf("iqs7211e: could not read sys control: %w", err)
	}
	return sysControlFromBits(v)
}

// modifySysControl applies fn to the device's current system control word
// and writes the result back.
func (d *Device) modifySysControl(fn func(*SysControl)) error {
	s, err := d.SysControl()
	if err != nil {
		return err
	}
	fn(&s)
	if err := d.writeU16(RegSysControl, s.bits()); err != nil {
		return fmt.Errorf("iqs7211e: could not write sys control: %w", err)
	}
	return nil
}

// ConfigSettings reads the current configuration settings word.
func (d *Device) ConfigSettings() (ConfigSettings, error) {
	v, err := d.readU16(RegConfigSettings)
	if err != nil {
		return ConfigSettings{}, fmt.Errorf("iqs7211e: could not read config settings: %w", err)
	}
	return configSettingsFromBits(v), nil
}

func (d *Device) modifyConfigSettings(fn func(*ConfigSettings)) error {
	c, err := d.ConfigSettings()
	if err != nil {
		return err
	}
	fn(&c)
	if err := d.writeU16(RegConfigSettings, c.bits()); err != nil {
		return fmt.Errorf("iqs7211e: could not write config settings: %w", err)
	}
	return nil
}

// AckReset sets the ACK_RESET bit, clearing the ShowReset flag in InfoFlags.
func (d *Device) AckReset() error {
	return d.modifySysControl(func(s *SysControl) { s.AckReset = true })
}

// SoftwareReset issues a software reset to the controller.
func (d *Device) SoftwareReset() error {
	return d.modifySysControl(func(s *SysControl) { s.SoftwareReset = true })
}

// TriggerRetune starts a fresh trackpad calibration routine. Completion is
// reported through the ReAtiOccurred flag in InfoFlags.
func (d *Device) TriggerRetune() error {
	return d.modifySysControl(func(s *SysControl) { s.TrackpadRetune = true })
}

// TriggerAlpRetune starts a calibration routine on the low-power channel.
func (d *Device) TriggerAlpRetune() error {
	return d.modifySysControl(func(s *SysControl) { s.AlpRetune = true })
}

// SetChargeMode requests a sensing power mode. The controller only holds the
// requested mode while manual control is enabled.
func (d *Device) SetChargeMode(mode ChargeMode) error {
	return d.modifySysControl(func(s *SysControl) { s.ChargeMode = mode })
}

// SetInterruptMode switches RDY line delivery between Stream and Event.
func (d *Device) SetInterruptMode(mode InterruptMode) error {
	return d.modifyConfigSettings(func(c *ConfigSettings) { c.InterruptMode = mode })
}

// SetManualControl enables or disables manual charge mode control.
func (d *Device) SetManualControl(on bool) error {
	return d.modifyConfigSettings(func(c *ConfigSettings) { c.ManualControl = on })
}
