package iqs7211e

import "fmt"

// SetupSession is an interactive tuning session. It holds the device in
// Stream mode with manual charge control, so the diagnostic pages can be
// sampled at a steady rate while electrodes are probed.
//
// End a session with Finish to restore the previous operating mode, or with
// Close to abandon it. Only one session may be active per device.
type SetupSession struct {
	d            *Device
	prevMode     InterruptMode
	prevAutoProx AutoProxCycles
	done         bool
}

// BeginTuning reinitializes the device for tuning: interrupt delivery is
// forced to Stream and LP1 auto-prox is disabled so conversions run every
// cycle, then the device is brought up, put under manual control and parked
// in LowPower1. On error the configuration mirror is restored and the device
// is left in whatever state the bring-up reached.
func (d *Device) BeginTuning() (*SetupSession, error) {
	s := &SetupSession{
		d:            d,
		prevMode:     d.config.InterruptMode,
		prevAutoProx: d.config.Hardware.Alp.LP1AutoProx,
	}
	d.config.InterruptMode = Stream
	d.config.Hardware.Alp.LP1AutoProx = AutoProxDisabled

	if err := d.Initialize(); err != nil {
		s.restoreMirror()
		return nil, fmt.Errorf("iqs7211e: could not enter tuning session: %w", err)
	}

	d.waitReady()
	if err := d.SetManualControl(true); err != nil {
		s.restoreMirror()
		return nil, err
	}
	if err := d.SetChargeMode(ChargeLowPower1); err != nil {
		s.restoreMirror()
		return nil, err
	}
	return s, nil
}

// TuningSnapshot is one sample of the diagnostic pages. BaseTargets and
// Deltas hold one value per trackpad channel, in channel index order.
type TuningSnapshot struct {
	Info        InfoFlags
	BaseTargets []uint16
	Deltas      []uint16
	AlpCount    uint16
	AlpLTA      uint16
	AlpCountA   uint16
	AlpCountB   uint16
	AlpCompA    uint16
	AlpCompB    uint16
}

// Snapshot awaits the next communication window and samples the per-channel
// base targets and deltas along with the ALP channel counts and
// compensation.
func (s *SetupSession) Snapshot() (TuningSnapshot, error) {
	d := s.d
	d.waitReady()

	info, err := d.InfoFlags()
	if err != nil {
		return TuningSnapshot{}, err
	}

	n := d.config.Layout.Channels()
	snap := TuningSnapshot{
		Info:        info,
		BaseTargets: make([]uint16, n),
		Deltas:      make([]uint16, n),
	}
	for i := 0; i < n; i++ {
		if snap.BaseTargets[i], err = d.readExtU16(ExtBaseTargets + uint16(i)); err != nil {
			return TuningSnapshot{}, err
		}
		if snap.Deltas[i], err = d.readExtU16(ExtDeltas + uint16(i)); err != nil {
			return TuningSnapshot{}, err
		}
	}

	if snap.AlpCount, err = d.readU16(RegAlpCount); err != nil {
		return TuningSnapshot{}, err
	}
	if snap.AlpLTA, err = d.readU16(RegAlpLta); err != nil {
		return TuningSnapshot{}, err
	}
	if snap.AlpCountA, err = d.readU16(RegAlpCountA); err != nil {
		return TuningSnapshot{}, err
	}
	if snap.AlpCountB, err = d.readU16(RegAlpCountB); err != nil {
		return TuningSnapshot{}, err
	}
	if snap.AlpCompA, err = d.readU16(RegAlpAtiCompA); err != nil {
		return TuningSnapshot{}, err
	}
	if snap.AlpCompB, err = d.readU16(RegAlpAtiCompB); err != nil {
		return TuningSnapshot{}, err
	}
	return snap, nil
}

// Finish ends the session and puts the device back in its previous operating
// mode: manual control is released, the restored auto-prox setting is
// written back and interrupt delivery returns to the pre-session mode.
func (s *SetupSession) Finish() error {
	if s.done {
		return nil
	}
	d := s.d
	s.restoreMirror()
	s.done = true

	d.waitReady()
	if err := d.SetManualControl(false); err != nil {
		return err
	}
	hw := d.config.Hardware.encode()
	if err := d.writeBytes(RegTpHardware, hw[:]); err != nil {
		return fmt.Errorf("iqs7211e: could not restore hardware block: %w", err)
	}
	return d.SetInterruptMode(s.prevMode)
}

// Close abandons the session: the configuration mirror is restored so a
// later Initialize brings the device back to normal operation, but the
// device itself is left as is. Safe to defer alongside Finish; closing a
// finished session is a no-op.
func (s *SetupSession) Close() error {
	if s.done {
		return nil
	}
	s.restoreMirror()
	s.done = true
	return nil
}

func (s *SetupSession) restoreMirror() {
	s.d.config.InterruptMode = s.prevMode
	s.d.config.Hardware.Alp.LP1AutoProx = s.prevAutoProx
}
