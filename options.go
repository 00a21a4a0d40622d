package iqs7211e

// An Option configures a device.
type Option func(d *Device) Option

// OnAddr can be used to specify an alternative I²C address. By default, the
// address is 0x56.
func OnAddr(addr uint16) Option {
	return func(d *Device) Option {
		old := d.addr
		d.addr = addr
		return OnAddr(old)
	}
}
