package ds3231

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) readRegs(reg byte, dst []byte) error {
	d.w[0] = reg
	return d.i2c.Tx(d.addr, d.w[:1], dst)
}

func (d *Device) writeRegs(reg byte, vals ...byte) error {
	d.w[0] = reg
	n := copy(d.w[1:], vals)
	return d.i2c.Tx(d.addr, d.w[:1+n], nil)
}

// modify is the read-modify-write helper for bit registers.
func (d *Device) modify(reg byte, set, clear byte) error {
	cur, err := d.readReg(reg)
	if err != nil {
		return err
	}
	return d.writeRegs(reg, (cur|set)&^clear)
}
