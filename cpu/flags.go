// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// UpdateCarry sets the Carry flag to bit 8 of the unsigned sum a+n. The
// second operand is 16 bits wide so that a folded-in carry, or a two's
// complement negation of zero, is not truncated before the sum is formed.
func (ps *Status) UpdateCarry(a byte, n uint16) {
	sum := uint16(a) + n
	ps.Set(Carry, sum&0x100 != 0)
}

// UpdateOverflow sets the Overflow flag when the operands 'm' and 'n' share
// a sign bit that differs from the sign bit of the wrapped result 'r'.
func (ps *Status) UpdateOverflow(m, n, r byte) {
	ps.Set(Overflow, (m^r)&(n^r)&0x80 != 0)
}

// UpdateNZ updates the Zero and Negative flags based on the value of 'v'.
func (ps *Status) UpdateNZ(v byte) {
	ps.Set(Zero, v == 0)
	ps.Set(Negative, int8(v) < 0)
}

// addWithCarry adds 'n' and the current carry to 'a' and returns the
// wrapped 8-bit sum. Carry, Overflow, Zero and Negative are updated from
// the result. Overflow is derived from the operand as supplied, not from
// the carry-adjusted one.
func (ps *Status) addWithCarry(a, n byte) byte {
	adjusted := uint16(n) + uint16(ps.Bit(Carry))
	sum := byte(uint16(a) + adjusted)
	ps.UpdateCarry(a, adjusted)
	ps.UpdateOverflow(a, n, sum)
	ps.UpdateNZ(sum)
	return sum
}

// addDecimal performs an NMOS-style packed BCD addition of 'a', 'n' and
// the carry flag. Zero and Negative are derived from the binary sum, as
// on the NMOS part.
func (ps *Status) addDecimal(a, n byte) byte {
	acc, add := uint32(a), uint32(n)
	carry := uint32(ps.Bit(Carry))

	lo := (acc & 0x0f) + (add & 0x0f) + carry
	var carrylo uint32
	if lo >= 0x0a {
		carrylo = 0x10
		lo -= 0x0a
	}

	hi := (acc & 0xf0) + (add & 0xf0) + carrylo
	ps.Set(Overflow, (acc^hi)&0x80 != 0 && (acc^add)&0x80 == 0)
	if hi >= 0xa0 {
		ps.Set(Carry, true)
		hi -= 0xa0
	} else {
		ps.Set(Carry, false)
	}

	ps.UpdateNZ(byte(acc + add + carry))
	return byte(hi | (lo & 0x0f))
}

// subDecimal performs an NMOS-style packed BCD subtraction of 'n' and the
// borrow (inverted carry) from 'a'. Carry, Overflow, Zero and Negative are
// set exactly as the equivalent binary subtraction would set them.
func (ps *Status) subDecimal(a, n byte) byte {
	acc, sub := uint32(a), uint32(n)
	carry := uint32(ps.Bit(Carry))

	lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry
	var carrylo uint32
	if lo < 0x10 {
		lo -= 0x06
	} else {
		lo -= 0x10
		carrylo = 0x10
	}

	hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo
	if hi < 0x100 {
		hi -= 0x60
	} else {
		hi -= 0x100
	}

	ps.addWithCarry(a, ^n)
	return byte(hi | (lo & 0x0f))
}
