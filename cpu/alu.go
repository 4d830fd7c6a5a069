// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Add with carry
func (cpu *CPU) adc(inst *Instruction) {
	v := cpu.Mem.LoadByte(cpu.mustAddress(inst))
	if cpu.Reg.PS.IsSet(Decimal) {
		cpu.Reg.A = cpu.Reg.PS.addDecimal(cpu.Reg.A, v)
	} else {
		cpu.Reg.A = cpu.Reg.PS.addWithCarry(cpu.Reg.A, v)
	}
	cpu.advance(inst)
}

// Subtract with carry. In binary mode this is an addition of the one's
// complement of the operand, so the carry must be set beforehand for a
// subtraction without borrow.
func (cpu *CPU) sbc(inst *Instruction) {
	v := cpu.Mem.LoadByte(cpu.mustAddress(inst))
	if cpu.Reg.PS.IsSet(Decimal) {
		cpu.Reg.A = cpu.Reg.PS.subDecimal(cpu.Reg.A, v)
	} else {
		cpu.Reg.A = cpu.Reg.PS.addWithCarry(cpu.Reg.A, ^v)
	}
	cpu.advance(inst)
}

// Apply a bitwise operator to the accumulator and a memory operand.
func (cpu *CPU) bitwise(inst *Instruction, op func(a, m byte) byte) {
	v := cpu.Mem.LoadByte(cpu.mustAddress(inst))
	cpu.Reg.A = op(cpu.Reg.A, v)
	cpu.Reg.PS.UpdateNZ(cpu.Reg.A)
	cpu.advance(inst)
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction) {
	cpu.bitwise(inst, func(a, m byte) byte { return a & m })
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction) {
	cpu.bitwise(inst, func(a, m byte) byte { return a | m })
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction) {
	cpu.bitwise(inst, func(a, m byte) byte { return a ^ m })
}

// Shift the operand left by one bit. When rotating, the old carry enters
// bit 0.
func (cpu *CPU) shiftLeft(inst *Instruction, rotate bool) {
	v := cpu.load(inst)
	oldCarry := cpu.Reg.PS.Bit(Carry)
	cpu.Reg.PS.Set(Carry, v&0x80 != 0)
	v <<= 1
	if rotate {
		v |= oldCarry
	}
	cpu.store(inst, v)
	cpu.Reg.PS.UpdateNZ(v)
	cpu.advance(inst)
}

// Shift the operand right by one bit. When rotating, the old carry enters
// bit 7.
func (cpu *CPU) shiftRight(inst *Instruction, rotate bool) {
	v := cpu.load(inst)
	oldCarry := cpu.Reg.PS.Bit(Carry)
	cpu.Reg.PS.Set(Carry, v&0x01 != 0)
	v >>= 1
	if rotate {
		v |= oldCarry << 7
	}
	cpu.store(inst, v)
	cpu.Reg.PS.UpdateNZ(v)
	cpu.advance(inst)
}

// Arithmetic Shift Left
func (cpu *CPU) asl(inst *Instruction) {
	cpu.shiftLeft(inst, false)
}

// Rotate left
func (cpu *CPU) rol(inst *Instruction) {
	cpu.shiftLeft(inst, true)
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction) {
	cpu.shiftRight(inst, false)
}

// Rotate right
func (cpu *CPU) ror(inst *Instruction) {
	cpu.shiftRight(inst, true)
}

// Bit Test. Negative and Overflow are copied from bits 7 and 6 of the
// memory operand, not from the AND result.
func (cpu *CPU) bit(inst *Instruction) {
	v := cpu.Mem.LoadByte(cpu.mustAddress(inst))
	cpu.Reg.PS.Set(Zero, v&cpu.Reg.A == 0)
	cpu.Reg.PS.Set(Negative, v&0x80 != 0)
	cpu.Reg.PS.Set(Overflow, v&0x40 != 0)
	cpu.advance(inst)
}

// Add 'delta' to a memory operand, wrapping at 8 bits.
func (cpu *CPU) stepMemory(inst *Instruction, delta byte) {
	addr := cpu.mustAddress(inst)
	v := cpu.Mem.LoadByte(addr) + delta
	cpu.storeByte(cpu, addr, v)
	cpu.Reg.PS.UpdateNZ(v)
	cpu.advance(inst)
}

// Add 'delta' to a register, wrapping at 8 bits.
func (cpu *CPU) stepRegister(inst *Instruction, reg Register, delta byte) {
	v := cpu.Reg.Get(reg) + delta
	cpu.Reg.Set(reg, v)
	cpu.Reg.PS.UpdateNZ(v)
	cpu.advance(inst)
}

// Increment memory value
func (cpu *CPU) inc(inst *Instruction) {
	cpu.stepMemory(inst, 1)
}

// Decrement memory value
func (cpu *CPU) dec(inst *Instruction) {
	cpu.stepMemory(inst, 0xff)
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction) {
	cpu.stepRegister(inst, RegX, 1)
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction) {
	cpu.stepRegister(inst, RegY, 1)
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction) {
	cpu.stepRegister(inst, RegX, 0xff)
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction) {
	cpu.stepRegister(inst, RegY, 0xff)
}
