// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// EffectiveAddress computes the address an instruction at r.PC operates on
// under addressing mode 'mode'. Operand bytes are read starting at PC+1;
// the program counter is never advanced. For ACC and IMP modes there is no
// memory operand and ok is false.
func EffectiveAddress(r *Registers, m Memory, mode Mode) (addr uint16, ok bool) {
	operand := r.PC + 1

	switch mode {
	case ACC, IMP:
		return 0, false
	case IMM, REL:
		return operand, true
	case ABS:
		return m.LoadAddress(operand), true
	case ABX:
		return m.LoadAddress(operand) + uint16(r.X), true
	case ABY:
		return m.LoadAddress(operand) + uint16(r.Y), true
	case IND:
		return m.LoadAddress(m.LoadAddress(operand)), true
	case ZPG:
		return uint16(m.LoadByte(operand)), true
	case ZPX:
		return uint16(m.LoadByte(operand) + r.X), true
	case ZPY:
		return uint16(m.LoadByte(operand) + r.Y), true
	case IDX:
		return loadZeroPageAddress(m, m.LoadByte(operand)+r.X), true
	case IDY:
		return loadZeroPageAddress(m, m.LoadByte(operand)) + uint16(r.Y), true
	default:
		panic("invalid addressing mode")
	}
}

// Load a 16-bit pointer from the zero page. The high byte comes from the
// following zero-page location, so a pointer at $FF takes its high byte
// from $00.
func loadZeroPageAddress(m Memory, zp byte) uint16 {
	return uint16(m.LoadByte(uint16(zp))) | uint16(m.LoadByte(uint16(zp+1)))<<8
}

// EffectiveAddress resolves 'mode' against the CPU's current registers and
// memory.
func (cpu *CPU) EffectiveAddress(mode Mode) (addr uint16, ok bool) {
	return EffectiveAddress(&cpu.Reg, cpu.Mem, mode)
}

// Resolve the address of a memory operand. Instructions that cannot work on
// a register operand call this, so a missing address is a programming
// error in the opcode table.
func (cpu *CPU) mustAddress(inst *Instruction) uint16 {
	addr, ok := cpu.EffectiveAddress(inst.Mode)
	if !ok {
		panic("invalid addressing mode for " + inst.Name)
	}
	return addr
}

// Load the byte operand of an instruction, either from memory or from the
// accumulator.
func (cpu *CPU) load(inst *Instruction) byte {
	if addr, ok := cpu.EffectiveAddress(inst.Mode); ok {
		return cpu.Mem.LoadByte(addr)
	}
	return cpu.Reg.A
}

// Advance the program counter past the instruction.
func (cpu *CPU) advance(inst *Instruction) {
	cpu.Reg.PC += uint16(inst.Length)
}
