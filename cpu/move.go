// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Load register 'reg' from memory.
func (cpu *CPU) loadRegister(inst *Instruction, reg Register) {
	v := cpu.Mem.LoadByte(cpu.mustAddress(inst))
	cpu.Reg.Set(reg, v)
	cpu.Reg.PS.UpdateNZ(v)
	cpu.advance(inst)
}

// Store register 'reg' to memory.
func (cpu *CPU) storeRegister(inst *Instruction, reg Register) {
	cpu.storeByte(cpu, cpu.mustAddress(inst), cpu.Reg.Get(reg))
	cpu.advance(inst)
}

// Copy register 'src' into register 'dst'.
func (cpu *CPU) transfer(inst *Instruction, src, dst Register) {
	v := cpu.Reg.Get(src)
	cpu.Reg.Set(dst, v)
	if dst != RegSP {
		cpu.Reg.PS.UpdateNZ(v)
	}
	cpu.advance(inst)
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction) {
	cpu.loadRegister(inst, RegA)
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction) {
	cpu.loadRegister(inst, RegX)
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction) {
	cpu.loadRegister(inst, RegY)
}

// store Accumulator
func (cpu *CPU) sta(inst *Instruction) {
	cpu.storeRegister(inst, RegA)
}

// store X register
func (cpu *CPU) stx(inst *Instruction) {
	cpu.storeRegister(inst, RegX)
}

// store Y register
func (cpu *CPU) sty(inst *Instruction) {
	cpu.storeRegister(inst, RegY)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction) {
	cpu.transfer(inst, RegA, RegX)
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction) {
	cpu.transfer(inst, RegA, RegY)
}

// Transfer Stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction) {
	cpu.transfer(inst, RegSP, RegX)
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction) {
	cpu.transfer(inst, RegX, RegA)
}

// Transfer X register to the Stack pointer. Flags are not affected.
func (cpu *CPU) txs(inst *Instruction) {
	cpu.transfer(inst, RegX, RegSP)
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction) {
	cpu.transfer(inst, RegY, RegA)
}
