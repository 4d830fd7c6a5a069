// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Push a value 'v' onto the stack. The stack pointer wraps within page 1.
func (cpu *CPU) push(v byte) {
	cpu.storeByte(cpu, stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// Pop a value from the stack and return it.
func (cpu *CPU) pop() byte {
	cpu.Reg.SP++
	return cpu.Mem.LoadByte(stackAddress(cpu.Reg.SP))
}

// Push the address 'addr' onto the stack, high byte first.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// Pop a 16-bit address off the stack, low byte first.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | uint16(hi)<<8
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction) {
	cpu.push(cpu.Reg.A)
	cpu.advance(inst)
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction) {
	cpu.push(byte(cpu.Reg.PS))
	cpu.advance(inst)
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction) {
	cpu.Reg.A = cpu.pop()
	cpu.Reg.PS.UpdateNZ(cpu.Reg.A)
	cpu.advance(inst)
}

// Pull (pop) Processor flags. The reserved bit always reads back as 1.
func (cpu *CPU) plp(inst *Instruction) {
	cpu.Reg.PS.Load(cpu.pop())
	cpu.advance(inst)
}
