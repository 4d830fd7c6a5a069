// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Compare register 'reg' with a memory operand by adding the operand's
// two's complement negation. Carry, Overflow, Zero and Negative follow the
// sum, the incoming carry is ignored and the register keeps its value.
func (cpu *CPU) compare(inst *Instruction, reg Register) {
	a := cpu.Reg.Get(reg)
	neg := 0x100 - uint16(cpu.Mem.LoadByte(cpu.mustAddress(inst)))
	r := a + byte(neg)
	cpu.Reg.PS.UpdateCarry(a, neg)
	cpu.Reg.PS.UpdateOverflow(a, byte(neg), r)
	cpu.Reg.PS.UpdateNZ(r)
	cpu.advance(inst)
}

// Compare to accumulator
func (cpu *CPU) cmp(inst *Instruction) {
	cpu.compare(inst, RegA)
}

// Compare to X register
func (cpu *CPU) cpx(inst *Instruction) {
	cpu.compare(inst, RegX)
}

// Compare to Y register
func (cpu *CPU) cpy(inst *Instruction) {
	cpu.compare(inst, RegY)
}

// Resolve the target of a jump. Only Absolute and Indirect jumps exist.
func (cpu *CPU) jumpTarget(inst *Instruction) uint16 {
	if inst.Mode != ABS && inst.Mode != IND {
		panic("invalid addressing mode for " + inst.Name)
	}
	return cpu.mustAddress(inst)
}

// Jump to memory address
func (cpu *CPU) jmp(inst *Instruction) {
	cpu.Reg.PC = cpu.jumpTarget(inst)
}

// Jump to subroutine. The address of the last byte of the JSR instruction
// is pushed, high byte first.
func (cpu *CPU) jsr(inst *Instruction) {
	target := cpu.jumpTarget(inst)
	ret := cpu.Reg.PC + uint16(inst.Length) - 1
	cpu.push(byte(ret >> 8))
	cpu.push(byte(ret))
	cpu.Reg.PC = target
}

// Return from Subroutine. The pulled address is one less than the address
// of the instruction that follows the JSR.
func (cpu *CPU) rts(inst *Instruction) {
	cpu.Reg.SetPCL(cpu.pop())
	cpu.Reg.SetPCH(cpu.pop())
	cpu.Reg.PC++
}

// Return from interrupt
func (cpu *CPU) rti(inst *Instruction) {
	cpu.Reg.PS.Load(cpu.pop())
	cpu.Reg.PC = cpu.popAddress()
}

// Break. The return address skips the padding byte that follows BRK.
func (cpu *CPU) brk(inst *Instruction) {
	cpu.Reg.PC += 2
	cpu.handleInterrupt(true, vectorBRK)
}

// Execute a branch if condition 'c' holds. The signed displacement is
// relative to the address of the instruction following the branch.
func (cpu *CPU) branch(inst *Instruction, c Condition) {
	if !c.Test(cpu.Reg.PS) {
		cpu.advance(inst)
		return
	}
	offset := int8(cpu.Mem.LoadByte(cpu.mustAddress(inst)))
	cpu.advance(inst)
	cpu.Reg.PC += uint16(int16(offset))
}

// Branch if Carry Clear
func (cpu *CPU) bcc(inst *Instruction) {
	cpu.branch(inst, CarryClear)
}

// Branch if Carry Set
func (cpu *CPU) bcs(inst *Instruction) {
	cpu.branch(inst, CarrySet)
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction) {
	cpu.branch(inst, Equal)
}

// Branch if MInus (negative)
func (cpu *CPU) bmi(inst *Instruction) {
	cpu.branch(inst, Minus)
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne(inst *Instruction) {
	cpu.branch(inst, NotEqual)
}

// Branch if PLus (positive)
func (cpu *CPU) bpl(inst *Instruction) {
	cpu.branch(inst, Plus)
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc(inst *Instruction) {
	cpu.branch(inst, OverflowClear)
}

// Branch if oVerflow Set
func (cpu *CPU) bvs(inst *Instruction) {
	cpu.branch(inst, OverflowSet)
}

// Set or clear a single status flag.
func (cpu *CPU) setFlag(inst *Instruction, f Flag, on bool) {
	cpu.Reg.PS.Set(f, on)
	cpu.advance(inst)
}

// Clear Carry flag
func (cpu *CPU) clc(inst *Instruction) {
	cpu.setFlag(inst, Carry, false)
}

// Clear Decimal flag
func (cpu *CPU) cld(inst *Instruction) {
	cpu.setFlag(inst, Decimal, false)
}

// Clear InterruptDisable flag
func (cpu *CPU) cli(inst *Instruction) {
	cpu.setFlag(inst, InterruptDisable, false)
}

// Clear oVerflow flag
func (cpu *CPU) clv(inst *Instruction) {
	cpu.setFlag(inst, Overflow, false)
}

// Set Carry flag
func (cpu *CPU) sec(inst *Instruction) {
	cpu.setFlag(inst, Carry, true)
}

// Set Decimal flag
func (cpu *CPU) sed(inst *Instruction) {
	cpu.setFlag(inst, Decimal, true)
}

// Set InterruptDisable flag
func (cpu *CPU) sei(inst *Instruction) {
	cpu.setFlag(inst, InterruptDisable, true)
}

// No-operation
func (cpu *CPU) nop(inst *Instruction) {
	cpu.advance(inst)
}
