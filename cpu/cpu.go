// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements the NMOS 6502 instruction set and an emulator
// that executes it against a flat 64K memory.
package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is returned when the CPU fetches an opcode that has no
// documented instruction.
var ErrIllegalOpcode = errors.New("illegal opcode")

// An OpcodeError describes an illegal opcode fetched by the CPU.
type OpcodeError struct {
	Opcode byte   // the opcode value
	Addr   uint16 // address the opcode was fetched from
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%v $%02X at $%04X", ErrIllegalOpcode, e.Opcode, e.Addr)
}

func (e *OpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}

// BrkHandler is an interface implemented by types that wish to be notified
// when a BRK instruction is about to be executed.
type BrkHandler interface {
	OnBrk(cpu *CPU)
}

// CPU represents a single 6502 CPU. It contains a pointer to the
// memory associated with the CPU.
type CPU struct {
	Reg        Registers       // CPU registers
	Mem        Memory          // assigned memory
	Cycles     uint64          // total executed CPU cycles
	LastPC     uint16          // Previous program counter
	InstSet    *InstructionSet // Instruction set used by the CPU
	debugger   *Debugger
	brkHandler BrkHandler
	storeByte  func(cpu *CPU, addr uint16, v byte)
}

// Interrupt vectors
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

// NewCPU creates an emulated 6502 CPU bound to the specified memory. The
// memory is not owned by the CPU and may be shared with other users.
func NewCPU(m Memory) *CPU {
	cpu := &CPU{
		Mem:       m,
		InstSet:   GetInstructionSet(),
		storeByte: (*CPU).storeByteNormal,
	}

	cpu.Reg.Init()
	return cpu
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// Boot clears the program counter and then loads it from the reset vector
// at $FFFC.
func (cpu *CPU) Boot() {
	cpu.Reg.PC = 0
	cpu.Reg.PC = cpu.Mem.LoadAddress(vectorReset)
}

// Reset re-initializes all registers and then boots the CPU.
func (cpu *CPU) Reset() {
	cpu.Reg.Init()
	cpu.Boot()
}

// GetInstruction returns the instruction opcode at the requested address.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Mem.LoadByte(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the next instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	opcode := cpu.Mem.LoadByte(addr)
	inst := cpu.InstSet.Lookup(opcode)
	return addr + uint16(inst.Length)
}

// Step the cpu by one instruction. An illegal opcode leaves the CPU state
// untouched and returns an *OpcodeError.
func (cpu *CPU) Step() error {
	// Grab the next opcode at the current PC
	opcode := cpu.Mem.LoadByte(cpu.Reg.PC)

	// Look up the instruction data for the opcode
	inst := cpu.InstSet.Lookup(opcode)
	if inst.fn == nil {
		return &OpcodeError{Opcode: opcode, Addr: cpu.Reg.PC}
	}

	// If a BRK instruction is about to be executed and a BRK handler has been
	// installed, call the BRK handler instead of executing the instruction.
	if inst.Opcode == 0x00 && cpu.brkHandler != nil {
		cpu.brkHandler.OnBrk(cpu)
		return nil
	}

	cpu.LastPC = cpu.Reg.PC
	inst.fn(cpu, inst)
	cpu.Cycles += uint64(inst.Cycles)

	// Update the debugger so it handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
	return nil
}

// AttachBrkHandler attaches a handler that is called whenever the BRK
// instruction is executed.
func (cpu *CPU) AttachBrkHandler(handler BrkHandler) {
	cpu.brkHandler = handler
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the currently debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// IRQ raises a maskable interrupt request. It is ignored while the
// InterruptDisable flag is set.
func (cpu *CPU) IRQ() {
	if !cpu.Reg.PS.IsSet(InterruptDisable) {
		cpu.handleInterrupt(false, vectorIRQ)
	}
}

// NMI raises a non-maskable interrupt.
func (cpu *CPU) NMI() {
	cpu.handleInterrupt(false, vectorNMI)
}

// Store the byte value 'v' add the address 'addr'.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Mem.StoreByte(addr, v)
}

// Store the byte value 'v' add the address 'addr'.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Mem.StoreByte(addr, v)
}

// Store a byte either to memory or, when the instruction has no memory
// operand, to the accumulator.
func (cpu *CPU) store(inst *Instruction, v byte) {
	if addr, ok := cpu.EffectiveAddress(inst.Mode); ok {
		cpu.storeByte(cpu, addr, v)
	} else {
		cpu.Reg.A = v
	}
}

// Push the program counter and status register onto the stack, then load
// the program counter from the interrupt vector at 'addr'.
func (cpu *CPU) handleInterrupt(brk bool, addr uint16) {
	cpu.pushAddress(cpu.Reg.PC)

	ps := cpu.Reg.PS | Reserved
	if brk {
		ps |= Status(Break)
	} else {
		ps &^= Status(Break)
	}
	cpu.push(byte(ps))

	cpu.Reg.PS.Set(InterruptDisable, true)
	cpu.Reg.PC = cpu.Mem.LoadAddress(addr)
}
