// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// A Flag names one bit of the processor status register.
type Flag byte

// Processor status flags
const (
	Carry            Flag = 1 << 0 // C
	Zero             Flag = 1 << 1 // Z
	InterruptDisable Flag = 1 << 2 // I
	Decimal          Flag = 1 << 3 // D
	Break            Flag = 1 << 4 // B
	Overflow         Flag = 1 << 6 // V
	Negative         Flag = 1 << 7 // N
)

// Reserved is the unused status bit 5. It always reads as 1.
const Reserved = 1 << 5

// Flags lists every named status flag from most to least significant bit.
var Flags = []Flag{Negative, Overflow, Break, Decimal, InterruptDisable, Zero, Carry}

var flagNames = map[Flag]string{
	Carry:            "Carry",
	Zero:             "Zero",
	InterruptDisable: "InterruptDisable",
	Decimal:          "Decimal",
	Break:            "Break",
	Overflow:         "Overflow",
	Negative:         "Negative",
}

func (f Flag) String() string {
	if s, ok := flagNames[f]; ok {
		return s
	}
	panic("invalid status flag")
}

// Status holds the processor status register.
type Status byte

// IsSet returns true if the flag 'f' is set.
func (ps Status) IsSet(f Flag) bool {
	return byte(ps)&byte(f) != 0
}

// Bit returns 1 if the flag 'f' is set and 0 otherwise.
func (ps Status) Bit(f Flag) byte {
	if ps.IsSet(f) {
		return 1
	}
	return 0
}

// Set sets the flag 'f' if 'on' is true and clears it otherwise.
func (ps *Status) Set(f Flag, on bool) {
	if on {
		*ps |= Status(f)
	} else {
		*ps &^= Status(f)
	}
	*ps |= Reserved
}

// Load replaces the whole status register with 'v'. The reserved bit is
// forced back on.
func (ps *Status) Load(v byte) {
	*ps = Status(v) | Reserved
}

// Register identifies one of the CPU's 8-bit registers.
type Register byte

// 8-bit registers
const (
	RegA Register = iota
	RegX
	RegY
	RegSP
)

var registerNames = [...]string{"A", "X", "Y", "SP"}

func (r Register) String() string {
	return registerNames[r]
}

// Registers contains the state of all 6502 registers.
type Registers struct {
	A  byte   // accumulator
	X  byte   // X indexing register
	Y  byte   // Y indexing register
	SP byte   // stack pointer ($100 + SP = stack memory location)
	PC uint16 // program counter
	PS Status // processor status
}

// Init initializes all registers. A, X, Y = 0. SP = 0xff. PC = 0.
// PS = Reserved.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = 0xff
	r.PC = 0
	r.PS = Reserved
}

// Get returns the value of the 8-bit register 'reg'.
func (r *Registers) Get(reg Register) byte {
	switch reg {
	case RegA:
		return r.A
	case RegX:
		return r.X
	case RegY:
		return r.Y
	case RegSP:
		return r.SP
	default:
		panic("invalid register")
	}
}

// Set assigns 'v' to the 8-bit register 'reg'.
func (r *Registers) Set(reg Register, v byte) {
	switch reg {
	case RegA:
		r.A = v
	case RegX:
		r.X = v
	case RegY:
		r.Y = v
	case RegSP:
		r.SP = v
	default:
		panic("invalid register")
	}
}

// PCH returns the high byte of the program counter.
func (r *Registers) PCH() byte {
	return byte(r.PC >> 8)
}

// PCL returns the low byte of the program counter.
func (r *Registers) PCL() byte {
	return byte(r.PC)
}

// SetPCH replaces the high byte of the program counter.
func (r *Registers) SetPCH(v byte) {
	r.PC = uint16(v)<<8 | r.PC&0x00ff
}

// SetPCL replaces the low byte of the program counter.
func (r *Registers) SetPCL(v byte) {
	r.PC = r.PC&0xff00 | uint16(v)
}
