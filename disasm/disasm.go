// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set
// disassembler.
package disasm

import (
	"fmt"
	"strings"

	"github.com/w65xx/w65xx/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"#$%s",    // IMM
	"",        // IMP
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"A",       // ACC
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the little-endian byte
// slice.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(m cpu.Memory, addr uint16) (line string, next uint16) {
	opcode := m.LoadByte(addr)
	inst := cpu.GetInstructionSet().Lookup(opcode)

	operand := make([]byte, inst.Length-1)
	m.LoadBytes(addr+1, operand)

	if inst.Mode == cpu.REL {
		// Convert relative offset to absolute address.
		target := addr + uint16(inst.Length) + uint16(int16(int8(operand[0])))
		operand = []byte{byte(target), byte(target >> 8)}
	}

	line = inst.Name
	if format := modeFormat[inst.Mode]; format != "" {
		if strings.Contains(format, "%s") {
			format = fmt.Sprintf(format, hexString(operand))
		}
		line += " " + format
	}

	next = addr + uint16(inst.Length)
	return line, next
}

// GetRegisterString returns a string describing the contents of the 6502
// registers.
func GetRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, getStatusBits(r.PS), r.SP, r.PC)
}

// GetCompactRegisterString returns a compact string describing the
// contents of the 6502 registers. It excludes the program counter and
// stack pointer.
func GetCompactRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s]",
		r.A, r.X, r.Y, getStatusBits(r.PS))
}

// Return a string representing the CPU's status flags. Set flags are shown
// by letter and clear flags by a dash, in NV-BDIZC order.
func getStatusBits(ps cpu.Status) string {
	bits := []struct {
		f cpu.Flag
		c byte
	}{
		{cpu.Negative, 'N'},
		{cpu.Overflow, 'V'},
		{0, '-'},
		{cpu.Break, 'B'},
		{cpu.Decimal, 'D'},
		{cpu.InterruptDisable, 'I'},
		{cpu.Zero, 'Z'},
		{cpu.Carry, 'C'},
	}

	buf := make([]byte, len(bits))
	for i, b := range bits {
		if b.f != 0 && ps.IsSet(b.f) {
			buf[i] = b.c
		} else {
			buf[i] = '-'
		}
	}
	return string(buf)
}
