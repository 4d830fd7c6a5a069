// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
	ACC             // Accumulator (no operand)
)

var modeInfo = [...]struct {
	name  string
	bytes byte
}{
	IMM: {"Immediate", 1},
	IMP: {"Implied", 0},
	REL: {"Relative", 1},
	ZPG: {"ZeroPage", 1},
	ZPX: {"ZeroPageXIndex", 1},
	ZPY: {"ZeroPageYIndex", 1},
	ABS: {"Absolute", 2},
	ABX: {"AbsoluteXIndex", 2},
	ABY: {"AbsoluteYIndex", 2},
	IND: {"Indirect", 2},
	IDX: {"PreIndexIndirect", 1},
	IDY: {"PostIndexIndirect", 1},
	ACC: {"Accumulator", 0},
}

// OperandBytes returns the number of operand bytes that follow an opcode
// using this addressing mode.
func (m Mode) OperandBytes() byte {
	if int(m) >= len(modeInfo) {
		panic("invalid addressing mode")
	}
	return modeInfo[m].bytes
}

func (m Mode) String() string {
	if int(m) >= len(modeInfo) {
		panic("invalid addressing mode")
	}
	return modeInfo[m].name
}

// A Condition is the predicate tested by a conditional branch.
type Condition byte

// Branch conditions
const (
	CarryClear    Condition = iota // BCC
	CarrySet                       // BCS
	Equal                          // BEQ
	NotEqual                       // BNE
	Minus                          // BMI
	Plus                           // BPL
	OverflowClear                  // BVC
	OverflowSet                    // BVS
)

var conditions = [...]struct {
	flag Flag
	set  bool
}{
	CarryClear:    {Carry, false},
	CarrySet:      {Carry, true},
	Equal:         {Zero, true},
	NotEqual:      {Zero, false},
	Minus:         {Negative, true},
	Plus:          {Negative, false},
	OverflowClear: {Overflow, false},
	OverflowSet:   {Overflow, true},
}

// Test returns true if the status register satisfies the condition.
func (c Condition) Test(ps Status) bool {
	if int(c) >= len(conditions) {
		panic("invalid branch condition")
	}
	cond := conditions[c]
	return ps.IsSet(cond.flag) == cond.set
}
