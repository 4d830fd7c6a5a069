// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// An opsym is an internal symbol used to associate an opcode's data
// with its instructions.
type opsym byte

const (
	symADC opsym = iota
	symAND
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPLA
	symPLP
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSTA
	symSTX
	symSTY
	symTAX
	symTAY
	symTSX
	symTXA
	symTXS
	symTYA
)

type instfunc func(c *CPU, inst *Instruction)

// Emulator implementation for each opcode
type opcodeImpl struct {
	sym  opsym
	name string
	fn   instfunc
}

var impl = []opcodeImpl{
	{symADC, "ADC", (*CPU).adc},
	{symAND, "AND", (*CPU).and},
	{symASL, "ASL", (*CPU).asl},
	{symBCC, "BCC", (*CPU).bcc},
	{symBCS, "BCS", (*CPU).bcs},
	{symBEQ, "BEQ", (*CPU).beq},
	{symBIT, "BIT", (*CPU).bit},
	{symBMI, "BMI", (*CPU).bmi},
	{symBNE, "BNE", (*CPU).bne},
	{symBPL, "BPL", (*CPU).bpl},
	{symBRK, "BRK", (*CPU).brk},
	{symBVC, "BVC", (*CPU).bvc},
	{symBVS, "BVS", (*CPU).bvs},
	{symCLC, "CLC", (*CPU).clc},
	{symCLD, "CLD", (*CPU).cld},
	{symCLI, "CLI", (*CPU).cli},
	{symCLV, "CLV", (*CPU).clv},
	{symCMP, "CMP", (*CPU).cmp},
	{symCPX, "CPX", (*CPU).cpx},
	{symCPY, "CPY", (*CPU).cpy},
	{symDEC, "DEC", (*CPU).dec},
	{symDEX, "DEX", (*CPU).dex},
	{symDEY, "DEY", (*CPU).dey},
	{symEOR, "EOR", (*CPU).eor},
	{symINC, "INC", (*CPU).inc},
	{symINX, "INX", (*CPU).inx},
	{symINY, "INY", (*CPU).iny},
	{symJMP, "JMP", (*CPU).jmp},
	{symJSR, "JSR", (*CPU).jsr},
	{symLDA, "LDA", (*CPU).lda},
	{symLDX, "LDX", (*CPU).ldx},
	{symLDY, "LDY", (*CPU).ldy},
	{symLSR, "LSR", (*CPU).lsr},
	{symNOP, "NOP", (*CPU).nop},
	{symORA, "ORA", (*CPU).ora},
	{symPHA, "PHA", (*CPU).pha},
	{symPHP, "PHP", (*CPU).php},
	{symPLA, "PLA", (*CPU).pla},
	{symPLP, "PLP", (*CPU).plp},
	{symROL, "ROL", (*CPU).rol},
	{symROR, "ROR", (*CPU).ror},
	{symRTI, "RTI", (*CPU).rti},
	{symRTS, "RTS", (*CPU).rts},
	{symSBC, "SBC", (*CPU).sbc},
	{symSEC, "SEC", (*CPU).sec},
	{symSED, "SED", (*CPU).sed},
	{symSEI, "SEI", (*CPU).sei},
	{symSTA, "STA", (*CPU).sta},
	{symSTX, "STX", (*CPU).stx},
	{symSTY, "STY", (*CPU).sty},
	{symTAX, "TAX", (*CPU).tax},
	{symTAY, "TAY", (*CPU).tay},
	{symTSX, "TSX", (*CPU).tsx},
	{symTXA, "TXA", (*CPU).txa},
	{symTXS, "TXS", (*CPU).txs},
	{symTYA, "TYA", (*CPU).tya},
}

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	sym    opsym // internal opcode symbol
	mode   Mode  // addressing mode
	opcode byte  // opcode hex value
	cycles byte  // base number of CPU cycles to execute command
}

// All valid (opcode, mode) pairs
var data = []opcodeData{
	{symLDA, IMM, 0xa9, 2},
	{symLDA, ZPG, 0xa5, 3},
	{symLDA, ZPX, 0xb5, 4},
	{symLDA, ABS, 0xad, 4},
	{symLDA, ABX, 0xbd, 4},
	{symLDA, ABY, 0xb9, 4},
	{symLDA, IDX, 0xa1, 6},
	{symLDA, IDY, 0xb1, 5},

	{symLDX, IMM, 0xa2, 2},
	{symLDX, ZPG, 0xa6, 3},
	{symLDX, ZPY, 0xb6, 4},
	{symLDX, ABS, 0xae, 4},
	{symLDX, ABY, 0xbe, 4},

	{symLDY, IMM, 0xa0, 2},
	{symLDY, ZPG, 0xa4, 3},
	{symLDY, ZPX, 0xb4, 4},
	{symLDY, ABS, 0xac, 4},
	{symLDY, ABX, 0xbc, 4},

	{symSTA, ZPG, 0x85, 3},
	{symSTA, ZPX, 0x95, 4},
	{symSTA, ABS, 0x8d, 4},
	{symSTA, ABX, 0x9d, 5},
	{symSTA, ABY, 0x99, 5},
	{symSTA, IDX, 0x81, 6},
	{symSTA, IDY, 0x91, 6},

	{symSTX, ZPG, 0x86, 3},
	{symSTX, ZPY, 0x96, 4},
	{symSTX, ABS, 0x8e, 4},

	{symSTY, ZPG, 0x84, 3},
	{symSTY, ZPX, 0x94, 4},
	{symSTY, ABS, 0x8c, 4},

	{symADC, IMM, 0x69, 2},
	{symADC, ZPG, 0x65, 3},
	{symADC, ZPX, 0x75, 4},
	{symADC, ABS, 0x6d, 4},
	{symADC, ABX, 0x7d, 4},
	{symADC, ABY, 0x79, 4},
	{symADC, IDX, 0x61, 6},
	{symADC, IDY, 0x71, 5},

	{symSBC, IMM, 0xe9, 2},
	{symSBC, ZPG, 0xe5, 3},
	{symSBC, ZPX, 0xf5, 4},
	{symSBC, ABS, 0xed, 4},
	{symSBC, ABX, 0xfd, 4},
	{symSBC, ABY, 0xf9, 4},
	{symSBC, IDX, 0xe1, 6},
	{symSBC, IDY, 0xf1, 5},

	{symCMP, IMM, 0xc9, 2},
	{symCMP, ZPG, 0xc5, 3},
	{symCMP, ZPX, 0xd5, 4},
	{symCMP, ABS, 0xcd, 4},
	{symCMP, ABX, 0xdd, 4},
	{symCMP, ABY, 0xd9, 4},
	{symCMP, IDX, 0xc1, 6},
	{symCMP, IDY, 0xd1, 5},

	{symCPX, IMM, 0xe0, 2},
	{symCPX, ZPG, 0xe4, 3},
	{symCPX, ABS, 0xec, 4},

	{symCPY, IMM, 0xc0, 2},
	{symCPY, ZPG, 0xc4, 3},
	{symCPY, ABS, 0xcc, 4},

	{symBIT, ZPG, 0x24, 3},
	{symBIT, ABS, 0x2c, 4},

	{symCLC, IMP, 0x18, 2},
	{symSEC, IMP, 0x38, 2},
	{symCLI, IMP, 0x58, 2},
	{symSEI, IMP, 0x78, 2},
	{symCLD, IMP, 0xd8, 2},
	{symSED, IMP, 0xf8, 2},
	{symCLV, IMP, 0xb8, 2},

	{symBCC, REL, 0x90, 2},
	{symBCS, REL, 0xb0, 2},
	{symBEQ, REL, 0xf0, 2},
	{symBNE, REL, 0xd0, 2},
	{symBMI, REL, 0x30, 2},
	{symBPL, REL, 0x10, 2},
	{symBVC, REL, 0x50, 2},
	{symBVS, REL, 0x70, 2},

	{symBRK, IMP, 0x00, 7},

	{symAND, IMM, 0x29, 2},
	{symAND, ZPG, 0x25, 3},
	{symAND, ZPX, 0x35, 4},
	{symAND, ABS, 0x2d, 4},
	{symAND, ABX, 0x3d, 4},
	{symAND, ABY, 0x39, 4},
	{symAND, IDX, 0x21, 6},
	{symAND, IDY, 0x31, 5},

	{symORA, IMM, 0x09, 2},
	{symORA, ZPG, 0x05, 3},
	{symORA, ZPX, 0x15, 4},
	{symORA, ABS, 0x0d, 4},
	{symORA, ABX, 0x1d, 4},
	{symORA, ABY, 0x19, 4},
	{symORA, IDX, 0x01, 6},
	{symORA, IDY, 0x11, 5},

	{symEOR, IMM, 0x49, 2},
	{symEOR, ZPG, 0x45, 3},
	{symEOR, ZPX, 0x55, 4},
	{symEOR, ABS, 0x4d, 4},
	{symEOR, ABX, 0x5d, 4},
	{symEOR, ABY, 0x59, 4},
	{symEOR, IDX, 0x41, 6},
	{symEOR, IDY, 0x51, 5},

	{symINC, ZPG, 0xe6, 5},
	{symINC, ZPX, 0xf6, 6},
	{symINC, ABS, 0xee, 6},
	{symINC, ABX, 0xfe, 7},

	{symDEC, ZPG, 0xc6, 5},
	{symDEC, ZPX, 0xd6, 6},
	{symDEC, ABS, 0xce, 6},
	{symDEC, ABX, 0xde, 7},

	{symINX, IMP, 0xe8, 2},
	{symINY, IMP, 0xc8, 2},

	{symDEX, IMP, 0xca, 2},
	{symDEY, IMP, 0x88, 2},

	{symJMP, ABS, 0x4c, 3},
	{symJMP, IND, 0x6c, 5},

	{symJSR, ABS, 0x20, 6},
	{symRTS, IMP, 0x60, 6},

	{symRTI, IMP, 0x40, 6},

	{symNOP, IMP, 0xea, 2},

	{symTAX, IMP, 0xaa, 2},
	{symTXA, IMP, 0x8a, 2},
	{symTAY, IMP, 0xa8, 2},
	{symTYA, IMP, 0x98, 2},
	{symTXS, IMP, 0x9a, 2},
	{symTSX, IMP, 0xba, 2},

	{symPHA, IMP, 0x48, 3},
	{symPLA, IMP, 0x68, 4},
	{symPHP, IMP, 0x08, 3},
	{symPLP, IMP, 0x28, 4},

	{symASL, ACC, 0x0a, 2},
	{symASL, ZPG, 0x06, 5},
	{symASL, ZPX, 0x16, 6},
	{symASL, ABS, 0x0e, 6},
	{symASL, ABX, 0x1e, 7},

	{symLSR, ACC, 0x4a, 2},
	{symLSR, ZPG, 0x46, 5},
	{symLSR, ZPX, 0x56, 6},
	{symLSR, ABS, 0x4e, 6},
	{symLSR, ABX, 0x5e, 7},

	{symROL, ACC, 0x2a, 2},
	{symROL, ZPG, 0x26, 5},
	{symROL, ZPX, 0x36, 6},
	{symROL, ABS, 0x2e, 6},
	{symROL, ABX, 0x3e, 7},

	{symROR, ACC, 0x6a, 2},
	{symROR, ZPG, 0x66, 5},
	{symROR, ZPX, 0x76, 6},
	{symROR, ABS, 0x6e, 6},
	{symROR, ABX, 0x7e, 7},
}

// IllegalName is the name given to opcodes with no documented instruction.
const IllegalName = "???"

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name   string   // all-caps name of the instruction
	Mode   Mode     // addressing mode
	Opcode byte     // hexadecimal opcode value
	Length byte     // combined size of opcode and operand, in bytes
	Cycles byte     // base number of CPU cycles to execute the instruction
	fn     instfunc // emulator implementation of the function
}

// Legal returns true if the instruction is a documented 6502 instruction.
func (inst *Instruction) Legal() bool {
	return inst.fn != nil
}

// An InstructionSet defines the set of all possible instructions that
// can run on the emulated CPU.
type InstructionSet struct {
	instructions [256]Instruction          // all instructions by opcode
	variants     map[string][]*Instruction // variants of each instruction
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Create the instruction set.
func newInstructionSet() *InstructionSet {
	set := &InstructionSet{}

	// Create a map from symbol to implementation for fast lookups.
	symToImpl := make(map[opsym]*opcodeImpl, len(impl))
	for i := range impl {
		symToImpl[impl[i].sym] = &impl[i]
	}

	// Every opcode starts out illegal until the table claims it.
	for i := range set.instructions {
		inst := &set.instructions[i]
		inst.Name = IllegalName
		inst.Mode = IMP
		inst.Opcode = byte(i)
		inst.Length = 1
	}

	// Create a map from instruction name to the slice of all instruction
	// variants matching that name.
	set.variants = make(map[string][]*Instruction)

	for _, d := range data {
		impl := symToImpl[d.sym]
		inst := &set.instructions[d.opcode]
		if inst.fn != nil {
			panic("duplicate opcode")
		}

		inst.Name = impl.name
		inst.Mode = d.mode
		inst.Length = 1 + d.mode.OperandBytes()
		inst.Cycles = d.cycles
		inst.fn = impl.fn

		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
	}

	return set
}

var instructionSet = newInstructionSet()

// GetInstructionSet returns the 6502 instruction set.
func GetInstructionSet() *InstructionSet {
	return instructionSet
}
