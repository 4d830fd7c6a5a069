package cpu_test

import (
	"errors"
	"testing"

	"github.com/w65xx/w65xx/cpu"
)

const origin = 0x1000

func loadCPU(code ...byte) *cpu.CPU {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(mem)
	mem.StoreBytes(origin, code)
	c.SetPC(origin)
	return c
}

func stepCPU(t *testing.T, c *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func runCPU(t *testing.T, steps int, code ...byte) *cpu.CPU {
	c := loadCPU(code...)
	stepCPU(t, c, steps)
	return c
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	t.Helper()
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	t.Helper()
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: $%02X, got $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	t.Helper()
	got := c.Mem.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func expectFlag(t *testing.T, c *cpu.CPU, f cpu.Flag, set bool) {
	t.Helper()
	if c.Reg.PS.IsSet(f) != set {
		t.Errorf("%v flag incorrect. exp: %v, got: %v", f, set, !set)
	}
}

func expectPS(t *testing.T, c *cpu.CPU, ps byte) {
	t.Helper()
	if byte(c.Reg.PS) != ps {
		t.Errorf("status register incorrect. exp: $%02X, got: $%02X", ps, byte(c.Reg.PS))
	}
}

func TestAccumulator(t *testing.T) {
	c := runCPU(t, 3,
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	)

	expectPC(t, c, 0x1007)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

func TestStack(t *testing.T) {
	c := loadCPU(
		0xa9, 0x01, // LDA #$01
		0x48,       // PHA
		0xa9, 0x02, // LDA #$02
		0x48,       // PHA
		0xa9, 0x03, // LDA #$03
		0x48, // PHA

		0x68,             // PLA
		0x8d, 0x00, 0x20, // STA $2000
		0x68,             // PLA
		0x8d, 0x01, 0x20, // STA $2001
		0x68,             // PLA
		0x8d, 0x02, 0x20, // STA $2002
	)

	stepCPU(t, c, 6)
	expectSP(t, c, 0xfc)
	expectACC(t, c, 0x03)
	expectMem(t, c, 0x1ff, 0x01)
	expectMem(t, c, 0x1fe, 0x02)
	expectMem(t, c, 0x1fd, 0x03)

	stepCPU(t, c, 6)
	expectACC(t, c, 0x01)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x2000, 0x03)
	expectMem(t, c, 0x2001, 0x02)
	expectMem(t, c, 0x2002, 0x01)
}

func TestAddWithCarry(t *testing.T) {
	tests := []struct {
		a, m     byte
		result   byte
		carry    bool
		overflow bool
		negative bool
		zero     bool
	}{
		{0x50, 0x50, 0xa0, false, true, true, false},
		{0x50, 0x10, 0x60, false, false, false, false},
		{0xd0, 0xd0, 0xa0, true, false, true, false},
		{0x90, 0x90, 0x20, true, true, false, false},
		{0xff, 0x01, 0x00, true, false, false, true},
		{0x7f, 0x01, 0x80, false, true, true, false},
	}

	for _, tt := range tests {
		c := runCPU(t, 3,
			0x18,       // CLC
			0xa9, tt.a, // LDA #a
			0x69, tt.m, // ADC #m
		)
		expectACC(t, c, tt.result)
		expectFlag(t, c, cpu.Carry, tt.carry)
		expectFlag(t, c, cpu.Overflow, tt.overflow)
		expectFlag(t, c, cpu.Negative, tt.negative)
		expectFlag(t, c, cpu.Zero, tt.zero)
	}
}

func TestAddCarryAllPairs(t *testing.T) {
	c := loadCPU(0x69, 0x00) // ADC #$00

	for a := 0; a < 256; a++ {
		for m := 0; m < 256; m++ {
			c.Mem.StoreByte(origin+1, byte(m))
			c.Reg.A = byte(a)
			c.Reg.PS.Set(cpu.Carry, false)
			c.SetPC(origin)
			if err := c.Step(); err != nil {
				t.Fatal(err)
			}

			if c.Reg.A != byte(a+m) {
				t.Fatalf("$%02X+$%02X: exp $%02X, got $%02X", a, m, byte(a+m), c.Reg.A)
			}
			if c.Reg.PS.IsSet(cpu.Carry) != (a+m >= 256) {
				t.Fatalf("$%02X+$%02X: carry incorrect", a, m)
			}
		}
	}
}

func TestSubtract(t *testing.T) {
	c := runCPU(t, 3,
		0x38,       // SEC
		0xa9, 0x50, // LDA #$50
		0xe9, 0xb0, // SBC #$B0
	)
	expectACC(t, c, 0xa0)
	expectFlag(t, c, cpu.Carry, false)
	expectFlag(t, c, cpu.Overflow, true)
	expectFlag(t, c, cpu.Negative, true)

	c = runCPU(t, 3,
		0x38,       // SEC
		0xa9, 0x05, // LDA #$05
		0xe9, 0x03, // SBC #$03
	)
	expectACC(t, c, 0x02)
	expectFlag(t, c, cpu.Carry, true)
	expectFlag(t, c, cpu.Overflow, false)
}

func TestDecimal(t *testing.T) {
	c := runCPU(t, 4,
		0xf8,       // SED
		0x18,       // CLC
		0xa9, 0x15, // LDA #$15
		0x69, 0x27, // ADC #$27
	)
	expectACC(t, c, 0x42)
	expectFlag(t, c, cpu.Carry, false)

	c = runCPU(t, 4,
		0xf8,       // SED
		0x38,       // SEC
		0xa9, 0x42, // LDA #$42
		0xe9, 0x15, // SBC #$15
	)
	expectACC(t, c, 0x27)
	expectFlag(t, c, cpu.Carry, true)

	c = runCPU(t, 4,
		0xf8,       // SED
		0x18,       // CLC
		0xa9, 0x99, // LDA #$99
		0x69, 0x01, // ADC #$01
	)
	expectACC(t, c, 0x00)
	expectFlag(t, c, cpu.Carry, true)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		reg, m   byte
		carry    bool
		zero     bool
		negative bool
		overflow bool
	}{
		{0x01, 0x01, true, true, false, false},
		{0x81, 0x00, true, false, true, false},
		{0x00, 0x01, false, false, true, false},
		{0x40, 0x20, true, false, false, false},
		{0x50, 0xb0, false, false, true, true},
		{0x80, 0x01, true, false, false, true},
	}

	for _, tt := range tests {
		for _, op := range []struct {
			load, cmp byte
		}{
			{0xa9, 0xc9}, // LDA / CMP
			{0xa2, 0xe0}, // LDX / CPX
			{0xa0, 0xc0}, // LDY / CPY
		} {
			c := runCPU(t, 4,
				0xb8,            // CLV
				0x38,            // SEC
				op.load, tt.reg, // LD? #reg
				op.cmp, tt.m,    // CP? #m
			)
			expectFlag(t, c, cpu.Carry, tt.carry)
			expectFlag(t, c, cpu.Zero, tt.zero)
			expectFlag(t, c, cpu.Negative, tt.negative)
			expectFlag(t, c, cpu.Overflow, tt.overflow)
			if c.Reg.Get(cpu.RegA) != tt.reg && op.load == 0xa9 {
				t.Errorf("CMP modified the accumulator")
			}
		}
	}
}

func TestRotate(t *testing.T) {
	c := runCPU(t, 4,
		0x38,       // SEC
		0xa9, 0x81, // LDA #$81
		0x2a, // ROL A
		0x2a, // ROL A
	)
	expectACC(t, c, 0x07)
	expectFlag(t, c, cpu.Carry, false)

	c = runCPU(t, 3,
		0x38,       // SEC
		0x66, 0x10, // ROR $10
		0x46, 0x10, // LSR $10
	)
	expectMem(t, c, 0x10, 0x40)
	expectFlag(t, c, cpu.Carry, false)
	expectFlag(t, c, cpu.Negative, false)

	c = runCPU(t, 2,
		0xa9, 0x80, // LDA #$80
		0x0a, // ASL A
	)
	expectACC(t, c, 0x00)
	expectFlag(t, c, cpu.Carry, true)
	expectFlag(t, c, cpu.Zero, true)
}

func TestZeroPageIndexWrap(t *testing.T) {
	c := loadCPU(
		0xa2, 0x02, // LDX #$02
		0xb5, 0xff, // LDA $FF,X
	)
	c.Mem.StoreByte(0x0001, 0x42)
	c.Mem.StoreByte(0x0101, 0x99)

	stepCPU(t, c, 1)
	addr, ok := c.EffectiveAddress(cpu.ZPX)
	if !ok || addr != 0x0001 {
		t.Errorf("ZPX address incorrect. exp: $0001, got: $%04X", addr)
	}

	stepCPU(t, c, 1)
	expectACC(t, c, 0x42)
}

func TestIndirect(t *testing.T) {
	c := loadCPU(
		0xa2, 0x04, // LDX #$04
		0xa1, 0x10, // LDA ($10,X)
		0xa0, 0x02, // LDY #$02
		0x71, 0x20, // ADC ($20),Y
		0x6c, 0x00, 0x20, // JMP ($2000)
	)
	c.Mem.StoreAddress(0x14, 0x2500)
	c.Mem.StoreByte(0x2500, 0x11)
	c.Mem.StoreAddress(0x20, 0x2600)
	c.Mem.StoreByte(0x2602, 0x22)
	c.Mem.StoreAddress(0x2000, 0x3000)

	stepCPU(t, c, 2)
	expectACC(t, c, 0x11)

	stepCPU(t, c, 2)
	expectACC(t, c, 0x33)

	stepCPU(t, c, 1)
	expectPC(t, c, 0x3000)
}

func TestZeroPagePointerWrap(t *testing.T) {
	c := loadCPU(
		0xa2, 0x00, // LDX #$00
		0xa1, 0xff, // LDA ($FF,X)
	)
	c.Mem.StoreByte(0xff, 0x34)
	c.Mem.StoreByte(0x00, 0x12)
	c.Mem.StoreByte(0x1234, 0x5a)

	stepCPU(t, c, 2)
	expectACC(t, c, 0x5a)
}

func TestBoot(t *testing.T) {
	mem := cpu.NewFlatMemory()
	if err := mem.LoadImage(0xfffc, []byte{0x00, 0x80}); err != nil {
		t.Fatal(err)
	}

	c := cpu.NewCPU(mem)
	c.Boot()
	expectPC(t, c, 0x8000)

	c.Reg.A = 0x12
	c.Reg.SP = 0x40
	c.Reg.PS.Set(cpu.Carry, true)
	c.Reset()
	expectPC(t, c, 0x8000)
	expectACC(t, c, 0x00)
	expectSP(t, c, 0xff)
	expectPS(t, c, cpu.Reserved)
}

func TestJsrRts(t *testing.T) {
	c := loadCPU(
		0x20, 0x00, 0x20, // JSR $2000
		0xea, // NOP
	)
	c.Mem.StoreByte(0x2000, 0x60) // RTS

	stepCPU(t, c, 1)
	expectPC(t, c, 0x2000)
	expectSP(t, c, 0xfd)
	expectMem(t, c, 0x1ff, 0x10)
	expectMem(t, c, 0x1fe, 0x02)

	stepCPU(t, c, 1)
	expectPC(t, c, 0x1003)
	expectSP(t, c, 0xff)

	stepCPU(t, c, 1)
	expectPC(t, c, 0x1004)
	expectCycles(t, c, 14)
}

func TestBranch(t *testing.T) {
	c := runCPU(t, 2,
		0xa9, 0x00, // LDA #$00
		0xf0, 0x02, // BEQ +2
		0xea, // NOP
		0xea, // NOP
	)
	expectPC(t, c, 0x1006)

	c = runCPU(t, 2,
		0xa9, 0x01, // LDA #$01
		0xf0, 0x02, // BEQ +2
	)
	expectPC(t, c, 0x1004)

	c = runCPU(t, 7,
		0xa2, 0x03, // LDX #$03
		0xca,       // DEX
		0xd0, 0xfd, // BNE -3
	)
	expectPC(t, c, 0x1005)
	if c.Reg.X != 0 {
		t.Errorf("X register incorrect. exp: $00, got: $%02X", c.Reg.X)
	}
	expectFlag(t, c, cpu.Zero, true)
}

func TestBranchConditions(t *testing.T) {
	tests := []struct {
		cond cpu.Condition
		flag cpu.Flag
		set  bool
	}{
		{cpu.CarryClear, cpu.Carry, false},
		{cpu.CarrySet, cpu.Carry, true},
		{cpu.Equal, cpu.Zero, true},
		{cpu.NotEqual, cpu.Zero, false},
		{cpu.Minus, cpu.Negative, true},
		{cpu.Plus, cpu.Negative, false},
		{cpu.OverflowClear, cpu.Overflow, false},
		{cpu.OverflowSet, cpu.Overflow, true},
	}

	for _, tt := range tests {
		var ps cpu.Status
		ps.Set(tt.flag, tt.set)
		if !tt.cond.Test(ps) {
			t.Errorf("condition %d should hold", tt.cond)
		}
		ps.Set(tt.flag, !tt.set)
		if tt.cond.Test(ps) {
			t.Errorf("condition %d should not hold", tt.cond)
		}
	}
}

func TestBit(t *testing.T) {
	c := loadCPU(
		0xa9, 0x01, // LDA #$01
		0x24, 0x10, // BIT $10
	)
	c.Mem.StoreByte(0x10, 0xc0)

	stepCPU(t, c, 2)
	expectACC(t, c, 0x01)
	expectFlag(t, c, cpu.Zero, true)
	expectFlag(t, c, cpu.Negative, true)
	expectFlag(t, c, cpu.Overflow, true)
}

func TestIncDec(t *testing.T) {
	c := loadCPU(
		0xe6, 0x10, // INC $10
		0xc6, 0x10, // DEC $10
		0xa0, 0x80, // LDY #$80
		0x88, // DEY
	)
	c.Mem.StoreByte(0x10, 0xff)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x10, 0x00)
	expectFlag(t, c, cpu.Zero, true)
	expectFlag(t, c, cpu.Negative, false)

	stepCPU(t, c, 1)
	expectMem(t, c, 0x10, 0xff)
	expectFlag(t, c, cpu.Zero, false)
	expectFlag(t, c, cpu.Negative, true)

	stepCPU(t, c, 2)
	if c.Reg.Y != 0x7f {
		t.Errorf("Y register incorrect. exp: $7F, got: $%02X", c.Reg.Y)
	}
	expectFlag(t, c, cpu.Negative, false)
}

func TestTransfer(t *testing.T) {
	c := runCPU(t, 3,
		0xa2, 0x00, // LDX #$00
		0xa9, 0x01, // LDA #$01
		0x9a, // TXS
	)
	expectSP(t, c, 0x00)
	expectFlag(t, c, cpu.Zero, false)

	c = runCPU(t, 3,
		0xa9, 0x80, // LDA #$80
		0xa8, // TAY
		0xba, // TSX
	)
	if c.Reg.Y != 0x80 || c.Reg.X != 0xff {
		t.Errorf("transfer incorrect. got Y=$%02X X=$%02X", c.Reg.Y, c.Reg.X)
	}
	expectFlag(t, c, cpu.Negative, true)
}

func TestStatusStack(t *testing.T) {
	c := runCPU(t, 1,
		0x08, // PHP
	)
	expectMem(t, c, 0x1ff, 0x20)

	c = runCPU(t, 3,
		0xa9, 0x10, // LDA #$10
		0x48, // PHA
		0x28, // PLP
	)
	expectPS(t, c, 0x30)

	c = runCPU(t, 3,
		0xa9, 0x00, // LDA #$00
		0x48, // PHA
		0x28, // PLP
	)
	expectPS(t, c, cpu.Reserved)

	c = runCPU(t, 4,
		0xa9, 0xff, // LDA #$FF
		0x48, // PHA
		0x28, // PLP
		0x08, // PHP
	)
	expectPS(t, c, 0xff)
	expectMem(t, c, 0x1ff, 0xff)
}

func TestBrkRti(t *testing.T) {
	c := loadCPU(
		0x00, 0x00, // BRK
		0xea, // NOP
	)
	c.Mem.StoreAddress(0xfffe, 0x3000)
	c.Mem.StoreByte(0x3000, 0x40) // RTI

	stepCPU(t, c, 1)
	expectPC(t, c, 0x3000)
	expectSP(t, c, 0xfc)
	expectMem(t, c, 0x1ff, 0x10)
	expectMem(t, c, 0x1fe, 0x02)
	expectMem(t, c, 0x1fd, 0x30)
	expectFlag(t, c, cpu.InterruptDisable, true)

	stepCPU(t, c, 1)
	expectPC(t, c, 0x1002)
	expectSP(t, c, 0xff)
	expectPS(t, c, 0x30)
	expectCycles(t, c, 13)
}

type brkCounter struct {
	count int
}

func (b *brkCounter) OnBrk(c *cpu.CPU) {
	b.count++
}

func TestBrkHandler(t *testing.T) {
	c := loadCPU(0x00, 0x00)
	h := &brkCounter{}
	c.AttachBrkHandler(h)

	stepCPU(t, c, 1)
	if h.count != 1 {
		t.Errorf("BRK handler not called")
	}
	expectPC(t, c, origin)
	expectSP(t, c, 0xff)
}

func TestInterrupts(t *testing.T) {
	c := loadCPU(0xea)
	c.Mem.StoreAddress(0xfffe, 0x3000)
	c.Mem.StoreAddress(0xfffa, 0x4000)

	c.IRQ()
	expectPC(t, c, 0x3000)
	expectMem(t, c, 0x1ff, 0x10)
	expectMem(t, c, 0x1fe, 0x00)
	expectMem(t, c, 0x1fd, 0x20)
	expectFlag(t, c, cpu.InterruptDisable, true)

	// Masked while InterruptDisable is set.
	c.IRQ()
	expectPC(t, c, 0x3000)
	expectSP(t, c, 0xfc)

	c.NMI()
	expectPC(t, c, 0x4000)
	expectSP(t, c, 0xf9)
	expectMem(t, c, 0x1fa, 0x24)
}

func TestIllegalOpcode(t *testing.T) {
	c := loadCPU(0x02)

	err := c.Step()
	if !errors.Is(err, cpu.ErrIllegalOpcode) {
		t.Fatalf("expected illegal opcode error, got %v", err)
	}

	var oe *cpu.OpcodeError
	if !errors.As(err, &oe) || oe.Opcode != 0x02 || oe.Addr != origin {
		t.Errorf("opcode error incorrect: %v", err)
	}
	expectPC(t, c, origin)
	expectCycles(t, c, 0)
}

func TestInstructionSet(t *testing.T) {
	set := cpu.GetInstructionSet()

	legal := 0
	for i := 0; i < 256; i++ {
		inst := set.Lookup(byte(i))
		if inst.Opcode != byte(i) {
			t.Errorf("opcode $%02X stored at $%02X", inst.Opcode, i)
		}
		if inst.Legal() {
			legal++
			if inst.Length != 1+inst.Mode.OperandBytes() {
				t.Errorf("%s $%02X has length %d", inst.Name, i, inst.Length)
			}
		} else if inst.Name != cpu.IllegalName {
			t.Errorf("opcode $%02X should be unnamed", i)
		}
	}
	if legal != 151 {
		t.Errorf("legal opcode count incorrect. exp: 151, got: %d", legal)
	}

	if n := len(set.GetInstructions("lda")); n != 8 {
		t.Errorf("LDA variants incorrect. exp: 8, got: %d", n)
	}
	if inst := set.Lookup(0xea); inst.Name != "NOP" || inst.Mode != cpu.IMP {
		t.Errorf("NOP incorrect: %s %v", inst.Name, inst.Mode)
	}
}
