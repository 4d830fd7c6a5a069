package host

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runScript(h *Host, lines ...string) string {
	var out strings.Builder
	h.RunCommands(strings.NewReader(strings.Join(lines, "\n")), &out, false)
	return out.String()
}

func TestRunToBrk(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		"memory set $1000 $a9 $05 $69 $03 $8d $00 $20 $00",
		"register pc $1000",
		"run",
	)

	assert.Equal(byte(0x08), h.cpu.Reg.A)
	assert.Equal(byte(0x08), h.mem.LoadByte(0x2000))
	assert.Equal(uint16(0x1007), h.cpu.Reg.PC)
	assert.Contains(out, "BRK encountered at $1007.")
}

func TestBrkExecutesWhenNotTrapped(t *testing.T) {
	assert := assert.New(t)

	h := New()
	runScript(h,
		"set trapbrk false",
		"memory set $fffe $00 $30",
		"memory set $3000 $02",
		"memory set $1000 $00 $00",
		"register pc $1000",
		"run",
	)

	assert.Equal(uint16(0x3000), h.cpu.Reg.PC)
	assert.Equal(byte(0x10), h.mem.LoadByte(0x1ff))
	assert.Equal(byte(0x02), h.mem.LoadByte(0x1fe))
}

func TestIllegalOpcode(t *testing.T) {
	h := New()
	out := runScript(h,
		"memory set $1000 $ea $02",
		"run $1000",
	)

	assert.Contains(t, out, "Illegal opcode $02 encountered at $1001.")
	assert.Equal(t, uint16(0x1001), h.cpu.Reg.PC)
}

func TestBreakpoints(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		"memory set $1000 $ea $ea $ea $00",
		"breakpoint add $1002",
		"breakpoint add $1001",
		"breakpoint disable $1001",
		"run $1000",
	)
	assert.Contains(out, "Breakpoint hit at $1002.")
	assert.Equal(uint16(0x1002), h.cpu.Reg.PC)

	out = runScript(h, "breakpoint list")
	assert.Contains(out, "$1001 (disabled)")
	assert.Contains(out, "$1002")

	out = runScript(h,
		"breakpoint remove $1002",
		"breakpoint remove $1002",
	)
	assert.Contains(out, "Breakpoint at $1002 removed.")
	assert.Contains(out, "No breakpoint was set on $1002.")
	assert.Nil(h.debugger.GetBreakpoint(0x1002))
}

func TestDataBreakpoints(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		// LDX #$00; INX; STX $20; JMP $1002
		"memory set $1000 $a2 $00 $e8 $86 $20 $4c $02 $10",
		"databreakpoint add $20 3",
		"run $1000",
	)

	assert.Contains(out, "Data breakpoint hit on address $0020.")
	assert.Equal(byte(0x03), h.cpu.Reg.X)
	assert.Equal(byte(0x03), h.mem.LoadByte(0x20))

	out = runScript(h, "databreakpoint list")
	assert.Contains(out, "$0020 on value $03")
}

func TestStepOver(t *testing.T) {
	assert := assert.New(t)

	h := New()
	runScript(h,
		"memory set $1000 $20 $00 $20 $ea",
		"memory set $2000 $e8 $e8 $60",
		"register pc $1000",
		"step over",
	)
	assert.Equal(uint16(0x1003), h.cpu.Reg.PC)
	assert.Equal(byte(0x02), h.cpu.Reg.X)
	assert.Equal(byte(0xff), h.cpu.Reg.SP)

	runScript(h,
		"register pc $1000",
		"step in 2",
	)
	assert.Equal(uint16(0x2001), h.cpu.Reg.PC)
	assert.Equal(byte(0xfd), h.cpu.Reg.SP)
}

func TestLoadAndBoot(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	rom := filepath.Join(dir, "rom.bin")
	assert.NoError(os.WriteFile(rom, []byte{0x00, 0x80, 0x00, 0x90, 0x00, 0xa0}, 0o644))
	prog := filepath.Join(dir, "prog.bin")
	assert.NoError(os.WriteFile(prog, []byte{0xa9, 0x01}, 0o644))

	h := New()
	out := runScript(h, "load "+rom)
	assert.Contains(out, "Loaded 'rom.bin' to $FFFA..$FFFF.")
	assert.Equal(uint16(0x9000), h.cpu.Reg.PC)

	out = runScript(h, "load "+prog+" $0400")
	assert.Contains(out, "Loaded 'prog.bin' to $0400..$0401.")
	assert.Equal(uint16(0x0400), h.cpu.Reg.PC)

	runScript(h,
		"register a $42",
		"reset",
	)
	assert.Equal(uint16(0x9000), h.cpu.Reg.PC)
	assert.Equal(byte(0x00), h.cpu.Reg.A)

	runScript(h,
		"register pc 0",
		"boot",
	)
	assert.Equal(uint16(0x9000), h.cpu.Reg.PC)

	_, _, err := h.Load(filepath.Join(dir, "missing.bin"), 0)
	assert.Error(err)
}

func TestInterrupts(t *testing.T) {
	assert := assert.New(t)

	h := New()
	runScript(h,
		"memory set $fffa $00 $40",
		"register pc $1234",
		"interrupt nmi",
	)
	assert.Equal(uint16(0x4000), h.cpu.Reg.PC)
	assert.Equal(byte(0xfc), h.cpu.Reg.SP)

	out := runScript(h, "interrupt irq")
	assert.Contains(out, "IRQ ignored")
	assert.Equal(uint16(0x4000), h.cpu.Reg.PC)
}

func TestEvaluate(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		"evaluate $10 + %101 * 2",
		"evaluate (5 + 3) % 3",
		"evaluate 10 / 3",
		"register x $7f",
		"evaluate x + 1",
		"evaluate sp",
	)
	assert.Contains(out, "$001A  26")
	assert.Contains(out, "$0002  2")
	assert.Contains(out, "$0003  3")
	assert.Contains(out, "$0080  128")
	assert.Contains(out, "$01FF  511")

	out = runScript(h, "evaluate 1 +")
	assert.Contains(out, "expression syntax error")
}

func TestSettings(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		"set memdump 16",
		"set hexmode true",
		"evaluate 10",
		"set nosuchsetting 1",
	)
	assert.Equal(16, h.settings.MemDumpBytes)
	assert.True(h.settings.HexMode)
	assert.True(h.eval.hexMode)
	assert.Contains(out, "$0010  16")
	assert.Contains(out, "setting 'nosuchsetting' not found")

	out = runScript(h, "set")
	assert.Contains(out, "MemDumpBytes")
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		"memory set $10 $41 $42",
		"memory dump $10 2",
	)
	assert.Contains(out, "0010- 41 42")
	assert.Contains(out, "AB")

	runScript(h, "memory clear")
	assert.Equal(byte(0), h.mem.LoadByte(0x10))
}

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		"register a $12",
		"register c 1",
		"register",
	)
	assert.Equal(byte(0x12), h.cpu.Reg.A)
	assert.Contains(out, "A=12 X=00 Y=00 PS=[-------C] SP=FF PC=0000")

	out = runScript(h, "register q 1")
	assert.Contains(out, "Unknown register 'q'.")
}

func TestDisassembleCommand(t *testing.T) {
	h := New()
	out := runScript(h,
		"memory set $1000 $a9 $5e $d0 $fc",
		"disassemble $1000 2",
	)
	assert.Contains(t, out, "LDA #$5E")
	assert.Contains(t, out, "BNE $1000")
}

func TestQuit(t *testing.T) {
	h := New()
	runScript(h,
		"quit",
		"register a 5",
	)
	assert.Equal(t, byte(0), h.cpu.Reg.A)
}

func TestHelp(t *testing.T) {
	out := runScript(New(), "help", "help breakpoint add")
	assert.Contains(t, out, "breakpoint add")
	assert.Contains(t, out, "Syntax: breakpoint add <address>")
}

func TestCommandLookup(t *testing.T) {
	assert := assert.New(t)

	h := New()
	out := runScript(h,
		"xyzzy",
		"re",
		"breakpoint",
		"breakpoint xyzzy",
	)
	assert.Contains(out, "Command not found.")
	assert.Contains(out, "Command is ambiguous.")
	assert.Contains(out, "Incomplete command.")

	out = runScript(h,
		"ms $1000 $ea $ea $ea $ea",
		"ba $1003",
		"bl",
		"r pc $1000",
		"si",
		"",
		"register",
	)
	assert.Equal(byte(0xea), h.mem.LoadByte(0x1003))
	assert.Contains(out, "$1003")
	assert.Equal(uint16(0x1002), h.cpu.Reg.PC)
	assert.NotNil(h.debugger.GetBreakpoint(0x1003))

	out = runScript(h, "help bre")
	assert.Contains(out, "breakpoint commands:")
	assert.Contains(out, "breakpoint add")
	assert.Contains(out, "breakpoint disable")
}

func TestLoadEmptyImage(t *testing.T) {
	assert := assert.New(t)

	empty := filepath.Join(t.TempDir(), "empty.bin")
	assert.NoError(os.WriteFile(empty, nil, 0o644))

	h := New()
	_, _, err := h.Load(empty, -1)
	assert.ErrorIs(err, errEmptyImage)

	out := runScript(h, "load "+empty)
	assert.Contains(out, "Failed to load 'empty.bin': image is empty")
	assert.Equal(uint16(0), h.cpu.Reg.PC)
}
