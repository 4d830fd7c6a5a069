// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive monitor for an emulated 6502
// system with 64K of flat memory.
//
// Within the host it is possible to load binary images into memory, boot
// and reset the CPU, raise interrupts, step through and run machine code,
// set address and data breakpoints, dump and modify memory, disassemble
// code, manipulate CPU registers and evaluate arbitrary expressions.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/w65xx/w65xx/cpu"
	"github.com/w65xx/w65xx/disasm"
)

var (
	errQuit       = errors.New("exiting program")
	errEmptyImage = errors.New("image is empty")
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

// A selection is a resolved command together with its arguments.
type selection struct {
	cmd  *command
	args []string
}

// A Host represents a fully emulated 6502 system with 64K of memory and a
// built-in debugger.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	handler     *debugHandler
	lastCmd     *selection
	state       state
	interrupted atomic.Bool
	eval        *evaluator
	settings    *settings
}

// New creates a new 6502 host environment.
func New() *Host {
	h := &Host{
		state:    stateProcessingCommands,
		eval:     newEvaluator(),
		settings: newSettings(),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(h.mem)

	// Create a CPU debugger and attach it to the CPU.
	h.handler = newDebugHandler(h)
	h.debugger = cpu.NewDebugger(h.handler)
	h.cpu.AttachDebugger(h.debugger)

	h.onSettingsUpdate()
	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	h.displayPC()

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var s selection
		if strings.TrimSpace(line) != "" {
			n, args, err := cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}

			c, ok := commandOf(n)
			if !ok {
				h.println("Incomplete command. Type 'help' for a list of commands.")
				continue
			}
			s = selection{cmd: c, args: args}
		} else if h.lastCmd != nil {
			s = *h.lastCmd
		}

		if s.cmd == nil {
			continue
		}
		h.lastCmd = &s

		if err := s.cmd.run(h, s.args); err != nil {
			break
		}
	}

	h.flush()
}

// Return the monitor command a looked-up node resolved to. Subtree nodes
// resolve to nothing.
func commandOf(n cmd.Node) (*command, bool) {
	cc, ok := n.(*cmd.Command)
	if !ok {
		return nil, false
	}
	c, ok := cc.Data.(*command)
	return c, ok
}

// Break interrupts a running CPU. It may be called from any goroutine.
func (h *Host) Break() {
	h.interrupted.Store(true)
}

// Load reads a binary image from a file and copies it into memory at
// 'addr'. A negative address places the image at the top of memory. It
// returns the image's origin and size.
func (h *Host) Load(filename string, addr int) (origin uint16, size int, err error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return 0, 0, err
	}
	if len(b) == 0 {
		return 0, 0, errEmptyImage
	}

	if addr < 0 {
		addr = 0x10000 - len(b)
		if addr < 0 {
			return 0, 0, cpu.ErrMemoryOutOfBounds
		}
	}
	if addr > 0xffff {
		return 0, 0, cpu.ErrMemoryOutOfBounds
	}

	origin = uint16(addr)
	if err := h.mem.LoadImage(origin, b); err != nil {
		return 0, 0, err
	}
	return origin, len(b), nil
}

// Boot loads the program counter from the reset vector.
func (h *Host) Boot() {
	h.cpu.Boot()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) displayUsage(c *command) {
	if c.usage != "" {
		h.printf("Syntax: %s\n", c.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(title string, list []*command) {
	h.printf("%s commands:\n", title)
	for _, c := range list {
		if c.brief != "" {
			h.printf("    %-24s %s\n", c.path, c.brief)
		}
	}
}

func (h *Host) cmdHelp(args []string) error {
	if len(args) == 0 {
		h.displayCommands("Monitor", commands)
		return nil
	}

	n, _, err := cmds.Lookup(strings.Join(args, " "))
	if err != nil {
		h.printf("%v.\n", err)
		return nil
	}

	c, ok := commandOf(n)
	if !ok {
		// A subtree was selected, so list its commands.
		t, isTree := n.(*cmd.Tree)
		if !isTree {
			h.println("Incomplete command.")
			return nil
		}
		list := findCommands(t.Name)
		if len(list) == 0 {
			h.println("Incomplete command.")
			return nil
		}
		h.displayCommands(t.Name, list)
		return nil
	}

	h.printf("Syntax: %s\n\n", c.usage)
	switch {
	case c.description != "":
		h.printf("Description:\n%s\n\n", indentWrap(3, c.description))
	case c.brief != "":
		h.printf("Description:\n%s.\n\n", indentWrap(3, c.brief))
	}
	return nil
}

func (h *Host) cmdBoot(args []string) error {
	h.Boot()
	h.printf("Booted to $%04X.\n", h.cpu.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdReset(args []string) error {
	h.cpu.Reset()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.printf("CPU reset. Booted to $%04X.\n", h.cpu.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdBreakpointList(args []string) error {
	h.println("Breakpoints:")
	for _, b := range h.debugger.GetBreakpoints() {
		disabled := ""
		if b.Disabled {
			disabled = "(disabled)"
		}
		h.printf("   $%04X %s\n", b.Address, disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(args []string) error {
	addr, ok := h.parseAddrArg(args)
	if !ok {
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(args []string) error {
	addr, ok := h.parseAddrArg(args)
	if !ok {
		return nil
	}

	if !h.debugger.RemoveBreakpoint(addr) {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(args []string) error {
	return h.enableBreakpoint(args, true)
}

func (h *Host) cmdBreakpointDisable(args []string) error {
	return h.enableBreakpoint(args, false)
}

func (h *Host) enableBreakpoint(args []string, enable bool) error {
	addr, ok := h.parseAddrArg(args)
	if !ok {
		return nil
	}

	if !h.debugger.EnableBreakpoint(addr, enable) {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.printf("Breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDataBreakpointList(args []string) error {
	h.println("Data breakpoints:")
	for _, b := range h.debugger.GetDataBreakpoints() {
		h.printf("   $%04X", b.Address)
		if b.Conditional {
			h.printf(" on value $%02X", b.Value)
		}
		if b.Disabled {
			h.printf(" (disabled)")
		}
		h.println()
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(args []string) error {
	addr, ok := h.parseAddrArg(args)
	if !ok {
		return nil
	}

	if len(args) > 1 {
		value, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, byte(value))
		return nil
	}

	h.debugger.AddDataBreakpoint(addr)
	h.printf("Data breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointRemove(args []string) error {
	addr, ok := h.parseAddrArg(args)
	if !ok {
		return nil
	}

	if !h.debugger.RemoveDataBreakpoint(addr) {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(args []string) error {
	return h.enableDataBreakpoint(args, true)
}

func (h *Host) cmdDataBreakpointDisable(args []string) error {
	return h.enableDataBreakpoint(args, false)
}

func (h *Host) enableDataBreakpoint(args []string, enable bool) error {
	addr, ok := h.parseAddrArg(args)
	if !ok {
		return nil
	}

	if !h.debugger.EnableDataBreakpoint(addr, enable) {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.printf("Data breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDisassemble(args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	var addr uint16
	switch args[0] {
	case "$":
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.cpu.Reg.PC
		}

	default:
		a, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(args) > 1 {
		l, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr, 0)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEval(args []string) error {
	if len(args) < 1 {
		h.displayUsage(h.lastCmd.cmd)
		return nil
	}

	v, err := h.evaluate(strings.Join(args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X  %d\n", uint16(v), v)
	return nil
}

func (h *Host) cmdInterruptIRQ(args []string) error {
	if h.cpu.Reg.PS.IsSet(cpu.InterruptDisable) {
		h.println("IRQ ignored while interrupts are disabled.")
		return nil
	}

	h.cpu.IRQ()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.printf("IRQ raised. Jumped to $%04X.\n", h.cpu.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdInterruptNMI(args []string) error {
	h.cpu.NMI()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.printf("NMI raised. Jumped to $%04X.\n", h.cpu.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdLoad(args []string) error {
	if len(args) < 1 {
		h.displayUsage(h.lastCmd.cmd)
		return nil
	}

	filename := args[0]
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}

	loadAddr := -1
	if len(args) >= 2 {
		addr, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		loadAddr = int(addr)
	}

	origin, size, err := h.Load(filename, loadAddr)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	end := int(origin) + size - 1
	h.printf("Loaded '%s' to $%04X..$%04X.\n", filepath.Base(filename), origin, end)

	// An explicit address runs the image from its start. Otherwise the image
	// is treated as a ROM and booted through its reset vector.
	if loadAddr >= 0 {
		h.cpu.SetPC(origin)
		h.settings.NextDisasmAddr = origin
	} else {
		h.Boot()
	}
	h.displayPC()
	return nil
}

func (h *Host) cmdMemoryDump(args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	var addr uint16
	switch args[0] {
	case "$":
		addr = h.settings.NextMemDumpAddr

	default:
		a, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(args) >= 2 {
		var err error
		bytes, err = h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastCmd.args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(args []string) error {
	if len(args) < 2 {
		h.displayUsage(h.lastCmd.cmd)
		return nil
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := h.parseExpr(a)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		b = append(b, byte(v))
	}

	h.cpu.Mem.StoreBytes(addr, b)
	h.printf("Stored %d byte(s) at $%04X.\n", len(b), addr)
	return nil
}

func (h *Host) cmdMemoryClear(args []string) error {
	h.mem.Clear()
	h.println("Memory cleared.")
	return nil
}

func (h *Host) cmdQuit(args []string) error {
	return errQuit
}

func (h *Host) cmdRegister(args []string) error {
	if len(args) == 0 {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
		return nil
	}

	if len(args) < 2 {
		h.displayUsage(h.lastCmd.cmd)
		return nil
	}

	key := strings.ToLower(args[0])
	v, err := h.evaluate(strings.Join(args[1:], " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	r := &h.cpu.Reg
	switch key {
	case "a":
		r.A = byte(v)
	case "x":
		r.X = byte(v)
	case "y":
		r.Y = byte(v)
	case "sp":
		r.SP = byte(v)
	case ".", "pc":
		r.PC = uint16(v)
		h.settings.NextDisasmAddr = r.PC
		h.printf("Register PC set to $%04X.\n", r.PC)
		return nil
	default:
		f, ok := statusFlags[key]
		if !ok {
			h.printf("Unknown register '%s'.\n", args[0])
			return nil
		}
		r.PS.Set(f, v != 0)
		h.printf("Status flag %s set to %v.\n", f, v != 0)
		return nil
	}

	h.printf("Register %s set to $%02X.\n", strings.ToUpper(key), byte(v))
	return nil
}

var statusFlags = map[string]cpu.Flag{
	"n":                cpu.Negative,
	"negative":         cpu.Negative,
	"v":                cpu.Overflow,
	"overflow":         cpu.Overflow,
	"d":                cpu.Decimal,
	"decimal":          cpu.Decimal,
	"i":                cpu.InterruptDisable,
	"interruptdisable": cpu.InterruptDisable,
	"z":                cpu.Zero,
	"zero":             cpu.Zero,
	"c":                cpu.Carry,
	"carry":            cpu.Carry,
}

func (h *Host) cmdRun(args []string) error {
	if len(args) > 0 {
		pc, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	h.state = stateRunning
	h.interrupted.Store(false)
	for h.state == stateRunning {
		h.step()
		h.checkInterrupted()
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(h.lastCmd.cmd)

	default:
		key, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.String:
			err = h.settings.Set(key, value)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v int64
			v, err = h.evaluate(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(args []string) error {
	return h.stepCommand(args, h.step)
}

func (h *Host) cmdStepOver(args []string) error {
	return h.stepCommand(args, h.stepOver)
}

// Step the CPU 'count' times using the 'step' function, displaying at most
// the last MaxStepLines instructions.
func (h *Host) stepCommand(args []string, step func()) error {
	count := 1
	if len(args) > 0 {
		n, err := h.parseExpr(args[0])
		if err == nil {
			count = int(n)
		}
	}

	h.state = stateRunning
	h.interrupted.Store(false)
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		step()
		h.checkInterrupted()
		switch {
		case i == h.settings.MaxStepLines:
			if h.interactive {
				h.println("...")
			}
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

// Execute one instruction. An illegal opcode stops execution.
func (h *Host) step() {
	err := h.cpu.Step()

	var oe *cpu.OpcodeError
	if errors.As(err, &oe) {
		h.printf("Illegal opcode $%02X encountered at $%04X.\n", oe.Opcode, oe.Addr)
		h.state = stateBreakpoint
	}
}

// Execute one instruction, running subroutine calls to completion.
func (h *Host) stepOver() {
	inst := h.cpu.GetInstruction(h.cpu.Reg.PC)
	if inst.Name != "JSR" {
		h.step()
		return
	}

	next := h.cpu.Reg.PC + uint16(inst.Length)
	for h.state == stateRunning {
		h.step()
		h.checkInterrupted()
		if h.cpu.Reg.PC == next {
			break
		}
	}
}

func (h *Host) checkInterrupted() {
	if h.interrupted.Swap(false) && h.state == stateRunning {
		h.println("Execution interrupted.")
		h.state = stateBreakpoint
		h.displayPC()
	}
}

func (h *Host) onSettingsUpdate() {
	h.eval.hexMode = h.settings.HexMode
	if h.settings.TrapBrk {
		h.cpu.AttachBrkHandler(h.handler)
	} else {
		h.cpu.AttachBrkHandler(nil)
	}
}

// Evaluate an expression with the CPU registers in scope.
func (h *Host) evaluate(expr string) (int64, error) {
	r := &h.cpu.Reg
	return h.eval.Eval(expr, map[string]int64{
		"a":  int64(r.A),
		"x":  int64(r.X),
		"y":  int64(r.Y),
		"sp": 0x100 | int64(r.SP),
		"pc": int64(r.PC),
	})
}

func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := h.evaluate(expr)
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

// Parse the address in the first argument, displaying the command's usage
// if it is missing.
func (h *Host) parseAddrArg(args []string) (uint16, bool) {
	if len(args) < 1 {
		h.displayUsage(h.lastCmd.cmd)
		return 0, false
	}

	addr, err := h.parseExpr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.cpu.Mem, addr)

	b := make([]byte, next-addr)
	h.cpu.Mem.LoadBytes(addr, b)

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b), line)

	if (flags & displayRegisters) != 0 {
		if h.settings.CompactMode {
			str += " " + disasm.GetCompactRegisterString(&h.cpu.Reg)
		} else {
			str += " " + disasm.GetRegisterString(&h.cpu.Reg)
		}
	}

	if (flags&displayCycles) != 0 && !h.settings.CompactMode {
		str += fmt.Sprintf(" C=%d", h.cpu.Cycles)
	}

	return str, next
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.cpu.Mem.LoadByte(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := start
	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(a), buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= uint32(addr0) && a <= uint32(addr1) {
				m := h.cpu.Mem.LoadByte(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) onBrk(c *cpu.CPU) {
	h.state = stateBreakpoint
	h.printf("BRK encountered at $%04X.\n", c.Reg.PC)
	h.displayPC()
}

func (h *Host) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if h.state != stateRunning {
		return
	}
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	if h.state != stateRunning {
		return
	}
	h.state = stateBreakpoint
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)

	if h.interactive {
		d, _ := h.disassemble(c.LastPC, displayAll)
		h.println(d)
	}
}
