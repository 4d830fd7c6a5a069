// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "sort"

// A Debugger watches an attached CPU and notifies its handler when the
// program counter reaches an execution breakpoint or when an instruction
// stores to a data breakpoint address.
type Debugger struct {
	handler         BreakpointHandler
	breakpoints     map[uint16]*Breakpoint
	dataBreakpoints map[uint16]*DataBreakpoint
}

// The BreakpointHandler interface should be implemented by any object that
// wishes to receive debugger breakpoint notifications.
type BreakpointHandler interface {
	OnBreakpoint(cpu *CPU, b *Breakpoint)
	OnDataBreakpoint(cpu *CPU, b *DataBreakpoint)
}

// A Breakpoint represents an address that will cause the debugger to stop
// code execution when the program counter reaches it.
type Breakpoint struct {
	Address  uint16 // address of execution breakpoint
	Disabled bool   // this breakpoint is currently disabled
}

// A DataBreakpoint represents an address that will cause the debugger to
// stop executing code when a byte is stored to it.
type DataBreakpoint struct {
	Address     uint16 // breakpoint triggered by stores to this address
	Disabled    bool   // this breakpoint is currently disabled
	Conditional bool   // only trigger when Value is stored
	Value       byte
}

// NewDebugger creates a new CPU debugger.
func NewDebugger(handler BreakpointHandler) *Debugger {
	return &Debugger{
		handler:         handler,
		breakpoints:     make(map[uint16]*Breakpoint),
		dataBreakpoints: make(map[uint16]*DataBreakpoint),
	}
}

// GetBreakpoint looks up a breakpoint by address and returns it if found.
// Otherwise it returns nil.
func (d *Debugger) GetBreakpoint(addr uint16) *Breakpoint {
	return d.breakpoints[addr]
}

// GetBreakpoints returns all breakpoints in address order.
func (d *Debugger) GetBreakpoints() []*Breakpoint {
	list := make([]*Breakpoint, 0, len(d.breakpoints))
	for _, b := range d.breakpoints {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Address < list[j].Address
	})
	return list
}

// AddBreakpoint adds an enabled breakpoint at the address, replacing any
// breakpoint already there.
func (d *Debugger) AddBreakpoint(addr uint16) *Breakpoint {
	b := &Breakpoint{Address: addr}
	d.breakpoints[addr] = b
	return b
}

// RemoveBreakpoint removes a breakpoint from the debugger. It returns false
// if there was no breakpoint at the address.
func (d *Debugger) RemoveBreakpoint(addr uint16) bool {
	if _, ok := d.breakpoints[addr]; !ok {
		return false
	}
	delete(d.breakpoints, addr)
	return true
}

// EnableBreakpoint enables or disables the breakpoint at the address. It
// returns false if there was no breakpoint at the address.
func (d *Debugger) EnableBreakpoint(addr uint16, enable bool) bool {
	b, ok := d.breakpoints[addr]
	if ok {
		b.Disabled = !enable
	}
	return ok
}

// GetDataBreakpoint looks up a data breakpoint on the provided address
// and returns it if found. Otherwise it returns nil.
func (d *Debugger) GetDataBreakpoint(addr uint16) *DataBreakpoint {
	return d.dataBreakpoints[addr]
}

// GetDataBreakpoints returns all data breakpoints in address order.
func (d *Debugger) GetDataBreakpoints() []*DataBreakpoint {
	list := make([]*DataBreakpoint, 0, len(d.dataBreakpoints))
	for _, b := range d.dataBreakpoints {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Address < list[j].Address
	})
	return list
}

// AddDataBreakpoint adds an unconditional data breakpoint on the requested
// address.
func (d *Debugger) AddDataBreakpoint(addr uint16) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr}
	d.dataBreakpoints[addr] = b
	return b
}

// AddConditionalDataBreakpoint adds a data breakpoint that only triggers
// when 'value' is stored to the requested address.
func (d *Debugger) AddConditionalDataBreakpoint(addr uint16, value byte) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr, Conditional: true, Value: value}
	d.dataBreakpoints[addr] = b
	return b
}

// RemoveDataBreakpoint removes a (conditional or unconditional) data
// breakpoint at the requested address.
func (d *Debugger) RemoveDataBreakpoint(addr uint16) bool {
	if _, ok := d.dataBreakpoints[addr]; !ok {
		return false
	}
	delete(d.dataBreakpoints, addr)
	return true
}

// EnableDataBreakpoint enables or disables the data breakpoint at the
// address.
func (d *Debugger) EnableDataBreakpoint(addr uint16, enable bool) bool {
	b, ok := d.dataBreakpoints[addr]
	if ok {
		b.Disabled = !enable
	}
	return ok
}

func (d *Debugger) onUpdatePC(cpu *CPU, addr uint16) {
	if d.handler == nil {
		return
	}
	if b, ok := d.breakpoints[addr]; ok && !b.Disabled {
		d.handler.OnBreakpoint(cpu, b)
	}
}

func (d *Debugger) onDataStore(cpu *CPU, addr uint16, v byte) {
	if d.handler == nil {
		return
	}
	if b, ok := d.dataBreakpoints[addr]; ok && !b.Disabled {
		if !b.Conditional || b.Value == v {
			d.handler.OnDataBreakpoint(cpu, b)
		}
	}
}
