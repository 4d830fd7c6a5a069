// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"errors"
	"sync"
)

// Errors
var (
	ErrMemoryOutOfBounds = errors.New("memory image exceeds the 64K address space")
)

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes from the address and stores them into
	// the buffer 'b'. Addresses wrap around at the end of memory.
	LoadBytes(addr uint16, b []byte)

	// LoadAddress loads a little-endian 16-bit address value from the
	// requested address and returns it.
	LoadAddress(addr uint16) uint16

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint16, v byte)

	// StoreBytes stores multiple bytes to the requested address.
	StoreBytes(addr uint16, b []byte)

	// StoreAddress stores a 16-bit address 'v' to the requested address.
	StoreAddress(addr uint16, v uint16)

	// LoadImage copies an image into memory starting at 'addr'. It fails
	// without modifying memory if the image does not fit.
	LoadImage(addr uint16, b []byte) error
}

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new 16-bit memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// Clear sets every byte of memory to zero.
func (m *FlatMemory) Clear() {
	m.b = [64 * 1024]byte{}
}

// LoadByte loads a single byte from the address and returns it.
func (m *FlatMemory) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address and returns them.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	n := copy(b, m.b[addr:])
	for n < len(b) {
		n += copy(b[n:], m.b[:])
	}
}

// LoadAddress loads a 16-bit address value from the requested address and
// returns it. The high byte is read from addr+1, wrapping from $FFFF to
// $0000.
func (m *FlatMemory) LoadAddress(addr uint16) uint16 {
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8
}

// StoreByte stores a byte at the requested address.
func (m *FlatMemory) StoreByte(addr uint16, v byte) {
	m.b[addr] = v
}

// StoreBytes stores multiple bytes to the requested address.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	n := copy(m.b[addr:], b)
	for n < len(b) {
		n += copy(m.b[:], b[n:])
	}
}

// StoreAddress stores a 16-bit address value to the requested address.
func (m *FlatMemory) StoreAddress(addr uint16, v uint16) {
	m.b[addr] = byte(v)
	m.b[addr+1] = byte(v >> 8)
}

// LoadImage copies the image 'b' into memory starting at 'addr'.
func (m *FlatMemory) LoadImage(addr uint16, b []byte) error {
	if int(addr)+len(b) > len(m.b) {
		return ErrMemoryOutOfBounds
	}
	copy(m.b[addr:], b)
	return nil
}

// SyncMemory guards another Memory with a mutex so that it may be shared
// between a CPU and other owners, such as a loader running on a different
// goroutine. The lock is held for a single access only.
type SyncMemory struct {
	mu  sync.Mutex
	mem Memory
}

// NewSyncMemory wraps 'm' in a mutex-guarded memory.
func NewSyncMemory(m Memory) *SyncMemory {
	return &SyncMemory{mem: m}
}

func (s *SyncMemory) LoadByte(addr uint16) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.LoadByte(addr)
}

func (s *SyncMemory) LoadBytes(addr uint16, b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.LoadBytes(addr, b)
}

func (s *SyncMemory) LoadAddress(addr uint16) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.LoadAddress(addr)
}

func (s *SyncMemory) StoreByte(addr uint16, v byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.StoreByte(addr, v)
}

func (s *SyncMemory) StoreBytes(addr uint16, b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.StoreBytes(addr, b)
}

func (s *SyncMemory) StoreAddress(addr uint16, v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem.StoreAddress(addr, v)
}

func (s *SyncMemory) LoadImage(addr uint16, b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.LoadImage(addr, b)
}

// Given a 1-byte stack pointer register, return the stack
// corresponding memory address.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) | uint16(offset)
}
