package cpu_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/w65xx/w65xx/cpu"
)

func TestLoadImage(t *testing.T) {
	assert := assert.New(t)

	mem := cpu.NewFlatMemory()
	assert.NoError(mem.LoadImage(0xfffe, []byte{0x34, 0x12}))
	assert.Equal(uint16(0x1234), mem.LoadAddress(0xfffe))

	err := mem.LoadImage(0xffff, []byte{0xaa, 0xbb})
	assert.ErrorIs(err, cpu.ErrMemoryOutOfBounds)
	assert.Equal(byte(0x12), mem.LoadByte(0xffff))
	assert.Equal(byte(0x00), mem.LoadByte(0x0000))
}

func TestAddressWrap(t *testing.T) {
	assert := assert.New(t)

	mem := cpu.NewFlatMemory()
	mem.StoreAddress(0xffff, 0xbeef)
	assert.Equal(byte(0xef), mem.LoadByte(0xffff))
	assert.Equal(byte(0xbe), mem.LoadByte(0x0000))
	assert.Equal(uint16(0xbeef), mem.LoadAddress(0xffff))

	b := make([]byte, 3)
	mem.StoreBytes(0xfffe, []byte{1, 2, 3})
	mem.LoadBytes(0xfffe, b)
	assert.Equal([]byte{1, 2, 3}, b)
}

func TestSyncMemory(t *testing.T) {
	assert := assert.New(t)

	mem := cpu.NewSyncMemory(cpu.NewFlatMemory())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(base uint16) {
			defer wg.Done()
			for j := uint16(0); j < 256; j++ {
				mem.StoreByte(base+j, byte(j))
			}
		}(uint16(i) * 0x100)
	}
	wg.Wait()

	for i := uint16(0); i < 8*0x100; i++ {
		assert.Equal(byte(i), mem.LoadByte(i))
	}

	c := cpu.NewCPU(mem)
	assert.NoError(mem.LoadImage(0x0200, []byte{0xa9, 0x7f, 0x8d, 0x00, 0x30}))
	c.SetPC(0x0200)
	assert.NoError(c.Step())
	assert.NoError(c.Step())
	assert.Equal(byte(0x7f), mem.LoadByte(0x3000))
}

type breakRecorder struct {
	breakpoints     []uint16
	dataBreakpoints []uint16
}

func (r *breakRecorder) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	r.breakpoints = append(r.breakpoints, b.Address)
}

func (r *breakRecorder) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	r.dataBreakpoints = append(r.dataBreakpoints, b.Address)
}

func TestDebugger(t *testing.T) {
	assert := assert.New(t)

	c := loadCPU(
		0xa9, 0x01, // LDA #$01
		0x8d, 0x00, 0x20, // STA $2000
		0x8d, 0x01, 0x20, // STA $2001
		0xea, // NOP
	)

	r := &breakRecorder{}
	d := cpu.NewDebugger(r)
	c.AttachDebugger(d)

	d.AddBreakpoint(0x1005)
	d.AddBreakpoint(0x1002)
	d.AddConditionalDataBreakpoint(0x2000, 0x01)
	d.AddConditionalDataBreakpoint(0x2001, 0x02)

	bps := d.GetBreakpoints()
	if assert.Len(bps, 2) {
		assert.Equal(uint16(0x1002), bps[0].Address)
		assert.Equal(uint16(0x1005), bps[1].Address)
	}

	assert.True(d.EnableBreakpoint(0x1005, false))
	assert.False(d.EnableBreakpoint(0x1234, false))

	stepCPU(t, c, 4)
	assert.Equal([]uint16{0x1002}, r.breakpoints)
	assert.Equal([]uint16{0x2000}, r.dataBreakpoints)

	assert.True(d.RemoveBreakpoint(0x1002))
	assert.False(d.RemoveBreakpoint(0x1002))
	assert.Nil(d.GetBreakpoint(0x1002))
	assert.True(d.RemoveDataBreakpoint(0x2000))
	assert.Len(d.GetDataBreakpoints(), 1)

	c.DetachDebugger()
	c.SetPC(origin)
	stepCPU(t, c, 2)
	assert.Len(r.dataBreakpoints, 1)
}
