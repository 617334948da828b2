package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weber21w/uzem-spiram/bus"
)

type recordingPeripheral struct {
	selected   bool
	lastByte   byte
	echoOffset byte
}

func (p *recordingPeripheral) ChipSelectChanged(selected bool) { p.selected = selected }

func (p *recordingPeripheral) HandleSPIByte(b byte) byte {
	p.lastByte = b
	return b + p.echoOffset
}

func TestHandleSPIByteReturnsIdleWhenNothingSelected(t *testing.T) {
	r := bus.New(&recordingPeripheral{}, &recordingPeripheral{})
	assert.Equal(t, byte(0xFF), r.HandleSPIByte(0x00))
}

func TestHandleSPIByteRoutesToSelectedLine(t *testing.T) {
	sd := &recordingPeripheral{echoOffset: 1}
	sram := &recordingPeripheral{echoOffset: 2}
	r := bus.New(sd, sram)

	r.ChipSelectChanged(bus.LineSRAM, true)
	got := r.HandleSPIByte(0x10)

	assert.Equal(t, byte(0x12), got)
	assert.Equal(t, byte(0x10), sram.lastByte)
	assert.Equal(t, byte(0), sd.lastByte)
}

func TestChipSelectChangedSwitchesActiveLine(t *testing.T) {
	sd := &recordingPeripheral{echoOffset: 1}
	sram := &recordingPeripheral{echoOffset: 2}
	r := bus.New(sd, sram)

	r.ChipSelectChanged(bus.LineSRAM, true)
	r.ChipSelectChanged(bus.LineSRAM, false)
	r.ChipSelectChanged(bus.LineSD, true)

	got := r.HandleSPIByte(0x01)
	assert.Equal(t, byte(0x02), got)
	assert.True(t, sd.selected)
	assert.False(t, sram.selected)
}

func TestChipSelectChangedForwardsDeselectEdge(t *testing.T) {
	sd := &recordingPeripheral{}
	sram := &recordingPeripheral{}
	r := bus.New(sd, sram)

	r.ChipSelectChanged(bus.LineSD, true)
	r.ChipSelectChanged(bus.LineSD, false)

	assert.False(t, sd.selected)
}
