// Package bus offers an optional convenience router in front of the two
// peripheral emulators, dispatching each SPI byte exchange to whichever
// chip most recently had its chip-select line asserted. This is additive: it
// does not change either peripheral's own two-operation contract, and
// callers that want to drive chip selects independently can talk to
// sdcard.Card/spiram.SRAM directly instead.
package bus

// Peripheral is the two-operation contract shared by sdcard.Card and
// spiram.SRAM.
type Peripheral interface {
	ChipSelectChanged(selected bool)
	HandleSPIByte(b byte) byte
}

// Line identifies which peripheral a chip-select edge or byte exchange
// targets.
type Line int

const (
	// LineSD selects the SD card peripheral.
	LineSD Line = iota
	// LineSRAM selects the SPI SRAM peripheral.
	LineSRAM
)

// Router holds both peripherals and tracks which chip-select lines are
// currently asserted. A real SPI bus can assert more than one chip-select
// at once (each chip ignores bytes while its own select is inactive); since
// the firmware this emulates only ever talks to one chip at a time, Router
// models that common case by routing every HandleSPIByte call to the most
// recently asserted line.
type Router struct {
	sd   Peripheral
	sram Peripheral

	active   Line
	haveLine bool
}

// New creates a router in front of the given peripherals.
func New(sd, sram Peripheral) *Router {
	return &Router{sd: sd, sram: sram}
}

// ChipSelectChanged forwards the edge to the named peripheral and, when
// selected is true, makes that peripheral the active line for subsequent
// HandleSPIByte calls.
func (r *Router) ChipSelectChanged(line Line, selected bool) {
	r.peripheral(line).ChipSelectChanged(selected)
	if selected {
		r.active = line
		r.haveLine = true
	}
}

// HandleSPIByte routes b to whichever peripheral last had its chip-select
// asserted. It returns 0xFF, the SPI idle-line value, if no chip-select has
// ever been asserted.
func (r *Router) HandleSPIByte(b byte) byte {
	if !r.haveLine {
		return 0xFF
	}
	return r.peripheral(r.active).HandleSPIByte(b)
}

func (r *Router) peripheral(line Line) Peripheral {
	if line == LineSRAM {
		return r.sram
	}
	return r.sd
}
