package chip8

import (
	"fmt"
	"time"
)

const (
	// FrameRate is the logical frame rate in frames per second.
	FrameRate = 60
	// FrameInterval is the wall-clock time between processed frames.
	FrameInterval = time.Second / FrameRate
	// ToneHz is the fixed frequency of the sound-timer tone.
	ToneHz = 40
)

// Frame performs one logical frame of work and reports whether a frame was
// processed. A frame is processed only when at least FrameInterval has
// elapsed since the last processed frame; if more time than that has passed
// only a single frame's worth of work is done (frame skipping, not
// catch-up).
//
// While Running, up to Speed instructions are fetched and executed; if still
// Running afterwards, both timers are decremented by at most 1. The sound
// timer is then queried to gate the Beeper on or off. The caller hands the
// Display to the rasterizer after every processed frame.
//
// An execution error halts the machine and is returned; subsequent calls do
// nothing.
func (m *Machine) Frame(now time.Time) (bool, error) {
	if m.Halted {
		return false, nil
	}
	if now.Sub(m.lastFrame) < FrameInterval {
		return false, nil
	}
	m.lastFrame = now

	for i := 0; i < m.Speed && !m.Paused; i++ {
		opcode, err := m.fetch()
		if err != nil {
			m.Halted = true
			return true, err
		}
		if err := m.Execute(opcode); err != nil {
			return true, err
		}
	}

	if !m.Paused {
		m.tickTimers()
	}

	if m.Beeper != nil {
		if m.Sound > 0 {
			m.Beeper.Play(ToneHz)
		} else {
			m.Beeper.Stop()
		}
	}

	return true, nil
}

// fetch combines the two bytes at PC big-endian into a 16-bit opcode.
func (m *Machine) fetch() (uint16, error) {
	if int(m.PC)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: instruction fetch at PC=0x%04X", ErrAddressRange, m.PC)
	}
	return uint16(m.Memory[m.PC])<<8 | uint16(m.Memory[m.PC+1]), nil
}

// tickTimers decrements each timer by 1, flooring at 0.
func (m *Machine) tickTimers() {
	if m.Delay > 0 {
		m.Delay--
	}
	if m.Sound > 0 {
		m.Sound--
	}
}
