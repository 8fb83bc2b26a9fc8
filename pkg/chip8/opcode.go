package chip8

import (
	"errors"
	"fmt"
)

// ErrUnknownOpcode is returned by Decode (and therefore Execute) when an
// opcode matches none of the defined instruction patterns.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Op identifies a decoded instruction.
type Op int

const (
	OpSYS      Op = iota // 0nnn: legacy machine call, ignored
	OpCLS                // 00E0: clear display
	OpRET                // 00EE: return from subroutine
	OpJP                 // 1nnn: jump
	OpCALL               // 2nnn: call subroutine
	OpSEByte             // 3xkk: skip if Vx == kk
	OpSNEByte            // 4xkk: skip if Vx != kk
	OpSEReg              // 5xy0: skip if Vx == Vy
	OpLDByte             // 6xkk: Vx = kk
	OpADDByte            // 7xkk: Vx += kk
	OpLDReg              // 8xy0: Vx = Vy
	OpOR                 // 8xy1
	OpAND                // 8xy2
	OpXOR                // 8xy3
	OpADDReg             // 8xy4: Vx += Vy, VF = carry
	OpSUB                // 8xy5: Vx -= Vy, VF = not borrow
	OpSHR                // 8xy6: Vx >>= 1, VF = dropped bit
	OpSUBN               // 8xy7: Vx = Vy - Vx, VF = not borrow
	OpSHL                // 8xyE: Vx <<= 1, VF = dropped bit (unnormalized)
	OpSNEReg             // 9xy0: skip if Vx != Vy
	OpLDI                // Annn: I = nnn
	OpJPV0               // Bnnn: jump to nnn + V0
	OpRND                // Cxkk: Vx = random byte & kk
	OpDRW                // Dxyn: draw sprite
	OpSKP                // Ex9E: skip if key Vx held
	OpSKNP               // ExA1: skip if key Vx not held
	OpLDVxDT             // Fx07: Vx = delay timer
	OpLDKey              // Fx0A: wait for key press into Vx
	OpLDDTVx             // Fx15: delay timer = Vx
	OpLDSTVx             // Fx18: sound timer = Vx
	OpADDI               // Fx1E: I += Vx
	OpLDFont             // Fx29: I = glyph address of Vx
	OpBCD                // Fx33: memory[I..I+2] = decimal digits of Vx
	OpSaveRegs           // Fx55: memory[I..I+x] = V0..Vx
	OpLoadRegs           // Fx65: V0..Vx = memory[I..I+x]
)

// Instruction is a decoded opcode: the operation tag plus every extracted
// field. Field extraction is fixed regardless of operation:
//
//	x   = (opcode & 0x0F00) >> 8
//	y   = (opcode & 0x00F0) >> 4
//	kk  = opcode & 0x00FF
//	nnn = opcode & 0x0FFF
//	n   = opcode & 0x000F
type Instruction struct {
	Op  Op
	X   uint8
	Y   uint8
	KK  byte
	NNN uint16
	N   uint8
}

// Decode extracts the instruction fields and resolves the operation tag.
// Dispatch is on the high nibble, with the 0, 5, 8, 9, E and F groups
// resolved by a secondary match on the low byte or low nibble. Any pattern
// outside the defined set fails with ErrUnknownOpcode.
func Decode(opcode uint16) (Instruction, error) {
	in := Instruction{
		X:   uint8((opcode & 0x0F00) >> 8),
		Y:   uint8((opcode & 0x00F0) >> 4),
		KK:  byte(opcode & 0x00FF),
		NNN: opcode & 0x0FFF,
		N:   uint8(opcode & 0x000F),
	}

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			in.Op = OpCLS
		case 0x00EE:
			in.Op = OpRET
		default:
			in.Op = OpSYS
		}
	case 0x1000:
		in.Op = OpJP
	case 0x2000:
		in.Op = OpCALL
	case 0x3000:
		in.Op = OpSEByte
	case 0x4000:
		in.Op = OpSNEByte
	case 0x5000:
		if in.N != 0 {
			return in, decodeError(opcode)
		}
		in.Op = OpSEReg
	case 0x6000:
		in.Op = OpLDByte
	case 0x7000:
		in.Op = OpADDByte
	case 0x8000:
		switch in.N {
		case 0x0:
			in.Op = OpLDReg
		case 0x1:
			in.Op = OpOR
		case 0x2:
			in.Op = OpAND
		case 0x3:
			in.Op = OpXOR
		case 0x4:
			in.Op = OpADDReg
		case 0x5:
			in.Op = OpSUB
		case 0x6:
			in.Op = OpSHR
		case 0x7:
			in.Op = OpSUBN
		case 0xE:
			in.Op = OpSHL
		default:
			return in, decodeError(opcode)
		}
	case 0x9000:
		if in.N != 0 {
			return in, decodeError(opcode)
		}
		in.Op = OpSNEReg
	case 0xA000:
		in.Op = OpLDI
	case 0xB000:
		in.Op = OpJPV0
	case 0xC000:
		in.Op = OpRND
	case 0xD000:
		in.Op = OpDRW
	case 0xE000:
		switch in.KK {
		case 0x9E:
			in.Op = OpSKP
		case 0xA1:
			in.Op = OpSKNP
		default:
			return in, decodeError(opcode)
		}
	case 0xF000:
		switch in.KK {
		case 0x07:
			in.Op = OpLDVxDT
		case 0x0A:
			in.Op = OpLDKey
		case 0x15:
			in.Op = OpLDDTVx
		case 0x18:
			in.Op = OpLDSTVx
		case 0x1E:
			in.Op = OpADDI
		case 0x29:
			in.Op = OpLDFont
		case 0x33:
			in.Op = OpBCD
		case 0x55:
			in.Op = OpSaveRegs
		case 0x65:
			in.Op = OpLoadRegs
		default:
			return in, decodeError(opcode)
		}
	}

	return in, nil
}

func decodeError(opcode uint16) error {
	return fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, opcode)
}
