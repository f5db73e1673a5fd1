package cpu

// 8080 flags-byte bit positions: C:0, always-1:1, P:2, always-0:3,
// AC:4, always-0:5, Z:6, S:7.
const (
	flagBitC  = 0
	flagBitP  = 2
	flagBitAC = 4
	flagBitZ  = 6
	flagBitS  = 7
)

// ParityTable holds the even-parity bit for every byte value, precomputed
// once at init rather than recomputed per instruction.
var ParityTable [256]bool

func init() {
	for i := 0; i < 256; i++ {
		v := uint8(i)
		ones := 0
		for b := 0; b < 8; b++ {
			if v&(1<<uint(b)) != 0 {
				ones++
			}
		}
		ParityTable[i] = ones%2 == 0
	}
}

// Flags holds the five 8080 condition flags as booleans — the single
// source of truth. The packed flags byte is always derived from these,
// never stored independently, so PUSH PSW / POP PSW cannot drift.
type Flags struct {
	S  bool // Sign
	Z  bool // Zero
	AC bool // Auxiliary carry (half-carry between bit 3 and 4)
	P  bool // Parity (even)
	C  bool // Carry
}

// Pack encodes the flags into the 8080 flags byte, with the fixed
// constant bits (bit1=1, bit3=0, bit5=0).
func (f Flags) Pack() uint8 {
	var b uint8 = 1 << 1
	b |= bsel(f.C, 1<<flagBitC, 0)
	b |= bsel(f.P, 1<<flagBitP, 0)
	b |= bsel(f.AC, 1<<flagBitAC, 0)
	b |= bsel(f.Z, 1<<flagBitZ, 0)
	b |= bsel(f.S, 1<<flagBitS, 0)
	return b
}

// UnpackFlags decodes a flags byte (as popped from the stack) into
// Flags, ignoring the constant bits.
func UnpackFlags(b uint8) Flags {
	return Flags{
		S:  b&(1<<flagBitS) != 0,
		Z:  b&(1<<flagBitZ) != 0,
		AC: b&(1<<flagBitAC) != 0,
		P:  b&(1<<flagBitP) != 0,
		C:  b&(1<<flagBitC) != 0,
	}
}

// setSZP updates S, Z, P from an 8-bit result, the common tail of every
// arithmetic/logical instruction.
func (f *Flags) setSZP(result uint8) {
	f.S = result&0x80 != 0
	f.Z = result == 0
	f.P = ParityTable[result]
}

func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}
