package cpu

// Memory is the 8080's full 64 KiB address space. Every address is
// read-write from both CPU and host; there is no protection.
type Memory [65536]byte

// Read returns the byte at addr, wrapping modulo 2^16.
func (m *Memory) Read(addr uint16) uint8 {
	return m[addr]
}

// Write stores a byte at addr, wrapping modulo 2^16.
func (m *Memory) Write(addr uint16, v uint8) {
	m[addr] = v
}

// Read16 reads a little-endian 16-bit word at addr, addr+1 (wrapping).
func (m *Memory) Read16(addr uint16) uint16 {
	lo := m.Read(addr)
	hi := m.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 stores a little-endian 16-bit word at addr, addr+1 (wrapping).
func (m *Memory) Write16(addr uint16, v uint16) {
	m.Write(addr, uint8(v))
	m.Write(addr+1, uint8(v>>8))
}

// ReadByte implements inst.ByteReader directly on a bare Memory, so
// callers that only have a Memory (no full State) — such as the
// disassembler CLI — can still drive Decode.
func (m *Memory) ReadByte(addr uint16) uint8 {
	return m.Read(addr)
}

// Ports holds the two independent 256-entry byte arrays the CPU and
// host use to exchange I/O: In is written by the host and read by the
// CPU (via IN); Out is written by the CPU (via OUT) and read by the
// host.
type Ports struct {
	In  [256]byte
	Out [256]byte
}

// State is the full architectural state of one 8080: registers, flags,
// memory, ports, program counter, and the interrupt/halt latches. It is
// large (memory alone is 64 KiB) and always referenced by pointer, never
// copied.
type State struct {
	A, B, C, D, E, H, L uint8
	SP                  uint16
	PC                  uint16
	F                   Flags

	Mem   Memory
	Ports Ports

	InterruptEnabled bool
	Halted           bool

	// PendingInterrupt holds at most one scheduled RST n (n in 0..7);
	// nil when no interrupt is pending. A second Interrupt() call
	// before delivery overwrites it.
	PendingInterrupt *uint8
}

// NewState returns a zero-initialized 8080 with interrupts enabled, the
// documented reset state.
func NewState() *State {
	return &State{InterruptEnabled: true}
}

// BC, DE, HL, and SetBC/SetDE/SetHL implement the 16-bit register-pair
// view: high byte in the first-named register, low byte in the second.
func (s *State) BC() uint16 { return pair(s.B, s.C) }
func (s *State) DE() uint16 { return pair(s.D, s.E) }
func (s *State) HL() uint16 { return pair(s.H, s.L) }

func (s *State) SetBC(v uint16) { s.B, s.C = split(v) }
func (s *State) SetDE(v uint16) { s.D, s.E = split(v) }
func (s *State) SetHL(v uint16) { s.H, s.L = split(v) }

func pair(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

func split(v uint16) (hi, lo uint8) {
	return uint8(v >> 8), uint8(v)
}

// ReadByte implements inst.ByteReader so the decoder can read memory
// through nothing but this one method.
func (s *State) ReadByte(addr uint16) uint8 {
	return s.Mem.Read(addr)
}
