package cpu

import "github.com/oisee/i8080emu/pkg/inst"

// Stepper drives a State through a bounded run of instructions,
// interleaving at most one pending interrupt between instructions. It
// is the piece of the CORE a host drives; hosts such as the CLI and the
// CP/M harness read registers and memory through the exported State
// field.
type Stepper struct {
	State *State
}

// NewStepper wraps a fresh, zero-initialized 8080.
func NewStepper() *Stepper {
	return &Stepper{State: NewState()}
}

// LoadProgram copies bytes into memory starting at start, wrapping at
// the top of the address space if the program runs past 0xFFFF. The
// CP/M and arcade ROMs this emulator targets never trigger that wrap.
// Registers are untouched.
func (st *Stepper) LoadProgram(bytes []byte, start uint16) {
	addr := start
	for _, b := range bytes {
		st.State.Mem.Write(addr, b)
		addr++
	}
}

// SetPC overrides the program counter (harness-only operation).
func (st *Stepper) SetPC(addr uint16) {
	st.State.PC = addr
}

// SetInput sets the byte the CPU will read back via IN port.
func (st *Stepper) SetInput(port uint8, v uint8) {
	st.State.Ports.In[port] = v
}

// GetOutput returns the last byte the CPU wrote via OUT port.
func (st *Stepper) GetOutput(port uint8) uint8 {
	return st.State.Ports.Out[port]
}

// Interrupt schedules RST n for delivery at the next inter-instruction
// boundary. A second call before delivery overwrites the first — the
// pending slot holds at most one event.
func (st *Stepper) Interrupt(n uint8) {
	v := n
	st.State.PendingInterrupt = &v
}

// Run executes instructions until accumulated cycles reach maxCycles or
// the halt latch is set with no way to clear it. The budget is soft:
// the current instruction always completes before the check, so Run
// may overshoot by at most the cost of the single largest instruction.
func (st *Stepper) Run(maxCycles int) {
	cycles := 0
	for cycles < maxCycles {
		s := st.State
		if s.Halted && (s.PendingInterrupt == nil || !s.InterruptEnabled) {
			return
		}
		cycles += st.Step()
	}
}

// Step executes exactly one inter-instruction unit of work: the
// pending interrupt if one exists and interrupts are enabled,
// otherwise the instruction at PC. Returns its T-state cost. Exposed
// directly for hosts (such as the CP/M harness) that need to inspect
// state between every single instruction rather than after a cycle
// budget.
func (st *Stepper) Step() int {
	s := st.State
	if s.PendingInterrupt != nil && s.InterruptEnabled {
		n := *s.PendingInterrupt
		s.PendingInterrupt = nil
		s.InterruptEnabled = false
		s.Halted = false // an interrupt wakes a halted CPU
		return ExecInterrupt(s, n)
	}

	if s.Halted {
		return 0
	}

	in, _ := inst.Decode(s, s.PC)
	return Exec(s, in)
}
