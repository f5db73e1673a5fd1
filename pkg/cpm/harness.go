// Package cpm implements the CP/M BDOS test-output convention used by
// the classic 8080 instruction-exerciser ROMs: a program that expects
// a running CP/M system under it needs only two entry points to work
// as a self-contained test — a HLT to stop the world when it RETs to
// address 0, and a BDOS call stub at 0x0005 that the host can trap.
//
// This package sits outside the CPU core entirely — the BDOS test
// driver is an external collaborator, not part of the CPU itself — and
// drives a *cpu.Stepper purely through its public operations: loading
// bytes, stepping, and reading registers/memory. It never reaches into
// unexported CPU internals.
package cpm

import "github.com/oisee/i8080emu/pkg/cpu"

// loadAddress is where CP/M-convention test programs are loaded and
// where execution begins; CP/M reserves the first 0x100 bytes of the
// address space for the BIOS/BDOS page this harness emulates.
const loadAddress = 0x0100

// Harness installs the CP/M entry-point stubs into a Stepper's memory
// and runs a test program to completion, capturing everything it
// writes through the console-output BDOS calls.
type Harness struct {
	out []byte
}

// New returns a Harness with no captured output yet.
func New() *Harness {
	return &Harness{}
}

// Install pokes the two fixed stubs a CP/M test ROM expects to find
// already resident: HLT at 0x0000 so a RET from the program halts the
// CPU, and `OUT 0; RET` at 0x0005 so a CALL 0x0005 (the BDOS entry
// convention) traps into the host instead of crashing into unmapped
// code.
func (h *Harness) Install(st *cpu.Stepper) {
	st.LoadProgram([]byte{0x76}, 0x0000)
	st.LoadProgram([]byte{0xD3, 0x00, 0xC9}, 0x0005)
}

// Load installs the stubs and the program, and points PC at the
// program's entry.
func (h *Harness) Load(st *cpu.Stepper, program []byte) {
	h.Install(st)
	st.LoadProgram(program, loadAddress)
	st.SetPC(loadAddress)
}

// Run single-steps st until it halts or maxCycles is exhausted,
// intercepting the BDOS call every time control reaches the injected
// stub at 0x0005 — the OUT 0 there is a trap marker, never a real
// I/O device, so the interception happens on PC rather than waiting
// on the port write to land.
func (h *Harness) Run(st *cpu.Stepper, maxCycles int) {
	cycles := 0
	for cycles < maxCycles {
		if st.State.Halted {
			return
		}
		if st.State.PC == 0x0005 {
			h.intercept(st.State)
		}
		cycles += st.Step()
	}
}

// intercept implements the two BDOS operations the classic 8080 test
// ROMs rely on: C2 prints a single character, C9 prints a
// '$'-terminated string. Every other C value is a documented no-op.
func (h *Harness) intercept(s *cpu.State) {
	switch s.C {
	case 2:
		h.out = append(h.out, s.E)
	case 9:
		addr := s.DE()
		for {
			b := s.Mem.Read(addr)
			if b == '$' {
				break
			}
			h.out = append(h.out, b)
			addr++
		}
	}
}

// Output returns everything captured through the console BDOS calls
// so far.
func (h *Harness) Output() string {
	return string(h.out)
}
