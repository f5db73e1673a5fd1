package cpu

import (
	"testing"

	"github.com/oisee/i8080emu/pkg/inst"
)

// TestFlagTables verifies the precomputed parity table matches its
// definition directly.
func TestFlagTables(t *testing.T) {
	if !ParityTable[0] {
		t.Error("ParityTable[0] should be even parity (true)")
	}
	if ParityTable[1] {
		t.Error("ParityTable[1] should be odd parity (false)")
	}
	if !ParityTable[0xFF] {
		t.Error("ParityTable[0xFF] should be even parity (true)")
	}
}

// TestFlagsPackUnpack verifies the fixed bits and round-trip through
// the packed byte representation used by PUSH PSW / POP PSW.
func TestFlagsPackUnpack(t *testing.T) {
	f := Flags{S: true, Z: false, AC: true, P: true, C: true}
	packed := f.Pack()

	if packed&0x02 == 0 {
		t.Error("packed flags must always have bit1 set")
	}
	if packed&0x08 != 0 {
		t.Error("packed flags must always have bit3 clear")
	}
	if packed&0x20 != 0 {
		t.Error("packed flags must always have bit5 clear")
	}

	got := UnpackFlags(packed)
	if got != f {
		t.Errorf("round-trip: got %+v, want %+v", got, f)
	}
}

func newState() *State {
	return &State{SP: 0x2400}
}

func exec1(s *State, op inst.OpCode, mutate func(*inst.Instruction)) int {
	in := inst.Instruction{Op: op}
	if mutate != nil {
		mutate(&in)
	}
	return Exec(s, in)
}

// TestAddFlags mirrors the worked ADD example from the reference
// semantics: S/Z/C/AC must all come out consistently from a single
// addition-based implementation.
func TestAddFlags(t *testing.T) {
	tests := []struct {
		a, b      uint8
		wantA     uint8
		wantC     bool
		wantZ     bool
		wantS     bool
		wantAC    bool
	}{
		{0, 0, 0, false, true, false, false},
		{1, 1, 2, false, false, false, false},
		{0xFF, 1, 0, true, true, false, true},
		{0x0F, 1, 0x10, false, false, false, true},
		{0x7F, 1, 0x80, false, false, true, true},
		{0x05, 0x03, 0x08, false, false, false, false},
	}

	for _, tc := range tests {
		s := newState()
		s.A, s.B = tc.a, tc.b
		exec1(s, inst.ADD, func(in *inst.Instruction) { in.Src = inst.RegB })

		if s.A != tc.wantA {
			t.Errorf("ADD %02X+%02X: A=%02X want %02X", tc.a, tc.b, s.A, tc.wantA)
		}
		if s.F.C != tc.wantC {
			t.Errorf("ADD %02X+%02X: C=%v want %v", tc.a, tc.b, s.F.C, tc.wantC)
		}
		if s.F.Z != tc.wantZ {
			t.Errorf("ADD %02X+%02X: Z=%v want %v", tc.a, tc.b, s.F.Z, tc.wantZ)
		}
		if s.F.S != tc.wantS {
			t.Errorf("ADD %02X+%02X: S=%v want %v", tc.a, tc.b, s.F.S, tc.wantS)
		}
		if s.F.AC != tc.wantAC {
			t.Errorf("ADD %02X+%02X: AC=%v want %v", tc.a, tc.b, s.F.AC, tc.wantAC)
		}
	}
}

// TestSubtractWithBorrow reproduces the documented SBI worked example:
// A=0x02, C=1, SBI 0x01 must leave A=0x00, Z=1, C=0, AC=1.
func TestSubtractWithBorrow(t *testing.T) {
	s := newState()
	s.A = 0x02
	s.F.C = true

	exec1(s, inst.SBI, func(in *inst.Instruction) { in.Imm8 = 0x01 })

	if s.A != 0x00 {
		t.Errorf("A: got %02X want 00", s.A)
	}
	if !s.F.Z {
		t.Error("Z should be set")
	}
	if s.F.C {
		t.Error("C should be clear")
	}
	if !s.F.AC {
		t.Error("AC should be set")
	}
}

func TestCmpDoesNotModifyA(t *testing.T) {
	for a := 0; a < 256; a += 7 {
		for v := 0; v < 256; v += 11 {
			s := newState()
			s.A, s.B = uint8(a), uint8(v)
			exec1(s, inst.CMP, func(in *inst.Instruction) { in.Src = inst.RegB })

			if s.A != uint8(a) {
				t.Fatalf("CMP %02X,%02X modified A to %02X", a, v, s.A)
			}
			wantZ := uint8(a) == uint8(v)
			if s.F.Z != wantZ {
				t.Fatalf("CMP %02X,%02X: Z=%v want %v", a, v, s.F.Z, wantZ)
			}
			wantC := uint8(a) < uint8(v)
			if s.F.C != wantC {
				t.Fatalf("CMP %02X,%02X: C=%v want %v", a, v, s.F.C, wantC)
			}
		}
	}
}

// TestLogicalOpsClearCarry verifies ANA/XRA/ORA always clear C.
func TestLogicalOpsClearCarry(t *testing.T) {
	for _, op := range []inst.OpCode{inst.ANA, inst.XRA, inst.ORA} {
		s := newState()
		s.A, s.B = 0xFF, 0x0F
		s.F.C = true
		exec1(s, op, func(in *inst.Instruction) { in.Src = inst.RegB })
		if s.F.C {
			t.Errorf("%v should clear C", op)
		}
	}
}

func TestAnaSetsACFromOperandOr(t *testing.T) {
	s := newState()
	s.A, s.B = 0xFF, 0x0F
	exec1(s, inst.ANA, func(in *inst.Instruction) { in.Src = inst.RegB })
	if s.A != 0x0F {
		t.Errorf("ANA: got A=%02X want 0F", s.A)
	}
	if !s.F.AC {
		t.Error("ANA 0xFF,0x0F: AC should be set from bit 3 of (A|operand)")
	}
}

func TestXraASelfZeroesAAndSetsZ(t *testing.T) {
	for a := 0; a < 256; a++ {
		s := newState()
		s.A = uint8(a)
		s.F.C = true
		exec1(s, inst.XRA, func(in *inst.Instruction) { in.Src = inst.RegA })
		if s.A != 0 {
			t.Fatalf("XRA A,A with A=%02X: got %02X want 0", a, s.A)
		}
		if !s.F.Z {
			t.Fatal("XRA A,A should set Z")
		}
		if s.F.C {
			t.Fatal("XRA A,A should clear C")
		}
	}
}

// TestIncDecDoNotTouchCarry verifies INR/DCR leave C alone for every
// input value, touching only S, Z, AC, P.
func TestIncDecDoNotTouchCarry(t *testing.T) {
	for a := 0; a < 256; a++ {
		for _, c := range []bool{false, true} {
			s := newState()
			s.A = uint8(a)
			s.F.C = c
			exec1(s, inst.INR, func(in *inst.Instruction) { in.Dst = inst.RegA })
			if s.F.C != c {
				t.Fatalf("INR A=%02X: C changed from %v to %v", a, c, s.F.C)
			}

			s2 := newState()
			s2.A = uint8(a)
			s2.F.C = c
			exec1(s2, inst.DCR, func(in *inst.Instruction) { in.Dst = inst.RegA })
			if s2.F.C != c {
				t.Fatalf("DCR A=%02X: C changed from %v to %v", a, c, s2.F.C)
			}
		}
	}
}

func TestIncDecWrap(t *testing.T) {
	s := newState()
	s.A = 0xFF
	exec1(s, inst.INR, func(in *inst.Instruction) { in.Dst = inst.RegA })
	if s.A != 0x00 || !s.F.Z {
		t.Errorf("INR A=0xFF: got A=%02X Z=%v, want A=00 Z=true", s.A, s.F.Z)
	}

	s2 := newState()
	s2.A = 0x00
	exec1(s2, inst.DCR, func(in *inst.Instruction) { in.Dst = inst.RegA })
	if s2.A != 0xFF {
		t.Errorf("DCR A=0x00: got A=%02X, want FF", s2.A)
	}
}

func TestRotates(t *testing.T) {
	s := newState()
	s.A = 0x80
	exec1(s, inst.RLC, nil)
	if s.A != 0x01 || !s.F.C {
		t.Errorf("RLC 0x80: A=%02X C=%v, want A=01 C=true", s.A, s.F.C)
	}

	s = newState()
	s.A = 0x01
	exec1(s, inst.RRC, nil)
	if s.A != 0x80 || !s.F.C {
		t.Errorf("RRC 0x01: A=%02X C=%v, want A=80 C=true", s.A, s.F.C)
	}

	s = newState()
	s.A = 0x80
	s.F.C = false
	exec1(s, inst.RAL, nil)
	if s.A != 0x00 || !s.F.C {
		t.Errorf("RAL 0x80 C=0: A=%02X C=%v, want A=00 C=true", s.A, s.F.C)
	}

	s = newState()
	s.A = 0x01
	s.F.C = true
	exec1(s, inst.RAR, nil)
	if s.A != 0x80 || !s.F.C {
		t.Errorf("RAR 0x01 C=1: A=%02X C=%v, want A=80 C=true", s.A, s.F.C)
	}
}

func TestCmaCmcStc(t *testing.T) {
	s := newState()
	s.A = 0x55
	exec1(s, inst.CMA, nil)
	if s.A != 0xAA {
		t.Errorf("CMA 0x55: got %02X want AA", s.A)
	}

	s = newState()
	s.F.C = false
	exec1(s, inst.STC, nil)
	if !s.F.C {
		t.Error("STC should set C")
	}

	s = newState()
	s.F.C = true
	exec1(s, inst.CMC, nil)
	if s.F.C {
		t.Error("CMC with C=1 should clear C")
	}
}

// TestDAA checks representative cases from the Intel 8080 decimal
// adjust table, plus the idempotence property for valid in-range BCD.
func TestDAA(t *testing.T) {
	tests := []struct {
		a, f uint8
		want uint8
	}{
		{0x15, 0, 0x15},
		{0x1A, 0, 0x20},
		{0xA0, 0, 0x00},
		{0x9A, 0, 0x00},
	}

	for _, tc := range tests {
		s := newState()
		s.A = tc.a
		s.F = UnpackFlags(tc.f)
		exec1(s, inst.DAA, nil)
		if s.A != tc.want {
			t.Errorf("DAA A=%02X F=%02X: got %02X want %02X", tc.a, tc.f, s.A, tc.want)
		}
	}

	for a := 0; a <= 0x99; a++ {
		hi, lo := a>>4, a&0x0F
		if hi > 9 || lo > 9 {
			continue // not valid packed BCD
		}
		s := newState()
		s.A = uint8(a)
		exec1(s, inst.DAA, nil)
		if s.A != uint8(a) {
			t.Fatalf("DAA idempotence: A=%02X became %02X", a, s.A)
		}
	}
}

func TestDadSetsOnlyCarry(t *testing.T) {
	s := newState()
	s.H, s.L = 0xFF, 0xFF
	s.B, s.C = 0x00, 0x01
	s.F.Z, s.F.S = true, true
	exec1(s, inst.DAD, func(in *inst.Instruction) { in.RP = inst.RPBC })
	if s.HL() != 0x0000 {
		t.Errorf("DAD BC overflow: got HL=%04X want 0000", s.HL())
	}
	if !s.F.C {
		t.Error("DAD should set C on 16-bit overflow")
	}
	if !s.F.Z || !s.F.S {
		t.Error("DAD must not touch Z/S")
	}
}

func TestPushPopPSWRoundTrip(t *testing.T) {
	s := newState()
	s.A = 0xAB
	s.F = Flags{Z: true, C: true, P: true, S: false, AC: false}
	sp0 := s.SP

	exec1(s, inst.PUSH, func(in *inst.Instruction) { in.RP = inst.RPSPorPSW })
	s.A = 0x00
	exec1(s, inst.POP, func(in *inst.Instruction) { in.RP = inst.RPSPorPSW })

	if s.A != 0xAB {
		t.Errorf("A after round-trip: got %02X want AB", s.A)
	}
	if !s.F.Z || !s.F.C || !s.F.P || s.F.S || s.F.AC {
		t.Errorf("flags after round-trip: %+v", s.F)
	}
	if s.SP != sp0 {
		t.Errorf("SP not restored: got %04X want %04X", s.SP, sp0)
	}
}

func TestCallRetPreservesSP(t *testing.T) {
	s := newState()
	sp0 := s.SP
	s.PC = 0x0000

	exec1(s, inst.CALL, func(in *inst.Instruction) { in.Imm16 = 0x0010 })
	if s.PC != 0x0010 {
		t.Errorf("CALL: PC=%04X want 0010", s.PC)
	}
	if s.SP != sp0-2 {
		t.Errorf("CALL: SP=%04X want %04X", s.SP, sp0-2)
	}

	exec1(s, inst.RET, nil)
	if s.SP != sp0 {
		t.Errorf("RET: SP=%04X want %04X", s.SP, sp0)
	}
}

func TestXchgIsSelfInverse(t *testing.T) {
	s := newState()
	s.D, s.E, s.H, s.L = 0x12, 0x34, 0x56, 0x78
	orig := *s
	exec1(s, inst.XCHG, nil)
	exec1(s, inst.XCHG, nil)
	if s.D != orig.D || s.E != orig.E || s.H != orig.H || s.L != orig.L {
		t.Errorf("XCHG twice did not restore state: got D=%02X E=%02X H=%02X L=%02X", s.D, s.E, s.H, s.L)
	}
}

func TestXthlIsSelfInverse(t *testing.T) {
	s := newState()
	s.SP = 0x2400
	s.Mem.Write16(0x2400, 0x1122)
	s.H, s.L = 0x33, 0x44
	origH, origL := s.H, s.L
	origTop := s.Mem.Read16(0x2400)

	exec1(s, inst.XTHL, nil)
	exec1(s, inst.XTHL, nil)

	if s.H != origH || s.L != origL {
		t.Errorf("XTHL twice: got HL=%02X%02X want %02X%02X", s.H, s.L, origH, origL)
	}
	if s.Mem.Read16(0x2400) != origTop {
		t.Errorf("XTHL twice: stack top changed")
	}
}

func TestMemoryWraparound(t *testing.T) {
	m := &Memory{}
	m.Write(0xFFFF, 0xAB)
	if m.Read(0x0000) != 0 {
		t.Fatal("writing 0xFFFF must not leak into 0x0000 on a byte write")
	}

	m2 := &Memory{}
	m2.Write16(0xFFFF, 0x1234)
	if m2.Read(0xFFFF) != 0x34 || m2.Read(0x0000) != 0x12 {
		t.Errorf("16-bit write at 0xFFFF should wrap: got [FFFF]=%02X [0000]=%02X", m2.Read(0xFFFF), m2.Read(0x0000))
	}
}

// TestAllOpcodesExecuteWithoutPanic exercises every Op with a
// representative instruction and state.
func TestAllOpcodesExecuteWithoutPanic(t *testing.T) {
	for op := inst.OpCode(0); op < inst.OpCodeCount(); op++ {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("OpCode %v panicked: %v", op, r)
				}
			}()
			s := newState()
			s.A, s.B, s.C, s.D, s.E, s.H, s.L = 0x42, 0x13, 0x24, 0x35, 0x46, 0x57, 0x68
			s.PC = 0x0100
			in := inst.Instruction{Op: op, Imm8: 0x11, Imm16: 0x2233, RST: 3, RP: inst.RPHL}
			Exec(s, in)
		}()
	}
}
