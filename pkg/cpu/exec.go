package cpu

import "github.com/oisee/i8080emu/pkg/inst"

// Exec executes a single decoded instruction against s. Returns the
// T-state cost. PC is updated exactly once: to PC+length for every
// non-branch and untaken conditional, to the branch target for every
// taken one — never both.
func Exec(s *State, in inst.Instruction) int {
	next := s.PC + uint16(inst.Length(in.Op))
	taken := false

	switch in.Op {
	case inst.NOP:
		// nothing

	case inst.MOV:
		s.setReg(in.Dst, s.getReg(in.Src))
	case inst.MVI:
		s.setReg(in.Dst, in.Imm8)
	case inst.LXI:
		s.setPair(in.RP, in.Imm16)
	case inst.LDA:
		s.A = s.Mem.Read(in.Imm16)
	case inst.STA:
		s.Mem.Write(in.Imm16, s.A)
	case inst.LHLD:
		s.SetHL(s.Mem.Read16(in.Imm16))
	case inst.SHLD:
		s.Mem.Write16(in.Imm16, s.HL())
	case inst.LDAX:
		s.A = s.Mem.Read(s.pairAddr(in.RP))
	case inst.STAX:
		s.Mem.Write(s.pairAddr(in.RP), s.A)
	case inst.XCHG:
		s.H, s.D = s.D, s.H
		s.L, s.E = s.E, s.L

	case inst.ADD:
		execAdd(s, s.getReg(in.Src))
	case inst.ADC:
		execAdc(s, s.getReg(in.Src))
	case inst.SUB:
		execSubtract(s, s.getReg(in.Src), false)
	case inst.SBB:
		execSubtract(s, s.getReg(in.Src), s.F.C)
	case inst.ADI:
		execAdd(s, in.Imm8)
	case inst.ACI:
		execAdc(s, in.Imm8)
	case inst.SUI:
		execSubtract(s, in.Imm8, false)
	case inst.SBI:
		execSubtract(s, in.Imm8, s.F.C)
	case inst.INR:
		s.setReg(in.Dst, execInr(s, s.getReg(in.Dst)))
	case inst.DCR:
		s.setReg(in.Dst, execDcr(s, s.getReg(in.Dst)))
	case inst.INX:
		s.setPair(in.RP, s.getPair(in.RP)+1)
	case inst.DCX:
		s.setPair(in.RP, s.getPair(in.RP)-1)
	case inst.DAD:
		execDad(s, in.RP)
	case inst.DAA:
		execDaa(s)

	case inst.ANA:
		execAna(s, s.getReg(in.Src))
	case inst.XRA:
		execXra(s, s.getReg(in.Src))
	case inst.ORA:
		execOra(s, s.getReg(in.Src))
	case inst.CMP:
		execCmp(s, s.getReg(in.Src))
	case inst.ANI:
		execAna(s, in.Imm8)
	case inst.XRI:
		execXra(s, in.Imm8)
	case inst.ORI:
		execOra(s, in.Imm8)
	case inst.CPI:
		execCmp(s, in.Imm8)
	case inst.RLC:
		execRlc(s)
	case inst.RRC:
		execRrc(s)
	case inst.RAL:
		execRal(s)
	case inst.RAR:
		execRar(s)
	case inst.CMA:
		s.A = ^s.A
	case inst.CMC:
		s.F.C = !s.F.C
	case inst.STC:
		s.F.C = true

	case inst.JMP:
		next = in.Imm16
	case inst.JCOND:
		if evalCond(s.F, in.Cond) {
			next = in.Imm16
		}
	case inst.CALL:
		pushWord(s, next)
		next = in.Imm16
	case inst.CCOND:
		if evalCond(s.F, in.Cond) {
			pushWord(s, next)
			next = in.Imm16
			taken = true
		}
	case inst.RET:
		next = popWord(s)
	case inst.RCOND:
		if evalCond(s.F, in.Cond) {
			next = popWord(s)
			taken = true
		}
	case inst.RST:
		pushWord(s, next)
		next = uint16(in.RST) * 8
	case inst.PCHL:
		next = s.HL()

	case inst.PUSH:
		pushRegPair(s, in.RP)
	case inst.POP:
		popRegPair(s, in.RP)
	case inst.XTHL:
		lo := s.Mem.Read(s.SP)
		hi := s.Mem.Read(s.SP + 1)
		s.Mem.Write(s.SP, s.L)
		s.Mem.Write(s.SP+1, s.H)
		s.L, s.H = lo, hi
	case inst.SPHL:
		s.SP = s.HL()
	case inst.IN:
		s.A = s.Ports.In[in.Imm8]
	case inst.OUT:
		s.Ports.Out[in.Imm8] = s.A
	case inst.EI:
		s.InterruptEnabled = true
	case inst.DI:
		s.InterruptEnabled = false
	case inst.HLT:
		s.Halted = true
	}

	s.PC = next
	return inst.Cycles(in, taken)
}

// ExecInterrupt delivers an interrupt acknowledged between instructions
// rather than one fetched from the instruction stream: no fetch ever
// advanced PC, so it pushes the current, unadvanced PC (not PC+1) and
// jumps straight to the restart vector at n*8. Returns the T-state cost
// of the equivalent RST.
func ExecInterrupt(s *State, n uint8) int {
	pushWord(s, s.PC)
	s.PC = uint16(n) * 8
	return inst.Cycles(inst.Instruction{Op: inst.RST}, false)
}

// --- operand access ---

func (s *State) getReg(r inst.Reg) uint8 {
	switch r {
	case inst.RegB:
		return s.B
	case inst.RegC:
		return s.C
	case inst.RegD:
		return s.D
	case inst.RegE:
		return s.E
	case inst.RegH:
		return s.H
	case inst.RegL:
		return s.L
	case inst.RegM:
		return s.Mem.Read(s.HL())
	default:
		return s.A
	}
}

func (s *State) setReg(r inst.Reg, v uint8) {
	switch r {
	case inst.RegB:
		s.B = v
	case inst.RegC:
		s.C = v
	case inst.RegD:
		s.D = v
	case inst.RegE:
		s.E = v
	case inst.RegH:
		s.H = v
	case inst.RegL:
		s.L = v
	case inst.RegM:
		s.Mem.Write(s.HL(), v)
	default:
		s.A = v
	}
}

// getPair/setPair serve LXI/INX/DCX/DAD, where rp=3 means SP.
func (s *State) getPair(rp inst.RegPair) uint16 {
	switch rp {
	case inst.RPBC:
		return s.BC()
	case inst.RPDE:
		return s.DE()
	case inst.RPHL:
		return s.HL()
	default:
		return s.SP
	}
}

func (s *State) setPair(rp inst.RegPair, v uint16) {
	switch rp {
	case inst.RPBC:
		s.SetBC(v)
	case inst.RPDE:
		s.SetDE(v)
	case inst.RPHL:
		s.SetHL(v)
	default:
		s.SP = v
	}
}

// pairAddr serves LDAX/STAX, which only ever name BC or DE.
func (s *State) pairAddr(rp inst.RegPair) uint16 {
	if rp == inst.RPBC {
		return s.BC()
	}
	return s.DE()
}

func evalCond(f Flags, c inst.Cond) bool {
	switch c {
	case inst.CondNZ:
		return !f.Z
	case inst.CondZ:
		return f.Z
	case inst.CondNC:
		return !f.C
	case inst.CondC:
		return f.C
	case inst.CondPO:
		return !f.P
	case inst.CondPE:
		return f.P
	case inst.CondP:
		return !f.S
	default: // CondM
		return f.S
	}
}

// --- stack helpers ---

// pushWord stores v with its high byte at SP-1, low byte at SP-2, then
// sets SP to SP-2: the 8080 stack grows downward.
func pushWord(s *State, v uint16) {
	s.Mem.Write(s.SP-1, uint8(v>>8))
	s.Mem.Write(s.SP-2, uint8(v))
	s.SP -= 2
}

// popWord reads the low byte at SP, the high byte at SP+1, then sets SP
// to SP+2.
func popWord(s *State) uint16 {
	lo := s.Mem.Read(s.SP)
	hi := s.Mem.Read(s.SP + 1)
	s.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}

func pushRegPair(s *State, rp inst.RegPair) {
	switch rp {
	case inst.RPBC:
		pushWord(s, s.BC())
	case inst.RPDE:
		pushWord(s, s.DE())
	case inst.RPHL:
		pushWord(s, s.HL())
	default: // PSW
		pushWord(s, uint16(s.A)<<8|uint16(s.F.Pack()))
	}
}

func popRegPair(s *State, rp inst.RegPair) {
	v := popWord(s)
	switch rp {
	case inst.RPBC:
		s.SetBC(v)
	case inst.RPDE:
		s.SetDE(v)
	case inst.RPHL:
		s.SetHL(v)
	default: // PSW
		s.A = uint8(v >> 8)
		s.F = UnpackFlags(uint8(v))
	}
}

// --- ALU helpers ---

func execAdd(s *State, v uint8) {
	sum := uint16(s.A) + uint16(v)
	ac := (s.A&0x0F)+(v&0x0F) >= 0x10
	s.A = uint8(sum)
	s.F.C = sum >= 0x100
	s.F.AC = ac
	s.F.setSZP(s.A)
}

func execAdc(s *State, v uint8) {
	var carryIn uint16
	if s.F.C {
		carryIn = 1
	}
	sum := uint16(s.A) + uint16(v) + carryIn
	ac := (s.A&0x0F)+(v&0x0F)+uint8(carryIn) >= 0x10
	s.A = uint8(sum)
	s.F.C = sum >= 0x100
	s.F.AC = ac
	s.F.setSZP(s.A)
}

// execSubtract implements SUB/SBB/SUI/SBI/CMP/CPI's shared arithmetic:
// A - v - borrowIn, computed as the addition A + ^v + (1 - borrowIn) so
// the half-carry (AC) falls out of the same nibble addition that
// produces the result, rather than being derived separately from
// bitwise tricks on the two operands.
func execSubtract(s *State, v uint8, borrowIn bool) {
	var extra uint16 = 1
	if borrowIn {
		extra = 0
	}
	notV := ^v
	sum := uint16(s.A) + uint16(notV) + extra
	ac := (s.A&0x0F)+(notV&0x0F)+uint8(extra) >= 0x10
	s.A = uint8(sum)
	s.F.C = sum < 0x100 // NOT of the addition carry-out: C=1 means borrow
	s.F.AC = ac
	s.F.setSZP(s.A)
}

func execCmp(s *State, v uint8) {
	saved := s.A
	execSubtract(s, v, false)
	s.A = saved
}

func execAna(s *State, v uint8) {
	orig := s.A
	s.A = orig & v
	s.F.C = false
	s.F.AC = (orig|v)&0x08 != 0
	s.F.setSZP(s.A)
}

func execXra(s *State, v uint8) {
	s.A ^= v
	s.F.C = false
	s.F.AC = false
	s.F.setSZP(s.A)
}

func execOra(s *State, v uint8) {
	s.A |= v
	s.F.C = false
	s.F.AC = false
	s.F.setSZP(s.A)
}

func execInr(s *State, v uint8) uint8 {
	result := v + 1
	s.F.AC = v&0x0F == 0x0F
	s.F.setSZP(result)
	return result
}

func execDcr(s *State, v uint8) uint8 {
	result := v - 1
	s.F.AC = v&0x0F != 0
	s.F.setSZP(result)
	return result
}

func execDad(s *State, rp inst.RegPair) {
	sum := uint32(s.HL()) + uint32(s.getPair(rp))
	s.F.C = sum > 0xFFFF
	s.SetHL(uint16(sum))
}

// execDaa implements the 8080's decimal-adjust table: correct the low
// nibble first (tracking whether that carries into the
// high nibble), then decide the high-nibble correction from the
// (possibly carried) high nibble and the incoming carry. C is sticky —
// this never clears a carry already set.
func execDaa(s *State) {
	lowNibble := s.A & 0x0F
	highNibble := s.A >> 4

	var add uint8
	lowCarries := s.F.AC || lowNibble > 9
	if lowCarries {
		add = 0x06
	}
	highAfterLow := highNibble
	if lowCarries && lowNibble+0x06 > 0x0F {
		highAfterLow++
	}
	if highAfterLow > 9 || s.F.C {
		add |= 0x60
		s.F.C = true
	}

	ac := (s.A&0x0F)+(add&0x0F) >= 0x10
	s.A = s.A + add
	s.F.AC = ac
	s.F.setSZP(s.A)
}

func execRlc(s *State) {
	carry := s.A&0x80 != 0
	s.A = (s.A << 1) | (s.A >> 7)
	s.F.C = carry
}

func execRrc(s *State) {
	carry := s.A&0x01 != 0
	s.A = (s.A >> 1) | (s.A << 7)
	s.F.C = carry
}

func execRal(s *State) {
	oldCarry := s.F.C
	newCarry := s.A&0x80 != 0
	s.A = s.A << 1
	if oldCarry {
		s.A |= 0x01
	}
	s.F.C = newCarry
}

func execRar(s *State) {
	oldCarry := s.F.C
	newCarry := s.A&0x01 != 0
	s.A = s.A >> 1
	if oldCarry {
		s.A |= 0x80
	}
	s.F.C = newCarry
}
