package inst

// ByteReader is the one method the decoder needs from memory — kept
// separate from cpu.State so pkg/inst has no dependency on pkg/cpu.
type ByteReader interface {
	ReadByte(addr uint16) uint8
}

// Instruction is a decoded 8080 instruction: one OpCode plus whichever
// operand fields that family actually uses. Zero-value fields are
// simply unused by a given Op — e.g. MOV sets Dst/Src and ignores
// everything else.
type Instruction struct {
	Op    OpCode
	Dst   Reg
	Src   Reg
	RP    RegPair
	Cond  Cond
	RST   uint8 // RST n, n in 0..7
	Imm8  uint8
	Imm16 uint16

	// Raw is the undecoded opcode byte as Decode read it. Disassemble
	// does not use it, so an aliased opcode renders as its target.
	Raw uint8
}

// HasImm8 reports whether this instruction carries an 8-bit immediate
// operand (used by Length).
func HasImm8(op OpCode) bool {
	switch op {
	case MVI, ADI, ACI, SUI, SBI, ANI, XRI, ORI, CPI, IN, OUT:
		return true
	}
	return false
}

// HasImm16 reports whether this instruction carries a 16-bit immediate
// or address operand.
func HasImm16(op OpCode) bool {
	switch op {
	case LXI, LDA, STA, LHLD, SHLD, JMP, JCOND, CALL, CCOND:
		return true
	}
	return false
}

// Length returns the instruction's encoded length in bytes (1, 2, or 3).
func Length(op OpCode) int {
	switch {
	case HasImm16(op):
		return 3
	case HasImm8(op):
		return 2
	default:
		return 1
	}
}
