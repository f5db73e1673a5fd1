// Package inst decodes and describes Intel 8080 instructions: the
// opcode vocabulary, the byte-stream decoder, per-instruction timing,
// and a disassembler sharing that same table so the two never drift.
package inst

// OpCode identifies an 8080 instruction family. Unlike a literal opcode
// byte, operands (which register, which condition, which pair) live in
// the Instruction struct rather than in the OpCode value itself — one
// OpCode covers every register combination of its mnemonic, the way the
// 8080 manual groups them.
type OpCode uint8

const (
	NOP OpCode = iota
	MOV
	MVI
	LXI
	LDA
	STA
	LHLD
	SHLD
	LDAX
	STAX
	XCHG

	ADD
	ADC
	SUB
	SBB
	ADI
	ACI
	SUI
	SBI
	INR
	DCR
	INX
	DCX
	DAD
	DAA

	ANA
	XRA
	ORA
	CMP
	ANI
	XRI
	ORI
	CPI
	RLC
	RRC
	RAL
	RAR
	CMA
	CMC
	STC

	JMP
	JCOND
	CALL
	CCOND
	RET
	RCOND
	RST
	PCHL

	PUSH
	POP
	XTHL
	SPHL
	IN
	OUT
	EI
	DI
	HLT

	opCodeCount
)

// OpCodeCount returns the number of distinct instruction families
// (excluding the documented-instruction aliases, which collapse onto
// one of these at decode time).
func OpCodeCount() OpCode {
	return opCodeCount
}

// Reg is an 8080 3-bit register code: 000=B,001=C,010=D,011=E,100=H,
// 101=L,110=M (memory via HL),111=A.
type Reg uint8

const (
	RegB Reg = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegM
	RegA
)

func (r Reg) String() string {
	return [...]string{"B", "C", "D", "E", "H", "L", "M", "A"}[r]
}

// RegPair is the 2-bit register-pair code (00=BC,01=DE,10=HL,11=SP or
// PSW, depending on the instruction family that uses it).
type RegPair uint8

const (
	RPBC RegPair = iota
	RPDE
	RPHL
	RPSPorPSW
)

// Cond is the 3-bit condition code used by conditional jump/call/return
// and by RST's sibling encoding: 000=NZ,001=Z,010=NC,011=C,100=PO,
// 101=PE,110=P,111=M.
type Cond uint8

const (
	CondNZ Cond = iota
	CondZ
	CondNC
	CondC
	CondPO
	CondPE
	CondP
	CondM
)

func (c Cond) String() string {
	return [...]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}[c]
}
