package inst

import (
	"strconv"
	"strings"
)

// Disassemble renders in as uppercase assembly text: mnemonic, then
// operands separated by ", ", immediates and addresses formatted with
// a 0x hex sigil. For debug dumps only — never consulted by the
// executor.
func Disassemble(in Instruction) string {
	switch in.Op {
	case NOP:
		return "NOP"
	case MOV:
		return "MOV " + in.Dst.String() + ", " + in.Src.String()
	case MVI:
		return "MVI " + in.Dst.String() + ", " + hex8(in.Imm8)
	case LXI:
		return "LXI " + rpName(in.RP, true) + ", " + hex16(in.Imm16)
	case LDA:
		return "LDA " + hex16(in.Imm16)
	case STA:
		return "STA " + hex16(in.Imm16)
	case LHLD:
		return "LHLD " + hex16(in.Imm16)
	case SHLD:
		return "SHLD " + hex16(in.Imm16)
	case LDAX:
		return "LDAX " + rpName(in.RP, false)
	case STAX:
		return "STAX " + rpName(in.RP, false)
	case XCHG:
		return "XCHG"

	case ADD:
		return "ADD " + in.Src.String()
	case ADC:
		return "ADC " + in.Src.String()
	case SUB:
		return "SUB " + in.Src.String()
	case SBB:
		return "SBB " + in.Src.String()
	case ADI:
		return "ADI " + hex8(in.Imm8)
	case ACI:
		return "ACI " + hex8(in.Imm8)
	case SUI:
		return "SUI " + hex8(in.Imm8)
	case SBI:
		return "SBI " + hex8(in.Imm8)
	case INR:
		return "INR " + in.Dst.String()
	case DCR:
		return "DCR " + in.Dst.String()
	case INX:
		return "INX " + rpName(in.RP, true)
	case DCX:
		return "DCX " + rpName(in.RP, true)
	case DAD:
		return "DAD " + rpName(in.RP, true)
	case DAA:
		return "DAA"

	case ANA:
		return "ANA " + in.Src.String()
	case XRA:
		return "XRA " + in.Src.String()
	case ORA:
		return "ORA " + in.Src.String()
	case CMP:
		return "CMP " + in.Src.String()
	case ANI:
		return "ANI " + hex8(in.Imm8)
	case XRI:
		return "XRI " + hex8(in.Imm8)
	case ORI:
		return "ORI " + hex8(in.Imm8)
	case CPI:
		return "CPI " + hex8(in.Imm8)
	case RLC:
		return "RLC"
	case RRC:
		return "RRC"
	case RAL:
		return "RAL"
	case RAR:
		return "RAR"
	case CMA:
		return "CMA"
	case CMC:
		return "CMC"
	case STC:
		return "STC"

	case JMP:
		return "JMP " + hex16(in.Imm16)
	case JCOND:
		return "J" + in.Cond.String() + " " + hex16(in.Imm16)
	case CALL:
		return "CALL " + hex16(in.Imm16)
	case CCOND:
		return "C" + in.Cond.String() + " " + hex16(in.Imm16)
	case RET:
		return "RET"
	case RCOND:
		return "R" + in.Cond.String()
	case RST:
		return "RST " + hex8(in.RST)
	case PCHL:
		return "PCHL"

	case PUSH:
		return "PUSH " + rpName(in.RP, false)
	case POP:
		return "POP " + rpName(in.RP, false)
	case XTHL:
		return "XTHL"
	case SPHL:
		return "SPHL"
	case IN:
		return "IN " + hex8(in.Imm8)
	case OUT:
		return "OUT " + hex8(in.Imm8)
	case EI:
		return "EI"
	case DI:
		return "DI"
	case HLT:
		return "HLT"
	default:
		return "???"
	}
}

// rpName names a RegPair. stackFamily is true for the LXI/INX/DCX/DAD
// family (rp=3 means SP) and false for the PUSH/POP family (rp=3 means
// PSW).
func rpName(rp RegPair, stackFamily bool) string {
	switch rp {
	case RPBC:
		return "B"
	case RPDE:
		return "D"
	case RPHL:
		return "H"
	default:
		if stackFamily {
			return "SP"
		}
		return "PSW"
	}
}

func hex8(v uint8) string {
	return "0x" + pad(strings.ToUpper(strconv.FormatUint(uint64(v), 16)), 2)
}

func hex16(v uint16) string {
	return "0x" + pad(strings.ToUpper(strconv.FormatUint(uint64(v), 16)), 4)
}

func pad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
