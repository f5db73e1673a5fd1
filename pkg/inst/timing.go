package inst

// Cycles returns the T-state cost of executing in, per the Intel 8080
// reference timing table. taken only matters for conditional CALL/RET
// (Jcond is a flat 10 either way); it is ignored for every other Op.
func Cycles(in Instruction, taken bool) int {
	switch in.Op {
	case MOV:
		if in.Dst == RegM || in.Src == RegM {
			return 7
		}
		return 5
	case MVI:
		if in.Dst == RegM {
			return 10
		}
		return 7
	case LXI:
		return 10
	case LDA, STA:
		return 13
	case LHLD, SHLD:
		return 16
	case LDAX, STAX:
		return 7
	case XCHG:
		return 4

	case ADD, ADC, SUB, SBB, ANA, XRA, ORA, CMP:
		if in.Src == RegM {
			return 7
		}
		return 4
	case ADI, ACI, SUI, SBI, ANI, XRI, ORI, CPI:
		return 7

	case INR, DCR:
		if in.Dst == RegM {
			return 10
		}
		return 5
	case INX, DCX:
		return 5
	case DAD:
		return 10
	case DAA:
		return 4

	case RLC, RRC, RAL, RAR, CMA, CMC, STC:
		return 4

	case JMP, JCOND:
		return 10
	case CALL:
		return 17
	case CCOND:
		if taken {
			return 17
		}
		return 11
	case RET:
		return 10
	case RCOND:
		if taken {
			return 11
		}
		return 5
	case RST:
		return 11
	case PCHL:
		return 5

	case PUSH:
		return 11
	case POP:
		return 10
	case XTHL:
		return 18
	case SPHL:
		return 5
	case IN, OUT:
		return 10
	case EI, DI:
		return 4
	case HLT:
		return 7
	default: // NOP and every undocumented alias resolves to its target's cost
		return 4
	}
}
