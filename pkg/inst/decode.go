package inst

// Decode reads the instruction at pc and returns it along with its
// encoded length in bytes (1, 2, or 3). Decode is a pure function: it
// never mutates mem and never advances pc itself — the caller (the
// executor/stepper) owns PC advancement.
//
// The dense 8080 opcode map groups almost entirely by two- and
// three-bit fields, per the Intel 8080 Programmer's Manual: ddd/sss
// select an 8-bit register, rp selects a register pair, ccc selects a
// branch condition or RST target. Decode matches on those fields
// directly rather than building a 256-entry literal table, since the
// 8080 encoding is regular enough that the bit-pattern match is both
// shorter and self-documenting.
func Decode(mem ByteReader, pc uint16) (Instruction, int) {
	raw := mem.ReadByte(pc)
	top2 := raw >> 6

	switch top2 {
	case 0:
		return decode00(mem, pc, raw)
	case 1:
		return decodeMOV(raw)
	case 2:
		return decodeALU(raw)
	default:
		return decode11(mem, pc, raw)
	}
}

// decode00 handles the 0x00-0x3F block: NOP/alias, LXI/DAD, STAX/LDAX/
// SHLD/LHLD/STA/LDA, INX/DCX, INR/DCR/MVI, and the single-byte rotate/
// flag group.
func decode00(mem ByteReader, pc uint16, raw uint8) (Instruction, int) {
	low3 := raw & 0x07
	bit3 := (raw >> 3) & 1
	rp := RegPair((raw >> 4) & 3)
	ddd := Reg((raw >> 3) & 7)

	switch low3 {
	case 0:
		// 0x00,0x08,0x10,0x18,0x20,0x28,0x30,0x38 — all alias to NOP.
		return Instruction{Op: NOP, Raw: raw}, 1
	case 1:
		if bit3 == 0 {
			imm := readImm16(mem, pc)
			return Instruction{Op: LXI, RP: rp, Imm16: imm, Raw: raw}, 3
		}
		return Instruction{Op: DAD, RP: rp, Raw: raw}, 1
	case 2:
		if bit3 == 0 {
			switch rp {
			case RPBC:
				return Instruction{Op: STAX, RP: RPBC, Raw: raw}, 1
			case RPDE:
				return Instruction{Op: STAX, RP: RPDE, Raw: raw}, 1
			case RPHL:
				imm := readImm16(mem, pc)
				return Instruction{Op: SHLD, Imm16: imm, Raw: raw}, 3
			default:
				imm := readImm16(mem, pc)
				return Instruction{Op: STA, Imm16: imm, Raw: raw}, 3
			}
		}
		switch rp {
		case RPBC:
			return Instruction{Op: LDAX, RP: RPBC, Raw: raw}, 1
		case RPDE:
			return Instruction{Op: LDAX, RP: RPDE, Raw: raw}, 1
		case RPHL:
			imm := readImm16(mem, pc)
			return Instruction{Op: LHLD, Imm16: imm, Raw: raw}, 3
		default:
			imm := readImm16(mem, pc)
			return Instruction{Op: LDA, Imm16: imm, Raw: raw}, 3
		}
	case 3:
		if bit3 == 0 {
			return Instruction{Op: INX, RP: rp, Raw: raw}, 1
		}
		return Instruction{Op: DCX, RP: rp, Raw: raw}, 1
	case 4:
		return Instruction{Op: INR, Dst: ddd, Raw: raw}, 1
	case 5:
		return Instruction{Op: DCR, Dst: ddd, Raw: raw}, 1
	case 6:
		imm := mem.ReadByte(pc + 1)
		return Instruction{Op: MVI, Dst: ddd, Imm8: imm, Raw: raw}, 2
	default: // 7
		op := [...]OpCode{RLC, RRC, RAL, RAR, DAA, CMA, STC, CMC}[ddd]
		return Instruction{Op: op, Raw: raw}, 1
	}
}

// decodeMOV handles the 0x40-0x7F block: MOV ddd,sss, with 0x76
// aliased to HLT per the documented silicon behavior.
func decodeMOV(raw uint8) (Instruction, int) {
	if raw == 0x76 {
		return Instruction{Op: HLT, Raw: raw}, 1
	}
	dst := Reg((raw >> 3) & 7)
	src := Reg(raw & 7)
	return Instruction{Op: MOV, Dst: dst, Src: src, Raw: raw}, 1
}

// decodeALU handles the 0x80-0xBF block: ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP
// r (and M), selected by bits 5-3.
func decodeALU(raw uint8) (Instruction, int) {
	op := [...]OpCode{ADD, ADC, SUB, SBB, ANA, XRA, ORA, CMP}[(raw>>3)&7]
	src := Reg(raw & 7)
	return Instruction{Op: op, Src: src, Raw: raw}, 1
}

// decode11 handles the 0xC0-0xFF block: conditional return/jump/call,
// RET/PCHL/SPHL, PUSH/POP, JMP/CALL (including aliases), IN/OUT, XTHL/
// XCHG, EI/DI, immediate ALU ops, and RST.
func decode11(mem ByteReader, pc uint16, raw uint8) (Instruction, int) {
	low3 := raw & 0x07
	bit3 := (raw >> 3) & 1
	rp := RegPair((raw >> 4) & 3)
	ccc := Cond((raw >> 3) & 7)

	switch low3 {
	case 0:
		return Instruction{Op: RCOND, Cond: ccc, Raw: raw}, 1
	case 1:
		if bit3 == 0 {
			return Instruction{Op: POP, RP: rp, Raw: raw}, 1
		}
		switch rp {
		case RPBC:
			return Instruction{Op: RET, Raw: raw}, 1
		case RPDE:
			// 0xD9 — undocumented alias for RET.
			return Instruction{Op: RET, Raw: raw}, 1
		case RPHL:
			return Instruction{Op: PCHL, Raw: raw}, 1
		default:
			return Instruction{Op: SPHL, Raw: raw}, 1
		}
	case 2:
		imm := readImm16(mem, pc)
		return Instruction{Op: JCOND, Cond: ccc, Imm16: imm, Raw: raw}, 3
	case 3:
		if bit3 == 0 {
			switch rp {
			case RPBC:
				imm := readImm16(mem, pc)
				return Instruction{Op: JMP, Imm16: imm, Raw: raw}, 3
			case RPDE:
				imm := mem.ReadByte(pc + 1)
				return Instruction{Op: OUT, Imm8: imm, Raw: raw}, 2
			case RPHL:
				return Instruction{Op: XTHL, Raw: raw}, 1
			default:
				return Instruction{Op: DI, Raw: raw}, 1
			}
		}
		switch rp {
		case RPBC:
			// 0xCB — undocumented alias for JMP.
			imm := readImm16(mem, pc)
			return Instruction{Op: JMP, Imm16: imm, Raw: raw}, 3
		case RPDE:
			imm := mem.ReadByte(pc + 1)
			return Instruction{Op: IN, Imm8: imm, Raw: raw}, 2
		case RPHL:
			return Instruction{Op: XCHG, Raw: raw}, 1
		default:
			return Instruction{Op: EI, Raw: raw}, 1
		}
	case 4:
		imm := readImm16(mem, pc)
		return Instruction{Op: CCOND, Cond: ccc, Imm16: imm, Raw: raw}, 3
	case 5:
		if bit3 == 0 {
			return Instruction{Op: PUSH, RP: rp, Raw: raw}, 1
		}
		// 0xCD, and the undocumented aliases 0xDD/0xED/0xFD, all CALL.
		imm := readImm16(mem, pc)
		return Instruction{Op: CALL, Imm16: imm, Raw: raw}, 3
	case 6:
		op := [...]OpCode{ADI, ACI, SUI, SBI, ANI, XRI, ORI, CPI}[ccc]
		imm := mem.ReadByte(pc + 1)
		return Instruction{Op: op, Imm8: imm, Raw: raw}, 2
	default: // 7
		return Instruction{Op: RST, RST: uint8(ccc), Raw: raw}, 1
	}
}

func readImm16(mem ByteReader, pc uint16) uint16 {
	lo := mem.ReadByte(pc + 1)
	hi := mem.ReadByte(pc + 2)
	return uint16(hi)<<8 | uint16(lo)
}
