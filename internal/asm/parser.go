// Package asm is the assembly-text front end: it turns NASM-style source
// lines into cpu.Instruction values. This is the external collaborator the
// execution core's specification explicitly excludes; it is kept thin and
// forwards everything it cannot express to the core's own error kinds.
package asm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/oisee/ia32run/pkg/cpu"
	"github.com/oisee/ia32run/pkg/cpu/errs"
)

var mnemonics = map[string]cpu.Mnemonic{
	"mov": cpu.MOV,
	"lea": cpu.LEA,
	"push": cpu.PUSH,
	"pop":  cpu.POP,
	"add":  cpu.ADD,
	"adc":  cpu.ADC,
	"sub":  cpu.SUB,
	"sbb":  cpu.SBB,
	"and":  cpu.AND,
	"or":   cpu.OR,
	"cmp":  cpu.CMP,
	"daa":  cpu.DAA,
}

var reg8 = map[string]cpu.Register8{
	"al": cpu.AL, "cl": cpu.CL, "dl": cpu.DL, "bl": cpu.BL,
	"ah": cpu.AH, "ch": cpu.CH, "dh": cpu.DH, "bh": cpu.BH,
}

var reg16 = map[string]cpu.Register16{
	"ax": cpu.AX, "cx": cpu.CX, "dx": cpu.DX, "bx": cpu.BX,
	"sp": cpu.SP, "bp": cpu.BP, "si": cpu.SI, "di": cpu.DI,
}

var reg32 = map[string]cpu.Register32{
	"eax": cpu.EAX, "ecx": cpu.ECX, "edx": cpu.EDX, "ebx": cpu.EBX,
	"esp": cpu.ESP, "ebp": cpu.EBP, "esi": cpu.ESI, "edi": cpu.EDI,
}

var sizeDirectives = map[string]cpu.Size{
	"byte":  cpu.SizeByte,
	"word":  cpu.SizeWord,
	"dword": cpu.SizeDword,
	"qword": cpu.SizeDword, // no 64-bit operand in this subset; QWORD PTR is accepted syntactically only
}

var commentRE = regexp.MustCompile(`;.*$`)

// Parse turns a full assembly source file into an ordered instruction list.
// Blank lines, comment-only lines, and trailing line comments are skipped.
func Parse(source string) ([]cpu.Instruction, error) {
	var out []cpu.Instruction
	for lineNo, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(commentRE.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}
		ins, err := parseLine(line)
		if err != nil {
			return nil, errs.ParseFailure(fmt.Sprintf("line %d: %v", lineNo+1, err))
		}
		out = append(out, ins)
	}
	return out, nil
}

func parseLine(line string) (cpu.Instruction, error) {
	fields := strings.SplitN(line, " ", 2)
	mnemonicText := strings.ToLower(strings.TrimSpace(fields[0]))

	op, ok := mnemonics[mnemonicText]
	if !ok {
		return cpu.Instruction{}, fmt.Errorf("unknown mnemonic %q", mnemonicText)
	}

	var operandText string
	if len(fields) == 2 {
		operandText = fields[1]
	}

	operands, err := splitOperands(operandText)
	if err != nil {
		return cpu.Instruction{}, err
	}

	parsed := make([]cpu.Operand, 0, len(operands))
	for _, o := range operands {
		p, err := parseOperand(o)
		if err != nil {
			return cpu.Instruction{}, err
		}
		parsed = append(parsed, p)
	}
	return cpu.Instruction{Op: op, Operands: parsed}, nil
}

// splitOperands splits on top-level commas only, so a scaled memory operand
// like "[ebx+ecx*4]" is never itself split.
func splitOperands(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var parts []string
	depth := 0
	start := 0
	for i, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ']'")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '['")
	}
	parts = append(parts, strings.TrimSpace(text[start:]))
	return parts, nil
}

func parseOperand(text string) (cpu.Operand, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	memSize := cpu.Size(0)
	for prefix, size := range sizeDirectives {
		if strings.HasPrefix(lower, prefix+" ptr ") {
			memSize = size
			lower = strings.TrimSpace(strings.TrimPrefix(lower, prefix+" ptr "))
			break
		}
	}

	if strings.HasPrefix(lower, "[") {
		if !strings.HasSuffix(lower, "]") {
			return cpu.Operand{}, fmt.Errorf("unterminated memory operand %q", text)
		}
		ea, err := parseEffectiveAddress(lower[1 : len(lower)-1])
		if err != nil {
			return cpu.Operand{}, err
		}
		if memSize == 0 {
			return cpu.Operand{}, fmt.Errorf("memory operand %q needs a BYTE/WORD/DWORD PTR size directive", text)
		}
		return cpu.MemOperand(ea, memSize), nil
	}

	if r, ok := reg8[lower]; ok {
		return cpu.Reg8Operand(r), nil
	}
	if r, ok := reg16[lower]; ok {
		return cpu.Reg16Operand(r), nil
	}
	if r, ok := reg32[lower]; ok {
		return cpu.Reg32Operand(r), nil
	}

	imm, err := parseImmediate(lower)
	if err != nil {
		return cpu.Operand{}, fmt.Errorf("unrecognized operand %q", text)
	}
	return cpu.Imm32(imm), nil
}

func parseImmediate(text string) (uint32, error) {
	neg := false
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}
	var v uint64
	var err error
	if strings.HasPrefix(text, "0x") {
		v, err = strconv.ParseUint(text[2:], 16, 32)
	} else {
		v, err = strconv.ParseUint(text, 10, 32)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		return uint32(-int64(v)), nil
	}
	return uint32(v), nil
}

// parseEffectiveAddress parses the inside of "[...]": an optional base
// register, an optional "+index*scale" term, and an optional "+disp" or
// "-disp" term, in any order the term separators allow.
func parseEffectiveAddress(inner string) (cpu.EffectiveAddress, error) {
	var ea cpu.EffectiveAddress
	for _, t := range splitTerms(inner) {
		text := strings.TrimSpace(t.text)
		if text == "" {
			return ea, fmt.Errorf("empty term in effective address")
		}

		if reg, scale, isIndex := parseRegisterScale(text); reg != nil {
			if t.negative {
				return ea, fmt.Errorf("subtraction is only permitted on immediate terms, not %q", text)
			}
			if isIndex {
				if ea.HasIndex {
					return ea, fmt.Errorf("at most one scaled index register is allowed")
				}
				ea.Index = *reg
				ea.HasIndex = true
				ea.Scale = scale
			} else {
				if ea.HasBase && ea.HasIndex {
					return ea, fmt.Errorf("at most two distinct registers are allowed")
				}
				if ea.HasBase {
					// second bare register becomes the (unscaled) index
					ea.Index = *reg
					ea.HasIndex = true
					ea.Scale = cpu.Scale1
				} else {
					ea.Base = *reg
					ea.HasBase = true
				}
			}
			continue
		}

		imm, err := parseImmediate(text)
		if err != nil {
			return ea, fmt.Errorf("invalid effective-address term %q", text)
		}
		if t.negative {
			ea.Disp -= int32(imm)
		} else {
			ea.Disp += int32(imm)
		}
	}
	return ea, nil
}

type signedTerm struct {
	text     string
	negative bool
}

// splitTerms splits "ebx+ecx*4-8" into signed terms at top-level +/-.
func splitTerms(s string) []signedTerm {
	var terms []signedTerm
	start := 0
	neg := false
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '+' || s[i] == '-' {
			if i > start {
				terms = append(terms, signedTerm{text: s[start:i], negative: neg})
			}
			if i < len(s) {
				neg = s[i] == '-'
			}
			start = i + 1
		}
	}
	return terms
}

func parseRegisterScale(term string) (*cpu.Register32, cpu.Scale, bool) {
	if idx := strings.Index(term, "*"); idx >= 0 {
		regText := strings.TrimSpace(term[:idx])
		scaleText := strings.TrimSpace(term[idx+1:])
		r, ok := reg32[regText]
		if !ok {
			return nil, 0, false
		}
		n, err := strconv.Atoi(scaleText)
		if err != nil {
			return nil, 0, false
		}
		reg := r
		return &reg, cpu.Scale(n), true
	}
	if r, ok := reg32[term]; ok {
		reg := r
		return &reg, cpu.Scale1, false
	}
	return nil, 0, false
}
