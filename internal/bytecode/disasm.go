package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders chunk as a human-readable instruction listing, one
// line per instruction, grounded on the teacher's disassembly text layout.
func Disassemble(chunk *Chunk) string {
	var b strings.Builder
	for ip, instr := range chunk.Instructions {
		fmt.Fprintf(&b, "%04d %-14s", ip, instr.Op)
		switch instr.Op {
		case OpConstant:
			fmt.Fprintf(&b, " %d (%s)", instr.Operand, chunk.Constants[instr.Operand].String())
		case OpGetGlobal, OpSetGlobal:
			fmt.Fprintf(&b, " %d (%s)", instr.Operand, chunk.Globals[instr.Operand])
		case OpJump, OpJumpIfFalse:
			fmt.Fprintf(&b, " -> %d", instr.Operand)
		case OpCall:
			fmt.Fprintf(&b, " builtin=%d argc=%d", instr.Operand, instr.ArgC)
		}
		b.WriteString("\n")
	}
	return b.String()
}
