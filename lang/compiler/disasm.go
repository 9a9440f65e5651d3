package compiler

import (
	"fmt"
	"io"

	"github.com/nerinelang/nerine/lang/types"
)

// Fdisasm writes a textual listing of the chunk: a header with the name,
// parameter and local counts, the constant pool, then one instruction per
// line with resolved jump targets. The listing is consumed by the
// --disasm phase dump and the compiler golden tests.
func Fdisasm(w io.Writer, c *Chunk) error {
	if _, err := fmt.Fprintf(w, "== %s (params=%d, locals=%d)\n", c.Name, c.NumParams, c.LocalCount); err != nil {
		return err
	}
	for i, v := range c.Constants {
		if _, err := fmt.Fprintf(w, "  const %d: %s\n", i, constString(v)); err != nil {
			return err
		}
	}
	for i, ins := range c.Instrs {
		var note string
		if ins.Op.IsJump() {
			note = fmt.Sprintf(" ; -> %d", i+1+int(ins.Arg))
		}
		if _, err := fmt.Fprintf(w, "  %4d: %s%s\n", i, ins, note); err != nil {
			return err
		}
	}
	return nil
}

// constString renders a constant pool entry; unlike the display
// formatting, function values show their id.
func constString(v types.Value) string {
	if fn, ok := v.(types.Function); ok {
		return fmt.Sprintf("function %d", uint32(fn))
	}
	return v.String()
}
