package codegen

import (
	"fmt"
	"strings"
)

// escapeIRString rewrites s into LLVM's \HH-escaped string-constant syntax
// plus a trailing NUL terminator, returning the escaped text and the total
// byte length (including the NUL) for the array type.
func escapeIRString(s string) (string, int) {
	var b strings.Builder
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			fmt.Fprintf(&b, "\\%02X", c)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\%02X", c)
		}
		n++
	}
	b.WriteString("\\00")
	n++
	return b.String(), n
}
