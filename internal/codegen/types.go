package codegen

import "github.com/datalang/dlc/internal/types"

// irType implements spec §4.E "Type lowering".
func irType(t types.Type) string {
	switch v := t.(type) {
	case types.Prim:
		switch v.Kind {
		case types.Int:
			return "i64"
		case types.Float:
			return "double"
		case types.Bool:
			return "i1"
		case types.String:
			return "i8*"
		case types.Void:
			return "void"
		case types.DataFrame:
			return "i8*" // opaque handle into the runtime's DataFrame model
		case types.Vector, types.Series:
			return "i8*"
		default:
			return "i64"
		}
	case types.Array:
		return "{i64, " + irType(v.Elem) + "*}"
	case types.Custom:
		return "i8*" // record values are opaque runtime-owned handles
	case types.Function:
		return "i8*"
	default:
		return "i64"
	}
}

func isFloatType(t types.Type) bool {
	p, ok := t.(types.Prim)
	return ok && p.Kind == types.Float
}
