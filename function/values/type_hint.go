package values

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeKind discriminates the shapes a TypeHint can take.
type TypeKind int

const (
	// KindType wraps a concrete reflect.Type.
	KindType TypeKind = iota + 1
	// KindLiteral is a closed set of concrete values.
	KindLiteral
	// KindUnion is a union of hints; Optional is a union with Null.
	KindUnion
	// KindNull is the null arm of an optional.
	KindNull
	// KindGeneric is an explicit parameterization of an origin type.
	KindGeneric
)

func (k TypeKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindLiteral:
		return "literal"
	case KindUnion:
		return "union"
	case KindNull:
		return "null"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// TypeHint is the declared type of a parameter or return value.
// Hints are immutable; constructors copy their inputs.
type TypeHint struct {
	kind     TypeKind
	rtype    reflect.Type
	literals []any
	origin   *TypeHint
	args     []TypeHint
}

// TypeOf returns a hint for the static type T.
func TypeOf[T any]() TypeHint {
	return FromReflect(reflect.TypeFor[T]())
}

// FromReflect wraps a reflect.Type. It panics on a nil type.
func FromReflect(t reflect.Type) TypeHint {
	if t == nil {
		panic("values: FromReflect called with nil type")
	}
	return TypeHint{kind: KindType, rtype: t}
}

// Literal returns a hint for a closed set of literal values, in order.
func Literal(vals ...any) TypeHint {
	return TypeHint{kind: KindLiteral, literals: append([]any(nil), vals...)}
}

// Null returns the null arm used by optional hints.
func Null() TypeHint {
	return TypeHint{kind: KindNull}
}

// Union returns a hint accepting any of the given hints.
func Union(hints ...TypeHint) TypeHint {
	return TypeHint{kind: KindUnion, args: append([]TypeHint(nil), hints...)}
}

// Optional returns Union(h, Null()).
func Optional(h TypeHint) TypeHint {
	return Union(h, Null())
}

// Generic returns a hint for origin parameterized by args. Use it for
// instantiated generic types, since reflection does not expose their type
// arguments.
func Generic(origin TypeHint, args ...TypeHint) TypeHint {
	o := origin
	return TypeHint{kind: KindGeneric, origin: &o, args: append([]TypeHint(nil), args...)}
}

// Kind returns the hint's kind.
func (h TypeHint) Kind() TypeKind {
	return h.kind
}

// IsZero reports whether h was never initialized.
func (h TypeHint) IsZero() bool {
	return h.kind == 0
}

// Type returns the wrapped reflect.Type for KindType hints, nil otherwise.
func (h TypeHint) Type() reflect.Type {
	return h.rtype
}

// Literals returns a copy of the literal values.
func (h TypeHint) Literals() []any {
	return append([]any(nil), h.literals...)
}

// Args returns a copy of the union members or generic arguments.
func (h TypeHint) Args() []TypeHint {
	return append([]TypeHint(nil), h.args...)
}

// NonNullArgs returns the arguments with null arms dropped.
func (h TypeHint) NonNullArgs() []TypeHint {
	out := make([]TypeHint, 0, len(h.args))
	for _, a := range h.args {
		if a.kind != KindNull {
			out = append(out, a)
		}
	}
	return out
}

// Origin returns the origin of a generic hint.
func (h TypeHint) Origin() (TypeHint, bool) {
	if h.origin == nil {
		return TypeHint{}, false
	}
	return *h.origin, true
}

// OriginType resolves the reflect.Type a hint stands for: the wrapped type,
// or the origin's type for generic hints. Literal, union and null hints have
// no class and return nil.
func (h TypeHint) OriginType() reflect.Type {
	switch h.kind {
	case KindType:
		return h.rtype
	case KindGeneric:
		if h.origin != nil {
			return h.origin.OriginType()
		}
	}
	return nil
}

// String renders the canonical name of the hint.
func (h TypeHint) String() string {
	switch h.kind {
	case KindType:
		return h.rtype.String()
	case KindLiteral:
		parts := make([]string, len(h.literals))
		for i, v := range h.literals {
			parts[i] = formatLiteral(v)
		}
		return "Literal[" + strings.Join(parts, ", ") + "]"
	case KindNull:
		return "nil"
	case KindUnion:
		if len(h.args) == 2 && h.args[1].kind == KindNull {
			return "Optional[" + h.args[0].String() + "]"
		}
		return "Union[" + joinHints(h.args) + "]"
	case KindGeneric:
		name := "?"
		if h.origin != nil {
			name = stripTypeArgs(h.origin.String())
		}
		return name + "[" + joinHints(h.args) + "]"
	default:
		return "<invalid>"
	}
}

// Equal reports whether two hints describe the same type.
func (h TypeHint) Equal(other TypeHint) bool {
	if h.kind != other.kind || h.rtype != other.rtype {
		return false
	}
	if !reflect.DeepEqual(h.literals, other.literals) {
		return false
	}
	if (h.origin == nil) != (other.origin == nil) {
		return false
	}
	if h.origin != nil && !h.origin.Equal(*other.origin) {
		return false
	}
	if len(h.args) != len(other.args) {
		return false
	}
	for i := range h.args {
		if !h.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return true
}

func joinHints(hints []TypeHint) string {
	parts := make([]string, len(hints))
	for i, a := range hints {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func formatLiteral(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// stripTypeArgs turns "pkg.Page[pkg.Item]" into "pkg.Page".
func stripTypeArgs(name string) string {
	if i := strings.IndexByte(name, '['); i > 0 {
		return name[:i]
	}
	return name
}

// BaseTypeName returns the declared name of t without generic type
// arguments, e.g. "Page" for Page[Item].
func BaseTypeName(t reflect.Type) string {
	return stripTypeArgs(t.Name())
}
