package ast

// TypeTag enumerates the static types known to the language.
type TypeTag int

const (
	TypeInteger TypeTag = iota
	TypeFloat
	TypeBool
	TypeVoid
)

func (t TypeTag) String() string {
	switch t {
	case TypeInteger:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Type is a static type tag plus a constness flag. Constness is recorded but
// never enforced.
type Type struct {
	Tag   TypeTag
	Const bool
}

func IntType() Type   { return Type{Tag: TypeInteger} }
func FloatType() Type { return Type{Tag: TypeFloat} }
func BoolType() Type  { return Type{Tag: TypeBool} }
func VoidType() Type  { return Type{Tag: TypeVoid} }

// Equal reports whether both the tag and constness match.
func (t Type) Equal(other Type) bool {
	return t.Tag == other.Tag && t.Const == other.Const
}

// IsNumeric reports whether values of this type take part in arithmetic.
func (t Type) IsNumeric() bool {
	return t.Tag == TypeInteger || t.Tag == TypeFloat
}

func (t Type) String() string {
	if t.Const {
		return "const " + t.Tag.String()
	}
	return t.Tag.String()
}

// SymbolTable maps declared names to their static types.
type SymbolTable map[string]Type

// Lookup returns the recorded type for name.
func (s SymbolTable) Lookup(name string) (Type, bool) {
	t, ok := s[name]
	return t, ok
}

// Declare records or overwrites the type of name.
func (s SymbolTable) Declare(name string, t Type) {
	s[name] = t
}
