package script

// Program is a parsed script: a list of statements.
type Program struct {
	Statements []*Statement
}

// Statement is one gsap call or one timeline chain.
type Statement struct {
	Pos      Pos
	Timeline bool
	Calls    []*Call
}

// Call is a tween call: method(selector, object[, object]).
type Call struct {
	Pos         Pos
	Method      string
	Selector    string
	SelectorPos Pos
	Args        []*Object
}

// Object is a { key: value, ... } literal.
type Object struct {
	Pos    Pos
	Fields []*Field
}

// Field is a single key/value entry of an object.
type Field struct {
	Pos   Pos
	Key   string
	Value Value
}

// ValueKind discriminates Value.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	}
	return "value"
}

// Value is a literal value.
type Value struct {
	Pos  Pos
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
	Obj  *Object
}
