package ast

// Operator identifies the operation of a unary or binary expression.
// Minus doubles as negation when carried by a UnaryExpr.
type Operator int

const (
	LogicOr Operator = iota
	LogicAnd
	Eq
	Ne
	Lt
	Lte
	Gt
	Gte
	Plus
	Minus
	Times
	Div
	Mod
	Not
	PreInc
	PreDec
	PostInc
	PostDec
)

func (op Operator) String() string {
	switch op {
	case LogicOr:
		return "||"
	case LogicAnd:
		return "&&"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Times:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Not:
		return "!"
	case PreInc, PostInc:
		return "++"
	case PreDec, PostDec:
		return "--"
	default:
		return "<invalid operator>"
	}
}

// Builtin identifies a primitive procedure known to the parser
type Builtin int

const (
	Print Builtin = iota
)

func (b Builtin) String() string {
	switch b {
	case Print:
		return "print"
	default:
		return "<invalid builtin>"
	}
}

// BuiltinByName maps source identifiers to builtins
var BuiltinByName = map[string]Builtin{
	"print": Print,
}
