package frontend

// Kind tags a source node.
type Kind int

const (
	KindModule Kind = iota
	KindFunctionDef
	KindClassDef
	KindReturn
	KindAssign
	KindAugAssign
	KindDelete
	KindIf
	KindFor
	KindWhile
	KindTry
	KindExceptHandler
	KindRaise
	KindImport
	KindImportFrom
	KindAlias
	KindBreak
	KindContinue
	KindPass
	KindGlobal
	KindNonlocal
	KindExpr
	KindBinOp
	KindBoolOp
	KindUnaryOp
	KindCompare
	KindCall
	KindKeyword
	KindAttribute
	KindSubscript
	KindIndex
	KindSlice
	KindName
	KindNum
	KindStr
	KindNameConstant
	KindList
	KindTuple
	KindDict
	KindListComp
	KindComprehension
	KindLambda
	KindIfExp
	KindStarred
	KindArguments
	KindArg
)

var kindNames = [...]string{
	KindModule:        "Module",
	KindFunctionDef:   "FunctionDef",
	KindClassDef:      "ClassDef",
	KindReturn:        "Return",
	KindAssign:        "Assign",
	KindAugAssign:     "AugAssign",
	KindDelete:        "Delete",
	KindIf:            "If",
	KindFor:           "For",
	KindWhile:         "While",
	KindTry:           "Try",
	KindExceptHandler: "ExceptHandler",
	KindRaise:         "Raise",
	KindImport:        "Import",
	KindImportFrom:    "ImportFrom",
	KindAlias:         "Alias",
	KindBreak:         "Break",
	KindContinue:      "Continue",
	KindPass:          "Pass",
	KindGlobal:        "Global",
	KindNonlocal:      "Nonlocal",
	KindExpr:          "Expr",
	KindBinOp:         "BinOp",
	KindBoolOp:        "BoolOp",
	KindUnaryOp:       "UnaryOp",
	KindCompare:       "Compare",
	KindCall:          "Call",
	KindKeyword:       "Keyword",
	KindAttribute:     "Attribute",
	KindSubscript:     "Subscript",
	KindIndex:         "Index",
	KindSlice:         "Slice",
	KindName:          "Name",
	KindNum:           "Num",
	KindStr:           "Str",
	KindNameConstant:  "NameConstant",
	KindList:          "List",
	KindTuple:         "Tuple",
	KindDict:          "Dict",
	KindListComp:      "ListComp",
	KindComprehension: "Comprehension",
	KindLambda:        "Lambda",
	KindIfExp:         "IfExp",
	KindStarred:       "Starred",
	KindArguments:     "Arguments",
	KindArg:           "Arg",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Operator is a binary arithmetic or bitwise operator.
type Operator int

const (
	Add Operator = iota
	Sub
	Mult
	Div
	FloorDiv
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	MatMult
)

var operatorTokens = [...]string{
	Add:      "+",
	Sub:      "-",
	Mult:     "*",
	Div:      "/",
	FloorDiv: "//",
	Mod:      "%",
	Pow:      "**",
	LShift:   "<<",
	RShift:   ">>",
	BitOr:    "|",
	BitXor:   "^",
	BitAnd:   "&",
	MatMult:  "@",
}

// String returns the operator as written in source.
func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorTokens) {
		return operatorTokens[op]
	}
	return "?"
}

type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

func (op BoolOperator) String() string {
	if op == And {
		return "and"
	}
	return "or"
}

type UnaryOperator int

const (
	Not UnaryOperator = iota
	USub
	UAdd
	Invert
)

func (op UnaryOperator) String() string {
	switch op {
	case Not:
		return "not"
	case USub:
		return "-"
	case UAdd:
		return "+"
	case Invert:
		return "~"
	}
	return "?"
}

// CmpOperator is a comparison operator.
type CmpOperator int

const (
	Eq CmpOperator = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpTokens = [...]string{
	Eq:    "==",
	NotEq: "!=",
	Lt:    "<",
	LtE:   "<=",
	Gt:    ">",
	GtE:   ">=",
	Is:    "is",
	IsNot: "is not",
	In:    "in",
	NotIn: "not in",
}

func (op CmpOperator) String() string {
	if op >= 0 && int(op) < len(cmpTokens) {
		return cmpTokens[op]
	}
	return "?"
}
