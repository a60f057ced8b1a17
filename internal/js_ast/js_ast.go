package js_ast

// Nodes in this package are mutable and know their parent. Passes find their context by walking up parent links and
// rewrite the tree in place by replacing children. Every node owns its
// children; a node can only be attached to one parent at a time.

type L int

// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Operators/Operator_Precedence
const (
	LLowest L = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

type OpCode uint8

func (op OpCode) IsPrefix() bool {
	return op < UnOpPostDec
}

func (op OpCode) IsUpdate() bool {
	return op >= UnOpPreDec && op <= UnOpPostInc
}

func (op OpCode) IsLeftAssociative() bool {
	return op >= BinOpAdd && op < BinOpComma && op != BinOpPow
}

func (op OpCode) IsRightAssociative() bool {
	return op >= BinOpAssign || op == BinOpPow
}

func (op OpCode) IsAssign() bool {
	return op >= BinOpAssign
}

// Returns the binary operator that a compound assignment applies, or false if
// the operator can't be split into a separate read and write. The logical
// assignment operators short-circuit and are deliberately not included.
func (op OpCode) CompoundAssignOperator() (OpCode, bool) {
	switch op {
	case BinOpAddAssign:
		return BinOpAdd, true
	case BinOpSubAssign:
		return BinOpSub, true
	case BinOpMulAssign:
		return BinOpMul, true
	case BinOpDivAssign:
		return BinOpDiv, true
	case BinOpRemAssign:
		return BinOpRem, true
	case BinOpPowAssign:
		return BinOpPow, true
	case BinOpShlAssign:
		return BinOpShl, true
	case BinOpShrAssign:
		return BinOpShr, true
	case BinOpUShrAssign:
		return BinOpUShr, true
	case BinOpBitwiseOrAssign:
		return BinOpBitwiseOr, true
	case BinOpBitwiseAndAssign:
		return BinOpBitwiseAnd, true
	case BinOpBitwiseXorAssign:
		return BinOpBitwiseXor, true
	}
	return 0, false
}

// If you add a new operator, remember to add it to "OpTable" too
const (
	// Prefix
	UnOpPos OpCode = iota
	UnOpNeg
	UnOpCpl
	UnOpNot
	UnOpVoid
	UnOpTypeof
	UnOpDelete

	// Prefix update
	UnOpPreDec
	UnOpPreInc

	// Postfix update
	UnOpPostDec
	UnOpPostInc

	// Left-associative
	BinOpAdd
	BinOpSub
	BinOpMul
	BinOpDiv
	BinOpRem
	BinOpPow
	BinOpLt
	BinOpLe
	BinOpGt
	BinOpGe
	BinOpIn
	BinOpInstanceof
	BinOpShl
	BinOpShr
	BinOpUShr
	BinOpLooseEq
	BinOpLooseNe
	BinOpStrictEq
	BinOpStrictNe
	BinOpNullishCoalescing
	BinOpLogicalOr
	BinOpLogicalAnd
	BinOpBitwiseOr
	BinOpBitwiseAnd
	BinOpBitwiseXor

	// Non-associative
	BinOpComma

	// Right-associative
	BinOpAssign
	BinOpAddAssign
	BinOpSubAssign
	BinOpMulAssign
	BinOpDivAssign
	BinOpRemAssign
	BinOpPowAssign
	BinOpShlAssign
	BinOpShrAssign
	BinOpUShrAssign
	BinOpBitwiseOrAssign
	BinOpBitwiseAndAssign
	BinOpBitwiseXorAssign
	BinOpNullishCoalescingAssign
	BinOpLogicalOrAssign
	BinOpLogicalAndAssign
)

type opTableEntry struct {
	Text      string
	Level     L
	IsKeyword bool
}

var OpTable = []opTableEntry{
	// Prefix
	{"+", LPrefix, false},
	{"-", LPrefix, false},
	{"~", LPrefix, false},
	{"!", LPrefix, false},
	{"void", LPrefix, true},
	{"typeof", LPrefix, true},
	{"delete", LPrefix, true},

	// Prefix update
	{"--", LPrefix, false},
	{"++", LPrefix, false},

	// Postfix update
	{"--", LPostfix, false},
	{"++", LPostfix, false},

	// Left-associative
	{"+", LAdd, false},
	{"-", LAdd, false},
	{"*", LMultiply, false},
	{"/", LMultiply, false},
	{"%", LMultiply, false},
	{"**", LExponentiation, false}, // Right-associative
	{"<", LCompare, false},
	{"<=", LCompare, false},
	{">", LCompare, false},
	{">=", LCompare, false},
	{"in", LCompare, true},
	{"instanceof", LCompare, true},
	{"<<", LShift, false},
	{">>", LShift, false},
	{">>>", LShift, false},
	{"==", LEquals, false},
	{"!=", LEquals, false},
	{"===", LEquals, false},
	{"!==", LEquals, false},
	{"??", LNullishCoalescing, false},
	{"||", LLogicalOr, false},
	{"&&", LLogicalAnd, false},
	{"|", LBitwiseOr, false},
	{"&", LBitwiseAnd, false},
	{"^", LBitwiseXor, false},

	// Non-associative
	{",", LComma, false},

	// Right-associative
	{"=", LAssign, false},
	{"+=", LAssign, false},
	{"-=", LAssign, false},
	{"*=", LAssign, false},
	{"/=", LAssign, false},
	{"%=", LAssign, false},
	{"**=", LAssign, false},
	{"<<=", LAssign, false},
	{">>=", LAssign, false},
	{">>>=", LAssign, false},
	{"|=", LAssign, false},
	{"&=", LAssign, false},
	{"^=", LAssign, false},
	{"??=", LAssign, false},
	{"||=", LAssign, false},
	{"&&=", LAssign, false},
}

type Kind uint8

const (
	KEmpty Kind = iota

	// Containers
	KRoot   // [KScript...], one for externs and one for the main program
	KScript // [statements...]

	// Statements
	KBlock    // [statements...]
	KExprStmt // [expr]
	KReturn   // [] or [expr]
	KThrow    // [expr]
	KIf       // [test, yes] or [test, yes, no]
	KWhile    // [test, body]
	KVar      // [KName...], each name has an optional initializer child
	KLet
	KConst

	// Functions and classes
	KFunction     // [KName or KEmpty, KParamList, KBlock or expr (arrows only)]
	KParamList    // [KName...]
	KClass        // [KName or KEmpty, superclass or KEmpty, KClassMembers]
	KClassMembers // [member definitions...]

	// Member definitions, used in class bodies and object literals. The name
	// is in Str except for computed properties where it's the first child.
	KMemberFunctionDef // [KFunction]
	KGetterDef         // [KFunction]
	KSetterDef         // [KFunction]
	KComputedProp      // [key, KFunction] or [key, value] in object literals
	KStringKey         // [value]

	// Expressions
	KName
	KString
	KNumber
	KTrue
	KFalse
	KNull
	KThis
	KSuper
	KArrayLit  // [elements...]
	KObjectLit // [KStringKey, KComputedProp, or member definitions...]
	KDot       // [target, KString]
	KIndex     // [target, index]
	KCall      // [callee, args...]
	KNew       // [callee, args...]
	KUnary     // [operand]
	KBinary    // [left, right]
	KCond      // [test, yes, no]
)

var kindNames = []string{
	KEmpty: "EMPTY",

	KRoot:   "ROOT",
	KScript: "SCRIPT",

	KBlock:    "BLOCK",
	KExprStmt: "EXPR_RESULT",
	KReturn:   "RETURN",
	KThrow:    "THROW",
	KIf:       "IF",
	KWhile:    "WHILE",
	KVar:      "VAR",
	KLet:      "LET",
	KConst:    "CONST",

	KFunction:     "FUNCTION",
	KParamList:    "PARAM_LIST",
	KClass:        "CLASS",
	KClassMembers: "CLASS_MEMBERS",

	KMemberFunctionDef: "MEMBER_FUNCTION_DEF",
	KGetterDef:         "GETTER_DEF",
	KSetterDef:         "SETTER_DEF",
	KComputedProp:      "COMPUTED_PROP",
	KStringKey:         "STRING_KEY",

	KName:      "NAME",
	KString:    "STRING",
	KNumber:    "NUMBER",
	KTrue:      "TRUE",
	KFalse:     "FALSE",
	KNull:      "NULL",
	KThis:      "THIS",
	KSuper:     "SUPER",
	KArrayLit:  "ARRAYLIT",
	KObjectLit: "OBJECTLIT",
	KDot:       "GETPROP",
	KIndex:     "GETELEM",
	KCall:      "CALL",
	KNew:       "NEW",
	KUnary:     "UNARY",
	KBinary:    "BINARY",
	KCond:      "HOOK",
}

func (kind Kind) String() string {
	return kindNames[kind]
}

type NodeFlags uint8

const (
	// Member definitions marked with "static"
	FlagStatic NodeFlags = 1 << iota

	// A call with no "this" value, i.e. "(0, a.b)()" semantics
	FlagFreeCall

	// Object keys and member names that were written as string literals
	FlagQuoted

	// "() => {}" instead of "function() {}"
	FlagArrow

	// "get [x]() {}" and "set [x](v) {}"
	FlagComputedGetter
	FlagComputedSetter

	// "{ [x]() {} }" instead of "{ [x]: function() {} }" in object literals
	FlagComputedMethod
)

func (flags NodeFlags) Has(flag NodeFlags) bool {
	return (flags & flag) != 0
}
