package ast

// Kind is the type of an ast Node.
type Kind int

// AST Node kinds.
//
//go:generate stringer -type Kind -linecomment
const (
	KindInvalid             Kind = iota // Invalid
	KindProgram                         // Program
	KindLiteral                         // Literal
	KindVariable                        // Variable
	KindAssign                          // Assign
	KindGrouping                        // Grouping
	KindUnary                           // Unary
	KindBinary                          // Binary
	KindLogical                         // Logical
	KindCall                            // Call
	KindExpressionStatement             // ExpressionStatement
	KindPrintStatement                  // PrintStatement
	KindVarStatement                    // VarStatement
	KindBlock                           // Block
	KindIfStatement                     // IfStatement
	KindWhileStatement                  // WhileStatement
	KindFunctionStatement               // FunctionStatement
	KindReturnStatement                 // ReturnStatement
)

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
