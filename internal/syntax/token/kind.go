package token

// Kind is the kind of a token.
type Kind int

// Token definitions.
//
//go:generate stringer -type Kind -linecomment
const (
	EOF          Kind = iota // EOF
	Error                    // Error
	LeftParen                // LeftParen
	RightParen               // RightParen
	LeftBrace                // LeftBrace
	RightBrace               // RightBrace
	Comma                    // Comma
	Dot                      // Dot
	Minus                    // Minus
	Plus                     // Plus
	Semicolon                // Semicolon
	Slash                    // Slash
	Star                     // Star
	Bang                     // Bang
	BangEqual                // BangEqual
	Equal                    // Equal
	EqualEqual               // EqualEqual
	Greater                  // Greater
	GreaterEqual             // GreaterEqual
	Less                     // Less
	LessEqual                // LessEqual
	Ident                    // Ident
	String                   // String
	Number                   // Number
	And                      // And
	Class                    // Class
	Else                     // Else
	False                    // False
	Fun                      // Fun
	For                      // For
	If                       // If
	Nil                      // Nil
	Or                       // Or
	Print                    // Print
	Return                   // Return
	Super                    // Super
	This                     // This
	True                     // True
	Var                      // Var
	While                    // While
)

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
