// Package scanner implements a lexical scanner for .lox files, reading the raw
// source text and emitting a stream of tokens to be consumed by the parser.
//
// The scanner is a concurrent, state-function based scanner similar to that described by Rob Pike
// in his talk [Lexical Scanning in Go], based on the implementation of text/template in the Go
// standard library.
//
// The scanner proceeds one utf-8 rune at a time until a particular token is recognised,
// the token is then "emitted" over a channel where it may be consumed by a client e.g. the parser.
//
// The state of the scanner is maintained between token emits unlike a more conventional
// switch-based scanner that must determine it's current state from scratch in every loop.
//
// This scanner uses "scanFns" to pass the state from one loop to an another.
//
// The 'run' method consumes these "scanFns" which return states in a continual loop until nil is returned
// marking the fact that there is nothing more to scan, at which point the scanner closes the tokens
// channel, which will be picked up by the parser as a signal that the input stream has ended.
// A scanning error does not stop the loop: it emits an Error token and scanning carries on.
//
// A similar approach is used in [BurntSushi/toml].
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
// [BurntSushi/toml]: https://github.com/BurntSushi/toml/blob/master/lex.go
package scanner

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

const (
	eof        = rune(-1) // eof signifies we have reached the end of the input.
	bufferSize = 32       // benchmarks suggest this is the optimum token channel buffer size
)

// scanFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type scanFn func(*Scanner) scanFn

// Scanner is the lox file scanner.
type Scanner struct {
	tokens            chan token.Token    // Channel on which to emit scanned tokens
	handler           syntax.ErrorHandler // Called in response to scanning errors
	name              string              // Name of the file
	src               []byte              // Raw source text
	start             int                 // The start position of the current token
	pos               int                 // Current scanner position in src (bytes, 0 indexed)
	line              int                 // Current line number, 1 indexed
	startLine         int                 // The line on which the current token started
	currentLineOffset int                 // Offset at which the current line started
	startLineOffset   int                 // Offset at which the current token's starting line started
}

// New returns a new [Scanner] and kicks off the state machine in a goroutine.
//
// The handler is called in response to scanning errors, it may be nil in which
// case errors are reported only as [token.Error] tokens.
func New(name string, src []byte, handler syntax.ErrorHandler) *Scanner {
	s := &Scanner{
		tokens:    make(chan token.Token, bufferSize),
		handler:   handler,
		name:      name,
		src:       src,
		line:      1,
		startLine: 1,
	}

	// run terminates when the scanning state machine is finished and all the
	// tokens are drained from s.tokens, so no other synchronisation needed here
	go s.run()

	return s
}

// Scan scans the input and returns the next token.
//
// Once the input is exhausted, Scan returns [token.EOF] forever.
func (s *Scanner) Scan() token.Token {
	tok, ok := <-s.tokens
	if !ok {
		return token.Token{Kind: token.EOF, Start: len(s.src), End: len(s.src), Line: s.line, Col: 1 + s.pos - s.currentLineOffset}
	}

	return tok
}

// next returns the next utf8 rune in the input, or [eof], and advances the scanner
// over that rune such that successive calls to [Scanner.next] iterate through
// src one rune at a time.
func (s *Scanner) next() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, width := utf8.DecodeRune(s.src[s.pos:])
	s.pos += width

	if char == '\n' {
		s.line++
		s.currentLineOffset = s.pos
	}

	return char
}

// peek returns the next utf8 rune in the input, or [eof], but does not
// advance the scanner.
//
// Successive calls to peek simply return the same rune again and again.
func (s *Scanner) peek() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, _ := utf8.DecodeRune(s.src[s.pos:])

	return char
}

// rest returns the rest of the input from the current scanner position,
// or nil if the scanner is at EOF.
func (s *Scanner) rest() []byte {
	if s.pos >= len(s.src) {
		return nil
	}

	return s.src[s.pos:]
}

// skip ignores any characters for which the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the
// first 'false' char.
//
// The scanner start position is brought up to the current position before returning, effectively
// ignoring everything it's travelled over in the meantime.
func (s *Scanner) skip(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}

	s.discard()
}

// discard brings the start position of the current token up to the scanner's
// position, ignoring everything in between.
func (s *Scanner) discard() {
	s.start = s.pos
	s.startLine = s.line
	s.startLineOffset = s.currentLineOffset
}

// takeWhile consumes characters so long as the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the first 'false' rune.
func (s *Scanner) takeWhile(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}
}

// takeUntil consumes characters until it hits any of the specified runes.
//
// It stops before it consumes the first specified rune such that after it returns,
// the next call to [Scanner.next] returns the offending rune.
//
//	s.takeUntil('\n', '\t') // Consume runes until you hit a newline or a tab
func (s *Scanner) takeUntil(runes ...rune) {
	for {
		next := s.peek()
		if slices.Contains(runes, next) {
			return
		}
		// Otherwise, advance the scanner
		s.next()
	}
}

// emit passes a token over the tokens channel, using the scanner's internal
// state to populate position information.
func (s *Scanner) emit(kind token.Kind) {
	s.tokens <- token.Token{
		Kind:  kind,
		Start: s.start,
		End:   s.pos,
		Line:  s.startLine,
		Col:   1 + s.start - s.startLineOffset,
	}

	s.discard()
}

// run starts the state machine for the scanner, it runs with each [scanFn] returning the next
// state until one returns nil, at which point the tokens channel
// is closed as a signal to the receiver that no more tokens will be sent.
func (s *Scanner) run() {
	for state := scanStart; state != nil; {
		state = state(s)
	}

	close(s.tokens)
}

// error emits an error token spanning the offending source and calls the
// installed error handler with position information.
//
// The message is pre-composed in the canonical "Error: <detail>" form so
// handlers only need to add the line prefix.
func (s *Scanner) error(msg string) {
	// Column is the number of bytes between the last newline and the current position
	// +1 because columns are 1 indexed
	startCol := 1 + s.start - s.startLineOffset
	endCol := 1 + s.pos - s.currentLineOffset

	position := syntax.Position{
		Name:     s.name,
		Offset:   s.start,
		Line:     s.startLine,
		StartCol: startCol,
		EndCol:   endCol,
	}

	s.emit(token.Error)

	if s.handler != nil {
		s.handler(position, "Error: "+msg)
	}
}

// errorf calls error with a formatted message.
func (s *Scanner) errorf(format string, a ...any) {
	s.error(fmt.Sprintf(format, a...))
}

// scanStart is the initial state of the scanner.
func scanStart(s *Scanner) scanFn {
	s.skip(unicode.IsSpace)

	switch char := s.next(); char {
	case eof:
		s.emit(token.EOF)
		return nil
	case '(':
		s.emit(token.LeftParen)
	case ')':
		s.emit(token.RightParen)
	case '{':
		s.emit(token.LeftBrace)
	case '}':
		s.emit(token.RightBrace)
	case ',':
		s.emit(token.Comma)
	case '.':
		s.emit(token.Dot)
	case '-':
		s.emit(token.Minus)
	case '+':
		s.emit(token.Plus)
	case ';':
		s.emit(token.Semicolon)
	case '*':
		s.emit(token.Star)
	case '/':
		if s.peek() == '/' {
			return scanLineComment
		}

		s.emit(token.Slash)
	case '!':
		s.emitWithEqual(token.Bang, token.BangEqual)
	case '=':
		s.emitWithEqual(token.Equal, token.EqualEqual)
	case '<':
		s.emitWithEqual(token.Less, token.LessEqual)
	case '>':
		s.emitWithEqual(token.Greater, token.GreaterEqual)
	case '"':
		return scanString
	default:
		if isDigit(char) {
			return scanNumber
		}

		if isIdentStart(char) {
			return scanIdent
		}

		s.errorf("Unexpected character %q.", char)
	}

	return scanStart
}

// emitWithEqual emits either the single-character token kind or, if the very
// next character is '=', the two-character kind.
func (s *Scanner) emitWithEqual(without, with token.Kind) {
	if s.peek() == '=' {
		s.next()
		s.emit(with)

		return
	}

	s.emit(without)
}

// scanLineComment scans (and discards) a '//' line comment.
//
// The first '/' has already been consumed.
func scanLineComment(s *Scanner) scanFn {
	s.takeUntil('\n', eof)
	s.discard()

	return scanStart
}

// scanString scans a string literal, the opening '"' has already been consumed.
//
// Strings may span multiple lines, there are no escape sequences.
func scanString(s *Scanner) scanFn {
	s.takeUntil('"', eof)

	if s.peek() == eof {
		s.error("Unterminated string.")
		return scanStart
	}

	// The closing quote
	s.next()

	s.emit(token.String)

	return scanStart
}

// scanNumber scans a number literal, the first digit has already been consumed.
//
// Numbers are an integral part, optionally followed by '.' and a fractional
// part. A leading or trailing '.' is not part of the number.
func scanNumber(s *Scanner) scanFn {
	s.takeWhile(isDigit)

	// Only consume the '.' if there are digits after it
	if rest := s.rest(); len(rest) >= 2 && rest[0] == '.' && isDigit(rune(rest[1])) {
		s.next() // The '.'
		s.takeWhile(isDigit)
	}

	s.emit(token.Number)

	return scanStart
}

// scanIdent scans an identifier or keyword, the first character has already
// been consumed.
func scanIdent(s *Scanner) scanFn {
	s.takeWhile(isIdent)

	kind, _ := token.Keyword(string(s.src[s.start:s.pos]))
	s.emit(kind)

	return scanStart
}

// isAlpha reports whether r is an alpha character.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit reports whether r is a valid ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentStart reports whether r may begin an identifier.
func isIdentStart(r rune) bool {
	return isAlpha(r) || r == '_'
}

// isIdent reports whether r is a valid identifier character.
func isIdent(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}
