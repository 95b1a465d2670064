// Package script compiles edited preset code into motion effects.
//
// The accepted language is the small call syntax the preset code is shown
// in, nothing more:
//
//	gsap.from(".element", { y: 60, opacity: 0, ease: "back.out(1.7)", duration: 0.5 });
//	gsap.timeline()
//	  .to(".element", { x: -20, duration: 0.1, ease: "power2.in" })
//	  .to(".element", { x: 300, opacity: 0, duration: 0.3, ease: "power3.in" });
//
// Statements are gsap.set, gsap.to, gsap.from, gsap.fromTo and
// gsap.timeline() followed by chained .to/.from/.fromTo calls. Object keys
// are limited to the animatable properties and the tween options ease,
// duration, delay, repeat, yoyo and stagger. Selectors are ".element" and
// ".items". Nothing is evaluated: a program either compiles into a list of
// effects or fails with a positioned error before touching any target.
package script

import "fmt"

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent  // gsap, to, keys
	TokenString // "quoted" or 'quoted' or `quoted`
	TokenNumber // 0.5, -90, 1e3

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenComma     // ,
	TokenColon     // :
	TokenDot       // .
	TokenSemicolon // ;

	// Boolean literals
	TokenTrue  // true
	TokenFalse // false
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIllegal:
		return "illegal character"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	case TokenDot:
		return "'.'"
	case TokenSemicolon:
		return "';'"
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Pos is a 1-based line and column.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Pos
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "true":
		return TokenTrue
	case "false":
		return TokenFalse
	}
	return TokenIdent
}
