package script

import (
	"strconv"
	"strings"
)

// Parser parses script tokens into a Program.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a parser for the input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the whole input.
func Parse(input string) (*Program, error) {
	return NewParser(input).Parse()
}

// Parse parses statements until end of input.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	for p.current.Type != TokenEOF {
		if p.current.Type == TokenSemicolon {
			p.nextToken()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) expect(t TokenType) (Token, error) {
	tok := p.current
	if tok.Type != t {
		return tok, p.unexpected(t.String())
	}
	p.nextToken()
	return tok, nil
}

func (p *Parser) unexpected(want string) *SyntaxError {
	tok := p.current
	switch tok.Type {
	case TokenEOF:
		return errorf(tok.Pos, "expected %s, got end of input", want)
	case TokenIllegal:
		if strings.ContainsAny(tok.Literal[:1], "\"'`") {
			return errorf(tok.Pos, "unterminated string")
		}
		return errorf(tok.Pos, "unexpected character %q", tok.Literal)
	}
	return errorf(tok.Pos, "expected %s, got %s %q", want, tok.Type, tok.Literal)
}

// statement = "gsap" "." method args
//
//	| "gsap" "." "timeline" "(" ")" { "." method args }
func (p *Parser) parseStatement() (*Statement, error) {
	start := p.current
	if start.Type != TokenIdent || start.Literal != "gsap" {
		return nil, p.unexpected(`"gsap"`)
	}
	p.nextToken()
	if _, err := p.expect(TokenDot); err != nil {
		return nil, err
	}
	name := p.current
	if name.Type != TokenIdent {
		return nil, p.unexpected("method name")
	}
	p.nextToken()

	stmt := &Statement{Pos: start.Pos}
	if name.Literal == "timeline" {
		stmt.Timeline = true
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		for p.current.Type == TokenDot {
			p.nextToken()
			m := p.current
			if m.Type != TokenIdent {
				return nil, p.unexpected("method name")
			}
			switch m.Literal {
			case "to", "from", "fromTo":
			default:
				return nil, errorf(m.Pos, "timeline has no method %q", m.Literal)
			}
			p.nextToken()
			call, err := p.parseCall(m)
			if err != nil {
				return nil, err
			}
			stmt.Calls = append(stmt.Calls, call)
		}
	} else {
		switch name.Literal {
		case "set", "to", "from", "fromTo":
		default:
			return nil, errorf(name.Pos, "gsap has no method %q", name.Literal)
		}
		call, err := p.parseCall(name)
		if err != nil {
			return nil, err
		}
		stmt.Calls = append(stmt.Calls, call)
	}

	if p.current.Type == TokenSemicolon {
		p.nextToken()
	}
	return stmt, nil
}

// call = "(" string "," object [ "," object ] [ "," ] ")"
func (p *Parser) parseCall(method Token) (*Call, error) {
	call := &Call{Pos: method.Pos, Method: method.Literal}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	sel := p.current
	if sel.Type != TokenString {
		return nil, p.unexpected("selector string")
	}
	call.Selector, call.SelectorPos = sel.Literal, sel.Pos
	p.nextToken()

	want := 1
	if method.Literal == "fromTo" {
		want = 2
	}
	for i := 0; i < want; i++ {
		if _, err := p.expect(TokenComma); err != nil {
			return nil, err
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, obj)
	}
	if p.current.Type == TokenComma && p.peek.Type == TokenRParen {
		p.nextToken()
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return call, nil
}

// object = "{" [ field { "," field } [ "," ] ] "}"
func (p *Parser) parseObject() (*Object, error) {
	open, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}
	obj := &Object{Pos: open.Pos}
	for p.current.Type != TokenRBrace {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		obj.Fields = append(obj.Fields, field)
		if p.current.Type != TokenComma {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return obj, nil
}

// field = ( ident | string ) ":" value
func (p *Parser) parseField() (*Field, error) {
	key := p.current
	if key.Type != TokenIdent && key.Type != TokenString {
		return nil, p.unexpected("property name")
	}
	p.nextToken()
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &Field{Pos: key.Pos, Key: key.Literal, Value: val}, nil
}

// value = number | string | "true" | "false" | object
func (p *Parser) parseValue() (Value, error) {
	tok := p.current
	switch tok.Type {
	case TokenNumber:
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return Value{}, errorf(tok.Pos, "malformed number %q", tok.Literal)
		}
		p.nextToken()
		return Value{Pos: tok.Pos, Kind: KindNumber, Num: n}, nil
	case TokenString:
		p.nextToken()
		return Value{Pos: tok.Pos, Kind: KindString, Str: tok.Literal}, nil
	case TokenTrue, TokenFalse:
		p.nextToken()
		return Value{Pos: tok.Pos, Kind: KindBool, Bool: tok.Type == TokenTrue}, nil
	case TokenLBrace:
		obj, err := p.parseObject()
		if err != nil {
			return Value{}, err
		}
		return Value{Pos: tok.Pos, Kind: KindObject, Obj: obj}, nil
	}
	return Value{}, p.unexpected("value")
}
