package dub

import (
	"fmt"
	"strconv"
)

type Node interface {
	isNode()
}

func (Identifier) isNode() {}
func (Int) isNode()        {}
func (Float) isNode()      {}
func (String) isNode()     {}
func (Event) isNode()      {}

type Command struct {
	Name Identifier
	Args []Node
}

type Identifier string
type Int int
type Float float64
type String string

// Event is one or more note names sounding for Length seconds, written
// as A4:1 or A4,CS5:0.5.
type Event struct {
	Names  []Identifier
	Length float64
}

func Parse(input string) (Command, error) {
	tokens, err := lex(input)
	if err != nil {
		return Command{}, err
	}
	p := parser{tokens: tokens}
	return p.parse()
}

type parser struct {
	pos    int
	tokens []token
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) peek() token {
	t := p.next()
	p.pos--
	return t
}

func (p *parser) parse() (Command, error) {
	var cmd Command
	token := p.next()
	if token.typ != typeIdentifier {
		return cmd, unexpected(token)
	}
	cmd.Name = Identifier(token.text)
	for token := p.next(); token.typ != typeEOF; token = p.next() {
		var arg Node
		switch token.typ {
		case typeIdentifier:
			switch p.peek().typ {
			case typeComma, typeColon:
				ev, err := p.event(token)
				if err != nil {
					return cmd, err
				}
				arg = ev
			default:
				arg = Identifier(token.text)
			}
		case typeString:
			arg = String(token.text[1 : len(token.text)-1])
		case typeFloat:
			f, err := strconv.ParseFloat(token.text, 64)
			if err != nil {
				return cmd, err
			}
			arg = Float(f)
		case typeInt:
			n, err := strconv.Atoi(token.text)
			if err != nil {
				return cmd, err
			}
			arg = Int(n)
		default:
			return cmd, unexpected(token)
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}

func (p *parser) event(start token) (Event, error) {
	ev := Event{Names: []Identifier{Identifier(start.text)}}
	for p.peek().typ == typeComma {
		p.next()
		t := p.next()
		if t.typ != typeIdentifier {
			return ev, unexpected(t)
		}
		ev.Names = append(ev.Names, Identifier(t.text))
	}
	if t := p.next(); t.typ != typeColon {
		return ev, unexpected(t)
	}
	t := p.next()
	switch t.typ {
	case typeInt, typeFloat:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return ev, err
		}
		if f < 0 {
			return ev, fmt.Errorf("negative event length %s at position %d", t.text, t.pos)
		}
		ev.Length = f
	default:
		return ev, unexpected(t)
	}
	return ev, nil
}

func unexpected(t token) error {
	if t.typ == typeEOF {
		return fmt.Errorf("unexpected end of input at position %d", t.pos)
	}
	return fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
}
