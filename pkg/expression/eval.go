package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/provide-io/erlc/pkg/registry"
)

// Evaluate computes the level an expression denotes under a version. E_ALL
// stands for the version's E_ALL level. The result may carry bits outside
// the version; callers decide whether that is acceptable.
func Evaluate(reg *registry.Registry, version, input string) (registry.Level, error) {
	eAll, err := reg.EAllLevel(version)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(input) == "" {
		return 0, ErrEmpty
	}

	tokens, err := tokenize(input)
	if err != nil {
		return 0, err
	}

	p := &parser{tokens: tokens, reg: reg, eAll: eAll}
	v, err := p.or()
	if err != nil {
		return 0, err
	}
	switch tok := p.peek(); tok.kind {
	case tokEOF:
	case tokRParen:
		return 0, fmt.Errorf("%w: %s", ErrUnbalancedParen, tok)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnexpectedToken, tok)
	}
	return registry.Level(v), nil
}

type parser struct {
	tokens []token
	pos    int
	reg    *registry.Registry
	eAll   registry.Level
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) or() (uint64, error) {
	v, err := p.xor()
	if err != nil {
		return 0, err
	}
	for p.peek().kind == tokOr {
		p.next()
		rhs, err := p.xor()
		if err != nil {
			return 0, err
		}
		v |= rhs
	}
	return v, nil
}

func (p *parser) xor() (uint64, error) {
	v, err := p.and()
	if err != nil {
		return 0, err
	}
	for p.peek().kind == tokXor {
		p.next()
		rhs, err := p.and()
		if err != nil {
			return 0, err
		}
		v ^= rhs
	}
	return v, nil
}

func (p *parser) and() (uint64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		rhs, err := p.unary()
		if err != nil {
			return 0, err
		}
		v &= rhs
	}
	return v, nil
}

func (p *parser) unary() (uint64, error) {
	if p.peek().kind == tokNot {
		p.next()
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		return ^v, nil
	}
	return p.primary()
}

func (p *parser) primary() (uint64, error) {
	tok := p.next()
	switch tok.kind {
	case tokIdent:
		if tok.text == registry.EAllName {
			return uint64(p.eAll), nil
		}
		c, ok := p.reg.Constant(tok.text)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownConstant, tok)
		}
		return uint64(c.Value), nil

	case tokNumber:
		n, err := strconv.ParseUint(tok.text, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrUnexpectedToken, tok, err)
		}
		return n, nil

	case tokLParen:
		v, err := p.or()
		if err != nil {
			return 0, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return 0, fmt.Errorf("%w: expected ) before %s", ErrUnbalancedParen, closing)
		}
		return v, nil

	case tokRParen:
		return 0, fmt.Errorf("%w: %s", ErrUnbalancedParen, tok)

	default:
		return 0, fmt.Errorf("%w: %s", ErrUnexpectedToken, tok)
	}
}
