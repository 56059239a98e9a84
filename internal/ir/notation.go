package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseType parses the type notation, e.g. "java.util.Map<String, List<Foo>>".
func ParseType(s string) (Type, error) {
	p := &notationParser{src: s}
	p.skipSpace()
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if !p.eof() {
		return Type{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}
	return t, nil
}

// ParseDependency parses "[@Kind(key=literal, ...)] Type". A single
// positional literal is shorthand for the key "value".
func ParseDependency(s string) (Dependency, error) {
	p := &notationParser{src: s}
	p.skipSpace()

	var d Dependency
	if p.peek() == '@' {
		q, err := p.parseQualifier()
		if err != nil {
			return Dependency{}, err
		}
		d.Qualifier = q
		p.skipSpace()
	}

	t, err := p.parseType()
	if err != nil {
		return Dependency{}, err
	}
	if !p.eof() {
		return Dependency{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}
	d.Type = t
	return d, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// MustParseDependency is ParseDependency for literals known to be valid.
func MustParseDependency(s string) Dependency {
	d, err := ParseDependency(s)
	if err != nil {
		panic(err)
	}
	return d
}

type notationParser struct {
	src string
	pos int
}

func (p *notationParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *notationParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *notationParser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *notationParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s (offset %d in %q)", ErrSyntax, fmt.Sprintf(format, args...), p.pos, p.src)
}

// parseType consumes a type and any whitespace following it.
func (p *notationParser) parseType() (Type, error) {
	name, err := p.parseName()
	if err != nil {
		return Type{}, err
	}
	t := Type{Name: name}
	p.skipSpace()
	if p.peek() != '<' {
		return t, nil
	}
	p.pos++
	for {
		p.skipSpace()
		arg, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		t.Args = append(t.Args, arg)
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			p.skipSpace()
			return t, nil
		default:
			return Type{}, p.errorf("expected ',' or '>' in type arguments of %s", name)
		}
	}
}

func isNameStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNamePart(c byte) bool {
	return isNameStart(c) || c == '.' || (c >= '0' && c <= '9')
}

// parseName reads a possibly dotted identifier with optional "[]" suffixes.
func (p *notationParser) parseName() (string, error) {
	start := p.pos
	if !isNameStart(p.peek()) {
		return "", p.errorf("expected a name")
	}
	for !p.eof() && isNamePart(p.src[p.pos]) {
		p.pos++
	}
	for strings.HasPrefix(p.src[p.pos:], "[]") {
		p.pos += 2
	}
	name := p.src[start:p.pos]
	if strings.HasSuffix(strings.TrimRight(name, "[]"), ".") || strings.Contains(name, "..") {
		return "", p.errorf("malformed name %q", name)
	}
	return name, nil
}

func (p *notationParser) parseQualifier() (*Qualifier, error) {
	p.pos++ // '@'
	kind, err := p.parseName()
	if err != nil {
		return nil, err
	}
	q := &Qualifier{Kind: kind}
	p.skipSpace()
	if p.peek() != '(' {
		return q, nil
	}
	p.pos++
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return q, nil
	}

	positional := false
	seen := make(map[string]bool)
	for {
		p.skipSpace()
		key := ""
		if isNameStart(p.peek()) {
			save := p.pos
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.peek() == '=' {
				p.pos++
				p.skipSpace()
				key = name
			} else {
				p.pos = save
			}
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if key == "" {
			positional = true
			key = "value"
		}
		if seen[key] {
			return nil, p.errorf("duplicate qualifier key %q", key)
		}
		seen[key] = true
		q.Values = append(q.Values, QualifierValue{Key: key, Literal: lit})

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			if positional && len(q.Values) > 1 {
				return nil, p.errorf("a positional qualifier value must be the only value")
			}
			return q, nil
		default:
			return nil, p.errorf("expected ',' or ')' in qualifier @%s", kind)
		}
	}
}

// parseLiteral returns the canonical literal text: strings are re-quoted,
// barewords (numbers, booleans, enum constants) are kept verbatim.
func (p *notationParser) parseLiteral() (string, error) {
	if p.peek() == '"' {
		start := p.pos
		p.pos++
		for !p.eof() {
			switch p.src[p.pos] {
			case '\\':
				p.pos += 2
				continue
			case '"':
				p.pos++
				unquoted, err := strconv.Unquote(p.src[start:p.pos])
				if err != nil {
					return "", p.errorf("bad string literal: %v", err)
				}
				return strconv.Quote(unquoted), nil
			}
			p.pos++
		}
		return "", p.errorf("unterminated string literal")
	}

	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isNamePart(c) || c == '-' || c == '+' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return "", p.errorf("expected a literal")
	}
	return p.src[start:p.pos], nil
}
