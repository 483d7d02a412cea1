package provider

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Entry is one element of a parsed PHP array literal. Key is set when the
// element uses the 'key' => value form.
type Entry struct {
	Key    string
	HasKey bool
	Value  any
}

// ParsePHPValue statically evaluates one PHP literal: a scalar (int, float,
// string, true/false/null) or an array in either [] or array() syntax,
// possibly nested. Arrays come back as []Entry so key order survives.
// Anything beyond plain literals (variables, calls, constants, concatenation)
// is a parse error; callers treat that as "needs the PHP runtime".
func ParsePHPValue(src string) (any, error) {
	p := &phpParser{src: []rune(src)}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, fmt.Errorf("unexpected trailing input at offset %d", p.pos)
	}
	return v, nil
}

// plainValue converts a parsed value to plain Go data: []Entry becomes
// []any for list-style arrays or map[string]any when any entry is keyed.
func plainValue(v any) any {
	entries, ok := v.([]Entry)
	if !ok {
		return v
	}
	keyed := false
	for _, e := range entries {
		if e.HasKey {
			keyed = true
			break
		}
	}
	if keyed {
		m := make(map[string]any, len(entries))
		for i, e := range entries {
			key := e.Key
			if !e.HasKey {
				key = strconv.Itoa(i)
			}
			m[key] = plainValue(e.Value)
		}
		return m
	}
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = plainValue(e.Value)
	}
	return out
}

type phpParser struct {
	src []rune
	pos int
}

func (p *phpParser) eof() bool { return p.pos >= len(p.src) }

func (p *phpParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *phpParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *phpParser) value() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch c := p.peek(); {
	case c == '[':
		p.pos++
		return p.array(']')
	case c == '\'' || c == '"':
		return p.stringLit(c)
	case c == '-' || c == '+' || unicode.IsDigit(c):
		return p.number()
	default:
		word := p.word()
		switch {
		case strings.EqualFold(word, "true"):
			return true, nil
		case strings.EqualFold(word, "false"):
			return false, nil
		case strings.EqualFold(word, "null"):
			return nil, nil
		case strings.EqualFold(word, "array"):
			p.skipSpace()
			if p.peek() != '(' {
				return nil, fmt.Errorf("expected ( after array at offset %d", p.pos)
			}
			p.pos++
			return p.array(')')
		case word == "":
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, p.pos)
		default:
			return nil, fmt.Errorf("unsupported expression %q: only literals can be read statically", word)
		}
	}
}

// array parses entries up to the given closing rune, [ or array( already consumed
func (p *phpParser) array(closer rune) ([]Entry, error) {
	var entries []Entry
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("unterminated array literal")
		}
		if p.peek() == closer {
			p.pos++
			return entries, nil
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}

		entry := Entry{Value: v}
		p.skipSpace()
		if p.hasArrow() {
			key, err := arrayKey(v)
			if err != nil {
				return nil, err
			}
			val, err := p.value()
			if err != nil {
				return nil, err
			}
			entry = Entry{Key: key, HasKey: true, Value: val}
			p.skipSpace()
		}
		entries = append(entries, entry)

		switch p.peek() {
		case ',':
			p.pos++
		case closer:
			// Closing handled at the top of the loop
		default:
			return nil, fmt.Errorf("expected , or %q at offset %d", closer, p.pos)
		}
	}
}

// hasArrow consumes => when present
func (p *phpParser) hasArrow() bool {
	if p.pos+1 < len(p.src) && p.src[p.pos] == '=' && p.src[p.pos+1] == '>' {
		p.pos += 2
		return true
	}
	return false
}

func arrayKey(v any) (string, error) {
	switch k := v.(type) {
	case string:
		return k, nil
	case int:
		return strconv.Itoa(k), nil
	default:
		return "", fmt.Errorf("unsupported array key type %T", v)
	}
}

func (p *phpParser) stringLit(quote rune) (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		if c == quote {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' && p.pos+1 < len(p.src) {
			next := p.src[p.pos+1]
			if quote == '\'' {
				// Single-quoted strings only escape \' and \\
				if next == '\'' || next == '\\' {
					b.WriteRune(next)
					p.pos += 2
					continue
				}
			} else {
				switch next {
				case 'n':
					b.WriteRune('\n')
					p.pos += 2
					continue
				case 't':
					b.WriteRune('\t')
					p.pos += 2
					continue
				case 'r':
					b.WriteRune('\r')
					p.pos += 2
					continue
				case '"', '\\', '$':
					b.WriteRune(next)
					p.pos += 2
					continue
				}
			}
		}
		b.WriteRune(c)
		p.pos++
	}
	return "", fmt.Errorf("unterminated string literal")
}

func (p *phpParser) number() (any, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	isFloat := false
	for !p.eof() {
		c := p.src[p.pos]
		if unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			p.pos++
			if !p.eof() && (p.src[p.pos] == '-' || p.src[p.pos] == '+') && (c == 'e' || c == 'E') {
				p.pos++
			}
			continue
		}
		break
	}
	text := strings.ReplaceAll(string(p.src[start:p.pos]), "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("bad float literal %q: %w", text, err)
		}
		return f, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("bad int literal %q: %w", text, err)
	}
	return n, nil
}

func (p *phpParser) word() string {
	start := p.pos
	for !p.eof() && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	return string(p.src[start:p.pos])
}
