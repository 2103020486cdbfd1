package task

import (
	"fmt"
	"sort"
	"strings"
)

// BoundCall is the final argument set for one invocation. Positional
// holds one value per formal parameter in declaration order (defaults
// applied for optionals left unset), followed by any variadic overflow
// values. Keyword holds the values absorbed by the variadic-keyword
// parameter. Values are strings except for the boolean flag shorthand.
type BoundCall struct {
	Positional []any
	Keyword    map[string]any
}

// Format renders the invocation as a single command-like line: the task
// name, positional values in order, then keyword values sorted by name.
func (c BoundCall) Format(name string) string {
	parts := []string{name}
	for _, v := range c.Positional {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	keys := make([]string, 0, len(c.Keyword))
	for k := range c.Keyword {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.Keyword[k]))
	}
	return strings.Join(parts, " ")
}

// Bind maps raw CLI tokens onto the declared parameters and produces
// the final call arguments.
//
// Tokens are scanned left to right. --name=value and --name value bind
// by name; a bare --name binds true when the parameter's default is
// boolean, and --no-name binds false. Everything else fills parameters
// positionally in declaration order, with overflow going to the
// variadic parameter when one is declared. Unset optionals receive
// their defaults. Values stay raw strings; interpreting them is the
// task's business.
func Bind(params []ParamSpec, tokens []string) (BoundCall, error) {
	b := newBinding(params)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !isOption(tok) {
			if err := b.fillPositional(tok); err != nil {
				return BoundCall{}, err
			}
			continue
		}

		name := tok[2:]
		if eq := strings.Index(name, "="); eq >= 0 {
			if err := b.fillNamed(name[:eq], name[eq+1:]); err != nil {
				return BoundCall{}, err
			}
			continue
		}

		var value string
		hasValue := i+1 < len(tokens) && !isOption(tokens[i+1])
		if hasValue {
			value = tokens[i+1]
		}
		consumed, err := b.fillOption(name, value, hasValue)
		if err != nil {
			return BoundCall{}, err
		}
		if consumed {
			i++
		}
	}

	return b.finish()
}

// binding tracks fill state for one Bind call.
type binding struct {
	formals []ParamSpec // required and optional parameters, declaration order
	slots   []any
	filled  []bool
	extras  []any          // values for the variadic parameter
	keyword map[string]any // values for the keyword parameter

	variadic bool // a variadic parameter is declared
	kwName   string
}

func newBinding(params []ParamSpec) *binding {
	b := &binding{keyword: make(map[string]any)}
	for _, p := range params {
		switch p.Kind {
		case Variadic:
			b.variadic = true
		case Keyword:
			b.kwName = p.Name
		default:
			b.formals = append(b.formals, p)
		}
	}
	b.slots = make([]any, len(b.formals))
	b.filled = make([]bool, len(b.formals))
	return b
}

func isOption(tok string) bool {
	return strings.HasPrefix(tok, "--") && len(tok) > 2
}

// fillPositional assigns a bare token to the next unfilled formal
// parameter, or to the variadic overflow.
func (b *binding) fillPositional(tok string) error {
	for i := range b.formals {
		if !b.filled[i] {
			b.slots[i] = tok
			b.filled[i] = true
			return nil
		}
	}
	if b.variadic {
		b.extras = append(b.extras, tok)
		return nil
	}
	return &UnexpectedArgumentError{Token: tok}
}

// fillNamed assigns a value to the named parameter, or hands it to the
// keyword parameter when no formal matches. Repeated bindings are
// last-wins, consistent with the registry collision policy.
func (b *binding) fillNamed(name, value string) error {
	if i, _, ok := b.formal(name); ok {
		b.slots[i] = value
		b.filled[i] = true
		return nil
	}
	if b.kwName != "" {
		b.keyword[name] = value
		return nil
	}
	return &UnknownOptionError{Name: name}
}

// fillOption handles a --name token without an attached =value. It
// reports whether the following token was consumed as the value.
//
// A declared parameter takes the next token as its value when one is
// available, and otherwise falls back to the boolean flag shorthand.
// --no-name binds false to a declared boolean parameter and never
// consumes a value. Anything else is absorbed by the keyword parameter
// or rejected.
func (b *binding) fillOption(name, value string, hasValue bool) (bool, error) {
	if i, p, ok := b.formal(name); ok {
		if hasValue {
			b.slots[i] = value
			b.filled[i] = true
			return true, nil
		}
		if _, isBool := p.Default.(bool); !isBool {
			return false, &MissingValueError{Name: name}
		}
		b.slots[i] = true
		b.filled[i] = true
		return false, nil
	}

	if rest, ok := strings.CutPrefix(name, "no-"); ok {
		if i, p, ok := b.formal(rest); ok {
			if _, isBool := p.Default.(bool); !isBool {
				return false, &MissingValueError{Name: rest}
			}
			b.slots[i] = false
			b.filled[i] = true
			return false, nil
		}
	}

	if b.kwName != "" {
		if hasValue {
			b.keyword[name] = value
			return true, nil
		}
		return false, &MissingValueError{Name: name}
	}
	return false, &UnknownOptionError{Name: name}
}

func (b *binding) formal(name string) (int, ParamSpec, bool) {
	for i, p := range b.formals {
		if p.Name == name {
			return i, p, true
		}
	}
	return 0, ParamSpec{}, false
}

// finish validates arity and applies defaults.
func (b *binding) finish() (BoundCall, error) {
	for i, p := range b.formals {
		if b.filled[i] {
			continue
		}
		if p.Kind == Required {
			return BoundCall{}, &MissingArgumentError{Name: p.Name}
		}
		b.slots[i] = p.Default
	}
	return BoundCall{
		Positional: append(b.slots, b.extras...),
		Keyword:    b.keyword,
	}, nil
}
