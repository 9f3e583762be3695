package lang

import "strings"

// Equation pairs a function name with its ordered formal parameters and a
// parsed expression body. Parameter order defines stack-slot assignment in
// the code generator: ParamIndex(c) is the position of c within Params.
type Equation struct {
	Name   string
	Params []byte
	Body   *Expr
}

// ParamIndex returns the position of parameter c within the equation's
// formal parameter list, or -1 if c is not one of them.
func (e Equation) ParamIndex(c byte) int {
	for i, p := range e.Params {
		if p == c {
			return i
		}
	}
	return -1
}

// ParseDefinitions splits a definitions string on ';' and parses each
// non-empty entry of the form `name(arg1,arg2,...)=expression` into an
// Equation. Empty entries (after trimming) are skipped.
func ParseDefinitions(input string) ([]Equation, error) {
	var equations []Equation

	for _, raw := range strings.Split(input, ";") {
		def := strings.TrimSpace(raw)
		if def == "" {
			continue
		}

		eq, err := parseDefinition(def)
		if err != nil {
			return nil, err
		}
		equations = append(equations, eq)
	}

	return equations, nil
}

func parseDefinition(def string) (Equation, error) {
	eqIdx := strings.IndexByte(def, '=')
	if eqIdx < 0 {
		return Equation{}, &ParseError{Msg: "malformed definition: missing '='"}
	}

	head := strings.TrimSpace(def[:eqIdx])
	expr := def[eqIdx+1:]

	open := strings.IndexByte(head, '(')
	if open < 0 {
		return Equation{}, &ParseError{Msg: "malformed definition: missing '('"}
	}
	if !strings.HasSuffix(head, ")") {
		return Equation{}, &ParseError{Msg: "malformed definition: missing ')'"}
	}

	name := strings.TrimSpace(head[:open])
	if name == "" {
		return Equation{}, &ParseError{Msg: "malformed definition: empty function name"}
	}

	argList := head[open+1 : len(head)-1]
	params, err := parseParams(argList)
	if err != nil {
		return Equation{}, err
	}

	body, err := Parse(expr)
	if err != nil {
		return Equation{}, err
	}

	return Equation{Name: name, Params: params, Body: body}, nil
}

// parseParams splits a parameter list on ',' and takes the first character
// of each trimmed entry as the parameter identifier. Each identifier must
// be a single lowercase letter and unique within the equation — the
// original prototype this grammar was distilled from never checked this;
// it is enforced here as the Equation invariant requires.
func parseParams(argList string) ([]byte, error) {
	var params []byte
	seen := make(map[byte]bool)

	for _, raw := range strings.Split(argList, ",") {
		arg := strings.TrimSpace(raw)
		if len(arg) != 1 || arg[0] < 'a' || arg[0] > 'z' {
			return nil, &ParseError{Msg: "parameter must be a single lowercase letter: " + raw}
		}
		c := arg[0]
		if seen[c] {
			return nil, &ParseError{Msg: "duplicate parameter: " + string(c)}
		}
		seen[c] = true
		params = append(params, c)
	}

	return params, nil
}
