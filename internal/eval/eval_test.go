package eval

import (
	"testing"

	"github.com/lcox74/minicomp/internal/lang"
	"github.com/stretchr/testify/require"
)

func TestEvalLiteralExpressionsRoundTripThroughTheParser(t *testing.T) {
	cases := []struct {
		src  string
		want uint64
	}{
		{"2+3", 5},
		{"2*3+4", 10},   // '*' still binds tighter than '+' here: (2*3)+4
		{"100/4/2", 50}, // '/' right-recurses into expr: 100/(4/2)
		{"(2+3)*4", 20},
	}

	for _, c := range cases {
		expr, err := lang.Parse(c.src)
		require.NoError(t, err)

		got, err := Eval(expr, nil)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "expr=%s", c.src)
	}
}

func TestEvalMatchesRightAssociativeGrammarForAddAndMultiply(t *testing.T) {
	// a+b+c parses as Sum(a, Sum(b,c)); integer + is associative, so this
	// still matches conventional left-to-right evaluation.
	expr, err := lang.Parse("1+2+3")
	require.NoError(t, err)
	got, err := Eval(expr, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(6), got)

	expr, err = lang.Parse("2*3*4")
	require.NoError(t, err)
	got, err = Eval(expr, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(24), got)
}

func TestEvalDivisionRightRecursionChangesResult(t *testing.T) {
	// a/b/c parses as Div(a, Div(b,c)) per the grammar's deliberate
	// '/' -> expr right-recursion (spec.md §4.2, §9). 20/4/2 therefore
	// evaluates as 20/(4/2) = 20/2 = 10, not (20/4)/2 = 2.
	expr, err := lang.Parse("20/4/2")
	require.NoError(t, err)

	got, err := Eval(expr, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(10), got)
}

func TestEvalAvgWithArgs(t *testing.T) {
	eqs, err := lang.ParseDefinitions("avg(x,y)=(x+y)/2")
	require.NoError(t, err)

	got, err := EvalEquation(eqs[0], []uint64{100, 80})
	require.NoError(t, err)
	require.Equal(t, uint64(90), got)
}

func TestEvalQuadWithArgsMatchesScenarioFour(t *testing.T) {
	eqs, err := lang.ParseDefinitions("quad(a,b,c,d)=2*2*a+30*b+4")
	require.NoError(t, err)

	got, err := EvalEquation(eqs[0], []uint64{2, 1, 30, 4})
	require.NoError(t, err)
	require.Equal(t, uint64(2*2*2+30*1+4), got)
}

func TestEvalDivisionByZeroReportsRuntimeError(t *testing.T) {
	expr, err := lang.Parse("1/0")
	require.NoError(t, err)

	_, err = Eval(expr, nil)
	require.Error(t, err)

	var rtErr *RuntimeError
	require.ErrorAs(t, err, &rtErr)
}

func TestEvalUnboundParameterReportsRuntimeError(t *testing.T) {
	expr, err := lang.Parse("x")
	require.NoError(t, err)

	_, err = Eval(expr, nil)
	require.Error(t, err)
}
