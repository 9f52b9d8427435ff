package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Registry manages the CEL environment and provides helper methods for evaluation.
type Registry struct {
	env *cel.Env
}

// NewRegistry initializes the CEL environment with the game state variables.
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("players", cel.ListType(cel.MapType(cel.StringType, cel.DynType))),
		cel.Variable("current", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("turn", cel.IntType),
		cel.Variable("phase", cel.StringType),
		cel.Variable("winner", cel.StringType),
		cel.Variable("selected_location", cel.StringType),
		cel.Variable("answered", cel.ListType(cel.StringType)),
		cel.Variable("claimed", cel.ListType(cel.StringType)),
		cel.Variable("decks", cel.MapType(cel.StringType, cel.MapType(cel.StringType, cel.IntType))),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

// Query is a compiled expression that can be evaluated against many states.
type Query struct {
	expr string
	prg  cel.Program
}

// Compile parses and checks an expression once.
func (r *Registry) Compile(expression string) (*Query, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	return &Query{expr: expression, prg: prog}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.expr }

// Eval runs the query against a context built by ContextFromState.
func (q *Query) Eval(context map[string]any) (any, error) {
	out, _, err := q.prg.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

// EvalBool runs the query and requires a boolean result.
func (q *Query) EvalBool(context map[string]any) (bool, error) {
	out, err := q.Eval(context)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %T, want bool", q.expr, out)
	}
	return b, nil
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(expression string, context map[string]any) (any, error) {
	q, err := r.Compile(expression)
	if err != nil {
		return nil, err
	}
	return q.Eval(context)
}
