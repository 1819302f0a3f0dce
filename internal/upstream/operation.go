package upstream

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Operation is a parsed GraphQL document holding exactly one operation.
type Operation struct {
	Name      string
	Kind      ast.Operation
	RootField string
	Query     string

	vars map[string]*ast.VariableDefinition
}

func Parse(doc string) (*Operation, error) {
	parsed, err := parser.ParseQuery(&ast.Source{Input: doc})
	if err != nil {
		return nil, fmt.Errorf("parse operation: %w", err)
	}
	if len(parsed.Operations) == 0 {
		return nil, ErrNoOperation
	}

	def := parsed.Operations[0]
	op := &Operation{
		Name:  def.Name,
		Kind:  def.Operation,
		Query: doc,
		vars:  make(map[string]*ast.VariableDefinition, len(def.VariableDefinitions)),
	}
	for _, v := range def.VariableDefinitions {
		op.vars[v.Variable] = v
	}
	for _, sel := range def.SelectionSet {
		if f, ok := sel.(*ast.Field); ok {
			op.RootField = f.Alias
			if op.RootField == "" {
				op.RootField = f.Name
			}
			break
		}
	}
	return op, nil
}

// MustParse is Parse for package-level documents; it panics on a malformed document.
func MustParse(doc string) *Operation {
	op, err := Parse(doc)
	if err != nil {
		panic(err)
	}
	return op
}

func (o *Operation) IsMutation() bool {
	return o.Kind == ast.Mutation
}

func (o *Operation) Declares(name string) bool {
	_, ok := o.vars[name]
	return ok
}

// Required reports whether the variable is non-null without a default value.
func (o *Operation) Required(name string) bool {
	v, ok := o.vars[name]
	return ok && v.Type != nil && v.Type.NonNull && v.DefaultValue == nil
}

// TypeOf returns the declared GraphQL type, e.g. "[ID!]!", or "" when undeclared.
func (o *Operation) TypeOf(name string) string {
	v, ok := o.vars[name]
	if !ok || v.Type == nil {
		return ""
	}
	return v.Type.String()
}

func (o *Operation) Variables() []string {
	names := make([]string, 0, len(o.vars))
	for n := range o.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CheckVariables rejects payloads that miss a required variable or carry an undeclared one.
func (o *Operation) CheckVariables(vars map[string]any) error {
	for _, name := range o.Variables() {
		if !o.Required(name) {
			continue
		}
		if v, ok := vars[name]; !ok || v == nil {
			return fmt.Errorf("%w: %s.%s", ErrMissingVariable, o.Name, name)
		}
	}
	for name := range vars {
		if !o.Declares(name) {
			return fmt.Errorf("%w: %s.%s", ErrUndeclaredVariable, o.Name, name)
		}
	}
	return nil
}
