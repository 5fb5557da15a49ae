package entities

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/NotAdityaPawar/monkeypatch/function/values"
)

// Param is a declared parameter. A nil Hint marks an unannotated parameter.
type Param struct {
	Name string
	Hint *values.TypeHint
}

// Declaration is the explicit contract of a function eligible for
// generative patching: its name, callable, documentation and signature.
type Declaration struct {
	name    values.FunctionName
	fn      any
	doc     string
	params  []Param
	returns *values.TypeHint
}

// Name returns the function's name.
func (d *Declaration) Name() string {
	return d.name.String()
}

// Func returns the callable the declaration refers to. The registry keeps
// this reference; it never copies or invokes it.
func (d *Declaration) Func() any {
	return d.fn
}

// Doc returns the raw documentation text.
func (d *Declaration) Doc() string {
	return d.doc
}

// Params returns a copy of the declared parameters in order.
func (d *Declaration) Params() []Param {
	return append([]Param(nil), d.params...)
}

// Returns returns the declared return hint, or nil.
func (d *Declaration) Returns() *values.TypeHint {
	return d.returns
}

// DeclarationBuilder assembles a Declaration.
type DeclarationBuilder struct {
	name    string
	fn      any
	doc     string
	params  []Param
	returns *values.TypeHint
}

// Declare starts a declaration for fn. An empty name is derived from the
// function's symbol name.
func Declare(name string, fn any) *DeclarationBuilder {
	return &DeclarationBuilder{name: name, fn: fn}
}

// Doc sets the documentation text.
func (b *DeclarationBuilder) Doc(doc string) *DeclarationBuilder {
	b.doc = doc
	return b
}

// Param appends an annotated parameter.
func (b *DeclarationBuilder) Param(name string, hint values.TypeHint) *DeclarationBuilder {
	h := hint
	b.params = append(b.params, Param{Name: name, Hint: &h})
	return b
}

// Untyped appends a parameter without a type annotation.
func (b *DeclarationBuilder) Untyped(name string) *DeclarationBuilder {
	b.params = append(b.params, Param{Name: name})
	return b
}

// Returns sets the return hint.
func (b *DeclarationBuilder) Returns(hint values.TypeHint) *DeclarationBuilder {
	h := hint
	b.returns = &h
	return b
}

// Build validates and returns the declaration.
func (b *DeclarationBuilder) Build() (*Declaration, error) {
	rawName := b.name
	if strings.TrimSpace(rawName) == "" {
		rawName = SymbolName(b.fn)
	}

	name, err := values.NewFunctionName(rawName)
	if err != nil {
		return nil, &DeclarationError{Name: rawName, Field: "name", Reason: err.Error()}
	}

	seen := make(map[string]struct{}, len(b.params))
	for _, p := range b.params {
		if _, err := values.NewFunctionName(p.Name); err != nil {
			return nil, &DeclarationError{Name: rawName, Field: "param " + p.Name, Reason: err.Error()}
		}
		if _, dup := seen[p.Name]; dup {
			return nil, &DeclarationError{Name: rawName, Field: "param " + p.Name, Reason: "duplicate parameter"}
		}
		seen[p.Name] = struct{}{}
		if p.Hint != nil && p.Hint.IsZero() {
			return nil, &DeclarationError{Name: rawName, Field: "param " + p.Name, Reason: "zero type hint"}
		}
	}
	if b.returns != nil && b.returns.IsZero() {
		return nil, &DeclarationError{Name: rawName, Field: "return", Reason: "zero type hint"}
	}

	if err := checkCallable(rawName, b.fn, b.params, b.returns); err != nil {
		return nil, err
	}

	return &Declaration{
		name:    name,
		fn:      b.fn,
		doc:     b.doc,
		params:  append([]Param(nil), b.params...),
		returns: b.returns,
	}, nil
}

// MustBuild builds the declaration or panics. Intended for package-level
// declarations.
func (b *DeclarationBuilder) MustBuild() *Declaration {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

// checkCallable cross-checks the declared signature against fn when fn is
// a func value. Non-func callables are accepted as opaque references.
func checkCallable(name string, fn any, params []Param, returns *values.TypeHint) error {
	if fn == nil {
		return &DeclarationError{Name: name, Field: "func", Reason: "callable is nil"}
	}
	ft := reflect.TypeOf(fn)
	if ft.Kind() != reflect.Func {
		return nil
	}

	if ft.NumIn() != len(params) {
		return &DeclarationError{
			Name:   name,
			Field:  "params",
			Reason: fmt.Sprintf("func takes %d arguments, %d declared", ft.NumIn(), len(params)),
		}
	}
	for i, p := range params {
		if p.Hint == nil || p.Hint.Kind() != values.KindType {
			continue
		}
		if in := ft.In(i); in != p.Hint.Type() {
			return &DeclarationError{
				Name:   name,
				Field:  "param " + p.Name,
				Reason: fmt.Sprintf("declared %s, func takes %s", p.Hint.Type(), in),
			}
		}
	}

	if returns != nil && returns.Kind() == values.KindType {
		if ft.NumOut() == 0 {
			return &DeclarationError{Name: name, Field: "return", Reason: "func returns nothing"}
		}
		if out := ft.Out(0); out != returns.Type() {
			return &DeclarationError{
				Name:   name,
				Field:  "return",
				Reason: fmt.Sprintf("declared %s, func returns %s", returns.Type(), out),
			}
		}
	}
	return nil
}

var (
	errorType   = reflect.TypeFor[error]()
	contextType = reflect.TypeFor[context.Context]()
)

// FromFunc derives a declaration from a func value. Parameter types come
// from reflection; paramNames must name every argument. The first result
// is the return type; a trailing error result is ignored. An empty name is
// derived from the symbol name.
func FromFunc(name string, fn any, doc string, paramNames ...string) (*Declaration, error) {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil, &DeclarationError{Name: name, Field: "func", Reason: fmt.Sprintf("expected a func, got %T", fn)}
	}
	if len(paramNames) != ft.NumIn() {
		return nil, &DeclarationError{
			Name:   name,
			Field:  "params",
			Reason: fmt.Sprintf("func takes %d arguments, %d names given", ft.NumIn(), len(paramNames)),
		}
	}

	b := Declare(name, fn).Doc(doc)
	for i, pn := range paramNames {
		in := ft.In(i)
		// context parameters are plumbing, not part of the contract
		if in == contextType {
			b.Untyped(pn)
			continue
		}
		b.Param(pn, values.FromReflect(in))
	}
	if ft.NumOut() > 0 && ft.Out(0) != errorType {
		b.Returns(values.FromReflect(ft.Out(0)))
	}
	return b.Build()
}

// SymbolName returns the unqualified runtime name of a func value, or ""
// when fn is not a func.
func SymbolName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	full := rf.Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}
