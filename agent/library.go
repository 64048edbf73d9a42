package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Func is a single callable function exposed to an expert.
type Func struct {
	Decl *genai.FunctionDeclaration
	Call func(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Library holds the functions an expert can call.
type Library struct {
	funcs []Func
}

// NewLibrary builds a library from the given functions.
func NewLibrary(funcs ...Func) *Library {
	return &Library{funcs: funcs}
}

// Declarations returns the declarations of all functions in the library.
func (l *Library) Declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(l.funcs))
	for _, f := range l.funcs {
		decls = append(decls, f.Decl)
	}
	return decls
}

// Call dispatches a function call to the matching function.
func (l *Library) Call(ctx context.Context, call *genai.FunctionCall) (map[string]any, error) {
	for _, f := range l.funcs {
		if f.Decl.Name == call.Name {
			return f.Call(ctx, call.Args)
		}
	}
	return nil, fmt.Errorf("unknown function %s", call.Name)
}
