package mathbox

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ArgType selects the sub-grammar used for one function argument.
type ArgType uint8

const (
	// ArgOriginal parses in the enclosing mode.
	ArgOriginal ArgType = iota
	// ArgMath parses a group in math mode.
	ArgMath
	// ArgText skips leading whitespace and parses a group in text mode.
	ArgText
	// ArgColor lexes one color literal between braces.
	ArgColor
	// ArgSize lexes one dimension between braces.
	ArgSize
	// ArgURL reads a URL verbatim between braces.
	ArgURL
	// ArgRaw reads a name made of letters and * between braces.
	ArgRaw
	// ArgHBox parses like ArgText and wraps the result in text style.
	ArgHBox
)

func (a ArgType) String() string {
	switch a {
	case ArgOriginal:
		return "original"
	case ArgMath:
		return "math"
	case ArgText:
		return "text"
	case ArgColor:
		return "color"
	case ArgSize:
		return "size"
	case ArgURL:
		return "url"
	case ArgRaw:
		return "raw"
	case ArgHBox:
		return "hbox"
	}
	return "unknown"
}

// FuncContext describes the invocation handed to a HandlerFunc.
type FuncContext struct {
	// Name is the command as written, e.g. "\frac".
	Name string
	// Mode is the mode the command appeared in.
	Mode Mode
	// Loc spans the command and its arguments.
	Loc Loc
	// Input is the complete source text.
	Input string
}

// Errorf returns a parse error positioned at the command.
func (c *FuncContext) Errorf(code error, format string, args ...any) error {
	return newError(KindParse, code, c.Input, c.Loc.Start, format, args...)
}

// HandlerFunc turns parsed arguments into a node. Missing optional
// arguments are nil.
type HandlerFunc func(ctx *FuncContext, args, optArgs []Node) (Node, error)

// BuilderFunc lays out a CustomNode produced by a function without a
// Handler, or by a Handler returning a *CustomNode.
type BuilderFunc func(ctx *BuildContext, n *CustomNode, opts Options) (*Box, error)

// FunctionSpec declares a command. Specs are copied into a Registry and
// never modified afterwards.
type FunctionSpec struct {
	Names           []string
	NumArgs         int
	NumOptionalArgs int
	// ArgTypes is empty or lists optional arguments first, then mandatory
	// ones.
	ArgTypes []ArgType
	// Greediness decides whether the command can be used, fully applied, as
	// the argument of another: it must be strictly greater than the outer
	// command's. Zero means 1.
	Greediness    int
	AllowedInText bool
	// AllowedInMath defaults to true when AllowedInText is also false.
	AllowedInMath bool
	Handler       HandlerFunc
	Builder       BuilderFunc
}

// takesArguments reports whether the function expects any argument. The
// greediness gate only applies to such functions.
func (s *FunctionSpec) takesArguments() bool {
	return s.NumArgs+s.NumOptionalArgs > 0
}

func (s *FunctionSpec) argType(i int) ArgType {
	if i < len(s.ArgTypes) {
		return s.ArgTypes[i]
	}
	return ArgOriginal
}

var (
	// ErrInvalidSpec is returned for malformed function specs.
	ErrInvalidSpec = errors.New("invalid function spec")
	// ErrDuplicateFunction is returned when a name is registered twice.
	ErrDuplicateFunction = errors.New("duplicate function")
)

// Registry is an immutable command table consulted by the parser. A
// Registry is safe for concurrent use.
type Registry struct {
	funcs map[string]*FunctionSpec
	envs  map[string]*envSpec
}

// NewRegistry validates specs and returns a registry holding exactly those
// functions plus the built-in environments.
func NewRegistry(specs ...FunctionSpec) (*Registry, error) {
	r := &Registry{
		funcs: make(map[string]*FunctionSpec),
		envs:  builtinEnvironments(),
	}
	if err := r.add(specs); err != nil {
		return nil, err
	}
	return r, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(builtinFunctions()...)
	if err != nil {
		panic(fmt.Sprintf("mathbox: builtin functions: %v", err))
	}
	return r
})

// DefaultRegistry returns the shared registry of built-in functions.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Extend returns a new registry with specs added. The receiver is not
// changed.
func (r *Registry) Extend(specs ...FunctionSpec) (*Registry, error) {
	out := &Registry{
		funcs: maps.Clone(r.funcs),
		envs:  r.envs,
	}
	if err := out.add(specs); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns a copy of the spec registered under name.
func (r *Registry) Lookup(name string) (FunctionSpec, bool) {
	s, ok := r.funcs[name]
	if !ok {
		return FunctionSpec{}, false
	}
	out := *s
	out.Names = slices.Clone(s.Names)
	out.ArgTypes = slices.Clone(s.ArgTypes)
	return out, true
}

// Names returns the registered command names in sorted order. Internal
// names that cannot be typed are left out.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		if !strings.Contains(name, "@") {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Environments returns the environment names in sorted order.
func (r *Registry) Environments() []string {
	return slices.Sorted(maps.Keys(r.envs))
}

func (r *Registry) lookup(name string) *FunctionSpec {
	return r.funcs[name]
}

func (r *Registry) add(specs []FunctionSpec) error {
	for i := range specs {
		spec := specs[i]
		if err := validateSpec(&spec); err != nil {
			return err
		}
		spec.Names = slices.Clone(spec.Names)
		spec.ArgTypes = slices.Clone(spec.ArgTypes)
		if spec.Greediness == 0 {
			spec.Greediness = 1
		}
		if !spec.AllowedInText && !spec.AllowedInMath {
			spec.AllowedInMath = true
		}
		for _, name := range spec.Names {
			if _, dup := r.funcs[name]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateFunction, name)
			}
			r.funcs[name] = &spec
		}
	}
	return nil
}

func validateSpec(s *FunctionSpec) error {
	if len(s.Names) == 0 {
		return fmt.Errorf("%w: no names", ErrInvalidSpec)
	}
	for _, n := range s.Names {
		if n == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidSpec)
		}
		if parserCommand(n) {
			return fmt.Errorf("%w: %s is handled by the parser", ErrInvalidSpec, n)
		}
	}
	if s.NumArgs < 0 || s.NumOptionalArgs < 0 {
		return fmt.Errorf("%w: %s: negative argument count", ErrInvalidSpec, s.Names[0])
	}
	if n := len(s.ArgTypes); n != 0 && n != s.NumArgs+s.NumOptionalArgs {
		return fmt.Errorf("%w: %s: %d arg types for %d arguments", ErrInvalidSpec, s.Names[0], n, s.NumArgs+s.NumOptionalArgs)
	}
	if s.Greediness < 0 {
		return fmt.Errorf("%w: %s: negative greediness", ErrInvalidSpec, s.Names[0])
	}
	if s.Handler == nil && s.Builder == nil {
		return fmt.Errorf("%w: %s: needs a handler or a builder", ErrInvalidSpec, s.Names[0])
	}
	return nil
}
