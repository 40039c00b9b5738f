// Package filter selects movie list rows with expr-lang expressions.
//
// Expressions see the fields of a movie summary under their page names
// (code, year, nameKO, nameEN, time, genre) and must evaluate to a bool.
// String matching uses the expr operators contains, startsWith, endsWith
// and matches, the builtins lower, upper, hasPrefix and hasSuffix, and two
// helpers: equalFold(a, b) and hasAny(s, subs...), both case-insensitive.
//
//	genre == "Drama"
//	nameKO contains "광해" or equalFold(nameEN, "masquerade")
//	time in ["장편", "단편"] and not (genre startsWith "애니")
//	hasPrefix(lower(nameEN), "the") || hasAny(nameKO, "도둑", "왕")
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/boxoffice/movie"
)

// DefaultCacheSize is the number of compiled expressions a Compiler keeps
const DefaultCacheSize = 32

// env is the evaluation environment of an expression
type env struct {
	Code   string `expr:"code"`
	Year   string `expr:"year"`
	NameKO string `expr:"nameKO"`
	NameEN string `expr:"nameEN"`
	Time   string `expr:"time"`
	Genre  string `expr:"genre"`

	EqualFold func(a, b string) bool `expr:"equalFold"`
	HasAny    func(s string, subs ...string) bool `expr:"hasAny"`
}

func newEnv(m movie.MovieSummary) env {
	return env{
		Code:      m.Code,
		Year:      m.Year,
		NameKO:    m.NameKO,
		NameEN:    m.NameEN,
		Time:      m.Time,
		Genre:     m.Genre,
		EqualFold: strings.EqualFold,
		HasAny:    hasAny,
	}
}

// hasAny reports whether s contains any of subs, ignoring case
func hasAny(s string, subs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Filter is a compiled expression
type Filter struct {
	expression string
	program    *vm.Program
}

// Compiler compiles expressions and caches the results
type Compiler struct {
	cache *programCache
}

// NewCompiler creates a Compiler caching up to size programs
func NewCompiler(size int) *Compiler {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Compiler{cache: newProgramCache(size)}
}

// Compile compiles expression into a Filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Err: ErrEmptyExpression}
	}

	if program, ok := c.cache.Get(expression); ok {
		return &Filter{expression: expression, program: program}, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(env{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	c.cache.Put(expression, program)
	return &Filter{expression: expression, program: program}, nil
}

var defaultCompiler = NewCompiler(DefaultCacheSize)

// Compile compiles expression with the package Compiler
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a movie. Evaluation errors count as no match.
func (f *Filter) Match(m movie.MovieSummary) bool {
	result, err := expr.Run(f.program, newEnv(m))
	if err != nil {
		return false
	}
	matched, _ := result.(bool)
	return matched
}

// Apply returns the movies matching the filter, keeping their order
func (f *Filter) Apply(movies []movie.MovieSummary) []movie.MovieSummary {
	matched := make([]movie.MovieSummary, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			matched = append(matched, m)
		}
	}
	return matched
}
