// Package engine provides the Lisp front end for geoq.
// It wraps zygomys in a sandboxed environment; scripts define shapes and
// run closest-point, intersection and distance queries against them.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/query"
	"github.com/chazu/geoq/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	Message string `json:"message"`
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Report is the output of a successful evaluation: the shapes the script
// defined and the queries it ran, in order.
type Report struct {
	Scene     *scene.Scene   `json:"scene"`
	Results   []query.Result `json:"results"`
	Tolerance geom.Tolerance `json:"tolerance"`
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	timeout   time.Duration
	tolerance geom.Tolerance
	log       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the evaluation limit. Non-positive values keep
// EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithTolerance sets the tolerance scripts start with.
func WithTolerance(tol geom.Tolerance) Option {
	return func(e *Engine) { e.tolerance = tol }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		timeout:   EvalTimeout,
		tolerance: geom.Default,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs source and returns the resulting report.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns report + nil errors + nil error
//   - On parse/eval failure: returns nil report + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Report, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		rep, evalErrs, err := e.evaluate(source)
		ch <- evalResult{report: rep, errors: evalErrs, err: err}
	}()

	rep, evalErrs, err := waitWithTimeout(ch, gen, e.timeout, &e.mu, &e.generation)
	switch {
	case err != nil:
		e.log.Warn("evaluation failed", zap.Uint64("generation", gen), zap.Error(err))
	case len(evalErrs) > 0:
		e.log.Debug("evaluation reported errors",
			zap.Uint64("generation", gen),
			zap.Int("errors", len(evalErrs)),
			zap.String("first", evalErrs[0].Error()))
	default:
		e.log.Debug("evaluation finished",
			zap.Uint64("generation", gen),
			zap.Int("shapes", rep.Scene.Len()),
			zap.Int("results", len(rep.Results)),
			zap.Duration("elapsed", time.Since(start)))
	}
	return rep, evalErrs, err
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Report, []EvalError, error) {
	st := newEvalState(e.tolerance)

	// Empty source is a valid program that produces an empty report.
	if strings.TrimSpace(source) == "" {
		return st.report(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}
	return st.report(), nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?is)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

// evalState is the per-evaluation state the builtins write into.
type evalState struct {
	scene   *scene.Scene
	runner  *query.Runner
	results []query.Result
}

func newEvalState(tol geom.Tolerance) *evalState {
	return &evalState{scene: scene.New(), runner: query.NewRunner(tol)}
}

func (st *evalState) setTolerance(tol geom.Tolerance) {
	st.runner = st.runner.WithTolerance(tol)
	st.scene.Tolerance = &tol
}

func (st *evalState) report() *Report {
	return &Report{Scene: st.scene, Results: st.results, Tolerance: st.runner.Tolerance()}
}
