package main

import (
	"context"
	"fmt"

	"github.com/chazu/geoq/pkg/config"
	"github.com/chazu/geoq/pkg/engine"
	"github.com/chazu/geoq/pkg/geom"
	"github.com/chazu/geoq/pkg/kernel"
	"github.com/chazu/geoq/pkg/kernel/sdfx"
	"github.com/chazu/geoq/pkg/query"
	"github.com/chazu/geoq/pkg/scene"
	"github.com/chazu/geoq/pkg/sweep"
	"github.com/chazu/geoq/pkg/tessellate"
	"go.uber.org/zap"
)

// colorPalette is a default palette used to assign distinct colors to meshes.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App wires the engine, query runner and kernel behind the geoq commands.
type App struct {
	cfg    config.Config
	log    *zap.Logger
	engine *engine.Engine
	runner *query.Runner
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format printed by the mesh command.
type MeshData struct {
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	ShapeName string    `json:"shape"`
	Color     string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a script.
type EvalResult struct {
	Shapes    []*scene.Shape  `json:"shapes"`
	Results   []query.Result  `json:"results"`
	Tolerance geom.Tolerance  `json:"tolerance"`
	Errors    []EvalErrorData `json:"errors"`
	Warnings  []EvalErrorData `json:"warnings"`
}

// NewApp creates an App from cfg. A nil logger discards output.
func NewApp(cfg config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	tol := cfg.Tolerance()
	return &App{
		cfg: cfg,
		log: log,
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.Engine.Timeout),
			engine.WithTolerance(tol),
			engine.WithLogger(log.Named("engine")),
		),
		runner: query.NewRunner(tol),
		kernel: sdfx.New(),
	}
}

// Evaluate runs a script and returns its shapes and query results.
// Validation warnings on the resulting scene are reported alongside.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Shapes:    []*scene.Shape{},
		Results:   []query.Result{},
		Tolerance: a.runner.Tolerance(),
		Errors:    []EvalErrorData{},
		Warnings:  []EvalErrorData{},
	}

	rep, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	result.Shapes = append(result.Shapes, rep.Scene.List()...)
	result.Results = append(result.Results, rep.Results...)
	result.Tolerance = rep.Tolerance

	vr := scene.ValidateAll(rep.Scene)
	for _, e := range vr.Errors {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: e.Error()})
	}
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.String()})
	}
	return result
}

// LoadScene reads a scene file.
func (a *App) LoadScene(path string) (*scene.Scene, error) {
	sc, err := scene.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("scene loaded", zap.String("path", path), zap.Int("shapes", sc.Len()))
	return sc, nil
}

// Validate runs every validation tier over sc.
func (a *App) Validate(sc *scene.Scene) scene.ValidationResult {
	return scene.ValidateAll(sc)
}

// Sweep classifies every pair of sc. Scenes with validation errors from
// any tier are rejected; warnings do not block.
func (a *App) Sweep(ctx context.Context, sc *scene.Scene, touchingOnly bool) (*sweep.Summary, error) {
	if vr := scene.ValidateAll(sc); !vr.OK() {
		return nil, fmt.Errorf("invalid scene (%d errors): %w", len(vr.Errors), vr.Errors[0])
	}
	return sweep.Run(ctx, sc, a.runner, sweep.Options{
		Workers:      a.cfg.Sweep.Workers,
		TouchingOnly: touchingOnly,
		Log:          a.log.Named("sweep"),
	})
}

// Mesh tessellates the round shapes of sc, one mesh per shape, or a
// single union mesh when merged is set.
func (a *App) Mesh(sc *scene.Scene, merged bool) ([]MeshData, error) {
	var meshes []*kernel.Mesh
	if merged {
		m, err := tessellate.Merged(sc, a.kernel, "scene")
		if err != nil {
			return nil, err
		}
		if m != nil {
			meshes = append(meshes, m)
		}
	} else {
		var err error
		if meshes, err = tessellate.Tessellate(sc, a.kernel); err != nil {
			return nil, err
		}
	}

	out := []MeshData{}
	for i, m := range meshes {
		out = append(out, MeshData{
			Vertices:  m.Vertices,
			Normals:   m.Normals,
			Indices:   m.Indices,
			ShapeName: m.ShapeName,
			Color:     colorPalette[i%len(colorPalette)],
		})
	}
	a.log.Debug("meshed scene", zap.Int("meshes", len(out)))
	return out, nil
}
