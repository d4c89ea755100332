package deco

import (
	"github.com/katalvlaran/decoplan/tissue"
	"go.uber.org/zap"
)

// Engine runs decompression calculations with a fixed set of Options.
// It holds no per-dive state.
type Engine struct {
	opts  Options
	table [tissue.Compartments]tissue.Compartment
	log   *zap.Logger
}

// New validates opts and returns an Engine.
func New(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{opts: opts, table: tissue.Table(), log: log}, nil
}

// Default returns an Engine built from DefaultOptions.
func Default() *Engine {
	e, err := New(DefaultOptions())
	if err != nil {
		panic(err)
	}

	return e
}

// Options returns the engine's options.
func (e *Engine) Options() Options { return e.opts }
