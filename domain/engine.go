package domain

import (
	"github.com/coder/quartz"
	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/hands"
)

// Engine applies table rules. It holds no table state of its own, so one
// engine serves every table.
type Engine struct {
	picker    cards.Picker
	evaluator hands.Evaluator
	bank      Bank
	clock     quartz.Clock
}

type Option func(*Engine)

func WithPicker(p cards.Picker) Option {
	return func(e *Engine) { e.picker = p }
}

func WithEvaluator(ev hands.Evaluator) Option {
	return func(e *Engine) { e.evaluator = ev }
}

func WithClock(c quartz.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func NewEngine(bank Bank, opts ...Option) *Engine {
	e := &Engine{
		picker:    cards.RandomPicker(),
		evaluator: hands.NewEvaluator(),
		bank:      bank,
		clock:     quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
