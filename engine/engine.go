package engine

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"

	"github.com/muesli/termenv"
)

type Engine interface {
	// Run plays the game till there's a winner or the turn cap is reached
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Observer is notified with the game after every change of position.
type Observer func(g *game.Game)

type Option func(o *options)

type options struct {
	maxTurns  int
	observers []Observer
	profile   termenv.Profile
}

func defaultOptions() options {
	return options{
		maxTurns: meta.MaxTurns,
		profile:  termenv.Ascii,
	}
}

// WithMaxTurns caps the number of automated turns.
func WithMaxTurns(turns int) Option {
	return func(o *options) {
		if turns > 0 {
			o.maxTurns = turns
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}

// WithColorProfile sets the color profile of the console board.
func WithColorProfile(profile termenv.Profile) Option {
	return func(o *options) {
		o.profile = profile
	}
}

func (o *options) notify(g *game.Game) {
	for _, observer := range o.observers {
		observer(g)
	}
}
