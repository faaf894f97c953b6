package watersort

import "github.com/SeamusWaldron/watersort/internal/solver"

// Option configures Solve.
type Option func(*config)

type config struct {
	alpha      float64
	budget     int
	onProgress func(Progress)
}

func defaultConfig() *config {
	return &config{
		alpha:  solver.DefaultAlpha,
		budget: solver.DefaultBudget,
	}
}

// WithAlpha sets the weight of disorder against path length, in [0, 1].
// Higher values favour states that look closer to sorted; lower values
// favour shorter solutions. The default is 0.65.
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithBudget sets how many states may be expanded before the search gives
// up with OutcomeBudgetExceeded. The default is 5000.
func WithBudget(budget int) Option {
	return func(c *config) {
		c.budget = budget
	}
}

// WithProgress registers a callback invoked after each expansion.
func WithProgress(fn func(Progress)) Option {
	return func(c *config) {
		c.onProgress = fn
	}
}
