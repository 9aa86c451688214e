package dice

import "go.uber.org/zap"

// Roller pairs a Source with a logger. Every percentile and damage roll it
// makes is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollPercentile rolls d100.
//
// Postcondition: Returns a value in [1, 100].
func (r *Roller) RollPercentile() int {
	total := RollPercentile(r.src)
	tens, units := Digits(total)
	r.logger.Debug("percentile roll",
		zap.Int("tens", tens),
		zap.Int("units", units),
		zap.Int("total", total),
	)
	return total
}

// Roll evaluates a damage expression.
func (r *Roller) Roll(expr Expression) Result {
	res := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", res.Expression),
		zap.Ints("kept", res.Kept),
		zap.Ints("dropped", res.Dropped),
		zap.Int("total", res.Total()),
	)
	return res
}

// RollExpr parses and rolls expr.
//
// Postcondition: Returns a Result or a parse error.
func (r *Roller) RollExpr(expr string) (Result, error) {
	e, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	return r.Roll(e), nil
}
