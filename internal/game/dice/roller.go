package dice

import "go.uber.org/zap"

// Roller rolls expressions from a Source and logs each roll at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates e and logs the result.
func (r *Roller) Roll(e Expression) Result {
	result := Roll(e, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", e.String()),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", e.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it.
//
// Postcondition: Returns a Result or a parse error.
func (r *Roller) RollExpr(expr string) (Result, error) {
	e, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	return r.Roll(e), nil
}
