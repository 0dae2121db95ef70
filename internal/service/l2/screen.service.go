package l2_service

import (
	"fmt"
	"math"

	"marketmap/internal/domain"

	"github.com/maja42/goval"
)

// ScreenService evaluates a user-supplied boolean expression against an
// aggregate, e.g. "absMean > 0.5 && count >= 2". Used to narrow movers
// requests; an expression that doesn't evaluate to a bool is the caller's
// error, not a skip.
type ScreenService interface {
	Matches(expression string, aggregate domain.Aggregate) (bool, error)
	Validate(expression string) error
}

func NewScreenService() ScreenService {
	return screenServiceHandler{}
}

type screenServiceHandler struct{}

func screenFunctions() map[string]goval.ExpressionFunction {
	return map[string]goval.ExpressionFunction{
		"abs": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("abs expects 1 argument, got %d", len(args))
			}
			v, ok := args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("abs expects a number")
			}
			return math.Abs(v), nil
		},
	}
}

func (h screenServiceHandler) Matches(expression string, aggregate domain.Aggregate) (bool, error) {
	eval := goval.NewEvaluator()
	variables := map[string]interface{}{
		"mean":     aggregate.Mean,
		"absMean":  aggregate.AbsMean(),
		"sum":      aggregate.Sum,
		"count":    aggregate.Count,
		"code":     aggregate.Code,
		"category": string(aggregate.Category),
	}

	result, err := eval.Evaluate(expression, variables, screenFunctions())
	if err != nil {
		return false, fmt.Errorf("failed to evaluate screen expression: %w", err)
	}

	matches, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("screen expression must evaluate to a boolean, got %T", result)
	}

	return matches, nil
}

func (h screenServiceHandler) Validate(expression string) error {
	_, err := h.Matches(expression, domain.Aggregate{})
	return err
}
