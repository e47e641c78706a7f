package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/verdantapp/verdant/internal/classifier"
	"github.com/verdantapp/verdant/internal/formulas"
)

// CalculateNode returns a state node that converts the classification result
// in the state bag into an impact estimate via the formula table.
func CalculateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		resultVal, ok := s.Get(KeyResult)
		if !ok {
			return s, fmt.Errorf("calculate: missing %s in state", KeyResult)
		}

		result, ok := resultVal.(classifier.Result)
		if !ok {
			return s, fmt.Errorf("calculate: %s is not classifier.Result", KeyResult)
		}

		estimate := formulas.Calculate(result)

		rt.Logger.InfoContext(
			ctx, "calculate node complete",
			"formula_id", estimate.FormulaID,
		)

		s = s.Set(KeyEstimate, estimate)
		return s, nil
	})
}
