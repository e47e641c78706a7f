package pipeline

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/verdantapp/verdant/internal/classifier"
	"github.com/verdantapp/verdant/internal/formulas"
)

// Execute runs the impact pipeline for a single note. It builds the state
// graph (classify, then calculate), executes it, and extracts the Outcome
// from the final state. The classifier absorbs model failures into its
// fallback result, so an error here indicates graph plumbing rather than
// note content.
func Execute(ctx context.Context, rt *Runtime, noteContent string) (*Outcome, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyNoteContent, noteContent)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractOutcome(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("verdant-impact")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("calculate", CalculateNode(rt)); err != nil {
		return nil, err
	}

	// classify → calculate (unconditional)
	if err := graph.AddEdge("classify", "calculate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("calculate"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractOutcome(s state.State) (*Outcome, error) {
	resultVal, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := resultVal.(classifier.Result)
	if !ok {
		return nil, fmt.Errorf("%s is not classifier.Result", KeyResult)
	}

	estimateVal, ok := s.Get(KeyEstimate)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyEstimate)
	}

	estimate, ok := estimateVal.(formulas.Estimate)
	if !ok {
		return nil, fmt.Errorf("%s is not formulas.Estimate", KeyEstimate)
	}

	return &Outcome{
		Result:      result,
		Estimate:    estimate,
		NeedsReview: RequiresReview(result.Confidence),
	}, nil
}
