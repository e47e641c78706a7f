package pipeline

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ClassifyNode returns a state node that runs the model extraction for the
// note content in the state bag. The classifier is total, so the node never
// fails on note content; it stores whatever result the classifier produced,
// fallback included.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		contentVal, ok := s.Get(KeyNoteContent)
		if !ok {
			return s, fmt.Errorf("classify: missing %s in state", KeyNoteContent)
		}

		noteContent, ok := contentVal.(string)
		if !ok {
			return s, fmt.Errorf("classify: %s is not string", KeyNoteContent)
		}

		result := rt.Classifier.Classify(ctx, noteContent)

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"category", result.Category,
			"confidence", result.Confidence,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}
