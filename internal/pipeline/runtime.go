package pipeline

import (
	"log/slog"

	"github.com/verdantapp/verdant/internal/classifier"
)

// Runtime bundles the dependencies that pipeline nodes require.
// It is constructed by higher-level composition code from the classifier
// system and a scoped logger.
type Runtime struct {
	Classifier classifier.System
	Logger     *slog.Logger
}
