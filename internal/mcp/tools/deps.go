// Package tools contains the MCP tool implementations.
package tools

import (
	"taskclass/internal/classify"
	"taskclass/internal/config"
	"taskclass/pkg/ollama"
)

// Deps contains all dependencies needed by tool handlers. Built once at
// startup and read-only afterwards.
type Deps struct {
	Classifier *classify.Classifier
	Ollama     *ollama.Client
	Config     *config.Config
}
