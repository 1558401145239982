package cli

import (
	"go.uber.org/zap"

	"github.com/autoprov/autoprov/internal/graph"
)

var (
	apiClient *graph.Client
	logger    = zap.NewNop()
)

// SetAPIClient wires the management client used by the commands in this
// package.
func SetAPIClient(client *graph.Client) {
	apiClient = client
}

// SetLogger wires the logger used by the commands in this package.
func SetLogger(log *zap.Logger) {
	if log != nil {
		logger = log
	}
}
