package commands

import (
	"log"

	"tableflip.dev/kammi/pkg/app"
)

// loadService wires the service from the config file and environment. CLI
// diagnostics go to stderr through the standard logger.
func loadService() (*app.Service, error) {
	return app.New(nil, log.Default())
}
