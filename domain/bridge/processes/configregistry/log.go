package configregistry

import (
	"github.com/cellbridge/bridged/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CREG")
