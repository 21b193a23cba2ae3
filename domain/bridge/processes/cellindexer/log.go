package cellindexer

import (
	"github.com/cellbridge/bridged/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CIDX")
