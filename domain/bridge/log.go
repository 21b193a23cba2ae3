package bridge

import (
	"github.com/cellbridge/bridged/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BRDG")
