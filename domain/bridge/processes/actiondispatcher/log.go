package actiondispatcher

import (
	"github.com/cellbridge/bridged/infrastructure/logger"
)

var log = logger.RegisterSubSystem("ACTN")
