package reorgexecutor

import (
	"github.com/kaspanet/popd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("REOR")
