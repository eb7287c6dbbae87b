package endorsementvalidator

import (
	"github.com/kaspanet/popd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("POPV")
