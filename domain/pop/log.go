package pop

import (
	"github.com/kaspanet/popd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("POPE")
