package misbehaviortracker

import (
	"github.com/kaspanet/popd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("MSBH")
