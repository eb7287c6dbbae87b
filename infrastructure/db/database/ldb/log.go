package ldb

import (
	"github.com/kaspanet/popd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("KSDB")
