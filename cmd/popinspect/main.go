package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kaspanet/popd/infrastructure/config"
	"github.com/kaspanet/popd/infrastructure/logger"
	"github.com/kaspanet/popd/util/panics"
)

func main() {
	defer panics.HandlePanic(log, nil)

	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}
	initLog(cfg.LogFile, cfg.ErrLogFile)

	err = run(cfg, args, os.Stdout)
	logger.BackendLog.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// run executes the command named by the first argument, summary by default
func run(cfg *config.Config, args []string, out io.Writer) error {
	command := "summary"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	handler, ok := commands[command]
	if !ok {
		return unknownCommandError(command)
	}

	i, err := openInspector(cfg)
	if err != nil {
		return err
	}
	defer i.close()

	log.Debugf("Running %s on %s", command, cfg.NetParams().Name)
	return handler(i, args, out)
}
