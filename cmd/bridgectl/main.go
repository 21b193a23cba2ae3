package main

import (
	"fmt"
	"os"

	"github.com/cellbridge/bridged/domain/bridge"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
	"github.com/cellbridge/bridged/infrastructure/logger"
	"github.com/cellbridge/bridged/util/panics"
	"github.com/cellbridge/bridged/version"
)

// exitCodeHostContract is reported when the host breaks its contract and
// a validator panics.
const exitCodeHostContract = -2

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		printErrorAndExit(fmt.Sprintf("error parsing command-line arguments: %s", err))
	}
	if cfg.ShowVersion {
		fmt.Printf("bridgectl version %s\n", version.Version())
		os.Exit(0)
	}

	if cfg.LogLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	cfg.initLog()
	defer panics.HandlePanic(log, exitStatus(exitCodeHostContract))

	code, err := run(cfg)
	if err != nil {
		panics.Exit(log, err.Error(), 1)
	}
	log.Backend().Close()
	os.Exit(exitStatus(code))
}

// run validates the fixture of cfg and returns the validator's exit code.
func run(cfg *configFlags) (int8, error) {
	transaction, err := loadFixture(cfg.Fixture)
	if err != nil {
		return 0, err
	}
	script, err := runningScript(transaction, cfg.ScriptSource, cfg.ScriptIndex, cfg.ScriptField)
	if err != nil {
		return 0, err
	}
	log.Infof("Running the %s validator of %s[%d].%s on deployment %s", cfg.kind,
		cfg.ScriptSource, cfg.ScriptIndex, cfg.ScriptField, cfg.Params().Name)

	err = bridge.Run(cfg.kind, txhost.New(transaction, script), cfg.Params())
	code := bridge.ExitCode(err)
	if err != nil {
		log.Infof("Rejected with exit code %d: %s", code, err)
		return code, nil
	}
	log.Infof("Accepted")
	return code, nil
}

// exitStatus maps a validator exit code onto a process exit status the way
// the ledger reports it: as an unsigned byte.
func exitStatus(code int8) int {
	return int(uint8(code))
}

func printErrorAndExit(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(1)
}
