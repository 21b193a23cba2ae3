package main

import (
	"path/filepath"

	"github.com/cellbridge/bridged/domain/bridge"
	"github.com/cellbridge/bridged/infrastructure/config"
	"github.com/cellbridge/bridged/infrastructure/logger"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultLogFilename    = "bridgectl.log"
	defaultErrLogFilename = "bridgectl_err.log"
)

var (
	defaultScriptSource = "output"
	defaultScriptField  = "type"
	defaultLogLevel     = "info"
)

type configFlags struct {
	Validator    string `short:"k" long:"validator" description:"The validator to run" choice:"config" choice:"governance" choice:"tick" choice:"token"`
	Fixture      string `short:"f" long:"fixture" description:"Path to the TOML transaction fixture"`
	ScriptSource string `long:"script-source" description:"The source of the cell carrying the running script" choice:"input" choice:"output" choice:"cell_dep"`
	ScriptIndex  int    `long:"script-index" description:"The index of the cell carrying the running script"`
	ScriptField  string `long:"script-field" description:"Which script of that cell is running" choice:"lock" choice:"type"`
	ShowVersion  bool   `short:"V" long:"version" description:"Display version information and exit"`
	LogDir       string `long:"logdir" description:"Directory to write rotated log files to, in addition to stdout"`
	LogLevel     string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	config.DeploymentFlags

	kind bridge.Kind
}

func parseConfig(args []string) (*configFlags, error) {
	cfg := &configFlags{
		ScriptSource: defaultScriptSource,
		ScriptField:  defaultScriptField,
		LogLevel:     defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.HelpFlag)
	parser.Usage = "bridgectl [OPTIONS]\n\nRuns one bridge validator over a transaction fixture and exits " +
		"with the validator's exit code"
	_, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	if cfg.ShowVersion || cfg.LogLevel == "show" {
		return cfg, nil
	}
	if cfg.Validator == "" || cfg.Fixture == "" {
		return nil, errors.New("both --validator and --fixture must be specified")
	}

	err = cfg.ResolveDeployment(parser)
	if err != nil {
		return nil, err
	}

	cfg.kind, err = bridge.ParseKind(cfg.Validator)
	if err != nil {
		return nil, err
	}
	if cfg.ScriptIndex < 0 {
		return nil, errors.Errorf("script-index must not be negative, got %d", cfg.ScriptIndex)
	}
	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cfg.LogDir != "" {
		cfg.LogDir = filepath.Join(filepath.Clean(cfg.LogDir), cfg.Params().Name)
	}

	return cfg, nil
}

// initLog starts the logger backend, adding rotated log files under the
// log directory when one is configured.
func (cfg *configFlags) initLog() {
	if cfg.LogDir == "" {
		logger.InitLogStdout(logger.LevelTrace)
		return
	}
	logger.InitLog(filepath.Join(cfg.LogDir, defaultLogFilename),
		filepath.Join(cfg.LogDir, defaultErrLogFilename))
}
