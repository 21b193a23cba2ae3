package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/cellbridge/bridged/domain/bridge/deployment"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// DeploymentFlags holds the deployment configuration, that is which parameter
// set is selected and which of its constants are overridden.
type DeploymentFlags struct {
	Testnet bool `long:"testnet" description:"Use the test network deployment"`
	Devnet  bool `long:"devnet" description:"Use the development deployment"`

	OwnerLockCodeHash string `long:"owner-lock-code-hash" description:"Overrides the code hash of the owner lock (allowed only on devnet)"`
	OwnerLockArgs     string `long:"owner-lock-args" description:"Overrides the args of the owner lock, hex encoded (allowed only on devnet)"`
	ConfigCellTypeID  string `long:"config-cell-type-id" description:"Overrides the type id of the config cell (allowed only on devnet)"`

	ActiveParams *deployment.Params
}

// ResolveDeployment parses the deployment command line arguments and sets
// ActiveParams accordingly. It returns an error if more than one deployment
// was selected, the selected deployment isn't configured in this build, or
// an override is malformed.
func (deploymentFlags *DeploymentFlags) ResolveDeployment(parser *flags.Parser) error {
	numDeployments := 0
	if deploymentFlags.Testnet {
		numDeployments++
	}
	if deploymentFlags.Devnet {
		numDeployments++
	}
	if numDeployments > 1 {
		message := "Multiple deployments (testnet, devnet) cannot be used " +
			"together. Please choose only one deployment"
		err := errors.Errorf(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	// Default deployment is mainnet
	var err error
	switch {
	case deploymentFlags.Testnet:
		deploymentFlags.ActiveParams, err = deployment.TestnetParams()
	case deploymentFlags.Devnet:
		deploymentFlags.ActiveParams = deployment.DevnetParams.Clone()
	default:
		deploymentFlags.ActiveParams, err = deployment.MainnetParams()
	}
	if err != nil {
		return err
	}

	return deploymentFlags.overrideParams()
}

// Params returns the ActiveParams
func (deploymentFlags *DeploymentFlags) Params() *deployment.Params {
	return deploymentFlags.ActiveParams
}

func (deploymentFlags *DeploymentFlags) overrideParams() error {
	if deploymentFlags.OwnerLockCodeHash == "" && deploymentFlags.OwnerLockArgs == "" &&
		deploymentFlags.ConfigCellTypeID == "" {
		return nil
	}

	if !deploymentFlags.Devnet {
		return errors.Errorf("deployment overrides are allowed only when using devnet")
	}

	params := deploymentFlags.ActiveParams
	if deploymentFlags.OwnerLockCodeHash != "" {
		codeHash, err := parseHash(deploymentFlags.OwnerLockCodeHash)
		if err != nil {
			return errors.Wrapf(err, "invalid owner-lock-code-hash")
		}
		params.OwnerLock.CodeHash = *codeHash
	}
	if deploymentFlags.OwnerLockArgs != "" {
		args, err := hex.DecodeString(strings.TrimPrefix(deploymentFlags.OwnerLockArgs, "0x"))
		if err != nil {
			return errors.Wrapf(err, "invalid owner-lock-args")
		}
		params.OwnerLock.Args = args
	}
	if deploymentFlags.ConfigCellTypeID != "" {
		configCellTypeID, err := parseHash(deploymentFlags.ConfigCellTypeID)
		if err != nil {
			return errors.Wrapf(err, "invalid config-cell-type-id")
		}
		params.ConfigCellTypeID = configCellTypeID
	}
	return nil
}

func parseHash(hashString string) (*externalapi.DomainHash, error) {
	return externalapi.NewDomainHashFromString(strings.TrimPrefix(hashString, "0x"))
}
