package deployment

import (
	"encoding/hex"
	"strings"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/pkg/errors"
)

// Params defines the constants a deployment of the bridge validators is
// built with.
type Params struct {
	// Name defines a human-readable identifier for the deployment.
	Name string

	// OwnerLock authorizes administrative actions: config updates,
	// governance initialization and custodian rotation.
	OwnerLock *externalapi.Script

	// DeployLock is the lock the validators' code cells are deployed with.
	DeployLock *externalapi.Script

	// ConfigCellTypeID is the type id of the config cell.
	ConfigCellTypeID *externalapi.DomainHash
}

// Clone returns a deep copy of params.
func (params *Params) Clone() *Params {
	configCellTypeID := *params.ConfigCellTypeID
	return &Params{
		Name:             params.Name,
		OwnerLock:        params.OwnerLock.Clone(),
		DeployLock:       params.DeployLock.Clone(),
		ConfigCellTypeID: &configCellTypeID,
	}
}

// secp256k1Blake160 is the type hash of the default single signature lock.
var secp256k1Blake160 = mustHash("9bd7e06f3ecf4be0f2fcd2188b23f1b9fcc88e5d4b65a8637b17723bbda3cce8")

// The mainnet and testnet deployments are fixed when building, for example with
// '-ldflags "-X github.com/cellbridge/bridged/domain/bridge/deployment.mainnetOwnerLockArgs=0x..."'.
// Lock args are hex encoded and type ids are hex encoded 32 byte hashes.
var (
	mainnetOwnerLockArgs    string
	mainnetDeployLockArgs   string
	mainnetConfigCellTypeID string
	testnetOwnerLockArgs    string
	testnetDeployLockArgs   string
	testnetConfigCellTypeID string
)

// ErrDeploymentNotConfigured is returned when a deployment whose constants
// are set at build time is requested from a build that didn't set them.
var ErrDeploymentNotConfigured = errors.New("deployment is not configured in this build")

// MainnetParams returns the parameters of the main network deployment.
func MainnetParams() (*Params, error) {
	return buildParams("mainnet", mainnetOwnerLockArgs, mainnetDeployLockArgs, mainnetConfigCellTypeID)
}

// TestnetParams returns the parameters of the test network deployment.
func TestnetParams() (*Params, error) {
	return buildParams("testnet", testnetOwnerLockArgs, testnetDeployLockArgs, testnetConfigCellTypeID)
}

func buildParams(name, ownerLockArgs, deployLockArgs, configCellTypeID string) (*Params, error) {
	values := []struct {
		variable string
		value    string
	}{
		{"OwnerLockArgs", ownerLockArgs},
		{"DeployLockArgs", deployLockArgs},
		{"ConfigCellTypeID", configCellTypeID},
	}
	for _, value := range values {
		if value.value == "" {
			return nil, errors.Wrapf(ErrDeploymentNotConfigured, "%s: %s%s is not set",
				name, name, value.variable)
		}
	}

	ownerArgs, err := hex.DecodeString(strings.TrimPrefix(ownerLockArgs, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: invalid owner lock args", name)
	}
	deployArgs, err := hex.DecodeString(strings.TrimPrefix(deployLockArgs, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: invalid deploy lock args", name)
	}
	typeID, err := externalapi.NewDomainHashFromString(strings.TrimPrefix(configCellTypeID, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: invalid config cell type id", name)
	}

	return &Params{
		Name: name,
		OwnerLock: &externalapi.Script{
			CodeHash: *secp256k1Blake160,
			HashType: externalapi.HashTypeType,
			Args:     ownerArgs,
		},
		DeployLock: &externalapi.Script{
			CodeHash: *secp256k1Blake160,
			HashType: externalapi.HashTypeType,
			Args:     deployArgs,
		},
		ConfigCellTypeID: typeID,
	}, nil
}

// DevnetParams defines the parameters of a local development deployment.
var DevnetParams = Params{
	Name: "devnet",
	OwnerLock: &externalapi.Script{
		CodeHash: *secp256k1Blake160,
		HashType: externalapi.HashTypeType,
		Args:     mustBytes("0x0000000000000000000000000000000000000001"),
	},
	DeployLock: &externalapi.Script{
		CodeHash: *secp256k1Blake160,
		HashType: externalapi.HashTypeType,
		Args:     mustBytes("0x0000000000000000000000000000000000000002"),
	},
	ConfigCellTypeID: mustHash("00000000000000000000000000000000000000000000000000000000000000c0"),
}

func mustHash(hashString string) *externalapi.DomainHash {
	hash, err := externalapi.NewDomainHashFromString(strings.TrimPrefix(hashString, "0x"))
	if err != nil {
		panic(err)
	}
	return hash
}

func mustBytes(hexString string) []byte {
	decoded, err := hex.DecodeString(strings.TrimPrefix(hexString, "0x"))
	if err != nil {
		panic(err)
	}
	return decoded
}
