package deployment

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func TestUnconfiguredDeploymentsAreRejected(t *testing.T) {
	tests := []struct {
		name   string
		params func() (*Params, error)
	}{
		{"mainnet", MainnetParams},
		{"testnet", TestnetParams},
	}
	for _, test := range tests {
		params, err := test.params()
		if !errors.Is(err, ErrDeploymentNotConfigured) {
			t.Fatalf("%s: expected ErrDeploymentNotConfigured, got %v", test.name, err)
		}
		if params != nil {
			t.Fatalf("%s: expected no parameters, got %+v", test.name, params)
		}
	}
}

func TestBuildParams(t *testing.T) {
	const typeID = "0x2222222222222222222222222222222222222222222222222222222222222222"
	tests := []struct {
		name             string
		ownerLockArgs    string
		deployLockArgs   string
		configCellTypeID string
		expectsUnset     bool
		expectsError     bool
	}{
		{name: "complete", ownerLockArgs: "0xaa01", deployLockArgs: "bb02", configCellTypeID: typeID},
		{name: "missing owner args", deployLockArgs: "bb02", configCellTypeID: typeID, expectsUnset: true, expectsError: true},
		{name: "missing type id", ownerLockArgs: "0xaa01", deployLockArgs: "bb02", expectsUnset: true, expectsError: true},
		{name: "odd args", ownerLockArgs: "0xaa0", deployLockArgs: "bb02", configCellTypeID: typeID, expectsError: true},
		{name: "short type id", ownerLockArgs: "0xaa01", deployLockArgs: "bb02", configCellTypeID: "0x22", expectsError: true},
	}
	for _, test := range tests {
		params, err := buildParams("mainnet", test.ownerLockArgs, test.deployLockArgs, test.configCellTypeID)
		if test.expectsError {
			if err == nil {
				t.Fatalf("%s: expected an error", test.name)
			}
			if errors.Is(err, ErrDeploymentNotConfigured) != test.expectsUnset {
				t.Fatalf("%s: unexpected error %v", test.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: buildParams: %s", test.name, err)
		}
		if params.Name != "mainnet" || !params.OwnerLock.CodeHash.Equal(secp256k1Blake160) {
			t.Fatalf("%s: unexpected parameters %+v", test.name, params)
		}
		if !bytes.Equal(params.OwnerLock.Args, []byte{0xaa, 0x01}) ||
			!bytes.Equal(params.DeployLock.Args, []byte{0xbb, 0x02}) {
			t.Fatalf("%s: unexpected lock args %x, %x", test.name, params.OwnerLock.Args, params.DeployLock.Args)
		}
		if params.ConfigCellTypeID.String() != typeID[2:] {
			t.Fatalf("%s: unexpected config cell type id %s", test.name, params.ConfigCellTypeID)
		}
	}
}

func TestMainnetParamsFromBuildValues(t *testing.T) {
	defer func(ownerLockArgs, deployLockArgs, configCellTypeID string) {
		mainnetOwnerLockArgs, mainnetDeployLockArgs, mainnetConfigCellTypeID =
			ownerLockArgs, deployLockArgs, configCellTypeID
	}(mainnetOwnerLockArgs, mainnetDeployLockArgs, mainnetConfigCellTypeID)

	mainnetOwnerLockArgs = "0x01"
	mainnetDeployLockArgs = "0x02"
	mainnetConfigCellTypeID = "0303030303030303030303030303030303030303030303030303030303030303"
	params, err := MainnetParams()
	if err != nil {
		t.Fatalf("MainnetParams: %s", err)
	}
	if !bytes.Equal(params.OwnerLock.Args, []byte{0x01}) || !bytes.Equal(params.DeployLock.Args, []byte{0x02}) {
		t.Fatalf("unexpected parameters %+v", params)
	}
	if clone := params.Clone(); !clone.ConfigCellTypeID.Equal(params.ConfigCellTypeID) {
		t.Fatalf("Clone changed the config cell type id")
	}
}
