package tokenvalidator

import (
	"bytes"
	"testing"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/processes/cellindexer"
	"github.com/cellbridge/bridged/domain/bridge/processes/configregistry"
	"github.com/cellbridge/bridged/domain/bridge/processes/permissionverifier"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
	"github.com/cellbridge/bridged/domain/bridge/utils/testutils"
	"github.com/pkg/errors"
)

func validate(fixture *testutils.Fixture, script *externalapi.Script,
	cellDeps, inputs, outputs []*txhost.Cell) error {

	builder := testutils.NewTransactionBuilder()
	for _, cellDep := range cellDeps {
		builder.AddCellDep(cellDep)
	}
	for _, input := range inputs {
		builder.AddInput(input)
	}
	for _, output := range outputs {
		builder.AddOutput(output)
	}

	host := fixture.Host(builder.Build(), script)
	cellIndexer := cellindexer.New(host)
	configRegistry := configregistry.New(host, cellIndexer, fixture.Params.ConfigCellTypeID)
	validator := New(host,
		cellIndexer,
		configRegistry,
		permissionverifier.New(host, cellIndexer, configRegistry, fixture.Params))
	return validator.Validate()
}

func cells(cells ...*txhost.Cell) []*txhost.Cell {
	return cells
}

func TestTokenValidator(t *testing.T) {
	fixture := testutils.NewFixture()
	script := fixture.TokenType(fixture.TokenID)
	alice, bob := fixture.MerchantLocks[0], fixture.MerchantLocks[1]
	governed := cells(fixture.ConfigCell(), fixture.CustodianCell())
	custodian := testutils.CapacityCell(fixture.CustodianLock)
	otherToken := testutils.HashFromSeed(0x32).ByteSlice()

	impostorLock := externalapi.NewScript(&fixture.Config.OmniLockTypeID, externalapi.HashTypeType,
		bytes.Repeat([]byte{0x42}, len(fixture.CustodianLockArgs)))

	tests := []struct {
		name        string
		cellDeps    []*txhost.Cell
		inputs      []*txhost.Cell
		outputs     []*txhost.Cell
		expectedErr error
	}{
		{"transfer", nil, cells(fixture.TokenCell(alice, 1000)),
			cells(fixture.TokenCell(bob, 600), fixture.TokenCell(alice, 400)), nil},
		{"transfer next to another token", nil,
			cells(fixture.TokenCell(alice, 1000), fixture.TokenCellOf(otherToken, alice, 7)),
			cells(fixture.TokenCell(bob, 1000)), nil},
		{"mint", governed, cells(custodian), cells(fixture.TokenCell(alice, 1000)), nil},
		{"burn", governed, cells(fixture.TokenCell(alice, 1000), custodian), cells(fixture.TokenCell(alice, 200)), nil},
		{"mint without governance", cells(fixture.ConfigCell()), cells(custodian),
			cells(fixture.TokenCell(alice, 1000)), ruleerrors.ErrGovernanceCellNumber},
		{"mint with two governance cells", cells(fixture.ConfigCell(), fixture.CustodianCell(), fixture.MerchantCell()),
			cells(custodian), cells(fixture.TokenCell(alice, 1000)), ruleerrors.ErrGovernanceCellNumber},
		{"mint under merchant governance", cells(fixture.ConfigCell(), fixture.MerchantCell()),
			cells(custodian), cells(fixture.TokenCell(alice, 1000)), ruleerrors.ErrGovernanceCellLockMismatch},
		{"mint without an omni lock", governed, cells(testutils.CapacityCell(fixture.Params.OwnerLock)),
			cells(fixture.TokenCell(alice, 1000)), ruleerrors.ErrOmniLockCellNumber},
		{"mint by an impostor", governed, cells(testutils.CapacityCell(impostorLock)),
			cells(fixture.TokenCell(alice, 1000)), ruleerrors.ErrUnauthorizedGovernanceMember},
		{"burn by the holder", governed, cells(fixture.TokenCell(alice, 1000)), cells(fixture.TokenCell(alice, 999)),
			ruleerrors.ErrOmniLockCellNumber},
	}
	for _, test := range tests {
		err := validate(fixture, script, test.cellDeps, test.inputs, test.outputs)
		if test.expectedErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error %s", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.expectedErr) {
			t.Fatalf("%s: expected %s, got %v", test.name, test.expectedErr, err)
		}
		if ruleerrors.ExitCode(err) != ruleerrors.ErrOwnerModeRequired.Code() {
			t.Fatalf("%s: expected exit code %d, got %d", test.name,
				ruleerrors.ErrOwnerModeRequired.Code(), ruleerrors.ExitCode(err))
		}
	}
}

func TestTokenValidatorTokenID(t *testing.T) {
	fixture := testutils.NewFixture()
	short := fixture.TokenID[:31]
	err := validate(fixture, fixture.TokenType(short), nil,
		cells(fixture.TokenCellOf(short, fixture.MerchantLocks[0], 1)),
		cells(fixture.TokenCellOf(short, fixture.MerchantLocks[1], 1)))
	if !errors.Is(err, ruleerrors.ErrTokenIDSize) {
		t.Fatalf("expected ErrTokenIDSize, got %v", err)
	}
}
