package configvalidator

import (
	"testing"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/processes/actiondispatcher"
	"github.com/cellbridge/bridged/domain/bridge/processes/cellindexer"
	"github.com/cellbridge/bridged/domain/bridge/processes/configregistry"
	"github.com/cellbridge/bridged/domain/bridge/processes/consistencyverifier"
	"github.com/cellbridge/bridged/domain/bridge/processes/permissionverifier"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/domain/bridge/utils/testutils"
	"github.com/pkg/errors"
)

func validate(fixture *testutils.Fixture, transaction *txhost.Transaction, script *externalapi.Script) error {
	host := fixture.Host(transaction, script)
	cellIndexer := cellindexer.New(host)
	configRegistry := configregistry.New(host, cellIndexer, fixture.Params.ConfigCellTypeID)
	validator := New(host,
		cellIndexer,
		consistencyverifier.New(host),
		permissionverifier.New(host, cellIndexer, configRegistry, fixture.Params),
		actiondispatcher.New(host, cellIndexer),
		fixture.Params)
	return validator.Validate()
}

func TestConfigValidator(t *testing.T) {
	fixture := testutils.NewFixture()
	owner := testutils.CapacityCell(fixture.Params.OwnerLock)
	stranger := testutils.CapacityCell(fixture.MerchantLocks[0])

	strangerLockedConfig := fixture.ConfigCell()
	strangerLockedConfig.Output.Lock = fixture.MerchantLocks[0].Clone()

	haltedConfig := *fixture.Config
	haltedConfig.SystemStatus = externalapi.SystemStatusOff

	tests := []struct {
		name        string
		action      externalapi.Action
		inputs      []*txhost.Cell
		outputs     []*txhost.Cell
		expectedErr error
	}{
		{"deploy", externalapi.ActionDeployConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{fixture.ConfigCell()}, nil},
		{"deploy with change", externalapi.ActionDeployConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{fixture.ConfigCell(), owner}, nil},
		{"deploy by a stranger", externalapi.ActionDeployConfig,
			[]*txhost.Cell{stranger}, []*txhost.Cell{fixture.ConfigCell()}, ruleerrors.ErrOwnerLockIsRequired},
		{"deploy at outputs[1]", externalapi.ActionDeployConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{owner, fixture.ConfigCell()}, ruleerrors.ErrInvalidTransactionStructure},
		{"deploy twice", externalapi.ActionDeployConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{fixture.ConfigCell(), fixture.ConfigCell()},
			ruleerrors.ErrInvalidTransactionStructure},
		{"deploy over an existing config", externalapi.ActionDeployConfig,
			[]*txhost.Cell{fixture.ConfigCell()}, []*txhost.Cell{fixture.ConfigCell()},
			ruleerrors.ErrInvalidTransactionStructure},
		{"deploy locked by a stranger", externalapi.ActionDeployConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{strangerLockedConfig}, ruleerrors.ErrCellLockMustBeOwnerLock},
		{"deploy an unknown version", externalapi.ActionDeployConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{fixture.ConfigCellWithData([]byte{1, 4, 0, 0, 0})},
			ruleerrors.ErrParseCellDataVersionFailed},
		{"deploy truncated data", externalapi.ActionDeployConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{fixture.ConfigCellWithData([]byte{0})},
			ruleerrors.ErrParseCellDataFailed},
		{"update", externalapi.ActionUpdateConfig,
			[]*txhost.Cell{fixture.ConfigCell()}, []*txhost.Cell{fixture.ConfigCell()}, nil},
		{"halt", externalapi.ActionUpdateConfig,
			[]*txhost.Cell{fixture.ConfigCell()},
			[]*txhost.Cell{fixture.ConfigCellWithData(celldata.SerializeConfigRecords(celldata.ConfigRecordsOf(&haltedConfig)))}, nil},
		{"update without the config input", externalapi.ActionUpdateConfig,
			[]*txhost.Cell{owner}, []*txhost.Cell{fixture.ConfigCell()}, ruleerrors.ErrInvalidTransactionStructure},
		{"destroy", externalapi.ActionUpdateConfig,
			[]*txhost.Cell{fixture.ConfigCell()}, []*txhost.Cell{owner}, ruleerrors.ErrInvalidTransactionStructure},
		{"update by a stranger", externalapi.ActionUpdateConfig,
			[]*txhost.Cell{stranger, fixture.ConfigCell()}, []*txhost.Cell{fixture.ConfigCell()},
			ruleerrors.ErrOwnerLockIsRequired},
		{"foreign action", externalapi.ActionRequestMint,
			[]*txhost.Cell{owner}, []*txhost.Cell{fixture.ConfigCell()}, ruleerrors.ErrActionNotSupported},
	}
	for _, test := range tests {
		builder := testutils.NewTransactionBuilder().SetAction(test.action)
		for _, input := range test.inputs {
			builder.AddInput(input)
		}
		for _, output := range test.outputs {
			builder.AddOutput(output)
		}

		err := validate(fixture, builder.Build(), fixture.ConfigType())
		if test.expectedErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error %s", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.expectedErr) {
			t.Fatalf("%s: expected %s, got %v", test.name, test.expectedErr, err)
		}
	}
}

func TestConfigValidatorArgsMustBeEmpty(t *testing.T) {
	fixture := testutils.NewFixture()
	script := externalapi.NewScript(fixture.Params.ConfigCellTypeID, externalapi.HashTypeType, []byte{1})
	cell := fixture.ConfigCell()
	cell.Output.Type = script.Clone()
	transaction := testutils.NewTransactionBuilder().
		SetAction(externalapi.ActionDeployConfig).
		AddInput(testutils.CapacityCell(fixture.Params.OwnerLock)).
		AddOutput(cell).
		Build()

	err := validate(fixture, transaction, script)
	if !errors.Is(err, ruleerrors.ErrArgsMustBeEmpty) {
		t.Fatalf("expected ErrArgsMustBeEmpty, got %v", err)
	}
}

func TestConfigValidatorWithoutAction(t *testing.T) {
	fixture := testutils.NewFixture()
	transaction := testutils.NewTransactionBuilder().
		AddInput(testutils.CapacityCell(fixture.Params.OwnerLock)).
		AddOutput(fixture.ConfigCell()).
		Build()

	err := validate(fixture, transaction, fixture.ConfigType())
	if !errors.Is(err, ruleerrors.ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
	if ruleerrors.ExitCode(err) != ruleerrors.ErrActionNotFound.Code() {
		t.Fatalf("expected exit code %d, got %d", ruleerrors.ErrActionNotFound.Code(), ruleerrors.ExitCode(err))
	}
}
