package configregistry

import (
	"testing"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/processes/cellindexer"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
	"github.com/cellbridge/bridged/domain/bridge/utils/testutils"
	"github.com/pkg/errors"
)

func newRegistry(f *testutils.Fixture, transaction *txhost.Transaction) (*testutils.CountingHost, *configRegistry) {
	host := testutils.NewCountingHost(txhost.New(transaction, nil))
	registry := New(host, cellindexer.New(host), f.Params.ConfigCellTypeID).(*configRegistry)
	return host, registry
}

func TestConfigIsReadOnce(t *testing.T) {
	f := testutils.NewFixture()
	transaction := testutils.NewTransactionBuilder().
		AddCellDep(f.CustodianCell()).
		AddCellDep(f.ConfigCell()).
		Build()
	host, registry := newRegistry(f, transaction)

	for i := 0; i < 3; i++ {
		config, err := registry.Config()
		if err != nil {
			t.Fatalf("Config: %s", err)
		}
		if !config.OmniLockTypeID.Equal(&f.Config.OmniLockTypeID) {
			t.Fatalf("unexpected omni lock type id %s", &config.OmniLockTypeID)
		}
	}
	if err := registry.CheckSystemStatus(); err != nil {
		t.Fatalf("CheckSystemStatus: %s", err)
	}
	if _, err := registry.AlwaysSuccessLock(); err != nil {
		t.Fatalf("AlwaysSuccessLock: %s", err)
	}
	if host.CellDataReads[externalapi.SourceCellDep] != 1 {
		t.Fatalf("expected a single config read, got %d", host.CellDataReads[externalapi.SourceCellDep])
	}
}

func TestFreshRegistryRereads(t *testing.T) {
	f := testutils.NewFixture()
	transaction := testutils.NewTransactionBuilder().AddCellDep(f.ConfigCell()).Build()

	for i := 0; i < 2; i++ {
		host, registry := newRegistry(f, transaction)
		if _, err := registry.Config(); err != nil {
			t.Fatalf("Config: %s", err)
		}
		if host.CellDataReads[externalapi.SourceCellDep] != 1 {
			t.Fatalf("registry %d: expected one read, got %d", i, host.CellDataReads[externalapi.SourceCellDep])
		}
	}
}

func TestCheckSystemStatusOff(t *testing.T) {
	f := testutils.NewFixture()
	f.Config.SystemStatus = externalapi.SystemStatusOff
	transaction := testutils.NewTransactionBuilder().AddCellDep(f.ConfigCell()).Build()
	_, registry := newRegistry(f, transaction)

	err := registry.CheckSystemStatus()
	if !errors.Is(err, ruleerrors.ErrSystemStatusOff) {
		t.Fatalf("expected ErrSystemStatusOff, got %v", err)
	}
}

func TestConfigCellMustBeUnique(t *testing.T) {
	f := testutils.NewFixture()
	tests := []struct {
		name     string
		cellDeps int
	}{
		{"missing", 0},
		{"duplicated", 2},
	}
	for _, test := range tests {
		builder := testutils.NewTransactionBuilder()
		for i := 0; i < test.cellDeps; i++ {
			builder.AddCellDep(f.ConfigCell())
		}
		_, registry := newRegistry(f, builder.Build())
		_, err := registry.Config()
		if !errors.Is(err, ruleerrors.ErrInvalidTransactionStructure) {
			t.Fatalf("%s: expected ErrInvalidTransactionStructure, got %v", test.name, err)
		}
	}
}

func TestMalformedConfigIsNotCached(t *testing.T) {
	f := testutils.NewFixture()
	transaction := testutils.NewTransactionBuilder().AddCellDep(f.ConfigCellWithData([]byte{1, 4, 0, 0, 0})).Build()
	_, registry := newRegistry(f, transaction)

	_, err := registry.Config()
	if !errors.Is(err, ruleerrors.ErrParseCellDataVersionFailed) {
		t.Fatalf("expected ErrParseCellDataVersionFailed, got %v", err)
	}
	if registry.config != nil {
		t.Fatal("a config that failed to parse must not be cached")
	}
}

func TestDerivedLocks(t *testing.T) {
	f := testutils.NewFixture()
	transaction := testutils.NewTransactionBuilder().AddCellDep(f.ConfigCell()).Build()
	_, registry := newRegistry(f, transaction)

	alwaysSuccess, err := registry.AlwaysSuccessLock()
	if err != nil || !alwaysSuccess.Equal(f.AlwaysSuccessLock()) {
		t.Fatalf("AlwaysSuccessLock: got (%s, %v)", alwaysSuccess, err)
	}
	custodian, err := registry.CustodianLock(f.CustodianLockArgs)
	if err != nil || !custodian.Equal(f.CustodianLock) {
		t.Fatalf("CustodianLock: got (%s, %v)", custodian, err)
	}
}
