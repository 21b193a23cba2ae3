package configregistry

import (
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/pkg/errors"
)

const configCellName = "ConfigCell"

// configRegistry reads the config cell from the cell deps on first use
// and serves every later lookup from memory. A registry belongs to a
// single validator run.
type configRegistry struct {
	host             externalapi.Host
	cellIndexer      model.CellIndexer
	configCellTypeID *externalapi.DomainHash

	config *externalapi.BridgeConfig
}

// New instantiates a new ConfigRegistry
func New(host externalapi.Host, cellIndexer model.CellIndexer,
	configCellTypeID *externalapi.DomainHash) model.ConfigRegistry {

	return &configRegistry{
		host:             host,
		cellIndexer:      cellIndexer,
		configCellTypeID: configCellTypeID,
	}
}

func (cr *configRegistry) Config() (*externalapi.BridgeConfig, error) {
	if cr.config != nil {
		return cr.config, nil
	}

	index, err := cr.cellIndexer.FindOnlyCellByTypeID(configCellName, externalapi.ScriptTypeType,
		cr.configCellTypeID, externalapi.SourceCellDep)
	if err != nil {
		return nil, err
	}
	data, err := cr.host.LoadCellData(index, externalapi.SourceCellDep)
	if err != nil {
		return nil, ruleerrors.FromHostError(err)
	}
	config, err := celldata.ParseConfig(data)
	if err != nil {
		log.Warnf("Failed to parse the config cell at cell_deps[%d]: %s", index, err)
		return nil, err
	}
	log.Debugf("Loaded the config cell at cell_deps[%d], system status %s", index, config.SystemStatus)

	cr.config = config
	return cr.config, nil
}

func (cr *configRegistry) CheckSystemStatus() error {
	config, err := cr.Config()
	if err != nil {
		return err
	}
	if config.SystemStatus == externalapi.SystemStatusOff {
		return errors.WithStack(ruleerrors.ErrSystemStatusOff)
	}
	return nil
}

// AlwaysSuccessLock returns the lock that holds no spending authority.
func (cr *configRegistry) AlwaysSuccessLock() (*externalapi.Script, error) {
	config, err := cr.Config()
	if err != nil {
		return nil, err
	}
	return externalapi.NewScript(&config.AlwaysSuccessTypeID, externalapi.HashTypeType, nil), nil
}

// CustodianLock returns the omni lock authorized by custodianLockArgs.
func (cr *configRegistry) CustodianLock(custodianLockArgs []byte) (*externalapi.Script, error) {
	config, err := cr.Config()
	if err != nil {
		return nil, err
	}
	return externalapi.NewScript(&config.OmniLockTypeID, externalapi.HashTypeType, custodianLockArgs), nil
}
