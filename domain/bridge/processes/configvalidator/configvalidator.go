package configvalidator

import (
	"github.com/cellbridge/bridged/domain/bridge/deployment"
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/pkg/errors"
)

const configCellName = "ConfigCell"

// configValidator is the type script of the config cell. It only lets the
// owner create the config cell or replace its data.
type configValidator struct {
	host                externalapi.Host
	cellIndexer         model.CellIndexer
	consistencyVerifier model.ConsistencyVerifier
	permissionVerifier  model.PermissionVerifier
	actionDispatcher    model.ActionDispatcher
	params              *deployment.Params
}

// New instantiates a new config cell Validator
func New(host externalapi.Host,
	cellIndexer model.CellIndexer,
	consistencyVerifier model.ConsistencyVerifier,
	permissionVerifier model.PermissionVerifier,
	actionDispatcher model.ActionDispatcher,
	params *deployment.Params) model.Validator {

	return &configValidator{
		host:                host,
		cellIndexer:         cellIndexer,
		consistencyVerifier: consistencyVerifier,
		permissionVerifier:  permissionVerifier,
		actionDispatcher:    actionDispatcher,
		params:              params,
	}
}

func (cv *configValidator) Validate() error {
	log.Debugf("====== Running config-cell-type ======")

	script, err := cv.host.LoadScript()
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	if len(script.Args) != 0 {
		return errors.Wrapf(ruleerrors.ErrArgsMustBeEmpty, "the config cell type args are %x", script.Args)
	}

	inputs, outputs, err := cv.cellIndexer.FindCellsByScriptInInputsAndOutputs(externalapi.ScriptTypeType, script)
	if err != nil {
		return err
	}

	return cv.actionDispatcher.Dispatch(map[externalapi.Action]model.ActionHandler{
		externalapi.ActionDeployConfig: func() error {
			return cv.validateConfigChange(inputs, []int{}, outputs)
		},
		externalapi.ActionUpdateConfig: func() error {
			return cv.validateConfigChange(inputs, []int{0}, outputs)
		},
	})
}

// validateConfigChange checks an owner signed transaction that leaves a
// single well formed config cell at outputs[0].
func (cv *configValidator) validateConfigChange(inputs []int, expectedInputs []int, outputs []int) error {
	err := cv.permissionVerifier.VerifyInputHasOwnerLock(0)
	if err != nil {
		return err
	}
	err = cv.consistencyVerifier.VerifyCellNumberAndPosition(configCellName, inputs, expectedInputs, outputs, []int{0})
	if err != nil {
		return err
	}

	lock, err := cv.host.LoadCellScript(outputs[0], externalapi.SourceOutput, externalapi.ScriptTypeLock)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	if !lock.Equal(cv.params.OwnerLock) {
		return errors.Wrapf(ruleerrors.ErrCellLockMustBeOwnerLock, "%s is locked by %s", configCellName, lock)
	}

	data, err := cv.host.LoadCellData(outputs[0], externalapi.SourceOutput)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	config, err := celldata.ParseConfig(data)
	if err != nil {
		log.Warnf("outputs[%d] %s", outputs[0], err)
		return err
	}
	log.Debugf("outputs[%d] New config with system status %s", outputs[0], config.SystemStatus)
	return nil
}
