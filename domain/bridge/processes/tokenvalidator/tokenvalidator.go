package tokenvalidator

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/domain/bridge/utils/tokenledger"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// tokenValidator extends the type script of token cells. Transfers are
// free; minting and burning need the custodians' signature.
type tokenValidator struct {
	host               externalapi.Host
	cellIndexer        model.CellIndexer
	configRegistry     model.ConfigRegistry
	permissionVerifier model.PermissionVerifier
}

// New instantiates a new token cell Validator
func New(host externalapi.Host,
	cellIndexer model.CellIndexer,
	configRegistry model.ConfigRegistry,
	permissionVerifier model.PermissionVerifier) model.Validator {

	return &tokenValidator{
		host:               host,
		cellIndexer:        cellIndexer,
		configRegistry:     configRegistry,
		permissionVerifier: permissionVerifier,
	}
}

func (tv *tokenValidator) Validate() error {
	log.Debugf("====== Running token extension ======")

	script, err := tv.host.LoadScript()
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	if len(script.Args) < celldata.TokenIDSize {
		return errors.Wrapf(ruleerrors.ErrTokenIDSize,
			"token type args should start with a %d-byte token id, found %d bytes", celldata.TokenIDSize, len(script.Args))
	}

	inputs, outputs, err := tv.cellIndexer.FindCellsByScriptInInputsAndOutputs(externalapi.ScriptTypeType, script)
	if err != nil {
		return err
	}
	inputAmount, err := tv.totalAmount(inputs, externalapi.SourceInput)
	if err != nil {
		return err
	}
	outputAmount, err := tv.totalAmount(outputs, externalapi.SourceOutput)
	if err != nil {
		return err
	}
	log.Debugf("Token %x: inputs hold %s, outputs hold %s", script.Args[:celldata.TokenIDSize],
		inputAmount, outputAmount)

	if inputAmount.Equals(outputAmount) {
		return nil
	}

	err = tv.verifyOwnerMode()
	if err != nil {
		log.Warnf("Minting or burning from %s to %s outside owner mode", inputAmount, outputAmount)
		return ruleerrors.WithCause(ruleerrors.ErrOwnerModeRequired, err)
	}
	return nil
}

func (tv *tokenValidator) totalAmount(cells []int, source externalapi.Source) (uint128.Uint128, error) {
	ledger, err := tokenledger.Collect(tv.host, cells, source)
	if err != nil {
		return uint128.Zero, err
	}
	return ledger.Total()
}

// verifyOwnerMode checks that the transaction is signed by the custodians:
// one of its omni lock inputs carries the lock args of the only
// GovernanceMemberCell in the cell deps.
func (tv *tokenValidator) verifyOwnerMode() error {
	config, err := tv.configRegistry.Config()
	if err != nil {
		return err
	}

	governanceCells, err := tv.cellIndexer.FindCellsByTypeID(externalapi.ScriptTypeType,
		&config.GovernanceMemberCellTypeID, externalapi.SourceCellDep)
	if err != nil {
		return err
	}
	if len(governanceCells) != 1 {
		return errors.Wrapf(ruleerrors.ErrGovernanceCellNumber,
			"expected one GovernanceMemberCell in cell_deps, found %d", len(governanceCells))
	}
	custodianLock, err := tv.permissionVerifier.CustodianLock()
	if err != nil {
		return err
	}

	omniLockInputs, err := tv.cellIndexer.FindCellsByTypeID(externalapi.ScriptTypeLock,
		&config.OmniLockTypeID, externalapi.SourceInput)
	if err != nil {
		return err
	}
	if len(omniLockInputs) == 0 {
		return errors.Wrap(ruleerrors.ErrOmniLockCellNumber, "no input is locked by the omni lock")
	}
	for _, index := range omniLockInputs {
		lock, err := tv.host.LoadCellScript(index, externalapi.SourceInput, externalapi.ScriptTypeLock)
		if err != nil {
			return ruleerrors.FromHostError(err)
		}
		if bytes.Equal(lock.Args, custodianLock.Args) {
			log.Debugf("inputs[%d] carries the custodian lock args", index)
			return nil
		}
	}
	return errors.Wrapf(ruleerrors.ErrUnauthorizedGovernanceMember,
		"none of the omni lock inputs %v carries the custodian lock args", omniLockInputs)
}
