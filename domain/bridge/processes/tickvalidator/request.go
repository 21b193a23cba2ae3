package tickvalidator

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/pkg/errors"
)

// request opens a ticket at outputs[0] on behalf of the merchant signing
// inputs[0].
func (tv *tickValidator) request(positions *cellPositions, tickType externalapi.TickType) error {
	err := tv.configRegistry.CheckSystemStatus()
	if err != nil {
		return err
	}
	err = tv.permissionVerifier.VerifyInputHasMerchantLock(0)
	if err != nil {
		return err
	}
	err = tv.consistencyVerifier.VerifyCellNumberAndPosition(tickCellName,
		positions.tickInputs, []int{}, positions.tickOutputs, []int{0})
	if err != nil {
		return err
	}

	tick, err := tv.loadTick(0, externalapi.SourceOutput)
	if err != nil {
		return err
	}
	err = tv.permissionVerifier.VerifyCellHasAlwaysSuccessLock(tickCellName, 0, externalapi.SourceOutput)
	if err != nil {
		return err
	}

	log.Debugf("Verify if the fields of the %s are valid", tickCellName)
	err = verifyTickType(tick, tickType)
	if err != nil {
		return err
	}
	if len(tick.TokenID) != celldata.TokenIDSize {
		return errors.Wrapf(ruleerrors.ErrInvalidTickTokenIDSize,
			"token id should be %d bytes, found %d", celldata.TokenIDSize, len(tick.TokenID))
	}
	if tick.Value.IsZero() {
		return errors.WithStack(ruleerrors.ErrTickValueCanNotBeZero)
	}

	signer, err := tv.host.LoadCellScript(0, externalapi.SourceInput, externalapi.ScriptTypeLock)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	if !tick.Merchant.Equal(signer) {
		return errors.Wrapf(ruleerrors.ErrInvalidTickMerchantLock,
			"the ticket names %s but is signed by %s", tick.Merchant, signer)
	}
	return nil
}
