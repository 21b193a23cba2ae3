package tickvalidator

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/tokenledger"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// closeTick runs the checks confirmations and rejections share: a
// custodian signature at inputs[1], the ticket consumed from inputs[0]
// and the number of token cells on each side.
func (tv *tickValidator) closeTick(positions *cellPositions, tickType externalapi.TickType,
	tokenInputsRange model.CellCountRange, tokenOutputs []int, tokenOutputsRange model.CellCountRange) (
	*externalapi.TickCell, error) {

	err := tv.permissionVerifier.VerifyInputHasCustodianLock(1)
	if err != nil {
		return nil, err
	}
	err = tv.consistencyVerifier.VerifyCellNumberAndPosition(tickCellName,
		positions.tickInputs, []int{0}, positions.tickOutputs, []int{})
	if err != nil {
		return nil, err
	}
	err = tv.consistencyVerifier.VerifyCellNumberRange(tokenCellName,
		positions.tokenInputs, tokenInputsRange, tokenOutputs, tokenOutputsRange)
	if err != nil {
		return nil, err
	}

	tick, err := tv.loadTick(0, externalapi.SourceInput)
	if err != nil {
		return nil, err
	}
	err = verifyTickType(tick, tickType)
	if err != nil {
		return nil, err
	}
	return tick, nil
}

// collectTokens sums the token cells at cells and checks they all hold the
// ticket's token.
func (tv *tickValidator) collectTokens(tick *externalapi.TickCell, cells []int,
	source externalapi.Source) (*tokenledger.Ledger, error) {

	log.Debugf("Collecting the %ss in %s", tokenCellName, source)

	ledger, err := tokenledger.Collect(tv.host, cells, source)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(ledger.TokenID, tick.TokenID) {
		return nil, errors.Wrapf(ruleerrors.ErrTokenCellTokenIDMismatch,
			"the %ss in %s hold token %x, the ticket names %x", tokenCellName, source, ledger.TokenID, tick.TokenID)
	}
	return ledger, nil
}

// confirmMint closes a mint ticket by minting exactly its value to the
// merchant.
func (tv *tickValidator) confirmMint(positions *cellPositions) error {
	tick, err := tv.closeTick(positions, externalapi.TickTypeMint,
		noCells, positions.tokenOutputs, someCells)
	if err != nil {
		return err
	}

	ledger, err := tv.collectTokens(tick, positions.tokenOutputs, externalapi.SourceOutput)
	if err != nil {
		return err
	}
	minted, ok := ledger.AmountOf(tick.Merchant)
	if !ok || !minted.Equals(tick.Value) {
		return errors.Wrapf(ruleerrors.NewErrTokenAmountMismatch(ruleerrors.ErrTokenTransferError, tick.Value, minted),
			"minting to %s", tick.Merchant)
	}
	return nil
}

// rejectMint closes a mint ticket without touching any token.
func (tv *tickValidator) rejectMint(positions *cellPositions) error {
	_, err := tv.closeTick(positions, externalapi.TickTypeMint,
		noCells, positions.tokenOutputs, noCells)
	return err
}

// confirmBurn closes a burn ticket by destroying exactly its value. Change
// cells of the same token may remain in the outputs.
func (tv *tickValidator) confirmBurn(positions *cellPositions) error {
	tick, err := tv.closeTick(positions, externalapi.TickTypeBurn,
		someCells, nil, noCells)
	if err != nil {
		return err
	}

	inputLedger, err := tv.collectTokens(tick, positions.tokenInputs, externalapi.SourceInput)
	if err != nil {
		return err
	}
	totalInput, err := inputLedger.Total()
	if err != nil {
		return err
	}

	totalOutput := uint128.Zero
	if len(positions.tokenOutputs) > 0 {
		outputLedger, err := tv.collectTokens(tick, positions.tokenOutputs, externalapi.SourceOutput)
		if err != nil {
			return err
		}
		totalOutput, err = outputLedger.Total()
		if err != nil {
			return err
		}
	}

	expectedInput, err := tokenledger.Add(totalOutput, tick.Value)
	if err != nil {
		return err
	}
	if !totalInput.Equals(expectedInput) {
		burned := uint128.Zero
		if totalInput.Cmp(totalOutput) > 0 {
			burned = totalInput.Sub(totalOutput)
		}
		return errors.Wrapf(
			ruleerrors.NewErrTokenAmountMismatch(ruleerrors.ErrBurnedTokenAmountNotMatch, tick.Value, burned),
			"inputs hold %s, outputs hold %s", totalInput, totalOutput)
	}
	return nil
}

// rejectBurn closes a burn ticket by refunding at least its value to the
// merchant.
func (tv *tickValidator) rejectBurn(positions *cellPositions) error {
	tick, err := tv.closeTick(positions, externalapi.TickTypeBurn,
		someCells, positions.tokenOutputs, someCells)
	if err != nil {
		return err
	}

	_, err = tv.collectTokens(tick, positions.tokenInputs, externalapi.SourceInput)
	if err != nil {
		return err
	}
	ledger, err := tv.collectTokens(tick, positions.tokenOutputs, externalapi.SourceOutput)
	if err != nil {
		return err
	}
	refunded, ok := ledger.AmountOf(tick.Merchant)
	if !ok || refunded.Cmp(tick.Value) < 0 {
		return errors.Wrapf(ruleerrors.NewErrTokenAmountMismatch(ruleerrors.ErrTokenTransferError, tick.Value, refunded),
			"refunding %s", tick.Merchant)
	}
	return nil
}
