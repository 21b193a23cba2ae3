package governancevalidator

import (
	"github.com/cellbridge/bridged/domain/bridge/deployment"
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/domain/bridge/utils/hashes"
	"github.com/pkg/errors"
)

const governanceCellName = "GovernanceMemberCell"

// governanceValidator is the type script of GovernanceMemberCells. The
// running script's args name the role and the cell id of the governed cell.
type governanceValidator struct {
	host                externalapi.Host
	cellIndexer         model.CellIndexer
	configRegistry      model.ConfigRegistry
	consistencyVerifier model.ConsistencyVerifier
	permissionVerifier  model.PermissionVerifier
	actionDispatcher    model.ActionDispatcher
	params              *deployment.Params
}

// New instantiates a new GovernanceMemberCell Validator
func New(host externalapi.Host,
	cellIndexer model.CellIndexer,
	configRegistry model.ConfigRegistry,
	consistencyVerifier model.ConsistencyVerifier,
	permissionVerifier model.PermissionVerifier,
	actionDispatcher model.ActionDispatcher,
	params *deployment.Params) model.Validator {

	return &governanceValidator{
		host:                host,
		cellIndexer:         cellIndexer,
		configRegistry:      configRegistry,
		consistencyVerifier: consistencyVerifier,
		permissionVerifier:  permissionVerifier,
		actionDispatcher:    actionDispatcher,
		params:              params,
	}
}

func (gv *governanceValidator) Validate() error {
	log.Debugf("====== Running governance-member-cell-type ======")

	script, err := gv.host.LoadScript()
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	typeArgs, err := celldata.ParseGovernanceTypeArgs(script.Args)
	if err != nil {
		return err
	}
	inputs, outputs, err := gv.cellIndexer.FindCellsByScriptInInputsAndOutputs(externalapi.ScriptTypeType, script)
	if err != nil {
		return err
	}

	return gv.actionDispatcher.Dispatch(map[externalapi.Action]model.ActionHandler{
		externalapi.ActionInitGovernance: func() error {
			return gv.initGovernance(typeArgs, inputs, outputs)
		},
		externalapi.ActionUpdateOwner: func() error {
			return gv.updateOwner(typeArgs, inputs, outputs)
		},
		externalapi.ActionUpdateCustodians: func() error {
			return gv.updateCustodians(typeArgs, inputs, outputs)
		},
		externalapi.ActionUpdateMerchants: func() error {
			return gv.updateMerchants(typeArgs, inputs, outputs)
		},
	})
}

func (gv *governanceValidator) initGovernance(typeArgs *externalapi.GovernanceTypeArgs,
	inputs []int, outputs []int) error {

	err := gv.permissionVerifier.VerifyInputHasOwnerLock(0)
	if err != nil {
		return err
	}
	err = gv.consistencyVerifier.VerifyCellNumberAndPosition(governanceCellName, inputs, []int{}, outputs, []int{0})
	if err != nil {
		return err
	}
	err = gv.verifyCellID(typeArgs, outputs[0])
	if err != nil {
		return err
	}

	switch typeArgs.Role {
	case externalapi.RoleCustodian:
		err = gv.verifyOutputLock(outputs[0], gv.params.OwnerLock)
		if err != nil {
			return err
		}
		return gv.verifyCustodianMembers(outputs[0])
	default:
		alwaysSuccessLock, err := gv.configRegistry.AlwaysSuccessLock()
		if err != nil {
			return err
		}
		err = gv.verifyOutputLock(outputs[0], alwaysSuccessLock)
		if err != nil {
			return err
		}
		members, err := gv.verifyMerchantMembers(outputs[0])
		if err != nil {
			return err
		}
		return gv.permissionVerifier.VerifyCustodianLockNotInMerchants(members)
	}
}

// updateOwner moves the custodian cell to a new owner lock. Nothing else
// may change.
func (gv *governanceValidator) updateOwner(typeArgs *externalapi.GovernanceTypeArgs,
	inputs []int, outputs []int) error {

	err := gv.permissionVerifier.VerifyInputHasOwnerLock(0)
	if err != nil {
		return err
	}
	err = gv.consistencyVerifier.VerifyCellNumberAndPosition(governanceCellName, inputs, []int{0}, outputs, []int{0})
	if err != nil {
		return err
	}
	if typeArgs.Role != externalapi.RoleCustodian {
		return errors.Wrap(ruleerrors.ErrPermissionDenied, "only the custodian can update its owner")
	}
	err = gv.consistencyVerifier.VerifyCellConsistentWithException(governanceCellName, inputs[0], outputs[0],
		externalapi.NewCellFieldSet(externalapi.CellFieldLock))
	if err != nil {
		return err
	}
	return gv.verifyOutputLock(outputs[0], gv.params.OwnerLock)
}

func (gv *governanceValidator) updateCustodians(typeArgs *externalapi.GovernanceTypeArgs,
	inputs []int, outputs []int) error {

	err := gv.permissionVerifier.VerifyInputHasOwnerLock(0)
	if err != nil {
		return err
	}
	err = gv.consistencyVerifier.VerifyCellNumberAndPosition(governanceCellName, inputs, []int{0}, outputs, []int{0})
	if err != nil {
		return err
	}
	if typeArgs.Role != externalapi.RoleCustodian {
		return errors.Wrap(ruleerrors.ErrPermissionDenied, "this transaction can only update the custodian members")
	}
	err = gv.consistencyVerifier.VerifyCellConsistentWithException(governanceCellName, inputs[0], outputs[0],
		externalapi.NewCellFieldSet(externalapi.CellFieldData, externalapi.CellFieldCapacity))
	if err != nil {
		return err
	}
	return gv.verifyCustodianMembers(outputs[0])
}

// updateMerchants replaces the members of a merchant cell under the
// signature of the current custodians.
func (gv *governanceValidator) updateMerchants(typeArgs *externalapi.GovernanceTypeArgs,
	inputs []int, outputs []int) error {

	err := gv.permissionVerifier.VerifyInputHasCustodianLock(1)
	if err != nil {
		return err
	}
	err = gv.consistencyVerifier.VerifyCellNumberAndPosition(governanceCellName, inputs, []int{0}, outputs, []int{0})
	if err != nil {
		return err
	}
	if typeArgs.Role != externalapi.RoleMerchant {
		return errors.Wrap(ruleerrors.ErrPermissionDenied, "this transaction can only update the merchant members")
	}
	err = gv.consistencyVerifier.VerifyCellConsistentWithException(governanceCellName, inputs[0], outputs[0],
		externalapi.NewCellFieldSet(externalapi.CellFieldData))
	if err != nil {
		return err
	}
	members, err := gv.verifyMerchantMembers(outputs[0])
	if err != nil {
		return err
	}
	return gv.permissionVerifier.VerifyCustodianLockNotInMerchants(members)
}

// verifyCellID checks that the new cell is named after the first input of
// the transaction creating it.
func (gv *governanceValidator) verifyCellID(typeArgs *externalapi.GovernanceTypeArgs, outputIndex int) error {
	log.Debugf("Verify if the cell ID is correct")

	firstInput, err := gv.host.LoadInput(0)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	expectedCellID := hashes.BuildTypeID(firstInput, uint64(outputIndex))
	if !typeArgs.CellID.Equal(expectedCellID) {
		return errors.Wrapf(ruleerrors.ErrCellIDIsInvalid, "expected cell id %s, found %s",
			expectedCellID, typeArgs.CellID)
	}
	return nil
}

func (gv *governanceValidator) verifyOutputLock(index int, expectedLock *externalapi.Script) error {
	lock, err := gv.host.LoadCellScript(index, externalapi.SourceOutput, externalapi.ScriptTypeLock)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	if !lock.Equal(expectedLock) {
		return errors.Wrapf(ruleerrors.ErrNewCellLockError, "outputs[%d] expected lock %s, found %s",
			index, expectedLock, lock)
	}
	return nil
}
