package permissionverifier

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/deployment"
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/domain/bridge/utils/hashes"
	"github.com/cellbridge/bridged/domain/bridge/utils/molecule"
	"github.com/pkg/errors"
)

const governanceCellName = "GovernanceMemberCell"

// permissionVerifier decides who authorized a transaction from the locks
// of its inputs and the governance cells in its cell deps.
type permissionVerifier struct {
	host           externalapi.Host
	cellIndexer    model.CellIndexer
	configRegistry model.ConfigRegistry
	params         *deployment.Params
}

// New instantiates a new PermissionVerifier
func New(host externalapi.Host, cellIndexer model.CellIndexer, configRegistry model.ConfigRegistry,
	params *deployment.Params) model.PermissionVerifier {

	return &permissionVerifier{
		host:           host,
		cellIndexer:    cellIndexer,
		configRegistry: configRegistry,
		params:         params,
	}
}

// verifyInputHasLock checks that the first input locked by lock sits at
// index.
func (pv *permissionVerifier) verifyInputHasLock(lock *externalapi.Script, index int,
	ruleError ruleerrors.RuleError) error {

	cells, err := pv.cellIndexer.FindCellsByScript(externalapi.ScriptTypeLock, lock, externalapi.SourceInput)
	if err != nil {
		return err
	}
	if len(cells) == 0 {
		return errors.Wrapf(ruleError, "no input is locked by %s", lock)
	}
	if cells[0] != index {
		return errors.Wrapf(ruleError, "expected the lock at inputs[%d], found it first at inputs[%d]",
			index, cells[0])
	}
	return nil
}

func (pv *permissionVerifier) VerifyInputHasOwnerLock(index int) error {
	log.Debugf("inputs[%d] Verify if the cell has the owner lock", index)
	return pv.verifyInputHasLock(pv.params.OwnerLock, index, ruleerrors.ErrOwnerLockIsRequired)
}

func (pv *permissionVerifier) VerifyInputHasDeployLock(index int) error {
	log.Debugf("inputs[%d] Verify if the cell has the deploy lock", index)
	return pv.verifyInputHasLock(pv.params.DeployLock, index, ruleerrors.ErrDeployLockIsRequired)
}

func (pv *permissionVerifier) VerifyInputHasCustodianLock(index int) error {
	log.Debugf("inputs[%d] Verify if the cell has the custodian lock", index)

	custodianLock, err := pv.CustodianLock()
	if err != nil {
		return err
	}
	return pv.verifyInputHasLock(custodianLock, index, ruleerrors.ErrCustodianLockIsRequired)
}

// VerifyInputHasMerchantLock checks that inputs[index] is locked by one of
// the members of the merchant cell in the cell deps.
func (pv *permissionVerifier) VerifyInputHasMerchantLock(index int) error {
	log.Debugf("inputs[%d] Verify if the cell has a merchant lock", index)

	merchantCell, err := pv.FindGovernanceCell(externalapi.RoleMerchant, externalapi.SourceCellDep)
	if err != nil {
		return err
	}
	inputLock, err := pv.host.LoadCellScript(index, externalapi.SourceInput, externalapi.ScriptTypeLock)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}

	serializedLock := molecule.SerializeScript(inputLock)
	for _, member := range merchantCell.Members.Members {
		if bytes.Equal(member, serializedLock) {
			return nil
		}
	}
	return errors.Wrapf(ruleerrors.ErrMerchantLockIsRequired,
		"inputs[%d] is locked by %s which is not a merchant", index, inputLock)
}

func (pv *permissionVerifier) VerifyCellHasAlwaysSuccessLock(cellName string, index int,
	source externalapi.Source) error {

	log.Debugf("%s[%d] Verify if the %s has the always success lock", source, index, cellName)

	alwaysSuccessLock, err := pv.configRegistry.AlwaysSuccessLock()
	if err != nil {
		return err
	}
	lock, err := pv.host.LoadCellScript(index, source, externalapi.ScriptTypeLock)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	if !lock.Equal(alwaysSuccessLock) {
		return errors.Wrapf(ruleerrors.ErrAlwaysSuccessLockIsRequired,
			"%s at %s[%d] is locked by %s", cellName, source, index, lock)
	}
	return nil
}

// FindGovernanceCell resolves the only GovernanceMemberCell in source and
// checks that it is locked and tagged as expected for role.
func (pv *permissionVerifier) FindGovernanceCell(role externalapi.Role,
	source externalapi.Source) (*model.GovernanceCell, error) {

	config, err := pv.configRegistry.Config()
	if err != nil {
		return nil, err
	}
	index, err := pv.cellIndexer.FindOnlyCellByTypeID(governanceCellName, externalapi.ScriptTypeType,
		&config.GovernanceMemberCellTypeID, source)
	if err != nil {
		return nil, err
	}

	expectedLock, err := pv.expectedGovernanceLock(role)
	if err != nil {
		return nil, err
	}
	cell, err := pv.host.LoadCell(index, source)
	if err != nil {
		return nil, ruleerrors.FromHostError(err)
	}
	if !cell.Lock.Equal(expectedLock) {
		return nil, errors.Wrapf(ruleerrors.ErrGovernanceCellLockMismatch,
			"the %s %s at %s[%d] is locked by %s", role, governanceCellName, source, index, cell.Lock)
	}
	if cell.Type == nil {
		return nil, errors.Wrapf(ruleerrors.ErrGovernanceCellIsCorrupted,
			"%s at %s[%d] has no type", governanceCellName, source, index)
	}

	typeArgs, err := celldata.ParseGovernanceTypeArgs(cell.Type.Args)
	if err != nil {
		return nil, err
	}
	if typeArgs.Role != role {
		return nil, errors.Wrapf(ruleerrors.ErrGovernanceCellRoleError,
			"%s at %s[%d] expected role %s, found %s", governanceCellName, source, index, role, typeArgs.Role)
	}

	data, err := pv.host.LoadCellData(index, source)
	if err != nil {
		return nil, ruleerrors.FromHostError(err)
	}
	members, err := celldata.ParseGovernanceMembers(data)
	if err != nil {
		return nil, err
	}

	return &model.GovernanceCell{
		Index:    index,
		Source:   source,
		TypeArgs: typeArgs,
		Members:  members,
	}, nil
}

func (pv *permissionVerifier) expectedGovernanceLock(role externalapi.Role) (*externalapi.Script, error) {
	if role == externalapi.RoleCustodian {
		return pv.params.OwnerLock, nil
	}
	return pv.configRegistry.AlwaysSuccessLock()
}

// CustodianLock returns the omni lock of the custodian cell in the cell
// deps. The stored lock args are never trusted: they are recomputed from
// the multisig policy and members first.
func (pv *permissionVerifier) CustodianLock() (*externalapi.Script, error) {
	custodianCell, err := pv.FindGovernanceCell(externalapi.RoleCustodian, externalapi.SourceCellDep)
	if err != nil {
		return nil, err
	}

	members := custodianCell.Members
	if len(members.MultisigArgs) != hashes.MultisigPolicySize {
		return nil, errors.Wrapf(ruleerrors.ErrGovernanceCellIsCorrupted,
			"custodian multisig_args must be %d bytes, found %d", hashes.MultisigPolicySize, len(members.MultisigArgs))
	}
	lockArgs, err := hashes.BuildOmniLockMultisigArgs(members.MultisigArgs[1], members.MultisigArgs[2], members.Members)
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrGovernanceCellIsCorrupted, "custodian members: %s", err)
	}
	if !bytes.Equal(lockArgs, members.LockArgs) {
		return nil, errors.Wrapf(ruleerrors.ErrGovernanceCellIsCorrupted,
			"custodian lock_args %x do not match the members, expected %x", members.LockArgs, lockArgs)
	}

	custodianLock, err := pv.configRegistry.CustodianLock(lockArgs)
	if err != nil {
		return nil, err
	}
	log.Debugf("Expected custodian lock: %s", custodianLock)
	return custodianLock, nil
}

// VerifyCustodianLockNotInMerchants checks that the current custodian
// lock is not one of the merchant members.
func (pv *permissionVerifier) VerifyCustodianLockNotInMerchants(merchants *externalapi.GovernanceMembers) error {
	custodianLock, err := pv.CustodianLock()
	if err != nil {
		return err
	}
	serializedLock := molecule.SerializeScript(custodianLock)
	for i, member := range merchants.Members {
		if bytes.Equal(member, serializedLock) {
			return errors.Wrapf(ruleerrors.ErrCustodianLockMustNotInMerchants,
				"merchant member %d is the custodian lock", i)
		}
	}
	return nil
}
