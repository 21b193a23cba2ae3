package governancevalidator

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/domain/bridge/utils/hashes"
	"github.com/cellbridge/bridged/infrastructure/logger"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func (gv *governanceValidator) loadOutputMembers(index int) (*externalapi.GovernanceMembers, error) {
	data, err := gv.host.LoadCellData(index, externalapi.SourceOutput)
	if err != nil {
		return nil, ruleerrors.FromHostError(err)
	}
	members, err := celldata.ParseGovernanceMembers(data)
	if err != nil {
		return nil, err
	}
	log.Tracef("outputs[%d] %s", index, logger.NewLogClosure(func() string {
		return spew.Sdump(members)
	}))
	return members, nil
}

// verifyCustodianMembers checks the custodian record at outputs[index]: a
// root of the hierarchy whose lock args are derived from its policy.
func (gv *governanceValidator) verifyCustodianMembers(index int) error {
	log.Debugf("outputs[%d] Verify if the custodian %s.data is valid", index, governanceCellName)

	members, err := gv.loadOutputMembers(index)
	if err != nil {
		return err
	}
	if len(members.ParentID) != 0 {
		return errors.Wrapf(ruleerrors.ErrCustodianParentIDMustBeEmpty, "found parent_id %x", members.ParentID)
	}
	if len(members.MultisigArgs) != hashes.MultisigPolicySize {
		return errors.Wrapf(ruleerrors.ErrCustodianMultisigArgsIsInvalid,
			"multisig_args should be %d bytes, found %d", hashes.MultisigPolicySize, len(members.MultisigArgs))
	}

	expectedLockArgs, err := hashes.BuildOmniLockMultisigArgs(members.MultisigArgs[1], members.MultisigArgs[2],
		members.Members)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrCustodianMultisigArgsIsInvalid, "%s", err)
	}
	if !bytes.Equal(members.LockArgs, expectedLockArgs) {
		return errors.Wrapf(ruleerrors.ErrCustodianLockArgsInDataIsInvalid,
			"expected lock_args %x, found %x", expectedLockArgs, members.LockArgs)
	}
	return nil
}

// verifyMerchantMembers checks the merchant record at outputs[index]: a
// child of the custodian in the cell deps with no signing policy of its
// own.
func (gv *governanceValidator) verifyMerchantMembers(index int) (*externalapi.GovernanceMembers, error) {
	log.Debugf("outputs[%d] Verify if the merchant %s.data is valid", index, governanceCellName)

	members, err := gv.loadOutputMembers(index)
	if err != nil {
		return nil, err
	}
	if len(members.ParentID) == 0 {
		return nil, errors.WithStack(ruleerrors.ErrMerchantParentIDMustNotBeEmpty)
	}
	if len(members.LockArgs) != 0 {
		return nil, errors.Wrapf(ruleerrors.ErrMerchantLockArgsMustBeEmpty, "found lock_args %x", members.LockArgs)
	}
	if len(members.MultisigArgs) != 0 {
		return nil, errors.Wrapf(ruleerrors.ErrMerchantMultisigArgsMustBeEmpty,
			"found multisig_args %x", members.MultisigArgs)
	}

	custodianCell, err := gv.permissionVerifier.FindGovernanceCell(externalapi.RoleCustodian,
		externalapi.SourceCellDep)
	if err != nil {
		return nil, err
	}
	expectedParentID := custodianCell.TypeArgs.CellID.ByteSlice()
	if !bytes.Equal(members.ParentID, expectedParentID) {
		return nil, errors.Wrapf(ruleerrors.ErrMerchantParentIDMismatch,
			"expected parent_id %x, found %x", expectedParentID, members.ParentID)
	}
	return members, nil
}
