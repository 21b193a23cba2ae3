package celldata

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/molecule"
	"github.com/pkg/errors"
)

const (
	governanceCellName        = "GovernanceMemberCell"
	governanceMembersFieldNum = 4
)

// ParseGovernanceTypeArgs parses the type script args of a
// GovernanceMemberCell: a role byte followed by the 32-byte cell id.
func ParseGovernanceTypeArgs(args []byte) (*externalapi.GovernanceTypeArgs, error) {
	if len(args) < 3 {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellTypeArgsFailed,
			"%s: the type args are too short (%d bytes)", governanceCellName, len(args))
	}
	role := externalapi.Role(args[0])
	if role != externalapi.RoleCustodian && role != externalapi.RoleMerchant {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellTypeArgsFailed,
			"%s: unknown role %d", governanceCellName, args[0])
	}
	cellID, err := externalapi.NewDomainHashFromByteSlice(args[1:])
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellTypeArgsFailed,
			"%s: the cell id should be 32 bytes, but %d bytes found", governanceCellName, len(args)-1)
	}
	return &externalapi.GovernanceTypeArgs{Role: role, CellID: *cellID}, nil
}

// SerializeGovernanceTypeArgs builds the type script args of a
// GovernanceMemberCell.
func SerializeGovernanceTypeArgs(typeArgs *externalapi.GovernanceTypeArgs) []byte {
	return append([]byte{byte(typeArgs.Role)}, typeArgs.CellID.ByteSlice()...)
}

// ParseGovernanceMembers parses the data of a GovernanceMemberCell.
func ParseGovernanceMembers(data []byte) (*externalapi.GovernanceMembers, error) {
	body, err := splitVersion(governanceCellName, data)
	if err != nil {
		return nil, err
	}
	fields, err := molecule.DeserializeTable(body, governanceMembersFieldNum, true)
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s: %s", governanceCellName, err)
	}
	members := &externalapi.GovernanceMembers{}
	members.ParentID, err = molecule.DeserializeBytes(fields[0])
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s parent_id: %s", governanceCellName, err)
	}
	members.Members, err = molecule.DeserializeBytesVec(fields[1])
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s members: %s", governanceCellName, err)
	}
	members.MultisigArgs, err = molecule.DeserializeBytes(fields[2])
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s multisig_args: %s", governanceCellName, err)
	}
	members.LockArgs, err = molecule.DeserializeBytes(fields[3])
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s lock_args: %s", governanceCellName, err)
	}
	return members, nil
}

// SerializeGovernanceMembers builds the data of a GovernanceMemberCell.
func SerializeGovernanceMembers(members *externalapi.GovernanceMembers) []byte {
	return withVersion(molecule.SerializeTable(
		molecule.SerializeBytes(members.ParentID),
		molecule.SerializeBytesVec(members.Members),
		molecule.SerializeBytes(members.MultisigArgs),
		molecule.SerializeBytes(members.LockArgs),
	))
}
