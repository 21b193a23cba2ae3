package externalapi

import "fmt"

// Role of a GovernanceMemberCell.
type Role uint8

// Role values
const (
	RoleCustodian Role = 0
	RoleMerchant  Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleCustodian:
		return "Custodian"
	case RoleMerchant:
		return "Merchant"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// GovernanceTypeArgs are the type script args of a GovernanceMemberCell.
type GovernanceTypeArgs struct {
	Role   Role
	CellID DomainHash
}

// GovernanceMembers is the data of a GovernanceMemberCell.
//
// For a custodian, Members are multisig member fingerprints, MultisigArgs
// is [reserved, require_first_n, threshold] and LockArgs the derived
// multisig lock args. For a merchant, Members are serialized lock scripts
// and ParentID is the custodian's cell id.
type GovernanceMembers struct {
	ParentID     []byte
	Members      [][]byte
	MultisigArgs []byte
	LockArgs     []byte
}
