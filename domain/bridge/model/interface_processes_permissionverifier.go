package model

import "github.com/cellbridge/bridged/domain/bridge/model/externalapi"

// GovernanceCell is a resolved GovernanceMemberCell.
type GovernanceCell struct {
	Index    int
	Source   externalapi.Source
	TypeArgs *externalapi.GovernanceTypeArgs
	Members  *externalapi.GovernanceMembers
}

// PermissionVerifier checks who authorized a transaction.
type PermissionVerifier interface {
	VerifyInputHasOwnerLock(index int) error
	VerifyInputHasDeployLock(index int) error
	VerifyInputHasCustodianLock(index int) error
	VerifyInputHasMerchantLock(index int) error
	VerifyCellHasAlwaysSuccessLock(cellName string, index int, source externalapi.Source) error

	FindGovernanceCell(role externalapi.Role, source externalapi.Source) (*GovernanceCell, error)
	CustodianLock() (*externalapi.Script, error)
	VerifyCustodianLockNotInMerchants(merchants *externalapi.GovernanceMembers) error
}
