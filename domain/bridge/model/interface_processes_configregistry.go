package model

import "github.com/cellbridge/bridged/domain/bridge/model/externalapi"

// ConfigRegistry gives access to the config cell of the transaction. The
// config cell is read at most once per registry.
type ConfigRegistry interface {
	Config() (*externalapi.BridgeConfig, error)
	CheckSystemStatus() error
	AlwaysSuccessLock() (*externalapi.Script, error)
	CustodianLock(custodianLockArgs []byte) (*externalapi.Script, error)
}
