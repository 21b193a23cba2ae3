package externalapi

import "fmt"

// ConfigKey is the numeric key of a record in the config cell.
type ConfigKey uint32

// ConfigKey values. Keys 13 and 14 are retired.
const (
	ConfigKeySystemStatus                 ConfigKey = 0
	ConfigKeyGovernanceMemberCellTypeID   ConfigKey = 1
	ConfigKeyGovernanceMemberCellTypeArgs ConfigKey = 2
	ConfigKeyTickCellTypeID               ConfigKey = 3
	ConfigKeyTickCellTypeArgs             ConfigKey = 4
	ConfigKeyTokenInfoCellTypeID          ConfigKey = 5
	ConfigKeyTokenInfoCellTypeArgs        ConfigKey = 6
	ConfigKeyTokenCellTypeID              ConfigKey = 7
	ConfigKeyTokenCellTypeArgs            ConfigKey = 8
	ConfigKeyAlwaysSuccessTypeID          ConfigKey = 9
	ConfigKeyAlwaysSuccessTypeArgs        ConfigKey = 10
	ConfigKeyOmniLockTypeID               ConfigKey = 11
	ConfigKeyOmniLockTypeArgs             ConfigKey = 12
	ConfigKeyTokenOwnerTypeID             ConfigKey = 15
	ConfigKeyTokenOwnerTypeArgs           ConfigKey = 16
	ConfigKeyTokenInfoCellTypeOutPoint    ConfigKey = 17
)

// SystemStatus is the protocol halt switch.
type SystemStatus uint8

// SystemStatus values
const (
	SystemStatusOff SystemStatus = 0
	SystemStatusOn  SystemStatus = 1
)

func (s SystemStatus) String() string {
	switch s {
	case SystemStatusOff:
		return "Off"
	case SystemStatusOn:
		return "On"
	}
	return fmt.Sprintf("SystemStatus(%d)", uint8(s))
}

// BridgeConfig is the parsed content of the config cell.
type BridgeConfig struct {
	SystemStatus SystemStatus

	GovernanceMemberCellTypeID   DomainHash
	GovernanceMemberCellTypeArgs []byte
	TickCellTypeID               DomainHash
	TickCellTypeArgs             []byte
	TokenInfoCellTypeID          DomainHash
	TokenInfoCellTypeArgs        []byte
	TokenCellTypeID              DomainHash
	TokenCellTypeArgs            []byte
	AlwaysSuccessTypeID          DomainHash
	AlwaysSuccessTypeArgs        []byte
	OmniLockTypeID               DomainHash
	OmniLockTypeArgs             []byte
	TokenOwnerTypeID             DomainHash
	TokenOwnerTypeArgs           []byte
	TokenInfoCellTypeOutPoint    []byte
}

// NewDefaultBridgeConfig returns the config used for every key absent from
// the config cell: system on, zero type ids and args.
func NewDefaultBridgeConfig() *BridgeConfig {
	zeroArgs := func() []byte { return make([]byte, DomainHashSize) }
	return &BridgeConfig{
		SystemStatus:                 SystemStatusOn,
		GovernanceMemberCellTypeArgs: zeroArgs(),
		TickCellTypeArgs:             zeroArgs(),
		TokenInfoCellTypeArgs:        zeroArgs(),
		TokenCellTypeArgs:            zeroArgs(),
		AlwaysSuccessTypeArgs:        zeroArgs(),
		OmniLockTypeArgs:             zeroArgs(),
		TokenOwnerTypeArgs:           zeroArgs(),
		TokenInfoCellTypeOutPoint:    make([]byte, DomainHashSize+1),
	}
}
