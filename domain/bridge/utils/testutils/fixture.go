package testutils

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/deployment"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/domain/bridge/utils/hashes"
	"github.com/cellbridge/bridged/domain/bridge/utils/molecule"
	"lukechampine.com/uint128"
)

// Fixture is a complete deployment of the bridge: config, custodian and
// merchant groups, a tick type and a token.
type Fixture struct {
	Params *deployment.Params
	Config *externalapi.BridgeConfig

	CustodianMembers      [][]byte
	CustodianMultisigArgs []byte
	CustodianLockArgs     []byte
	CustodianLock         *externalapi.Script
	CustodianCellID       *externalapi.DomainHash

	MerchantLocks  []*externalapi.Script
	MerchantCellID *externalapi.DomainHash

	TokenID []byte
}

// NewFixture returns a devnet deployment with a 2-of-3 custodian group and
// two merchants.
func NewFixture() *Fixture {
	params := deployment.DevnetParams.Clone()

	config := externalapi.NewDefaultBridgeConfig()
	config.GovernanceMemberCellTypeID = *HashFromSeed(0x11)
	config.TickCellTypeID = *HashFromSeed(0x12)
	config.TokenInfoCellTypeID = *HashFromSeed(0x13)
	config.TokenCellTypeID = *HashFromSeed(0x14)
	config.AlwaysSuccessTypeID = *HashFromSeed(0x15)
	config.OmniLockTypeID = *HashFromSeed(0x16)
	config.TokenOwnerTypeID = *HashFromSeed(0x17)

	custodianMembers := [][]byte{
		bytes.Repeat([]byte{0xc1}, hashes.MultisigFingerprintSize),
		bytes.Repeat([]byte{0xc2}, hashes.MultisigFingerprintSize),
		bytes.Repeat([]byte{0xc3}, hashes.MultisigFingerprintSize),
	}
	multisigArgs := []byte{0, 0, 2}
	lockArgs, err := hashes.BuildOmniLockMultisigArgs(multisigArgs[1], multisigArgs[2], custodianMembers)
	if err != nil {
		panic(err)
	}

	secp := params.OwnerLock.CodeHash
	return &Fixture{
		Params:                params,
		Config:                config,
		CustodianMembers:      custodianMembers,
		CustodianMultisigArgs: multisigArgs,
		CustodianLockArgs:     lockArgs,
		CustodianLock:         externalapi.NewScript(&config.OmniLockTypeID, externalapi.HashTypeType, lockArgs),
		CustodianCellID:       HashFromSeed(0x21),
		MerchantLocks: []*externalapi.Script{
			externalapi.NewScript(&secp, externalapi.HashTypeType, bytes.Repeat([]byte{0xa1}, 20)),
			externalapi.NewScript(&secp, externalapi.HashTypeType, bytes.Repeat([]byte{0xa2}, 20)),
		},
		MerchantCellID: HashFromSeed(0x22),
		TokenID:        HashFromSeed(0x31).ByteSlice(),
	}
}

// ConfigType returns the type script of the config cell.
func (f *Fixture) ConfigType() *externalapi.Script {
	return externalapi.NewScript(f.Params.ConfigCellTypeID, externalapi.HashTypeType, nil)
}

// ConfigCell returns the config cell holding f.Config.
func (f *Fixture) ConfigCell() *txhost.Cell {
	return f.ConfigCellWithData(celldata.SerializeConfigRecords(celldata.ConfigRecordsOf(f.Config)))
}

// ConfigCellWithData returns a config cell holding data.
func (f *Fixture) ConfigCellWithData(data []byte) *txhost.Cell {
	return &txhost.Cell{
		Output: &externalapi.CellOutput{Capacity: 1000, Lock: f.Params.OwnerLock.Clone(), Type: f.ConfigType()},
		Data:   data,
	}
}

// AlwaysSuccessLock returns the lock anyone can unlock.
func (f *Fixture) AlwaysSuccessLock() *externalapi.Script {
	return externalapi.NewScript(&f.Config.AlwaysSuccessTypeID, externalapi.HashTypeType, nil)
}

// GovernanceType returns the type script of a GovernanceMemberCell.
func (f *Fixture) GovernanceType(role externalapi.Role, cellID *externalapi.DomainHash) *externalapi.Script {
	args := celldata.SerializeGovernanceTypeArgs(&externalapi.GovernanceTypeArgs{Role: role, CellID: *cellID})
	return externalapi.NewScript(&f.Config.GovernanceMemberCellTypeID, externalapi.HashTypeType, args)
}

// CustodianMembersData returns the data of the custodian cell.
func (f *Fixture) CustodianMembersData() *externalapi.GovernanceMembers {
	return &externalapi.GovernanceMembers{
		ParentID:     []byte{},
		Members:      f.CustodianMembers,
		MultisigArgs: f.CustodianMultisigArgs,
		LockArgs:     f.CustodianLockArgs,
	}
}

// MerchantMembersData returns the data of the merchant cell listing locks.
func (f *Fixture) MerchantMembersData(locks ...*externalapi.Script) *externalapi.GovernanceMembers {
	members := make([][]byte, len(locks))
	for i, lock := range locks {
		members[i] = molecule.SerializeScript(lock)
	}
	return &externalapi.GovernanceMembers{
		ParentID:     f.CustodianCellID.ByteSlice(),
		Members:      members,
		MultisigArgs: []byte{},
		LockArgs:     []byte{},
	}
}

// GovernanceCell returns a GovernanceMemberCell.
func (f *Fixture) GovernanceCell(role externalapi.Role, cellID *externalapi.DomainHash,
	lock *externalapi.Script, members *externalapi.GovernanceMembers) *txhost.Cell {

	return &txhost.Cell{
		Output: &externalapi.CellOutput{Capacity: 1000, Lock: lock.Clone(), Type: f.GovernanceType(role, cellID)},
		Data:   celldata.SerializeGovernanceMembers(members),
	}
}

// CustodianCell returns the custodian cell of the deployment.
func (f *Fixture) CustodianCell() *txhost.Cell {
	return f.GovernanceCell(externalapi.RoleCustodian, f.CustodianCellID, f.Params.OwnerLock, f.CustodianMembersData())
}

// MerchantCell returns the merchant cell of the deployment.
func (f *Fixture) MerchantCell() *txhost.Cell {
	return f.GovernanceCell(externalapi.RoleMerchant, f.MerchantCellID, f.AlwaysSuccessLock(),
		f.MerchantMembersData(f.MerchantLocks...))
}

// TickType returns the type script of tick cells.
func (f *Fixture) TickType() *externalapi.Script {
	return externalapi.NewScript(&f.Config.TickCellTypeID, externalapi.HashTypeType, f.Config.TickCellTypeArgs)
}

// NewTick returns a ticket of the first merchant for the fixture's token.
func (f *Fixture) NewTick(tickType externalapi.TickType, value uint64) *externalapi.TickCell {
	return &externalapi.TickCell{
		TickType:    tickType,
		TokenID:     append([]byte{}, f.TokenID...),
		Value:       uint128.From64(value),
		Merchant:    f.MerchantLocks[0].Clone(),
		CoinType:    []byte("BTC"),
		TxHash:      bytes.Repeat([]byte{0xee}, 32),
		ReceiptAddr: []byte("bc1qreceipt"),
	}
}

// TickCell returns a tick cell holding tick.
func (f *Fixture) TickCell(tick *externalapi.TickCell) *txhost.Cell {
	return &txhost.Cell{
		Output: &externalapi.CellOutput{Capacity: 1000, Lock: f.AlwaysSuccessLock(), Type: f.TickType()},
		Data:   celldata.SerializeTick(tick),
	}
}

// TokenType returns the type script of the cells of tokenID.
func (f *Fixture) TokenType(tokenID []byte) *externalapi.Script {
	return externalapi.NewScript(&f.Config.TokenCellTypeID, externalapi.HashTypeType, tokenID)
}

// TokenCell returns a cell holding amount of the fixture's token.
func (f *Fixture) TokenCell(lock *externalapi.Script, amount uint64) *txhost.Cell {
	return f.TokenCellOf(f.TokenID, lock, amount)
}

// TokenCellOf returns a cell holding amount of tokenID.
func (f *Fixture) TokenCellOf(tokenID []byte, lock *externalapi.Script, amount uint64) *txhost.Cell {
	return &txhost.Cell{
		Output: &externalapi.CellOutput{Capacity: 1000, Lock: lock.Clone(), Type: f.TokenType(tokenID)},
		Data:   celldata.SerializeTokenAmount(uint128.From64(amount)),
	}
}

// Host returns a host running script over transaction.
func (f *Fixture) Host(transaction *txhost.Transaction, script *externalapi.Script) externalapi.Host {
	return txhost.New(transaction, script)
}
