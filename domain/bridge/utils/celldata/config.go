package celldata

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/molecule"
	"github.com/cellbridge/bridged/util/binaryserializer"
	"github.com/pkg/errors"
)

const configCellName = "ConfigCell"

const configKeySize = 4

// ConfigRecord is one key/value record of the config cell.
type ConfigRecord struct {
	Key   externalapi.ConfigKey
	Value []byte
}

// ParseConfigRecords returns the records of config cell data whose keys
// are known. Records with unknown or retired keys are skipped.
func ParseConfigRecords(data []byte) ([]ConfigRecord, error) {
	body, err := splitVersion(configCellName, data)
	if err != nil {
		return nil, err
	}
	items, err := molecule.DeserializeBytesVec(body)
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s: %s", configCellName, err)
	}
	records := make([]ConfigRecord, 0, len(items))
	for i, item := range items {
		rawKey, err := binaryserializer.Uint32At(item, 0)
		if err != nil {
			return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed,
				"%s: record %d has no key: %s", configCellName, i, err)
		}
		key := externalapi.ConfigKey(rawKey)
		if !isKnownConfigKey(key) {
			log.Warnf("Skipping config record %d: key %d is removed or not defined", i, rawKey)
			continue
		}
		records = append(records, ConfigRecord{Key: key, Value: item[configKeySize:]})
	}
	return records, nil
}

func isKnownConfigKey(key externalapi.ConfigKey) bool {
	switch key {
	case externalapi.ConfigKeySystemStatus,
		externalapi.ConfigKeyGovernanceMemberCellTypeID, externalapi.ConfigKeyGovernanceMemberCellTypeArgs,
		externalapi.ConfigKeyTickCellTypeID, externalapi.ConfigKeyTickCellTypeArgs,
		externalapi.ConfigKeyTokenInfoCellTypeID, externalapi.ConfigKeyTokenInfoCellTypeArgs,
		externalapi.ConfigKeyTokenCellTypeID, externalapi.ConfigKeyTokenCellTypeArgs,
		externalapi.ConfigKeyAlwaysSuccessTypeID, externalapi.ConfigKeyAlwaysSuccessTypeArgs,
		externalapi.ConfigKeyOmniLockTypeID, externalapi.ConfigKeyOmniLockTypeArgs,
		externalapi.ConfigKeyTokenOwnerTypeID, externalapi.ConfigKeyTokenOwnerTypeArgs,
		externalapi.ConfigKeyTokenInfoCellTypeOutPoint:
		return true
	}
	return false
}

// ParseConfig parses config cell data on top of the default config.
func ParseConfig(data []byte) (*externalapi.BridgeConfig, error) {
	records, err := ParseConfigRecords(data)
	if err != nil {
		return nil, err
	}
	config := externalapi.NewDefaultBridgeConfig()
	for _, record := range records {
		err := applyConfigRecord(config, record)
		if err != nil {
			return nil, err
		}
	}
	return config, nil
}

func applyConfigRecord(config *externalapi.BridgeConfig, record ConfigRecord) error {
	value := append([]byte{}, record.Value...)

	typeID := func(target *externalapi.DomainHash) error {
		hash, err := externalapi.NewDomainHashFromByteSlice(value)
		if err != nil {
			return errors.Wrapf(ruleerrors.ErrParseCellDataFailed,
				"%s: type id of key %d: %s", configCellName, record.Key, err)
		}
		*target = *hash
		return nil
	}

	switch record.Key {
	case externalapi.ConfigKeySystemStatus:
		if len(value) == 0 || value[0] > byte(externalapi.SystemStatusOn) {
			return errors.Wrapf(ruleerrors.ErrParseCellDataFailed,
				"%s: can not parse %x to a system status", configCellName, value)
		}
		config.SystemStatus = externalapi.SystemStatus(value[0])
	case externalapi.ConfigKeyGovernanceMemberCellTypeID:
		return typeID(&config.GovernanceMemberCellTypeID)
	case externalapi.ConfigKeyGovernanceMemberCellTypeArgs:
		config.GovernanceMemberCellTypeArgs = value
	case externalapi.ConfigKeyTickCellTypeID:
		return typeID(&config.TickCellTypeID)
	case externalapi.ConfigKeyTickCellTypeArgs:
		config.TickCellTypeArgs = value
	case externalapi.ConfigKeyTokenInfoCellTypeID:
		return typeID(&config.TokenInfoCellTypeID)
	case externalapi.ConfigKeyTokenInfoCellTypeArgs:
		config.TokenInfoCellTypeArgs = value
	case externalapi.ConfigKeyTokenCellTypeID:
		return typeID(&config.TokenCellTypeID)
	case externalapi.ConfigKeyTokenCellTypeArgs:
		config.TokenCellTypeArgs = value
	case externalapi.ConfigKeyAlwaysSuccessTypeID:
		return typeID(&config.AlwaysSuccessTypeID)
	case externalapi.ConfigKeyAlwaysSuccessTypeArgs:
		config.AlwaysSuccessTypeArgs = value
	case externalapi.ConfigKeyOmniLockTypeID:
		return typeID(&config.OmniLockTypeID)
	case externalapi.ConfigKeyOmniLockTypeArgs:
		config.OmniLockTypeArgs = value
	case externalapi.ConfigKeyTokenOwnerTypeID:
		return typeID(&config.TokenOwnerTypeID)
	case externalapi.ConfigKeyTokenOwnerTypeArgs:
		config.TokenOwnerTypeArgs = value
	case externalapi.ConfigKeyTokenInfoCellTypeOutPoint:
		config.TokenInfoCellTypeOutPoint = value
	}
	return nil
}

// SerializeConfigRecords builds config cell data out of records.
func SerializeConfigRecords(records []ConfigRecord) []byte {
	items := make([][]byte, len(records))
	for i, record := range records {
		item := make([]byte, configKeySize, configKeySize+len(record.Value))
		for j := 0; j < configKeySize; j++ {
			item[j] = byte(uint32(record.Key) >> (8 * j))
		}
		items[i] = append(item, record.Value...)
	}
	return withVersion(molecule.SerializeBytesVec(items))
}

// ConfigRecordsOf returns the records describing config.
func ConfigRecordsOf(config *externalapi.BridgeConfig) []ConfigRecord {
	return []ConfigRecord{
		{externalapi.ConfigKeySystemStatus, []byte{byte(config.SystemStatus)}},
		{externalapi.ConfigKeyGovernanceMemberCellTypeID, config.GovernanceMemberCellTypeID.ByteSlice()},
		{externalapi.ConfigKeyGovernanceMemberCellTypeArgs, config.GovernanceMemberCellTypeArgs},
		{externalapi.ConfigKeyTickCellTypeID, config.TickCellTypeID.ByteSlice()},
		{externalapi.ConfigKeyTickCellTypeArgs, config.TickCellTypeArgs},
		{externalapi.ConfigKeyTokenInfoCellTypeID, config.TokenInfoCellTypeID.ByteSlice()},
		{externalapi.ConfigKeyTokenInfoCellTypeArgs, config.TokenInfoCellTypeArgs},
		{externalapi.ConfigKeyTokenCellTypeID, config.TokenCellTypeID.ByteSlice()},
		{externalapi.ConfigKeyTokenCellTypeArgs, config.TokenCellTypeArgs},
		{externalapi.ConfigKeyAlwaysSuccessTypeID, config.AlwaysSuccessTypeID.ByteSlice()},
		{externalapi.ConfigKeyAlwaysSuccessTypeArgs, config.AlwaysSuccessTypeArgs},
		{externalapi.ConfigKeyOmniLockTypeID, config.OmniLockTypeID.ByteSlice()},
		{externalapi.ConfigKeyOmniLockTypeArgs, config.OmniLockTypeArgs},
		{externalapi.ConfigKeyTokenOwnerTypeID, config.TokenOwnerTypeID.ByteSlice()},
		{externalapi.ConfigKeyTokenOwnerTypeArgs, config.TokenOwnerTypeArgs},
		{externalapi.ConfigKeyTokenInfoCellTypeOutPoint, config.TokenInfoCellTypeOutPoint},
	}
}
