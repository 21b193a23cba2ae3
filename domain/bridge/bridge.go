package bridge

import (
	"fmt"

	"github.com/cellbridge/bridged/domain/bridge/deployment"
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/processes/actiondispatcher"
	"github.com/cellbridge/bridged/domain/bridge/processes/cellindexer"
	"github.com/cellbridge/bridged/domain/bridge/processes/configregistry"
	"github.com/cellbridge/bridged/domain/bridge/processes/configvalidator"
	"github.com/cellbridge/bridged/domain/bridge/processes/consistencyverifier"
	"github.com/cellbridge/bridged/domain/bridge/processes/governancevalidator"
	"github.com/cellbridge/bridged/domain/bridge/processes/permissionverifier"
	"github.com/cellbridge/bridged/domain/bridge/processes/tickvalidator"
	"github.com/cellbridge/bridged/domain/bridge/processes/tokenvalidator"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/infrastructure/logger"
	"github.com/pkg/errors"
)

// Kind names one of the validators shipped with the bridge.
type Kind uint8

// The validators, one per script kind
const (
	KindConfig Kind = iota
	KindGovernance
	KindTick
	KindToken
)

var kindNames = map[Kind]string{
	KindConfig:     "config",
	KindGovernance: "governance",
	KindTick:       "tick",
	KindToken:      "token",
}

func (kind Kind) String() string {
	name, ok := kindNames[kind]
	if !ok {
		return fmt.Sprintf("<unknown kind %d>", kind)
	}
	return name
}

// ParseKind returns the Kind named name.
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unknown validator kind %q", name)
}

// invocation holds the components of a single Run. Nothing in it
// outlives the call to Run.
type invocation struct {
	cellIndexer         model.CellIndexer
	configRegistry      model.ConfigRegistry
	consistencyVerifier model.ConsistencyVerifier
	permissionVerifier  model.PermissionVerifier
	actionDispatcher    model.ActionDispatcher
}

func newInvocation(host externalapi.Host, params *deployment.Params) *invocation {
	cellIndexer := cellindexer.New(host)
	configRegistry := configregistry.New(
		host,
		cellIndexer,
		params.ConfigCellTypeID)
	consistencyVerifier := consistencyverifier.New(host)
	permissionVerifier := permissionverifier.New(
		host,
		cellIndexer,
		configRegistry,
		params)
	actionDispatcher := actiondispatcher.New(
		host,
		cellIndexer)

	return &invocation{
		cellIndexer:         cellIndexer,
		configRegistry:      configRegistry,
		consistencyVerifier: consistencyVerifier,
		permissionVerifier:  permissionVerifier,
		actionDispatcher:    actionDispatcher,
	}
}

// NewValidator builds the validator of the given kind over host, with
// components of its own.
func NewValidator(kind Kind, host externalapi.Host, params *deployment.Params) (model.Validator, error) {
	c := newInvocation(host, params)
	switch kind {
	case KindConfig:
		return configvalidator.New(
			host,
			c.cellIndexer,
			c.consistencyVerifier,
			c.permissionVerifier,
			c.actionDispatcher,
			params), nil
	case KindGovernance:
		return governancevalidator.New(
			host,
			c.cellIndexer,
			c.configRegistry,
			c.consistencyVerifier,
			c.permissionVerifier,
			c.actionDispatcher,
			params), nil
	case KindTick:
		return tickvalidator.New(
			host,
			c.cellIndexer,
			c.configRegistry,
			c.consistencyVerifier,
			c.permissionVerifier,
			c.actionDispatcher), nil
	case KindToken:
		return tokenvalidator.New(
			host,
			c.cellIndexer,
			c.configRegistry,
			c.permissionVerifier), nil
	}
	return nil, errors.Errorf("unknown validator kind %d", kind)
}

// Run validates the transaction behind host with the validator of the given
// kind. A nil error means the transaction is accepted.
func Run(kind Kind, host externalapi.Host, params *deployment.Params) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, fmt.Sprintf("Run %s", kind))
	defer onEnd()

	validator, err := NewValidator(kind, host, params)
	if err != nil {
		return err
	}
	err = validator.Validate()
	if err != nil {
		log.Debugf("The %s validator rejected the transaction: %s", kind, err)
		return err
	}
	log.Debugf("The %s validator accepted the transaction", kind)
	return nil
}

// ExitCode returns the code the host reports for the outcome of Run.
func ExitCode(err error) int8 {
	return ruleerrors.ExitCode(err)
}
