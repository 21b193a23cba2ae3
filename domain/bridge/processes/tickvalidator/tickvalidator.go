package tickvalidator

import (
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/infrastructure/logger"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

const (
	tickCellName  = "TickCell"
	tokenCellName = "TokenCell"
)

var (
	noCells   = model.CellCountRange{Ordering: model.Equal, Bound: 0}
	someCells = model.CellCountRange{Ordering: model.Greater, Bound: 0}
)

// tickValidator is the type script of TickCells: tickets a merchant opens
// to request a mint or a burn, and the custodians close by confirming or
// rejecting them.
type tickValidator struct {
	host                externalapi.Host
	cellIndexer         model.CellIndexer
	configRegistry      model.ConfigRegistry
	consistencyVerifier model.ConsistencyVerifier
	permissionVerifier  model.PermissionVerifier
	actionDispatcher    model.ActionDispatcher
}

// cellPositions are the positions of the tick cells and of the token
// cells in a transaction.
type cellPositions struct {
	tickInputs   []int
	tickOutputs  []int
	tokenInputs  []int
	tokenOutputs []int
}

// New instantiates a new TickCell Validator
func New(host externalapi.Host,
	cellIndexer model.CellIndexer,
	configRegistry model.ConfigRegistry,
	consistencyVerifier model.ConsistencyVerifier,
	permissionVerifier model.PermissionVerifier,
	actionDispatcher model.ActionDispatcher) model.Validator {

	return &tickValidator{
		host:                host,
		cellIndexer:         cellIndexer,
		configRegistry:      configRegistry,
		consistencyVerifier: consistencyVerifier,
		permissionVerifier:  permissionVerifier,
		actionDispatcher:    actionDispatcher,
	}
}

func (tv *tickValidator) Validate() error {
	log.Debugf("====== Running tick-cell-type ======")

	positions, err := tv.findCells()
	if err != nil {
		return err
	}

	return tv.actionDispatcher.Dispatch(map[externalapi.Action]model.ActionHandler{
		externalapi.ActionRequestMint: func() error {
			return tv.request(positions, externalapi.TickTypeMint)
		},
		externalapi.ActionConfirmMint: func() error {
			return tv.confirmMint(positions)
		},
		externalapi.ActionRejectMint: func() error {
			return tv.rejectMint(positions)
		},
		externalapi.ActionRequestBurn: func() error {
			return tv.request(positions, externalapi.TickTypeBurn)
		},
		externalapi.ActionConfirmBurn: func() error {
			return tv.confirmBurn(positions)
		},
		externalapi.ActionRejectBurn: func() error {
			return tv.rejectBurn(positions)
		},
	})
}

func (tv *tickValidator) findCells() (*cellPositions, error) {
	script, err := tv.host.LoadScript()
	if err != nil {
		return nil, ruleerrors.FromHostError(err)
	}
	tickInputs, tickOutputs, err := tv.cellIndexer.FindCellsByScriptInInputsAndOutputs(
		externalapi.ScriptTypeType, script)
	if err != nil {
		return nil, err
	}

	config, err := tv.configRegistry.Config()
	if err != nil {
		return nil, err
	}
	tokenInputs, tokenOutputs, err := tv.cellIndexer.FindCellsByTypeIDInInputsAndOutputs(
		externalapi.ScriptTypeType, &config.TokenCellTypeID)
	if err != nil {
		return nil, err
	}

	return &cellPositions{
		tickInputs:   tickInputs,
		tickOutputs:  tickOutputs,
		tokenInputs:  tokenInputs,
		tokenOutputs: tokenOutputs,
	}, nil
}

func (tv *tickValidator) loadTick(index int, source externalapi.Source) (*externalapi.TickCell, error) {
	data, err := tv.host.LoadCellData(index, source)
	if err != nil {
		return nil, ruleerrors.FromHostError(err)
	}
	tick, err := celldata.ParseTick(data)
	if err != nil {
		return nil, err
	}
	log.Tracef("%s[%d] %s", source, index, logger.NewLogClosure(func() string {
		return spew.Sdump(tick)
	}))
	return tick, nil
}

func verifyTickType(tick *externalapi.TickCell, expected externalapi.TickType) error {
	if tick.TickType != expected {
		return errors.Wrapf(ruleerrors.ErrInvalidTickType, "expected a %s tick, found %s", expected, tick.TickType)
	}
	return nil
}
