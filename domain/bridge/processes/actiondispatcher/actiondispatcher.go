package actiondispatcher

import (
	"unicode/utf8"

	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/pkg/errors"
)

// actionWitnessVersion is the only action witness layout defined.
const actionWitnessVersion = 0

type actionDispatcher struct {
	host        externalapi.Host
	cellIndexer model.CellIndexer
}

// New instantiates a new ActionDispatcher
func New(host externalapi.Host, cellIndexer model.CellIndexer) model.ActionDispatcher {
	return &actionDispatcher{
		host:        host,
		cellIndexer: cellIndexer,
	}
}

// Action reads the action the transaction declares. The action witness is
// the first witness following the input witnesses.
func (ad *actionDispatcher) Action() (externalapi.Action, error) {
	index, err := ad.cellIndexer.InputCount()
	if err != nil {
		return 0, err
	}

	witness, err := ad.host.LoadWitness(index)
	if err != nil {
		if errors.Is(err, externalapi.ErrIndexOutOfBound) {
			log.Warnf("No action witness at witnesses[%d]", index)
			return 0, errors.Wrapf(ruleerrors.ErrActionNotFound, "witnesses[%d] does not exist", index)
		}
		return 0, ruleerrors.FromHostError(err)
	}
	if len(witness) == 0 {
		log.Warnf("Empty action witness at witnesses[%d]", index)
		return 0, errors.Wrapf(ruleerrors.ErrActionNotFound, "witnesses[%d] is empty", index)
	}

	if witness[0] != actionWitnessVersion {
		return 0, errors.Wrapf(ruleerrors.ErrActionVersionUnknown,
			"witnesses[%d] declares version %d", index, witness[0])
	}

	name := witness[1:]
	if !utf8.Valid(name) {
		return 0, errors.Wrapf(ruleerrors.ErrActionUndefined, "witnesses[%d] action 0x%x", index, name)
	}
	action, ok := externalapi.ActionFromName(string(name))
	if !ok {
		return 0, errors.Wrapf(ruleerrors.ErrActionUndefined, "witnesses[%d] action 0x%x", index, name)
	}
	return action, nil
}

// Dispatch runs the handler of the declared action. Actions outside
// handlers are not supported by the running validator.
func (ad *actionDispatcher) Dispatch(handlers map[externalapi.Action]model.ActionHandler) error {
	action, err := ad.Action()
	if err != nil {
		return err
	}
	log.Debugf("==== Action %s ====", action)

	handler, ok := handlers[action]
	if !ok {
		return errors.Wrapf(ruleerrors.ErrActionNotSupported, "action %s", action)
	}
	return handler()
}
