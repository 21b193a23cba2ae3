package model

import "github.com/cellbridge/bridged/domain/bridge/model/externalapi"

// ActionHandler validates a transaction for one action.
type ActionHandler func() error

// ActionDispatcher reads the action witness of a transaction and runs the
// handler registered for it.
type ActionDispatcher interface {
	Action() (externalapi.Action, error)
	Dispatch(handlers map[externalapi.Action]ActionHandler) error
}
