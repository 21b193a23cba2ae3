package model

// Validator is a top level entry point run by the host for one script.
type Validator interface {
	Validate() error
}
