package externalapi

import (
	"bytes"
	"fmt"
)

// ScriptHashType tells the host how a script's CodeHash refers to its code.
type ScriptHashType uint8

// ScriptHashType values
const (
	HashTypeData  ScriptHashType = 0
	HashTypeType  ScriptHashType = 1
	HashTypeData1 ScriptHashType = 2
)

func (t ScriptHashType) String() string {
	switch t {
	case HashTypeData:
		return "data"
	case HashTypeType:
		return "type"
	case HashTypeData1:
		return "data1"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// Script identifies the validator logic bound to a cell as its lock or type.
type Script struct {
	CodeHash DomainHash
	HashType ScriptHashType
	Args     []byte
}

// NewScript returns a script over a copy of args.
func NewScript(codeHash *DomainHash, hashType ScriptHashType, args []byte) *Script {
	argsClone := make([]byte, len(args))
	copy(argsClone, args)
	return &Script{CodeHash: *codeHash, HashType: hashType, Args: argsClone}
}

// Clone returns a clone of Script
func (script *Script) Clone() *Script {
	if script == nil {
		return nil
	}
	return NewScript(&script.CodeHash, script.HashType, script.Args)
}

// Equal returns whether script equals to other
func (script *Script) Equal(other *Script) bool {
	if script == nil || other == nil {
		return script == other
	}
	return script.CodeHash == other.CodeHash &&
		script.HashType == other.HashType &&
		bytes.Equal(script.Args, other.Args)
}

func (script *Script) String() string {
	if script == nil {
		return "<none>"
	}
	return fmt.Sprintf("Script{code_hash: %s, hash_type: %s, args: %x}", script.CodeHash, script.HashType, script.Args)
}
