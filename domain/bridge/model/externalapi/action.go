package externalapi

// Action is the operation a transaction declares in its action witness.
type Action uint8

// Action values
const (
	ActionDeployConfig Action = iota
	ActionUpdateConfig
	ActionInitGovernance
	ActionUpdateOwner
	ActionUpdateCustodians
	ActionUpdateMerchants
	ActionDeployToken
	ActionRequestMint
	ActionConfirmMint
	ActionRejectMint
	ActionRequestBurn
	ActionConfirmBurn
	ActionRejectBurn
)

var actionNames = map[Action]string{
	ActionDeployConfig:     "deploy_config",
	ActionUpdateConfig:     "update_config",
	ActionInitGovernance:   "init_governance",
	ActionUpdateOwner:      "update_owner",
	ActionUpdateCustodians: "update_custodians",
	ActionUpdateMerchants:  "update_merchants",
	ActionDeployToken:      "deploy_token",
	ActionRequestMint:      "request_mint",
	ActionConfirmMint:      "confirm_mint",
	ActionRejectMint:       "reject_mint",
	ActionRequestBurn:      "request_burn",
	ActionConfirmBurn:      "confirm_burn",
	ActionRejectBurn:       "reject_burn",
}

var actionsByName = func() map[string]Action {
	actions := make(map[string]Action, len(actionNames))
	for action, name := range actionNames {
		actions[name] = action
	}
	return actions
}()

// ActionFromName returns the action whose witness name is name.
func ActionFromName(name string) (Action, bool) {
	action, ok := actionsByName[name]
	return action, ok
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
