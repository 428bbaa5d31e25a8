package config

// NewRoleMapForTest creates a RoleMap config for testing purposes
func NewRoleMapForTest(path string) *RoleMap {
	return &RoleMap{path: path}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(notify bool, botToken, channel string) *Slack {
	return &Slack{
		notify:   notify,
		botToken: botToken,
		channel:  channel,
	}
}
