package cli

// Values shared by the commands.
const (
	// QuickRuleWidth is the width of the rule under the quick test header.
	QuickRuleWidth = 30
	// ServerSoftwareEnv names the variable the hosting web server exports.
	ServerSoftwareEnv = "SERVER_SOFTWARE"
	// setCommandArgs is the number of arguments expected by config set.
	setCommandArgs = 2
)
