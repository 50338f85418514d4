package cache

// Report headers and the width of the rule printed under them.
const (
	DetectionHeader = "📊 Cache Detection Results:"
	PurgeHeader     = "📋 Cache Clearing Results:"
	RuleWidth       = 50
)
