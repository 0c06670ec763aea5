package trialwh

var (
	// Version of trialwh.
	Version = "v0.1.0"

	// Build timestamp, set during compilation.
	Build = "n/a"
)
