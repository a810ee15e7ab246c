package config

// ManifestFileName is the manifest looked up by the CLI when -manifest is
// not given.
const ManifestFileName = "fixed.yaml"

// ManifestFileNames are all recognized manifest file names, in lookup order.
var ManifestFileNames = []string{"fixed.yaml", "fixed.yml"}

// DefaultSentinel is the member name counted by grouped aggregators when a
// manifest does not name one.
const DefaultSentinel = "baz"

// Aggregator kinds accepted in a manifest
const (
	KindCoefficients = "coefficients"
	KindPaired       = "paired"
	KindGrouped      = "grouped"
)

// Kinds lists the aggregator kinds in documentation order.
var Kinds = []string{KindCoefficients, KindPaired, KindGrouped}

// EnvNoColor disables coloured CLI output when set (https://no-color.org/).
const EnvNoColor = "NO_COLOR"
