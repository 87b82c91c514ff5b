package config

// DefaultConfigFilename is the file FindConfigFile looks for.
const DefaultConfigFilename = "lambdeploy.yaml"

// Defaults applied by [Config.ApplyDefaults].
const (
	DefaultSourceDir  = "src"
	DefaultWorkDir    = "."
	DefaultMemorySize = int32(128)
	DefaultTimeout    = int32(3)
)
