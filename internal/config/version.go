package config

// Version is the applytrail binary version.
// Set at build time via: -ldflags "-X github.com/applytrail/applytrail/internal/config.Version=<tag>"
var Version = "dev"
