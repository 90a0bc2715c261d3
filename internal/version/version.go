package version

// Version is overridden at build time with -ldflags "-X chromcheck/internal/version.Version=...".
var Version = "dev"
