// internal/version/version.go
package version

// Version is the release tag, overridable at build time via
// -ldflags "-X fqdx/internal/version.Version=...".
var Version = "0.2.0"
