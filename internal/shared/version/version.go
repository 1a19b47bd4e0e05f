// Package version records the build version stamped in at link time.
package version

// Current is overridden via -ldflags on release builds.
var Current = "dev"
