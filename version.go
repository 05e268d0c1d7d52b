package mussel

// Version is the interpreter release. BuildDate is stamped by release builds
// via -ldflags; "dev" marks a local build.
var (
	Version   = "0.4.0"
	BuildDate = "dev"
)
