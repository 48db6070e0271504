package version

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/wikiexport/internal/version.Version=v0.3.0".
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `wikiexport --version`.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
