package version

import "runtime/debug"

// Version is the vcs revision baked into the binary, "dev" when built
// without version control information.
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return "dev"
}()
