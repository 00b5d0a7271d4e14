package commands

import (
	"flag"
	"fmt"
)

// VERSION is the chaterp-app-sheets release version, set at build time with
// -ldflags "-X github.com/ydg/chaterp-app-sheets/commands.VERSION=v0.1.0"
var VERSION = "v0.1.x"

// VersionCmd is an initialized Version command for the main() command list
var VersionCmd = Version{}

// Version is a CLI command implementation that displays the CLI version information.
type Version struct {
}

func (c *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

// Execute prints the current chaterp-app-sheets version
func (c *Version) Execute(...any) error {
	fmt.Printf("%s\n", VERSION)

	return nil
}

// Returns 'version'
func (c *Version) Name() string {
	return "version"
}

// Description returns the 'version' command short form help
func (c *Version) Description() string {
	return "Displays the current version"
}

// Usage returns the string describing the additional options for the 'version' command
func (c *Version) Usage() string {
	return ""
}

// Help returns the 'version' command long form help
func (c *Version) Help() {
	fmt.Println("Displays the chaterp-app-sheets version in the format v<major>.<minor>.<build> e.g. v0.1.0")
	fmt.Println()
}
