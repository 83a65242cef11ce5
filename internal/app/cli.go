package app

import "github.com/spf13/pflag"

// RegisterFlags registers all search flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("path", "p", "", "Directory or file to search (default: current directory)")
	flags.BoolP("silent", "s", false, "Suppress the banner and progress notices")
	flags.StringP("find", "f", "", "Keyword to count; empty disables the search")
	registerCommonFlags(flags)
	flags.Int("width", 0, "Report line width (default: terminal width or 60)")
	flags.Bool("no-color", false, "Disable colored notices")
}

// RegisterServeFlags registers the flags of the MCP server command
func RegisterServeFlags(flags *pflag.FlagSet) {
	registerCommonFlags(flags)
	flags.Int("width", 0, "Report line width (default: 60)")
}

func registerCommonFlags(flags *pflag.FlagSet) {
	flags.IntP("workers", "w", 1, "Maximum concurrent filesystem operations")
	flags.IntP("max-depth", "d", 0, "Maximum directory depth below the root (0: unlimited)")
	flags.Bool("gitignore", false, "Skip paths matched by the root .gitignore")
	flags.StringSliceP("extensions", "e", nil, "File extensions to scan (comma-separated, default: built-in set)")
	flags.StringP("log-level", "l", "", "Log level: debug, info, warn or error (default: warn)")
}
