package cli

import (
	"strconv"

	"github.com/spf13/pflag"
)

// Shared run/scan flags
var (
	flagPattern    string
	flagExt        string
	flagWorkers    int
	flagFormat     string
	flagReport     string
	flagExclude    string
	flagSkipOthers bool
	flagMOF        bool
)

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagPattern, "pattern", "", "Accession number pattern (RE2, matched at the start of each name segment)")
	fs.StringVar(&flagExt, "ext", "", "Extension of files to redact (default .ab1)")
	fs.IntVar(&flagWorkers, "workers", 0, "Files processed in parallel (1-32)")
	fs.StringVar(&flagFormat, "format", "", "Report format (text, json, markdown)")
	fs.StringVar(&flagReport, "report", "", "Report file path (default: stdout)")
	fs.StringVar(&flagExclude, "exclude", "", "Directories to leave out of discovery (comma-separated)")
	fs.BoolVar(&flagSkipOthers, "skip-others", false, "Do not copy files other than the redacted targets")
	fs.BoolVar(&flagMOF, "mof", false, "Alias of --skip-others")
	_ = fs.MarkDeprecated("mof", "use --skip-others instead")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagPattern != "" {
		m["pattern"] = flagPattern
	}
	if flagExt != "" {
		m["extension"] = flagExt
	}
	if flagWorkers > 0 {
		m["workers"] = strconv.Itoa(flagWorkers)
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagExclude != "" {
		m["exclude"] = flagExclude
	}
	if flagSkipOthers || flagMOF {
		m["copyOthers"] = "false"
	}
	return m
}
