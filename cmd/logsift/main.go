// LogSift - Log File Filtering and Search Tool
//
// LogSift loads a log file once and tags every line against an ordered set of
// include and exclude rules, counts hits per rule and extracts timestamped
// events for a timeline. Ad-hoc search uses the same matching rules.
package main

import (
	"os"

	"github.com/ccollicutt/logsift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
