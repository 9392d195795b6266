// Package rconfig implements the render-configuration CLI surface (§6 "CLI
// surface (conceptual)") with the standard library flag package, matching
// the teacher's cmd/demo pattern of a flat main.go wiring concrete
// constructors together rather than a cobra/viper command tree.
package rconfig

import (
	"flag"
	"fmt"
	"runtime"

	"rayimpact/rlog"
)

// Config holds the parsed CLI surface: one positional scene-file path plus
// the three flags §6 names.
type Config struct {
	SceneFile string
	Threads   int
	Verbosity rlog.Level
	Output    string
}

// Parse parses args (typically os.Args[1:]) into a Config. Threads defaults
// to the logical-core count; Output, when empty, leaves the
// sensor-configured output path untouched (§6 "--output FILENAME overrides
// sensor-configured output path").
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("rayimpact", flag.ContinueOnError)

	threads := fs.Int("threads", runtime.GOMAXPROCS(0), "worker thread count (default: logical-core count)")
	verbosity := fs.Int("verbosity", int(rlog.LevelWarn), "diagnostic verbosity (0=silent,1=warn,2=info)")
	output := fs.String("output", "", "override the sensor-configured output path")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, fmt.Errorf("expected exactly one positional scene file argument, got %d", fs.NArg())
	}

	return Config{
		SceneFile: fs.Arg(0),
		Threads:   *threads,
		Verbosity: rlog.Level(*verbosity),
		Output:    *output,
	}, nil
}
