package tools

import (
	"flag"
	"log"
)

const (
	CommandIndex  = "index"
	CommandQuery  = "query"
	CommandRandom = "random"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

// Flags shared by every command, describing the tree and where its points come from
type TreeFlags struct {
	Input                     *string  `json:"input"`
	FolderProcessing          *bool    `json:"folder"`
	RecursiveFolderProcessing *bool    `json:"recursive"`
	Min                       *string  `json:"min"`
	Max                       *string  `json:"max"`
	Capacity                  *int     `json:"capacity"`
	MaxDepth                  *int     `json:"max_depth"`
	Unique                    *bool    `json:"unique"`
	SourceCrs                 *string  `json:"source_crs"`
	TargetCrs                 *string  `json:"target_crs"`
	ZOffset                   *float64 `json:"zoffset"`
	Config                    *string  `json:"config"`
	Silent                    *bool    `json:"silent"`
	LogTimestamp              *bool    `json:"timestamp"`
	Help                      *bool    `json:"help"`
	Version                   *bool    `json:"version"`

	// long names of the flags given on the command line
	explicit map[string]bool
}

type FlagsForCommandIndex struct {
	TreeFlags
	Output *string `json:"output"`
	Dump   *bool   `json:"dump"`
	Stats  *bool   `json:"stats"`
}

type FlagsForCommandQuery struct {
	TreeFlags
	Operation  *string `json:"operation"`
	Points     *string `json:"points"`
	QueryInput *string `json:"query_input"`
}

type FlagsForCommandRandom struct {
	TreeFlags
	Output *string `json:"output"`
	Count  *int    `json:"count"`
	Seed   *int64  `json:"seed"`
	Dump   *bool   `json:"dump"`
}

// IsSet reports whether the flag with the given long name was given on the command line,
// either by its name or by its shorthand
func (f *TreeFlags) IsSet(name string) bool {
	return f.explicit[name]
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of point_octree.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandIndex(args []string) FlagsForCommandIndex {
	flagCommand := flag.NewFlagSet("command-index", flag.ExitOnError)

	treeFlags, shorthands := defineTreeFlags(flagCommand)
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to write octree.json. Nothing is exported if empty.")
	dump := defineBoolFlagCommand(flagCommand, "dump", "", false, "Prints every node of the octree once built.")
	stats := defineBoolFlagCommand(flagCommand, "stats", "", false, "Prints a summary table of the octree once built.")
	shorthands["o"] = "output"

	parseFlagCommand(flagCommand, args, &treeFlags, shorthands)

	return FlagsForCommandIndex{
		TreeFlags: treeFlags,
		Output:    output,
		Dump:      dump,
		Stats:     stats,
	}
}

func ParseFlagsForCommandQuery(args []string) FlagsForCommandQuery {
	flagCommand := flag.NewFlagSet("command-query", flag.ExitOnError)

	treeFlags, shorthands := defineTreeFlags(flagCommand)
	operation := defineStringFlagCommand(flagCommand, "operation", "p", "SEARCH", "Operation applied to the query points, can be 'SEARCH' or 'DELETE'.")
	points := defineStringFlagCommand(flagCommand, "points", "q", "", "Query points in tree coordinates, as 'x,y,z' triples separated by ';'.")
	queryInput := defineStringFlagCommand(flagCommand, "query-input", "", "", "Point file holding further query points, in the same reference system as the input.")
	shorthands["p"] = "operation"
	shorthands["q"] = "points"

	parseFlagCommand(flagCommand, args, &treeFlags, shorthands)

	return FlagsForCommandQuery{
		TreeFlags:  treeFlags,
		Operation:  operation,
		Points:     points,
		QueryInput: queryInput,
	}
}

func ParseFlagsForCommandRandom(args []string) FlagsForCommandRandom {
	flagCommand := flag.NewFlagSet("command-random", flag.ExitOnError)

	treeFlags, shorthands := defineTreeFlags(flagCommand)
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to write octree.json. Nothing is exported if empty.")
	count := defineIntFlagCommand(flagCommand, "count", "n", 100, "Number of random points to insert.")
	seed := defineInt64FlagCommand(flagCommand, "seed", "", 1, "Seed of the random point generator.")
	dump := defineBoolFlagCommand(flagCommand, "dump", "", false, "Prints every node of the octree once built.")
	shorthands["o"] = "output"
	shorthands["n"] = "count"

	parseFlagCommand(flagCommand, args, &treeFlags, shorthands)

	return FlagsForCommandRandom{
		TreeFlags: treeFlags,
		Output:    output,
		Count:     count,
		Seed:      seed,
		Dump:      dump,
	}
}

func defineTreeFlags(flagCommand *flag.FlagSet) (TreeFlags, map[string]string) {
	treeFlags := TreeFlags{
		Input:                     defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input point file/folder. Each line holds the x y z coordinates of a point."),
		FolderProcessing:          defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all point files from input folder. Input must be a folder if specified"),
		RecursiveFolderProcessing: defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all point files inside the subfolders"),
		Min:                       defineStringFlagCommand(flagCommand, "min", "", "", "Min corner of the tree boundary, as 'x,y,z'."),
		Max:                       defineStringFlagCommand(flagCommand, "max", "", "", "Max corner of the tree boundary, as 'x,y,z'."),
		Capacity:                  defineIntFlagCommand(flagCommand, "capacity", "c", 8, "Max number of points stored in a leaf before it subdivides."),
		MaxDepth:                  defineIntFlagCommand(flagCommand, "max-depth", "d", 32, "Depth at which full leaves stop subdividing."),
		Unique:                    defineBoolFlagCommand(flagCommand, "unique", "u", false, "Skips input points equal to one already stored."),
		SourceCrs:                 defineStringFlagCommand(flagCommand, "source-crs", "", "", "proj4 definition of the input points reference system. Points are not converted if empty."),
		TargetCrs:                 defineStringFlagCommand(flagCommand, "target-crs", "", "", "proj4 definition of the tree reference system."),
		ZOffset:                   defineFloat64FlagCommand(flagCommand, "zoffset", "z", 0, "Vertical offset to apply to input points."),
		Config:                    defineStringFlagCommand(flagCommand, "config", "", "", "Optional toml configuration file. Flags given on the command line take precedence."),
		Silent:                    defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages."),
		LogTimestamp:              defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages."),
		Help:                      defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help."),
		Version:                   defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of point_octree."),
	}

	shorthands := map[string]string{
		"i": "input",
		"f": "folder",
		"r": "recursive",
		"c": "capacity",
		"d": "max-depth",
		"u": "unique",
		"z": "zoffset",
		"s": "silent",
		"t": "timestamp",
		"h": "help",
		"v": "version",
	}

	return treeFlags, shorthands
}

func parseFlagCommand(flagCommand *flag.FlagSet, args []string, treeFlags *TreeFlags, shorthands map[string]string) {
	log.Println(FmtJSONString(args))

	// ExitOnError makes Parse exit by itself
	_ = flagCommand.Parse(args)

	treeFlags.explicit = make(map[string]bool)
	flagCommand.Visit(func(f *flag.Flag) {
		if long, ok := shorthands[f.Name]; ok {
			treeFlags.explicit[long] = true
		} else {
			treeFlags.explicit[f.Name] = true
		}
	})
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineInt64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int64, usage string) *int64 {
	var output int64
	flagCommand.Int64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Int64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
