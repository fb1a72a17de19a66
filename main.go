/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/golang/glog"

	"github.com/ecopia-map/point_octree/internal/config"
	"github.com/ecopia-map/point_octree/internal/indexer"
	"github.com/ecopia-map/point_octree/pkg"
	"github.com/ecopia-map/point_octree/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/point_octree/tools"
)

const VERSION = "1.0.0"

const logo = `
             _       _                 _
 _ __   ___ (_)_ __ | |_    ___   ___| |_ _ __ ___  ___
| '_ \ / _ \| | '_ \| __|  / _ \ / __| __| '__/ _ \/ _ \
| |_) | (_) | | | | | |_  | (_) | (__| |_| | |  __/  __/
| .__/ \___/|_|_| |_|\__|  \___/ \___|\__|_|  \___|\___|
|_|  A 3D point octree indexer written in golang
`

func main() {
	log.SetPrefix("[octree] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds | log.Lshortfile)
	defer glog.Flush()

	flagsGlobal := tools.ParseFlagsGlobal()

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fatal("Please specify a subcommand [index|query|random].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandIndex:
		mainCommandIndex(args)
	case tools.CommandQuery:
		mainCommandQuery(args)
	case tools.CommandRandom:
		mainCommandRandom(args)
	default:
		fatal(fmt.Sprintf("Unrecognized command [%q]. Command must be one of [index|query|random]", cmd))
	}
}

func mainCommandIndex(args []string) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandIndex(args)
	if handleCommonFlags(&flags.TreeFlags) {
		return
	}

	opts, cfg := buildOptions(tools.CommandIndex, &flags.TreeFlags)
	opts.IndexOptions = &indexer.IndexOptions{
		Output: tools.ResolveOutput(&flags.TreeFlags, *flags.Output, cfg),
		Dump:   *flags.Dump,
		Stats:  *flags.Stats,
	}

	// Validate IndexerOptions
	if msg, res := validateOptionsForCommandIndex(opts); !res {
		fatal("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), "indexing")
	run(pkg.NewIndexer(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts), os.Stdout), opts)
}

func mainCommandQuery(args []string) {
	flags := tools.ParseFlagsForCommandQuery(args)
	if handleCommonFlags(&flags.TreeFlags) {
		return
	}

	opts, _ := buildOptions(tools.CommandQuery, &flags.TreeFlags)

	points, err := tools.ParsePoints(*flags.Points)
	if err != nil {
		fatal("Error parsing input parameters: " + err.Error())
	}
	opts.QueryOptions = &indexer.QueryOptions{
		Operation:  indexer.ParseOperation(*flags.Operation),
		Points:     points,
		QueryInput: *flags.QueryInput,
	}

	if msg, res := validateOptionsForCommandQuery(opts); !res {
		fatal("Error parsing input parameters: " + msg)
	}

	run(pkg.NewIndexerQuery(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts), os.Stdout), opts)
}

func mainCommandRandom(args []string) {
	flags := tools.ParseFlagsForCommandRandom(args)
	if handleCommonFlags(&flags.TreeFlags) {
		return
	}

	opts, cfg := buildOptions(tools.CommandRandom, &flags.TreeFlags)
	opts.RandomOptions = &indexer.RandomOptions{
		Output: tools.ResolveOutput(&flags.TreeFlags, *flags.Output, cfg),
		Count:  *flags.Count,
		Seed:   *flags.Seed,
		Dump:   *flags.Dump,
	}

	if msg, res := validateOptionsForCommandRandom(opts); !res {
		fatal("Error parsing input parameters: " + msg)
	}

	run(pkg.NewIndexerRandom(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts), os.Stdout), opts)
}

// Handles help, version and logging flags. Returns true if the command should stop there.
func handleCommonFlags(flags *tools.TreeFlags) bool {
	// Prints the command line flag description
	if *flags.Help {
		showHelp()
		return true
	}

	if *flags.Version {
		printVersion()
		return true
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}
	return false
}

func buildOptions(command string, flags *tools.TreeFlags) (*indexer.IndexerOptions, *config.Config) {
	cfg, err := tools.LoadConfig(flags)
	if err != nil {
		fatal("Error reading configuration: " + err.Error())
	}

	opts, err := tools.BuildIndexerOptions(command, flags, cfg)
	if err != nil {
		fatal("Error parsing input parameters: " + err.Error())
	}
	glog.Infof("%s options: %s", command, tools.FmtJSONString(opts))

	return opts, cfg
}

func run(ix indexer.IIndexer, opts *indexer.IndexerOptions) {
	if err := ix.RunIndexer(opts); err != nil {
		fatal(fmt.Sprintf("Error while running %s: %v", opts.Command, err))
	}
	tools.LogOutput(color.GreenString("%s completed", opts.Command))
}

// Validates the input options provided to the command line tool checking
// that input and output folders/files exist
func validateOptionsForCommandIndex(opts *indexer.IndexerOptions) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if opts.IndexOptions.Output != "" {
		if info, err := os.Stat(opts.IndexOptions.Output); err == nil && !info.IsDir() {
			return "Output must be a folder", false
		}
	}

	return "", true
}

func validateOptionsForCommandQuery(opts *indexer.IndexerOptions) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}

	queryOpts := opts.QueryOptions
	if queryOpts.Operation != indexer.OperationSearch && queryOpts.Operation != indexer.OperationDelete {
		return "operation should be either SEARCH or DELETE", false
	}
	if len(queryOpts.Points) == 0 && queryOpts.QueryInput == "" {
		return "query points must be given with -points or -query-input", false
	}
	if queryOpts.QueryInput != "" && !tools.PathExists(queryOpts.QueryInput) {
		return "Query input file not found", false
	}

	return "", true
}

func validateOptionsForCommandRandom(opts *indexer.IndexerOptions) (string, bool) {
	if opts.Input != "" && !tools.PathExists(opts.Input) {
		return "Input file/folder not found", false
	}
	if opts.RandomOptions.Count < 0 {
		return "count cannot be negative", false
	}

	return "", true
}

func fatal(message string) {
	glog.Flush()
	log.Fatal(color.RedString(message))
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	color.New(color.FgCyan).Println(logo)
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("point_octree indexes 3D point files in an octree, answers search/delete queries against it and exports its structure as json")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Subcommands: index, query, random. Use <subcommand> -help to list the flags of each one.")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
