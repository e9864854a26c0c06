package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"blocml/logging"
	"blocml/repl"
	"blocml/shared"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		execFile    = flag.String("exec", "", "Parse a template file in batch mode")
		format      = flag.String("format", "", "AST output format (tree, json, yaml)")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
	)
	flag.Parse()

	// A bare .bloc file argument parses in batch mode, so templates
	// can be run as ./template.bloc with a shebang.
	args := flag.Args()
	if len(args) > 0 && *execFile == "" && strings.HasSuffix(args[0], ".bloc") {
		if err := BatchMode(args[0], *format, *configPath, *verbose); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("blocml %s\n", repl.Version)
		os.Exit(0)
	}

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	if *execFile != "" {
		if err := BatchMode(*execFile, *format, *configPath, *verbose); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	formatName := *format
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	outputFormat, err := shared.ParseFormat(formatName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewDefaultLogger()
	log.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	if *verbose {
		log.SetLevel(logging.DebugLevel)
	}

	shell := repl.New(repl.Config{
		Prompt:      cfg.REPL.Prompt,
		HistoryFile: cfg.REPL.HistoryFile,
		HistorySize: cfg.REPL.HistorySize,
		ShowWelcome: cfg.REPL.ShowWelcome,
		Format:      outputFormat,
		Verbose:     *verbose,
		Logger:      log,
	})
	if err := shell.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("blocml - parser for the bloc template language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  blocml [flags]              start the interactive shell")
	fmt.Println("  blocml [flags] FILE.bloc    parse a template file")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
