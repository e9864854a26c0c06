package main

import (
	"fmt"
	"os"
	"path/filepath"

	"blocml/logging"
	"blocml/pkg/parser"
	"blocml/shared"
)

// BatchMode parses a template file and prints its AST without
// starting the interactive REPL.
func BatchMode(filePath, formatName, configPath string, verbose bool) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := shared.ParseFormat(formatName)
	if err != nil {
		return err
	}

	log := logging.NewDefaultLogger()
	log.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	if verbose {
		log.SetLevel(logging.DebugLevel)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", filePath, err)
	}

	source := filepath.Base(filePath)
	log.Debug("parsing template file",
		logging.Field("file", filePath),
		logging.Field("bytes", len(data)))

	tpl, err := parser.ParseNamed(string(data), source)
	if err != nil {
		return err
	}

	rendered, err := shared.FormatNode(tpl, format)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
