// Package cmd provides CLI commands for harvestingkit.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inspirehep/harvestingkit/kb"
)

const (
	// kbFileEnv names the environment variable holding an extra knowledge-base file.
	kbFileEnv = "HARVESTINGKIT_KB_FILE"

	// kbDirEnv names the environment variable holding a knowledge-base directory.
	kbDirEnv = "HARVESTINGKIT_KB_DIR"
)

var (
	kbFile string
	kbDir  string
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "harvestingkit",
	Short: "Convert harvested conference metadata to MARC",
	Long: `Harvestingkit converts records harvested from Proceedings of Science
(PoS) over OAI-PMH into MARC 21 bibliographic records.

Examples:
  harvestingkit convert pos marcxml -i harvest.xml -o records.xml
  curl -s 'https://pos.sissa.it/oai?verb=ListRecords&metadataPrefix=oai_dc' | harvestingkit convert pos marcjson
  harvestingkit journal "Nucl. Phys. B"
  harvestingkit kb journals`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadKnowledgeBases returns the embedded knowledge bases, overlaid with the
// directory named by --kb-dir or HARVESTINGKIT_KB_DIR and then the file named
// by --kb-file or HARVESTINGKIT_KB_FILE.
func loadKnowledgeBases() (*kb.Set, error) {
	set, err := kb.Default()
	if err != nil {
		return nil, fmt.Errorf("loading embedded knowledge bases: %w", err)
	}

	if dir := flagOrEnv(kbDir, kbDirEnv); dir != "" {
		if err := set.LoadFromDirectory(dir); err != nil {
			return nil, err
		}
		slog.Debug("loaded knowledge base directory", "path", dir)
	}

	if path := flagOrEnv(kbFile, kbFileEnv); path != "" {
		extra, err := kb.LoadFile(path)
		if err != nil {
			return nil, err
		}
		set.Register(extra)
		slog.Debug("loaded knowledge base", "name", extra.Name, "entries", len(extra.Entries), "path", path)
	}

	slog.Debug("knowledge bases available", "names", set.List())
	return set, nil
}

func flagOrEnv(value, env string) string {
	if value != "" {
		return value
	}
	return os.Getenv(env)
}

func init() {
	_ = godotenv.Load()
	setupLogger()

	rootCmd.PersistentFlags().StringVar(&kbFile, "kb-file", "", "Knowledge base YAML file (default: $"+kbFileEnv+")")
	rootCmd.PersistentFlags().StringVar(&kbDir, "kb-dir", "", "Directory of knowledge base YAML files (default: $"+kbDirEnv+")")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(kbCmd)
}
