package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inspirehep/harvestingkit/format"
)

// autoFormat as the source format detects it from the input.
const autoFormat = "auto"

// peekSize is how much input format detection looks at.
const peekSize = 4096

var (
	inputFile  string
	outputFile string
	pretty     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <from> <to>",
	Short: "Convert harvested records between formats",
	Long: `Convert harvested records to MARC.

Arguments:
  from    Source format (pos, marcxml, or auto to detect it from the input)
  to      Target format (marcxml, marcjson, iso2709)

Input defaults to stdin, output defaults to stdout.

Examples:
  # OAI-PMH ListRecords response to MARCXML
  harvestingkit convert pos marcxml -i harvest.xml

  # Detect the source format
  harvestingkit convert auto marcjson -i records.xml

  # Pretty-printed MARC-in-JSON written to a file
  harvestingkit convert pos marcjson -i harvest.xml -o records.json --pretty

  # Binary MARC with a custom journal knowledge base
  harvestingkit convert pos iso2709 -i harvest.xml -o records.mrc --kb-file journals.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print XML/JSON output")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	fromFormat := args[0]
	toFormat := args[1]

	serializer, err := format.GetSerializer(toFormat)
	if err != nil {
		return fmt.Errorf("unknown target format %q: %w", toFormat, err)
	}

	var parser format.Parser
	if fromFormat != autoFormat {
		parser, err = format.GetParser(fromFormat)
		if err != nil {
			return fmt.Errorf("unknown source format %q: %w", fromFormat, err)
		}
	}

	kbs, err := loadKnowledgeBases()
	if err != nil {
		return fmt.Errorf("loading knowledge bases: %w", err)
	}

	var input io.Reader
	var inputName string

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = inputFile
	} else {
		input = cmd.InOrStdin()
		inputName = "stdin"
	}

	if parser == nil {
		br := bufio.NewReaderSize(input, peekSize)
		peek, err := br.Peek(peekSize)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}

		detected, err := format.DetectFormat(inputName, peek)
		if err != nil {
			return fmt.Errorf("detecting source format of %s: %w", inputName, err)
		}
		parser = detected.(format.Parser)
		input = br
		slog.Info("detected source format", "source", inputName, "format", detected.Name())
	}

	parseOpts := format.NewParseOptions()
	parseOpts.KnowledgeBases = kbs
	parseOpts.SourceName = inputName

	records, err := parser.Parse(input, parseOpts)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	slog.Info("parsed records", "source", inputName, "count", len(records))

	var output io.Writer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = cmd.OutOrStdout()
	}

	serializeOpts := format.NewSerializeOptions()
	serializeOpts.Pretty = pretty

	if err := serializer.Serialize(output, records, serializeOpts); err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}

	return nil
}
