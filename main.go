package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/refract/internal/config"
	"github.com/mcncl/refract/internal/errors"
	"github.com/mcncl/refract/internal/logging"
	"github.com/mcncl/refract/internal/models"
	"github.com/mcncl/refract/internal/parser"
	"github.com/mcncl/refract/internal/render"
	"github.com/mcncl/refract/internal/transform"
)

// CLI defines the command-line interface
var CLI struct {
	To      string `help:"Output format." short:"t" enum:"json,yaml,toml" default:"json"`
	From    string `help:"Input format." short:"f" enum:"json,yaml" default:"json"`
	Input   string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Color   string `help:"When to colorize output." enum:"auto,always,never" default:"auto"`
	KeyCase string `help:"Rewrite mapping keys to the given case." name:"key-case" enum:"none,camel,pascal,snake,kebab" default:"none"`
	Config  string `help:"Path to config file. If not specified, searches for .refract.yml." short:"c" type:"path"`
	Verbose int    `help:"Enable verbose logging (-v, -vv, -vvv)." short:"v" type:"counter"`
	Version bool   `help:"Show version information."`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("refract"),
		kong.Description("A tool to pretty-print JSON and YAML as JSON, YAML or TOML"),
		kong.UsageOnError(),
	)

	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("refract version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	logging.Setup(cfg.Dev.Verbose)

	if err := run(cfg); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration from the config file (if
// any) and the CLI flags
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	return config.LoadConfigWithCLI(configPath, CLI.To, CLI.From, CLI.Color, CLI.KeyCase, CLI.Verbose)
}

// run executes the main program logic
func run(cfg *config.Config) error {
	log := logging.GetLogger("main")

	// 1. Parse the input document
	value, err := parseInput(cfg)
	if err != nil {
		// Error is already wrapped by parseInput
		return err
	}

	// 2. Rewrite mapping keys if requested
	value, err = transform.RenameKeys(value, transform.KeyCase(cfg.Keys.Case))
	if err != nil {
		return err
	}

	// 3. Render to the output destination
	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	sink := newSink(out, cfg.Color.Mode)
	log.Debug().
		Str("format", cfg.Format).
		Bool("color", sink.Colorized()).
		Msg("Rendering document")

	switch cfg.Format {
	case "yaml":
		err = render.YAML(sink, value)
	case "toml":
		err = render.TOML(sink, value)
	default:
		err = render.JSON(sink, value)
	}
	if err != nil {
		return err
	}

	// Every document ends with a newline
	return sink.Plain("\n")
}

// parseInput reads a document from file or stdin in the configured format
func parseInput(cfg *config.Config) (models.Value, error) {
	if CLI.Input != "" {
		if cfg.Input.Format == "yaml" {
			return parser.ParseYAMLFile(CLI.Input)
		}
		return parser.ParseFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive, nothing was piped in
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}

	if cfg.Input.Format == "yaml" {
		return parser.ParseYAMLString(string(data))
	}
	return parser.ParseString(string(data))
}

// openOutput returns the destination writer and a cleanup function
func openOutput() (io.Writer, func(), error) {
	if CLI.Output == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(CLI.Output)
	if err != nil {
		return nil, nil, errors.NewOutputError(fmt.Sprintf("failed to create file '%s'", CLI.Output), err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newSink builds a render sink for w honoring the color mode. Auto mode
// colorizes only when w is a terminal.
func newSink(w io.Writer, mode string) *render.Sink {
	switch mode {
	case "always":
		return render.NewColorSink(w, true)
	case "never":
		return render.NewColorSink(w, false)
	default:
		return render.NewSink(w)
	}
}

// printError reports a failure on stderr in the user-friendly form
func printError(err error) {
	sink := newSink(os.Stderr, CLI.Color)
	_ = render.ErrorLine(sink, errors.UserFriendlyError(err))
}
