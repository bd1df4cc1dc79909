package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bjaus/benchtab"
	"github.com/bjaus/benchtab/internal/config"
	"github.com/bjaus/benchtab/internal/logging"
)

type rootFlags struct {
	definition  string
	params      map[string]string
	exclude     []string
	title       string
	description string
	debug       bool

	configPath  string
	backend     string
	border      string
	color       string
	diagnostics string
	diagFormat  string
	logFormat   string
	maxWidth    int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "benchtab [flags] <suite.json|suite.yaml>",
		Short: "Render a benchmark suite document as a console table",
		Example: `  benchtab -d aggregate.yaml suite.json
  benchtab -d aggregate.hcl -p subject=benchMd5 --title Hashing suite.yaml
  benchtab -d aggregate.yaml -x memory --backend legacy --border ascii suite.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags(), &f, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	bindFlags(cmd.Flags(), &f)
	_ = cmd.MarkFlagRequired("definition")
	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *rootFlags) {
	fs.StringVarP(&f.definition, "definition", "d", "", "definition file (.yaml, .json or .hcl)")
	fs.StringToStringVarP(&f.params, "param", "p", nil, "definition parameter name=value (repeatable)")
	fs.StringSliceVarP(&f.exclude, "exclude", "x", nil, "column to leave out (repeatable)")
	fs.StringVar(&f.title, "title", "", "title line above the table")
	fs.StringVar(&f.description, "description", "", "description line above the table")
	fs.BoolVar(&f.debug, "debug", false, "dump the document and the tabular result, and log at debug level")

	fs.StringVar(&f.configPath, "config", "", "config file (default: <user config dir>/benchtab/config.yaml)")
	fs.StringVar(&f.backend, "backend", "", "table backend: auto, modern, legacy")
	fs.StringVar(&f.border, "border", "", "legacy border: rounded, none, ascii, heavy, double")
	fs.StringVar(&f.color, "color", "", "color mode: auto, always, never")
	fs.StringVar(&f.diagnostics, "diagnostics", "", "debug dump sink: console, log")
	fs.StringVar(&f.diagFormat, "diagnostics-format", "", "debug dump format: json, yaml")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.IntVar(&f.maxWidth, "max-width", 0, "maximum legacy column width, 0 for none")
}

func run(fs *pflag.FlagSet, f *rootFlags, suitePath string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}
	merge(fs, f, cfg)

	logFormat, err := logging.ParseFormat(f.logFormat)
	if err != nil {
		return err
	}
	logger := logging.New(f.debug, stderr, logFormat)

	opts, console, err := generatorOptions(f, logger, stdout, stderr)
	if err != nil {
		return err
	}

	params := parseParams(f.params)
	doc, err := benchtab.LoadDocument(suitePath)
	if err != nil {
		return err
	}
	def, err := benchtab.LoadDefinition(f.definition, params)
	if err != nil {
		return err
	}

	gen, err := benchtab.NewGenerator(console, opts...)
	if err != nil {
		return err
	}
	logger.Debug("rendering", "suite", suitePath, "definition", f.definition, "backend", gen.Backend())

	return gen.Generate(doc, def, benchtab.RenderConfig{
		Exclude:     f.exclude,
		Debug:       f.debug,
		Title:       f.title,
		Description: f.description,
	}, params)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// merge fills every flag the user did not set from the config file.
func merge(fs *pflag.FlagSet, f *rootFlags, cfg *config.Config) {
	fill := func(name string, dst *string, val string) {
		if !fs.Changed(name) && val != "" {
			*dst = val
		}
	}
	fill("backend", &f.backend, cfg.Backend)
	fill("border", &f.border, cfg.Border)
	fill("color", &f.color, cfg.Color)
	fill("diagnostics", &f.diagnostics, cfg.Diagnostics)
	fill("diagnostics-format", &f.diagFormat, cfg.DiagnosticsFormat)
	fill("log-format", &f.logFormat, cfg.LogFormat)
	if !fs.Changed("max-width") && cfg.MaxWidth > 0 {
		f.maxWidth = cfg.MaxWidth
	}
	f.exclude = append(append([]string(nil), cfg.Exclude...), f.exclude...)
}

func generatorOptions(f *rootFlags, logger *slog.Logger, stdout, stderr io.Writer) ([]benchtab.Option, *benchtab.Console, error) {
	backend, err := benchtab.ParseBackend(f.backend)
	if err != nil {
		return nil, nil, err
	}
	border, err := benchtab.ParseBorder(f.border)
	if err != nil {
		return nil, nil, err
	}
	mode, err := benchtab.ParseColorMode(f.color)
	if err != nil {
		return nil, nil, err
	}
	diagFormat := benchtab.JSON
	if f.diagFormat != "" {
		if diagFormat, err = benchtab.ParseFormat(f.diagFormat); err != nil {
			return nil, nil, err
		}
	}

	var sink benchtab.DiagnosticSink
	switch f.diagnostics {
	case "", "console":
		sink = benchtab.NewConsoleSink(stderr)
	case "log":
		sink = benchtab.NewLogSink(logger)
	default:
		return nil, nil, fmt.Errorf("invalid --diagnostics %q (expected console|log)", f.diagnostics)
	}

	opts := []benchtab.Option{
		benchtab.WithBackend(backend),
		benchtab.WithBorder(border),
		benchtab.WithMaxWidth(f.maxWidth),
		benchtab.WithDiagnostics(sink),
		benchtab.WithDiagnosticFormat(diagFormat),
		benchtab.WithLogger(logger),
	}
	return opts, benchtab.NewConsole(stdout, benchtab.WithColorMode(mode)), nil
}

// parseParams converts flag values to numbers or booleans where they parse
// as such.
func parseParams(raw map[string]string) benchtab.Parameters {
	if len(raw) == 0 {
		return nil
	}
	params := make(benchtab.Parameters, len(raw))
	for name, val := range raw {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			params[name] = int(n)
		} else if x, err := strconv.ParseFloat(val, 64); err == nil {
			params[name] = x
		} else if b, err := strconv.ParseBool(val); err == nil {
			params[name] = b
		} else {
			params[name] = val
		}
	}
	return params
}
