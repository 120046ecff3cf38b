package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jacobsimon/prompting"
)

// renderConfig holds parsed render/generate command configuration
type renderConfig struct {
	templatePath string
	varsJSON     string
	varsFilePath string
	schemaPath   string
	format       string
	outputPath   string
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(CmdNameRender, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	engine, vars, code := buildEngine(cfg, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}

	result, err := engine.Resolve(vars)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgResolveFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result+"\n"), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(name string, args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.varsJSON, FlagVars, "", "")
	fs.StringVar(&cfg.varsJSON, FlagVarsShort, "", "")
	fs.StringVar(&cfg.varsFilePath, FlagVarsFile, "", "")
	fs.StringVar(&cfg.varsFilePath, FlagVarsFileShort, "", "")
	fs.StringVar(&cfg.schemaPath, FlagSchema, "", "")
	fs.StringVar(&cfg.schemaPath, FlagSchemaShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, "", "")
	fs.StringVar(&cfg.format, FlagFormatShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// buildEngine assembles an engine from command configuration. Returns the
// per-call variables alongside it; a nonzero exit code signals failure.
func buildEngine(cfg *renderConfig, stdin io.Reader, stderr io.Writer) (*prompting.Engine, map[string]any, int) {
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return nil, nil, ExitCodeInputError
	}

	vars, err := loadVars(cfg.varsJSON, cfg.varsFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidVars, err)
		return nil, nil, ExitCodeInputError
	}

	opts := []prompting.Option{prompting.WithTemplate(string(templateSource))}
	if cfg.schemaPath != "" {
		schemaData, err := os.ReadFile(cfg.schemaPath)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return nil, nil, ExitCodeInputError
		}
		schema, err := prompting.ParseSchema(schemaData)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidSchema, err)
			return nil, nil, ExitCodeInputError
		}
		opts = append(opts, prompting.WithSchema(schema))
	}
	if cfg.format != "" {
		opts = append(opts, prompting.WithFormat(cfg.format))
	}

	engine, err := prompting.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidSchema, err)
		return nil, nil, ExitCodeInputError
	}

	return engine, vars, ExitCodeSuccess
}
