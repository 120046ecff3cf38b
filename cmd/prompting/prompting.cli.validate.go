package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jacobsimon/prompting"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	schemaPath   string
	dataJSON     string
	dataFilePath string
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingSchema, err)
		return ExitCodeUsageError
	}

	schemaData, err := os.ReadFile(cfg.schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}
	schema, err := prompting.ParseSchema(schemaData)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidSchema, err)
		return ExitCodeInputError
	}
	validator, err := prompting.CompileSchema(schema)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidSchema, err)
		return ExitCodeInputError
	}

	var raw []byte
	if cfg.dataFilePath != "" {
		raw, err = readInput(cfg.dataFilePath, stdin)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return ExitCodeInputError
		}
	} else {
		raw = []byte(cfg.dataJSON)
	}

	var candidate any
	if err := json.Unmarshal(raw, &candidate); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidData, err)
		return ExitCodeInputError
	}

	result := validator.Validate(candidate)
	if result.Valid {
		fmt.Fprintln(stdout, "valid")
		return ExitCodeSuccess
	}

	for _, violation := range result.Errors {
		fmt.Fprintln(stdout, violation)
	}
	return ExitCodeError
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &validateConfig{}

	fs.StringVar(&cfg.schemaPath, FlagSchema, "", "")
	fs.StringVar(&cfg.schemaPath, FlagSchemaShort, "", "")
	fs.StringVar(&cfg.dataJSON, FlagData, "", "")
	fs.StringVar(&cfg.dataJSON, FlagVarsShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagVarsFileShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.schemaPath == "" {
		return nil, errors.New(ErrMsgMissingSchema)
	}

	return cfg, nil
}
