package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/jacobsimon/prompting"
)

func runGenerate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(CmdNameGenerate, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	engine, vars, code := buildEngine(cfg, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}

	backend, err := backendFromEnv()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgGenerateFailed, err)
		return ExitCodeUsageError
	}
	engine = engine.WithBackend(backend)

	result, err := engine.Generate(context.Background(), vars)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgGenerateFailed, err)
		return ExitCodeError
	}

	output := []byte(result.Raw + "\n")
	if result.Structured {
		encoded, err := json.MarshalIndent(result.Value, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
		output = append(encoded, '\n')
	}

	if err := writeOutput(cfg.outputPath, output, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

// backendFromEnv builds a completions backend from environment variables,
// loading a .env file from the working directory when present.
func backendFromEnv() (prompting.Backend, error) {
	_ = godotenv.Load() // optional; real env vars take precedence

	baseURL := os.Getenv(EnvAPIURL)
	if baseURL == "" {
		return nil, errors.New(ErrMsgMissingAPIURL)
	}

	config := prompting.CompletionsConfig{
		BaseURL: baseURL,
		APIKey:  os.Getenv(EnvAPIKey),
		Model:   os.Getenv(EnvModel),
	}
	if raw := os.Getenv(EnvMaxTokens); raw != "" {
		maxTokens, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		config.MaxTokens = maxTokens
	}

	return prompting.NewCompletionsBackend(config)
}
