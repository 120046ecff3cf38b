package main

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadVars parses variables from an inline string or a file. Files may be
// JSON or YAML; YAML parsing covers both since JSON is a YAML subset.
func loadVars(inline, filePath string) (map[string]any, error) {
	var raw []byte

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		raw = data
	} else if inline != "" {
		raw = []byte(inline)
	} else {
		return nil, nil
	}

	var vars map[string]any
	if err := yaml.Unmarshal(raw, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}
