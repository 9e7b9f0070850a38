// Package actionenv interfaces with the GitHub Actions job environment.
// It reads the webhook event payload that triggered the job and writes
// step outputs through the environment files that Actions provides.
package actionenv

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/simplesurance/prcreator/internal/logfields"
)

const loggerName = "actionenv"

// Environment variables defined by the Actions runner.
const (
	EventPathVar  = "GITHUB_EVENT_PATH"
	EventNameVar  = "GITHUB_EVENT_NAME"
	EnvFileVar    = "GITHUB_ENV"
	OutputFileVar = "GITHUB_OUTPUT"
)

// EventPath returns the path of the webhook event payload file.
// A missing variable or file means the process does not run in an
// Actions job environment.
func EventPath() (string, error) {
	path := os.Getenv(EventPathVar)
	if path == "" {
		return "", fmt.Errorf("%s environment variable is unset", EventPathVar)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("github event file does not exist: %w", err)
	}

	return path, nil
}

// OutputWriter appends key=value pairs to the Actions environment and
// output files.
type OutputWriter struct {
	logger *zap.Logger
	// lookupEnv is swappable for tests, defaults to os.LookupEnv.
	lookupEnv func(string) (string, bool)
}

func NewOutputWriter() *OutputWriter {
	return &OutputWriter{
		logger:    zap.L().Named(loggerName),
		lookupEnv: os.LookupEnv,
	}
}

// Set exports name=value as step output and as environment variable for
// the following job steps.
// When one of the destination files is not configured in the
// environment, it is skipped with a warning.
func (w *OutputWriter) Set(name, value string) error {
	for _, envVar := range []string{EnvFileVar, OutputFileVar} {
		path, exist := w.lookupEnv(envVar)
		if !exist || path == "" {
			w.logger.Warn(
				"environment file variable is unset, skipping",
				logfields.Event("action_env_file_unset"),
				zap.String("env_var", envVar),
			)

			continue
		}

		if err := appendLine(path, name, value); err != nil {
			return fmt.Errorf("writing %s to %s failed: %w", name, path, err)
		}

		w.logger.Debug(
			"wrote output",
			logfields.Event("action_output_written"),
			zap.String("env_var", envVar),
			zap.String("name", name),
			zap.String("value", value),
		)
	}

	return nil
}

func appendLine(path, name, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(f, "%s=%s\n", name, value)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	return err
}

// LogGroup writes content surrounded by the workflow log grouping
// markers, the Actions log viewer renders it collapsed under name.
func LogGroup(out io.Writer, name, content string) {
	fmt.Fprintf(out, "::group::%s\n%s\n::endgroup::\n", name, content)
}
