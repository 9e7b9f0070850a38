// Package cfg loads the configuration of a run.
// All required values come from the environment variables that the
// action contract defines. An optional TOML file can provide defaults
// for the optional values, environment variables always win.
package cfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/sethvargo/go-envconfig"

	"github.com/simplesurance/prcreator/internal/stringutils"
)

const (
	DefLogFormat  = "logfmt"
	DefLogLevel   = "info"
	DefLogTimeKey = "time_iso8601"
)

// envVars is the raw environment contract of the action.
// PULL_REQUEST_UPDATE and PASS_ON_ERROR are enabled by being set to any
// non-empty value, PULL_REQUEST_DRAFT expects a truthy value.
type envVars struct {
	Token         string `env:"GITHUB_TOKEN, required"`
	Repository    string `env:"GITHUB_REPOSITORY, required"`
	Title         string `env:"PULL_REQUEST_TITLE, required"`
	Body          string `env:"PULL_REQUEST_BODY, required"`
	TargetBranch  string `env:"PULL_REQUEST_TARGET"`
	SourceBranch  string `env:"PULL_REQUEST_SOURCE"`
	Draft         string `env:"PULL_REQUEST_DRAFT"`
	State         string `env:"PULL_REQUEST_STATE"`
	Update        string `env:"PULL_REQUEST_UPDATE"`
	Assignees     string `env:"ASSIGNEES"`
	Reviewers     string `env:"REVIEWERS"`
	TeamReviewers string `env:"TEAM_REVIEWERS"`
	PassOnError   string `env:"PASS_ON_ERROR"`
}

// FileDefaults are the values that the optional TOML defaults file can
// provide.
type FileDefaults struct {
	TargetBranch  string   `toml:"target_branch"`
	Draft         bool     `toml:"draft"`
	Update        bool     `toml:"update"`
	Assignees     []string `toml:"assignees"`
	Reviewers     []string `toml:"reviewers"`
	TeamReviewers []string `toml:"team_reviewers"`
	LogFormat     string   `toml:"log_format"`
	LogLevel      string   `toml:"log_level"`
	LogTimeKey    string   `toml:"log_time_key"`
}

// Config is the resolved configuration of a run.
type Config struct {
	Token           string
	RepositoryOwner string
	Repository      string

	Title         string
	Body          string
	TargetBranch  string
	SourceBranch  string
	State         string
	Draft         bool
	Update        bool
	Assignees     []string
	Reviewers     []string
	TeamReviewers []string

	PassOnError bool

	LogFormat  string
	LogLevel   string
	LogTimeKey string
}

// LoadFileDefaults parses a TOML defaults file.
func LoadFileDefaults(reader io.Reader) (*FileDefaults, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var result FileDefaults
	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Load reads the environment contract and merges it with the defaults
// file at defaultsPath.
// A missing defaults file is not an error, the file is optional.
func Load(ctx context.Context, lookuper envconfig.Lookuper, defaultsPath string) (*Config, error) {
	var env envVars

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	})
	if err != nil {
		return nil, err
	}

	defaults := &FileDefaults{}
	if defaultsPath != "" {
		file, err := os.Open(defaultsPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("opening defaults file failed: %w", err)
		default:
			defaults, err = LoadFileDefaults(file)
			_ = file.Close()
			if err != nil {
				return nil, fmt.Errorf("loading defaults file %s failed: %w", defaultsPath, err)
			}
		}
	}

	return resolve(&env, defaults)
}

func resolve(env *envVars, defaults *FileDefaults) (*Config, error) {
	owner, repo, found := strings.Cut(env.Repository, "/")
	if !found || owner == "" || repo == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY must have the format <owner>/<repository>, got: %q", env.Repository)
	}

	result := Config{
		Token:           env.Token,
		RepositoryOwner: owner,
		Repository:      repo,
		Title:           env.Title,
		Body:            env.Body,
		TargetBranch:    firstNonEmpty(env.TargetBranch, defaults.TargetBranch),
		SourceBranch:    env.SourceBranch,
		State:           env.State,
		Draft:           isTruthy(env.Draft) || (env.Draft == "" && defaults.Draft),
		Update:          env.Update != "" || defaults.Update,
		Assignees:       firstNonEmptyList(stringutils.ParseList(env.Assignees), defaults.Assignees),
		Reviewers:       firstNonEmptyList(stringutils.ParseList(env.Reviewers), defaults.Reviewers),
		TeamReviewers:   firstNonEmptyList(stringutils.ParseList(env.TeamReviewers), defaults.TeamReviewers),
		PassOnError:     env.PassOnError != "",
		LogFormat:       firstNonEmpty(defaults.LogFormat, DefLogFormat),
		LogLevel:        firstNonEmpty(defaults.LogLevel, DefLogLevel),
		LogTimeKey:      firstNonEmpty(defaults.LogTimeKey, DefLogTimeKey),
	}

	return &result, nil
}

func isTruthy(val string) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func firstNonEmpty(vals ...string) string {
	for _, val := range vals {
		if val != "" {
			return val
		}
	}

	return ""
}

func firstNonEmptyList(vals ...[]string) []string {
	for _, val := range vals {
		if len(val) != 0 {
			return val
		}
	}

	return []string{}
}
