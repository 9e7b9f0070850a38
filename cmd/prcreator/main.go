package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/prcreator/internal/actionenv"
	"github.com/simplesurance/prcreator/internal/cfg"
	"github.com/simplesurance/prcreator/internal/githubclt"
	"github.com/simplesurance/prcreator/internal/logfields"
	"github.com/simplesurance/prcreator/internal/reconciler"
)

const appName = "prcreator"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

func panicHandler() {
	if r := recover(); r != nil {
		logger.Info(
			"panic caught, terminating",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Minute)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

type arguments struct {
	Verbose     *bool
	CfgFile     *string
	DryRun      *bool
	ShowVersion *bool
}

var args arguments

const defCfgFile = ".github/prcreator.toml"

func mustParseCommandlineParams() {
	args = arguments{
		Verbose: pflag.BoolP(
			"verbose",
			"v",
			false,
			"enable verbose logging",
		),
		CfgFile: pflag.StringP(
			"cfg-file",
			"c",
			defCfgFile,
			"path to an optional TOML file providing defaults for the optional settings",
		),
		DryRun: pflag.Bool(
			"dry-run",
			false,
			"simulate all mutating github API calls",
		),
		ShowVersion: pflag.Bool(
			"version",
			false,
			"print the version and exit",
		),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]\nCreate or update a github pull request from a CI job.\n", appName)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	result := zap.NewProductionEncoderConfig()

	result.LevelKey = "loglevel"
	result.TimeKey = config.LogTimeKey
	result.EncodeTime = zapcore.ISO8601TimeEncoder
	result.EncodeDuration = zapcore.StringDurationEncoder

	return result
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	encoderCfg := zapEncoderConfig(config)

	return zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(encoderCfg),
		os.Stdout,
		logLevel),
	)
}

func mustInitZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.EncoderConfig = zapEncoderConfig(config)
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.Encoding = config.LogFormat
	zapCfg.Level = zap.NewAtomicLevelAt(logLevel)

	result, err := zapCfg.Build()
	exitOnErr("could not initialize logger", err)

	return result
}

func mustInitLogger(config *cfg.Config) {
	var logLevel zapcore.Level
	if *args.Verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "can not set log level to %q: %s\n", config.LogLevel, err)
			os.Exit(2)
		}
	}

	switch config.LogFormat {
	case "logfmt":
		logger = initLogFmtLogger(config, logLevel)
	case "console", "json":
		logger = mustInitZapFormatLogger(config, logLevel)
	default:
		fmt.Fprintf(os.Stderr, "unsupported log-format argument: %q\n", config.LogFormat)
		os.Exit(2)
	}

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

// mustResolveSourceBranch returns the configured source branch or
// derives it from the event payload that triggered the job.
func mustResolveSourceBranch(config *cfg.Config, event *actionenv.Event) string {
	if config.SourceBranch != "" {
		return config.SourceBranch
	}

	branch, err := event.SourceBranch()
	if err != nil {
		logger.Fatal(
			"deriving source branch from event payload failed",
			logfields.Event("source_branch_derivation_failed"),
			zap.Error(err),
		)
	}

	if branch == "" {
		logger.Fatal(
			"PULL_REQUEST_SOURCE is unset and the event payload does not reference a branch",
			logfields.Event("source_branch_missing"),
		)
	}

	return branch
}

func main() {
	ctx := context.Background()

	defer goodbye.Exit(ctx, 1)
	goodbye.Notify(ctx)

	mustParseCommandlineParams()

	if *args.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		os.Exit(0) // nolint:gocritic // defer functions won't run
	}

	config, err := cfg.Load(ctx, envconfig.OsLookuper(), *args.CfgFile)
	exitOnErr("loading configuration failed", err)

	mustInitLogger(config)

	defer panicHandler()

	logger.Info(
		"loaded configuration",
		logfields.Event("cfg_loaded"),
		logfields.RepositoryOwner(config.RepositoryOwner),
		logfields.Repository(config.Repository),
		logfields.BaseBranch(config.TargetBranch),
		logfields.HeadBranch(config.SourceBranch),
		zap.String("github_api_token", hide(config.Token)),
		zap.Bool("update", config.Update),
		zap.Bool("draft", config.Draft),
		zap.Bool("pass_on_error", config.PassOnError),
		zap.Strings("assignees", config.Assignees),
		zap.Strings("reviewers", config.Reviewers),
		zap.Strings("team_reviewers", config.TeamReviewers),
		zap.String("log_format", config.LogFormat),
		zap.String("log_level", config.LogLevel),
	)

	eventPath, err := actionenv.EventPath()
	if err != nil {
		logger.Fatal(
			"not running in a github actions job environment",
			logfields.Event("action_environment_missing"),
			zap.Error(err),
		)
	}

	event, err := actionenv.LoadEvent(eventPath)
	if err != nil {
		logger.Fatal(
			"loading github event payload failed",
			logfields.Event("event_payload_unreadable"),
			zap.String("event_path", eventPath),
			zap.Error(err),
		)
	}

	logger.Debug(
		"loaded github event payload",
		logfields.Event("event_payload_loaded"),
		logfields.GithubEvent(os.Getenv(actionenv.EventNameVar)),
		zap.String("event_path", eventPath),
	)

	sourceBranch := mustResolveSourceBranch(config, event)

	var clt reconciler.GithubClient = githubclt.New(config.Token)
	if *args.DryRun {
		clt = reconciler.NewDryClient(clt, logger)
	}

	targetBranch := config.TargetBranch
	if targetBranch == "" {
		targetBranch, err = clt.DefaultBranch(ctx, config.RepositoryOwner, config.Repository)
		if err != nil {
			logger.Fatal(
				"resolving default branch failed",
				logfields.Event("default_branch_resolution_failed"),
				zap.Error(err),
			)
		}

		logger.Info(
			"resolved default branch as target branch",
			logfields.Event("default_branch_resolved"),
			logfields.BaseBranch(targetBranch),
		)
	}

	rec := reconciler.New(
		clt,
		actionenv.NewOutputWriter(),
		config.RepositoryOwner,
		config.Repository,
		config.PassOnError,
	)

	result, err := rec.Reconcile(ctx, &reconciler.Request{
		Title:         config.Title,
		Body:          config.Body,
		TargetBranch:  targetBranch,
		SourceBranch:  sourceBranch,
		State:         config.State,
		Draft:         config.Draft,
		Assignees:     config.Assignees,
		Reviewers:     config.Reviewers,
		TeamReviewers: config.TeamReviewers,
	}, config.Update)
	if err != nil {
		logger.Fatal(
			"reconciling pull request failed",
			logfields.Event("reconciliation_failed"),
			zap.Error(err),
		)
	}

	logger.Info(
		"reconciliation finished",
		logfields.Event("reconciliation_finished"),
		logfields.PullRequest(result.PullRequestNumber),
		zap.Int("return_code", result.ReturnCode),
		zap.String("url", result.URL),
	)

	goodbye.Exit(ctx, 0)
}
