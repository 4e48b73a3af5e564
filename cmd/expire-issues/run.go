package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/expire-issues/expire-issues/internal/config"
	"github.com/expire-issues/expire-issues/internal/debug"
	"github.com/expire-issues/expire-issues/internal/github"
	"github.com/expire-issues/expire-issues/internal/telemetry"
	"github.com/expire-issues/expire-issues/internal/timeparsing"
	"github.com/expire-issues/expire-issues/internal/tracker"
	"github.com/expire-issues/expire-issues/internal/ui"
)

// runOptions is the resolved configuration for one run.
type runOptions struct {
	Path      string
	Token     string
	Endpoint  string
	Timeout   time.Duration
	RateLimit float64 // Requests per second; 0 disables pacing
	RateBurst int
	Now       string // Empty means the wall clock
	DryRun    bool
	JSON      bool
}

func optionsFromConfig() runOptions {
	return runOptions{
		Path:      config.GetString(config.KeyPath),
		Token:     config.GetString(config.KeyGitHubToken),
		Endpoint:  config.GetString(config.KeyGitHubEndpoint),
		Timeout:   config.GetDuration(config.KeyGitHubTimeout),
		RateLimit: config.GetFloat64(config.KeyRateLimit),
		RateBurst: config.GetInt(config.KeyRateBurst),
		Now:       config.GetString(config.KeyNow),
		DryRun:    config.GetBool(config.KeyDryRun),
		JSON:      config.GetBool(config.KeyJSON),
	}
}

// newClient builds the GitHub client for opts.
func newClient(opts runOptions) *github.Client {
	client := github.NewClient(opts.Token)
	if opts.Endpoint != "" {
		client = client.WithEndpoint(opts.Endpoint)
	}
	if opts.Timeout > 0 {
		client.HTTPClient.Timeout = opts.Timeout
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		client = client.WithLimiter(rate.NewLimiter(rate.Limit(opts.RateLimit), burst))
	}
	return client
}

// runExpire reads the issue list and runs the engine against GitHub.
func runExpire(ctx context.Context, opts runOptions, out io.Writer) error {
	if strings.TrimSpace(opts.Token) == "" {
		return errors.New("no GitHub token: set GITHUB_TOKEN or pass --token")
	}
	return runWithRemote(ctx, opts, telemetry.WrapRemote(newClient(opts)), out)
}

// runWithRemote is runExpire with the remote supplied by the caller.
func runWithRemote(ctx context.Context, opts runOptions, remote tracker.Remote, out io.Writer) error {
	urls, err := readLocators(opts.Path)
	if err != nil {
		return err
	}
	debug.Logf("read %d issue URL(s) from %s\n", len(urls), opts.Path)

	now, err := resolveNow(opts.Now)
	if err != nil {
		return err
	}

	engine := tracker.NewEngine(remote)
	engine.DryRun = opts.DryRun
	engine.Now = now
	if !opts.JSON {
		engine.OnMessage = func(msg string) { debug.Logf("%s\n", msg) }
		engine.OnWarning = func(msg string) { debug.Warnf("%s", ui.RenderWarn(msg)) }
	}

	defer debug.Timed("run")()
	result, runErr := engine.Run(ctx, urls)

	if opts.JSON {
		outputJSON(out, result)
	} else {
		printResult(out, result)
	}
	return runErr
}

func readLocators(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is operator-supplied
	if err != nil {
		return nil, fmt.Errorf("failed to open issue list: %w", err)
	}
	defer f.Close()
	return tracker.ParseLocators(f)
}

// resolveNow turns --now into the engine's clock. A fixed instant is
// parsed once so every issue in the run sees the same value.
func resolveNow(s string) (func() time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now, nil
	}
	t, err := timeparsing.ParseRelativeTime(s, time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q: %w", s, err)
	}
	debug.Logf("evaluating as of %s\n", t.Format(time.RFC3339))
	return func() time.Time { return t }, nil
}
