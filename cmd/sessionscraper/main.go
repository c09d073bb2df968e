/*
sessionscraper logs in to a website, fetches a second page with the same
session and prints the text of the selected elements together with the
session cookies as a json document.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jakopako/sessionscraper/internal/config"
	"github.com/jakopako/sessionscraper/internal/fetch"
	"github.com/jakopako/sessionscraper/internal/log"
	"github.com/jakopako/sessionscraper/internal/output"
	"github.com/jakopako/sessionscraper/internal/scraper"
	"github.com/jakopako/sessionscraper/internal/selector"
	"github.com/jakopako/sessionscraper/internal/session"
)

var version = "dev"

const name = "sessionscraper"

const usage = "usage: sessionscraper --login-url=URL [--login-fields=FIELDS] --page2-url=URL --selectors=LIST [flags]"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type VersionFlag string

func (v VersionFlag) Decode(_ *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                       { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Fprintln(app.Stdout, vars["version"])
	app.Exit(exitOK)
	return nil
}

type cli struct {
	Version VersionFlag `short:"v" long:"version" help:"Print the version and exit."`
	Debug   bool        `short:"d" long:"debug" help:"Set log level to 'debug' and store the fetched pages in the debug directory."`
	Config  string      `short:"c" long:"config" help:"Optional yml configuration file. Environment variables override its values." type:"path"`

	LoginURL    string        `name:"login-url" help:"URL of the first request." required:""`
	LoginFields string        `name:"login-fields" help:"URL-encoded form fields sent with the first request. If empty the login URL is fetched with GET."`
	Page2URL    string        `name:"page2-url" help:"URL of the page to extract data from." required:""`
	Selectors   string        `name:"selectors" help:"Comma-separated list of selectors (#id, .class or tag)." required:""`
	UserAgent   string        `name:"user-agent" help:"User agent sent with every request."`
	Timeout     time.Duration `name:"timeout" help:"Timeout per request, eg. 30s. No timeout if not set."`
	Summary     bool          `name:"summary" help:"Print the number of matches per selector to stderr."`
}

// exitCode is used to leave kong's parsing early, eg. after printing the
// version or the help.
type exitCode int

func getVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if ok {
		if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
			return buildInfo.Main.Version
		}
	}
	return version
}

// run executes one scraping run with the given command line arguments and
// returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	cli := cli{
		Version: VersionFlag(getVersion()),
	}

	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description("Log in to a website and extract data from a second page of the same session."),
		kong.Vars{
			"version": string(cli.Version),
		},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitError
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n%s\n", name, err, usage)
		return exitUsage
	}

	log.Debug = cli.Debug
	// not very nice that the log package contains global state,
	// and that the following function relies on the log.Debug variable being set
	log.InitializeDefaultLogger(stderr)

	conf, err := config.NewConfig(cli.Config)
	if err != nil {
		slog.Error(err.Error())
		return exitError
	}
	if cli.UserAgent != "" {
		conf.Fetcher.UserAgent = cli.UserAgent
	}
	if cli.Timeout > 0 {
		conf.Fetcher.Timeout = cli.Timeout
	}
	slog.Debug(fmt.Sprintf("effective configuration:\n%s", conf))

	writer, err := output.NewWriter(&conf.Writer, stdout)
	if err != nil {
		slog.Error(err.Error())
		return exitError
	}

	jar, err := session.NewJar()
	if err != nil {
		slog.Error(fmt.Sprintf("failed to create cookie jar: %v", err))
		return exitError
	}
	fetcher := fetch.NewSessionFetcher(&conf.Fetcher, jar)
	defer fetcher.Cancel()

	s := &scraper.Scraper{
		LoginURL:    cli.LoginURL,
		LoginFields: cli.LoginFields,
		PageURL:     cli.Page2URL,
		Selectors:   selector.ParseList(cli.Selectors),
		Fetcher:     fetcher,
		Jar:         jar,
	}
	result := s.Scrape(ctx)

	if err := writer.Write(result); err != nil {
		slog.Error(err.Error())
		return exitError
	}
	if cli.Summary {
		printSummary(stderr, s.Selectors, result)
	}
	return exitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
