package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/stylesense/stylesense/app"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/infra/auth"
	"github.com/stylesense/stylesense/infra/config"
	"github.com/stylesense/stylesense/infra/editor"
	"github.com/stylesense/stylesense/infra/logging"
	"github.com/stylesense/stylesense/infra/stylesense"
	"github.com/stylesense/stylesense/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// env is everything a command needs once configuration is loaded.
type env struct {
	cfg     config.Config
	session *auth.Session
	account app.AccountService
	client  *stylesense.Client
	closer  io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		e.closer.Close()
	}
}

// loadEnv reads the configuration named by --config, points logging at the
// log file and builds the API client.
func loadEnv(c *cli.Context) (*env, error) {
	path, err := configPath(c)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	closer, err := logging.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		// Logging is best effort.
		logging.Discard(logrus.StandardLogger())
	}

	session := auth.NewSession(cfg.TokenPath(), cfg.UserPath())
	return &env{
		cfg:     cfg,
		session: session,
		account: session,
		client:  stylesense.NewClient(cfg.APIURL, session.Tokens(), cfg.RequestTimeout),
		closer:  closer,
	}, nil
}

// requireLogin returns the signed-in user, or an instruction to log in.
func (e *env) requireLogin() (domain.User, error) {
	if _, err := e.session.Tokens().AccessToken(); err != nil {
		return domain.User{}, notSignedIn(err)
	}
	user, err := e.account.CurrentUser(context.Background())
	if err != nil {
		return domain.User{}, notSignedIn(err)
	}
	return user, nil
}

func notSignedIn(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return cli.Exit("Not signed in. Run `stylesense login --email you@example.com` first.", 1)
	}
	return err
}

func runTUI(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	user, err := e.requireLogin()
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"api_url": e.cfg.APIURL, "user_id": user.ID}).Info("starting tui")

	rootModel := tui.NewApp(tui.Deps{
		Community: stylesense.NewCommunityService(e.client),
		Analyses:  stylesense.NewAnalysisService(e.client),
		Chat:      stylesense.NewChatService(e.client),
		Editor:    editor.NewEnvEditor(),
		User:      user,
		ImageURL:  e.client.ImageURL,
		FeedLimit: e.cfg.FeedLimit,
		Timeout:   e.cfg.RequestTimeout,
	})

	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("stylesense: %w", err)
	}
	return nil
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli.App {
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
	cli.VersionPrinter = func(ctx *cli.Context) {
		fmt.Fprintf(ctx.App.Writer, "StyleSense %s\ncommit: %s\nbuilt: %s\n", v, c, d)
	}

	return &cli.App{
		Name:      "stylesense",
		Usage:     "Outfit feedback, the community feed and your stylist, in the terminal",
		Version:   v,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		// main reports errors and picks the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (default: ~/.config/stylesense/config.toml)",
				EnvVars: []string{"STYLESENSE_CONFIG"},
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			loginCommand(),
			signupCommand(),
			logoutCommand(),
			analyzeCommand(),
			closetCommand(),
			configCommand(),
		},
	}
}

func main() {
	app := newCLI(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Error())
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "stylesense: %v\n", err)
		os.Exit(1)
	}
}
