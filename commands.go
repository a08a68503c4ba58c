package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/stylesense/stylesense/app"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/infra/config"
	"github.com/stylesense/stylesense/infra/stylesense"
	"github.com/stylesense/stylesense/tui/common"
)

func analysisService(e *env) app.AnalysisService { return stylesense.NewAnalysisService(e.client) }

func closetService(e *env) app.ClosetService { return stylesense.NewClosetService(e.client) }

func commandContext(c *cli.Context, e *env) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context, e.cfg.RequestTimeout)
}

// --- login / signup / logout ---

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Sign in; the password is read from stdin",
		UsageText: "echo \"$PASSWORD\" | stylesense login --email you@example.com",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
		},
		Action: runLogin,
	}
}

func runLogin(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	password, err := readPassword(c.App.Reader)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(c, e)
	defer cancel()
	token, user, err := e.client.Login(ctx, c.String("email"), password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return cli.Exit("Invalid email or password.", 1)
		}
		return err
	}
	if err := e.session.Save(token, user); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Signed in as %s.\n", user.DisplayName())
	return nil
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:      "signup",
		Usage:     "Create an account and sign in; the password is read from stdin",
		UsageText: "echo \"$PASSWORD\" | stylesense signup --email you@example.com --username you",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Public username", Required: true},
		},
		Action: runSignup,
	}
}

func runSignup(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	password, err := readPassword(c.App.Reader)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(c, e)
	defer cancel()
	token, user, err := e.client.Signup(ctx, c.String("email"), c.String("username"), password)
	if err != nil {
		return err
	}
	if err := e.session.Save(token, user); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Account created. Signed in as %s.\n", user.DisplayName())
	return nil
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("no password on stdin")
	}
	return password, nil
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the stored session",
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "Signed out.")
			return nil
		},
	}
}

// --- analyze ---

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Upload an outfit photo (jpg or png) and print the feedback",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "occasion", Aliases: []string{"o"}, Usage: "e.g. wedding, interview, date night"},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: stylesense analyze FILE [--occasion OCCASION]", 2)
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()
	if _, err := e.requireLogin(); err != nil {
		return err
	}

	// Uploads plus model inference outlast ordinary calls.
	ctx, cancel := context.WithTimeout(c.Context, 3*e.cfg.RequestTimeout)
	defer cancel()
	a, err := analysisService(e).Analyze(ctx, c.Args().First(), c.String("occasion"))
	if err != nil {
		return notSignedIn(err)
	}
	printAnalysis(c.App.Writer, a)
	return nil
}

func printAnalysis(w io.Writer, a domain.Analysis) {
	fmt.Fprintf(w, "Score: %s\n", common.FormatScore(a.Score))
	if a.ScoreReason != "" {
		fmt.Fprintf(w, "  %s\n", a.ScoreReason)
	}
	if a.StyleDescription != "" {
		fmt.Fprintf(w, "\nStyle: %s\n", a.StyleDescription)
	}
	if a.Compliment != "" {
		fmt.Fprintf(w, "\n%s\n", a.Compliment)
	}
	if len(a.Items) > 0 {
		fmt.Fprintln(w, "\nItems:")
		for _, it := range a.Items {
			fmt.Fprintf(w, "  - %s\n", strings.TrimSpace(it.Color+" "+it.Name))
		}
	}
	if len(a.Suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range a.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	if len(a.Alternatives) > 0 {
		fmt.Fprintln(w, "\nBudget alternatives:")
		for _, alt := range a.Alternatives {
			fmt.Fprintf(w, "  - %s: %s (%s)\n", alt.Item, alt.Suggestion, alt.PriceRange)
		}
	}
	fmt.Fprintf(w, "\nID: %s (open `stylesense` and press tab to chat about it)\n", a.ID)
}

// --- closet ---

func closetCommand() *cli.Command {
	return &cli.Command{
		Name:  "closet",
		Usage: "Manage your virtual closet",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List closet items",
				Action: runClosetList,
			},
			{
				Name:  "add",
				Usage: "Add a closet item",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "category", Required: true, Usage: strings.Join(domain.ClosetCategories, ", ")},
					&cli.StringFlag{Name: "color", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "tags", Usage: "comma separated"},
				},
				Action: runClosetAdd,
			},
			{
				Name:      "edit",
				Usage:     "Change fields of a closet item",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "color"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "tags", Usage: "comma separated, replaces existing tags"},
				},
				Action: runClosetEdit,
			},
			{
				Name:      "rm",
				Usage:     "Remove a closet item",
				ArgsUsage: "ID",
				Action:    runClosetRemove,
			},
		},
	}
}

func closetEnv(c *cli.Context) (*env, error) {
	e, err := loadEnv(c)
	if err != nil {
		return nil, err
	}
	if _, err := e.requireLogin(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func runClosetList(c *cli.Context) error {
	e, err := closetEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := commandContext(c, e)
	defer cancel()
	items, err := closetService(e).List(ctx)
	if err != nil {
		return notSignedIn(err)
	}
	if len(items) == 0 {
		fmt.Fprintln(c.App.Writer, "Your closet is empty.")
		return nil
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tCOLOR\tTAGS")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Category, it.Color, common.FormatTags(it.Tags))
	}
	return tw.Flush()
}

func runClosetAdd(c *cli.Context) error {
	e, err := closetEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := commandContext(c, e)
	defer cancel()
	item, err := closetService(e).Add(ctx, domain.ClosetItem{
		Name:        c.String("name"),
		Category:    c.String("category"),
		Color:       c.String("color"),
		Description: c.String("description"),
		Tags:        common.ParseTags(c.String("tags")),
	})
	if err != nil {
		return notSignedIn(err)
	}
	fmt.Fprintf(c.App.Writer, "Added %s (%s).\n", item.Name, item.ID)
	return nil
}

func runClosetEdit(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: stylesense closet edit ID [--name ...] [--color ...]", 2)
	}
	e, err := closetEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := commandContext(c, e)
	defer cancel()
	svc := closetService(e)
	items, err := svc.List(ctx)
	if err != nil {
		return notSignedIn(err)
	}
	id := c.Args().First()
	idx := slices.IndexFunc(items, func(it domain.ClosetItem) bool { return it.ID == id })
	if idx < 0 {
		return cli.Exit("No closet item with ID "+id+".", 1)
	}

	item := items[idx]
	for flag, field := range map[string]*string{
		"name":        &item.Name,
		"category":    &item.Category,
		"color":       &item.Color,
		"description": &item.Description,
	} {
		if c.IsSet(flag) {
			*field = c.String(flag)
		}
	}
	if c.IsSet("tags") {
		item.Tags = common.ParseTags(c.String("tags"))
	}

	updated, err := svc.Update(ctx, item)
	if err != nil {
		return notSignedIn(err)
	}
	fmt.Fprintf(c.App.Writer, "Updated %s (%s).\n", updated.Name, updated.ID)
	return nil
}

func runClosetRemove(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: stylesense closet rm ID", 2)
	}
	e, err := closetEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := commandContext(c, e)
	defer cancel()
	if err := closetService(e).Delete(ctx, c.Args().First()); err != nil {
		return notSignedIn(err)
	}
	fmt.Fprintln(c.App.Writer, "Removed.")
	return nil
}

// --- config ---

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a sample configuration file",
				Action: func(c *cli.Context) error {
					path, err := configPath(c)
					if err != nil {
						return err
					}
					if err := config.Init(path); err != nil {
						return fmt.Errorf("failed to initialize config: %w", err)
					}
					fmt.Fprintf(c.App.Writer, "Created configuration file at %s\n", path)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Action: func(c *cli.Context) error {
					path, err := configPath(c)
					if err != nil {
						return err
					}
					cfg, err := config.Load(path)
					if err != nil {
						return fmt.Errorf("config: %w", err)
					}
					w := c.App.Writer
					fmt.Fprintf(w, "api_url = %q\n", cfg.APIURL)
					fmt.Fprintf(w, "auth_dir = %q\n", cfg.AuthDir)
					fmt.Fprintf(w, "log_path = %q\n", cfg.LogPath)
					fmt.Fprintf(w, "log_level = %q\n", cfg.LogLevel)
					fmt.Fprintf(w, "request_timeout = %q\n", cfg.RequestTimeout.String())
					fmt.Fprintf(w, "feed_limit = %d\n", cfg.FeedLimit)
					return nil
				},
			},
		},
	}
}

func configPath(c *cli.Context) (string, error) {
	if p := c.String("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}
