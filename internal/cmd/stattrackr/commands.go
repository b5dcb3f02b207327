package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/pagination"
	"github.com/stattrackr/stattrackr/internal/session"
	"github.com/stattrackr/stattrackr/internal/sorting"
	"github.com/stattrackr/stattrackr/internal/stats"
)

var (
	errArgs       = errors.New("invalid arguments")
	errNoStats    = errors.New("no comparable stats")
	errNoPassword = errors.New("password is required")
)

type runner func(cmd *cobra.Command, args []string, env *environment) error

// withEnv sets up the api environment for a one shot command. A failed session refresh during the
// command is reported with a hint instead of switching views.
func withEnv(fn runner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		authFailures := make(chan error, 1)

		env, errEnv := setup(cmd.Context(), nil, authFailures)
		if errEnv != nil {
			return errEnv
		}
		defer env.Close()

		errRun := fn(cmd, args, env)

		select {
		case <-authFailures:
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Session expired, sign in again with: stattrackr login")
		default:
		}

		return errRun
	}
}

type listOptions struct {
	search   string
	position string
	sort     string
	desc     bool
	page     int
	pageSize int
}

func (o *listOptions) bind(cmd *cobra.Command, positions bool) {
	cmd.Flags().StringVarP(&o.search, "search", "s", "", "Filter by name")
	cmd.Flags().StringVar(&o.sort, "sort", "name", "Column to sort by")
	cmd.Flags().BoolVar(&o.desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&o.page, "page", 1, "Page to show")
	cmd.Flags().IntVar(&o.pageSize, "page-size", 0, "Rows per page, defaults to the configured page size")

	if positions {
		cmd.Flags().StringVarP(&o.position, "position", "p", "", "Filter by position (GK, DF, MF, FW)")
	}
}

func (o *listOptions) sorter() *sorting.Sorter {
	sorter := sorting.New(o.sort)
	if o.desc {
		sorter.Toggle(o.sort)
	}

	return sorter
}

func (o *listOptions) params(ordering map[string]string) (api.ListParams, error) {
	params := api.ListParams{Search: &o.search}

	if o.position != "" {
		position, err := stats.ParsePosition(o.position)
		if err != nil {
			return params, err
		}
		value := string(position)
		params.Position = &value
	}

	if _, found := ordering[o.sort]; found {
		value := o.sorter().Ordering(ordering)
		params.Ordering = &value
	}

	return params, nil
}

// printPage sorts the fetched collection, prints the requested page and a summary line.
func printPage[T any](out io.Writer, opts listOptions, defaultSize int, fields []field[T], items []T) {
	pageSize := opts.pageSize
	if pageSize <= 0 {
		pageSize = defaultSize
	}

	pager := pagination.NewPager(pageSize)
	pager.SetPage(opts.page)
	pager.Clamp(len(items))

	sorted := sorting.SortedView(opts.sorter(), items, fieldValue(fields))
	printEntities(out, fields, pagination.Paginate(sorted, pager.Page(), pager.PageSize()))

	start, end := pager.Summary(len(items))
	_, _ = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d · Page %d/%d",
		start, end, len(items), pager.Page(), max(1, pagination.TotalPages(len(items), pager.PageSize())))))
}

func newPlayersCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List players",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, env *environment) error {
			params, errParams := opts.params(api.PlayerOrdering)
			if errParams != nil {
				return errParams
			}

			page, err := env.client.Players(cmd.Context(), params)
			if err != nil {
				return err
			}

			printPage(cmd.OutOrStdout(), opts, env.config.PageSize, playerFields, page.Results)

			return nil
		}),
	}
	opts.bind(cmd, true)

	return cmd
}

func newClubsCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "clubs",
		Short: "List clubs",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, env *environment) error {
			params, errParams := opts.params(api.ClubOrdering)
			if errParams != nil {
				return errParams
			}

			page, err := env.client.Clubs(cmd.Context(), params)
			if err != nil {
				return err
			}

			printPage(cmd.OutOrStdout(), opts, env.config.PageSize, clubFields, page.Results)

			return nil
		}),
	}
	opts.bind(cmd, false)

	return cmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the season leaderboards",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, env *environment) error {
			dashboard, err := env.client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			for _, board := range dashboard.Leaderboards() {
				printLeaderboard(cmd.OutOrStdout(), board)
			}

			return nil
		}),
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search players and clubs by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, env *environment) error {
			results, err := env.client.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if results.Empty() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No results")

				return nil
			}

			if len(results.Players) > 0 {
				printEntities(cmd.OutOrStdout(), playerFields[:4], results.Players)
			}

			if len(results.Clubs) > 0 {
				printEntities(cmd.OutOrStdout(), clubFields[:3], results.Clubs)
			}

			return nil
		}),
	}
}

func newTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:       "top <players|clubs> <category>",
		Short:     "Show the top performers of a category",
		Long:      "Player categories: " + strings.Join(api.PlayerCategories, ", ") + "\nClub categories: " + strings.Join(api.ClubCategories, ", "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"players", "clubs"},
		RunE: withEnv(func(cmd *cobra.Command, args []string, env *environment) error {
			switch args[0] {
			case "players":
				players, err := env.client.TopPlayers(cmd.Context(), args[1], limit)
				if err != nil {
					return err
				}
				printEntities(cmd.OutOrStdout(), playerFields, players)
			case "clubs":
				clubs, err := env.client.TopClubs(cmd.Context(), args[1], limit)
				if err != nil {
					return err
				}
				printEntities(cmd.OutOrStdout(), clubFields, clubs)
			default:
				return fmt.Errorf("%w: expected players or clubs, got %q", errArgs, args[0])
			}

			return nil
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Number of entries")

	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two players or two clubs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "players <id> <id>",
		Short: "Compare two players of the same position",
		Args:  cobra.ExactArgs(2),
		RunE: withEnv(func(cmd *cobra.Command, args []string, env *environment) error {
			players, err := env.directory.Players(cmd.Context(), stats.ID(args[0]), stats.ID(args[1]))
			if err != nil {
				return err
			}

			return runCompare(cmd.OutOrStdout(), players[0], players[1])
		}),
	}, &cobra.Command{
		Use:   "clubs <id> <id>",
		Short: "Compare two clubs",
		Args:  cobra.ExactArgs(2),
		RunE: withEnv(func(cmd *cobra.Command, args []string, env *environment) error {
			clubs, err := env.directory.Clubs(cmd.Context(), stats.ID(args[0]), stats.ID(args[1]))
			if err != nil {
				return err
			}

			return runCompare(cmd.OutOrStdout(), clubs[0], clubs[1])
		}),
	})

	return cmd
}

func runCompare(out io.Writer, entityA stats.Entity, entityB stats.Entity) error {
	var selection compare.Selection
	selection.Set(compare.SlotA, entityA)
	selection.Set(compare.SlotB, entityB)

	result, err := selection.Result()
	if err != nil {
		return err
	}

	if result.Empty() {
		return fmt.Errorf("%w for %s and %s", errNoStats, entityA.DisplayName(), entityB.DisplayName())
	}

	printComparison(out, result)

	return nil
}

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, env *environment) error {
			if username == "" {
				username = env.config.Username
			}

			if username == "" {
				prompted, err := prompt(cmd, "Username: ")
				if err != nil {
					return err
				}
				username = prompted
			}

			password, errPassword := promptPassword(cmd, "Password: ")
			if errPassword != nil {
				return errPassword
			}

			if err := env.client.Login(cmd.Context(), username, password); err != nil {
				return err
			}

			if env.config.Username != username {
				conf := env.config
				conf.Username = username
				if err := env.loader.Write(conf); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", username)

			return nil
		}),
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")

	return cmd
}

func newSignupCmd() *cobra.Command {
	var registration api.Registration

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, env *environment) error {
			var err error
			if registration.Password1, err = promptPassword(cmd, "Password: "); err != nil {
				return err
			}

			if registration.Password2, err = promptPassword(cmd, "Confirm password: "); err != nil {
				return err
			}

			if err = env.client.Register(cmd.Context(), registration); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Account %s created, sign in with: stattrackr login -u %s\n",
				registration.Username, registration.Username)

			return nil
		}),
	}
	cmd.Flags().StringVarP(&registration.Username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&registration.Email, "email", "e", "", "Account email")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, env *environment) error {
			if err := env.client.Logout(cmd.Context()); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Server logout failed: %s\n", api.Message(err))
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")

			return nil
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, env *environment) error {
			if env.client.Session().Access() == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")

				return nil
			}

			user, err := env.client.User(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s <%s>\n", user.Username, user.Email)

			if claims, errClaims := session.AccessClaims(env.client.Session()); errClaims == nil && !claims.ExpiresAt.IsZero() {
				state := "expires"
				if claims.Expired(time.Now()) {
					state = "expired"
				}
				_, _ = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("access token %s %s", state, humanize.Time(claims.ExpiresAt))))
			}

			return nil
		}),
	}
}

func prompt(cmd *cobra.Command, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when attached to a terminal, otherwise a plain line.
func promptPassword(cmd *cobra.Command, label string) (string, error) {
	var (
		password string
		err      error
	)

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(file.Fd()) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)

		var raw []byte
		raw, err = term.ReadPassword(file.Fd())
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		password = string(raw)
	} else {
		password, err = prompt(cmd, label)
	}

	if err != nil {
		return "", err
	}

	if password == "" {
		return "", errNoPassword
	}

	return password, nil
}

func addCommands(root *cobra.Command) {
	root.AddCommand(
		newPlayersCmd(),
		newClubsCmd(),
		newDashboardCmd(),
		newSearchCmd(),
		newTopCmd(),
		newCompareCmd(),
		newLoginCmd(),
		newSignupCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
	)
}
