package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"fleetadmin/internal/config"
	"fleetadmin/internal/logger"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
	"fleetadmin/internal/session"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// app is built once per invocation, after flags are parsed.
type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	session *session.Manager
	client  *services.Client
	uploads *services.UploadService

	jsonOutput bool
	out        io.Writer
}

func (a *app) init(cmd *cobra.Command) error {
	a.cfg = config.LoadConfig()
	if a.cfg.BaseURL == "" {
		return errors.New("BASE_URL is not set")
	}

	a.logger = logger.InitLogger(a.cfg.LogLevel, a.cfg.IsProduction())
	a.out = cmd.OutOrStdout()

	httpClient := &http.Client{Timeout: a.cfg.HTTPTimeout}
	a.session = session.NewManager(session.NewFileStore(a.cfg.SessionFile))
	a.client = services.NewClient(a.cfg.BaseURL, httpClient, a.session, a.logger)
	a.uploads = services.NewUploadService(services.UploadConfig{
		BaseURL:      a.cfg.AssetBaseURL,
		CloudName:    a.cfg.CloudName,
		UploadPreset: a.cfg.UploadPreset,
		RateLimit:    a.cfg.UploadRateLimit,
	}, httpClient, a.logger)
	return nil
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "fleetadmin",
		Short:         "Admin console for the rental and parking backend",
		Long:          `fleetadmin manages bookings, cars, users, vendors, parking spots and parking managers on the rental backend, and uploads images to the asset host.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		versionCmd(),
		loginCmd(a),
		logoutCmd(a),
		statusCmd(a),
		dashboardCmd(a),
		bookingsCmd(a),
		carsCmd(a),
		usersCmd(a),
		vendorsCmd(a),
		parkingCmd(a),
		managersCmd(a),
		uploadCmd(a),
		serveCmd(a),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fleetadmin version %s\n", version)
		},
	}
}

// emit prints a successful outcome, as JSON or through table, and turns a
// failed one into the command's error.
func emit[T any](a *app, o models.Outcome[T], table func(w io.Writer, data T)) error {
	if !o.Success {
		return errors.New(o.Message)
	}
	if a.jsonOutput || table == nil {
		return writeJSON(a.out, o)
	}
	table(a.out, o.Data)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func loginCmd(a *app) *cobra.Command {
	var number, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an admin and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if number == "" || password == "" {
				return errors.New("--number and --password are required")
			}
			out := services.NewAuthService(a.client).Login(cmd.Context(), number, password)
			if !out.Success {
				return errors.New(out.Message)
			}
			if a.jsonOutput {
				return writeJSON(a.out, out)
			}
			if out.User != nil && out.User.DisplayName() != "" {
				fmt.Fprintf(a.out, "Logged in as %s\n", out.User.DisplayName())
				return nil
			}
			fmt.Fprintln(a.out, "Logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "Admin phone number")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.NewAuthService(a.client).Logout(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}
