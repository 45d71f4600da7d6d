package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/drewfead/calpost/internal/auth"
	"github.com/drewfead/calpost/internal/calendar"
	"github.com/drewfead/calpost/internal/config"
	"github.com/drewfead/calpost/internal/log"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const (
	backendCronofy = "cronofy"
	backendGoogle  = "google"
)

// addEventResult is printed after every add-event call.
type addEventResult struct {
	Backend    string `json:"backend" yaml:"backend"`
	CalendarID string `json:"calendar_id" yaml:"calendar_id"`
	EventID    string `json:"event_id" yaml:"event_id"`
	Status     int    `json:"status" yaml:"status"`
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "calpost",
		Usage: "add events to a remote calendar",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to config file (default: ./config.yaml or ~/.config/calpost/config.yaml)",
				Sources: cli.EnvVars("CALPOST_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			addEventCommand(),
			tokenCommand(),
		},
	}
}

func addEventCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-event",
		Usage: "submit one event and print the API status code",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Value: backendCronofy, Usage: "cronofy or google"},
			&cli.StringFlag{Name: "token", Usage: "bearer token", Sources: cli.EnvVars("CALPOST_CRONOFY_TOKEN")},
			&cli.StringFlag{Name: "endpoint", Usage: "API root, e.g. https://api.cronofy.com/v1"},
			&cli.StringFlag{Name: "calendar-id", Usage: "destination calendar"},
			&cli.StringFlag{Name: "event-id", Usage: "caller event ID (default: random UUID)"},
			&cli.StringFlag{Name: "summary", Usage: "event summary"},
			&cli.StringFlag{Name: "description", Usage: "event description"},
			&cli.StringFlag{Name: "start", Usage: "start time (RFC3339)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "end time (RFC3339)", Required: true},
			&cli.StringFlag{Name: "timezone", Usage: "IANA zone; when empty, start and end are sent as dates"},
			&cli.StringFlag{Name: "date-location", Usage: "IANA zone used to pick dates for date-only events (default: process local zone)"},
			&cli.StringFlag{Name: "output", Usage: "json or yaml"},
		},
		Action: runAddEvent,
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "manage the stored bearer token",
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "store a bearer token for later add-event calls",
				ArgsUsage: "<token>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "token file (default: ~/.config/calpost/token.json)"},
				},
				Action: runTokenSet,
			},
		},
	}
}

func runAddEvent(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.NewWithWriter(log.Config{Level: cfg.Logger.Level, Encoding: cfg.Logger.Encoding}, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer logger.Sync()

	start, err := parseTime("start", cmd.String("start"))
	if err != nil {
		return err
	}
	end, err := parseTime("end", cmd.String("end"))
	if err != nil {
		return err
	}

	ev := calendar.Event{
		ID:          cmd.String("event-id"),
		Summary:     cmd.String("summary"),
		Description: cmd.String("description"),
		Start:       start,
		End:         end,
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	loc, err := loadDateLocation(firstNonEmpty(cmd.String("date-location"), cfg.DateLocation))
	if err != nil {
		return err
	}

	output := cfg.Output
	if cmd.IsSet("output") {
		output = cmd.String("output")
	}

	result := addEventResult{Backend: cmd.String("backend"), EventID: ev.ID}

	switch result.Backend {
	case backendCronofy:
		result.CalendarID = firstNonEmpty(cmd.String("calendar-id"), cfg.Cronofy.CalendarID)
		tzid := eventZone(cmd, cfg.Cronofy.Timezone)
		result.Status, err = addCronofyEvent(ctx, cmd, cfg, logger, loc, result.CalendarID, ev, tzid)
	case backendGoogle:
		result.CalendarID = firstNonEmpty(cmd.String("calendar-id"), cfg.Google.CalendarID)
		tzid := eventZone(cmd, cfg.Google.Timezone)
		result.Status, err = addGoogleEvent(ctx, cmd, cfg, loc, result.CalendarID, ev, tzid)
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", result.Backend, backendCronofy, backendGoogle)
	}
	if err != nil {
		return err
	}

	logger.Info("event submitted",
		zap.String("backend", result.Backend),
		zap.String("calendar_id", result.CalendarID),
		zap.String("event_id", result.EventID),
		zap.Int("status", result.Status),
	)

	if err := writeResult(cmd.Root().Writer, output, result); err != nil {
		return err
	}
	if result.Status >= http.StatusMultipleChoices {
		return fmt.Errorf("calendar API answered %d %s", result.Status, http.StatusText(result.Status))
	}
	return nil
}

func addCronofyEvent(ctx context.Context, cmd *cli.Command, cfg *config.Config, logger *zap.Logger, loc *time.Location, calendarID string, ev calendar.Event, tzid string) (int, error) {
	if calendarID == "" {
		return 0, errors.New("calendar ID is required (--calendar-id or cronofy.calendar_id)")
	}

	token, err := resolveToken(cmd.String("token"), cfg)
	if err != nil {
		return 0, err
	}

	opts := []calendar.Option{calendar.WithLogger(logger), calendar.WithLocation(loc)}
	if cfg.RateLimit.PerSecond > 0 {
		opts = append(opts, calendar.WithRateLimit(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst))
	}

	sub, err := calendar.NewSubmitter(token, opts...)
	if err != nil {
		return 0, err
	}
	defer sub.Close()

	endpoint := firstNonEmpty(cmd.String("endpoint"), cfg.Cronofy.Endpoint)
	if tzid != "" {
		return sub.AddEventInZone(ctx, endpoint, calendarID, ev, tzid)
	}
	return sub.AddEvent(ctx, endpoint, calendarID, ev)
}

func addGoogleEvent(ctx context.Context, cmd *cli.Command, cfg *config.Config, loc *time.Location, calendarID string, ev calendar.Event, tzid string) (int, error) {
	keyPath := cfg.Google.CredentialsPath
	if keyPath == "" {
		defaultPath, err := config.GetServiceAccountPath()
		if err != nil {
			return 0, err
		}
		keyPath = defaultPath
	}

	httpClient, err := auth.GetServiceAccountClient(ctx, keyPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get authenticated client: %w", err)
	}

	sub, err := calendar.NewGoogleSubmitter(ctx, httpClient, firstNonEmpty(cmd.String("endpoint"), cfg.Google.Endpoint))
	if err != nil {
		return 0, err
	}
	sub.SetLocation(loc)

	if tzid != "" {
		return sub.AddEventInZone(ctx, calendarID, ev, tzid)
	}
	return sub.AddEvent(ctx, calendarID, ev)
}

// resolveToken picks the flag/env token, then config, then the token file.
func resolveToken(flagToken string, cfg *config.Config) (string, error) {
	if token := firstNonEmpty(flagToken, cfg.Cronofy.Token); token != "" {
		return token, nil
	}

	path := cfg.Cronofy.TokenFile
	if path == "" {
		defaultPath, err := config.GetTokenPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	token, err := auth.LoadBearerToken(path)
	if err != nil {
		return "", fmt.Errorf("no bearer token configured (use --token, CALPOST_CRONOFY_TOKEN or 'calpost token set'): %w", err)
	}
	return token, nil
}

func runTokenSet(ctx context.Context, cmd *cli.Command) error {
	token := cmd.Args().First()
	if token == "" {
		return errors.New("usage: calpost token set <token>")
	}

	path := cmd.String("file")
	if path == "" {
		if err := config.EnsureConfigDir(); err != nil {
			return err
		}
		defaultPath, err := config.GetTokenPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if err := auth.SaveBearerToken(path, token); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "token saved to %s\n", path)
	return nil
}

// eventZone returns --timezone when given, otherwise the backend's configured zone.
func eventZone(cmd *cli.Command, configured string) string {
	if cmd.IsSet("timezone") {
		return cmd.String("timezone")
	}
	return configured
}

// loadDateLocation resolves name, falling back to the process local zone.
func loadDateLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid date location %q: %w", name, err)
	}
	return loc, nil
}

func parseTime(name, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s (expected RFC3339): %w", name, err)
	}
	return t, nil
}

func writeResult(w io.Writer, format string, result addEventResult) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(result)
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "calpost:", err)
		os.Exit(1)
	}
}
