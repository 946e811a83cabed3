package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "github.com/dreamw/travel-quote/internal/adapter/http"
	"github.com/dreamw/travel-quote/internal/adapter/jsonfile"
	"github.com/dreamw/travel-quote/internal/adapter/redisstore"
	"github.com/dreamw/travel-quote/internal/adapter/terminal"
	"github.com/dreamw/travel-quote/internal/config"
	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/dreamw/travel-quote/internal/port"
	"github.com/dreamw/travel-quote/internal/usecase/client"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

const usage = `Usage: quote-client <command> [flags]

Commands:
  submit        submit a quote request from flags or a YAML form file
  interactive   fill in the quote form at the prompt and submit it
  history       show recent submissions counted by the rate limit
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var code int
	switch os.Args[1] {
	case "submit":
		code = runSubmit(os.Args[2:])
	case "interactive":
		code = runInteractive(os.Args[2:])
	case "history":
		code = runHistory(os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		code = 2
	}
	os.Exit(code)
}

// app bundles everything a command needs once config is loaded
type app struct {
	cfg     config.Config
	logger  *log.Logger
	limiter *client.RateLimiter
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func setup(cfgPath string) *app {
	logger := log.New(os.Stderr, "[quote-client] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}

	a := &app{cfg: cfg, logger: logger}
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.Printf("Warning: cannot open log file %s: %v, logging to stderr", cfg.LogFile, err)
		} else {
			logger.SetOutput(logFile)
			a.closers = append(a.closers, func() { logFile.Close() })
		}
	}
	logger.Printf("Config loaded from %s: endpoint=%s storage=%s max=%d window=%s",
		cfgPath, cfg.Endpoint, cfg.Storage, cfg.MaxSubmissions, cfg.Window)

	store := a.openStore()
	a.limiter = client.NewRateLimiter(store, port.SystemClock{},
		client.WithMaxSubmissions(cfg.MaxSubmissions),
		client.WithWindow(cfg.Window),
		client.WithLimiterLogger(logger),
	)
	return a
}

func (a *app) openStore() port.KeyValueStore {
	cfg := a.cfg
	if cfg.Storage == config.StorageRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, func() { _ = rdb.Close() })

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			// Reads fail open in the rate limiter
			a.logger.Printf("Redis ping %s failed: %v", cfg.RedisAddr, err)
		}
		return redisstore.New(rdb, redisstore.WithPrefix(cfg.RedisPrefix), redisstore.WithTTL(cfg.Window))
	}

	store, err := jsonfile.New(cfg.HistoryFile)
	if err == nil {
		return store
	}
	a.logger.Printf("History file %s unreadable: %v", cfg.HistoryFile, err)
	aside := cfg.HistoryFile + ".corrupt"
	if rerr := os.Rename(cfg.HistoryFile, aside); rerr != nil {
		a.logger.Fatalf("Move unreadable history aside: %v", rerr)
	}
	a.logger.Printf("Moved unreadable history to %s, starting empty", aside)
	store, err = jsonfile.New(cfg.HistoryFile)
	if err != nil {
		a.logger.Fatalf("Open history file %s: %v", cfg.HistoryFile, err)
	}
	return store
}

func (a *app) controller(form *terminal.Form, presenter *terminal.Presenter) *client.Controller {
	submitter := httpadapter.NewFormSubmitter(a.cfg.Endpoint, a.cfg.Timeout)
	return client.NewController(a.limiter, submitter, presenter, form, client.WithControllerLogger(a.logger))
}

func submit(a *app, form *terminal.Form, presenter *terminal.Presenter) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	outcome := a.controller(form, presenter).HandleSubmit(ctx, form.Snapshot())
	a.logger.Printf("Submission outcome: %s", outcome)
	if outcome != domain.OutcomeAccepted {
		return 1
	}
	return 0
}

func runSubmit(args []string) int {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath, "Config file path")
	formPath := fs.String("form", "", "YAML file with form fields (flags override it)")
	fields := map[string]*string{
		domain.FieldName:        fs.String("name", "", "Full name"),
		domain.FieldEmail:       fs.String("email", "", "Email address"),
		domain.FieldOrigin:      fs.String("origin", "", "Travelling from"),
		domain.FieldDestination: fs.String("destination", "", "Destination"),
		domain.FieldStartDate:   fs.String("start", "", "Departure date (YYYY-MM-DD)"),
		domain.FieldEndDate:     fs.String("end", "", "Return date (YYYY-MM-DD)"),
		domain.FieldTravelers:   fs.String("travelers", "", "Number of travellers"),
		"phone":                 fs.String("phone", "", "Phone number (optional)"),
		"message":               fs.String("message", "", "Additional notes (optional)"),
	}
	consent := fs.Bool("consent", false, "Agree to be contacted about this quote")
	fs.Parse(args)

	var initial domain.FormState
	if *formPath != "" {
		f, err := readFormFile(*formPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read form: %v\n", err)
			return 2
		}
		initial = f
	}

	a := setup(*cfgPath)
	defer a.Close()

	form := terminal.NewForm(initial, os.Stdout)
	flagNames := map[string]string{domain.FieldStartDate: "start", domain.FieldEndDate: "end"}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for field, v := range fields {
		name := field
		if n, ok := flagNames[field]; ok {
			name = n
		}
		if set[name] {
			form.SetField(field, *v)
		}
	}
	if set["consent"] {
		form.SetField(domain.FieldConsent, fmt.Sprint(*consent))
	}

	presenter := terminal.NewPresenter(os.Stdout)
	if !datesAllowed(presenter, form.Snapshot(), time.Now()) {
		a.logger.Printf("Submission refused: trip dates outside the selectable range")
		return 1
	}
	return submit(a, form, presenter)
}

// datesAllowed applies the date input limits the interactive prompt
// enforces. Missing dates are left to validation.
func datesAllowed(presenter port.FeedbackPresenter, f domain.FormState, now time.Time) bool {
	if strings.TrimSpace(f.StartDate) == "" || strings.TrimSpace(f.EndDate) == "" {
		return true
	}
	err := domain.CheckTripDates(f, domain.MinDate(now))
	if err == nil {
		return true
	}
	msg := err.Error()
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Message
	}
	presenter.Show(msg, domain.FeedbackError)
	return false
}

func runInteractive(args []string) int {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath, "Config file path")
	fs.Parse(args)

	a := setup(*cfgPath)
	defer a.Close()

	presenter := terminal.NewPresenter(os.Stdout)
	form := terminal.NewForm(domain.FormState{}, os.Stdout)
	guard := client.NewDateGuard(form, presenter)
	prompter := terminal.NewPrompter(os.Stdin, os.Stdout, form, domain.MinDate(time.Now()), func(field string) {
		switch field {
		case domain.FieldStartDate:
			guard.StartDateChanged()
		case domain.FieldEndDate:
			guard.EndDateChanged()
		}
	})

	fmt.Fprintln(os.Stdout, "Request a travel quote")
	if err := prompter.Fill(); err != nil {
		a.logger.Printf("Prompt aborted: %v", err)
		return 1
	}
	return submit(a, form, presenter)
}

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath, "Config file path")
	fs.Parse(args)

	a := setup(*cfgPath)
	defer a.Close()

	printHistory(os.Stdout, a.limiter, time.Now())
	return 0
}

func printHistory(w io.Writer, limiter *client.RateLimiter, now time.Time) {
	ctx := context.Background()
	admitted := limiter.IsAdmitted(ctx)
	history := limiter.History(ctx)
	limit, window := limiter.Limits()

	fmt.Fprintf(w, "%d of %d submissions used in the last %s\n", len(history), limit, window)
	for _, ts := range history {
		fmt.Fprintf(w, "  %s (%s ago, frees up in %s)\n",
			ts.Format(time.RFC3339), now.Sub(ts).Round(time.Second), ts.Add(window).Sub(now).Round(time.Second))
	}
	if admitted {
		fmt.Fprintln(w, "You can submit a new request now.")
	} else {
		fmt.Fprintln(w, "Limit reached. Please try again later.")
	}
}

func readFormFile(path string) (domain.FormState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FormState{}, err
	}
	var f domain.FormState
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.FormState{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}
