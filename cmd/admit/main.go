package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-envconfig"

	"admission/internal/admission"
	"admission/internal/admission/metrics"
	"admission/internal/admission/models"
	"admission/internal/platform/config"
	"admission/internal/platform/logger"
	"admission/pkg/requestcontext"
)

const dateLayout = "2006-01-02"

// Exit statuses reported to the calling shell.
const (
	exitAccepted = 0
	exitError    = 1
	exitRejected = 2
)

// main evaluates one candidate from the command line and prints the result
// as JSON. Collaborators are chosen from the environment; see wire.go.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], envconfig.OsLookuper(), metrics.New(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

var errMissingBirthDate = errors.New("-dob is required")

type options struct {
	firstName string
	lastName  string
	email     string
	birthDate string
	clientID  int64
	asOf      string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options
	fs := flag.NewFlagSet("admit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.firstName, "first-name", "", "candidate first name")
	fs.StringVar(&opts.lastName, "last-name", "", "candidate last name")
	fs.StringVar(&opts.email, "email", "", "candidate email address")
	fs.StringVar(&opts.birthDate, "dob", "", "candidate date of birth (YYYY-MM-DD)")
	fs.Int64Var(&opts.clientID, "client-id", 0, "client the candidate belongs to")
	fs.StringVar(&opts.asOf, "as-of", "", "evaluation date (YYYY-MM-DD), defaults to today")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.birthDate == "" {
		fmt.Fprintln(stderr, "admit: -dob is required")
		fs.Usage()
		return nil, errMissingBirthDate
	}
	return &opts, nil
}

func (o *options) candidate() (models.Candidate, error) {
	dob, err := time.Parse(dateLayout, o.birthDate)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("invalid -dob %q: %w", o.birthDate, err)
	}
	return models.Candidate{
		FirstName:   o.firstName,
		LastName:    o.lastName,
		Email:       o.email,
		DateOfBirth: dob,
		ClientID:    models.ClientID(o.clientID),
	}, nil
}

func run(ctx context.Context, args []string, env envconfig.Lookuper, m *metrics.Metrics, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitAccepted
		}
		return exitError
	}

	cfg, err := config.LoadFrom(ctx, env)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	log := logger.NewWithWriter(stderr, cfg.LogLevel)

	candidate, err := opts.candidate()
	if err != nil {
		log.ErrorContext(ctx, "invalid arguments", "error", err)
		return exitError
	}

	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
	if opts.asOf != "" {
		asOf, err := time.Parse(dateLayout, opts.asOf)
		if err != nil {
			log.ErrorContext(ctx, "invalid arguments", "error", fmt.Errorf("invalid -as-of %q: %w", opts.asOf, err))
			return exitError
		}
		ctx = requestcontext.WithTime(ctx, asOf)
	}

	deps, err := wire(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to initialize collaborators", "error", err)
		return exitError
	}
	defer deps.Close()

	svc, err := admission.New(deps.clients, deps.oracle, deps.users,
		admission.WithLogger(log),
		admission.WithMetrics(m),
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to build admission service", "error", err)
		return exitError
	}

	result, err := svc.Evaluate(ctx, candidate)
	if err != nil {
		return exitError
	}

	if err := writeResult(stdout, result); err != nil {
		log.ErrorContext(ctx, "failed to write result", "error", err)
		return exitError
	}
	if !result.Accepted() {
		return exitRejected
	}
	return exitAccepted
}

func writeResult(w io.Writer, result *models.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
