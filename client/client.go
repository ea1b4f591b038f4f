package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/aleph-zero/flutterstack/api"
	"github.com/aleph-zero/flutterstack/service/command"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"github.com/aleph-zero/flutterstack/telemetry"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	serviceName       = "flutterstack-cli"
	serviceVersion    = "0.0.1"
	readlineConfigDir = ".config/flutterstack"
)

var collectorURL = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

type Config struct {
	RemoteAddr string
	RemotePort int
}

type Option func(*Config)

func NewConfig(options ...Option) *Config {
	cfg := &Config{}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func WithRemoteAddr(addr string) Option {
	return func(cfg *Config) {
		cfg.RemoteAddr = addr
	}
}

func WithRemotePort(port uint16) Option {
	return func(cfg *Config) {
		cfg.RemotePort = int(port)
	}
}

func (c *Config) baseURL() string {
	return fmt.Sprintf("http://%s:%d", c.RemoteAddr, c.RemotePort)
}

func newHTTPClient() http.Client {
	return http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Second * 30,
	}
}

/* *** Submitters *** */

// Submitter runs one line of the command language and returns its result.
type Submitter interface {
	Submit(ctx context.Context, statement string) (*command.CommandResult, error)
}

type RemoteSubmitter struct {
	client   http.Client
	endpoint string
}

func NewRemoteSubmitter(client http.Client, baseURL string) *RemoteSubmitter {
	return &RemoteSubmitter{client: client, endpoint: baseURL + "/exec"}
}

func (s *RemoteSubmitter) Submit(ctx context.Context, statement string) (*command.CommandResult, error) {
	tr := otel.Tracer(serviceName)
	traceCtx, span := tr.Start(ctx, "client.exec", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(traceCtx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Add("q", statement)
	req.URL.RawQuery = q.Encode()

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, decodeRemoteError(res)
	}

	var result command.CommandResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

type LocalSubmitter struct {
	service command.Service
}

func NewLocalSubmitter(svc command.Service) *LocalSubmitter {
	return &LocalSubmitter{service: svc}
}

func (s *LocalSubmitter) Submit(ctx context.Context, statement string) (*command.CommandResult, error) {
	return s.service.Execute(ctx, statement)
}

// RemoteError carries a non-2xx response from the server.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

func decodeRemoteError(res *http.Response) error {
	var response api.ErrResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil || response.ErrorText == "" {
		return RemoteError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	}
	return RemoteError{StatusCode: res.StatusCode, Message: response.ErrorText}
}

/* *** REPL *** */

type LineReader interface {
	Readline() (string, error)
}

// Repl reads statements until EOF, an interrupt on an empty line, or one of
// the words exit and quit.
func Repl(ctx context.Context, reader LineReader, submitter Submitter, out io.Writer) {
	for {
		stmt, err := reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(stmt) == 0 {
				break
			} else {
				continue
			}
		} else if err != nil {
			break
		}

		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if stmt == "exit" || stmt == "quit" {
			break
		}

		result, err := submitter.Submit(ctx, stmt)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "error: %s\n", err)
			continue
		}
		fmt.Fprintln(out, Format(result))
	}
}

func Bootstrap(config *Config) {
	run(NewRemoteSubmitter(newHTTPClient(), config.baseURL()))
}

// BootstrapShell runs the REPL against an in-process stack registry.
func BootstrapShell(config *stacks.Config) {
	run(NewLocalSubmitter(command.NewService(stacks.NewService(config))))
}

func run(submitter Submitter) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rl, err := setupReadline()
	if err != nil {
		slog.Error("Error setting up readline config", "error", err)
		return
	}
	defer rl.Close()

	if collectorURL != "" {
		shutdown, err := telemetry.New(serviceName, serviceVersion, collectorURL)
		if err != nil {
			slog.Error("Error initializing telemetry", "error", err)
		} else {
			defer shutdown()
		}
	}

	Repl(ctx, rl, submitter, rl.Stdout())
}

func setupReadline() (rl *readline.Instance, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, readlineConfigDir)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		return nil, err
	}

	return readline.NewEx(&readline.Config{
		Prompt:            "\033[31mflutterstack> \033[0m ",
		HistoryFile:       filepath.Join(dir, "flutterstack.history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
}
