package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/aleph-zero/flutterstack/api"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"github.com/aleph-zero/flutterstack/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"io"
	"net/http"
	"net/url"
	"os"
)

type LoaderConfig struct {
	ClientConfig *Config
	Stack        string
	Filename     string
}

type LoaderOption func(*LoaderConfig)

func NewLoaderConfig(options ...LoaderOption) *LoaderConfig {
	cfg := &LoaderConfig{}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func WithStack(stack string) LoaderOption {
	return func(cfg *LoaderConfig) {
		cfg.Stack = stack
	}
}

func WithFilename(filename string) LoaderOption {
	return func(cfg *LoaderConfig) {
		cfg.Filename = filename
	}
}

func WithClientConfig(clientConfig *Config) LoaderOption {
	return func(cfg *LoaderConfig) {
		cfg.ClientConfig = clientConfig
	}
}

func BootstrapLoader(config *LoaderConfig) {
	ctx := context.Background()
	if collectorURL != "" {
		if shutdown, err := telemetry.New(serviceName, serviceVersion, collectorURL); err == nil {
			defer shutdown()
		}
	}

	file, err := os.Open(config.Filename)
	if err != nil {
		fmt.Printf("Error opening file '%s': %s\n", config.Filename, err)
		return
	}
	defer file.Close()

	d, err := Load(ctx, newHTTPClient(), config.ClientConfig.baseURL(), config.Stack, file)
	if err != nil {
		fmt.Printf("Error loading stack '%s': %s\n", config.Stack, err)
		return
	}
	fmt.Printf("Loaded stack %s: size %d, capacity %d\n", d.Name, d.Size, d.Capacity)
}

// Load creates stack on the server from the JSON array or NDJSON values in
// reader. The new stack's capacity equals the number of values.
func Load(ctx context.Context, client http.Client, baseURL, stack string, reader io.Reader) (*stacks.Description, error) {
	values, err := api.CollectValues(reader, 0)
	if err != nil {
		return nil, err
	}

	tr := otel.Tracer(serviceName)
	traceCtx, span := tr.Start(ctx, "client.loader", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	data, err := json.Marshal(api.CreateStackRequest{Values: values})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/stacks/%s", baseURL, url.PathEscape(stack))
	req, err := http.NewRequestWithContext(traceCtx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		return nil, decodeRemoteError(res)
	}

	var d stacks.Description
	if err := json.NewDecoder(res.Body).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
