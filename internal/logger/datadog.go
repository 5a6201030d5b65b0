package logger

import (
	"context"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const defaultDataDogTimeout = 10 * time.Second

// dataDogWriter ships each log line to the DataDog logs intake API.
// Shipping is synchronous; keep it disabled for latency sensitive setups.
type dataDogWriter struct {
	api     *datadogV2.LogsApi
	ctx     context.Context
	source  string
	service string
	timeout time.Duration
}

// newDataDogWriter creates a writer submitting log entries via the DataDog API client.
func newDataDogWriter(cfg Log) *dataDogWriter {
	conf := datadog.NewConfiguration()
	if len(cfg.DataDog.Servers) > 0 {
		conf.Servers = cfg.DataDog.Servers
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{
			"apiKeyAuth": {Key: cfg.DataDog.APIKey},
		},
	)

	if cfg.DataDog.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
			"site": cfg.DataDog.Site,
		})
	}

	timeout := cfg.DataDog.Timeout
	if timeout == 0 {
		timeout = defaultDataDogTimeout
	}

	return &dataDogWriter{
		api:     datadogV2.NewLogsApi(datadog.NewAPIClient(conf)),
		ctx:     ctx,
		source:  cfg.AppName,
		service: cfg.DataDog.ServiceName,
		timeout: timeout,
	}
}

// Write implements io.Writer by submitting the entry as a single log item.
func (w *dataDogWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	item := datadogV2.HTTPLogItem{
		Ddsource: datadog.PtrString(w.source),
		Service:  datadog.PtrString(w.service),
		Message:  string(p),
	}

	_, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{item})
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return len(p), nil
}
