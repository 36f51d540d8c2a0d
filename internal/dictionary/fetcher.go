package dictionary

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"wbs/classifier/internal/config"
)

// One limiter per process; repeated dictionary reloads share it so they
// cannot hammer the workbook host.
var fetchLimiter ratelimit.Limiter

// fetchWorkbook downloads a remote workbook to a temp file and returns its
// path.
func fetchWorkbook(cfg config.DictionaryConfig) (string, error) {
	if fetchLimiter == nil {
		rps := cfg.MaxRequestsPerSecond
		if rps < 1 {
			rps = 1
		}
		fetchLimiter = ratelimit.New(rps)
	}
	fetchLimiter.Take()

	client := resty.New().
		SetTimeout(time.Duration(cfg.FetchTimeout) * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second)

	log.Infof("🔄 Fetching dictionary workbook from %s", cfg.Source)

	resp, err := client.R().Get(cfg.Source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", cfg.Source, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("HTTP error fetching %s: %s", cfg.Source, resp.Status())
	}

	tmp, err := os.CreateTemp("", "dictionary-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()

	if err := os.WriteFile(tmp.Name(), []byte(resp.String()), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Infof("✅ Dictionary workbook saved to %s", tmp.Name())
	return tmp.Name(), nil
}
