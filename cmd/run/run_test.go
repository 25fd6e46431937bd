package run

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ecb-rates/cmd/root"
	"fjacquet/ecb-rates/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usdBody = "KEY,FREQ,CURRENCY,CURRENCY_DENOM,TIME_PERIOD,OBS_VALUE\n" +
	"EXR.D.USD.EUR.SP00.A,D,USD,EUR,2024-01-02,1.0956\n"

func TestRunCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(usdBody))
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.Data.Directory = t.TempDir()
	cfg.Currencies = []string{"USD"}
	cfg.Fetch.BaseURL = server.URL
	cfg.Fetch.TimeoutSeconds = 5
	cfg.Fetch.MaxRetries = 0
	cfg.Fetch.RetryDelaySeconds = 0
	cfg.Fetch.FreshnessHours = 0
	root.Cfg = cfg

	Cmd.SetContext(context.Background())
	require.NoError(t, Cmd.RunE(Cmd, nil))

	assert.FileExists(t, filepath.Join(cfg.Data.Directory, "pairs.csv"))
	assert.FileExists(t, filepath.Join(cfg.Data.Directory, "missing_data.csv"))
	assert.FileExists(t, filepath.Join(cfg.Data.Directory, "run_summary.yaml"))
}

func TestRunCommandSetupError(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	// Data directory creation will fail below a path that is a file.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0600))
	cfg.Data.Directory = filepath.Join(blocker, "data")
	cfg.Currencies = []string{"USD"}
	cfg.Fetch.BaseURL = "http://127.0.0.1:0"
	cfg.Fetch.TimeoutSeconds = 1
	root.Cfg = cfg

	Cmd.SetContext(context.Background())
	assert.Error(t, Cmd.RunE(Cmd, nil))
}
