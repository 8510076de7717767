package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "trackferry.db" {
			t.Errorf("expected database path trackferry.db, got %s", config.Database.Path)
		}

		if config.Transfer.CallsPerSecond != 2.0 {
			t.Errorf("expected calls_per_second 2.0, got %f", config.Transfer.CallsPerSecond)
		}

		if config.Transfer.MaxRetries != 3 {
			t.Errorf("expected max_retries 3, got %d", config.Transfer.MaxRetries)
		}

		if config.Quota.SearchCost != 100 {
			t.Errorf("expected search_cost 100, got %d", config.Quota.SearchCost)
		}

		if config.Quota.DailyBudget != 10000 {
			t.Errorf("expected daily_budget 10000, got %d", config.Quota.DailyBudget)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[transfer]
calls_per_second = 0.5
max_retries = 5
batch_size = 100
sim_threshold = 0.9
overlap_threshold = 0.8

[quota]
daily_budget = 5000
search_cost = 100
insert_cost = 50
create_cost = 50

[credentials.youtube]
api_key = "test_api_key"
client_id = "test_client_id"
client_secret = "test_secret"
token_path = "/path/to/token.json"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Transfer.MaxRetries != 5 {
			t.Errorf("expected max_retries 5, got %d", config.Transfer.MaxRetries)
		}

		if config.Credentials.YouTube.APIKey != "test_api_key" {
			t.Errorf("expected youtube api_key test_api_key, got %s", config.Credentials.YouTube.APIKey)
		}
	})
}
