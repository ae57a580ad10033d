package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_StorageDriver(t *testing.T) {
	tests := []struct {
		name    string
		storage StorageConfig
		wantErr string
	}{
		{"memory needs no addrs", StorageConfig{Driver: DriverMemory}, ""},
		{"valkey with addrs", StorageConfig{Driver: DriverValkey, Addrs: []string{"localhost:6379"}}, ""},
		{"redis with addrs", StorageConfig{Driver: DriverRedis, Addrs: []string{"localhost:6379"}}, ""},
		{"valkey without addrs", StorageConfig{Driver: DriverValkey}, `storage.addrs is required for driver "valkey"`},
		{"unknown driver", StorageConfig{Driver: "etcd"}, `storage.driver must be one of memory, valkey, redis, got "etcd"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Storage: tt.storage}
			cfg.ApplyDefaults()
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("unexpected error message:\ngot:  %v\nwant: %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Timezone(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}, Query: QueryConfig{Timezone: "Mars/Olympus"}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestValidate_NegativeRate(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}, RateLimit: RateLimitConfig{AssistantRPS: -1}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative rate")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{RateLimit: RateLimitConfig{AssistantRPS: 2}}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http timeouts: %+v", cfg.HTTP)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("expected driver memory, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.KeyPrefix != "safeexplore:" {
		t.Errorf("expected KeyPrefix='safeexplore:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Query.Timezone != "UTC" || cfg.Query.DeadlineLimit != 5 {
		t.Errorf("unexpected query defaults: %+v", cfg.Query)
	}
	if cfg.RateLimit.AssistantBurst != 5 {
		t.Errorf("expected burst 5, got %d", cfg.RateLimit.AssistantBurst)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC location, got %s", cfg.Location())
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Storage: StorageConfig{Driver: DriverValkey, KeyPrefix: "custom:", ReadinessTimeout: 15},
		Query:   QueryConfig{Timezone: "Europe/Berlin", DeadlineLimit: 3},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("http timeouts overridden: %+v", cfg.HTTP)
	}
	if cfg.Storage.Driver != DriverValkey || cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("storage overridden: %+v", cfg.Storage)
	}
	if cfg.Query.Timezone != "Europe/Berlin" || cfg.Query.DeadlineLimit != 3 {
		t.Errorf("query overridden: %+v", cfg.Query)
	}
	if cfg.RateLimit.AssistantBurst != 0 {
		t.Errorf("burst must stay 0 when limiting is off, got %d", cfg.RateLimit.AssistantBurst)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SE_TEST_PORT", "9090")
	cfg, err := Parse([]byte(`
http:
  port: ${SE_TEST_PORT}
query:
  timezone: ${SE_TEST_TZ:-Europe/Berlin}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Errorf("expected Europe/Berlin, got %s", cfg.Location())
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("http: [1, 2"))
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_Local(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8080 || cfg.Storage.Driver != DriverMemory {
		t.Errorf("unexpected local config: port=%d driver=%q", cfg.HTTP.Port, cfg.Storage.Driver)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}
