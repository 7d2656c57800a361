package config

import (
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Providers: ProvidersConfig{
			APIKey: "test-key",
		},
		RAG: RAGConfig{ChunkSize: 400, ChunkOverlap: 60},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Providers.APIKey = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestValidate_OverlapNotSmallerThanChunkSize(t *testing.T) {
	cfg := validConfig()
	cfg.RAG.ChunkSize = 60
	cfg.RAG.ChunkOverlap = 60

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for overlap >= chunk size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.RAG.DefaultTopK != 6 {
		t.Errorf("default top_k = %d, want 6", cfg.RAG.DefaultTopK)
	}
	if cfg.RAG.MaxContextBlocks != 4 {
		t.Errorf("default max_context_blocks = %d, want 4", cfg.RAG.MaxContextBlocks)
	}
	if cfg.RAG.ChunkSize != 400 || cfg.RAG.ChunkOverlap != 60 {
		t.Errorf("chunking defaults = %d/%d, want 400/60", cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	}
	if cfg.Providers.Dimensions != 1024 {
		t.Errorf("default dimensions = %d, want 1024", cfg.Providers.Dimensions)
	}
	if got := cfg.RAG.UntrustedPrefixes; len(got) != 1 || got[0] != "/tmp/" {
		t.Errorf("default untrusted prefixes = %v, want [/tmp/]", got)
	}
	if cfg.Database.KeyPrefix != "helixrag:" {
		t.Errorf("default key prefix = %q, want helixrag:", cfg.Database.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("HELIXRAG_TEST_KEY", "sk-secret")

	in := []byte("api_key: ${HELIXRAG_TEST_KEY}\nother: ${HELIXRAG_UNSET_VAR}")
	out := string(expandEnvVars(in))

	want := "api_key: sk-secret\nother: "
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
