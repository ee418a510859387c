package config

import (
	"strings"
	"testing"
)

func minimalValidConfig() *ProxyConfig {
	cfg := &ProxyConfig{}
	cfg.SetDefaults()
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_InvalidListenAddr(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.Listen.Addr = "not a host port"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Listen.Addr") {
		t.Errorf("error = %q, want to contain 'Listen.Addr'", err.Error())
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.LogLevel = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "LogLevel") {
		t.Errorf("error = %q, want to contain 'LogLevel'", err.Error())
	}
}

func TestValidate_FrontendArgsWithoutCommand(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.Frontend.Args = []string{"--port", "1234"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "args set without command") {
		t.Errorf("error = %q, want to contain 'args set without command'", err.Error())
	}
}

func TestValidate_FrontendCommandWithArgs(t *testing.T) {
	t.Parallel()

	cfg := minimalValidConfig()
	cfg.Frontend.Command = "/usr/bin/jdb"
	cfg.Frontend.Args = []string{"-attach", "localhost:1234"}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with command and args unexpected error: %v", err)
	}
}

func TestValidate_ZeroConfig(t *testing.T) {
	t.Parallel()

	cfg := &ProxyConfig{}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() zero-config unexpected error: %v", err)
	}
}
