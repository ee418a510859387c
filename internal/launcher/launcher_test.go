package launcher

import (
	"context"
	"testing"
)

func TestLaunchStartsAndWaits(t *testing.T) {
	cmd, err := Launch(context.Background(), "true", nil, nil)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if err := cmd.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestLaunchUnknownCommand(t *testing.T) {
	_, err := Launch(context.Background(), "jdwp-proxy-launcher-test-nonexistent-binary", nil, nil)
	if err == nil {
		t.Fatal("Launch with an unknown command returned nil error")
	}
}

func TestLaunchPropagatesEnv(t *testing.T) {
	cmd, err := Launch(context.Background(), "true", nil, []string{"JVMDBG_PROXY_PORT=1234"})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	found := false
	for _, kv := range cmd.Env {
		if kv == "JVMDBG_PROXY_PORT=1234" {
			found = true
		}
	}
	if !found {
		t.Fatal("JVMDBG_PROXY_PORT not present in child environment")
	}
	_ = cmd.Wait()
}
