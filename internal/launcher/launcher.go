// Package launcher optionally spawns a debugger front-end process once the
// proxy's client-facing listener is bound, so a user can configure the
// proxy to bring up their IDE or jdb session automatically rather than
// attaching it by hand.
package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Launch starts command with args, inheriting the parent's stdin, stdout,
// and stderr. Unlike an MCP stdio client, the front-end here is a
// human-facing debugger shell, not a process the proxy talks JDWP to
// itself, so its stdio is attached directly rather than piped.
func Launch(ctx context.Context, command string, args []string, env []string) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), env...)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch frontend %q: %w", command, err)
	}
	return cmd, nil
}
