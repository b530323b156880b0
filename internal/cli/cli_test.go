package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/owaspcebu/ctf-platform/internal/pkg/config"
	"github.com/owaspcebu/ctf-platform/pkg/logger"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate", "promote"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand %q, got %v (err=%v)", name, cmd, err)
		}
	}
}

func TestPromoteCmd_RequiresEmail(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"promote"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil {
		t.Fatal("expected missing --email to fail")
	}
}

func TestNewApp_MemoryStore(t *testing.T) {
	logger.Reset()
	t.Cleanup(logger.Reset)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		LogLevel:  "error",
		Store:     config.StoreMemory,
		Submit:    config.SubmitConfig{MaxAttempts: 10},
	}
	log := initLogger(cfg)
	ctx := context.Background()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close(ctx)

	if a.redis != nil || a.mongo != nil {
		t.Fatal("memory store must not open network clients")
	}
	if len(a.health) != 0 {
		t.Errorf("expected no readiness dependencies, got %d", len(a.health))
	}

	admin, err := a.auth.EnsureAdmin(ctx, "Root", "root@ctf.local", "Str0ng!Pass")
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if !admin.IsAdmin() {
		t.Errorf("expected admin role, got %s", admin.Role)
	}

	again, err := a.auth.EnsureAdmin(ctx, "Root", "root@ctf.local", "Str0ng!Pass")
	if err != nil || again.ID != admin.ID {
		t.Errorf("expected idempotent bootstrap, got %+v err=%v", again, err)
	}
}
