// Package cli provides the cobra commands for the testdeck application.
package cli

import (
	gocontext "context"
	"os"

	"github.com/example/testdeck/internal/config"
	"github.com/example/testdeck/internal/ctxutil"
)

// globalActor stores the resolved actor for the current CLI invocation.
// Set once at startup by DetectAndStoreActor().
var globalActor string

// globalDefaultProject stores the configured default project, used when a
// command's --project flag is omitted.
var globalDefaultProject string

// DetectAndStoreActor resolves the actor identity from the user config.
// Should be called once at CLI startup in PersistentPreRun.
func DetectAndStoreActor() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfg, err := config.LoadConfig(home)
	if err != nil {
		return
	}
	globalActor = cfg.Actor
	globalDefaultProject = cfg.DefaultProject
}

// NewContext creates a context.Background() with the current actor embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if globalActor != "" {
		return ctxutil.WithActor(ctx, globalActor)
	}
	return ctx
}

// resolveProject returns the explicit project ID if given, falling back
// to the configured default project.
func resolveProject(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return globalDefaultProject
}
