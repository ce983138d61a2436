package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/cache"
	"github.com/claimtree/claimtree/internal/dispatch"
	"github.com/claimtree/claimtree/internal/model"
	"github.com/claimtree/claimtree/internal/repository"
)

// loadConfig builds the effective configuration: defaults, then config
// file / environment via viper. Command flags apply on top in each RunE.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("api.endpoint"); v != "" {
		cfg.API.Endpoint = v
	}
	if v := viper.GetString("api.auth_token"); v != "" {
		cfg.API.AuthToken = v
	}
	if v := os.Getenv("CLAIMTREE_API_TOKEN"); v != "" {
		cfg.API.AuthToken = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetInt("output.max_width"); v > 0 {
		cfg.Output.MaxWidth = v
	}

	return cfg
}

// stack bundles the wired collaborators a command needs
type stack struct {
	client *api.Client
	repo   *repository.Repository
	auth   *dispatch.Authenticator
}

// newStack wires the client, repository and auth gate from configuration
func newStack(cfg *model.Config) *stack {
	client := api.NewClient(cfg.API, cfg.HTTP)

	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			c = cache.NewMemory(cfg.Cache.MemoryTTL, cfg.Cache.MemoryTTL)
		}
	}

	repo := repository.New(client, c, cfg.Cache.MemoryTTL)
	auth := dispatch.NewAuthenticator(client, promptSignIn)

	return &stack{client: client, repo: repo, auth: auth}
}

// promptSignIn is the CLI's stand-in for the login modal
func promptSignIn(ctx context.Context) {
	fmt.Fprintln(os.Stderr, "Authentication required.")
	fmt.Fprintln(os.Stderr, "Set CLAIMTREE_API_TOKEN or api.auth_token in ~/.claimtree/config.yaml and retry.")
}
