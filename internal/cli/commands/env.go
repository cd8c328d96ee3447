// Package commands implements the wysiwyg subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/dshills/wysiwyg/internal/composer"
	"github.com/dshills/wysiwyg/internal/config"
	"github.com/dshills/wysiwyg/internal/logging"
)

// Env is what every command needs from the root command.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

type envKey struct{}

// WithEnv stores env in ctx.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFrom returns the Env stored in ctx, or defaults.
func EnvFrom(ctx context.Context) *Env {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok {
			return env
		}
	}
	return &Env{Config: config.Default(), Logger: logging.Nop()}
}

// NewModel creates a composer configured from the environment.
func (e *Env) NewModel(opts ...composer.Option) *composer.Model {
	return composer.New(append(e.Config.ComposerOptions(e.Logger), opts...)...)
}
