package cli

import (
	"fmt"

	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalOptions struct {
	ServerURL string
	Token     string
}

// DefaultGlobalOptions seeds the flags from the environment configuration.
// A missing AUDITLENS_API_URL stays empty here and fails Validate, which is
// the configuration-error path: fatal before any request.
func DefaultGlobalOptions() GlobalOptions {
	opts := GlobalOptions{}
	if cfg, err := config.New(); err == nil {
		opts.ServerURL = cfg.Service.APIURL
		opts.Token = cfg.Service.Token
	}
	return opts
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerURL, "server-url", "u", o.ServerURL, "Address of the analytics service (defaults to AUDITLENS_API_URL)")
	fs.StringVar(&o.Token, "token", o.Token, "Bearer token (defaults to AUDITLENS_TOKEN)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.ServerURL == "" {
		return fmt.Errorf("no analytics service address: set AUDITLENS_API_URL or pass --server-url")
	}
	return nil
}

func (o *GlobalOptions) Client() *client.Client {
	opts := []client.Option{}
	if o.Token != "" {
		opts = append(opts, client.WithToken(o.Token))
	}
	return client.New(o.ServerURL, opts...)
}
