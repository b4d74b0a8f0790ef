package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/minutemind/pkg/momclient"
)

// settings are read from MOMCTL_* variables; flags override them.
type settings struct {
	Server   string        `envconfig:"SERVER" default:"http://localhost:8080"`
	Token    string        `envconfig:"TOKEN"`
	Username string        `envconfig:"USERNAME"`
	Password string        `envconfig:"PASSWORD"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"60s"`
}

type commandContext struct {
	settings settings
	loaded   bool
	err      error

	serverFlag string
	tokenFlag  string
}

func (c *commandContext) ensureSettings() (settings, error) {
	if c.loaded {
		return c.settings, c.err
	}
	c.loaded = true
	if err := envconfig.Process("MOMCTL", &c.settings); err != nil {
		c.err = fmt.Errorf("load MOMCTL settings: %w", err)
		return c.settings, c.err
	}
	if c.serverFlag != "" {
		c.settings.Server = c.serverFlag
	}
	if c.tokenFlag != "" {
		c.settings.Token = c.tokenFlag
	}
	return c.settings, nil
}

// client builds an API client, logging in first when only credentials are set.
func (c *commandContext) client(ctx context.Context) (*momclient.Client, error) {
	s, err := c.ensureSettings()
	if err != nil {
		return nil, err
	}

	client := momclient.New(s.Server,
		momclient.WithHTTPClient(&http.Client{Timeout: s.Timeout}),
		momclient.WithToken(s.Token),
	)
	if s.Token == "" && s.Username != "" {
		if _, err := client.Login(ctx, s.Username, s.Password); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
	}
	return client, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "momctl",
		Short:         "Extract and submit minutes-of-meeting records",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.serverFlag, "server", "", "API base URL (MOMCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&ctx.tokenFlag, "token", "", "Bearer token (MOMCTL_TOKEN)")

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newSubmitCommand(ctx))

	return rootCmd
}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read analysis: %w", err)
	}
	return string(b), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
