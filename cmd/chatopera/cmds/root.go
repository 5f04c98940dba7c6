// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package cmds contains the cobra commands of the chatopera tool.
package cmds

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theckman/chatopera"
	"github.com/theckman/chatopera/internal/config"
)

// app is shared by all subcommands. The client is built in the root command's
// PersistentPreRunE, once flags have been parsed.
type app struct {
	out        io.Writer
	configFile string

	client *chatopera.Client
	log    zerolog.Logger
}

// NewRootCommand returns the chatopera command with all subcommands attached.
// Results are written to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	return a.rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chatopera",
		Short:         "Talk to a Chatopera chatbot from the command line",
		Version:       chatopera.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./chatopera.yaml or ~/.config/chatopera/chatopera.yaml)")
	pf.String("client-id", "", "chatbot client ID ($CHATOPERA_CLIENT_ID)")
	pf.String("client-secret", "", "chatbot client secret ($CHATOPERA_CLIENT_SECRET)")
	pf.String("base-url", chatopera.DefaultBaseURL, "service endpoint ($CHATOPERA_BASE_URL)")
	pf.Duration("timeout", config.DefaultTimeout, "HTTP request timeout ($CHATOPERA_TIMEOUT)")
	pf.String("log-level", config.DefaultLogLevel, "log level: trace, debug, info, warn, error, disabled ($CHATOPERA_LOG_LEVEL)")

	cmd.AddCommand(
		a.newDetailCommand(),
		a.newConversationCommand(),
		a.newFAQCommand(),
		a.newUsersCommand(),
		a.newChatsCommand(),
		a.newMuteCommand(),
		a.newUnmuteCommand(),
		a.newIsMuteCommand(),
		a.newProfileCommand(),
		a.newSignCommand(),
	)

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	v := config.New(a.configFile)

	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}

	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	a.log.Debug().
		Str("config_file", v.ConfigFileUsed()).
		Str("base_url", cfg.BaseURL).
		Dur("timeout", cfg.Timeout).
		Msg("configuration loaded")

	a.client = chatopera.New(cfg.ClientID, cfg.ClientSecret,
		chatopera.WithBaseURL(cfg.BaseURL),
		chatopera.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		chatopera.WithLogger(a.log),
	)

	return nil
}

// printJSON writes v to the output as indented JSON.
func (a *app) printJSON(v interface{}) error {
	p, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal result")
	}

	var buf bytes.Buffer

	if err := json.Indent(&buf, p, "", "  "); err != nil {
		return errors.Wrap(err, "failed to format result")
	}

	buf.WriteByte('\n')

	_, err = buf.WriteTo(a.out)

	return err
}
