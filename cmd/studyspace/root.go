package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"studyspace/internal/config"
	"studyspace/internal/core"
	"studyspace/internal/logging"
)

type app struct {
	out        io.Writer
	errOut     io.Writer
	envFile    string
	jsonOutput bool
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "studyspace",
		Short: "Environmental scoring and recommendations for campus study spaces",
		Long: `studyspace rates campus study locations against optimal study conditions
(temperature, humidity, noise, light and air quality), suggests improvements
and records student feedback.

Settings are read from STUDYSPACE_* environment variables, optionally seeded
from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "output JSON instead of human-readable text")

	root.AddCommand(
		a.serveCommand(),
		a.locationsCommand(),
		a.analyzeCommand(),
		a.scoreCommand(),
		a.recommendationsCommand(),
		a.historyCommand(),
		a.feedbackCommand(),
		a.reportCommand(),
	)
	return root
}

// open loads configuration and builds the runtime. CLI logs go to stderr so
// stdout stays parseable.
func (a *app) open(ctx context.Context, opts ...core.ServiceOption) (*core.Runtime, *config.Config, error) {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.InitWriter(a.errOut, cfg.LogLevel, cfg.LogFormat)
	opts = append([]core.ServiceOption{core.WithLogger(logger)}, opts...)
	rt, err := core.OpenRuntime(ctx, cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return rt, cfg, nil
}

// withService runs fn against a freshly opened runtime and closes it after.
func (a *app) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *core.Service) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, _, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, rt.Service)
}

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}
