package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/kota-cli/kota/src/aisdk"
	"github.com/kota-cli/kota/src/config"
	"github.com/kota-cli/kota/src/executor"
	"github.com/kota-cli/kota/src/history"
	"github.com/kota-cli/kota/src/kotagent"
	"github.com/kota-cli/kota/src/kotagent/tools"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/orclient"
	"github.com/kota-cli/kota/src/sandbox"
	"github.com/kota-cli/kota/src/shell"
	"github.com/kota-cli/kota/src/todo"
)

func buildConfig(cli *CLI) (config.Config, error) {
	cfg := config.Default()
	cfg.Model = cli.Model
	cfg.APIKey = cli.APIKey
	cfg.BaseURL = cli.BaseURL
	cfg.Brave = cli.Brave
	cfg.GuidePath = cli.Guide
	cfg.MaxHistory = cli.MaxHistory
	cfg.PrefixKeep = cli.PrefixKeep
	cfg.LogLevel = cli.LogLevel

	timeout, err := time.ParseDuration(cli.Timeout)
	if err != nil {
		return cfg, fmt.Errorf("invalid --timeout: %w", err)
	}
	cfg.CommandTimeout = timeout

	wd, err := os.Getwd()
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	cfg.WorkingDir = wd

	if err := config.NewValidator().Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cli *CLI) error {
	cfg, err := buildConfig(cli)
	if err != nil {
		return err
	}

	oneShot := cli.Prompt != ""
	logger := createSessionLogger(cfg.LogLevel)
	if oneShot {
		logger = createCLILogger(cfg.LogLevel)
	}
	toolsutil.SetLogger(logger)

	fs := afero.NewOsFs()
	validator, err := sandbox.New(cfg.WorkingDir)
	if err != nil {
		return fmt.Errorf("failed to initialize path validation: %w", err)
	}

	stdin := bufio.NewReader(os.Stdin)
	var confirmer toolsutil.Confirmer = executor.NewTerminalConfirmer(stdin, os.Stdout)
	if cfg.Brave || oneShot {
		confirmer = toolsutil.AutoApprove{}
	}

	toolbox, err := tools.NewToolbox(tools.Deps{
		FS:        fs,
		Validator: validator,
		Confirmer: confirmer,
		Runner:    shell.NewRunner(cfg.WorkingDir, cfg.CommandTimeout, logger),
		Todos:     todo.NewStore(),
	})
	if err != nil {
		return err
	}

	systemPrompt, err := kotagent.BuildSystemPrompt(fs, cfg.WorkingDir, cfg.GuidePath)
	if err != nil {
		return err
	}

	client := orclient.NewClient(orclient.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Logger:  logger,
	})

	console := executor.NewConsole(os.Stdout)
	loop := &executor.Loop{
		Client:       client,
		Toolbox:      toolbox,
		Conversation: aisdk.NewConversation(systemPrompt),
		Policy: history.Policy{
			MaxMessages: cfg.MaxHistory,
			PrefixKeep:  cfg.PrefixKeep,
		},
		Model:    cfg.Model,
		CacheKey: uuid.NewString(),
		Logger:   logger,
		Events:   console,
	}

	ctx := context.Background()
	if oneShot {
		return loop.ProcessPrompt(ctx, cli.Prompt)
	}
	return executor.NewREPL(loop, console, stdin, os.Stdout).Run(ctx)
}
