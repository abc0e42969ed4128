package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moltbook/decomposer/internal/config"
	"github.com/moltbook/decomposer/internal/engine"
	"github.com/moltbook/decomposer/internal/errors"
	"github.com/moltbook/decomposer/internal/logging"
	"github.com/moltbook/decomposer/internal/provider"
	"github.com/moltbook/decomposer/internal/render"
	"github.com/moltbook/decomposer/internal/util"
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose [task]",
	Short: "Decompose a task into a structured plan",
	Long: `Decompose breaks a free-text task into subtasks with domains, effort
estimates, and dependencies.

With provider credentials configured (anthropic.api_key / openai.api_key,
or the ANTHROPIC_API_KEY / OPENAI_API_KEY environment variables), assisted
decomposition is tried first; the rule-based fallback handles everything
else. The plan's "method" field records which tier produced it.`,
	Example: `  decomposer decompose "Build a trading bot that fetches prices and places orders"
  decomposer decompose --format markdown "Research Go logging libraries and write a summary"
  decomposer decompose --mode heuristic --format json "Deploy the service"`,
	Args: cobra.ArbitraryArgs,
	RunE: runDecompose,
}

func init() {
	decomposeCmd.Flags().String("mode", "", "decomposition mode: assisted or heuristic")
	decomposeCmd.Flags().StringP("format", "f", "", "output format: json, yaml, markdown, or pretty")
	decomposeCmd.Flags().Int("timeout", 0, "per-provider timeout in seconds")

	rootCmd.AddCommand(decomposeCmd)
}

func runDecompose(cmd *cobra.Command, args []string) error {
	task := strings.TrimSpace(strings.Join(args, " "))
	if task == "" {
		_ = cmd.Usage()
		return errors.ErrEmptyTask
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level)

	providers := []provider.Provider{
		provider.NewAnthropicProvider(cfg.Anthropic, cfg.Engine.Timeout()),
		provider.NewOpenAIProvider(cfg.OpenAI, cfg.Engine.Timeout()),
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.Engine.Timeout()+time.Second)
	defer cancel()

	result := engine.New(providers, logger).Decompose(ctx, task, engine.Mode(cfg.Engine.Mode))

	logger.WithPlan(result.Plan.ID).Info("plan ready",
		"method", result.Plan.Method.String(),
		"subtasks", result.Plan.SubtaskCount(),
		"task", util.TruncateString(task, 64))

	// Degradation is reported, never hidden: each failed tier goes to
	// stderr before the plan itself.
	for _, failure := range result.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "tier %s failed: %v\n", failure.Provider, failure.Err)
	}
	if len(result.Failures) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "plan produced by %q\n", result.Plan.Method)
	}

	out, err := render.Render(result.Plan, format)
	if err != nil {
		return errors.Wrapf(err, "render %s", format)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// applyFlags overlays explicitly set command flags on the loaded config.
// Flags win over the config file and environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("mode") {
		mode, _ := cmd.Flags().GetString("mode")
		if !slices.Contains(config.ValidModes(), mode) {
			return fmt.Errorf("unknown mode %q (valid: %s)", mode, strings.Join(config.ValidModes(), ", "))
		}
		cfg.Engine.Mode = mode
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetInt("timeout")
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %d", timeout)
		}
		cfg.Engine.TimeoutSeconds = timeout
	}
	return nil
}
