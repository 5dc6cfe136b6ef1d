package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/polychat/polychat/api"
	"github.com/polychat/polychat/chat"
	"github.com/polychat/polychat/log"
)

var rootCmd = &cobra.Command{
	Use:   "polychat [OPTIONS] MESSAGE...",
	Short: "Multi-provider chat completion client",
	Long: `Send a chat message to an LLM provider (openai, groq, anthropic)
with bounded conversation history and retry on transient failures.`,
	Args:                  cobra.ArbitraryArgs,
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
	RunE:                  run,
}

func init() {
	flags := rootCmd.Flags()

	flags.String("provider", "", "LLM provider: openai, groq, anthropic (default inferred from model)")
	flags.String("model", "gpt-4o-mini", "LLM model")
	flags.String("api-key", "", "LLM API key")
	flags.String("base-url", "", "LLM base URL")

	flags.String("system-prompt", api.DefaultSystemPrompt, "System prompt")
	flags.Int("max-history", api.DefaultMaxHistory, "Max conversation messages kept")
	flags.Int("max-retries", api.DefaultMaxRetries, "Max retries for failed API calls")
	flags.Duration("base-delay", api.DefaultBaseDelay, "Base delay for retry backoff")

	flags.Float64("temperature", 0, "Sampling temperature")
	flags.Int64("max-tokens", api.DefaultMaxTokens, "Max completion tokens")

	flags.Bool("extract-code", false, "Print only the first fenced code block of the reply")

	flags.Bool("verbose", false, "Show debugging information")
	flags.Bool("trace", false, "Dump API requests and responses")
	flags.Bool("quiet", false, "Operate quietly")
	flags.String("log", "", "Tee log output to file")

	flags.Bool("dry-run", false, "Enable dry run mode. No API call will be made")
	flags.String("dry-run-content", "", "Raw provider response returned for dry run")

	// bind the flags to viper using underscores
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		viper.BindPFlag(key, f)
	})

	viper.SetEnvPrefix("POLYCHAT")
	viper.AutomaticEnv()
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.Default()
	switch {
	case viper.GetBool("quiet"):
		logger.SetLogLevel(log.Quiet)
	case viper.GetBool("trace"):
		logger.SetLogLevel(log.Tracing)
	case viper.GetBool("verbose"):
		logger.SetLogLevel(log.Verbose)
	}
	if name := viper.GetString("log"); name != "" {
		w, err := log.NewFileWriter(name)
		if err != nil {
			return err
		}
		defer w.Close()
		logger.SetLogOutput(w)
	}

	cfg := api.DefaultConfig()
	cfg.Provider = viper.GetString("provider")
	cfg.Model = viper.GetString("model")
	cfg.BaseUrl = viper.GetString("base_url")
	cfg.SystemPrompt = viper.GetString("system_prompt")
	cfg.MaxHistory = viper.GetInt("max_history")
	cfg.MaxRetries = viper.GetInt("max_retries")
	cfg.BaseDelay = viper.GetDuration("base_delay")
	cfg.Temperature = viper.GetFloat64("temperature")
	cfg.MaxTokens = viper.GetInt64("max_tokens")
	cfg.DryRun = viper.GetBool("dry_run")
	cfg.DryRunContent = viper.GetString("dry_run_content")
	cfg.ApiKey = viper.GetString("api_key")
	if cfg.ApiKey == "" {
		cfg.ApiKey = envApiKey(cfg.Provider, cfg.Model)
	}

	message := strings.Join(args, " ")
	if message == "" {
		// piped or redirected stdin
		if in, err := os.Stdin.Stat(); err == nil {
			if in.Mode()&os.ModeNamedPipe != 0 || in.Size() > 0 {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				message = strings.TrimSpace(string(data))
			}
		}
	}
	if message == "" {
		return cmd.Help()
	}

	c, err := chat.New(cfg, logger)
	if err != nil {
		return err
	}
	logger.Debugf("session: %s\n", c.SessionID())

	reply, err := c.GetResponse(cmd.Context(), message, cfg.Model)
	if err != nil {
		return err
	}

	if viper.GetBool("extract_code") {
		lines, err := c.ExtractCode(reply)
		if err != nil {
			return err
		}
		logger.Printf("%s\n", strings.Join(lines, "\n"))
		return nil
	}

	logger.Printf("%s\n", reply)
	return nil
}

// envApiKey falls back to the conventional per-provider key variables.
func envApiKey(provider, model string) string {
	if provider == "" {
		if strings.HasPrefix(model, "claude-") {
			provider = "anthropic"
		} else {
			provider = "openai"
		}
	}
	switch provider {
	case "groq":
		return os.Getenv("GROQ_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
