package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mkuzmin/toolpick/internal/ai"
	"github.com/mkuzmin/toolpick/internal/ai/gemini"
	"github.com/mkuzmin/toolpick/internal/catalog"
	"github.com/mkuzmin/toolpick/internal/classifier"
	"github.com/mkuzmin/toolpick/internal/logger"
	"github.com/mkuzmin/toolpick/internal/recommender"
	"github.com/mkuzmin/toolpick/internal/report"
	"github.com/mkuzmin/toolpick/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptFullReport   = "Show full report"
	PromptExportReport = "Export report to Markdown"
	PromptToolDetails  = "Show tool details"
	PromptQuit         = "Quit"
	PromptBack         = "back"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptFullReport, PromptExportReport, PromptToolDetails, PromptQuit},
}

var budgetOptions = []struct {
	key   string
	label string
}{
	{recommender.BudgetFree, report.BudgetNames[recommender.BudgetFree]},
	{recommender.BudgetLow, report.BudgetNames[recommender.BudgetLow]},
	{recommender.BudgetMedium, report.BudgetNames[recommender.BudgetMedium]},
	{recommender.BudgetHigh, report.BudgetNames[recommender.BudgetHigh]},
}

var techOptions = []struct {
	key   string
	label string
}{
	{catalog.LevelBeginner, report.TechNames[catalog.LevelBeginner]},
	{catalog.LevelIntermediate, report.TechNames[catalog.LevelIntermediate]},
	{catalog.LevelAdvanced, report.TechNames[catalog.LevelAdvanced]},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the toolpick recommendation wizard",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("task", "t", "", "task description. Prompted for when unset.")
	runCmd.Flags().StringP("budget", "b", "", "budget preference: free, low, medium or high")
	runCmd.Flags().StringP("level", "l", "", "technical level: beginner, intermediate or advanced")
	runCmd.Flags().IntP("top", "n", recommender.DefaultTopN, "number of tools to recommend")
	runCmd.Flags().BoolP("auto", "y", false, "non-interactive mode. Requires --task and prints the full report.")
	runCmd.Flags().StringP("export", "o", "", "write the Markdown report to this path. Default is a temp file.")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting toolpick", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	store, err := catalog.Load(viper.GetString("catalog"))
	if err != nil {
		logger.Fatal("loading the tool catalog", zap.Error(err))
	}

	logger.Info("loaded the tool catalog",
		zap.String("path", viper.GetString("catalog")),
		zap.Int("tools", store.Len()),
	)

	auto := cmd.Flag("auto").Value.String() == "true"

	task, err := resolveTask(cmd, auto)
	if err != nil {
		logger.Fatal("reading the task description", zap.Error(err))
	}

	budget, err := resolveChoice(cmd, "budget", "Budget preference", budgetOptions, auto, recommender.BudgetMedium)
	if err != nil {
		logger.Fatal("reading the budget preference", zap.Error(err))
	}

	techLevel, err := resolveChoice(cmd, "level", "Technical level", techOptions, auto, catalog.LevelBeginner)
	if err != nil {
		logger.Fatal("reading the technical level", zap.Error(err))
	}

	categories := classifier.Classify(task)
	logger.Info("classified the task", zap.Strings("categories", categories))

	topN, _ := cmd.Flags().GetInt("top")
	if !cmd.Flags().Changed("top") && config.TopN > 0 {
		topN = config.TopN
	}

	rec := recommender.New(store, logger)
	results := rec.Recommend(&recommender.Request{
		Categories: categories,
		Budget:     budget,
		TechLevel:  techLevel,
		TopN:       topN,
	})

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no tools matched the request"))
		return
	}

	logger.Info("recommendation ready", zap.Int("count", len(results)))

	params := report.Params{
		Task:       task,
		Categories: categories,
		Budget:     budget,
		TechLevel:  techLevel,
		Summary:    summarize(ctx, config, logger, task, results),
	}

	fmt.Println()
	fmt.Println(report.ComparisonTable(results))

	if auto {
		fmt.Println(report.Markdown(params, results))
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(cmd, action, logger, params, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(cmd *cobra.Command, action string, logger *zap.Logger, params report.Params, results []*recommender.Candidate) error {
	switch action {
	case PromptFullReport:
		fmt.Println(report.Markdown(params, results))
		return nil
	case PromptExportReport:
		filename, err := exportReport(cmd.Flag("export").Value.String(), params, results)
		if err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		logger.Info("exported the report", zap.String("filename", filename))
		return nil
	case PromptToolDetails:
		return toolDetails(results)
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// resolveTask takes the task description from the flag or prompts for it.
func resolveTask(cmd *cobra.Command, auto bool) (string, error) {
	task := strings.TrimSpace(cmd.Flag("task").Value.String())
	if task != "" {
		return task, nil
	}

	if auto {
		return "", errors.New("--task is required with --auto")
	}

	taskPrompt := promptui.Prompt{
		Label: "Describe the task you need a tool for",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("task description must not be empty")
			}
			return nil
		},
	}

	task, err := taskPrompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(task), nil
}

// resolveChoice takes a vocabulary value from the flag or prompts with a
// select. In auto mode an unset flag falls back to the provided default.
func resolveChoice(cmd *cobra.Command, flag, label string, options []struct{ key, label string }, auto bool, fallback string) (string, error) {
	choice := strings.ToLower(strings.TrimSpace(cmd.Flag(flag).Value.String()))
	if choice != "" {
		for _, option := range options {
			if option.key == choice {
				return choice, nil
			}
		}
		return "", fmt.Errorf("invalid %s: %s", flag, choice)
	}

	if auto {
		return fallback, nil
	}

	labels := make([]string, 0, len(options))
	for _, option := range options {
		labels = append(labels, option.label)
	}

	selectPrompt := promptui.Select{
		Label: label,
		Items: labels,
	}

	idx, _, err := selectPrompt.Run()
	if err != nil {
		return "", err
	}

	return options[idx].key, nil
}

func toolDetails(results []*recommender.Candidate) error {
	for {
		items := make([]string, 0, len(results)+1)
		for _, result := range results {
			items = append(items, fmt.Sprintf("%s (score %.1f)", result.Tool.Name, result.Score))
		}

		detailsPrompt := promptui.Select{
			Label: "Choose a tool and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := detailsPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		fmt.Println()
		fmt.Println(report.Details(results[idx]))
	}
}

func exportReport(path string, params report.Params, results []*recommender.Candidate) (string, error) {
	content := report.Markdown(params, results)

	if path == "" {
		file, err := os.CreateTemp("", "toolpick_report_*.md")
		if err != nil {
			return "", err
		}
		defer file.Close()

		if _, err := file.WriteString(content); err != nil {
			return "", err
		}
		return file.Name(), nil
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// summarize asks the configured AI provider for a report introduction. Any
// failure downgrades to a report without a summary.
func summarize(ctx context.Context, config *Config, log *zap.Logger, task string, results []*recommender.Candidate) string {
	summarizer, err := newSummarizer(ctx, config.AI, log)
	if err != nil {
		log.Warn("skipping AI summary", zap.Error(err))
		return ""
	}
	if summarizer == nil {
		return ""
	}

	summary, err := summarizer.Summarize(ctx, task, results)
	if err != nil {
		log.Warn("skipping AI summary", zap.Error(err))
		return ""
	}

	return summary
}

func newSummarizer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Summarizer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai summary is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithFields(log, logger.StringFields(
		logger.StringField{Key: logger.FieldProvider, Value: "gemini"},
		logger.StringField{Key: logger.FieldModel, Value: cfg.Gemini.Model},
	)...)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewSummarizer(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}
