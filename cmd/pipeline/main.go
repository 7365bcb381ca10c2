// Command pipeline runs the content quality pipeline: auditing, validation,
// batch ingestion, vocabulary extraction, and lesson generation.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"preetenglish/internal/audit"
	"preetenglish/internal/batch"
	"preetenglish/internal/compose"
	"preetenglish/internal/config"
	"preetenglish/internal/database"
	"preetenglish/internal/generate"
	"preetenglish/internal/models"
	"preetenglish/internal/report"
	"preetenglish/internal/repository"
	"preetenglish/internal/rubric"
	"preetenglish/internal/stoplist"
	"preetenglish/internal/trace"
	"preetenglish/internal/validate"
	"preetenglish/internal/vocab"
)

var (
	settingsFile string
	debugMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Content quality pipeline for the lesson corpus",
	Long: `Audits, validates, generates, and ingests English lessons for
Hindi-speaking learners. Reports are written as markdown and JSON
artifacts and can be delivered by email.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Path to a YAML settings file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(standardsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env bundles everything a subcommand needs
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *database.DB
}

func newEnv(withDB bool) (*env, error) {
	cfg, err := config.Load(settingsFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	var logger *zap.Logger
	if debugMode || cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	e := &env{cfg: cfg, logger: logger}
	if withDB {
		db, err := database.InitializeForType(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		e.db = db
	}
	return e, nil
}

func (e *env) close() {
	if e.db != nil {
		e.db.Close()
	}
	e.logger.Sync()
}

func (e *env) generator() (generate.Generator, error) {
	if e.cfg.AnthropicAPIKey != "" {
		return generate.NewLLMGenerator(e.cfg.AnthropicAPIKey, e.cfg.AnthropicModel,
			e.cfg.MaxTokens, e.cfg.Temperature)
	}
	e.logger.Info("no API key configured, using template generator")
	return generate.NewTemplateGenerator(), nil
}

func auditCmd() *cobra.Command {
	var profileName string
	var email bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the lesson corpus against a quality profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(true)
			if err != nil {
				return err
			}
			defer e.close()

			if profileName == "" {
				profileName = e.cfg.AuditProfile
			}
			profile, err := audit.ProfileByName(profileName)
			if err != nil {
				return err
			}
			sl, err := stoplist.Default()
			if err != nil {
				return err
			}

			source := repository.NewContentSource(e.db)
			auditor := audit.New(source, rubric.New(), sl, profile, e.logger)
			summary, err := auditor.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("audit run: %w", err)
			}

			// Record alignment for every scored result
			mgr, err := trace.NewManager(trace.NewMemoryRecorder())
			if err != nil {
				return err
			}
			for _, r := range summary.Results {
				if r.Score != nil {
					if _, err := mgr.AlignWithStandards(cmd.Context(), r.ID, string(r.Type), *r.Score); err != nil {
						return err
					}
				}
			}

			writer := report.NewWriter(e.cfg.ReportDir)
			path, err := writer.WriteAudit(summary)
			if err != nil {
				return err
			}
			e.logger.Info("audit report written", zap.String("path", path))

			if email && e.cfg.ReportEmailTo != "" {
				mailer, err := report.NewMailer(cmd.Context(), e.cfg.AWSRegion,
					e.cfg.SESFromEmail, e.cfg.SESFromName, e.logger)
				if err != nil {
					return err
				}
				if err := mailer.SendAuditReport(cmd.Context(), e.cfg.ReportEmailTo, summary); err != nil {
					return err
				}
			}

			fmt.Printf("Audited %d items: %d passed, %d warnings, %d failed (avg score %.1f)\n",
				summary.Total, summary.Passed, summary.Warnings, summary.Failed, summary.AverageScore)
			if summary.Failed > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&profileName, "profile", "", "Audit profile: standard or comprehensive")
	cmd.Flags().BoolVar(&email, "email", false, "Email the report to the configured recipient")
	return cmd
}

func validateCmd() *cobra.Command {
	var noScoring, noStoplist, noCultural, noTechnical bool
	var minScore float64
	var email bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the lesson corpus and report compliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(true)
			if err != nil {
				return err
			}
			defer e.close()

			sl, err := stoplist.Default()
			if err != nil {
				return err
			}

			opts := validate.DefaultOptions()
			opts.QualityScoring = !noScoring
			opts.StoplistCheck = !noStoplist
			opts.CulturalCheck = !noCultural
			opts.TechnicalCheck = !noTechnical
			if minScore > 0 {
				opts.MinAcceptableScore = minScore
			}

			source := repository.NewContentSource(e.db)
			validator := validate.New(source, rubric.New(), sl, e.logger)
			summary, err := validator.Run(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("validation run: %w", err)
			}

			writer := report.NewWriter(e.cfg.ReportDir)
			path, err := writer.WriteValidation(summary)
			if err != nil {
				return err
			}
			e.logger.Info("validation report written", zap.String("path", path))

			if email && e.cfg.ReportEmailTo != "" {
				mailer, err := report.NewMailer(cmd.Context(), e.cfg.AWSRegion,
					e.cfg.SESFromEmail, e.cfg.SESFromName, e.logger)
				if err != nil {
					return err
				}
				if err := mailer.SendValidationReport(cmd.Context(), e.cfg.ReportEmailTo, summary); err != nil {
					return err
				}
			}

			fmt.Printf("Validated %d items: %d valid, %d invalid\n",
				summary.Total, summary.Valid, summary.Invalid)
			fmt.Printf("Compliance: stoplist %.1f%%, content %.1f%%, cultural %.1f%%, technical %.1f%%\n",
				summary.Compliance.StoplistCompliance, summary.Compliance.ContentCompliance,
				summary.Compliance.CulturalCompliance, summary.Compliance.TechnicalCompliance)
			if summary.Invalid > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noScoring, "no-scoring", false, "Skip quality scoring")
	cmd.Flags().BoolVar(&noStoplist, "no-stoplist", false, "Skip stoplist checks")
	cmd.Flags().BoolVar(&noCultural, "no-cultural", false, "Skip cultural checks")
	cmd.Flags().BoolVar(&noTechnical, "no-technical", false, "Skip technical checks")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum acceptable quality score")
	cmd.Flags().BoolVar(&email, "email", false, "Email the report to the configured recipient")
	return cmd
}

// batchFile is the JSON shape accepted by the batch subcommand
type batchFile struct {
	Lessons  []models.Lesson             `json:"lessons"`
	Requests []models.ContentRequestItem `json:"requests"`
}

func batchCmd() *cobra.Command {
	var inputPath string
	var dryRun, stopOnError bool
	var batchSize, resumeFrom int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Ingest lessons and generation requests from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(true)
			if err != nil {
				return err
			}
			defer e.close()

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			var input batchFile
			if err := json.Unmarshal(data, &input); err != nil {
				return fmt.Errorf("parsing input: %w", err)
			}

			items := make([]models.ProcessItem, 0, len(input.Lessons)+len(input.Requests))
			for _, l := range input.Lessons {
				items = append(items, models.LessonItem{Lesson: l})
			}
			for _, r := range input.Requests {
				items = append(items, r)
			}

			gen, err := e.generator()
			if err != nil {
				return err
			}
			if batchSize <= 0 {
				batchSize = e.cfg.BatchSize
			}

			processor := batch.NewProcessor(e.db, gen, e.logger)
			result, err := processor.ProcessWithProgress(cmd.Context(), items, batch.Options{
				BatchSize:   batchSize,
				DryRun:      dryRun,
				StopOnError: stopOnError,
				ResumeFrom:  resumeFrom,
			}, func(p models.BatchProgress) {
				fmt.Printf("  batch %d/%d (%.0f%%)\n", p.CurrentBatch, p.TotalBatches, p.Percentage)
			})
			if err != nil {
				return fmt.Errorf("batch run %s: %w", result.RunID, err)
			}

			fmt.Printf("Run %s: %d processed, %d errors, %d skipped of %d (dry run: %v)\n",
				result.RunID, result.Processed, result.Errors, result.Skipped, result.Total, result.DryRun)
			for _, detail := range result.ErrorDetails {
				fmt.Printf("  item %d (%s): %s\n", detail.Index, detail.Kind, detail.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "JSON file of lessons and generation requests (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate items without writing to the database")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Abort and roll back the batch on the first failure")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Items per transaction (default from settings)")
	cmd.Flags().IntVar(&resumeFrom, "resume-from", 0, "Skip the first N items")
	cmd.MarkFlagRequired("input")
	return cmd
}

func extractCmd() *cobra.Command {
	var source, category, difficulty, strategy string
	var minFrequency, limit int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract candidate vocabulary from a file or URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(false)
			if err != nil {
				return err
			}
			defer e.close()

			text, err := vocab.LoadSource(source)
			if err != nil {
				return err
			}
			sl, err := stoplist.Default()
			if err != nil {
				return err
			}

			var enricher vocab.Enricher
			if e.cfg.AnthropicAPIKey != "" {
				enricher, err = vocab.NewLLMEnricher(e.cfg.AnthropicAPIKey, e.cfg.AnthropicModel)
				if err != nil {
					return err
				}
			}

			processor := vocab.NewProcessor(sl, enricher, e.logger)
			result, err := processor.Process(cmd.Context(), text, vocab.Options{
				MinFrequency: minFrequency,
				Category:     category,
				Difficulty:   difficulty,
				Strategy:     vocab.DedupeStrategy(strategy),
				Limit:        limit,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Extracted %d, kept %d after stoplist, %d after dedupe\n",
				len(result.Extracted), len(result.Filtered), len(result.Deduplicated))
			out, err := json.MarshalIndent(result.Deduplicated, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Source file path or URL (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category scope for the stoplist")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty scope for the stoplist")
	cmd.Flags().StringVar(&strategy, "dedupe", "exact", "Dedupe strategy: exact, semantic, or frequency")
	cmd.Flags().IntVar(&minFrequency, "min-frequency", 1, "Drop words seen fewer times than this")
	cmd.Flags().IntVar(&limit, "limit", 0, "Cap the final word list (0 = unlimited)")
	cmd.MarkFlagRequired("source")
	return cmd
}

func generateCmd() *cobra.Command {
	var topic, category, difficulty, format string
	var save bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one lesson and print it as markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(save)
			if err != nil {
				return err
			}
			defer e.close()

			gen, err := e.generator()
			if err != nil {
				return err
			}
			content, err := gen.Generate(cmd.Context(), generate.Request{
				Topic:      topic,
				Category:   category,
				Difficulty: difficulty,
			})
			if err != nil {
				return err
			}

			f := compose.Format(format)
			if !compose.ValidFormat(f) {
				return fmt.Errorf("unknown format %q", format)
			}
			fmt.Println(compose.Markdown(content, f))

			if save {
				processor := batch.NewProcessor(e.db, gen, e.logger)
				result, err := processor.ProcessBatch(cmd.Context(),
					[]models.ProcessItem{models.ContentRequestItem{Topic: topic, Category: category, Difficulty: difficulty}},
					batch.Options{})
				if err != nil {
					return err
				}
				if result.Errors > 0 {
					return fmt.Errorf("saving generated lesson: %s", result.ErrorDetails[0].Error)
				}
				e.logger.Info("generated lesson saved", zap.String("topic", topic))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "Lesson topic (required)")
	cmd.Flags().StringVar(&category, "category", "daily_life", "Lesson category")
	cmd.Flags().StringVar(&difficulty, "difficulty", models.DifficultyBeginner, "Lesson difficulty")
	cmd.Flags().StringVar(&format, "format", "full", "Markdown format: full, summary, or study-sheet")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the generated lesson to the database")
	cmd.MarkFlagRequired("topic")
	return cmd
}

func standardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List the educational standards content is aligned against",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := trace.NewManager(nil)
			if err != nil {
				return err
			}
			for _, s := range mgr.Standards() {
				fmt.Printf("%-25s %-4.1f %s\n", s.Code, s.TargetScore, s.Name)
			}
			return nil
		},
	}
}
