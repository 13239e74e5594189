package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/auth"
	"github.com/justsurfingit/jobs-tracker/internal/database"
	"github.com/justsurfingit/jobs-tracker/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	userEmail    string
	userProvider string
	statsWindow  string
	exportWindow string
	exportFormat string
	exportOut    string
)

// resolveUser finds the id behind an email: the password account when one
// exists, otherwise the derived id of the OAuth identity.
func resolveUser(cmd *cobra.Command) (string, error) {
	email := strings.TrimSpace(userEmail)
	if email == "" {
		return "", fmt.Errorf("--email is required")
	}
	if userProvider == "" || userProvider == "email" {
		user, err := deps.users.FindByEmail(cmd.Context(), strings.ToLower(email))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("no password account for %s (use --provider for OAuth users)", email)
			}
			return "", err
		}
		return user.ID, nil
	}
	return auth.DeriveUserID(userProvider, email), nil
}

func addUserFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&userEmail, "email", "", "Email of the account")
	cmd.Flags().StringVar(&userProvider, "provider", "email", "Identity provider (email, google)")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and the postings table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Migrate(deps.db); err != nil {
			return err
		}
		if err := deps.board.CreateTable(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✅ Migrations complete")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show application statistics for a user",
	Example: `  jobctl stats --email jane@example.com --window 90d`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := resolveUser(cmd)
		if err != nil {
			return err
		}
		window, err := services.ParseWindow(statsWindow)
		if err != nil {
			return err
		}
		summary, err := services.NewStatsService(deps.jobs).Summarize(cmd.Context(), userID, window)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Application Statistics (%s)", summary.Window)))
		fmt.Printf("\n%s\n", labelStyle.Render("Overview"))
		fmt.Printf("  Total Applications: %d\n", summary.Total)
		for _, bar := range summary.Chart {
			fmt.Printf("  %-10s %3d %s\n", bar.Label+":", bar.Count, strings.Repeat("█", int(bar.Height*20)))
		}

		if len(summary.Recent) > 0 {
			fmt.Printf("\n%s\n", labelStyle.Render("Recent Applications"))
			for _, job := range summary.Recent {
				fmt.Printf("  %s  %s at %s (%s)\n", job.ApplicationDate, job.Position, job.Company, job.Status)
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export a user's statistics and jobs to CSV or XLSX",
	Example: `  jobctl export --email jane@example.com --format xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := resolveUser(cmd)
		if err != nil {
			return err
		}
		window, err := services.ParseWindow(exportWindow)
		if err != nil {
			return err
		}
		format, err := services.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}
		summary, err := services.NewStatsService(deps.jobs).Summarize(cmd.Context(), userID, window)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = services.ExportFileName(format, time.Now())
		}
		if err := writeExport(out, format, summary); err != nil {
			return err
		}
		fmt.Printf("📄 Exported %d jobs to %s\n", len(summary.Jobs), out)
		return nil
	},
}

// writeExport creates path and writes the summary into it. A failed Close is
// returned like any other write error.
func writeExport(path string, format services.ExportFormat, summary *services.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := services.Export(f, format, summary); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Ask the AI job agent for a match and apply to it",
	Long: `Reads the user's CV, asks the configured LLM to summarise it and proposes a
listing. Answer yes to record it as an applied job, no to discard it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := resolveUser(cmd)
		if err != nil {
			return err
		}
		llm, err := services.NewLLMService(cmd.Context(), services.LLMOptions{
			Provider: deps.cfg.LLMProvider,
			APIKey:   deps.cfg.LLMAPIKey(),
			Model:    deps.cfg.LLMModel,
		})
		if err != nil {
			return err
		}
		jobs := services.NewJobService(deps.jobs, deps.cfg.PageSize)
		conv := services.NewConversation(services.NewAgentService(deps.blobs, llm, jobs), userID)

		fmt.Println("⏳ Reading your CV...")
		proposed, err := conv.Find(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("%s at %s", proposed.Title, proposed.Company)))
		fmt.Printf("  %s %s\n", labelStyle.Render("Location:"), proposed.Location)
		fmt.Printf("  %s %s\n", labelStyle.Render("Link:"), proposed.Link)
		fmt.Printf("  %s\n", proposed.Description)
		fmt.Printf("\n%s\n%s\n", labelStyle.Render("Why it matches"), proposed.MatchReason)

		reader := bufio.NewReader(cmd.InOrStdin())
		for {
			fmt.Print("\nApply to this job? [yes/no]: ")
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("no answer given: %w", err)
			}
			yes, ok := services.ParseReply(line)
			if !ok {
				fmt.Println("Please answer yes or no.")
				continue
			}

			created, err := conv.Reply(cmd.Context(), yes)
			if err != nil {
				return err
			}
			if created == nil {
				fmt.Println("Discarded.")
			} else {
				fmt.Printf("✅ Applied: job #%d (%s at %s)\n", created.ID, created.Position, created.Company)
			}
			return nil
		}
	},
}

var postingsCmd = &cobra.Command{
	Use:   "postings",
	Short: "Manage the public job posting board",
}

var postingsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the postings table if needed and load the sample postings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deps.board.CreateTable(cmd.Context()); err != nil {
			return err
		}
		written, err := services.NewPostingService(deps.board).Seed(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("🌱 Seeded %d postings\n", written)
		return nil
	},
}

var postingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every posting on the board",
	RunE: func(cmd *cobra.Command, args []string) error {
		postings, err := services.NewPostingService(deps.board).ListPostings(cmd.Context())
		if err != nil {
			return err
		}
		if len(postings) == 0 {
			fmt.Println("No postings yet. Run 'jobctl postings seed'")
			return nil
		}
		fmt.Println(titleStyle.Render("Job Postings"))
		for _, p := range postings {
			fmt.Printf("  [%s] %s %s\n", p.ID, labelStyle.Render(p.Title), p.Location)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{statsCmd, exportCmd, agentCmd} {
		addUserFlags(cmd)
	}
	statsCmd.Flags().StringVar(&statsWindow, "window", "30d", "Time window: 30d, 90d or all")
	exportCmd.Flags().StringVar(&exportWindow, "window", "all", "Time window: 30d, 90d or all")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default JobsTracker_Export_<date>.<ext>)")

	postingsCmd.AddCommand(postingsSeedCmd, postingsListCmd)
	rootCmd.AddCommand(migrateCmd, statsCmd, exportCmd, agentCmd, postingsCmd)
}
