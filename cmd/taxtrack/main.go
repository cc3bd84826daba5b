package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/travelrn/taxtrack/internal/calculation"
	"github.com/travelrn/taxtrack/internal/compare"
	"github.com/travelrn/taxtrack/internal/compliance"
	"github.com/travelrn/taxtrack/internal/config"
	"github.com/travelrn/taxtrack/internal/domain"
	"github.com/travelrn/taxtrack/internal/gsa"
	"github.com/travelrn/taxtrack/internal/output"
	"github.com/travelrn/taxtrack/internal/schedule"
	"github.com/travelrn/taxtrack/internal/store"
	"github.com/travelrn/taxtrack/internal/store/sqlite"
	"github.com/travelrn/taxtrack/internal/tui"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxtrack %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

var rootCmd = &cobra.Command{
	Use:   "taxtrack",
	Short: "Tax and compliance engine for travel nurses",
	Long:  "Estimates annual tax obligation, tracks quarterly estimated payments, and monitors tax-home compliance for travel nursing contracts.",
}

// loadRegulatory resolves the regulatory config: an explicit flag wins,
// then a regulatory.yaml next to the working directory, then built-in
// defaults.
func loadRegulatory(cmd *cobra.Command) *domain.RegulatoryConfig {
	parser := config.NewInputParser()
	regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")

	if regulatoryFile == "" && fileExists("regulatory.yaml") {
		regulatoryFile = "regulatory.yaml"
	}
	if regulatoryFile == "" {
		return config.DefaultRegulatory()
	}

	regulatory, err := parser.LoadRegulatory(regulatoryFile)
	if err != nil {
		fmt.Printf("Failed to load regulatory config %s: %v\n", regulatoryFile, err)
		fmt.Printf("Falling back to built-in defaults...\n")
		return config.DefaultRegulatory()
	}
	return regulatory
}

func loadProfile(filename string) *domain.Profile {
	parser := config.NewInputParser()
	profile, err := parser.LoadProfile(filename)
	if err != nil {
		log.Fatal(err)
	}
	return profile
}

func openStore(cmd *cobra.Command) *sqlite.Store {
	dbPath, _ := cmd.Flags().GetString("db")
	st, err := sqlite.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", dbPath, err)
	}
	return st
}

// calculateObligation runs the progressive calculation, or the flat
// fallback when asked for.
func calculateObligation(cmd *cobra.Command, profile *domain.Profile, regulatory *domain.RegulatoryConfig) domain.TaxObligationResult {
	input := profile.ObligationInput()

	useFlat, _ := cmd.Flags().GetBool("flat")
	if useFlat {
		return calculation.NewFlatRateEstimator().Estimate(input)
	}

	calc := calculation.NewObligationCalculator(regulatory)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		calc.SetLogger(simpleCLILogger{})
	}
	return calc.Calculate(input)
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [profile-file]",
	Short: "Calculate the annual tax obligation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		regulatory := loadRegulatory(cmd)
		result := calculateObligation(cmd, profile, regulatory)

		report := &output.AnnualReport{
			Profile:     profile,
			Result:      result,
			SafeHarbor:  output.SafeHarborAmount(profile.PriorYearTax),
			GeneratedAt: time.Now(),
		}

		// Include the quarterly schedule when one has been generated.
		st := openStore(cmd)
		defer st.Close()
		payments, err := st.PaymentsForYear(context.Background(), profile.TaxYear)
		if err == nil {
			report.Payments = payments
			report.Summary = schedule.Summarize(payments, report.GeneratedAt)
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Fatal(err)
		}

		check := gsa.Check(profile.DailyHousing, profile.DailyMeals, regulatory.GSA)
		report.GSA = &check

		writeReport(cmd, report)
	},
}

func writeReport(cmd *cobra.Command, report *output.AnnualReport) {
	outputFormat, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(outputFormat)
	if formatter == nil {
		log.Fatalf("Unknown output format: %s (valid: console, json, csv)", outputFormat)
	}
	data, err := formatter.Format(report)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [profile-file]",
	Short: "Generate the quarterly estimated payment schedule",
	Long: `Generate four estimated payments from the annual obligation, due on the
IRS quarterly dates. A schedule is generated once per tax year; recorded
payment history is never overwritten.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		result := calculateObligation(cmd, profile, loadRegulatory(cmd))

		st := openStore(cmd)
		defer st.Close()

		scheduler := schedule.NewScheduler(st)
		payments, err := scheduler.EnsureSchedule(context.Background(), profile.TaxYear, result)
		if errors.Is(err, store.ErrScheduleExists) {
			fmt.Printf("Schedule for %d already exists; showing existing records.\n\n", profile.TaxYear)
		} else if err != nil {
			log.Fatal(err)
		}

		now := time.Now()
		report := &output.AnnualReport{
			Profile:     profile,
			Result:      result,
			Payments:    payments,
			Summary:     schedule.Summarize(payments, now),
			SafeHarbor:  output.SafeHarborAmount(profile.PriorYearTax),
			GeneratedAt: now,
		}
		writeReport(cmd, report)

		if plan := schedule.ReminderPlan(payments, now); len(plan) > 0 {
			fmt.Println("\nUPCOMING REMINDERS")
			for _, reminder := range plan {
				fmt.Printf("  Q%d due %s: remind %s\n",
					reminder.Quarter,
					reminder.DueDate.Format("2006-01-02"),
					reminder.RemindAt.Format("2006-01-02"))
			}
		}
	},
}

var recordCmd = &cobra.Command{
	Use:   "record [quarter] [amount]",
	Short: "Record an estimated payment against a quarter",
	Long: `Record a payment toward a quarter's estimate. Amounts accumulate, so a
quarter can be paid across several transactions.

Examples:
  taxtrack record 1 2500 --year 2025
  taxtrack record 2 1000 --date 2025-06-10 --notes "partial payment"`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		quarter, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalf("Invalid quarter %q: must be 1-4", args[0])
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			log.Fatalf("Invalid amount %q: %v", args[1], err)
		}

		taxYear, _ := cmd.Flags().GetInt("year")
		if taxYear == 0 {
			taxYear = time.Now().Year()
		}

		paidAt := time.Now()
		if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
			paidAt, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				log.Fatalf("Invalid date %q: expected YYYY-MM-DD", dateStr)
			}
		}
		notes, _ := cmd.Flags().GetString("notes")

		st := openStore(cmd)
		defer st.Close()

		scheduler := schedule.NewScheduler(st)
		payment, err := scheduler.RecordPayment(context.Background(), taxYear, quarter, amount, paidAt, notes)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Recorded $%s toward %d Q%d\n", amount.StringFixed(2), taxYear, quarter)
		fmt.Printf("  Paid $%s of $%s", payment.PaidAmount.StringFixed(2), payment.EstimatedAmount.StringFixed(2))
		if payment.IsPaid() {
			fmt.Printf("  PAID IN FULL\n")
		} else {
			fmt.Printf("  ($%s remaining)\n", payment.RemainingAmount().StringFixed(2))
		}
	},
}

var complianceCmd = &cobra.Command{
	Use:   "compliance [profile-file]",
	Short: "Score tax-home compliance from the profile checklist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])

		st := openStore(cmd)
		defer st.Close()
		ctx := context.Background()

		// The profile's checklist is authoritative; visit history lives
		// in the store.
		record, err := st.ComplianceForYear(ctx, profile.TaxYear)
		if errors.Is(err, store.ErrNotFound) {
			record = &domain.TaxHomeCompliance{TaxYear: profile.TaxYear}
		} else if err != nil {
			log.Fatal(err)
		}
		record.ChecklistItems = profile.Checklist

		if err := st.SaveCompliance(ctx, record); err != nil {
			log.Fatal(err)
		}

		printCompliance(*record, time.Now())
	},
}

func printCompliance(record domain.TaxHomeCompliance, now time.Time) {
	score := compliance.Score(record)
	fmt.Println("TAX HOME COMPLIANCE")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Score: %d/100 (%s)\n", score, compliance.Level(record))
	fmt.Printf("Days at tax home this year: %d\n", record.DaysAtTaxHome)

	for _, item := range record.ChecklistItems {
		marker := " "
		switch item.Status {
		case domain.ChecklistComplete:
			marker = "x"
		case domain.ChecklistPartial:
			marker = "~"
		case domain.ChecklistNotApplicable:
			marker = "-"
		}
		fmt.Printf("  [%s] %-12s %s\n", marker, item.Category, item.Title)
	}

	fmt.Println(strings.Repeat("-", 50))
	switch {
	case compliance.ThirtyDayRuleViolated(record, now):
		fmt.Println("WARNING: 30-day rule VIOLATED. Return to your tax home.")
	case record.LastTaxHomeVisit == nil:
		fmt.Println("No tax-home visit recorded yet.")
	default:
		if remaining := compliance.DaysUntilReturn(record, now); remaining != nil {
			if compliance.ThirtyDayRuleAtRisk(record, now) {
				fmt.Printf("AT RISK: return to your tax home within %d day(s).\n", *remaining)
			} else {
				fmt.Printf("Next required tax-home visit in %d day(s).\n", *remaining)
			}
		}
	}
}

var visitCmd = &cobra.Command{
	Use:   "visit [date]",
	Short: "Record a tax-home visit",
	Long: `Record a visit to your declared tax home, resetting the 30-day
countdown and accumulating days of presence.

Examples:
  taxtrack visit 2025-07-04 --days 3 --year 2025`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		visitDate, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			log.Fatalf("Invalid date %q: expected YYYY-MM-DD", args[0])
		}

		taxYear, _ := cmd.Flags().GetInt("year")
		if taxYear == 0 {
			taxYear = visitDate.Year()
		}
		days, _ := cmd.Flags().GetInt("days")

		st := openStore(cmd)
		defer st.Close()
		ctx := context.Background()

		record, err := st.ComplianceForYear(ctx, taxYear)
		if errors.Is(err, store.ErrNotFound) {
			record = &domain.TaxHomeCompliance{TaxYear: taxYear}
		} else if err != nil {
			log.Fatal(err)
		}

		compliance.RecordVisit(record, visitDate, days)
		if err := st.SaveCompliance(ctx, record); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Recorded %d day(s) at tax home on %s (total %d days in %d)\n",
			days, visitDate.Format("2006-01-02"), record.DaysAtTaxHome, taxYear)
		if remaining := compliance.DaysUntilReturn(*record, time.Now()); remaining != nil {
			fmt.Printf("Next required visit in %d day(s).\n", *remaining)
		}
	},
}

var offersCmd = &cobra.Command{
	Use:   "offers [profile-file]",
	Short: "Compare job offers by projected take-home pay",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		if len(profile.Offers) == 0 {
			log.Fatal("profile has no offers to compare")
		}

		federalRate := flagRate(cmd, "federal-rate", calculation.DefaultFlatFederalRate)
		stateRate := flagRate(cmd, "state-rate", calculation.DefaultFlatStateRate)

		engine := compare.NewEngine(federalRate, stateRate, profile.WeeksPerYear)
		compSet := engine.Compare(profile.Offers)

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			out, err := formatter.Format(compSet)
			if err != nil {
				log.Fatalf("Failed to format CSV: %v", err)
			}
			fmt.Print(out)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			out, err := formatter.Format(compSet)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Print(out)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Print(formatter.Format(compSet))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
	},
}

func flagRate(cmd *cobra.Command, name string, fallback decimal.Decimal) decimal.Decimal {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return fallback
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		log.Fatalf("Invalid --%s %q: expected a fraction in [0,1)", name, raw)
	}
	return rate
}

var gsaCmd = &cobra.Command{
	Use:   "gsa [profile-file]",
	Short: "Check stipends against GSA per-diem limits",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile := loadProfile(args[0])
		rates := loadRegulatory(cmd).GSA

		result := gsa.Check(profile.DailyHousing, profile.DailyMeals, rates)

		fmt.Println("GSA PER-DIEM CHECK")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("Housing: $%s/day against $%s limit", profile.DailyHousing.StringFixed(2), rates.Lodging.StringFixed(2))
		if result.HousingWithinLimit {
			fmt.Println("  OK")
		} else {
			fmt.Printf("  OVER by $%s\n", result.HousingExcess.StringFixed(2))
		}
		fmt.Printf("Meals:   $%s/day against $%s limit", profile.DailyMeals.StringFixed(2), rates.Meals.StringFixed(2))
		if result.MealsWithinLimit {
			fmt.Println("  OK")
		} else {
			fmt.Printf("  OVER by $%s\n", result.MealsExcess.StringFixed(2))
		}
		fmt.Println(strings.Repeat("-", 50))
		if result.IsCompliant {
			fmt.Println("Stipends are within per-diem limits.")
		} else {
			fmt.Println("WARNING: excess stipends risk reclassification as taxable income.")
		}
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [profile-file]",
	Short: "Interactive dashboard of obligation, payments, and compliance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profilePath := args[0]
		dbPath, _ := cmd.Flags().GetString("db")
		regulatory := loadRegulatory(cmd)

		load := func() (*tui.DashboardData, error) {
			parser := config.NewInputParser()
			profile, err := parser.LoadProfile(profilePath)
			if err != nil {
				return nil, err
			}

			st, err := sqlite.New(dbPath)
			if err != nil {
				return nil, err
			}
			defer st.Close()
			ctx := context.Background()

			calc := calculation.NewObligationCalculator(regulatory)
			result := calc.Calculate(profile.ObligationInput())

			now := time.Now()
			data := &tui.DashboardData{
				TaxYear:    profile.TaxYear,
				Result:     result,
				SafeHarbor: output.SafeHarborAmount(profile.PriorYearTax),
				Now:        now,
			}

			payments, err := st.PaymentsForYear(ctx, profile.TaxYear)
			if err == nil {
				data.Payments = payments
				data.Summary = schedule.Summarize(payments, now)
			} else if !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}

			record, err := st.ComplianceForYear(ctx, profile.TaxYear)
			if errors.Is(err, store.ErrNotFound) {
				record = &domain.TaxHomeCompliance{TaxYear: profile.TaxYear}
			} else if err != nil {
				return nil, err
			}
			if len(profile.Checklist) > 0 {
				record.ChecklistItems = profile.Checklist
			}
			data.ComplianceScore = compliance.Score(*record)
			data.ComplianceLevel = compliance.Level(*record)
			data.DaysUntilReturn = compliance.DaysUntilReturn(*record, now)
			data.RuleViolated = compliance.ThirtyDayRuleViolated(*record, now)

			check := gsa.Check(profile.DailyHousing, profile.DailyMeals, regulatory.GSA)
			data.GSA = &check

			return data, nil
		}

		program := tea.NewProgram(tui.NewModel(load), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("Dashboard error: %v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "taxtrack.db", "Path to the SQLite database")
	rootCmd.PersistentFlags().String("regulatory-config", "", "Path to regulatory config file (default: regulatory.yaml if it exists)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	calculateCmd.Flags().Bool("flat", false, "Use the simplified flat-rate estimate instead of bracket tables")

	scheduleCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	scheduleCmd.Flags().Bool("flat", false, "Use the simplified flat-rate estimate instead of bracket tables")

	recordCmd.Flags().Int("year", 0, "Tax year (default: current year)")
	recordCmd.Flags().String("date", "", "Payment date as YYYY-MM-DD (default: today)")
	recordCmd.Flags().String("notes", "", "Note to attach to the payment")

	visitCmd.Flags().Int("year", 0, "Tax year (default: the visit's year)")
	visitCmd.Flags().Int("days", 1, "Number of days spent at the tax home")

	offersCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	offersCmd.Flags().String("federal-rate", "", "Blended federal rate as a fraction (default 0.22)")
	offersCmd.Flags().String("state-rate", "", "Blended state rate as a fraction (default 0.05)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(complianceCmd)
	rootCmd.AddCommand(visitCmd)
	rootCmd.AddCommand(offersCmd)
	rootCmd.AddCommand(gsaCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
