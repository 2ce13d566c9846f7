package snapcal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snapcal/snapcal/internal/config"
	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/provider/keyword"
	"github.com/snapcal/snapcal/internal/provider/oracle"
	"github.com/snapcal/snapcal/internal/service"
	"github.com/snapcal/snapcal/internal/store"
	"github.com/spf13/cobra"
)

var (
	addImage    string
	addOffline  bool
	addName     string
	addCalories float64
	addCarbs    float64
	addProtein  float64
	addFat      float64
	addDate     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food entry from a photo or manual nutrition values",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := service.ParseDate(addDate)
		if err != nil {
			return err
		}
		est, source, err := resolveEstimation(cmd)
		if err != nil {
			return err
		}
		printEstimation(cmd, est, source)

		return withRepo(func(repo *store.Repository) error {
			entry, err := service.NewLedger(repo).AddEntry(date, est)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %.0f kcal - %s (%s)\n", entry.Calories, entry.Name, date.Format("2006-01-02"))
			return nil
		})
	},
}

// resolveEstimation produces the canonical estimate from either an image or
// manual flags. The two paths are mutually exclusive.
func resolveEstimation(cmd *cobra.Command) (model.EstimationResult, string, error) {
	hasImage := strings.TrimSpace(addImage) != ""
	hasManual := strings.TrimSpace(addName) != "" || addCalories != 0 || addCarbs != 0 || addProtein != 0 || addFat != 0

	switch {
	case hasImage && hasManual:
		return model.EstimationResult{}, "", fmt.Errorf("cannot combine --image with manual nutrition flags (--name/--calories/--carbs/--protein/--fat)")
	case hasImage:
		est, source := estimateImage(cmd, addImage)
		return est, source, nil
	case hasManual:
		est, err := service.FromManual(service.ManualEntryInput{
			Name:     addName,
			Calories: addCalories,
			CarbsG:   addCarbs,
			ProteinG: addProtein,
			FatG:     addFat,
		})
		return est, "manual", err
	default:
		return model.EstimationResult{}, "", fmt.Errorf("either --image or --name/--calories is required")
	}
}

// estimateImage asks the remote service first and falls back to the local
// keyword table on any failure, so estimation itself never hard-fails.
func estimateImage(cmd *cobra.Command, imagePath string) (model.EstimationResult, string) {
	label := filepath.Base(imagePath)

	if addOffline {
		return keyword.Match(label), "local"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "config unavailable (%v); using local estimation\n", err)
		return keyword.Match(label), "local"
	}
	baseURL := config.OracleBaseURL(cfg)
	if baseURL == "" {
		return keyword.Match(label), "local"
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "read image failed (%v); using local estimation\n", err)
		return keyword.Match(label), "local"
	}

	timeout := time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := &oracle.Client{
		BaseURL:    baseURL,
		APIKey:     config.OracleAPIKey(cfg),
		HTTPClient: &http.Client{Timeout: timeout},
	}
	resp, _, err := client.EstimateImage(ctx, label, image)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "estimation service unavailable (%v); using local estimation\n", err)
		return keyword.Match(label), "local"
	}
	return service.FromOracle(resp), "oracle"
}

func printEstimation(cmd *cobra.Command, est model.EstimationResult, source string) {
	fmt.Fprintf(cmd.OutOrStdout(), "Estimate (%s): %s\n", source, est.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "Calories: %.0f kcal | C %.1fg | P %.1fg | F %.1fg\n", est.Calories, est.CarbsG, est.ProteinG, est.FatG)
	fmt.Fprintf(cmd.OutOrStdout(), "Confidence: %.2f (%s)\n", est.Confidence, service.LevelForConfidence(est.Confidence))
	if service.NeedsManualReview(est.Confidence) {
		fmt.Fprintln(cmd.OutOrStdout(), "Low confidence: consider re-running with --name and --calories to correct the values")
	}
}

func addEstimationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&addImage, "image", "", "Path to a food photo (JPEG, PNG, or WebP)")
	cmd.Flags().BoolVar(&addOffline, "offline", false, "Skip the remote service and use local keyword estimation")
	cmd.Flags().StringVar(&addName, "name", "", "Food name (manual entry)")
	cmd.Flags().Float64Var(&addCalories, "calories", 0, "Calories (manual entry)")
	cmd.Flags().Float64Var(&addCarbs, "carbs", 0, "Carbs grams (manual entry; auto-filled from calories when all macros are 0)")
	cmd.Flags().Float64Var(&addProtein, "protein", 0, "Protein grams (manual entry)")
	cmd.Flags().Float64Var(&addFat, "fat", 0, "Fat grams (manual entry)")
}

func init() {
	rootCmd.AddCommand(addCmd)
	addEstimationFlags(addCmd)
	addCmd.Flags().StringVar(&addDate, "date", "", "Log to date YYYY-MM-DD (default today)")
}
