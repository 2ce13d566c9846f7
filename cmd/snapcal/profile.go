package snapcal

import (
	"fmt"
	"strings"

	"github.com/snapcal/snapcal/internal/model"
	"github.com/snapcal/snapcal/internal/service"
	"github.com/snapcal/snapcal/internal/store"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the biometric profile that daily targets derive from",
}

var (
	profileAge        int
	profileHeight     float64
	profileHeightUnit string
	profileWeight     float64
	profileWeightUnit string
	profileGender     string
	profileActivity   int
	profileGoal       string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		heightCm, err := heightToCm(profileHeight, profileHeightUnit)
		if err != nil {
			return err
		}
		weightKg, err := weightToKg(profileWeight, profileWeightUnit)
		if err != nil {
			return err
		}
		in := service.SetProfileInput{
			Age:          profileAge,
			HeightCm:     heightCm,
			WeightKg:     weightKg,
			Gender:       profileGender,
			ActivityDays: profileActivity,
			Goal:         profileGoal,
			UnitPrefs: model.UnitPrefs{
				Height: strings.ToLower(strings.TrimSpace(profileHeightUnit)),
				Weight: strings.ToLower(strings.TrimSpace(profileWeightUnit)),
			},
		}
		return withRepo(func(repo *store.Repository) error {
			profile, err := service.SetProfile(repo, in)
			if err != nil {
				return err
			}
			targets := service.ComputeDailyTargets(&profile)
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Daily target: %d kcal | C %dg | P %dg | F %dg\n",
				targets.MaxCalories, targets.MacroTargets.CarbsG, targets.MacroTargets.ProteinG, targets.MacroTargets.FatG)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(repo *store.Repository) error {
			profile, err := service.CurrentProfile(repo)
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile configured (default targets apply)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", profile.Age)
			fmt.Fprintf(cmd.OutOrStdout(), "Height: %s\n", displayHeight(profile))
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: %s\n", displayWeight(profile))
			fmt.Fprintf(cmd.OutOrStdout(), "Gender: %s\n", profile.Gender)
			fmt.Fprintf(cmd.OutOrStdout(), "Active days/week: %d\n", profile.ActivityDays)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\n", profile.Goal)
			return nil
		})
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored profile and fall back to default targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(repo *store.Repository) error {
			if err := service.ClearProfile(repo); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile cleared")
			return nil
		})
	},
}

func heightToCm(value float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "cm":
		return value, nil
	case "in":
		return value * 2.54, nil
	default:
		return 0, fmt.Errorf("invalid height unit %q (expected cm or in)", unit)
	}
}

func weightToKg(value float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "kg":
		return value, nil
	case "lb":
		return value * 0.453592, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (expected kg or lb)", unit)
	}
}

func displayHeight(p *model.Profile) string {
	if p.UnitPrefs.Height == "in" {
		return fmt.Sprintf("%.1f in", p.HeightCm/2.54)
	}
	return fmt.Sprintf("%.1f cm", p.HeightCm)
}

func displayWeight(p *model.Profile) string {
	if p.UnitPrefs.Weight == "lb" {
		return fmt.Sprintf("%.1f lb", p.WeightKg/0.453592)
	}
	return fmt.Sprintf("%.1f kg", p.WeightKg)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd, profileClearCmd)

	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height value")
	profileSetCmd.Flags().StringVar(&profileHeightUnit, "height-unit", "cm", "Height unit: cm or in")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight value")
	profileSetCmd.Flags().StringVar(&profileWeightUnit, "weight-unit", "kg", "Weight unit: kg or lb")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
	profileSetCmd.Flags().IntVar(&profileActivity, "activity-days", 0, "Training days per week (0-7)")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "maintaining", "Goal: cutting, maintaining, or bulking")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("height")
	_ = profileSetCmd.MarkFlagRequired("weight")
	_ = profileSetCmd.MarkFlagRequired("gender")
}
