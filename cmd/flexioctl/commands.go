package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"flexio/config"
	"flexio/internal/app"
	"flexio/internal/auth"
	"flexio/internal/database"
	"flexio/internal/domain"
	"flexio/internal/scheduler"
	"flexio/internal/streak"

	"github.com/spf13/cobra"
)

type cli struct {
	cfg *config.Config
}

// open builds the application for one command run; the caller closes it.
func (c *cli) open(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), c.cfg)
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "flexioctl",
		Short:         "Flexio billing and rewards administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}
	root.AddCommand(
		newMigrateCommand(c),
		newUserCommand(c),
		newGymCommand(c),
		newMemberCommand(c),
		newWalletCommand(c),
		newBillingCommand(c),
		newRewardsCommand(c),
		newTokenCommand(c),
	)
	return root
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newMigrateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := database.AutoMigrate(a.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newBillingCommand(c *cli) *cobra.Command {
	billingCmd := &cobra.Command{
		Use:   "billing",
		Short: "Inspect and run monthly gym billing",
	}

	var gymID uint
	snapshot := &cobra.Command{
		Use:   "snapshot",
		Short: "Show a gym's billing snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			snap, err := a.Services.Billing.ComputeSnapshot(cmd.Context(), gymID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snap)
		},
	}
	snapshot.Flags().UintVar(&gymID, "gym", 0, "gym id")
	_ = snapshot.MarkFlagRequired("gym")

	var runGym uint
	var all bool
	run := &cobra.Command{
		Use:   "run",
		Short: "Bill one gym (--gym) or every gym (--all) for the current period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (runGym == 0) == !all {
				return errors.New("specify exactly one of --gym or --all")
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if all {
				s, err := scheduler.New(a.Services.Billing, a.Services.Gyms, c.cfg.Billing.Schedule,
					c.cfg.Billing.Location, c.cfg.Billing.Concurrency, a.Logger)
				if err != nil {
					return err
				}
				sum, err := s.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sum)
			}
			res, err := a.Services.Billing.ProcessMonthlyBilling(cmd.Context(), runGym)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	run.Flags().UintVar(&runGym, "gym", 0, "gym id")
	run.Flags().BoolVar(&all, "all", false, "bill every gym")

	billingCmd.AddCommand(snapshot, run)
	return billingCmd
}

func newRewardsCommand(c *cli) *cobra.Command {
	rewardsCmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show or change a gym's streak reward settings",
	}

	var showGym uint
	show := &cobra.Command{
		Use:   "show",
		Short: "Print effective reward settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd.OutOrStdout(), a.Services.Rewards.Settings(cmd.Context(), showGym))
		},
	}
	show.Flags().UintVar(&showGym, "gym", 0, "gym id")
	_ = show.MarkFlagRequired("gym")

	var setGym uint
	var days [6]int
	var sunday, unified bool
	var unifiedValue int
	dayFlags := []string{"day1", "day2", "day3", "day4", "day5", "day6-plus"}
	set := &cobra.Command{
		Use:   "set",
		Short: "Override reward settings; only flags given are changed",
		RunE: func(cmd *cobra.Command, args []string) error {
			var o streak.Override
			dayFields := []**int{&o.Day1, &o.Day2, &o.Day3, &o.Day4, &o.Day5, &o.Day6Plus}
			for i, name := range dayFlags {
				if cmd.Flags().Changed(name) {
					v := days[i]
					*dayFields[i] = &v
				}
			}
			if cmd.Flags().Changed("sunday-auto-streak") {
				o.SundayAutoStreak = &sunday
			}
			if cmd.Flags().Changed("unified-mode") {
				o.UnifiedMode = &unified
			}
			if cmd.Flags().Changed("unified-value") {
				o.UnifiedValue = &unifiedValue
			}

			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.Services.Gyms.GetByID(cmd.Context(), setGym); err != nil {
				return fmt.Errorf("gym %d: %w", setGym, err)
			}
			s, err := a.Services.Rewards.UpdateSettings(cmd.Context(), setGym, o)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
	set.Flags().UintVar(&setGym, "gym", 0, "gym id")
	_ = set.MarkFlagRequired("gym")
	for i, name := range dayFlags {
		set.Flags().IntVar(&days[i], name, 0, "coins for "+name)
	}
	set.Flags().BoolVar(&sunday, "sunday-auto-streak", true, "keep streaks across Sunday")
	set.Flags().BoolVar(&unified, "unified-mode", false, "pay a flat value with a progressive multiplier")
	set.Flags().IntVar(&unifiedValue, "unified-value", 0, "coins per check-in in unified mode")

	rewardsCmd.AddCommand(show, set)
	return rewardsCmd
}

func newTokenCommand(c *cli) *cobra.Command {
	var userID uint
	var role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for API calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch role {
			case domain.RoleMember, domain.RoleOwner, domain.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}
			tok, err := auth.GenerateAccessToken(&c.cfg.JWT, userID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&role, "role", domain.RoleMember, "MEMBER, OWNER or ADMIN")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
