package main

import (
	"fmt"
	"strings"
	"time"

	"flexio/internal/domain"
	"flexio/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newUserCommand(c *cli) *cobra.Command {
	userCmd := &cobra.Command{Use: "user", Short: "Manage users"}

	var email, name, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			role = strings.ToUpper(role)
			switch role {
			case domain.RoleMember, domain.RoleOwner, domain.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			u := &models.User{Email: email, Name: name, Role: role}
			if err := a.Services.Users.Create(cmd.Context(), u); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
	create.Flags().StringVar(&email, "email", "", "email address")
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&role, "role", domain.RoleMember, "MEMBER, OWNER or ADMIN")
	_ = create.MarkFlagRequired("email")

	userCmd.AddCommand(create)
	return userCmd
}

func newGymCommand(c *cli) *cobra.Command {
	gymCmd := &cobra.Command{Use: "gym", Short: "Manage gyms"}

	var owner uint
	var name string
	var lat, lng, radius float64
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a gym and its geofence",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			u, err := a.Services.Users.GetByID(cmd.Context(), owner)
			if err != nil {
				return fmt.Errorf("owner %d: %w", owner, err)
			}
			if u.Role == domain.RoleMember {
				return fmt.Errorf("user %d is not an owner", owner)
			}
			g := &models.Gym{OwnerID: owner, Name: name, Latitude: lat, Longitude: lng, GeofenceRadiusMeters: radius}
			if err := a.Services.Gyms.Create(cmd.Context(), g); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), g)
		},
	}
	create.Flags().UintVar(&owner, "owner", 0, "owner user id")
	create.Flags().StringVar(&name, "name", "", "gym name")
	create.Flags().Float64Var(&lat, "lat", 0, "latitude")
	create.Flags().Float64Var(&lng, "lng", 0, "longitude")
	create.Flags().Float64Var(&radius, "radius", 0, "geofence radius in meters (0 uses the default)")
	_ = create.MarkFlagRequired("owner")
	_ = create.MarkFlagRequired("name")

	gymCmd.AddCommand(create)
	return gymCmd
}

func newMemberCommand(c *cli) *cobra.Command {
	memberCmd := &cobra.Command{Use: "member", Short: "Manage gym memberships"}

	var gymID, userID uint
	var start string
	add := &cobra.Command{
		Use:   "add",
		Short: "Enroll a user in a gym",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate := time.Now().UTC()
			if start != "" {
				d, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				startDate = d
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.Services.Gyms.GetByID(cmd.Context(), gymID); err != nil {
				return fmt.Errorf("gym %d: %w", gymID, err)
			}
			if _, err := a.Services.Users.GetByID(cmd.Context(), userID); err != nil {
				return fmt.Errorf("user %d: %w", userID, err)
			}
			m := &models.Membership{GymID: gymID, UserID: userID, StartDate: startDate, Active: true}
			if err := a.Services.Members.Create(cmd.Context(), m); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	}
	add.Flags().UintVar(&gymID, "gym", 0, "gym id")
	add.Flags().UintVar(&userID, "user", 0, "user id")
	add.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default today)")
	_ = add.MarkFlagRequired("gym")
	_ = add.MarkFlagRequired("user")

	memberCmd.AddCommand(add)
	return memberCmd
}

// newWalletCommand credits a gym wallet by hand, e.g. for bank transfers
// settled outside the payment provider.
func newWalletCommand(c *cli) *cobra.Command {
	walletCmd := &cobra.Command{Use: "wallet", Short: "Manage gym wallets"}

	var gymID uint
	var amount, reference string
	recharge := &cobra.Command{
		Use:   "recharge",
		Short: "Credit a gym wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			res, err := a.Services.Billing.RechargeWallet(cmd.Context(), gymID, amt, reference)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	recharge.Flags().UintVar(&gymID, "gym", 0, "gym id")
	recharge.Flags().StringVar(&amount, "amount", "", "amount to credit")
	recharge.Flags().StringVar(&reference, "reference", "", "payment reference; repeats are credited once")
	_ = recharge.MarkFlagRequired("gym")
	_ = recharge.MarkFlagRequired("amount")
	_ = recharge.MarkFlagRequired("reference")

	walletCmd.AddCommand(recharge)
	return walletCmd
}
