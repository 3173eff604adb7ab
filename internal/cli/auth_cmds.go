package cli

import (
	"fmt"
	"os"
	"time"

	"hospital-inventory-dashboard/internal/models"
	"hospital-inventory-dashboard/pkg/utils"

	"github.com/spf13/cobra"
)

func loginCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session for this profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("MEDICTL_PASSWORD")
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password (or MEDICTL_PASSWORD) are required")
			}

			if err := a.auth.Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("invalid credentials: %w", err)
			}
			a.record(models.AuditActionLogin, email)
			if user := a.auth.User(); user != nil {
				fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Email, user.Role)
			}
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

func registerCmd(appFn func() *app) *cobra.Command {
	var form models.RegistrationForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a hospital admin account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			if err := form.Validate(); err != nil {
				return err
			}
			if _, err := a.services.Auth.Register(cmd.Context(), form.Request()); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			a.record(models.AuditActionRegister, form.Email)

			if err := a.auth.Login(cmd.Context(), form.Email, form.Password); err != nil {
				return fmt.Errorf("registration succeeded but login failed: %w", err)
			}
			a.record(models.AuditActionLogin, form.Email)
			fmt.Fprintf(a.out, "Registered and logged in as %s\n", form.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.HospitalName, "hospital-name", "", "Hospital name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Admin email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&form.Address, "address", "", "Hospital address")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password (at least 8 characters)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "Password confirmation (defaults to --password)")
	return cmd
}

func logoutCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session on the backend and forget it locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			if err := a.services.Auth.Logout(cmd.Context()); err != nil {
				a.logger.Warn().Err(err).Msg("backend logout failed")
			}
			a.record(models.AuditActionLogout, "")
			a.auth.Logout()
			return nil
		},
	}
}

func whoamiCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and access token details",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			if err := a.requireUser(cmd.Context()); err != nil {
				return err
			}

			info := map[string]any{
				"profile": a.profile,
				"user":    a.auth.User(),
			}
			token, err := a.store.AccessToken()
			if err != nil {
				return err
			}
			if claims, err := utils.ParseTokenClaims(token); err == nil {
				if claims.ExpiresAt != nil {
					info["token_expires_at"] = claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
				}
				if left, ok := claims.ExpiresIn(time.Now()); ok {
					info["token_expires_in"] = left.Round(time.Second).String()
				}
			}
			return a.print(info)
		},
	}
}

func activityCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "List recent session events for this profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			limit, _ := cmd.Flags().GetInt("limit")
			events, err := a.audit.ListByProfile(a.profile, limit)
			if err != nil {
				return err
			}
			return a.print(events)
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of events")
	return cmd
}
