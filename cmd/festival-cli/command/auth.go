package command

// auth.go handles register, login and logout.

import (
	"fmt"
	"time"

	"festivalhub/cmd/festival-cli/authentication"
	"festivalhub/cmd/festival-cli/command/client"
	"festivalhub/internal/microservices/http-api/dto"
	"festivalhub/internal/microservices/http-api/models"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the FestivalHub API server. Supports register, login and logout.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")
		req.Role = models.Role(role)

		user, err := client.NewHTTPClient(apiURL).Register(cmd.Context(), &req)
		if err != nil {
			return err
		}

		fmt.Println("✓ Registration successful! An admin has to verify the account before you can log in.")
		fmt.Printf("UserID: %s\n", user.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the access token in the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		resp, err := client.NewHTTPClient(apiURL).Login(cmd.Context(), &req)
		if err != nil {
			return err
		}

		creds := &authentication.StoredCredentials{
			AccessToken: resp.AccessToken,
			ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		}
		if resp.User != nil {
			creds.UserID = resp.User.ID
			creds.Role = string(resp.User.Role)
			creds.Email = resp.User.Email
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("store token: %w", err)
		}

		fmt.Printf("✓ Logged in as %s (%s)\n", creds.Email, creds.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		fmt.Println("✓ Logged out.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
	rootCmd.AddCommand(authCmd)

	registerCmd.Flags().StringP("name", "n", "", "Display name")
	registerCmd.Flags().StringP("email", "e", "", "Email address")
	registerCmd.Flags().StringP("password", "p", "", "Password (min 8 characters)")
	registerCmd.Flags().StringP("role", "r", "user", "Account role: user or vendor")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
