package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitforworks/internal/auth"
	"fitforworks/internal/config"
)

// authCmd manages the FitForWorks account session
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your FitForWorks session",
	Long: `Sign in and out of FitForWorks without starting the interactive client.

Available subcommands:
  login  - Sign in with Google via the browser
  logout - Revoke the current session
  status - Show who is signed in`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Sign in to FitForWorks with your Google account.

This command:
1. Opens the browser for Google OAuth consent
2. Captures the redirect on a local callback server
3. Stores the session tokens in ~/.fitworks/session_tokens.json`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored session",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE:  runAuthStatus,
}

func openProvider() (*auth.HTTPProvider, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return auth.NewHTTPProvider(cfg.Auth.ProviderURL, cfg.Auth.AnonKey, dir), nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	provider := auth.NewHTTPProvider(cfg.Auth.ProviderURL, cfg.Auth.AnonKey, dir)
	defer provider.Close()

	redirect := "http://localhost" + cfg.Auth.CallbackPort + "/callback"
	authURL := provider.AuthorizeURL("google", redirect)

	fmt.Println("Opening browser for Google sign-in...")
	if err := auth.OpenBrowser(authURL); err != nil {
		fmt.Println("Could not open a browser. Visit this URL to sign in:")
		fmt.Println("  " + authURL)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
	defer cancel()

	fmt.Println("Waiting for the sign-in to finish...")
	payload, err := auth.WaitForCallback(ctx, cfg.Auth.CallbackPort)
	if err != nil {
		return fmt.Errorf("sign-in did not complete: %w", err)
	}

	user, err := provider.ExchangeTokens(ctx, payload)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	fmt.Printf("✓ Signed in as %s\n", user.DisplayName())
	if logger != nil {
		logger.Info("signed in", zap.String("user", user.Email))
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	provider, err := openProvider()
	if err != nil {
		return err
	}
	defer provider.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := provider.SignOut(ctx); err != nil {
		fmt.Printf("Provider sign-out failed (%v); local session discarded anyway.\n", err)
		return nil
	}
	fmt.Println("✓ Signed out")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	provider, err := openProvider()
	if err != nil {
		return err
	}
	defer provider.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	user, err := provider.CurrentSession(ctx)
	if err != nil {
		return fmt.Errorf("could not query session: %w", err)
	}
	if user == nil {
		fmt.Println("Not signed in. Run 'fitworks auth login' to sign in.")
		return nil
	}

	fmt.Println("Signed in")
	fmt.Printf("  Name:  %s\n", user.DisplayName())
	fmt.Printf("  Email: %s\n", user.Email)
	return nil
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}
