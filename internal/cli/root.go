// Package cli implements bureauctl, a thin HTTP client over the bureau API
// for admin operations and score lookups.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL  string
	adminToken string
)

var rootCmd = &cobra.Command{
	Use:   "bureauctl",
	Short: "Command-line client for the bureau credit ledger",
	Long: `bureauctl talks to a running bureau server. Read operations are open;
lender management requires the admin token (--admin-token or
BUREAU_ADMIN_TOKEN).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the bureau server")
	rootCmd.PersistentFlags().StringVar(&adminToken, "admin-token", "", "Admin token for lender management (falls back to BUREAU_ADMIN_TOKEN)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveAdminToken() string {
	if adminToken != "" {
		return adminToken
	}
	return os.Getenv("BUREAU_ADMIN_TOKEN")
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// call performs a request and decodes the JSON response. Non-2xx responses
// are returned as errors carrying the server's error envelope.
func call(method, path string, body any, admin bool, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, serverURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		token := resolveAdminToken()
		if token == "" {
			return fmt.Errorf("admin token required: pass --admin-token or set BUREAU_ADMIN_TOKEN")
		}
		req.Header.Set("X-Admin-Token", token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			if envelope.Description != "" {
				return fmt.Errorf("%s: %s", envelope.Error, envelope.Description)
			}
			return fmt.Errorf("%s", envelope.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// printJSON pretty-prints a response object.
func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
