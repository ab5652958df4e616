package cli

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lenderCmd)
	lenderCmd.AddCommand(lenderGrantCmd)
	lenderCmd.AddCommand(lenderRevokeCmd)
	lenderCmd.AddCommand(lenderGetCmd)
	lenderCmd.AddCommand(lenderTokenCmd)
}

var lenderCmd = &cobra.Command{
	Use:   "lender",
	Short: "Manage lender authorization (admin)",
}

type lenderResponse struct {
	Principal  string `json:"principal"`
	Authorized bool   `json:"authorized"`
}

type tokenResponse struct {
	Principal string `json:"principal"`
	Token     string `json:"token"`
}

var lenderGrantCmd = &cobra.Command{
	Use:   "grant PRINCIPAL",
	Short: "Authorize a lender to mutate credit profiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp lenderResponse
		if err := call(http.MethodPost, "/admin/lenders/"+url.PathEscape(args[0])+"/grant", nil, true, &resp); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "granted %s\n", resp.Principal)
		return nil
	},
}

var lenderRevokeCmd = &cobra.Command{
	Use:   "revoke PRINCIPAL",
	Short: "Withdraw a lender's permission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp lenderResponse
		if err := call(http.MethodPost, "/admin/lenders/"+url.PathEscape(args[0])+"/revoke", nil, true, &resp); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "revoked %s\n", resp.Principal)
		return nil
	},
}

var lenderGetCmd = &cobra.Command{
	Use:   "get PRINCIPAL",
	Short: "Show whether a principal is authorized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp lenderResponse
		if err := call(http.MethodGet, "/admin/lenders/"+url.PathEscape(args[0]), nil, true, &resp); err != nil {
			return err
		}
		return printJSON(resp)
	},
}

var lenderTokenCmd = &cobra.Command{
	Use:   "token PRINCIPAL",
	Short: "Issue a bearer token for a lender",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp tokenResponse
		if err := call(http.MethodPost, "/admin/lenders/"+url.PathEscape(args[0])+"/token", nil, true, &resp); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, resp.Token)
		return nil
	},
}
