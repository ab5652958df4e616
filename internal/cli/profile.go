package cli

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(eventsCmd)

	scoreCmd.Flags().Bool("fresh", false, "Recompute the score instead of returning the stored value")
}

var scoreCmd = &cobra.Command{
	Use:   "score ACCOUNT",
	Short: "Look up an account's credit score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/v1/profiles/" + url.PathEscape(args[0]) + "/score"
		if fresh, _ := cmd.Flags().GetBool("fresh"); fresh {
			path += "/fresh"
		}
		var resp map[string]any
		if err := call(http.MethodGet, path, nil, false, &resp); err != nil {
			return err
		}
		return printJSON(resp)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile ACCOUNT",
	Short: "Show an account's credit profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := call(http.MethodGet, "/v1/profiles/"+url.PathEscape(args[0]), nil, false, &resp); err != nil {
			return err
		}
		return printJSON(resp)
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events ACCOUNT",
	Short: "List an account's notification history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := call(http.MethodGet, "/v1/profiles/"+url.PathEscape(args[0])+"/events", nil, false, &resp); err != nil {
			return err
		}
		return printJSON(resp)
	},
}
