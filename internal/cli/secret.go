package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bureau/pkg/secrets"
)

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.Flags().String("hash", "", "Hash an existing token instead of generating a new one")
}

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Generate an admin token and its bcrypt hash",
	Long: `Generates a random admin token and prints it alongside its bcrypt
hash. Put the hash in admin_token_bcrypt (or BUREAU_ADMIN_TOKEN_BCRYPT) so
the plaintext never lands in configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetString("hash")
		if plain == "" {
			var err error
			plain, err = secrets.Generate()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "token: %s\n", plain)
		}
		hash, err := secrets.Hash(plain)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "bcrypt: %s\n", hash)
		return nil
	},
}
