package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minebrief",
	Short: "Minebrief searches commodity news and synthesizes it into publication-ready articles.",
	Long: `Minebrief is a commodity news backend. It searches recent news for a
commodity across pluggable providers, synthesizes multiple articles into one
three-paragraph report through a chain of AI backends, and exports the result
to DOCX or PDF.

Start the HTTP server with:

  minebrief serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.minebrief.yaml)")
	rootCmd.AddCommand(newServeCmd())
}
