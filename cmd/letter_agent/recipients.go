package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brian/letter-agent/internal/directory"
	"github.com/brian/letter-agent/internal/observability"
)

var recipientsCmd = &cobra.Command{
	Use:   "recipients",
	Short: "List the recipient directory",
	Long:  "Load and classify the recipient directory, apply the selector, and print the matching officials with their default mailing offices.",
	RunE:  runRecipients,
}

var (
	recipientsFile   string
	recipientsSelect string
)

func init() {
	recipientsCmd.Flags().StringVarP(&recipientsFile, "recipients-file", "r", "", "Path to recipients JSON directory (required)")
	recipientsCmd.Flags().StringVar(&recipientsSelect, "select", "all", "Recipient selector: all, federal, state, local-office, dc-office, or a comma-separated ID list")

	recipientsCmd.MarkFlagRequired("recipients-file")

	rootCmd.AddCommand(recipientsCmd)
}

func runRecipients(cmd *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(os.Stdout)

	officials, warnings, err := directory.Load(recipientsFile, csvFallbackPath(recipientsFile))
	for _, warning := range warnings {
		printer.Warn("%s", warning)
	}
	if err != nil {
		return err
	}

	selected, err := directory.Filter(officials, directory.Selector(recipientsSelect))
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no recipients match selector %q", recipientsSelect)
	}

	printer.PrintRecipients(selected)
	return nil
}
