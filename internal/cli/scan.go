package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"carbon-dropins/internal/app"
)

func newScanCommand(layout *layoutOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List the bundles found in the dropins directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd.Context(), cmd, layout)
		},
	}
}

func runScan(ctx context.Context, cmd *cobra.Command, layout *layoutOptions) error {
	service := newAppService()
	result, err := service.Scan(ctx, app.ScanRequest{LayoutRequest: layoutRequest(cmd, layout)})
	if err != nil {
		return err
	}
	fmt.Printf("dropins: %s\n", result.DropinsDir)
	for _, record := range result.Records {
		kind := "bundle"
		if record.Fragment {
			kind = "fragment"
		}
		fmt.Printf("- %s %s (%s) %s\n", record.SymbolicName, record.Version, kind, record.Path)
	}
	for _, issue := range result.Issues {
		fmt.Printf("skipped %s: %s\n", issue.File, issue.Reason)
	}
	return nil
}
