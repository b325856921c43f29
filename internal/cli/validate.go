package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"carbon-dropins/internal/app"
)

func newValidateCommand(layout *layoutOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the ledger for duplicate identities and missing dropins files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, layout)
		},
	}
}

func runValidate(ctx context.Context, cmd *cobra.Command, layout *layoutOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{LayoutRequest: layoutRequest(cmd, layout)})
	if err != nil {
		return err
	}
	for _, violation := range result.Violations {
		fmt.Printf("- %s\n", violation)
	}
	if len(result.Violations) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("ledger has %d violations", len(result.Violations)))
	}
	fmt.Printf("validated: %s (%d records)\n", result.LedgerPath, result.Records)
	return nil
}
