package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"carbon-dropins/internal/app"
)

type reconcileOptions struct {
	DryRun bool
	Report string
}

func newReconcileCommand(layout *layoutOptions) *cobra.Command {
	opts := reconcileOptions{}
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Prune stale dropins entries and register new dropins bundles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd.Context(), cmd, layout, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compute the new ledger without writing it")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Write a YAML reconcile report to this path")
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	return cmd
}

func runReconcile(ctx context.Context, cmd *cobra.Command, layout *layoutOptions, opts reconcileOptions) error {
	service := newAppService()
	result, err := service.Reconcile(ctx, app.ReconcileRequest{
		LayoutRequest: layoutRequest(cmd, layout),
		DryRun:        resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
		ReportPath:    resolveString(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}
	if !result.LedgerFound {
		fmt.Println("ledger not found: nothing to reconcile")
		return nil
	}
	prefix := ""
	if result.DryRun {
		prefix = "dry-run: "
	}
	fmt.Printf("%sdeployed=%d present=%d refused=%d pruned=%d skipped=%d\n",
		prefix, result.Deployed, result.Present, result.Refused, result.Pruned, result.Skipped)
	return nil
}
