package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"carbon-dropins/internal/app"
	"carbon-dropins/internal/types"
)

type inspectOptions struct {
	Format string
}

func newInspectCommand(layout *layoutOptions) *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the ledger grouped by symbolic name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, layout, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatText), "Output format (text or yaml)")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, layout *layoutOptions, opts inspectOptions) error {
	format := types.OutputFormat(strings.ToLower(resolveString(cmd, opts.Format, "format", "format")))
	if format == "" {
		format = types.OutputFormatText
	}
	if format != types.OutputFormatText && format != types.OutputFormatYAML {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported format: " + string(format))
	}
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{LayoutRequest: layoutRequest(cmd, layout)})
	if err != nil {
		return err
	}
	if format == types.OutputFormatYAML {
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(result.View)
	}

	fmt.Printf("ledger: %s\n", result.View.Path)
	for _, group := range result.View.Bundles {
		fmt.Printf("- %s\n", group.SymbolicName)
		for _, record := range group.Records {
			fragment := ""
			if record.Fragment {
				fragment = " fragment"
			}
			fmt.Printf("  %s level=%d origin=%s%s %s\n", record.Version, record.StartLevel, record.Origin, fragment, record.Path)
		}
	}
	return nil
}
