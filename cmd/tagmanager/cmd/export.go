package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagmanager/internal/adapters/export"
	"tagmanager/internal/application/commands"
	"tagmanager/internal/config"
	"tagmanager/internal/ports"
)

var (
	exportName     string
	exportSettings = config.ExportSettings()
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole taxonomy as one JSON file",
	Long: `Write every tag, grouped by category, with per-category counts, as a
single JSON document. The document goes to a local directory, or to S3
when a bucket is configured.

Examples:
  tagmanager export --out web/static
  tagmanager export --s3-bucket taxonomy-exports --s3-prefix nightly`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var sink ports.ExportSink
		if exportSettings.Bucket != "" {
			s3Sink, err := export.NewS3Sink(ctx, export.S3Config{
				Bucket:          exportSettings.Bucket,
				Prefix:          exportSettings.Prefix,
				Region:          exportSettings.Region,
				Endpoint:        exportSettings.Endpoint,
				AccessKeyID:     exportSettings.AccessKeyID,
				SecretAccessKey: exportSettings.SecretAccessKey,
				PathStyle:       exportSettings.PathStyle,
			})
			if err != nil {
				return err
			}
			sink = s3Sink
		} else {
			sink = export.NewFileSink(exportSettings.Dir)
		}

		result, err := commands.NewExportCommand(GetRepo(), sink, exportName).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	flags := exportCmd.Flags()
	flags.StringVar(&exportName, "name", commands.DefaultExportName, "output file or object name")
	flags.StringVarP(&exportSettings.Dir, "out", "o", exportSettings.Dir, "output directory")
	flags.StringVar(&exportSettings.Bucket, "s3-bucket", exportSettings.Bucket, "S3 bucket (enables the S3 sink)")
	flags.StringVar(&exportSettings.Prefix, "s3-prefix", exportSettings.Prefix, "S3 key prefix")
	flags.StringVar(&exportSettings.Region, "s3-region", exportSettings.Region, "S3 region")
	flags.StringVar(&exportSettings.Endpoint, "s3-endpoint", exportSettings.Endpoint, "S3-compatible endpoint URL")
	flags.BoolVar(&exportSettings.PathStyle, "s3-path-style", exportSettings.PathStyle, "use path-style S3 addressing")
	rootCmd.AddCommand(exportCmd)
}
