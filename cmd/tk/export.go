package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/backup"
)

var (
	exportOutput     string
	exportS3Bucket   string
	exportS3Key      string
	exportS3Region   string
	exportS3Endpoint string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the loaded board as JSONL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := loadBoard(ctx, nil)
		if err != nil {
			return err
		}
		issues, _ := store.Snapshot()

		if exportS3Bucket != "" {
			var buf bytes.Buffer
			if err := backup.ExportClientJSONL(issues, &buf); err != nil {
				return err
			}
			dest, err := backup.NewS3Destination(ctx, exportS3Bucket, exportS3Key, exportS3Region, exportS3Endpoint)
			if err != nil {
				return err
			}
			if err := dest.Write(ctx, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Exported %d issues to s3://%s/%s\n", len(issues), exportS3Bucket, exportS3Key)
			return nil
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if err := backup.ExportClientJSONL(issues, out); err != nil {
			return err
		}
		if exportOutput != "" {
			fmt.Fprintf(os.Stderr, "Exported %d issues to %s\n", len(issues), exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportS3Bucket, "s3-bucket", "", "upload to this S3 bucket instead of writing locally")
	exportCmd.Flags().StringVar(&exportS3Key, "s3-key", "trak/export.jsonl", "S3 object key")
	exportCmd.Flags().StringVar(&exportS3Region, "s3-region", "us-east-1", "S3 region")
	exportCmd.Flags().StringVar(&exportS3Endpoint, "s3-endpoint", "", "custom S3 endpoint (MinIO)")
}
