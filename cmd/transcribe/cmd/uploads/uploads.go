package uploads

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"gemini-transcriber/cmd/transcribe/cmd/cliutil"
	"gemini-transcriber/internal/app"
	"gemini-transcriber/internal/app/model"
	appuploads "gemini-transcriber/internal/app/uploads"
	"gemini-transcriber/internal/config"
)

var includeDeleted bool

func init() {
	listCmd.Flags().BoolVar(&includeDeleted, "all", false, "include files already deleted")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(purgeCmd)
}

// Cmd represents the uploads command
var Cmd = &cobra.Command{
	Use:   "uploads",
	Short: "Inspect and clean up audio files left on the Gemini Files API",
	Long: `Inspect and clean up audio files left on the Gemini Files API.

Every run started with --ledger records its upload, these commands read that ledger.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded uploads, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd, func(m *appuploads.Manager) error {
			records, err := m.List(cmd.Context(), includeDeleted)
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		})
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every recorded upload that is still on the remote side",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd, func(m *appuploads.Manager) error {
			report, err := m.Purge(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d of %d uploads could not be purged",
					len(report.Failed), len(report.Failed)+len(report.Deleted)+len(report.Expired))
			}
			return nil
		})
	},
}

func withManager(cmd *cobra.Command, fn func(*appuploads.Manager) error) error {
	settings, err := cliutil.LoadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := cliutil.NewLogger(cmd, settings)
	if err != nil {
		return err
	}
	defer logger.Sync()

	m, cleanup, err := app.InitializeUploadManager(cmd.Context(), settings, config.GetCredentials(), logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(m)
}

func printRecords(w io.Writer, records []model.UploadRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tFILE\tSTATUS\tDELETED\tAUDIO\tOUTPUT")
	for _, r := range records {
		deleted := "-"
		if r.Deleted() {
			deleted = r.DeletedAt.Local().Format(time.DateTime)
		}
		status := string(r.Status)
		if r.ErrorKind != "" {
			status += " (" + r.ErrorKind + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.FileName, status, deleted, r.AudioPath, r.OutputPath)
	}
	return tw.Flush()
}

func printReport(w io.Writer, report *appuploads.PurgeReport) {
	for _, name := range report.Deleted {
		fmt.Fprintf(w, "deleted  %s\n", name)
	}
	for _, name := range report.Expired {
		fmt.Fprintf(w, "expired  %s\n", name)
	}

	failed := lo.Keys(report.Failed)
	sort.Strings(failed)
	for _, name := range failed {
		fmt.Fprintf(w, "failed   %s: %v\n", name, report.Failed[name])
	}
}
