package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"gemini-transcriber/cmd/transcribe/cmd/cliutil"
	"gemini-transcriber/cmd/transcribe/cmd/run"
	"gemini-transcriber/cmd/transcribe/cmd/uploads"
	"gemini-transcriber/cmd/transcribe/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Send an audio file to a Gemini model and save the answer as text",
	Long: `Send an audio file to a Gemini model and save the answer as text.

- The API key is read from GEMINI_API_KEY (or GOOGLE_API_KEY), .env is loaded when present
- The audio file is uploaded through the Files API and referenced in one generate call
- The response text is written to the output file, replacing what was there`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(uploads.Cmd)
	rootCmd.AddCommand(version.Cmd)

	cliutil.AddGlobalFlags(rootCmd)
}
