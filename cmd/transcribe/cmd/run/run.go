package run

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"gemini-transcriber/cmd/transcribe/cmd/cliutil"
	"gemini-transcriber/internal/app"
	apperrors "gemini-transcriber/internal/app/errors"
	"gemini-transcriber/internal/app/metrics"
	"gemini-transcriber/internal/app/progress"
	"gemini-transcriber/internal/app/transcriber"
	"gemini-transcriber/internal/app/util/files"
	"gemini-transcriber/internal/config"
)

type options struct {
	audioPath    string
	outputPath   string
	model        string
	prompt       string
	mimeType     string
	timeout      time.Duration
	metricsFile  string
	deleteUpload bool
	progress     bool
}

var opts options

func init() {
	bindFlags(Cmd.Flags(), &opts)
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.audioPath, "audio", "a", config.DefaultAudioPath, "audio file to upload")
	fs.StringVarP(&o.outputPath, "output", "o", config.DefaultOutputPath, "file the response text is written to")
	fs.StringVarP(&o.model, "model", "m", config.DefaultModel, "Gemini model")
	fs.StringVarP(&o.prompt, "prompt", "p", config.DefaultPrompt, "prompt sent before the audio")
	fs.StringVar(&o.mimeType, "mime-type", "", "declare the audio MIME type instead of sniffing it, e.g. audio/mpeg")
	fs.DurationVar(&o.timeout, "timeout", 0, "give up after this long, e.g. 2m (0 = no deadline)")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	fs.BoolVar(&o.deleteUpload, "delete-upload", false, "delete the uploaded file from the Files API after generation")
	fs.BoolVar(&o.progress, "progress", false, "show a progress bar on stderr")
}

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Upload one audio file, ask the model about it and save the answer",
	Long: `Upload one audio file, ask the model about it and save the answer

- Flags override the settings file given with --config
- The output directory is created when missing
- Exits with status 1 when any step fails`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cliutil.LoadSettings(cmd)
		if err != nil {
			return err
		}
		if err := opts.apply(cmd.Flags(), settings); err != nil {
			return err
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		logger, err := cliutil.NewLogger(cmd, settings)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return execute(cmd.Context(), cmd, settings, config.GetCredentials(), logger, opts.progress)
	},
}

// apply copies the flags that were set explicitly over the settings file.
func (o *options) apply(flags *pflag.FlagSet, s *config.Settings) error {
	if flags.Changed("audio") {
		s.AudioPath = o.audioPath
	}
	if flags.Changed("output") {
		s.OutputPath = o.outputPath
	}
	if flags.Changed("model") {
		s.Model = o.model
	}
	if flags.Changed("prompt") {
		s.Prompt = o.prompt
	}
	if flags.Changed("mime-type") {
		s.MIMEType = o.mimeType
	}
	if flags.Changed("timeout") {
		if err := config.ValidateTimeout(o.timeout, "run"); err != nil {
			return err
		}
		s.RunTimeout = o.timeout
	}
	if flags.Changed("metrics-file") {
		s.MetricsFile = o.metricsFile
	}
	if flags.Changed("delete-upload") {
		s.DeleteUpload = o.deleteUpload
	}
	return nil
}

func execute(ctx context.Context, cmd *cobra.Command, settings *config.Settings, creds config.Credentials, logger *zap.Logger, withProgress bool) error {
	if d := settings.Timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	m := metrics.New()
	defer writeMetrics(m, settings, logger)

	if err := files.EnsureParentDir(settings.OutputPath); err != nil {
		err = apperrors.Wrap(err, apperrors.KindWrite, "failed to create output directory")
		m.RecordFailure(apperrors.KindWrite)
		logger.Error("Transcription failed", zap.Stringer("kind", apperrors.KindWrite), zap.Error(err))
		return err
	}

	logger.Debug("Using API key", zap.String("source", creds.Source), zap.String("key", creds.Redacted()))
	t, cleanup, err := app.InitializeTranscriber(ctx, settings, creds, logger, m)
	if err != nil {
		m.RecordFailure(apperrors.KindOf(err))
		return err
	}
	defer cleanup()

	callOpts := []transcriber.CallOption{
		transcriber.WithModel(settings.Model),
		transcriber.WithPrompt(settings.Prompt),
		transcriber.WithDeleteUpload(settings.DeleteUpload),
	}

	pm := progress.NewManager(progress.Config{Enabled: withProgress, Writer: os.Stderr})
	bar := pm.NewStageBar(len(metrics.Stages), "transcribe")
	callOpts = append(callOpts, transcriber.WithObserver(bar))

	result, err := t.Transcribe(ctx, settings.AudioPath, settings.OutputPath, callOpts...)
	if err != nil {
		bar.Abort()
		pm.Wait()
		return err
	}
	bar.Complete()
	pm.Wait()

	fmt.Fprintf(cmd.OutOrStdout(), "Transcription saved to %s\n", result.OutputPath)
	return nil
}

func writeMetrics(m *metrics.Metrics, settings *config.Settings, logger *zap.Logger) {
	if settings.MetricsFile == "" {
		return
	}
	if err := m.WriteTextfile(settings.MetricsFile); err != nil {
		logger.Warn("Failed to write metrics file", zap.String("path", settings.MetricsFile), zap.Error(err))
	}
}
