package check

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/gabriel-vasile/mimetype"
	"github.com/myrjola/veritruth/internal/ai"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/envstruct"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/logging"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/myrjola/veritruth/internal/workspace"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Group = &cobra.Group{
	ID:    "check",
	Title: "Verification",
}

var (
	ErrNothingToCheck = errors.NewSentinel("nothing to check, pass text or --image")
	ErrNotAnImage     = errors.NewSentinel("file is not an image")
)

func init() {
	Check.Flags().String("image", "", "path to an image to verify")
	Check.Flags().Bool("json", false, "print the result as JSON")
}

var Check = &cobra.Command{
	Use:     "check [text]",
	GroupID: "check",
	Short:   "Verify a claim",
	Long: `Verifies text and/or an image with the configured analysis engine and prints the verdict.
The engine is configured with the same environment variables as the web server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, err := cmd.Flags().GetString("image")
		if err != nil {
			return errors.Wrap(err, "invalid image flag")
		}
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return errors.Wrap(err, "invalid json flag")
		}

		var cfg ai.Config
		if err = envstruct.Populate(&cfg, os.LookupEnv); err != nil {
			return errors.Wrap(err, "populate config")
		}
		ctx := cmd.Context()
		engine, err := ai.NewEngine(ctx, cfg)
		if err != nil {
			return errors.Wrap(err, "new engine")
		}
		logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			AddSource:   false,
			Level:       slog.LevelWarn,
			ReplaceAttr: nil,
		})))
		analyzer := analysis.NewAnalyzer(engine, logger, nil)
		return verify(ctx, cmd.OutOrStdout(), analyzer, strings.Join(args, " "), imagePath, asJSON)
	},
}

var Prompts = &cobra.Command{
	Use:     "prompts",
	GroupID: "check",
	Short:   "List example claims",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for i, prompt := range workspace.ExamplePrompts {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, prompt)
		}
	},
}

type analyzer interface {
	Analyze(ctx context.Context, text string, image *analysis.Image) (models.AnalysisResult, error)
}

func verify(ctx context.Context, out io.Writer, a analyzer, text, imagePath string, asJSON bool) error {
	var (
		image *analysis.Image
		err   error
	)
	if imagePath != "" {
		if image, err = readImage(imagePath); err != nil {
			return errors.Wrap(err, "read image", slog.String("path", imagePath))
		}
	}

	result, err := a.Analyze(ctx, text, image)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyInput) {
			return ErrNothingToCheck
		}
		return errors.Wrap(err, "analyze")
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err = enc.Encode(result); err != nil {
			return errors.Wrap(err, "encode result")
		}
		return nil
	}
	return writeResult(out, result)
}

func readImage(path string) (*analysis.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}
	mediaType := mimetype.Detect(data).String()
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, errors.Wrap(ErrNotAnImage, "detect media type", slog.String("media_type", mediaType))
	}
	return &analysis.Image{Data: data, MediaType: mediaType}, nil
}

func writeResult(out io.Writer, result models.AnalysisResult) error {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Verdict:     %s (%d%% confidence)\n", result.Verdict, result.Confidence)
	if result.DetectedLanguage != "" {
		_, _ = fmt.Fprintf(&b, "Language:    %s\n", result.DetectedLanguage)
	}
	_, _ = fmt.Fprintf(&b, "Explanation: %s\n", result.Explanation)
	for _, claim := range result.HighlightedClaims {
		_, _ = fmt.Fprintf(&b, "  - %s\n", claim)
	}
	_, _ = fmt.Fprintf(&b, "Action:      %s\n", result.SuggestedAction)
	_, _ = fmt.Fprintf(&b, "Cross-check: %s\n", result.LogicalCrossCheck)
	if len(result.Sources) > 0 {
		b.WriteString("Sources:\n")
		for _, s := range result.Sources {
			_, _ = fmt.Fprintf(&b, "  %s <%s>\n", s.Title, s.URL)
		}
	}
	if _, err := io.WriteString(out, b.String()); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}
