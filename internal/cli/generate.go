package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/wire"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	var projectID, instructions string
	var images []string

	cmd := &cobra.Command{
		Use:   "generate [story-id]",
		Short: "Generate test cases for a story via the configured LLM",
		Long:  "Ask the configured completion endpoint for a test case set covering the story. Any previously generated cases for the story are replaced, including manual edits.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			project := resolveProject(projectID)
			if project == "" {
				return fmt.Errorf("no project specified\nHint: use --project or set a default with 'testdeck config set-project'")
			}

			req := primary.GenerateRequest{
				ProjectID:          project,
				StoryID:            args[0],
				CustomInstructions: instructions,
			}
			for _, path := range images {
				img, err := readImage(path)
				if err != nil {
					return err
				}
				req.Images = append(req.Images, img)
			}

			result, err := wire.GenerationService().GenerateTestCases(ctx, req)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if result.Replaced > 0 {
				fmt.Printf("Replaced %d prior test case(s)\n", result.Replaced)
			}
			fmt.Printf("✓ Generated %d test cases for %s:\n", len(result.TestCases), result.StoryID)
			for _, tc := range result.TestCases {
				fmt.Printf("  %s  [%s]  %s\n", tc.ID, tc.Priority, tc.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID")
	cmd.Flags().StringVarP(&instructions, "instructions", "i", "", "Extra instructions for the generator")
	cmd.Flags().StringArrayVar(&images, "image", nil, "Image file to attach, e.g. a UI mockup (repeatable)")
	return cmd
}

// readImage loads an attachment and infers its media type from the
// file extension.
func readImage(path string) (primary.GenerateImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return primary.GenerateImage{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	var mediaType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		mediaType = "image/png"
	case ".jpg", ".jpeg":
		mediaType = "image/jpeg"
	case ".gif":
		mediaType = "image/gif"
	case ".webp":
		mediaType = "image/webp"
	default:
		return primary.GenerateImage{}, fmt.Errorf("unsupported image type %s (want png, jpg, gif or webp)", path)
	}

	return primary.GenerateImage{MediaType: mediaType, Data: data}, nil
}
