package main

import (
	"github.com/spf13/cobra"

	"provq/internal/files"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List image files in the crate",
	Long: `List every file entity with an image media type, guessed from its
encodingFormat or, failing that, its name extension.`,
	Args: cobra.NoArgs,
	RunE: runImages,
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	images := files.ImageFiles(ws.crate)
	return ws.print(images, map[string]interface{}{
		"type":   "ImageFiles",
		"images": images,
	})
}
