package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/glassblog"
	"github.com/eringen/glassblog/views"
)

func newRenderCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "render [slug]",
		Short: "Print the HTML body of a post or file",
		Long: "Render writes the HTML produced for a post body to stdout.\n" +
			"Pass a slug to render a loaded post, or --file to render any text file (- reads stdin).",
		Args: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) != 1 {
				return errors.New("render needs a slug or --file")
			}
			if file != "" && len(args) > 0 {
				return errors.New("render takes a slug or --file, not both")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if file != "" {
				b, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				text = string(b)
			} else {
				post, err := postCache(cmd).GetPost(cmd.Context(), args[0])
				if errors.Is(err, glassblog.ErrNotFound) {
					return fmt.Errorf("no post with slug %q", args[0])
				}
				if err != nil {
					return err
				}
				text = post.Content
			}

			out := cmd.OutOrStdout()
			if err := views.Markdown(text).Render(cmd.Context(), out); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "render this file instead of a post")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
