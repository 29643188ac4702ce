package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := postCache(cmd).ListPosts(cmd.Context(), tag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(posts) == 0 {
				fmt.Fprintln(out, dimStyle.Render("No posts found."))
				return nil
			}

			rows := make([][]string, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []string{p.Slug, p.Title, p.DisplayDate(), strings.Join(p.Tags, ", ")})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(borderStyle).
				Headers("SLUG", "TITLE", "DATE", "TAGS").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})

			fmt.Fprintln(out, t.Render())
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d post(s)", len(posts))))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only list posts with this tag")
	return cmd
}
