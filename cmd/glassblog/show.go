package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/eringen/glassblog"
)

func newShowCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Preview a post in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := postCache(cmd).GetPost(cmd.Context(), args[0])
			if errors.Is(err, glassblog.ErrNotFound) {
				return fmt.Errorf("no post with slug %q", args[0])
			}
			if err != nil {
				return err
			}
			return writePrettyPost(cmd.OutOrStdout(), post, width)
		},
	}

	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	return cmd
}

// writePrettyPost renders a post with its metadata through glamour.
func writePrettyPost(w io.Writer, p glassblog.Post, width int) error {
	meta := []string{p.DisplayDate()}
	if p.Author != "" {
		meta = append([]string{"**" + p.Author + "**"}, meta...)
	}
	if p.ReadTime != "" {
		meta = append(meta, p.ReadTime)
	}
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = "`#" + strings.ToLower(t) + "`"
	}

	md := fmt.Sprintf(`# %s

> %s
>
> %s

---

%s
`, p.Title, strings.Join(meta, " | "), strings.Join(tags, " "), strings.TrimSpace(p.Content))

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
