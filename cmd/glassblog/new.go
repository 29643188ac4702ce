package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/glassblog/scaffold"
)

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "new <name>",
		Short:   "Create a new glassblog site",
		Example: "  glassblog new myblog\n  glassblog new sites/my-notes",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0])
		},
	}
}

func runNew(cmd *cobra.Command, name string) error {
	out := cmd.OutOrStdout()
	data := scaffold.NewData(name)

	fmt.Fprintln(out, titleStyle.Render("Creating new glassblog site: "+data.SiteName))
	fmt.Fprintln(out)
	if err := scaffold.Generate(name, data, out); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, successStyle.Render("Done!")+" Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", name)
	fmt.Fprintln(out, "  glassblog serve")
	fmt.Fprintln(out)
	fmt.Fprintln(out, dimStyle.Render("Edit data/posts.json to write posts and config.yaml to name your site."))
	return nil
}
