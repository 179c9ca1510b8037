package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/opengraph/content"
	"github.com/eringen/opengraph/site"
	"github.com/eringen/opengraph/views"
)

type articleTags struct {
	Slug   string            `json:"slug"`
	URL    string            `json:"url"`
	Status content.Status    `json:"status"`
	Tags   []content.MetaTag `json:"tags"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Annotate every article and draft and print their tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, store, err := ctx.open()
			if err != nil {
				return err
			}
			defer store.Close()

			gen, annotateErr, err := ctx.generate(cmd.Context(), store, settings, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if annotateErr != nil && strict {
				return annotateErr
			}

			articles := gen.All()
			if jsonOutput {
				out := make([]articleTags, 0, len(articles))
				for _, a := range articles {
					out = append(out, articleTags{Slug: a.Slug, URL: a.URL, Status: a.Status, Tags: a.OGTags})
				}
				return writeJSON(cmd, out)
			}
			for _, a := range articles {
				if a.OGTags == nil {
					continue
				}
				printTags(cmd, a)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any article cannot be annotated")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print the tags of one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.annotated(cmd, args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, articleTags{Slug: a.Slug, URL: a.URL, Status: a.Status, Tags: a.OGTags})
			}
			printTags(cmd, a)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHeadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "head <slug>",
		Short: "Render one article's tags as <meta> elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.annotated(cmd, args[0])
			if err != nil {
				return err
			}
			return views.OGMeta(a.OGTags).Render(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Remove a post from the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := ctx.open()
			if err != nil {
				return err
			}
			defer store.Close()

			slug := args[0]
			if _, err := store.GetPost(cmd.Context(), slug); err != nil {
				return postError(slug, err)
			}
			if err := store.DeletePost(cmd.Context(), slug); err != nil {
				return fmt.Errorf("delete %q: %w", slug, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", slug)
			return nil
		},
	}
}

// annotated checks that slug is stored, runs a pass and returns its article,
// failing when the article could not be annotated.
func (c *commandContext) annotated(cmd *cobra.Command, slug string) (*content.Article, error) {
	settings, store, err := c.open()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if _, err := store.GetPost(cmd.Context(), slug); err != nil {
		return nil, postError(slug, err)
	}
	gen, annotateErr, err := c.generate(cmd.Context(), store, settings, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	a, ok := gen.Article(slug)
	if !ok {
		return nil, fmt.Errorf("no article %q", slug)
	}
	if a.OGTags == nil {
		if annotateErr != nil {
			return nil, annotateErr
		}
		return nil, fmt.Errorf("article %q was not annotated", slug)
	}
	return a, nil
}

func postError(slug string, err error) error {
	if errors.Is(err, site.ErrNotFound) {
		return fmt.Errorf("no article %q", slug)
	}
	return fmt.Errorf("load %q: %w", slug, err)
}
