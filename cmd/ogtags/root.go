package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/opengraph"
	"github.com/eringen/opengraph/signals"
	"github.com/eringen/opengraph/site"
)

type commandContext struct {
	configPath string
	dbPath     string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "ogtags",
		Short:         "Open Graph tags for pubengine articles",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "pelicanconf.toml", "Site settings file (TOML)")
	rootCmd.PersistentFlags().StringVar(&ctx.dbPath, "db", "data/blog.db", "Posts database path")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log every annotated article")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newHeadCommand(ctx))
	rootCmd.AddCommand(newDeleteCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func (c *commandContext) newLogger(prefix string, out io.Writer) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(out)
	l.SetHeader("${level} ${prefix}")
	l.SetLevel(log.WARN)
	if c.verbose {
		l.SetLevel(log.DEBUG)
	}
	return l
}

// open loads the settings file and opens the posts database.
func (c *commandContext) open() (site.Settings, *site.Store, error) {
	settings, _, err := site.LoadSettings(c.configPath)
	if err != nil {
		return site.Settings{}, nil, err
	}
	store, err := site.NewStore(c.dbPath)
	if err != nil {
		return site.Settings{}, nil, fmt.Errorf("open store: %w", err)
	}
	return settings, store, nil
}

// generate runs one generation pass with the Open Graph annotator registered.
// Annotation failures are returned as annotateErr so callers can still print
// the articles that succeeded; any other failure is err.
func (c *commandContext) generate(ctx context.Context, store *site.Store, settings site.Settings, logOut io.Writer) (gen *site.Generator, annotateErr error, err error) {
	bus := signals.NewBus()
	opengraph.Register(bus, settings, opengraph.WithLogger(c.newLogger("opengraph", logOut)))

	gen = site.NewGenerator(store, settings, bus, site.WithLogger(c.newLogger("site", logOut)))
	if err := gen.Generate(ctx); err != nil {
		if errors.Is(err, opengraph.ErrMissingCategory) {
			return gen, err, nil
		}
		return nil, nil, err
	}
	return gen, nil, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ogtags version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ogtags %s\n", version)
			return nil
		},
	}
}
