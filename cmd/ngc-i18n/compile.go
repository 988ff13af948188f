package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ngc-i18n/packages/core/src/cache"
	"ngc-i18n/packages/core/src/config"
	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

var compileCmd = &cobra.Command{
	Use:   "compile [message]",
	Short: "Compile a message and print its instruction streams",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.LoadSettings(viper.GetViper())
		message, err := resolveMessage(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		sub, _ := cmd.Flags().GetInt("sub")

		var store *cache.Store
		if settings.CachePath != "" {
			store, err = cache.Open(settings.CachePath)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()
		}
		return runCompile(cmd.Context(), cmd.OutOrStdout(), store, settings, message, sub)
	},
}

func init() {
	compileCmd.Flags().String("bundle", "", "Translation bundle (file or http(s) URL) to read the message from")
	compileCmd.Flags().String("id", "", "Id of the message in the bundle")
	compileCmd.Flags().Int("sub", i18n.RootTemplate, "Sub-template to compile (-1 for the root template)")
	compileCmd.Flags().String("cache", "", "SQLite database caching compiled messages")
	compileCmd.Flags().String("format", "text", "Output format: text or json")
	viper.BindPFlag("cache", compileCmd.Flags().Lookup("cache"))
	viper.BindPFlag("format", compileCmd.Flags().Lookup("format"))
	rootCmd.AddCommand(compileCmd)
}

// resolveMessage returns the message given as argument or read from --bundle.
func resolveMessage(ctx context.Context, cmd *cobra.Command, args []string) (string, error) {
	bundleLocation, _ := cmd.Flags().GetString("bundle")
	if bundleLocation == "" {
		if len(args) == 0 {
			return "", errors.New("a message or --bundle and --id are required")
		}
		return normalizeMessage(args[0]), nil
	}
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		return "", errors.New("--id is required with --bundle")
	}
	bundle, err := LoadBundle(ctx, bundleLocation)
	if err != nil {
		return "", err
	}
	if locale := bundle.Locale(); locale != "" && !cmd.Flags().Changed("locale") {
		viper.Set("locale", locale)
	}
	return bundle.Message(id)
}

// compileMessage compiles message at the first slot of a fresh view.
func compileMessage(settings config.Settings, message string, sub int) (*interfaces.TView, *interfaces.TI18n, error) {
	if settings.Decls < 0 {
		return nil, nil, fmt.Errorf("invalid declaration count %d", settings.Decls)
	}
	tView := interfaces.NewTView(settings.Decls, 0)
	compiler := i18n.NewCompiler(tView, config.WithLogger(util.Log))
	tI18n, err := compiler.I18nStart(settings.ParentIndex, interfaces.HeaderOffset, message, sub)
	if err != nil {
		return nil, nil, err
	}
	return tView, tI18n, nil
}

func runCompile(ctx context.Context, w io.Writer, store *cache.Store, settings config.Settings, message string, sub int) error {
	if settings.Format != "json" {
		if store != nil {
			util.Log.Warn("the cache only serves json output, ignoring it")
		}
		tView, tI18n, err := compileMessage(settings, message, sub)
		if err != nil {
			return err
		}
		writeText(w, tView, tI18n)
		return nil
	}

	key := cache.Key(message, sub, settings.Decls, settings.ParentIndex)
	if store != nil {
		artifact, err := store.Get(ctx, key)
		switch {
		case err == nil:
			util.Log.WithField("key", key).Debug("cache hit")
			return writeJSON(w, artifact)
		case !errors.Is(err, cache.ErrNotFound):
			return err
		}
	}

	tView, tI18n, err := compileMessage(settings, message, sub)
	if err != nil {
		return err
	}
	artifact := cache.NewArtifact(cache.ComputeMsgID(message, ""), tI18n, tView)
	if store != nil {
		if err := store.Put(ctx, key, message, artifact); err != nil {
			return fmt.Errorf("store artifact: %w", err)
		}
		util.Log.WithFields(logrus.Fields{"key": key}).Debug("cached artifact")
	}
	return writeJSON(w, artifact)
}

func writeText(w io.Writer, tView *interfaces.TView, tI18n *interfaces.TI18n) {
	fmt.Fprintf(w, "create:\n%s\n", indent(tI18n.Create.String()))
	fmt.Fprintf(w, "update:\n%s\n", indent(tI18n.Update.String()))
	icus := tView.TIcus()
	anchors := make([]int, 0, len(icus))
	for anchor := range icus {
		anchors = append(anchors, anchor)
	}
	sort.Ints(anchors)
	for _, anchor := range anchors {
		fmt.Fprintf(w, "icu %d:\n%s\n", anchor, indent(icus[anchor].String()))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
