package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"

	"ngc-i18n/packages/core/src/config"
	"ngc-i18n/packages/core/src/render3/apply"
	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/render3/interfaces"
	"ngc-i18n/packages/core/src/util"
)

var renderCmd = &cobra.Command{
	Use:   "render [message]",
	Short: "Compile a message and render it with the given binding values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := resolveMessage(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		settings := config.LoadSettings(viper.GetViper())
		sub, _ := cmd.Flags().GetInt("sub")
		binds, _ := cmd.Flags().GetStringArray("bind")
		elements, _ := cmd.Flags().GetStringArray("element")

		values, err := parseAssignments(binds)
		if err != nil {
			return fmt.Errorf("--bind: %w", err)
		}
		tags, err := parseAssignments(elements)
		if err != nil {
			return fmt.Errorf("--element: %w", err)
		}
		locale, err := language.Parse(settings.Locale)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", settings.Locale, err)
		}

		tView, tI18n, err := compileMessage(settings, message, sub)
		if err != nil {
			return err
		}
		host := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
		lView := apply.NewLView(tView, host, apply.WithLocale(locale), apply.WithLogger(util.Log))
		block := lView.Start(tI18n)

		// Placeholder elements come from the template, which the command
		// line doesn't have: they are rendered as --element tags or <span>.
		for index := interfaces.HeaderOffset; index < tView.BindingStartIndex; index++ {
			tNode := tView.TNode(index)
			if tNode == nil || tNode.Type != interfaces.TNodeTypePlaceholder {
				continue
			}
			tag := "span"
			if t, ok := tags[index-interfaces.HeaderOffset]; ok {
				tag = t
			}
			if err := lView.AttachPlaceholder(index, apply.DOMRenderer{}.CreateElement(tag)); err != nil {
				return err
			}
		}

		bindings := make([]any, 0, len(values))
		for i := 0; i < maxKey(values)+1; i++ {
			bindings = append(bindings, values[i])
		}
		block.Update(bindings...)

		out := cmd.OutOrStdout()
		for c := host.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(out, c); err != nil {
				return err
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("bundle", "", "Translation bundle (file or http(s) URL) to read the message from")
	renderCmd.Flags().String("id", "", "Id of the message in the bundle")
	renderCmd.Flags().Int("sub", i18n.RootTemplate, "Sub-template to render (-1 for the root template)")
	renderCmd.Flags().StringArray("bind", nil, "Binding value as index=value, repeatable")
	renderCmd.Flags().StringArray("element", nil, "Tag of an element placeholder as index=tag, repeatable")
	rootCmd.AddCommand(renderCmd)
}

// parseAssignments parses index=value pairs.
func parseAssignments(assignments []string) (map[int]string, error) {
	out := make(map[int]string, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("%q is not index=value", a)
		}
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 {
			return nil, fmt.Errorf("%q: invalid index", a)
		}
		out[index] = value
	}
	return out, nil
}

func maxKey(m map[int]string) int {
	max := -1
	for k := range m {
		if k > max {
			max = k
		}
	}
	return max
}
