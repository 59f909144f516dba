package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/clickaway/internal/demo"
	"github.com/vango-dev/clickaway/pkg/dom"
	"github.com/vango-dev/clickaway/pkg/server"
	"github.com/vango-dev/clickaway/pkg/vango"
)

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate type:target...",
		Short: "Replay interactions against the demo page",
		Long: `Mount the demo page in-process and dispatch each interaction in order,
printing the dropdown state after each one.

Targets: document, #id, a hydration ID (h5), tag=data-value (li=Edit),
or a tag name (button).`,
		Example: `  clickaway simulate click:button mousedown:li=Edit mousedown:#text`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := cfg.Logger(os.Stderr)

			interactions := make([]demo.Interaction, 0, len(args))
			for _, arg := range args {
				in, err := demo.ParseInteraction(arg)
				if err != nil {
					return err
				}
				interactions = append(interactions, in)
			}

			defer vango.ReleaseGoroutine()

			var page *demo.Page
			session := server.NewSession(func(doc dom.EventTarget) vango.Component {
				page = demo.NewPage(doc, logger)
				return page
			}, logger)
			defer session.Close()

			steps, err := demo.Run(cmd.Context(), session, page, interactions)
			out := cmd.OutOrStdout()
			for _, st := range steps {
				fmt.Fprintf(out, "%-24s hid=%-4s open=%-5t selected=%q dismissed=%d\n",
					st.Interaction, st.HID, st.Open, st.Selected, st.Dismissed)
			}
			if err != nil {
				return err
			}
			success(cmd, "%d interactions replayed", len(steps))
			return nil
		},
	}
	return cmd
}
