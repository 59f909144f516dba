package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/clickaway/internal/errors"
	"github.com/vango-dev/clickaway/pkg/protocol"
)

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decode HEX",
		Short:   "Decode a hex-encoded event frame",
		Example: `  clickaway decode 01030268330a14`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				return errors.New("E201").WithDetail("frame is not valid hex").Wrap(err)
			}
			ev, err := protocol.DecodeEvent(raw)
			if err != nil {
				return errors.New("E201").Wrap(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seq=%d type=%s hid=%q", ev.Seq, ev.Type, ev.HID)
			if ev.Type.IsPointer() {
				fmt.Fprintf(cmd.OutOrStdout(), " x=%d y=%d", ev.ClientX, ev.ClientY)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
