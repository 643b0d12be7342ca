package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/dds/pkg/qosprofile"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles <file>",
		Short: "List the QoS profiles defined in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := qosprofile.LoadFile(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRELIABILITY\tDURABILITY\tHISTORY\tDEPTH\tMAX_SAMPLES")
			for _, name := range profiles.Names() {
				q, err := profiles.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
					name, q.Reliability, q.Durability, q.History, q.Depth, q.MaxSamples)
			}
			return tw.Flush()
		},
	}
}
