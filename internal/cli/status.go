package cli

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/githooks/internal/bootstrap"
	"github.com/Veraticus/githooks/internal/output"
	"github.com/Veraticus/githooks/internal/shared"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of every hook slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			in, err := a.installer(s)
			if err != nil {
				return err
			}
			events, err := in.Status(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				shared.Echo(w, 0, 0, shared.DimStyle.Render("No hook events defined or installed."))
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, e := range events {
				defined := "no"
				if e.Defined {
					defined = "yes"
				}
				rows = append(rows, []string{e.Event, defined, slotCell(e.Hook), slotCell(e.Mirror)})
			}
			output.Table(w, []string{"Event", "Defined", "Hook", "Mirror"}, rows)
			return nil
		},
	}
}

func slotCell(st bootstrap.SlotStatus) string {
	if st.Detail == "" {
		return string(st.State)
	}
	return string(st.State) + " (" + st.Detail + ")"
}
