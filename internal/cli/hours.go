package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/wayfarer/internal/hours"
	"github.com/pkordes/wayfarer/internal/service"
	"github.com/pkordes/wayfarer/internal/vectors"
)

// hoursOutput is the --json shape of the hours command.
type hoursOutput struct {
	PlaceID    string     `json:"place_id"`
	Name       string     `json:"name"`
	At         time.Time  `json:"at"`
	Status     string     `json:"status"`
	NextChange *string    `json:"next_change,omitempty"`
	NextAt     *time.Time `json:"next_at,omitempty"`
	Display    string     `json:"display"`
	Stale      bool       `json:"stale"`
}

func newHoursCmd(opts *options) *cobra.Command {
	var snapshotPath, placeID, at string
	cmd := &cobra.Command{
		Use:     "hours",
		Short:   "Show whether a place is open at an instant",
		Args:    cobra.NoArgs,
		GroupID: "engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			place, ok := snap.find(placeID)
			if !ok {
				return fmt.Errorf("place %q not in %s", placeID, snapshotPath)
			}

			instant := time.Now()
			if at != "" {
				if instant, err = vectors.ParseInstant(at); err != nil {
					return err
				}
			}

			report := service.EvaluateHours(place, instant)
			out := hoursOutput{
				PlaceID: place.ID,
				Name:    place.Name,
				At:      instant.In(hours.Location),
				Status:  report.Status.Kind(),
				Display: report.Display,
				Stale:   report.Stale,
			}
			if report.Next != nil {
				kind := report.Next.Type.String()
				next := report.Next.Time.In(hours.Location)
				out.NextChange, out.NextAt = &kind, &next
			}

			w := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(w, out)
			}
			printSection(w, place.Name)
			printLabelValue(w, "Status", out.Status)
			if out.NextChange != nil {
				printLabelValue(w, "Next", fmt.Sprintf("%s at %s", *out.NextChange, vectors.Minute(*out.NextAt)))
			}
			printLabelValue(w, "Display", out.Display)
			if out.Stale {
				printWarning(w, "hours were verified more than six months ago")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "YAML snapshot of places (required)")
	cmd.Flags().StringVar(&placeID, "place", "", "place id (required)")
	cmd.Flags().StringVar(&at, "at", "", "RFC 3339 instant (default now)")
	_ = cmd.MarkFlagRequired("snapshot")
	_ = cmd.MarkFlagRequired("place")
	return cmd
}
