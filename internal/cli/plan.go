package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/geo"
	"github.com/pkordes/wayfarer/internal/plan"
	"github.com/pkordes/wayfarer/internal/vectors"
)

// planRequest is the YAML request file. Candidates come from the snapshot,
// restricted to Region when it is set; "now" defaults to the current time.
type planRequest struct {
	Region            string `yaml:"region"`
	vectors.PlanInput `yaml:",inline"`
}

// planOutput is the --json shape of the plan command.
type planOutput struct {
	Stops        []domain.PlanStop `json:"stops"`
	TotalMinutes int               `json:"total_minutes"`
	Cost         domain.CostRange  `json:"cost"`
	Warnings     []string          `json:"warnings"`
}

func newPlanCmd(opts *options) *cobra.Command {
	var snapshotPath, requestPath string
	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Build a day itinerary from a snapshot",
		Args:    cobra.NoArgs,
		GroupID: "engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			var req planRequest
			if err := decodeYAMLFile(requestPath, &req); err != nil {
				return fmt.Errorf("request: %w", err)
			}
			if req.Now == "" {
				req.Now = time.Now().Format(time.RFC3339)
			}

			in, err := req.Input()
			if err != nil {
				return err
			}
			in.Candidates = snap.region(req.Region)

			out := plan.New(geo.Calculator{}).Generate(in)

			w := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(w, planOutput{
					Stops:        out.Stops,
					TotalMinutes: out.TotalMinutes,
					Cost:         out.Cost,
					Warnings:     out.Warnings,
				})
			}

			printSection(w, fmt.Sprintf("Plan for %d minutes from %s", in.AvailableMinutes, vectors.Minute(in.Now)))
			if len(out.Stops) == 0 {
				printDim(w, "no stops")
			} else {
				names := make(map[string]string, len(in.Candidates))
				for _, p := range in.Candidates {
					names[p.ID] = p.Name
				}
				rows := make([][]string, 0, len(out.Stops))
				for i, s := range out.Stops {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						names[s.PlaceID],
						vectors.Minute(s.ArrivalTime),
						vectors.Minute(s.DepartureTime),
						strconv.Itoa(s.TravelMinutesFromPrevious),
						strconv.Itoa(s.VisitMinutes),
					})
				}
				printTable(w, []string{"#", "Place", "Arrive", "Leave", "Walk", "Visit"}, rows)
			}
			printLabelValue(w, "Total", fmt.Sprintf("%d min", out.TotalMinutes))
			printLabelValue(w, "Cost", fmt.Sprintf("%d-%d MAD", out.Cost.Min, out.Cost.Max))
			for _, warning := range out.Warnings {
				printWarning(w, warning)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "YAML snapshot of places (required)")
	cmd.Flags().StringVar(&requestPath, "request", "", "YAML plan request (required)")
	_ = cmd.MarkFlagRequired("snapshot")
	_ = cmd.MarkFlagRequired("request")
	return cmd
}
