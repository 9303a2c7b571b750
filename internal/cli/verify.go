package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/wayfarer/internal/geo"
	"github.com/pkordes/wayfarer/internal/vectors"
)

// verifyOutput is the --json shape of one checked case.
type verifyOutput struct {
	File     string   `json:"file"`
	Kind     string   `json:"kind"`
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "verify FILE...",
		Short:   "Run hours and plan test vectors against the engines",
		Args:    cobra.MinimumNArgs(1),
		GroupID: "engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				all    []verifyOutput
				failed int
			)
			for _, path := range args {
				f, err := vectors.Load(path)
				if err != nil {
					return err
				}
				for _, r := range f.Run(geo.Calculator{}) {
					all = append(all, verifyOutput{File: path, Kind: r.Kind, Name: r.Name, Passed: r.Passed(), Failures: r.Failures})
					if !r.Passed() {
						failed++
					}
				}
			}

			w := cmd.OutOrStdout()
			if opts.json {
				if err := writeJSON(w, all); err != nil {
					return err
				}
			} else {
				for _, r := range all {
					label := fmt.Sprintf("%s %s: %s", r.File, r.Kind, r.Name)
					if r.Passed {
						printSuccess(w, label)
						continue
					}
					printFailure(w, label)
					for _, f := range r.Failures {
						printDim(w, f)
					}
				}
				_, _ = fmt.Fprintf(w, "\n%d passed, %d failed\n", len(all)-failed, failed)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d %s failed", failed, len(all), plural(len(all), "vector", "vectors"))
			}
			return nil
		},
	}
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
