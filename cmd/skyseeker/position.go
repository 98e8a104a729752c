package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
	"github.com/spf13/cobra"

	"github.com/litescript/skyseeker/internal/catalog"
	"github.com/litescript/skyseeker/internal/sky"
	"github.com/litescript/skyseeker/internal/visibility"
)

var (
	atFlag     string
	windowFlag bool
)

var positionCmd = &cobra.Command{
	Use:   "position <id>...",
	Short: "Print the azimuth and altitude of catalog bodies",
	Long: `Print the azimuth and altitude of the named bodies, for example
"Mars", "Moon", "Sun" or "HR 2061".

Examples:
  skyseeker position --lon 14.42 --lat 50.08 Mars Moon "HR 2061"
  skyseeker position --at 2025-10-14T01:30:00Z Sun
  skyseeker position --window --lat 51.5 Sun Moon`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPosition,
}

func init() {
	positionCmd.Flags().StringVar(&atFlag, "at", "", "UTC instant in RFC 3339 (default now)")
	positionCmd.Flags().BoolVar(&windowFlag, "window", false, "Also print rise, transit and set over the following 24 hours")
}

func runPosition(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	at := time.Now().UTC()
	if atFlag != "" {
		if at, err = time.Parse(time.RFC3339, atFlag); err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
	}
	t, err := sky.FromTime(at)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	header := "ID\tNAME\tAZIMUTH\tALTITUDE\t"
	if windowFlag {
		header += "RISE\tTRANSIT\tSET\tMAX\t"
	}
	fmt.Fprintln(tw, header)

	var failed int
	for _, id := range args {
		pos, err := e.catalog.Position(id, e.observer, t, e.eo)
		switch {
		case errors.Is(err, catalog.ErrBodyNotFound):
			e.log.Debug("Unknown body %q", id)
			fmt.Fprintf(os.Stderr, "%s: not in catalog\n", id)
			failed++
			continue
		case err != nil:
			fmt.Fprintf(os.Stderr, "%s: %v\n", id, err)
			failed++
			continue
		}

		b, _ := e.catalog.Get(id)
		fmt.Fprintf(tw, "%s\t%s\t%v\t%v\t", id, b.DisplayName(),
			sexa.FmtAngle(unit.AngleFromDeg(pos.Azimuth)),
			sexa.FmtAngle(unit.AngleFromDeg(pos.Altitude)))
		if windowFlag {
			samples, err := visibility.SampleSpan(e.pipeline, b, e.observer, e.eo, at, windowSpan, windowStep)
			if err != nil {
				return err
			}
			w, err := visibility.RiseSet(samples)
			if err != nil {
				return err
			}
			fmt.Fprint(tw, formatWindow(w))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bodies could not be positioned", failed, len(args))
	}
	return nil
}

const (
	windowSpan = 24 * time.Hour
	windowStep = 10 * time.Minute
)

func formatWindow(w visibility.Window) string {
	clock := func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format("15:04")
	}
	switch {
	case w.NeverUp:
		return "never up\t\t\t\t"
	case w.AlwaysUp:
		return fmt.Sprintf("-\t%s\t-\t%.1f°\t", clock(w.Transit), w.MaxAltitude)
	}
	return fmt.Sprintf("%s\t%s\t%s\t%.1f°\t", clock(w.Rise), clock(w.Transit), clock(w.Set), w.MaxAltitude)
}
