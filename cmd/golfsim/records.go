package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/export"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/storage"
	"github.com/san-kum/golfsim/internal/viz"
)

const (
	profileWidth  = 800
	profileHeight = 240
)

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	z, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid z: %w", err)
	}
	c, err := cfg.Classifier()
	if err != nil {
		return err
	}
	fmt.Println(c.Classify(mgl64.Vec3{x, 0, z}))
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	presets := config.Presets()
	for _, kind := range []string{"shots", "courses", "balls"} {
		fmt.Printf("%s:\n", kind)
		for _, name := range presets[kind] {
			switch kind {
			case "shots":
				s, _ := config.GetShot(name)
				fmt.Printf("  %-8s %s\n", name, s.Description)
			case "balls":
				b := config.DefaultConfig().Ball.Catalog[name]
				fmt.Printf("  %-8s %s (speed x%.2f, spin x%.2f)\n", name, b.Name, b.SpeedMult, b.SpinMult)
			default:
				fmt.Printf("  %s\n", name)
			}
		}
	}
	defaults := physics.DefaultParams()
	values := defaults.GetParams()
	fmt.Println("params:")
	for _, name := range physics.ParamNames() {
		fmt.Printf("  %-17s %g\n", name, values[name])
	}
	return nil
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listShots(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	records, err := st.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no shots")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCOURSE\tBALL\tDISTANCE\tCARRY\tOUTCOME")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.1f\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Course, r.Ball, r.Distance, r.Carry, r.Outcome)
	}
	return w.Flush()
}

func showShot(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s  %s\n", rec.ID, rec.Course, rec.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println(viz.ResultCard(rec.Result, rec.Metrics))
	fmt.Println()
	fmt.Println(viz.PlotTrajectory(samples, 60, 10))
	fmt.Println()
	fmt.Println(viz.PlotLateral(samples, 60, 5))

	if svgFile != "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		course := cfg.Course
		if c := config.GetCourse(rec.Course); c != nil {
			course = *c
		}
		if err := writePlan(svgFile, course.Extents, course.Zones, samples); err != nil {
			return err
		}
		fmt.Printf("\nplan written to %s\n", svgFile)
	}
	if profileFile != "" {
		f, err := os.Create(profileFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.ProfileSVG(f, profileWidth, profileHeight, samples); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("profile written to %s\n", profileFile)
	}
	return nil
}

func exportShots(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := st.ExportJSON(w, args...); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "exported %s to %s\n", shotCount(args), outFile)
	}
	return nil
}

func shotCount(ids []string) string {
	if len(ids) == 0 {
		return "all shots"
	}
	return strings.Join(ids, ", ")
}
