package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"

	avl "github.com/PineTreeLabs/nTop-6DOF"
)

// This tool reads an analysis scenario, reconstructs the wing from the CAD
// point exports, estimates the tails, writes the solver input files and runs
// an alpha sweep.

const defaultScenario = "~~unset~~"

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "analysis scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log every solver invocation")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	name := viper.GetString("aircraft.name")
	if name == "" {
		name = "UAV"
	}

	// Reconstruct the wing from the LE/TE point exports.
	unit, err := avl.UnitFromString(viper.GetString("geometry.units"))
	if err != nil {
		log.Fatalf("geometry.units: %s", err)
	}
	le := readPoints(viper.GetString("geometry.le_points"), unit)
	te := readPoints(viper.GetString("geometry.te_points"), unit)
	wing, err := avl.ResolveSurface(le, te)
	if err != nil {
		log.Fatalf("could not resolve wing geometry: %s", err)
	}
	fmt.Printf("Wing: %s\n", wing)

	// Tail estimation by volume coefficient, scenario-overridable.
	hSizing := avl.DefaultHorizontalSizing()
	if v := viper.GetFloat64("tail.vh"); v > 0 {
		hSizing.VolumeCoeff = v
	}
	if f := viper.GetFloat64("tail.arm_factor"); f > 0 {
		hSizing.MomentArmFactor = f
	}
	hTail, err := avl.EstimateTail(wing, hSizing, avl.Horizontal)
	if err != nil {
		log.Fatalf("horizontal tail estimation failed: %s", err)
	}
	vSizing := avl.DefaultVerticalSizing()
	if v := viper.GetFloat64("tail.vv"); v > 0 {
		vSizing.VolumeCoeff = v
	}
	if f := viper.GetFloat64("tail.arm_factor"); f > 0 {
		vSizing.MomentArmFactor = f
	}
	vTail, err := avl.EstimateTail(wing, vSizing, avl.Vertical)
	if err != nil {
		log.Fatalf("vertical tail estimation failed: %s", err)
	}
	fmt.Printf("%s\n%s\n", hTail, vTail)

	outDir := viper.GetString("output.dir")
	if outDir == "" {
		outDir = "."
	}
	if err = os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("could not create %s: %s", outDir, err)
	}

	// Mass properties, when the CAD export is available.
	massFile := ""
	if massCSV := viper.GetString("mass.csv"); massCSV != "" {
		mf, err := os.Open(massCSV)
		if err != nil {
			log.Fatalf("could not open %s: %s", massCSV, err)
		}
		props, err := avl.ReadMassCSV(mf)
		mf.Close()
		if err != nil {
			log.Fatalf("could not read mass properties: %s", err)
		}
		fmt.Printf("Mass: %s\n", props)
		massFile = filepath.Join(outDir, name+".mass")
		writeFile(massFile, func(w *os.File) error { return props.WriteMassFile(w, name) })
	}

	// Emit the geometry file.
	ac := avl.Aircraft{
		Name: name,
		Mach: viper.GetFloat64("run.mach"),
		CG:   [3]float64{viper.GetFloat64("aircraft.cg_x"), viper.GetFloat64("aircraft.cg_y"), viper.GetFloat64("aircraft.cg_z")},
		Surfaces: []avl.NamedSurface{
			{Name: "Wing", Geometry: wing, Airfoil: viper.GetString("geometry.airfoil")},
			{Name: "Horizontal Tail", Geometry: hTail.SurfaceGeometry, Control: &avl.ControlSurface{Name: "elevator", HingeFraction: 0.7, SignDup: 1}},
			{Name: "Vertical Tail", Geometry: vTail.SurfaceGeometry, Control: &avl.ControlSurface{Name: "rudder", HingeFraction: 0.7, SignDup: -1}},
		},
	}
	geomFile := filepath.Join(outDir, name+".avl")
	writeFile(geomFile, func(w *os.File) error { return avl.WriteGeometryFile(w, ac) })
	fmt.Printf("Geometry written to %s\n", geomFile)

	exe := viper.GetString("avl.executable")
	if exe == "" {
		log.Println("no avl.executable configured, stopping after file generation")
		return
	}

	var klog kitlog.Logger
	if verbose {
		klog = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
		klog = kitlog.With(klog, "cmd", "avlsweep")
	}
	runner, err := avl.NewRunner(exe, klog)
	if err != nil {
		log.Fatalf("%s", err)
	}

	alphas := sweepRange()
	timeout := viper.GetDuration("run.timeout")
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	results, err := runner.AlphaSweep(ctx, geomFile, massFile, alphas, viper.GetFloat64("run.beta"), viper.GetFloat64("run.mach"))
	if err != nil {
		log.Fatalf("sweep failed after %d case(s): %s", len(results), err)
	}

	fmt.Printf("%8s  %8s  %8s  %8s  %8s\n", "Alpha", "CL", "CD", "CM", "L/D")
	for _, r := range results {
		fmt.Printf("%8.1f  %8.4f  %8.5f  %8.4f  %8.1f\n", r.Case.Alpha, r.CL, r.CD, r.CM, r.LD())
	}
	if best, ok := avl.BestLD(results); ok {
		fmt.Printf("\nBest L/D = %.1f at alpha = %.1f deg (CL=%.4f, CD=%.5f)\n", best.LD(), best.Case.Alpha, best.CL, best.CD)
	}

	resultsFile := filepath.Join(outDir, name+"-sweep.csv")
	writeFile(resultsFile, func(w *os.File) error {
		if _, err := fmt.Fprintln(w, avl.CSVHeader()); err != nil {
			return err
		}
		for _, r := range results {
			if _, err := fmt.Fprintln(w, r.CSV()); err != nil {
				return err
			}
		}
		return nil
	})
	fmt.Printf("Results written to %s\n", resultsFile)
}

func readPoints(path string, unit avl.Unit) avl.PointSequence {
	if path == "" {
		log.Fatal("scenario is missing a point file path")
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("could not open %s: %s", path, err)
	}
	defer f.Close()
	seq, err := avl.ReadPointsCSV(f, unit, avl.SpanY)
	if err != nil {
		log.Fatalf("%s: %s", path, err)
	}
	return seq
}

func writeFile(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("could not create %s: %s", path, err)
	}
	defer f.Close()
	if err = write(f); err != nil {
		log.Fatalf("could not write %s: %s", path, err)
	}
}

func sweepRange() []float64 {
	start := viper.GetFloat64("run.alpha_start")
	stop := viper.GetFloat64("run.alpha_stop")
	step := viper.GetFloat64("run.alpha_step")
	if step <= 0 {
		step = 1
	}
	if stop < start {
		log.Fatalf("run.alpha_stop (%g) is below run.alpha_start (%g)", stop, start)
	}
	var alphas []float64
	for a := start; a <= stop+1e-9; a += step {
		alphas = append(alphas, a)
	}
	return alphas
}
