package avl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	kitlog "github.com/go-kit/kit/log"
)

// Runner drives the AVL executable as a black-box process: it feeds a
// scripted interactive session on stdin, waits under the caller's context,
// and scrapes the report files the solver writes.
type Runner struct {
	exePath string
	logger  kitlog.Logger
}

// NewRunner validates the executable path. A nil logger silences the runner.
func NewRunner(exePath string, logger kitlog.Logger) (*Runner, error) {
	if _, err := os.Stat(exePath); err != nil {
		return nil, fmt.Errorf("AVL executable not found: %s", err)
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Runner{exePath: exePath, logger: logger}, nil
}

// commandScript builds the interactive session driving one analysis case.
// File arguments are relative to the solver working directory. Blank lines
// confirm prompts and return to the OPER menu.
func commandScript(geomFile, massFile string, c Case, outPrefix string) string {
	cmds := []string{"LOAD", geomFile}
	if massFile != "" {
		cmds = append(cmds, "MASS", massFile)
	}
	cmds = append(cmds, "OPER")
	cmds = append(cmds, "A", fmt.Sprintf("A %g", c.Alpha), "")
	if c.Beta != 0 {
		cmds = append(cmds, "B", fmt.Sprintf("B %g", c.Beta), "")
	}
	if c.Mach > 0 {
		cmds = append(cmds, "M", fmt.Sprintf("M %g", c.Mach), "")
	}
	cmds = append(cmds, "X", "")
	cmds = append(cmds, "FT", outPrefix+".ft", "")
	cmds = append(cmds, "ST", outPrefix+".st", "")
	cmds = append(cmds, "QUIT", "")
	return strings.Join(cmds, "\n")
}

// RunCase runs a single analysis case and scrapes the FT and ST reports.
// The context bounds the solver process; on expiry or cancellation the
// process is killed and reaped before RunCase returns. A missing forces
// report is an error, a missing stability report is not.
func (r *Runner) RunCase(ctx context.Context, geomFile, massFile string, c Case) (Results, error) {
	dir := filepath.Dir(geomFile)
	base := filepath.Base(geomFile)
	prefix := strings.TrimSuffix(base, filepath.Ext(base)) + fmt.Sprintf("_a%+05.1f", c.Alpha)
	ftPath := filepath.Join(dir, prefix+".ft")
	stPath := filepath.Join(dir, prefix+".st")
	// AVL refuses to overwrite report files; stale ones from a previous run
	// must also never be scraped as fresh results.
	os.Remove(ftPath)
	os.Remove(stPath)

	massBase := ""
	if massFile != "" {
		massBase = filepath.Base(massFile)
	}
	cmd := exec.CommandContext(ctx, r.exePath)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(commandScript(base, massBase, c, prefix))
	r.logger.Log("run", base, "alpha", c.Alpha, "beta", c.Beta, "mach", c.Mach)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return Results{}, fmt.Errorf("AVL run aborted: %s", ctx.Err())
		}
		return Results{}, fmt.Errorf("AVL execution failed: %s (%s)", err, firstLine(out))
	}

	content, err := os.ReadFile(ftPath)
	if err != nil {
		return Results{}, fmt.Errorf("AVL did not produce the forces report %s: %s", ftPath, err)
	}
	res := parseForces(string(content), c)
	if st, err := os.ReadFile(stPath); err == nil {
		parseStability(string(st), &res)
	}
	return res, nil
}

// AlphaSweep runs one case per angle of attack and collects the results.
// The cases already run are returned alongside the first error.
func (r *Runner) AlphaSweep(ctx context.Context, geomFile, massFile string, alphas []float64, beta, mach float64) ([]Results, error) {
	results := make([]Results, 0, len(alphas))
	for _, alpha := range alphas {
		res, err := r.RunCase(ctx, geomFile, massFile, Case{Alpha: alpha, Beta: beta, Mach: mach})
		if err != nil {
			return results, err
		}
		r.logger.Log("alpha", alpha, "CL", fmt.Sprintf("%.4f", res.CL), "CD", fmt.Sprintf("%.5f", res.CD))
		results = append(results, res)
	}
	return results, nil
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
