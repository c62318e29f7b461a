package avl

import (
	"fmt"
	"regexp"
	"strconv"
)

// Case is one operating point for the solver.
type Case struct {
	Alpha float64 // angle of attack, degrees
	Beta  float64 // sideslip angle, degrees
	Mach  float64
}

func (c Case) String() string {
	return fmt.Sprintf("alpha=%.2f deg, beta=%.2f deg, M=%.2f", c.Alpha, c.Beta, c.Mach)
}

// Results holds the force and moment coefficients scraped from one solver
// run, plus the stability derivatives when the ST report was produced.
type Results struct {
	Case Case

	CL, CD, CM, CY float64
	Cl, Cn         float64 // roll and yaw moment coefficients
	SpanEff        float64 // Oswald span efficiency

	// Stability derivatives, populated only when HasDerivatives is set.
	HasDerivatives          bool
	CLa, CMa, CYb, Clb, Cnb float64
	NeutralPoint            float64
}

// LD returns the lift-to-drag ratio, or zero when drag is below resolution.
func (r Results) LD() float64 {
	if r.CD <= 1e-4 {
		return 0
	}
	return r.CL / r.CD
}

func (r Results) String() string {
	return fmt.Sprintf("%s: CL=%.4f CD=%.5f CM=%.4f L/D=%.1f", r.Case, r.CL, r.CD, r.CM, r.LD())
}

// CSV returns the record as CSV (does *not* include the new line).
func (r Results) CSV() string {
	return fmt.Sprintf("%.2f,%.2f,%.2f,%.5f,%.5f,%.5f,%.5f,%.5f,%.5f,%.1f",
		r.Case.Alpha, r.Case.Beta, r.Case.Mach, r.CL, r.CD, r.CM, r.CY, r.Cl, r.Cn, r.LD())
}

// CSVHeader matches the column order of CSV.
func CSVHeader() string {
	return "alpha,beta,mach,CL,CD,CM,CY,Cl,Cn,LD"
}

// coeffPattern matches `<token> = <float>` in a report. The word boundary
// keeps short tokens like `e` from matching inside longer ones.
func coeffPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\s*=\s*([-+]?[0-9]*\.[0-9]+)`)
}

var (
	reCLtot = coeffPattern("CLtot")
	reCDtot = coeffPattern("CDtot")
	reCmtot = coeffPattern("Cmtot")
	reCYtot = coeffPattern("CYtot")
	reCltot = coeffPattern("Cltot")
	reCntot = coeffPattern("Cntot")
	reEff   = coeffPattern("e")

	reCLa = coeffPattern("CLa")
	reCMa = coeffPattern("Cma")
	reCYb = coeffPattern("CYb")
	reClb = coeffPattern("Clb")
	reCnb = coeffPattern("Cnb")
	reXnp = coeffPattern("Xnp")
)

func scrape(re *regexp.Regexp, content string) (float64, bool) {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// parseForces scrapes the total-forces (FT) report of one case.
func parseForces(content string, c Case) Results {
	res := Results{Case: c}
	res.CL, _ = scrape(reCLtot, content)
	res.CD, _ = scrape(reCDtot, content)
	res.CM, _ = scrape(reCmtot, content)
	res.CY, _ = scrape(reCYtot, content)
	res.Cl, _ = scrape(reCltot, content)
	res.Cn, _ = scrape(reCntot, content)
	res.SpanEff, _ = scrape(reEff, content)
	return res
}

// parseStability scrapes the stability-derivatives (ST) report into res.
func parseStability(content string, res *Results) {
	res.HasDerivatives = true
	res.CLa, _ = scrape(reCLa, content)
	res.CMa, _ = scrape(reCMa, content)
	res.CYb, _ = scrape(reCYb, content)
	res.Clb, _ = scrape(reClb, content)
	res.Cnb, _ = scrape(reCnb, content)
	res.NeutralPoint, _ = scrape(reXnp, content)
}

// BestLD returns the result with the highest lift-to-drag ratio. The second
// return is false for an empty slice.
func BestLD(results []Results) (Results, bool) {
	if len(results) == 0 {
		return Results{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.LD() > best.LD() {
			best = r
		}
	}
	return best, true
}
