// File: internal/report/console.go
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/voxarm/voxarm-cli/api/schemas"
	"github.com/voxarm/voxarm-cli/internal/ledger"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Console renders user-facing pipeline output. Services log through zap;
// everything a human operator is meant to read goes through here.
type Console struct {
	out io.Writer
}

// NewConsole writes rendered output to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Banner prints the startup header.
func (c *Console) Banner(version string) {
	fmt.Fprintln(c.out, titleStyle.Render("voxarm - voice-controlled robotic grasping"))
	fmt.Fprintln(c.out, dimStyle.Render("version "+version))
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Commands:")
	fmt.Fprintln(c.out, "  pick <object>   pick up an object")
	fmt.Fprintln(c.out, "  place           put the held object down")
	fmt.Fprintln(c.out, "  show            scan the scene")
	fmt.Fprintln(c.out, "  stop            shut the system down")
	fmt.Fprintln(c.out)
}

// Understood echoes the resolved intent.
func (c *Console) Understood(intent schemas.Intent) {
	target := intent.Object
	if target == "" {
		target = "-"
	}
	fmt.Fprintf(c.out, "%s %s %s (confidence %.2f)\n",
		okStyle.Render("understood:"), intent.Action, target, intent.Confidence)
}

// Misunderstood reports an uninterpretable or failed capture.
func (c *Console) Misunderstood() {
	fmt.Fprintln(c.out, warnStyle.Render("Could not understand command. Please try again."))
}

// Scan renders a scene-scan result.
func (c *Console) Scan(res schemas.ScanResult) {
	if !res.OK() {
		fmt.Fprintln(c.out, failStyle.Render("Failed to scan scene: "+res.Error))
		return
	}

	fmt.Fprintln(c.out, sectionStyle.Render("Scan results"))
	fmt.Fprintf(c.out, "  objects detected: %d\n", res.TotalObjects)
	fmt.Fprintf(c.out, "  graspable:        %d\n", res.GraspableCount)
	for _, det := range res.Graspable {
		fmt.Fprintf(c.out, "    - %s (confidence %.2f)\n", det.Class, det.Confidence)
	}
}

// ActionOutcome reports a finished pick or place.
func (c *Console) ActionOutcome(res schemas.ActionResult, duration float64) {
	name := string(res.Action)
	if res.Object != "" {
		name += " " + res.Object
	}
	if res.OK() {
		fmt.Fprintf(c.out, "%s %s (took %.1fs)\n", okStyle.Render("done:"), name, duration)
		return
	}
	fmt.Fprintf(c.out, "%s %s: %s\n", failStyle.Render("failed:"), name, res.Error)
}

// Unsupported reports an action the coordinator has no handler for.
func (c *Console) Unsupported(action schemas.Action) {
	fmt.Fprintln(c.out, warnStyle.Render("Action not supported: "+string(action)))
}

// ObjectMissing reports a failed object search.
func (c *Console) ObjectMissing(target string) {
	fmt.Fprintln(c.out, failStyle.Render("Could not find "+target))
}

// Stopping prints the shutdown notice.
func (c *Console) Stopping() {
	fmt.Fprintln(c.out, warnStyle.Render("Stopping system..."))
}

// Performance renders the full ledger report: aggregates, per-object table
// and recommendations.
func (c *Console) Performance(rep ledger.Report) {
	fmt.Fprintln(c.out, titleStyle.Render("Performance statistics"))
	fmt.Fprintf(c.out, "  total actions: %d\n", rep.Overall.TotalActions)
	fmt.Fprintf(c.out, "  successful:    %d\n", rep.Overall.SuccessfulActions)
	fmt.Fprintf(c.out, "  failed:        %d\n", rep.Overall.FailedActions)
	fmt.Fprintf(c.out, "  success rate:  %.1f%%\n", rep.Overall.SuccessRate)

	if len(rep.Objects) > 0 {
		fmt.Fprintln(c.out, sectionStyle.Render("Per-object performance"))
		for _, obj := range rep.Objects {
			fmt.Fprintf(c.out, "  %-12s attempts %-3d success rate %.1f%%\n",
				obj.Name, obj.Attempts, obj.SuccessRate)
		}
	}

	if len(rep.Recommendations) > 0 {
		fmt.Fprintln(c.out, sectionStyle.Render("Recommendations"))
		for _, rec := range rep.Recommendations {
			fmt.Fprintf(c.out, "  %s\n", rec)
		}
	}
}
