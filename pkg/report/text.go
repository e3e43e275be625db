package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"gonum.org/v1/gonum/mat"

	"github.com/ajitpratap0/envprobe/pkg/bytesize"
	"github.com/ajitpratap0/envprobe/pkg/errors"
	"github.com/ajitpratap0/envprobe/pkg/montecarlo"
	"github.com/ajitpratap0/envprobe/pkg/stack"
	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

// Greeting is the text at the centre of the banner.
const Greeting = "Hello, World!"

// Text writes the human-readable report one section at a time, so a slow
// section never holds back output that is already known. Write errors are
// sticky: after the first one every call is a no-op and Err reports it.
type Text struct {
	w   io.Writer
	err error

	header lipgloss.Style
	banner lipgloss.Style
	label  lipgloss.Style
}

// NewText returns a text writer. With color false the output is plain
// ASCII.
func NewText(w io.Writer, color bool) *Text {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}
	// lipgloss re-detects the profile from the environment unless it is
	// set explicitly.
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	return &Text{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		label:  r.NewStyle().Bold(true),
	}
}

// Err returns the first write error, if any.
func (t *Text) Err() error {
	if t.err == nil {
		return nil
	}
	return errors.Wrap(t.err, errors.ErrorTypeOutput, "failed to write report")
}

func (t *Text) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *Text) section(title string) {
	rule := strings.Repeat("=", 40)
	t.printf("%s\n", t.header.Render(rule+" "+title+" "+rule))
}

func (t *Text) heading(title string) {
	t.printf("\n%s\n", t.label.Render(title))
}

// Banner prints the decorated greeting.
func (t *Text) Banner() {
	rule := strings.Repeat("=", 60)
	stars := strings.Repeat("*", 20)
	t.printf("\n%s\n", rule)
	t.printf("%s\n", t.banner.Render(stars+" "+Greeting+" "+stars))
	t.printf("Welcome to the envprobe environment check\n")
	t.printf("%s\n\n", rule)
}

// System prints the host report. Every disk in rep gets its own block.
func (t *Text) System(rep *sysinfo.Report) {
	t.section("System Information")
	h := rep.Host
	t.printf("System: %s\n", h.System)
	t.printf("Node Name: %s\n", h.Node)
	t.printf("Release: %s\n", h.Release)
	t.printf("Version: %s\n", h.Version)
	t.printf("Machine: %s\n", h.Machine)
	t.printf("Processor: %s\n", h.Processor)

	t.section("CPU Info")
	c := rep.CPU
	t.printf("Physical cores: %d\n", c.PhysicalCores)
	t.printf("Total cores: %d\n", c.LogicalCores)
	t.printf("Max Frequency: %.2fMhz\n", c.Frequency.Max)
	t.printf("Min Frequency: %.2fMhz\n", c.Frequency.Min)
	t.printf("Current Frequency: %.2fMhz\n", c.Frequency.Current)
	t.printf("CPU Usage Per Core:\n")
	for i, pct := range c.PerCore {
		t.printf("Core %d: %.1f%%\n", i, pct)
	}
	t.printf("Total CPU Usage: %.1f%%\n", c.Total)

	t.section("Memory Information")
	m := rep.Memory
	t.printf("Total: %s\n", bytesize.FormatUint(m.Total))
	t.printf("Available: %s\n", bytesize.FormatUint(m.Available))
	t.printf("Used: %s\n", bytesize.FormatUint(m.Used))
	t.printf("Percentage: %.1f%%\n", m.Percent)

	t.section("Disk Information")
	for _, d := range rep.Disks {
		t.printf("=== Device: %s ===\n", d.Device)
		t.printf("  Mountpoint: %s\n", d.Mountpoint)
		t.printf("  File system type: %s\n", d.FSType)
		t.printf("  Total Size: %s\n", bytesize.FormatUint(d.Total))
		t.printf("  Used: %s\n", bytesize.FormatUint(d.Used))
		t.printf("  Free: %s\n", bytesize.FormatUint(d.Free))
		t.printf("  Percentage: %.1f%%\n", d.Percent)
	}
}

// Stack prints library versions and the tabular and array smoke tests.
func (t *Text) Stack(rep *stack.Report) {
	v := rep.Versions
	t.printf("Go version: %s (%s)\n", v.Go, v.Platform)
	t.printf("Gonum version: %s\n", v.Gonum)
	t.printf("Arrow version: %s\n", v.Arrow)
	t.printf("Gopsutil version: %s\n", v.Gopsutil)

	t.heading("Table Tests:")
	t.printf("Table:\n%s", rep.Table.Text)
	t.heading("Table info:")
	t.printf("%s", rep.Table.Info)
	t.heading("Table description:")
	if rep.Table.Describe != nil {
		t.printf("%s", rep.Table.Describe.String())
	}
	t.heading("Group by operation:")
	t.printf("%s", rep.Table.GroupByText)

	t.heading("Array Tests:")
	vec := rep.Arrays.Vector
	t.printf("1D array:\n%v\n", vec.Values)
	t.printf("Array mean: %v\n", vec.Mean)
	t.printf("Array sum: %v\n", vec.Sum)
	t.printf("Array standard deviation: %v\n", vec.Std)

	grid := rep.Arrays.Matrix
	t.heading("2D array:")
	t.printf("%s\n", formatMatrix(grid.Values))
	t.printf("Shape: (%d, %d)\n", grid.Rows, grid.Cols)
	t.printf("Sum of all elements: %v\n", grid.Total)
	t.printf("Sum along rows: %v\n", grid.RowSums)
	t.printf("Sum along columns: %v\n", grid.ColSums)

	t.heading("Array operations:")
	t.printf("Matrix multiplication:\n%s\n", formatMatrix(grid.Product))
}

// Pi prints a Monte-Carlo result.
func (t *Text) Pi(res *montecarlo.Result) {
	t.heading("Pi Estimation Test:")
	t.printf("Iterations: %s\n", humanize.Comma(int64(res.Iterations)))
	t.printf("Estimated value of pi: %v\n", res.Estimate)
	t.printf("Actual value of pi: %v\n", res.Reference)
	t.printf("Difference: %v\n", res.Difference)
	t.printf("Time taken: %.2f seconds\n", res.Elapsed.Seconds())
}

// formatMatrix renders rows in gonum's bracketed matrix layout. Empty
// input renders as an empty string.
func formatMatrix(rows [][]float64) string {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ""
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return fmt.Sprintf("%v", mat.Formatted(m, mat.Squeeze()))
}
