package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/AlexZinkM/testnet-activity/internal/model"
)

// Runner is the orchestration entry point the menu drives.
type Runner interface {
	Run(ctx context.Context, kind model.AssetKind) error
	Records() ([]model.DeploymentRecord, []model.InteractionRecord)
}

// ReportStore persists and lists report files.
type ReportStore interface {
	WriteReport(deployments []model.DeploymentRecord, interactions []model.InteractionRecord) (string, error)
	List() ([]string, error)
	Read(name string) (string, error)
}

// Menu is the text front end binding operator choices to the orchestrator,
// settings and report store.
type Menu struct {
	in       *bufio.Reader
	out      io.Writer
	runner   Runner
	reports  ReportStore
	settings *model.Settings
	eof      bool
}

// New creates a Menu reading choices from in and writing prompts to out.
func New(in io.Reader, out io.Writer, runner Runner, reports ReportStore, settings *model.Settings) *Menu {
	return &Menu{
		in:       bufio.NewReader(in),
		out:      out,
		runner:   runner,
		reports:  reports,
		settings: settings,
	}
}

// Run shows the main menu until the operator exits. Returns the process
// exit code.
func (m *Menu) Run(ctx context.Context) int {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintln(m.out, "=== Testnet Activity Runner ===")

	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "1. Run deployment & interactions")
		fmt.Fprintln(m.out, "2. Settings")
		fmt.Fprintln(m.out, "3. Generate report")
		fmt.Fprintln(m.out, "4. View previous reports")
		fmt.Fprintln(m.out, "5. Exit")

		switch m.promptInt("Choose an option: ") {
		case 1:
			m.runDeployment(ctx)
		case 2:
			m.editSettings()
		case 3:
			m.generateReport()
		case 4:
			m.viewReports()
		case 5:
			fmt.Fprintln(m.out, "Bye.")
			return 0
		default:
			if m.eof {
				// stdin closed, nothing left to prompt for
				return 1
			}
			fmt.Fprintln(m.out, "Invalid choice, enter 1-5.")
		}
	}
}

func (m *Menu) runDeployment(ctx context.Context) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "1. Fungible token")
	fmt.Fprintln(m.out, "2. NFT")

	var kind model.AssetKind
	switch m.promptInt("Asset kind: ") {
	case 1:
		kind = model.KindToken
	case 2:
		kind = model.KindNFT
	default:
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}

	if err := m.runner.Run(ctx, kind); err != nil {
		color.New(color.FgRed).Fprintf(m.out, "Run finished with error: %v\n", err)
		return
	}
	color.New(color.FgGreen).Fprintln(m.out, "Run complete.")
}

func (m *Menu) editSettings() {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintf(m.out, "1. Interactions per wallet (current: %d)\n", m.settings.InteractionCount)
		fmt.Fprintf(m.out, "2. Delay between interactions in minutes (current: %d)\n", m.settings.IntervalMinutes)
		fmt.Fprintln(m.out, "3. Back")

		switch m.promptInt("Choose a setting: ") {
		case 1:
			n := m.promptInt("New interaction count: ")
			if n < 1 {
				fmt.Fprintln(m.out, "Count must be at least 1.")
				continue
			}
			m.settings.InteractionCount = n
		case 2:
			n := m.promptInt("New delay in minutes: ")
			if n < 0 {
				fmt.Fprintln(m.out, "Delay cannot be negative.")
				continue
			}
			m.settings.IntervalMinutes = n
		case 3:
			return
		default:
			if m.eof {
				return
			}
			fmt.Fprintln(m.out, "Invalid choice.")
		}
	}
}

func (m *Menu) generateReport() {
	deployments, interactions := m.runner.Records()
	path, err := m.reports.WriteReport(deployments, interactions)
	if err != nil {
		color.New(color.FgRed).Fprintf(m.out, "Failed to generate report: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Report written to %s\n", path)
}

func (m *Menu) viewReports() {
	names, err := m.reports.List()
	if err != nil {
		color.New(color.FgRed).Fprintf(m.out, "Failed to list reports: %v\n", err)
		return
	}
	if len(names) == 0 {
		fmt.Fprintln(m.out, "No reports yet.")
		return
	}

	fmt.Fprintln(m.out)
	for i, name := range names {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, name)
	}

	choice := m.promptInt("Report to display: ")
	if choice < 1 || choice > len(names) {
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}

	text, err := m.reports.Read(names[choice-1])
	if err != nil {
		color.New(color.FgRed).Fprintf(m.out, "Failed to read report: %v\n", err)
		return
	}
	fmt.Fprintln(m.out)
	fmt.Fprint(m.out, text)
}

// promptInt reads one line and parses it as an integer; returns -1 on
// anything unparseable so callers fall through to their invalid branch.
func (m *Menu) promptInt(prompt string) int {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		m.eof = true
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1
	}
	return n
}
