package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AlexZinkM/testnet-activity/internal/model"
)

const (
	filePrefix = "report_"
	fileSuffix = ".txt"

	// fixed-width nanosecond stamp so names sort lexicographically
	nameTimeLayout = "20060102T150405.000000000"

	rowTimeLayout = "2006-01-02 15:04:05"
)

// Generator renders accumulated records into timestamp-named plaintext files
// and lists them back. Files are write-once.
type Generator struct {
	dir string
	now func() time.Time
}

// NewGenerator creates a Generator writing into dir.
func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir, now: time.Now}
}

// Render produces the report text: a deployments table, an interactions
// table and the generation timestamp, one row per record in insertion order.
func Render(deployments []model.DeploymentRecord, interactions []model.InteractionRecord, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("DEPLOYMENT REPORT\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", generatedAt.Format(time.RFC3339)))

	b.WriteString("Deployments\n")
	b.WriteString(fmt.Sprintf("%-20s  %-7s  %-6s  %s\n", "TIME", "WALLET", "KIND", "ASSET"))
	for _, d := range deployments {
		b.WriteString(fmt.Sprintf("%-20s  #%-6d  %-6s  %s\n",
			d.Timestamp.Format(rowTimeLayout), d.WalletIndex, d.Kind, d.Asset))
	}
	if len(deployments) == 0 {
		b.WriteString("(none)\n")
	}

	b.WriteString("\nInteractions\n")
	b.WriteString(fmt.Sprintf("%-20s  %-7s  %-6s  %-14s  %s\n", "TIME", "WALLET", "KIND", "ACTION", "RESULT"))
	for _, i := range interactions {
		b.WriteString(fmt.Sprintf("%-20s  #%-6d  %-6s  %-14s  %s\n",
			i.Timestamp.Format(rowTimeLayout), i.WalletIndex, i.Kind, i.Action, i.Result))
	}
	if len(interactions) == 0 {
		b.WriteString("(none)\n")
	}

	return b.String()
}

// WriteReport renders the records and persists them under a unique
// timestamp-named file. Returns the file path.
func (g *Generator) WriteReport(deployments []model.DeploymentRecord, interactions []model.InteractionRecord) (string, error) {
	ts := g.now()

	var path string
	for {
		path = filepath.Join(g.dir, filePrefix+ts.Format(nameTimeLayout)+fileSuffix)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		// same-nanosecond collision, bump until free
		ts = ts.Add(time.Nanosecond)
	}

	text := Render(deployments, interactions, ts)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

// List returns the names of persisted reports, newest first. Names embed
// fixed-width timestamps, so reverse string order is reverse time order.
func (g *Generator) List() ([]string, error) {
	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		names = append(names, name)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Read returns the text of a previously persisted report.
func (g *Generator) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(g.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read report %s: %w", name, err)
	}
	return string(data), nil
}
