package performance

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderInsightsPDF writes a one-page summary of the insights snapshot.
func RenderInsightsPDF(w io.Writer, insights Insights, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Team Performance Insights")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total goals: %d", insights.TotalGoals))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total employees: %d", insights.TotalEmployees))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average goals per employee: %.2f", insights.AvgGoalsPerEmployee))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average feedback per employee: %.2f", insights.AvgFeedbackPerEmployee))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Highest goal count: %d", insights.MaxGoalsPerEmployee))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Lowest goal count: %d", insights.MinGoalsPerEmployee))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Goal status breakdown")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	statuses := make([]string, 0, len(insights.GoalsByStatus))
	for status := range insights.GoalsByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	if len(statuses) == 0 {
		pdf.Cell(0, 8, "No goals recorded.")
		pdf.Ln(7)
	}
	for _, status := range statuses {
		pdf.CellFormat(60, 8, status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", insights.GoalsByStatus[status]), "1", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
