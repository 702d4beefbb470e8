package feedback

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
)

// fetchExportRows loads every submission with its author for export, oldest
// first so exports read chronologically.
func fetchExportRows() ([]AdminFeedback, error) {
	feedbacks := []AdminFeedback{}
	err := config.DB.Select(&feedbacks, `
		SELECT f.id, f.is_anonymous, f.category, f.message, f.status, f.created_at, f.updated_at,
			CASE WHEN f.is_anonymous OR u.id IS NULL THEN 'Anonymous' ELSE u.name END AS user_name,
			CASE WHEN f.is_anonymous OR u.id IS NULL THEN '' ELSE u.email END AS user_email
		FROM feedback f
		LEFT JOIN users u ON u.id = f.user_id
		ORDER BY f.created_at ASC
	`)
	return feedbacks, err
}

// ExportFeedbackCSVHandler streams every submission as a CSV download.
func ExportFeedbackCSVHandler(c echo.Context) error {
	log := logger.Get().WithComponent("feedback")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	feedbacks, err := fetchExportRows()
	if err != nil {
		log.Error("Failed to fetch feedback for CSV export", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export feedback.",
			err,
		))
	}

	var buf bytes.Buffer
	if err := writeCSV(&buf, feedbacks); err != nil {
		log.Error("Failed to write CSV export", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export feedback.",
			err,
		))
	}

	log.Info("Feedback exported as CSV", logger.Count(len(feedbacks)))

	filename := fmt.Sprintf("feedback_%s.csv", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func writeCSV(buf *bytes.Buffer, feedbacks []AdminFeedback) error {
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Message", "Category", "Status", "User Name", "User Email", "Created At"}); err != nil {
		return err
	}
	for _, fb := range feedbacks {
		record := []string{
			fb.Message,
			fb.Category,
			fb.Status,
			fb.UserName,
			fb.UserEmail,
			fb.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ExportFeedbackPDFHandler renders every submission into a tabular PDF
// download.
func ExportFeedbackPDFHandler(c echo.Context) error {
	log := logger.Get().WithComponent("feedback")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	feedbacks, err := fetchExportRows()
	if err != nil {
		log.Error("Failed to fetch feedback for PDF export", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export feedback.",
			err,
		))
	}

	var buf bytes.Buffer
	if err := writePDF(&buf, feedbacks); err != nil {
		log.Error("Failed to write PDF export", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export feedback.",
			err,
		))
	}

	log.Info("Feedback exported as PDF", logger.Count(len(feedbacks)))

	filename := fmt.Sprintf("feedback_%s.pdf", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func writePDF(buf *bytes.Buffer, feedbacks []AdminFeedback) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Feedback Report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Suggestion Box - Feedback Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d submissions", time.Now().Format("02 Jan 2006 15:04"), len(feedbacks)))
	pdf.Ln(10)

	headers := []string{"ID", "Submitted By", "Category", "Status", "Submitted At", "Message"}
	widths := []float64{12, 45, 28, 28, 36, 128}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, fb := range feedbacks {
		message := fb.Message
		if len(message) > 90 {
			message = message[:87] + "..."
		}
		row := []string{
			fmt.Sprintf("%d", fb.ID),
			fb.UserName,
			fb.Category,
			fb.Status,
			fb.CreatedAt.Format("02 Jan 2006 15:04"),
			message,
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(buf)
}
