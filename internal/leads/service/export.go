package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"framtt_backend/internal/adapters/storage"
	"framtt_backend/internal/leads/repository"
	"framtt_backend/internal/leads/transport"
	"framtt_backend/platform/apperr"
)

const exportContentType = "text/csv"

var exportHeaders = []string{
	"id", "name", "email", "phone", "company", "website", "vehicleCount",
	"currentRevenue", "budget", "timeline", "decisionMaker", "source", "status",
	"score", "assignedTo", "tags", "estimatedValue", "lastContactDate", "createdAt",
}

// Exporter writes lead CSVs and optionally stores them in object storage.
type Exporter struct {
	repo   repository.LeadReader
	store  storage.ObjectStore
	bucket string
	now    func() time.Time
}

// NewExporter creates an exporter. store may be nil when object storage is
// not configured; StoreCSV then reports a bad request.
func NewExporter(repo repository.LeadReader, store storage.ObjectStore, bucket string) *Exporter {
	return &Exporter{repo: repo, store: store, bucket: bucket, now: time.Now}
}

// CanStore reports whether StoreCSV is available.
func (e *Exporter) CanStore() bool {
	return e.store != nil
}

// WriteCSV streams every lead matching the filters to w and returns the
// number of data rows written.
func (e *Exporter) WriteCSV(ctx context.Context, req transport.ListLeadsRequest, w io.Writer) (int, error) {
	params, err := listParams(req)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	rows := 0
	err = e.repo.Stream(ctx, params, func(lead repository.Lead) error {
		rows++
		return writer.Write(leadRecord(lead))
	})
	if err != nil {
		return rows, err
	}

	writer.Flush()
	return rows, writer.Error()
}

// StoreCSV renders the export, uploads it and returns a presigned download URL.
func (e *Exporter) StoreCSV(ctx context.Context, req transport.ListLeadsRequest) (transport.StoredExportResponse, error) {
	if e.store == nil {
		return transport.StoredExportResponse{}, apperr.BadRequest("export storage is not configured")
	}

	var buf bytes.Buffer
	rows, err := e.WriteCSV(ctx, req, &buf)
	if err != nil {
		return transport.StoredExportResponse{}, err
	}

	now := e.now().UTC()
	folder := "leads/" + now.Format("2006-01")
	fileName := "leads-" + now.Format("20060102T150405Z") + ".csv"

	key, err := e.store.UploadFile(ctx, e.bucket, folder, fileName, exportContentType, &buf, int64(buf.Len()))
	if err != nil {
		return transport.StoredExportResponse{}, err
	}

	presigned, err := e.store.GenerateDownloadURL(ctx, e.bucket, key)
	if err != nil {
		return transport.StoredExportResponse{}, err
	}

	return transport.StoredExportResponse{
		FileKey:     key,
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt,
		Rows:        rows,
	}, nil
}

func leadRecord(lead repository.Lead) []string {
	vehicles := ""
	if lead.VehicleCount != nil {
		vehicles = strconv.Itoa(*lead.VehicleCount)
	}
	value := ""
	if lead.EstimatedValue != nil {
		value = strconv.FormatFloat(*lead.EstimatedValue, 'f', 2, 64)
	}
	lastContact := ""
	if lead.LastContactDate != nil {
		lastContact = lead.LastContactDate.UTC().Format(time.RFC3339)
	}

	return []string{
		lead.ID.String(),
		cell(deref(lead.Name)),
		cell(deref(lead.Email)),
		deref(lead.Phone),
		cell(deref(lead.Company)),
		cell(deref(lead.Website)),
		vehicles,
		cell(deref(lead.CurrentRevenue)),
		cell(deref(lead.Budget)),
		cell(deref(lead.Timeline)),
		cell(deref(lead.DecisionMaker)),
		lead.Source,
		lead.Status,
		strconv.Itoa(lead.Score),
		cell(deref(lead.AssignedTo)),
		cell(strings.Join(lead.Tags, ";")),
		value,
		lastContact,
		lead.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// cell neutralizes spreadsheet formula prefixes in free text.
func cell(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + value
	}
	return value
}
