package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"talentgate/assess/internal/store"
)

// ReportExporterJob periodically exports finalized evaluations as JSONL
// report files for downstream analytics.
type ReportExporterJob struct {
	store  *store.ResultStore
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger
}

// ExporterConfig contains configuration for the exporter job.
type ExporterConfig struct {
	Schedule      string // cron schedule, e.g. "0 2 * * *" for 2 AM daily
	ExportDir     string // directory to store exported files
	ExportEnabled bool
}

func NewReportExporterJob(resultStore *store.ResultStore, config *ExporterConfig, logger *zap.Logger) *ReportExporterJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportExporterJob{
		store:  resultStore,
		config: config,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduled export job.
func (j *ReportExporterJob) Start() error {
	if !j.config.ExportEnabled {
		j.logger.Info("report export is disabled, skipping scheduler")
		return nil
	}

	j.logger.Info("starting report exporter", zap.String("schedule", j.config.Schedule))

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if err := j.RunExport(); err != nil {
			j.logger.Error("export job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	j.cron.Start()
	return nil
}

// Stop stops the scheduled export job.
func (j *ReportExporterJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
		j.logger.Info("report exporter stopped")
	}
}

// RunExport performs a single export run: collect unexported evaluations,
// write one timestamped JSONL file, mark the records exported.
func (j *ReportExporterJob) RunExport() error {
	records, err := j.store.GetUnexportedEvaluations(0)
	if err != nil {
		return fmt.Errorf("failed to get unexported evaluations: %w", err)
	}
	if len(records) == 0 {
		j.logger.Info("no unexported evaluations found")
		return nil
	}

	jsonlData, err := j.store.ExportToJSONL(records)
	if err != nil {
		return fmt.Errorf("failed to export to JSONL: %w", err)
	}

	if err := os.MkdirAll(j.config.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("evaluation_report_%s.jsonl", timestamp)
	path := filepath.Join(j.config.ExportDir, filename)
	if err := os.WriteFile(path, jsonlData, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	recordIDs := make([]uint, len(records))
	for i, record := range records {
		recordIDs[i] = record.ID
	}
	if err := j.store.MarkExported(recordIDs); err != nil {
		return fmt.Errorf("failed to mark as exported: %w", err)
	}

	j.logger.Info("evaluation report exported",
		zap.Int("records", len(records)), zap.String("file", path))
	return nil
}
