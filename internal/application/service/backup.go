package service

import (
	"context"
	"fmt"
	"time"

	"healthlog/internal/domain/repository"
	"healthlog/internal/pkg/logger"
	"healthlog/internal/pkg/metrics"
)

// ExportResult reports the outcome of an export. Data holds the document on success.
type ExportResult struct {
	OK      bool
	Message string
	Data    []byte
}

// BackupService exports the whole store and imports export documents into it.
type BackupService interface {
	Snapshot(ctx context.Context) (Dataset, error)
	Export(ctx context.Context) ExportResult
	Import(ctx context.Context, data []byte) ImportResult
}

type backupService struct {
	store    *repository.Store
	importer *DataImporter
	now      func() time.Time
	log      logger.Logger
	metrics  *metrics.Metrics
}

// NewBackupService creates a new instance of BackupService implementation.
func NewBackupService(store *repository.Store, now func() time.Time, log logger.Logger, m *metrics.Metrics) BackupService {
	if now == nil {
		now = time.Now
	}
	return &backupService{
		store:    store,
		importer: NewDataImporter(store, log, m),
		now:      now,
		log:      log,
		metrics:  m,
	}
}

// Snapshot reads every category. Categories are read one after another, not
// in a single transaction.
func (s *backupService) Snapshot(ctx context.Context) (Dataset, error) {
	var (
		ds  Dataset
		err error
	)
	read := func(name string, fn func() error) {
		if err != nil {
			return
		}
		if e := fn(); e != nil {
			err = fmt.Errorf("failed to read %s: %w", name, e)
		}
	}
	st := s.store
	read("meals", func() (e error) { ds.Meals, e = st.Meals.FindAll(ctx); return })
	read("symptoms", func() (e error) { ds.Symptoms, e = st.Symptoms.FindAll(ctx); return })
	read("medications", func() (e error) { ds.Medications, e = st.Medications.FindAll(ctx); return })
	read("other entries", func() (e error) { ds.OtherEntries, e = st.OtherEntries.FindAll(ctx); return })
	read("blood pressure", func() (e error) { ds.BloodPressure, e = st.BloodPressure.FindAll(ctx); return })
	read("cholesterol", func() (e error) { ds.Cholesterol, e = st.Cholesterol.FindAll(ctx); return })
	read("weight", func() (e error) { ds.Weight, e = st.Weight.FindAll(ctx); return })
	read("spo2", func() (e error) { ds.SpO2, e = st.SpO2.FindAll(ctx); return })
	read("blood glucose", func() (e error) { ds.BloodGlucose, e = st.BloodGlucose.FindAll(ctx); return })
	read("medication sets", func() (e error) { ds.MedicationSets, e = st.MedicationSets.FindAll(ctx); return })
	read("bowel movements", func() (e error) { ds.BowelMovements, e = st.BowelMovements.FindAll(ctx); return })
	if err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Export snapshots the store and encodes it.
func (s *backupService) Export(ctx context.Context) ExportResult {
	ds, err := s.Snapshot(ctx)
	if err != nil {
		s.log.Error("Failed to snapshot store for export", err)
		s.metrics.Exports.WithLabelValues("failed").Inc()
		return ExportResult{Message: "Failed to export: " + err.Error()}
	}
	data, err := Export(ds, s.now())
	if err != nil {
		s.log.Error("Failed to encode export", err)
		s.metrics.Exports.WithLabelValues("failed").Inc()
		return ExportResult{Message: "Failed to export: " + err.Error()}
	}
	s.metrics.Exports.WithLabelValues("success").Inc()
	s.log.Info(fmt.Sprintf("Exported %d records (%d bytes)", ds.Len(), len(data)))
	return ExportResult{OK: true, Message: fmt.Sprintf("Exported %d records", ds.Len()), Data: data}
}

// Import applies an export document to the store.
func (s *backupService) Import(ctx context.Context, data []byte) ImportResult {
	return s.importer.Import(ctx, data)
}
