// Package writer exports conversion results as partitioned parquet files.
package writer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"energyunits/config"
	"energyunits/logger"
	"energyunits/quantity"
)

// Record is the parquet row layout for an exported quantity value.
type Record struct {
	Series    string  `parquet:"name=series, type=BYTE_ARRAY, convertedtype=UTF8"`
	Index     int32   `parquet:"name=index, type=INT32"`
	Value     float64 `parquet:"name=value, type=DOUBLE"`
	Unit      string  `parquet:"name=unit, type=BYTE_ARRAY, convertedtype=UTF8"`
	Substance string  `parquet:"name=substance, type=BYTE_ARRAY, convertedtype=UTF8"`
	Basis     string  `parquet:"name=basis, type=BYTE_ARRAY, convertedtype=UTF8"`
	RefYear   int32   `parquet:"name=ref_year, type=INT32"`
	Timestamp int64   `parquet:"name=timestamp, type=INT64"`
}

// memoryFileWriter implements source.ParquetFile over a byte buffer so the
// parquet library never touches the filesystem directly.
type memoryFileWriter struct {
	buffer *bytes.Buffer
}

func newMemoryFileWriter() *memoryFileWriter {
	return &memoryFileWriter{buffer: &bytes.Buffer{}}
}

func (mfw *memoryFileWriter) Create(name string) (source.ParquetFile, error) {
	return mfw, nil
}

func (mfw *memoryFileWriter) Open(name string) (source.ParquetFile, error) {
	return mfw, nil
}

func (mfw *memoryFileWriter) Seek(offset int64, whence int) (int64, error) {
	return int64(mfw.buffer.Len()), nil
}

func (mfw *memoryFileWriter) Read(b []byte) (int, error) {
	return mfw.buffer.Read(b)
}

func (mfw *memoryFileWriter) Write(b []byte) (int, error) {
	return mfw.buffer.Write(b)
}

func (mfw *memoryFileWriter) Close() error {
	return nil
}

func (mfw *memoryFileWriter) Bytes() []byte {
	return mfw.buffer.Bytes()
}

// Exporter buffers records per series and flushes each buffer as one
// parquet file under the configured directory.
type Exporter struct {
	config      config.ExportConfig
	ctx         context.Context
	wg          *sync.WaitGroup
	mu          sync.Mutex
	running     bool
	log         *logger.Log
	buffer      map[string][]Record
	flushTicker *time.Ticker
	quit        chan struct{}
}

// NewExporter constructs an Exporter with the given export settings.
func NewExporter(cfg config.ExportConfig) (*Exporter, error) {
	if cfg.Directory == "" {
		return nil, fmt.Errorf("export directory is not configured")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 30 * time.Second
	}
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create export directory: %w", err)
	}
	return &Exporter{
		config: cfg,
		wg:     &sync.WaitGroup{},
		log:    logger.GetLogger(),
		buffer: make(map[string][]Record),
	}, nil
}

// Start launches the background flush worker.
func (e *Exporter) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("exporter already running")
	}
	e.running = true
	e.ctx = ctx
	e.quit = make(chan struct{})
	e.flushTicker = time.NewTicker(e.config.FlushTimeout)
	e.mu.Unlock()

	e.wg.Add(1)
	go e.flushWorker()

	e.log.WithComponent("exporter").WithFields(logger.Fields{
		"directory":   e.config.Directory,
		"compression": e.config.Compression,
		"batch_size":  e.config.BatchSize,
	}).Info("exporter started")
	return nil
}

// Stop flushes remaining buffers and waits for the worker to exit.
func (e *Exporter) Stop() {
	e.mu.Lock()
	running := e.running
	e.running = false
	e.mu.Unlock()

	if e.flushTicker != nil {
		e.flushTicker.Stop()
	}
	if running {
		close(e.quit)
		e.wg.Wait()
	}
	e.flushBuffers("shutdown")
	e.log.WithComponent("exporter").Info("exporter stopped")
}

// Export buffers every value of a quantity under a series name. A full
// buffer is flushed immediately.
func (e *Exporter) Export(series string, q *quantity.Quantity) error {
	if series == "" {
		return fmt.Errorf("series name must not be empty")
	}
	if q == nil {
		return fmt.Errorf("quantity must not be nil")
	}
	now := time.Now().UnixMilli()
	year, _ := q.ReferenceYear()
	values := q.Values()
	records := make([]Record, 0, len(values))
	for i, v := range values {
		records = append(records, Record{
			Series:    series,
			Index:     int32(i),
			Value:     v,
			Unit:      q.Unit(),
			Substance: q.Substance(),
			Basis:     q.Basis().String(),
			RefYear:   int32(year),
			Timestamp: now,
		})
	}

	e.mu.Lock()
	e.buffer[series] = append(e.buffer[series], records...)
	full := len(e.buffer[series]) >= e.config.BatchSize
	e.mu.Unlock()

	if full {
		e.flushBuffers("batch_size")
	}
	return nil
}

func (e *Exporter) flushWorker() {
	defer e.wg.Done()

	log := e.log.WithComponent("exporter").WithFields(logger.Fields{"worker": "flush"})
	log.Info("starting flush worker")

	for {
		select {
		case <-e.ctx.Done():
			log.Info("flush worker stopped due to context cancellation")
			return
		case <-e.quit:
			log.Info("flush worker stopped")
			return
		case <-e.flushTicker.C:
			e.flushBuffers("interval")
		}
	}
}

// Flush writes out all buffered records regardless of batch size.
func (e *Exporter) Flush() {
	e.flushBuffers("manual")
}

func (e *Exporter) flushBuffers(reason string) {
	e.mu.Lock()
	buffers := e.buffer
	e.buffer = make(map[string][]Record)
	e.mu.Unlock()

	if len(buffers) == 0 {
		return
	}

	e.log.WithComponent("exporter").WithFields(logger.Fields{
		"flushed_buffers": len(buffers),
		"reason":          reason,
	}).Info("flushing buffers")

	for series, records := range buffers {
		if len(records) == 0 {
			continue
		}
		if err := e.writeBatch(series, records); err != nil {
			e.log.WithComponent("exporter").WithError(err).WithFields(logger.Fields{
				"series": series,
			}).Error("failed to write batch")
		}
	}
}

func (e *Exporter) writeBatch(series string, records []Record) error {
	batchID := uuid.New().String()
	path := e.batchPath(series, batchID, time.Now())

	log := e.log.WithComponent("exporter").WithFields(logger.Fields{
		"batch_id":     batchID,
		"series":       series,
		"record_count": len(records),
		"path":         path,
	})

	data, err := e.createParquetFile(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create partition directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write parquet file: %w", err)
	}

	log.WithFields(logger.Fields{"file_size": len(data)}).Info("batch written")
	return nil
}

// batchPath builds the partitioned file path for one batch.
func (e *Exporter) batchPath(series, batchID string, ts time.Time) string {
	var parts []string
	for _, k := range e.config.Partitioning.AdditionalKeys {
		switch k {
		case "series":
			parts = append(parts, fmt.Sprintf("series=%s", series))
		case "date":
			parts = append(parts, fmt.Sprintf("date=%s", ts.Format("2006-01-02")))
		}
	}

	timeFormat := e.config.Partitioning.TimeFormat
	if timeFormat != "" {
		timePath := strings.ReplaceAll(timeFormat, "{year}", fmt.Sprintf("%04d", ts.Year()))
		timePath = strings.ReplaceAll(timePath, "{month}", fmt.Sprintf("%02d", ts.Month()))
		timePath = strings.ReplaceAll(timePath, "{day}", fmt.Sprintf("%02d", ts.Day()))
		timePath = strings.ReplaceAll(timePath, "{hour}", fmt.Sprintf("%02d", ts.Hour()))
		parts = append(parts, timePath)
	}

	filename := fmt.Sprintf("%s_%s_%s.parquet",
		series,
		ts.UTC().Format("20060102150405"),
		batchID[:8])

	return filepath.Join(append([]string{e.config.Directory}, append(parts, filename)...)...)
}

func (e *Exporter) createParquetFile(records []Record) ([]byte, error) {
	fw := newMemoryFileWriter()

	pw, err := writer.NewParquetWriter(fw, new(Record), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	switch e.config.Compression {
	case "snappy":
		pw.CompressionType = parquet.CompressionCodec_SNAPPY
	case "gzip":
		pw.CompressionType = parquet.CompressionCodec_GZIP
	case "lzo":
		pw.CompressionType = parquet.CompressionCodec_LZO
	default:
		pw.CompressionType = parquet.CompressionCodec_UNCOMPRESSED
	}

	for _, record := range records {
		if err := pw.Write(record); err != nil {
			pw.WriteStop()
			return nil, fmt.Errorf("failed to write parquet record: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("failed to finalize parquet writing: %w", err)
	}

	return fw.Bytes(), nil
}
