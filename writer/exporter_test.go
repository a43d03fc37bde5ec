package writer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"energyunits/config"
	"energyunits/quantity"
)

func testExportConfig(t *testing.T) config.ExportConfig {
	t.Helper()
	return config.ExportConfig{
		Enabled:      true,
		Directory:    t.TempDir(),
		Compression:  "snappy",
		BatchSize:    100,
		FlushTimeout: time.Minute,
		Partitioning: config.PartitioningConfig{
			TimeFormat:     "{year}/{month}/{day}",
			AdditionalKeys: []string{"series"},
		},
	}
}

func findParquetFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".parquet") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking export directory: %v", err)
	}
	return files
}

func TestExportAndFlush(t *testing.T) {
	cfg := testExportConfig(t)
	e, err := NewExporter(cfg)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	sys := quantity.Default()
	sys.Advisory = nil
	q, err := sys.NewSeries([]float64{100, 250, 400}, "MWh", quantity.WithSubstance("coal"))
	if err != nil {
		t.Fatalf("new series: %v", err)
	}

	if err := e.Export("plant_output", q); err != nil {
		t.Fatalf("Export: %v", err)
	}
	e.Flush()

	files := findParquetFiles(t, cfg.Directory)
	if len(files) != 1 {
		t.Fatalf("expected 1 parquet file, got %d", len(files))
	}
	rel, err := filepath.Rel(cfg.Directory, files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(rel, "series=plant_output"+string(filepath.Separator)) {
		t.Errorf("file %q not under series partition", rel)
	}
	now := time.Now()
	wantTime := filepath.Join(
		now.Format("2006"), now.Format("01"), now.Format("02"))
	if !strings.Contains(rel, wantTime) {
		t.Errorf("file %q missing time partition %q", rel, wantTime)
	}
	info, err := os.Stat(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("parquet file is empty")
	}
}

func TestExportBatchSizeTriggersFlush(t *testing.T) {
	cfg := testExportConfig(t)
	cfg.BatchSize = 3
	e, err := NewExporter(cfg)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	sys := quantity.Default()
	sys.Advisory = nil
	q, err := sys.NewSeries([]float64{1, 2, 3, 4}, "MW")
	if err != nil {
		t.Fatalf("new series: %v", err)
	}

	if err := e.Export("load", q); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if files := findParquetFiles(t, cfg.Directory); len(files) != 1 {
		t.Fatalf("expected automatic flush at batch size, got %d files", len(files))
	}
}

func TestExportValidation(t *testing.T) {
	e, err := NewExporter(testExportConfig(t))
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	sys := quantity.Default()
	sys.Advisory = nil
	q, err := sys.New(1, "MWh")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Export("", q); err == nil {
		t.Error("expected an error for an empty series name")
	}
	if err := e.Export("x", nil); err == nil {
		t.Error("expected an error for a nil quantity")
	}
	if _, err := NewExporter(config.ExportConfig{}); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestExporterStartStop(t *testing.T) {
	cfg := testExportConfig(t)
	cfg.FlushTimeout = 10 * time.Millisecond
	e, err := NewExporter(cfg)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := e.Start(ctx); err == nil {
		t.Error("expected an error starting twice")
	}

	sys := quantity.Default()
	sys.Advisory = nil
	q, err := sys.New(42, "USD", quantity.WithReferenceYear(2020))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Export("cost", q); err != nil {
		t.Fatalf("Export: %v", err)
	}
	e.Stop()

	if files := findParquetFiles(t, cfg.Directory); len(files) == 0 {
		t.Error("expected buffered records to be flushed on stop")
	}
}
