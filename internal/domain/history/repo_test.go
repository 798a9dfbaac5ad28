package history

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) (*Repo, string) {
	t.Helper()
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepo(filepath.Join(dir, "prices.csv"), log), dir
}

func obs(id string, total float64) Observation {
	return Observation{
		Timestamp: time.Date(2026, 2, 8, 15, 45, 0, 0, time.UTC),
		ID:        id,
		Name:      "Кроссовки",
		Product:   total - 3,
		Logistics: 2,
		Return:    1,
		Total:     total,
		Target:    50,
	}
}

func TestInitWritesHeaderOnce(t *testing.T) {
	r, _ := newTestRepo(t)

	if err := r.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := r.Init(); err != nil {
		t.Fatalf("second init: %v", err)
	}

	rows, err := r.Rows()
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][7] != "target_price" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
}

func TestAppendFormatsDecimalComma(t *testing.T) {
	r, _ := newTestRepo(t)

	if err := r.Append(obs("111", 58.74)); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows, err := r.Rows()
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	row := rows[1]
	if row[1] != "111" {
		t.Fatalf("id column: %q", row[1])
	}
	if row[6] != "58,74" {
		t.Fatalf("total formatted with dot, want decimal comma: %q", row[6])
	}
	if row[7] != "50,00" {
		t.Fatalf("target column: %q", row[7])
	}
}

func TestAppendCreatesHeaderIfMissing(t *testing.T) {
	r, _ := newTestRepo(t)

	// Init не вызывался — Append сам заводит файл с заголовком
	if err := r.Append(obs("111", 10)); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, err := r.Rows()
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "timestamp" {
		t.Fatalf("expected header + row, got %v", rows)
	}
}

func TestRotation(t *testing.T) {
	r, dir := newTestRepo(t)
	r.maxSize = 400 // маленький порог, чтобы не писать мегабайты в тесте

	total := 0
	for i := 0; i < 20; i++ {
		if err := r.Append(obs("111", float64(50+i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		total++
	}

	archives, err := filepath.Glob(filepath.Join(dir, "prices_*.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("expected at least one rotation")
	}

	// ни одна строка не теряется: архивы + активный файл = все наблюдения
	kept := 0
	for _, name := range archives {
		ar := NewRepo(name, r.log)
		rows, err := ar.Rows()
		if err != nil {
			t.Fatalf("read archive %s: %v", name, err)
		}
		if rows[0][0] != "timestamp" {
			t.Fatalf("archive %s lost its header", name)
		}
		kept += len(rows) - 1
	}
	active, err := r.Rows()
	if err != nil {
		t.Fatalf("read active log: %v", err)
	}
	if active[0][0] != "timestamp" {
		t.Fatal("active log has no header after rotation")
	}
	kept += len(active) - 1

	if kept != total {
		t.Fatalf("rows lost in rotation: appended %d, found %d", total, kept)
	}
}

func TestRotationSingleTrigger(t *testing.T) {
	r, dir := newTestRepo(t)

	// доращиваем файл чуть выше порога и убеждаемся,
	// что следующий Append ротирует ровно один раз
	for i := 0; i < 5; i++ {
		if err := r.Append(obs("111", 50)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	r.maxSize = 1

	if err := r.Append(obs("111", 60)); err != nil {
		t.Fatalf("append after threshold: %v", err)
	}
	r.maxSize = MaxSize // возвращаем настоящий порог
	if err := r.Append(obs("111", 61)); err != nil {
		t.Fatalf("append after rotation: %v", err)
	}

	archives, err := filepath.Glob(filepath.Join(dir, "prices_*.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 1 {
		t.Fatalf("expected exactly one archive, got %d", len(archives))
	}

	active, err := r.Rows()
	if err != nil {
		t.Fatal(err)
	}
	// активный лог: заголовок + две строки, записанные после ротации
	if len(active) != 3 {
		t.Fatalf("active log after rotation: want header + 2 rows, got %d rows", len(active))
	}
}
