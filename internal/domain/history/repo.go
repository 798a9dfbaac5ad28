package history

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
	"github.com/Spok95/wb-price-bot/internal/infra/metrics"
)

// MaxSize — порог ротации лога. 5 МБ — это примерно 50-70 тысяч строк.
const MaxSize = 5 * 1024 * 1024

var header = []string{
	"timestamp",
	"id",
	"name",
	"product_price",
	"logistics",
	"return",
	"total_price",
	"target_price",
}

// Repo — история цен: CSV с разделителем ';', только дозапись.
// Когда файл дорастает до maxSize, он переименовывается в архив с меткой
// времени, и история продолжается в новом файле с заголовком.
type Repo struct {
	path    string
	maxSize int64
	log     *slog.Logger
}

func NewRepo(path string, log *slog.Logger) *Repo {
	return &Repo{path: path, maxSize: MaxSize, log: log}
}

// Path — путь к актуальному файлу истории (нужен команде /export).
func (r *Repo) Path() string { return r.path }

// Init создаёт файл с заголовком, если его ещё нет. Вызывается на старте.
func (r *Repo) Init() error {
	if fi, err := os.Stat(r.path); err == nil && fi.Size() > 0 {
		return nil
	}
	return r.writeHeader()
}

func (r *Repo) writeHeader() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", r.path, err)
	}
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (r *Repo) rotateIfNeeded() error {
	fi, err := os.Stat(r.path)
	if err != nil {
		return nil // файла ещё нет — ротация не нужна
	}
	if fi.Size() < r.maxSize {
		return nil
	}

	stamp := fi.ModTime().Format("20060102_150405")
	base := strings.TrimSuffix(r.path, filepath.Ext(r.path))
	archive := fmt.Sprintf("%s_%s%s", base, stamp, filepath.Ext(r.path))
	for n := 1; ; n++ {
		if _, err := os.Stat(archive); err != nil {
			break
		}
		// две ротации в одну секунду не должны затирать друг друга
		archive = fmt.Sprintf("%s_%s_%d%s", base, stamp, n, filepath.Ext(r.path))
	}
	if err := os.Rename(r.path, archive); err != nil {
		return fmt.Errorf("rotate %s: %w", r.path, err)
	}
	metrics.HistoryRotationsTotal.Inc()
	r.log.Info("history rotated", "from", r.path, "to", archive)
	return r.writeHeader()
}

// Append дописывает одну строку наблюдения. Перед записью проверяет порог
// ротации; после ротации заводит новый файл с заголовком.
func (r *Repo) Append(obs Observation) error {
	if err := r.rotateIfNeeded(); err != nil {
		return err
	}
	if fi, err := os.Stat(r.path); err != nil || fi.Size() == 0 {
		if err := r.writeHeader(); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	defer func() { _ = f.Close() }()

	name := obs.Name
	if name == "" {
		name = subscriptions.DefaultName
	}

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write([]string{
		obs.Timestamp.Format("2006-01-02 15:04:05"),
		obs.ID,
		name,
		fmtDecimal(obs.Product),
		fmtDecimal(obs.Logistics),
		fmtDecimal(obs.Return),
		fmtDecimal(obs.Total),
		fmtDecimal(obs.Target),
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Rows читает актуальный лог целиком (заголовок + строки).
func (r *Repo) Rows() ([][]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rd := csv.NewReader(f)
	rd.Comma = ';'
	return rd.ReadAll()
}

// fmtDecimal — формат под Excel: два знака, запятая вместо точки.
func fmtDecimal(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}
