package checker

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler гоняет проходы по таймеру. Интервал можно менять на лету
// (команда /interval). Проходы не накладываются: цикл строго
// последовательный, следующий тик ждёт завершения текущего прохода.
type Scheduler struct {
	checker  *Checker
	log      *slog.Logger
	interval time.Duration
	change   chan time.Duration
}

func NewScheduler(c *Checker, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		checker:  c,
		log:      log,
		interval: interval,
		change:   make(chan time.Duration, 1),
	}
}

// SetInterval просит цикл перейти на новый период со следующего тика.
func (s *Scheduler) SetInterval(d time.Duration) {
	select {
	case s.change <- d:
	default:
		// предыдущая смена ещё не подхвачена — заменяем её
		select {
		case <-s.change:
		default:
		}
		s.change <- d
	}
}

// Run блокирует до отмены ctx. Первый проход — сразу, не дожидаясь тика.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", "interval", s.interval)
	s.checker.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case d := <-s.change:
			s.interval = d
			ticker.Reset(d)
			s.log.Info("scheduler interval changed", "interval", d)
		case <-ticker.C:
			s.checker.Run(ctx)
		}
	}
}
