package subscriptions

import (
	"errors"
	"log/slog"

	"github.com/Spok95/wb-price-bot/internal/infra/jsonstore"
)

var ErrEmptyID = errors.New("subscriptions: empty id")

// Repo хранит подписки в JSON-файле (упорядоченный список).
type Repo struct {
	path string
	log  *slog.Logger
}

func NewRepo(path string, log *slog.Logger) *Repo {
	return &Repo{path: path, log: log}
}

// List возвращает все подписки в порядке добавления.
// Отсутствующий или битый файл — пустой список, не ошибка.
func (r *Repo) List() []Subscription {
	var subs []Subscription
	if err := jsonstore.Load(r.path, &subs); err != nil {
		if !jsonstore.IsNotExist(err) {
			r.log.Error("subscriptions file unreadable, resetting to empty", "path", r.path, "err", err)
		}
		return nil
	}
	return subs
}

// Upsert добавляет подписку или обновляет target/name существующей.
// Дубликатов по ID не бывает.
func (r *Repo) Upsert(item Subscription) error {
	if item.ID == "" {
		return ErrEmptyID
	}
	if item.Name == "" {
		item.Name = DefaultName
	}

	subs := r.List()
	for i := range subs {
		if subs[i].ID == item.ID {
			subs[i].Target = item.Target
			if item.Name != DefaultName {
				subs[i].Name = item.Name
			}
			if err := jsonstore.Save(r.path, subs); err != nil {
				return err
			}
			r.log.Info("subscription updated", "id", item.ID, "target", subs[i].Target)
			return nil
		}
	}

	subs = append(subs, item)
	if err := jsonstore.Save(r.path, subs); err != nil {
		return err
	}
	r.log.Info("subscription added", "id", item.ID, "target", item.Target)
	return nil
}

// Remove удаляет подписку по ID. Отсутствие записи — не ошибка.
func (r *Repo) Remove(id string) error {
	subs := r.List()
	kept := subs[:0:0]
	for _, s := range subs {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if kept == nil {
		kept = []Subscription{}
	}
	if err := jsonstore.Save(r.path, kept); err != nil {
		return err
	}
	r.log.Info("subscription removed", "id", id, "before", len(subs), "after", len(kept))
	return nil
}
