package pricestate

import (
	"log/slog"

	"github.com/Spok95/wb-price-bot/internal/infra/jsonstore"
)

// Repo хранит состояния всех товаров одним JSON-объектом: артикул -> State.
type Repo struct {
	path string
	log  *slog.Logger
}

func NewRepo(path string, log *slog.Logger) *Repo {
	return &Repo{path: path, log: log}
}

func (r *Repo) load() map[string]State {
	full := map[string]State{}
	if err := jsonstore.Load(r.path, &full); err != nil {
		if !jsonstore.IsNotExist(err) {
			r.log.Error("state file unreadable, resetting to empty", "path", r.path, "err", err)
		}
		return map[string]State{}
	}
	return full
}

// Get возвращает состояние товара; если записи нет — нулевое
// (in_alert=false, цена и время отсутствуют).
func (r *Repo) Get(id string) State {
	return r.load()[id]
}

// Merge накладывает patch поверх существующей записи и сохраняет.
// Запись целиком не перезаписывается: поля, не заданные в patch,
// сохраняют прежние значения.
func (r *Repo) Merge(id string, patch Patch) error {
	full := r.load()
	st := full[id]

	if patch.LastPrice != nil {
		st.LastPrice = patch.LastPrice
	}
	if patch.LastCheckTime != nil {
		st.LastCheckTime = *patch.LastCheckTime
	}
	if patch.InAlert != nil {
		st.InAlert = *patch.InAlert
	}

	full[id] = st
	return jsonstore.Save(r.path, full)
}

// Delete убирает запись о товаре (вызывается при удалении подписки,
// чтобы в state не копились осиротевшие артикулы).
func (r *Repo) Delete(id string) error {
	full := r.load()
	if _, ok := full[id]; !ok {
		return nil
	}
	delete(full, id)
	return jsonstore.Save(r.path, full)
}
