package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

// handleExport собирает текущий CSV истории в xlsx и шлёт файлом.
// Числовые колонки конвертируются в числа, чтобы в Excel сразу работали
// сортировка и формулы.
func (b *Bot) handleExport(chatID int64) {
	rows, err := b.history.Rows()
	if err != nil {
		b.log.Error("export: history read failed", "err", err)
		b.reply(chatID, "⚠️ История пока пуста или недоступна.")
		return
	}
	if len(rows) <= 1 {
		b.reply(chatID, "📭 В истории ещё нет наблюдений.")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				continue
			}
			// колонки 4-8 — цены (см. заголовок CSV)
			if i > 0 && j >= 3 {
				if num, err := strconv.ParseFloat(strings.Replace(val, ",", ".", 1), 64); err == nil {
					_ = f.SetCellValue(sheet, cell, num)
					continue
				}
			}
			_ = f.SetCellValue(sheet, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.log.Error("export: xlsx build failed", "err", err)
		b.reply(chatID, "⚠️ Не удалось сформировать файл.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("prices_%s.xlsx", time.Now().Format("20060102_150405")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("📊 История цен: %d наблюдений", len(rows)-1)
	b.send(doc)
}
