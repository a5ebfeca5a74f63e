package view

import (
	"fmt"
	"time"
)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate форматирует дату создания для списка.
// Локаль id: "19 Oktober 2026 pukul 14.05", en: "October 19, 2026 at 02:05 PM".
// Время выводится в зоне t, перевод в локальную зону делает вызывающий код.
func FormatDate(t time.Time, locale string) string {
	if locale == "en" {
		return t.Format("January 2, 2006 at 03:04 PM")
	}
	return fmt.Sprintf("%d %s %d pukul %02d.%02d",
		t.Day(), indonesianMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
