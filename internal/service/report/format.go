package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"reportRelayBot/internal/domain/models"
)

const separatorRule = "---------------"

// escape экранирует все зарезервированные символы MarkdownV2
// (_ * [ ] ( ) ~ ` > # + - = | { } . !) перед вставкой в сообщение.
func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

// tryParseNumber приводит значение ячейки к числу. Отсутствующие и
// нечисловые ячейки не являются ошибкой - caller подставляет 0.
func tryParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func tryParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// calculateTotals суммирует сетку по объявленным строкам и столбцам.
// В возвращаемой map остаются только строки со строго положительной
// суммой, но в общий итог входят все объявленные строки.
func calculateTotals(grid map[string]any, layout models.Layout) (map[string]float64, float64) {
	totals := make(map[string]float64)
	var grand float64

	for _, row := range layout.Rows {
		var sum float64
		for _, col := range layout.Columns {
			if n, ok := tryParseNumber(grid[row+"_"+col]); ok {
				sum += n
			}
		}

		if sum > 0 {
			totals[row] = sum
		}
		grand += sum
	}

	return totals, grand
}

// formatNumber выводит число как целое с пробелом-разделителем тысяч:
// 1000 -> "1 000", 1234567 -> "1 234 567". Дробная часть отбрасывается.
func formatNumber(v float64) string {
	s := strconv.FormatInt(int64(v), 10)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// newReportMessage собирает сообщение о новом отчете: шапка, построчная
// сводка (только строки с суммой > 0, по алфавиту) и общий итог.
func newReportMessage(e *models.ReportEvent) string {
	date := e.Date
	if d, ok := tryParseDate(e.Date); ok {
		date = d.Format("02-01-2006")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 *Новый отчет\\!* %s\n", escape("(#"+e.ReportID+")")))
	b.WriteString(fmt.Sprintf("📅 *Дата:* %s\n", escape(date)))
	b.WriteString(fmt.Sprintf("📍 *Филиал:* %s\n", escape(e.Location)))
	b.WriteString(fmt.Sprintf("👤 *Внес:* %s\n", escape(e.Author)))
	if e.LateComment != "" {
		b.WriteString(fmt.Sprintf("⏰ *Причина опоздания:* %s\n", escape(e.LateComment)))
	}

	totals, grand := calculateTotals(e.Data, e.Layout)
	if len(totals) == 0 {
		b.WriteString("\n_" + escape("Данные не введены.") + "_")
		return b.String()
	}

	b.WriteString("\n*Сводка данных:*\n")
	for _, row := range sortedKeys(totals) {
		b.WriteString(fmt.Sprintf("%s: `%s`\n", escape(row), formatNumber(totals[row])))
	}

	b.WriteString("\n" + escape(separatorRule) + "\n")
	b.WriteString(fmt.Sprintf("*Общая сумма:* `%s`", formatNumber(grand)))

	return b.String()
}

// editedReportMessage собирает дифф измененного отчета. Строка попадает в
// тело только если ее итог изменился; если не изменилось ничего и общие
// суммы совпадают, вместо тела и футера выводится одна строка-заглушка.
func editedReportMessage(e *models.ReportEvent) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("✍️ *Отчет изменен\\!* %s\n", escape("(#"+e.ReportID+")")))
	b.WriteString(fmt.Sprintf("👤 *Изменил:* %s\n", escape(e.Author)))

	oldTotals, oldGrand := calculateTotals(e.OldData, e.Layout)
	newTotals, newGrand := calculateTotals(e.Data, e.Layout)

	var lines []string
	for _, row := range unionKeys(oldTotals, newTotals) {
		oldTotal := oldTotals[row]
		newTotal := newTotals[row]
		if oldTotal == newTotal {
			continue
		}

		marker := "🟢"
		if newTotal < oldTotal {
			marker = "🔻"
		}
		lines = append(lines, fmt.Sprintf("%s: `%s` ➡️ `%s` %s",
			escape(row), formatNumber(oldTotal), formatNumber(newTotal), marker))
	}

	if len(lines) == 0 && oldGrand == newGrand {
		b.WriteString("\n_" + escape("Изменений значений в отчете нет.") + "_")
		return b.String()
	}

	b.WriteString("\n*Изменения:*\n")
	b.WriteString(strings.Join(lines, "\n"))

	marker := "➖"
	switch {
	case newGrand > oldGrand:
		marker = "📈"
	case newGrand < oldGrand:
		marker = "📉"
	}

	b.WriteString("\n\n" + escape(separatorRule) + "\n")
	b.WriteString(fmt.Sprintf("*Общая сумма:* `%s` ➡️ `%s` %s",
		formatNumber(oldGrand), formatNumber(newGrand), marker))

	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionKeys(a, b map[string]float64) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
