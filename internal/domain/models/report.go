package models

// ReportKind определяет тип события отчета
type ReportKind string

const (
	ReportKindNew  ReportKind = "new"
	ReportKindEdit ReportKind = "edit"
)

// Layout описывает объявленные строки и столбцы таблицы отчета.
// Суммируются только ячейки из декартова произведения Rows x Columns,
// лишние ключи в сетке никогда не читаются.
type Layout struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
}

// ReportEvent живет в пределах одного запроса и нигде не сохраняется.
// Data и OldData - плоские сетки с ключами вида "{row}_{col}", значения
// могут быть числами или числовыми строками.
type ReportEvent struct {
	Kind        ReportKind
	ReportID    string
	Author      string
	Location    string
	Date        string
	LateComment string
	Data        map[string]any
	OldData     map[string]any
	Layout      Layout
	BotToken    string
	GroupID     string
}
