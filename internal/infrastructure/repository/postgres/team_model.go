package postgres

type teamTableModel struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	ShortName string `db:"short_name"`
	Strength  int    `db:"strength"`
}
