package postgres

type playerTableModel struct {
	ID          int64  `db:"id"`
	TeamID      int64  `db:"team_id"`
	ElementType int    `db:"element_type"`
	FirstName   string `db:"first_name"`
	SecondName  string `db:"second_name"`
	WebName     string `db:"web_name"`
	NowCost     int    `db:"now_cost"`
	InitialCost *int   `db:"initial_cost"`
}

type positionTypeTableModel struct {
	ID           int    `db:"id"`
	SingularName string `db:"singular_name"`
}
