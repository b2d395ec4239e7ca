package entity

type User struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

type Staff struct {
	ID       int    `db:"id"`
	UserID   int    `db:"user_id"`
	Position string `db:"position"`
}

// Identity is the authenticated principal of a request.
type Identity struct {
	UserID   int
	Username string
}
