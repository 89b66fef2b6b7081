package user

const (
	SelectUserByEmail = `
		SELECT id, uuid, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	CountUsers = `SELECT count(*) FROM users`
)
