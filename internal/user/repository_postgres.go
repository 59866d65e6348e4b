package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, phone, password_hash, created_at`

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByName(name string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE name = $1`, name).
		Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(
		`INSERT INTO users (name, phone, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Name, u.Phone, u.PasswordHash, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
