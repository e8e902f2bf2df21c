package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/model"
)

type UserRepositoryInterface interface {
	Create(u *model.User) error
	GetByID(id int) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	UpdateProfile(u *model.User) error
	UpdatePassword(id int, passwordHash string) error
	SetActive(id int, active bool) error
	SetBlocked(id int, blocked bool) error
	ListNonManagers() ([]model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, email, password_hash, username, phone, avatar, country, role, is_active, is_blocked, created_at`

func (r *UserRepository) Create(u *model.User) error {
	u.CreatedAt = time.Now()
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	query := `
        INSERT INTO users (email, password_hash, username, phone, avatar, country, role, is_active, is_blocked, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	err := r.DB.QueryRow(
		query,
		u.Email, u.PasswordHash, u.Username, u.Phone, u.Avatar, u.Country,
		u.Role, u.IsActive, u.IsBlocked, u.CreatedAt,
	).Scan(&u.ID)
	return mapUniqueViolation(err, u.Email)
}

func (r *UserRepository) GetByID(id int) (*model.User, error) {
	var u model.User
	err := r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewUserNotFound(id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=$1`, email), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewUserNotFoundByEmail(email)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(u *model.User) error {
	query := `
        UPDATE users
        SET username=$1, phone=$2, avatar=$3, country=$4
        WHERE id=$5
    `
	_, err := r.DB.Exec(query, u.Username, u.Phone, u.Avatar, u.Country, u.ID)
	return err
}

func (r *UserRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	return err
}

func (r *UserRepository) SetActive(id int, active bool) error {
	_, err := r.DB.Exec(`UPDATE users SET is_active=$1 WHERE id=$2`, active, id)
	return err
}

func (r *UserRepository) SetBlocked(id int, blocked bool) error {
	_, err := r.DB.Exec(`UPDATE users SET is_blocked=$1 WHERE id=$2`, blocked, id)
	return err
}

// ListNonManagers backs the manager's user administration screen.
func (r *UserRepository) ListNonManagers() ([]model.User, error) {
	rows, err := r.DB.Query(`SELECT ` + userColumns + ` FROM users WHERE role != 'manager' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.Phone, &u.Avatar,
			&u.Country, &u.Role, &u.IsActive, &u.IsBlocked, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanUser(row *sql.Row, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.Phone, &u.Avatar,
		&u.Country, &u.Role, &u.IsActive, &u.IsBlocked, &u.CreatedAt,
	)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
