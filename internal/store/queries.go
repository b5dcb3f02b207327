package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrNoCredentials = errors.New("no stored credentials")

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Credentials holds the tokens for a single api profile, the profile being the api base url.
type Credentials struct {
	Profile      string
	AccessToken  string
	RefreshToken string
	UpdatedOn    time.Time
}

const getCredentials = `SELECT profile, access_token, refresh_token, updated_on
FROM credentials
WHERE profile = ?`

func (q *Queries) GetCredentials(ctx context.Context, profile string) (Credentials, error) {
	var (
		creds     Credentials
		updatedOn int64
	)

	row := q.db.QueryRowContext(ctx, getCredentials, profile)
	if err := row.Scan(&creds.Profile, &creds.AccessToken, &creds.RefreshToken, &updatedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Credentials{}, ErrNoCredentials
		}

		return Credentials{}, err
	}

	creds.UpdatedOn = time.Unix(updatedOn, 0)

	return creds, nil
}

const saveCredentials = `INSERT INTO credentials (profile, access_token, refresh_token, updated_on)
VALUES (?, ?, ?, ?)
ON CONFLICT (profile) DO UPDATE SET access_token  = excluded.access_token,
                                    refresh_token = excluded.refresh_token,
                                    updated_on    = excluded.updated_on`

func (q *Queries) SaveCredentials(ctx context.Context, creds Credentials) error {
	_, err := q.db.ExecContext(ctx, saveCredentials,
		creds.Profile, creds.AccessToken, creds.RefreshToken, creds.UpdatedOn.Unix())

	return err
}

const updateAccess = `UPDATE credentials
SET access_token = ?, updated_on = ?
WHERE profile = ?`

// UpdateAccess replaces only the access token, leaving the refresh token untouched.
func (q *Queries) UpdateAccess(ctx context.Context, profile string, access string, updatedOn time.Time) error {
	result, err := q.db.ExecContext(ctx, updateAccess, access, updatedOn.Unix(), profile)
	if err != nil {
		return err
	}

	affected, errAffected := result.RowsAffected()
	if errAffected != nil {
		return errAffected
	}

	if affected == 0 {
		return ErrNoCredentials
	}

	return nil
}

const deleteCredentials = `DELETE FROM credentials WHERE profile = ?`

func (q *Queries) DeleteCredentials(ctx context.Context, profile string) error {
	_, err := q.db.ExecContext(ctx, deleteCredentials, profile)

	return err
}
