package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/wordflow/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID fetches a user by primary key.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// GetByToken fetches a user by API token. Used by the auth middleware.
func (r *UserRepository) GetByToken(token string) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE api_token = $1", token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by token: %v", err)
	}
	return &user, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if isPostgres() {
		err := DB.Get(&user.ID, `
			INSERT INTO users (username, email, api_token, telegram_chat_id, notification_enabled, notification_hour, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			user.Username, user.Email, user.APIToken, user.TelegramChatID,
			user.NotificationEnabled, user.NotificationHour, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create user: %v", err)
		}
		return nil
	}
	res, err := DB.Exec(`
		INSERT INTO users (username, email, api_token, telegram_chat_id, notification_enabled, notification_hour, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.Username, user.Email, user.APIToken, user.TelegramChatID,
		user.NotificationEnabled, user.NotificationHour, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %v", err)
	}
	return nil
}

// Update persists changes to a user's notification settings.
func (r *UserRepository) Update(user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	_, err := DB.Exec(`
		UPDATE users SET
			telegram_chat_id = $1,
			notification_enabled = $2,
			notification_hour = $3,
			updated_at = $4
		WHERE id = $5`,
		user.TelegramChatID, user.NotificationEnabled, user.NotificationHour,
		user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// UsersForNotification returns users who opted into reminders, have a
// linked Telegram chat and want to be reminded at the given hour.
func (r *UserRepository) UsersForNotification(hour int) ([]models.User, error) {
	var users []models.User
	err := DB.Select(&users, `
		SELECT * FROM users
		WHERE notification_enabled = $1 AND telegram_chat_id != 0 AND notification_hour = $2`,
		true, hour,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}
