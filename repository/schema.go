package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uk_users_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS staffs (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id INT UNSIGNED NOT NULL,
		position VARCHAR(100) NOT NULL,
		UNIQUE KEY uk_staffs_user_id (user_id),
		CONSTRAINT fk_staffs_user_id FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS duty_posts (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attendances (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		staff_id INT UNSIGNED NOT NULL,
		duty_post_id INT UNSIGNED NOT NULL,
		date DATE NOT NULL,
		status ENUM('Present', 'Absent') NOT NULL,
		KEY idx_attendances_date (date),
		CONSTRAINT fk_attendances_staff_id FOREIGN KEY (staff_id) REFERENCES staffs (id) ON DELETE CASCADE,
		CONSTRAINT fk_attendances_duty_post_id FOREIGN KEY (duty_post_id) REFERENCES duty_posts (id) ON DELETE CASCADE
	)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	}

	return nil
}
