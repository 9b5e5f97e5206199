package model

import "time"

// User — учётная запись пользователя хранилища.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хэш, не исходный пароль

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
