package model

import "time"

// File — серверная модель загруженного файла.
// ContentHash уникален в пределах владельца: один и тот же контент
// не хранится у пользователя дважды (дедупликация).
type File struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	OwnerID int64  `gorm:"not null;index;uniqueIndex:idx_files_owner_hash"` // ссылка на users.id

	// Связи
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name        string `gorm:"not null"`                // отображаемое имя, меняется при переименовании
	StorageKey  string `gorm:"not null;index"`          // ключ объекта в блоб-хранилище, неизменяемый
	Size        int64  `gorm:"not null"`
	ContentType string `gorm:"not null"`
	ContentHash string `gorm:"not null;uniqueIndex:idx_files_owner_hash;size:64"` // SHA-256 hex

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
