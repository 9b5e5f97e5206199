package model

import "time"

// Уровни доступа для FileShare. Иерархия строгая:
// delete покрывает write и read, write покрывает read.
const (
	PermissionRead   = "read"
	PermissionWrite  = "write"
	PermissionDelete = "delete"
)

// FileShare — выданный владельцем доступ к файлу другому пользователю.
// Пара (file_id, grantee_id) уникальна: активный доступ на файл
// у получателя может быть только один.
type FileShare struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	FileID    string `gorm:"type:uuid;not null;uniqueIndex:idx_shares_file_grantee"`
	GranteeID int64  `gorm:"not null;index;uniqueIndex:idx_shares_file_grantee"`

	// Связи
	File    *File `gorm:"foreignKey:FileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Grantee *User `gorm:"foreignKey:GranteeID"`

	Permission string     `gorm:"not null;size:10"`
	SharedAt   time.Time  `gorm:"autoCreateTime"`
	ExpiresAt  *time.Time // после этого момента доступ инертен; запись не удаляется

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ActiveAt сообщает, действует ли доступ в момент now.
func (s *FileShare) ActiveAt(now time.Time) bool {
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}
