package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a short text post. Author name and avatar are denormalized so a
// listing does not need a join against users.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `gorm:"size:255" json:"name"`
	AvatarURL string    `gorm:"size:255" json:"avatar"`
	Likes     []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Like records one user liking one post. The composite unique index keeps a
// user from liking the same post twice.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `gorm:"size:255" json:"name"`
	AvatarURL string    `gorm:"size:255" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
