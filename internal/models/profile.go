package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// SocialLinks holds the per-platform profile links. Each one is optional.
type SocialLinks struct {
	Youtube   string `gorm:"size:255" json:"youtube,omitempty"`
	Twitter   string `gorm:"size:255" json:"twitter,omitempty"`
	Facebook  string `gorm:"size:255" json:"facebook,omitempty"`
	Linkedin  string `gorm:"size:255" json:"linkedin,omitempty"`
	Instagram string `gorm:"size:255" json:"instagram,omitempty"`
}

// Profile is the per-user record of professional details. At most one
// profile exists per user; the unique index on user_id backs the
// ON CONFLICT upsert.
type Profile struct {
	ID             uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Company        string           `gorm:"size:255" json:"company,omitempty"`
	Website        string           `gorm:"size:255" json:"website,omitempty"`
	Location       string           `gorm:"size:255" json:"location,omitempty"`
	Status         string           `gorm:"size:255;not null" json:"status"`
	Bio            string           `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string           `gorm:"size:255" json:"githubusername,omitempty"`
	Skills         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"skills"`
	Social         SocialLinks      `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience     `gorm:"foreignKey:ProfileID" json:"experience"`
	Education      []Education      `gorm:"foreignKey:ProfileID" json:"education"`
	User           User             `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Experience is an entry in a profile's work history. Entries are listed
// newest-first: Seq increases monotonically and listings order by it
// descending, so the most recently added entry is always index 0.
type Experience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	ProfileID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Seq         int64      `gorm:"not null;index" json:"-"`
	Company     string     `gorm:"size:255;not null" json:"company"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Location    string     `gorm:"size:255" json:"location,omitempty"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Seq == 0 {
		e.Seq = time.Now().UnixNano()
	}
	return nil
}

// Education mirrors Experience for a profile's education history.
type Education struct {
	ID           uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	ProfileID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Seq          int64      `gorm:"not null;index" json:"-"`
	School       string     `gorm:"size:255;not null" json:"school"`
	Degree       string     `gorm:"size:255;not null" json:"degree"`
	FieldOfStudy string     `gorm:"size:255;not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (e *Education) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Seq == 0 {
		e.Seq = time.Now().UnixNano()
	}
	return nil
}
