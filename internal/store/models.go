package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// IDList stores an ordered list of entity ids as a JSON text column.
type IDList []string

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}

	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal id list: %w", err)
	}

	return string(b), nil
}

func (l *IDList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}

	var b []byte

	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported id list source type %T", src)
	}

	if len(b) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(b, l)
}

// User is a registered account. The username is unique and immutable after
// creation. Passwords are stored and compared verbatim.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Username  string `gorm:"uniqueIndex;size:64;not null"`
	Password  string `gorm:"not null"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Age       *int32
	CreatedAt time.Time
}

// Post is owned by exactly one user. CommentIDs is the ordered list of
// comments attached to the post; it is appended to in a second write after
// the comment row itself is created, so the two can disagree after a partial
// failure.
type Post struct {
	ID         string `gorm:"primaryKey;size:36"`
	UserID     string `gorm:"index;size:36;not null"`
	Content    string
	CommentIDs IDList `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Comment is attached to exactly one post. There is no update or delete path.
type Comment struct {
	ID        string `gorm:"primaryKey;size:36"`
	PostID    string `gorm:"index;size:36;not null"`
	Content   string
	CreatedAt time.Time
}
