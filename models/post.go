package models

import "time"

// Post is a feed entry. The author's name and avatar are denormalized
// snapshots taken at creation time and intentionally not kept in sync with
// later user edits. Likes and comments are ordered JSON sub-documents on the
// post row, newest first; mutations load the row, splice the list and save
// the whole row back, so concurrent mutations race (last write wins).
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user"`
	Name      string    `gorm:"size:128" json:"name"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Likes     []Like    `gorm:"serializer:json" json:"likes"`
	Comments  []Comment `gorm:"serializer:json" json:"comments"`
	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"-"`
}

// Like marks that a user liked a post, at most once per user.
type Like struct {
	UserID uint `json:"user"`
}

// Comment is a lightweight post-shaped sub-document. The ID is a generated
// UUID used only to address the comment for deletion.
type Comment struct {
	ID     string    `json:"id"`
	UserID uint      `json:"user"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}
