package models

import "time"

// Profile holds the career data attached to a user. Exactly one profile may
// exist per user. The experience and education lists are stored as ordered
// JSON sub-documents on the profile row: entries are prepended (newest first)
// and the whole row is saved back, matching the single-document write
// semantics the API exposes. Concurrent writers therefore race on the whole
// row, last write wins.
type Profile struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	Company        string       `gorm:"size:255" json:"company,omitempty"`
	Website        string       `gorm:"size:512" json:"website,omitempty"`
	Location       string       `gorm:"size:255" json:"location,omitempty"`
	Status         string       `gorm:"size:128;not null" json:"status"`
	Skills         []string     `gorm:"serializer:json" json:"skills"`
	Bio            string       `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string       `gorm:"size:128" json:"githubusername,omitempty"`
	Social         *SocialLinks `gorm:"serializer:json" json:"social,omitempty"`
	Experience     []Experience `gorm:"serializer:json" json:"experience"`
	Education      []Education  `gorm:"serializer:json" json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	User           User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
}

// SocialLinks groups the optional social network URLs under one sub-record.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is an ordered sub-document owned by a profile. The ID is a
// generated UUID used only to address the entry for deletion.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education has the same ownership and lifecycle shape as Experience.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}
