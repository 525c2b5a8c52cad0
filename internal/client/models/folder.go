package models

import "time"

// Folder groups notes. Notes reference folders by ID.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FolderInput is validated before a folder is created.
type FolderInput struct {
	Name   string `validate:"required,max=64"`
	Color  string `validate:"required,iscolor"`
	UserID string
}

// DefaultFolders returns the folders seeded on first run.
func DefaultFolders(userID string, now time.Time) []Folder {
	return []Folder{
		{ID: "personal", Name: "Personal", Color: "#6366f1", UserID: userID, CreatedAt: now},
		{ID: "work", Name: "Work", Color: "#10b981", UserID: userID, CreatedAt: now},
	}
}
