package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

func (s *noteStore) CreateFolder(ctx context.Context, in models.FolderInput) (models.Folder, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if err := validateStruct(in); err != nil {
		return models.Folder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return models.Folder{}, err
	}

	id, err := s.newID()
	if err != nil {
		return models.Folder{}, fmt.Errorf("generate folder id: %w", err)
	}

	owner := in.UserID
	if owner == "" {
		owner = s.owner
	}
	folder := models.Folder{
		ID:        id,
		Name:      in.Name,
		Color:     in.Color,
		UserID:    owner,
		CreatedAt: s.timestamp(),
	}

	next := append(slices.Clone(s.folders), folder)
	if err := saveCollection(ctx, s.repo, blobs.KeyFolders, next); err != nil {
		return models.Folder{}, err
	}
	s.folders = next

	s.log.Debug(ctx, "folder created", "id", id, "name", folder.Name)
	return folder, nil
}

// DeleteFolder refuses, with common.ErrFolderNotEmpty, to remove a folder
// that notes still reference.
func (s *noteStore) DeleteFolder(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}

	i := slices.IndexFunc(s.folders, func(f models.Folder) bool { return f.ID == id })
	if i < 0 {
		return false, nil
	}

	for _, n := range s.notes {
		if n.FolderID == id {
			return true, fmt.Errorf("folder %s: %w", id, common.ErrFolderNotEmpty)
		}
	}

	next := slices.Delete(slices.Clone(s.folders), i, i+1)
	if err := saveCollection(ctx, s.repo, blobs.KeyFolders, next); err != nil {
		return true, err
	}
	s.folders = next

	s.log.Debug(ctx, "folder deleted", "id", id)
	return true, nil
}
