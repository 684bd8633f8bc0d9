package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"doctrone-backend/internal/apperr"
	"doctrone-backend/internal/models"
)

const maxFolderNameRunes = 100

var errFolderNotFound = &apperr.NotFoundError{Message: "Folder not found"}

type folderStore interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id int64) (*models.Folder, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Folder, error)
}

// FolderService manages the folders a user files conversations under.
type FolderService struct {
	users   userReader
	folders folderStore
}

func NewFolderService(users userReader, folders folderStore) *FolderService {
	return &FolderService{users: users, folders: folders}
}

func (s *FolderService) Create(ctx context.Context, userID int64, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &apperr.ValidationError{Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > maxFolderNameRunes {
		return nil, &apperr.ValidationError{Message: fmt.Sprintf("name must be at most %d characters", maxFolderNameRunes)}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, notFoundOr(err, errUserNotFound)
	}

	folder := &models.Folder{UserID: userID, Name: name}
	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return folder, nil
}

func (s *FolderService) List(ctx context.Context, userID int64) ([]models.Folder, error) {
	folders, err := s.folders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// owned returns the folder id when it exists and belongs to userID.
func (s *FolderService) owned(ctx context.Context, userID int64, id *models.ID) (*int64, error) {
	if !id.Valid() {
		return nil, errFolderNotFound
	}
	folder, err := s.folders.GetByID(ctx, id.Int64())
	if err != nil {
		return nil, notFoundOr(err, errFolderNotFound)
	}
	if folder.UserID != userID {
		return nil, errFolderNotFound
	}
	return &folder.ID, nil
}
