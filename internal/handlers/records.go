package handlers

import (
	"context"
	"net/http"

	"doctrone-backend/internal/apperr"
	"doctrone-backend/internal/models"
)

type folderService interface {
	Create(ctx context.Context, userID int64, name string) (*models.Folder, error)
	List(ctx context.Context, userID int64) ([]models.Folder, error)
}

type prescriptionLister interface {
	Prescriptions(ctx context.Context, userID int64) ([]models.ActivePrescription, error)
}

// RecordsHandler serves a user's folders and active prescriptions.
type RecordsHandler struct {
	folders       folderService
	prescriptions prescriptionLister
}

func NewRecordsHandler(folders folderService, prescriptions prescriptionLister) *RecordsHandler {
	return &RecordsHandler{folders: folders, prescriptions: prescriptions}
}

func (h *RecordsHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromPath(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	var req models.FolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apperr.Write(w, r, err)
		return
	}

	folder, err := h.folders.Create(r.Context(), userID, req.Name)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	apperr.WriteJSON(w, http.StatusCreated, folder)
}

func (h *RecordsHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromPath(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	folders, err := h.folders.List(r.Context(), userID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, folders)
}

func (h *RecordsHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerFromPath(r)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	rx, err := h.prescriptions.Prescriptions(r.Context(), userID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	apperr.WriteJSON(w, http.StatusOK, rx)
}
