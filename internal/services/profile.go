package services

import (
	"context"
	"fmt"
	"strings"

	"doctrone-backend/internal/models"
)

const (
	notSpecified  = "not specified"
	noMedications = "no current medications"
	unknownDrug   = "Unknown drug"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type prescriptionReader interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Prescription, error)
}

type drugReader interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Drug, error)
}

// ProfileResolver builds the prompt-ready medical profile of a user. It only
// reads: users, then prescriptions, then drugs.
type ProfileResolver struct {
	users         userReader
	prescriptions prescriptionReader
	drugs         drugReader
}

func NewProfileResolver(users userReader, prescriptions prescriptionReader, drugs drugReader) *ProfileResolver {
	return &ProfileResolver{users: users, prescriptions: prescriptions, drugs: drugs}
}

// Resolve returns an apperr.NotFoundError when the user does not exist.
func (r *ProfileResolver) Resolve(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, errUserNotFound)
	}

	rx, drugs, err := r.medications(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		MedicationSummary: MedicationSummary(rx, drugs),
		Gender:            notSpecified,
		Age:               notSpecified,
	}
	if user.Gender != nil && strings.TrimSpace(*user.Gender) != "" {
		profile.Gender = *user.Gender
	}
	if user.Age != nil {
		profile.Age = fmt.Sprintf("%d years old", *user.Age)
	}
	return profile, nil
}

// Prescriptions lists the user's prescriptions in id order with drug names
// resolved.
func (r *ProfileResolver) Prescriptions(ctx context.Context, userID int64) ([]models.ActivePrescription, error) {
	if _, err := r.users.GetByID(ctx, userID); err != nil {
		return nil, notFoundOr(err, errUserNotFound)
	}

	rx, drugs, err := r.medications(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ActivePrescription, 0, len(rx))
	for _, p := range rx {
		out = append(out, models.ActivePrescription{
			ID:       p.ID,
			DrugID:   p.DrugID,
			DrugName: drugName(drugs, p.DrugID),
			Dosage:   p.Dosage,
			Intake:   p.Intake,
		})
	}
	return out, nil
}

func (r *ProfileResolver) medications(ctx context.Context, userID int64) ([]models.Prescription, map[int64]models.Drug, error) {
	rx, err := r.prescriptions.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load prescriptions: %w", err)
	}

	drugs := map[int64]models.Drug{}
	if len(rx) > 0 {
		drugs, err = r.drugs.GetByIDs(ctx, drugIDs(rx))
		if err != nil {
			return nil, nil, fmt.Errorf("load drugs: %w", err)
		}
	}
	return rx, drugs, nil
}

// MedicationSummary formats prescriptions as "<name> (<dosage>, <intake>)"
// joined by ", ". Drugs missing from the map are named "Unknown drug".
func MedicationSummary(rx []models.Prescription, drugs map[int64]models.Drug) string {
	if len(rx) == 0 {
		return noMedications
	}

	entries := make([]string, 0, len(rx))
	for _, p := range rx {
		entries = append(entries, fmt.Sprintf("%s (%s, %s)", drugName(drugs, p.DrugID), orNotSpecified(p.Dosage), orNotSpecified(p.Intake)))
	}
	return strings.Join(entries, ", ")
}

func drugName(drugs map[int64]models.Drug, id int64) string {
	if d, ok := drugs[id]; ok {
		return d.Name
	}
	return unknownDrug
}

func orNotSpecified(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return notSpecified
	}
	return *s
}

func drugIDs(rx []models.Prescription) []int64 {
	seen := make(map[int64]bool, len(rx))
	ids := make([]int64, 0, len(rx))
	for _, p := range rx {
		if !seen[p.DrugID] {
			seen[p.DrugID] = true
			ids = append(ids, p.DrugID)
		}
	}
	return ids
}
