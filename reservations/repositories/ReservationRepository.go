package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"facility-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	CreateReservation(reservation *models.Reservation) (*models.Reservation, error)
	GetReservationByID(id string) (*models.Reservation, error)
	UpdateReservation(reservation *models.Reservation) (*models.Reservation, error)
	CancelReservation(id string, updatedBy string) (*models.Reservation, error)
	GetFilteredReservations(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.Reservation, int64, error)
	ExpirePastReservations(now time.Time) (int64, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// CreateReservation persists a reservation after checking the asset is free
// over the requested window. The check and the insert share one transaction
// so two concurrent requests cannot both claim the same slot.
func (r *reservationRepository) CreateReservation(reservation *models.Reservation) (*models.Reservation, error) {
	reservation.ID = uuid.New()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var overlapping int64
		err := tx.Model(&models.Reservation{}).
			Where("asset_id = ?", reservation.AssetID).
			Where("status IN ?", []models.ReservationStatus{models.PendingReservationStatus, models.ApprovedReservationStatus}).
			Where("start_time < ? AND end_time > ?", reservation.EndTime, reservation.StartTime).
			Count(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to check for overlapping reservations: %w", err)
		}
		if overlapping > 0 {
			return fmt.Errorf("the asset is already reserved for part of the requested window")
		}
		return tx.Create(reservation).Error
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

func (r *reservationRepository) GetReservationByID(id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Preload("Asset").Preload("User").First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation with id '%s' not found", id)
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) UpdateReservation(reservation *models.Reservation) (*models.Reservation, error) {
	result := r.db.Save(reservation)
	if result.Error != nil {
		return nil, result.Error
	}
	return reservation, nil
}

func (r *reservationRepository) CancelReservation(id string, updatedBy string) (*models.Reservation, error) {
	reservation, err := r.GetReservationByID(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status == models.CancelledReservationStatus {
		return reservation, nil
	}

	reservation.Status = models.CancelledReservationStatus
	reservation.UpdatedBy = &updatedBy
	if err := r.db.Save(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

// ExpirePastReservations flips pending or approved reservations whose window
// has fully passed to expired. Returns the number of rows updated.
func (r *reservationRepository) ExpirePastReservations(now time.Time) (int64, error) {
	result := r.db.Model(&models.Reservation{}).
		Where("status IN ?", []models.ReservationStatus{models.PendingReservationStatus, models.ApprovedReservationStatus}).
		Where("end_time < ?", now).
		Update("status", models.ExpiredReservationStatus)
	return result.RowsAffected, result.Error
}

func (r *reservationRepository) GetFilteredReservations(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.Reservation, int64, error) {
	var reservations []models.Reservation
	var total int64

	db := r.db.Model(&models.Reservation{}).Where("organization_id = ?", organizationID)

	// Apply filters
	for key, value := range filters {
		switch key {
		case "status":
			db = db.Where("status = ?", strings.ToLower(value))
		case "asset_id":
			db = db.Where("asset_id = ?", value)
		case "user_id":
			db = db.Where("user_id = ?", value)
		case "start_date":
			db = db.Where("Date(start_time) >= ?", value)
		case "end_date":
			db = db.Where("Date(end_time) <= ?", value)
		}
	}

	// Count total records with filters applied
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination and ordering
	if err := db.Limit(pageSize).Offset(offset).Order("start_time DESC").Preload("Asset").Preload("User").Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}
