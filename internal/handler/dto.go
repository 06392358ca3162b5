package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/adventuresync/server/internal/domain"
	"github.com/adventuresync/server/internal/service"
)

var validate = validator.New()

// checkRequest runs struct-tag validation, folding failures into the
// invalid-input sentinel so they map to 400.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: field %q failed validation (%s)", domain.ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// UserDTO is the JSON representation of a user. The password hash is not
// representable here.
type UserDTO struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Location         string `json:"location,omitempty"`
	Plan             string `json:"plan"`
	StorageUsed      int64  `json:"storageUsed"`
	APICallsUsed     int    `json:"apiCallsUsed"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
	EmailVerified    bool   `json:"emailVerified"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Name:             u.Name,
		Location:         u.Location,
		Plan:             string(u.Plan),
		StorageUsed:      u.StorageUsed,
		APICallsUsed:     u.APICallsUsed,
		TwoFactorEnabled: u.TwoFactorEnabled,
		EmailVerified:    u.EmailVerified,
		CreatedAt:        u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        u.UpdatedAt.Format(time.RFC3339),
	}
}

// EventDTO is the JSON representation of an event.
type EventDTO struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Category            string `json:"category"`
	Location            string `json:"location"`
	Date                string `json:"date"`
	Price               string `json:"price"`
	MaxParticipants     int    `json:"maxParticipants"`
	CurrentParticipants int    `json:"currentParticipants"`
	ImageURL            string `json:"imageUrl,omitempty"`
	OrganizerID         string `json:"organizerId"`
	CreatedAt           string `json:"createdAt"`
}

func toEventDTO(e *domain.Event) EventDTO {
	return EventDTO{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Category:            e.Category,
		Location:            e.Location,
		Date:                e.Date.Format(time.RFC3339),
		Price:               e.Price.StringFixed(2),
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants,
		ImageURL:            e.ImageURL,
		OrganizerID:         e.OrganizerID,
		CreatedAt:           e.CreatedAt.Format(time.RFC3339),
	}
}

func toEventDTOs(events []domain.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i := range events {
		dtos[i] = toEventDTO(&events[i])
	}
	return dtos
}

// FileDTO is the JSON representation of a file record. The download token
// is a capability and is only ever returned by the generate-token call.
type FileDTO struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	CreatedAt    string `json:"createdAt"`
}

func toFileDTO(f *domain.FileRecord) FileDTO {
	return FileDTO{
		ID:           f.ID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		CreatedAt:    f.CreatedAt.Format(time.RFC3339),
	}
}

func toFileDTOs(files []domain.FileRecord) []FileDTO {
	dtos := make([]FileDTO, len(files))
	for i := range files {
		dtos[i] = toFileDTO(&files[i])
	}
	return dtos
}

// PaymentDTO is the JSON representation of a payment.
type PaymentDTO struct {
	ID        string `json:"id"`
	OrderID   string `json:"paypalOrderId,omitempty"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Plan      string `json:"plan"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func toPaymentDTO(p *domain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount.StringFixed(2),
		Currency:  p.Currency,
		Plan:      string(p.Plan),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toPaymentDTOs(payments []domain.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i := range payments {
		dtos[i] = toPaymentDTO(&payments[i])
	}
	return dtos
}

// BudgetDTO is the JSON representation of a monthly budget.
type BudgetDTO struct {
	ID              string `json:"id"`
	MonthlyBudget   string `json:"monthlyBudget"`
	ActivitiesSpent string `json:"activitiesSpent"`
	EquipmentSpent  string `json:"equipmentSpent"`
	TransportSpent  string `json:"transportSpent"`
	Month           int    `json:"month"`
	Year            int    `json:"year"`
	CreatedAt       string `json:"createdAt"`
}

func toBudgetDTO(b *domain.Budget) BudgetDTO {
	return BudgetDTO{
		ID:              b.ID,
		MonthlyBudget:   b.MonthlyBudget.StringFixed(2),
		ActivitiesSpent: b.ActivitiesSpent.StringFixed(2),
		EquipmentSpent:  b.EquipmentSpent.StringFixed(2),
		TransportSpent:  b.TransportSpent.StringFixed(2),
		Month:           b.Month,
		Year:            b.Year,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

// StatsDTO is the JSON representation of per-user statistics.
type StatsDTO struct {
	EventsJoined  int    `json:"eventsJoined"`
	MilesExplored int    `json:"milesExplored"`
	TotalSaved    string `json:"totalSaved"`
	APICallsUsed  int    `json:"apiCallsUsed"`
	StorageUsed   int64  `json:"storageUsed"`
}

func toStatsDTO(s *service.UserStats) StatsDTO {
	return StatsDTO{
		EventsJoined:  s.EventsJoined,
		MilesExplored: s.MilesExplored,
		TotalSaved:    s.TotalSaved.StringFixed(2),
		APICallsUsed:  s.APICallsUsed,
		StorageUsed:   s.StorageUsed,
	}
}

// MetricsDTO is the JSON representation of system-wide statistics.
type MetricsDTO struct {
	TotalUsers       int   `json:"totalUsers"`
	TotalEvents      int   `json:"totalEvents"`
	TotalPayments    int   `json:"totalPayments"`
	TotalFileStorage int64 `json:"totalFileStorage"`
}

func toMetricsDTO(m *service.SystemMetrics) MetricsDTO {
	return MetricsDTO{
		TotalUsers:       m.TotalUsers,
		TotalEvents:      m.TotalEvents,
		TotalPayments:    m.TotalPayments,
		TotalFileStorage: m.TotalFileStorage,
	}
}
