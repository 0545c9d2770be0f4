package dto

import (
	"sparkle/internal/domains/notification/model"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
)

type NotificationResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	ReadAt    string `json:"read_at,omitempty"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Kind = model.Kind
	r.Title = model.Title
	r.Body = model.Body
	r.Read = model.ReadAt != nil

	if model.ReadAt != nil {
		r.ReadAt = model.ReadAt.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.Notifications = make([]NotificationResponse, len(models))
	for i, m := range models {
		r.Notifications[i].FromModel(m)
	}

	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
}
