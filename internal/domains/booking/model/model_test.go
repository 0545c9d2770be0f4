package model_test

import (
	"net/http"
	"sparkle/internal/domains/booking/model"
	"sparkle/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []model.Status{
	model.StatusPending, model.StatusAccepted, model.StatusDeclined, model.StatusCancelled, model.StatusCompleted,
}

func TestCanTransition_Table(t *testing.T) {
	legal := map[[2]model.Status]bool{
		{model.StatusPending, model.StatusAccepted}:   true,
		{model.StatusPending, model.StatusDeclined}:   true,
		{model.StatusPending, model.StatusCancelled}:  true,
		{model.StatusAccepted, model.StatusCompleted}: true,
		{model.StatusAccepted, model.StatusCancelled}: true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, legal[[2]model.Status{from, to}], model.CanTransition(from, to))
			})
		}
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name string
		from model.Status
		to   model.Status
		role string
		code int
	}{
		{name: "business accepts", from: model.StatusPending, to: model.StatusAccepted, role: model.RoleBusiness},
		{name: "admin completes", from: model.StatusAccepted, to: model.StatusCompleted, role: model.RoleAdmin},
		{name: "customer cancels accepted", from: model.StatusAccepted, to: model.StatusCancelled, role: model.RoleCustomer},
		{name: "customer cannot accept", from: model.StatusPending, to: model.StatusAccepted, role: model.RoleCustomer, code: http.StatusForbidden},
		{name: "customer cannot complete", from: model.StatusAccepted, to: model.StatusCompleted, role: model.RoleCustomer, code: http.StatusForbidden},
		{name: "completed cannot be cancelled", from: model.StatusCompleted, to: model.StatusCancelled, role: model.RoleAdmin, code: http.StatusConflict},
		{name: "declined cannot be accepted", from: model.StatusDeclined, to: model.StatusAccepted, role: model.RoleBusiness, code: http.StatusConflict},
		{name: "illegal beats forbidden", from: model.StatusCompleted, to: model.StatusAccepted, role: model.RoleCustomer, code: http.StatusConflict},
		{name: "no transition to pending", from: model.StatusAccepted, to: model.StatusPending, role: model.RoleAdmin, code: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.Authorize(tt.from, tt.to, tt.role)

			if tt.code == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("accepted")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, status)

	_, err = model.ParseStatus("archived")
	assert.Error(t, err)
}

func TestStatusScan(t *testing.T) {
	var status model.Status

	require.NoError(t, status.Scan([]byte("completed")))
	assert.Equal(t, model.StatusCompleted, status)

	assert.Error(t, status.Scan("gone"))
	assert.Error(t, status.Scan(42))
}

func TestPartyRole(t *testing.T) {
	booking := model.BookingRequest{CustomerID: "cus-1", BusinessID: "biz-1"}

	role, ok := booking.PartyRole("cus-1", "")
	assert.True(t, ok)
	assert.Equal(t, model.RoleCustomer, role)

	role, ok = booking.PartyRole("owner-1", "biz-1")
	assert.True(t, ok)
	assert.Equal(t, model.RoleBusiness, role)

	_, ok = booking.PartyRole("stranger", "biz-2")
	assert.False(t, ok)
}
