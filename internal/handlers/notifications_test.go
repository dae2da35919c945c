package handlers

import (
	"fmt"
	"testing"

	"github.com/farebid/farebid-backend/internal/models"
	"github.com/farebid/farebid-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyNotifications(t *testing.T) {
	db, r := setupTest(t)
	traveler := createUser(t, db, "alice", models.UserTypeTraveler, false)
	driver := createUser(t, db, "bob", models.UserTypeDriver, true)
	unverified := createUser(t, db, "dave", models.UserTypeDriver, false)
	trip := createOpenTrip(t, db, traveler)

	sent, err := services.NotifyDriversOfTrip(db, nil, trip.ID)
	require.NoError(t, err)
	require.Equal(t, 1, sent)

	w := doRequest(t, r, "GET", "/api/notifications", nil, tokenFor(t, driver))
	require.Equal(t, 200, w.Code)

	var notifications []models.DriverNotification
	decodeBody(t, w, &notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, trip.ID, notifications[0].TripID)
	assert.Equal(t, "Entebbe", notifications[0].Destination)
	assert.Equal(t, models.NotificationStatusUnread, notifications[0].Status)

	w = doRequest(t, r, "GET", "/api/notifications", nil, tokenFor(t, unverified))
	require.Equal(t, 200, w.Code)
	decodeBody(t, w, &notifications)
	assert.Empty(t, notifications)

	w = doRequest(t, r, "GET", "/api/notifications", nil, tokenFor(t, traveler))
	assert.Equal(t, 403, w.Code)
}

func TestMarkNotificationRead(t *testing.T) {
	db, r := setupTest(t)
	traveler := createUser(t, db, "alice", models.UserTypeTraveler, false)
	driver := createUser(t, db, "bob", models.UserTypeDriver, true)
	otherDriver := createUser(t, db, "carol", models.UserTypeDriver, false)
	trip := createOpenTrip(t, db, traveler)

	_, err := services.NotifyDriversOfTrip(db, nil, trip.ID)
	require.NoError(t, err)

	var notification models.DriverNotification
	require.NoError(t, db.Where("driver_id = ?", driver.ID).First(&notification).Error)

	// Only the addressed driver may touch it.
	w := doRequest(t, r, "POST", fmt.Sprintf("/api/notifications/%d/read", notification.ID), nil, tokenFor(t, otherDriver))
	assert.Equal(t, 403, w.Code)

	w = doRequest(t, r, "POST", fmt.Sprintf("/api/notifications/%d/read", notification.ID), nil, tokenFor(t, driver))
	require.Equal(t, 200, w.Code)

	require.NoError(t, db.First(&notification, notification.ID).Error)
	assert.Equal(t, models.NotificationStatusRead, notification.Status)
	require.NotNil(t, notification.ReadAt)
}

func TestArchiveNotificationHidesIt(t *testing.T) {
	db, r := setupTest(t)
	traveler := createUser(t, db, "alice", models.UserTypeTraveler, false)
	driver := createUser(t, db, "bob", models.UserTypeDriver, true)
	trip := createOpenTrip(t, db, traveler)

	_, err := services.NotifyDriversOfTrip(db, nil, trip.ID)
	require.NoError(t, err)

	var notification models.DriverNotification
	require.NoError(t, db.Where("driver_id = ?", driver.ID).First(&notification).Error)

	w := doRequest(t, r, "POST", fmt.Sprintf("/api/notifications/%d/archive", notification.ID), nil, tokenFor(t, driver))
	require.Equal(t, 200, w.Code)

	w = doRequest(t, r, "GET", "/api/notifications", nil, tokenFor(t, driver))
	require.Equal(t, 200, w.Code)

	var notifications []models.DriverNotification
	decodeBody(t, w, &notifications)
	assert.Empty(t, notifications)
}

func TestNotificationNotFound(t *testing.T) {
	db, r := setupTest(t)
	driver := createUser(t, db, "bob", models.UserTypeDriver, true)

	w := doRequest(t, r, "POST", "/api/notifications/9999/read", nil, tokenFor(t, driver))
	assert.Equal(t, 404, w.Code)
}
