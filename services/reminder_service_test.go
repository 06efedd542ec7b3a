package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"habitLoopAPI/internal/policy"
	"habitLoopAPI/internal/types/notification"
)

func TestRegisterDevice_Validation(t *testing.T) {
	s := NewReminderService(nil)
	ctx := context.Background()

	err := s.RegisterDevice(ctx, "user_test123", &notification.RegisterDeviceRequest{
		Token:    "",
		Platform: "android",
	})
	assert.True(t, policy.IsKind(err, policy.KindEmpty))

	err = s.RegisterDevice(ctx, "user_test123", &notification.RegisterDeviceRequest{
		Token:    "fcm-token",
		Platform: "blackberry",
	})
	assert.True(t, policy.IsKind(err, policy.KindInvalidValue))
}

func TestSendTestReminder_NoProvider(t *testing.T) {
	s := NewReminderService(nil)

	err := s.SendTestReminder(context.Background(), "user_test123")
	assert.Error(t, err)
}
