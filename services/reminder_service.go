package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitLoopAPI/internal/policy"
	"habitLoopAPI/internal/types/notification"
	"habitLoopAPI/internal/types/record"
)

// PushProvider is the outbound push channel. FCM in production; tests inject
// a fake.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

type ReminderService struct {
	db           *pgxpool.Pool
	pushProvider PushProvider
}

func NewReminderService(db *pgxpool.Pool) *ReminderService {
	return &ReminderService{db: db}
}

func (s *ReminderService) SetPushProvider(p PushProvider) {
	s.pushProvider = p
}

// RegisterDevice upserts a push token for the user. Tokens are unique; a
// token moving between accounts is reassigned.
func (s *ReminderService) RegisterDevice(ctx context.Context, userID string, req *notification.RegisterDeviceRequest) error {
	if req.Token == "" {
		return &policy.Error{Kind: policy.KindEmpty, Message: "device token cannot be empty"}
	}
	switch req.Platform {
	case "ios", "android", "web":
	default:
		return &policy.Error{Kind: policy.KindInvalidValue, Message: "platform must be ios, android or web"}
	}

	query := `
	INSERT INTO device_tokens (id, user_id, token, platform, created_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (token)
	DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform
	`

	if _, err := s.db.Exec(ctx, query, uuid.New(), userID, req.Token, req.Platform); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}

// SendStreakRiskReminders pushes a reminder to every user who still has an
// unchecked daily habit today. Called from the ticker goroutine in main and
// from the test-send endpoint.
func (s *ReminderService) SendStreakRiskReminders(ctx context.Context, today time.Time) error {
	if s.pushProvider == nil {
		log.Println("Reminder: no push provider configured, skipping")
		return nil
	}

	todayStr := today.Format(record.DateLayout)

	// Users with at least one daily habit lacking a success record for today.
	query := `
	SELECT DISTINCT h.user_id
	FROM habits h
	WHERE NOT EXISTS (
		SELECT 1 FROM habit_records r
		WHERE r.habit_id = h.id AND r.user_id = h.user_id
		  AND r.date = $1::date AND r.status = true
	)
	`

	rows, err := s.db.Query(ctx, query, todayStr)
	if err != nil {
		return fmt.Errorf("failed to find users at streak risk: %w", err)
	}
	defer rows.Close()

	userIDs := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read users: %w", err)
	}

	sent := 0
	for _, userID := range userIDs {
		tokens, err := s.deviceTokens(ctx, userID)
		if err != nil {
			log.Printf("Reminder: failed to load tokens for %s: %v", userID, err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		err = s.pushProvider.SendPush(ctx, tokens,
			"Don't break the chain",
			"One of your habits is still unchecked today.",
			map[string]any{"type": "streak_risk", "date": todayStr},
		)
		if err != nil {
			log.Printf("Reminder: push failed for %s: %v", userID, err)
			continue
		}
		sent++
	}

	log.Printf("Reminder: sent streak-risk reminders to %d of %d users", sent, len(userIDs))
	return nil
}

// SendTestReminder pushes directly to one user's devices.
func (s *ReminderService) SendTestReminder(ctx context.Context, userID string) error {
	if s.pushProvider == nil {
		return fmt.Errorf("no push provider configured")
	}

	tokens, err := s.deviceTokens(ctx, userID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return policy.ErrNotFound
	}

	return s.pushProvider.SendPush(ctx, tokens,
		"Test notification",
		"Push notifications are working.",
		map[string]any{"type": "test"},
	)
}

func (s *ReminderService) deviceTokens(ctx context.Context, userID string) ([]notification.DeviceToken, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, token, platform, created_at FROM device_tokens WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	tokens := []notification.DeviceToken{}
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}

	return tokens, rows.Err()
}
