package service

import (
	"context"
	"log/slog"
)

// NotificationService defines the notification hooks invoked by the task and
// auth services.
type NotificationService interface {
	SendTaskAssigned(ctx context.Context, taskTitle, assignedTo, assignedBy string)
	SendTaskCompleted(ctx context.Context, taskTitle, completedBy string)
	SendTaskOverdue(ctx context.Context, taskTitle, assignedTo string)
	SendWelcome(ctx context.Context, username, email string)
}

// LogNotificationService is a no-op notifier that only logs the notification
// intent. Actual delivery (email, push) is intentionally unimplemented; the
// interface exists so a real sender can be dropped in later.
type LogNotificationService struct {
	logger *slog.Logger
}

// NewLogNotificationService creates a new LogNotificationService.
func NewLogNotificationService(logger *slog.Logger) *LogNotificationService {
	return &LogNotificationService{
		logger: logger.With("component", "notification_service"),
	}
}

var _ NotificationService = (*LogNotificationService)(nil)

func (s *LogNotificationService) SendTaskAssigned(ctx context.Context, taskTitle, assignedTo, assignedBy string) {
	s.logger.Info("task assigned notification",
		"task_title", taskTitle,
		"assigned_to", assignedTo,
		"assigned_by", assignedBy)
}

func (s *LogNotificationService) SendTaskCompleted(ctx context.Context, taskTitle, completedBy string) {
	s.logger.Info("task completed notification",
		"task_title", taskTitle,
		"completed_by", completedBy)
}

func (s *LogNotificationService) SendTaskOverdue(ctx context.Context, taskTitle, assignedTo string) {
	s.logger.Info("task overdue notification",
		"task_title", taskTitle,
		"assigned_to", assignedTo)
}

func (s *LogNotificationService) SendWelcome(ctx context.Context, username, email string) {
	s.logger.Info("welcome notification",
		"username", username,
		"email", email)
}
