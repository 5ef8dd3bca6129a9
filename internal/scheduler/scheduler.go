package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/wordflow/internal/database"
	"github.com/go-co-op/gocron"
)

// Default window during which reminders may be sent
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	users     *database.UserRepository
	records   *database.KnowledgeRepository
}

// Notifier interface for sending review reminders
type Notifier interface {
	SendReminder(chatID int64, dueCount int) error
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
		users:     database.NewUserRepository(),
		records:   database.NewKnowledgeRepository(),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Check once an hour which users want a reminder at this hour
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders finds users whose reminder hour matches the
// current hour and notifies those with due reviews.
func (s *Scheduler) checkAndSendReminders() {
	now := time.Now().UTC()
	currentHour := now.Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	users, err := s.users.UsersForNotification(currentHour)
	if err != nil {
		log.Printf("Error getting users for notification: %v", err)
		return
	}

	for _, user := range users {
		dueCount, err := s.records.CountDue(user.ID, now)
		if err != nil {
			log.Printf("Error counting due words for user %d: %v", user.ID, err)
			continue
		}
		if dueCount == 0 {
			continue
		}
		if err := s.notifier.SendReminder(user.TelegramChatID, dueCount); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(userID int64) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	dueCount, err := s.records.CountDue(userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if dueCount > 0 && user.TelegramChatID != 0 {
		return s.notifier.SendReminder(user.TelegramChatID, dueCount)
	}
	return nil
}

// envHour reads an hour from the environment, falling back when the
// variable is unset or out of range.
func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
