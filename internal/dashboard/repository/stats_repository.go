package repository

import (
	"strconv"
	"time"

	authdomain "email-planner-backend/internal/auth/domain"
	emaildomain "email-planner-backend/internal/email/domain"

	"gorm.io/gorm"
)

// EmailDigest is the trimmed email shape used in dashboard listings.
type EmailDigest struct {
	ID            string                 `json:"id"`
	Subject       string                 `json:"subject"`
	Sender        string                 `json:"sender"`
	Category      *string                `json:"category,omitempty"`
	PriorityScore *int                   `json:"priority_score,omitempty"`
	ActionItems   emaildomain.StringList `json:"action_items,omitempty"`
}

// Stats aggregates one user's mailbox for the dashboard overview.
type Stats struct {
	TotalEmails    int64            `json:"total_emails"`
	UnreadEmails   int64            `json:"unread_emails"`
	AnalyzedEmails int64            `json:"analyzed_emails"`
	LastSync       *string          `json:"last_sync"`
	Categories     map[string]int64 `json:"categories"`
	Priorities     map[string]int64 `json:"priorities"`
	Sentiments     map[string]int64 `json:"sentiments"`
	HighPriority   []EmailDigest    `json:"high_priority"`
	PendingActions []EmailDigest    `json:"pending_actions"`
}

// TimelinePoint is one day's ingest count.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsRepository serves the dashboard read endpoints. Pure aggregation over
// the email table, no pipeline logic.
type StatsRepository interface {
	GetStats(userID string) (*Stats, error)
	GetTimeline(userID string, days int) ([]TimelinePoint, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{
		db: db,
	}
}

type labelCount struct {
	Label string
	Count int64
}

func (r *statsRepository) groupCount(userID, column string) (map[string]int64, error) {
	var rows []labelCount
	err := r.db.Model(&emaildomain.Email{}).
		Select(column+" AS label, COUNT(id) AS count").
		Where("user_id = ? AND "+column+" IS NOT NULL", userID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Count
	}
	return out, nil
}

func (r *statsRepository) GetStats(userID string) (*Stats, error) {
	stats := &Stats{}

	base := func() *gorm.DB {
		return r.db.Model(&emaildomain.Email{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.TotalEmails).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_read = ?", false).Count(&stats.UnreadEmails).Error; err != nil {
		return nil, err
	}
	if err := base().Where("category IS NOT NULL").Count(&stats.AnalyzedEmails).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.Categories, err = r.groupCount(userID, "category"); err != nil {
		return nil, err
	}
	if stats.Sentiments, err = r.groupCount(userID, "sentiment"); err != nil {
		return nil, err
	}

	var priorities []struct {
		Label int
		Count int64
	}
	err = r.db.Model(&emaildomain.Email{}).
		Select("priority_score AS label, COUNT(id) AS count").
		Where("user_id = ? AND priority_score IS NOT NULL", userID).
		Group("priority_score").
		Scan(&priorities).Error
	if err != nil {
		return nil, err
	}
	stats.Priorities = make(map[string]int64, len(priorities))
	for _, row := range priorities {
		stats.Priorities[strconv.Itoa(row.Label)] = row.Count
	}

	var high []*emaildomain.Email
	err = base().Where("priority_score >= ?", 4).
		Order("created_at DESC").Limit(5).Find(&high).Error
	if err != nil {
		return nil, err
	}
	stats.HighPriority = digests(high)

	var pending []*emaildomain.Email
	err = base().Where("action_items IS NOT NULL AND action_items != '[]'").
		Order("created_at DESC").Limit(5).Find(&pending).Error
	if err != nil {
		return nil, err
	}
	stats.PendingActions = digests(pending)

	var user authdomain.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err == nil {
		stats.LastSync = user.LastSyncTimestamp
	}

	return stats, nil
}

func (r *statsRepository) GetTimeline(userID string, days int) ([]TimelinePoint, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	var points []TimelinePoint
	err := r.db.Model(&emaildomain.Email{}).
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS date, COUNT(id) AS count").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func digests(emails []*emaildomain.Email) []EmailDigest {
	out := make([]EmailDigest, 0, len(emails))
	for _, e := range emails {
		out = append(out, EmailDigest{
			ID:            e.ID,
			Subject:       e.Subject,
			Sender:        e.Sender,
			Category:      e.Category,
			PriorityScore: e.PriorityScore,
			ActionItems:   e.ActionItems,
		})
	}
	return out
}
