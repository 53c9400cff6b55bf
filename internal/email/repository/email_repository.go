package repository

import (
	"errors"
	"time"

	authdomain "email-planner-backend/internal/auth/domain"
	emaildomain "email-planner-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) ExistsByGmailID(userID, gmailID string) (bool, error) {
	var count int64
	err := r.db.Model(&emaildomain.Email{}).
		Where("user_id = ? AND gmail_id = ?", userID, gmailID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *emailRepository) FindByID(id string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("id = ?", id).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) SaveSyncResults(userID, syncedAt string, emails []*emaildomain.Email) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, email := range emails {
			email.ID = uuid.New().String()
			email.CreatedAt = time.Now()
			if err := tx.Create(email).Error; err != nil {
				return err
			}
		}
		// The timestamp advances even when nothing new was synced.
		return tx.Model(&authdomain.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"last_sync_timestamp": syncedAt,
				"updated_at":          time.Now(),
			}).Error
	})
}

func (r *emailRepository) ListUnanalyzed(userID string, limit int) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	q := r.db.Where("user_id = ? AND category IS NULL", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

func analysisColumns(email *emaildomain.Email) map[string]interface{} {
	return map[string]interface{}{
		"category":       email.Category,
		"priority_score": email.PriorityScore,
		"sentiment":      email.Sentiment,
		"summary":        email.Summary,
		"action_items":   email.ActionItems,
		"tone":           email.Tone,
	}
}

func (r *emailRepository) UpdateAnalysis(email *emaildomain.Email) error {
	return r.db.Model(&emaildomain.Email{}).
		Where("id = ?", email.ID).
		Updates(analysisColumns(email)).Error
}

func (r *emailRepository) SaveAnalyses(emails []*emaildomain.Email) error {
	if len(emails) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, email := range emails {
			err := tx.Model(&emaildomain.Email{}).
				Where("id = ?", email.ID).
				Updates(analysisColumns(email)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *emailRepository) List(userID string, f ListFilter) ([]*emaildomain.Email, int64, error) {
	q := r.db.Model(&emaildomain.Email{}).Where("user_id = ?", userID)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPriority > 0 {
		q = q.Where("priority_score >= ?", f.MinPriority)
	}
	if f.Search != "" {
		term := "%" + f.Search + "%"
		q = q.Where("subject ILIKE ? OR body_text ILIKE ? OR snippet ILIKE ?", term, term, term)
	}
	if f.Sender != "" {
		q = q.Where("sender ILIKE ?", "%"+f.Sender+"%")
	}
	if f.HasActionItems != nil {
		if *f.HasActionItems {
			q = q.Where("action_items IS NOT NULL AND action_items != '[]'")
		} else {
			q = q.Where("action_items IS NULL OR action_items = '[]'")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}

	var emails []*emaildomain.Email
	err := q.Order("created_at DESC").Offset(f.Skip).Limit(limit).Find(&emails).Error
	if err != nil {
		return nil, 0, err
	}

	return emails, total, nil
}
