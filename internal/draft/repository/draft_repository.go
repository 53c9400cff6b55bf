package repository

import (
	"errors"
	"time"

	draftdomain "email-planner-backend/internal/draft/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DraftRepository defines the interface for draft data access
type DraftRepository interface {
	Create(draft *draftdomain.Draft) error
	FindByID(id string) (*draftdomain.Draft, error)
	ListByUser(userID string) ([]*draftdomain.Draft, error)

	// NextVersion returns 1 + the highest version already generated against
	// the given source email for this user.
	NextVersion(userID, emailID string) (int, error)
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{
		db: db,
	}
}

func (r *draftRepository) Create(draft *draftdomain.Draft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = time.Now()
	return r.db.Create(draft).Error
}

func (r *draftRepository) FindByID(id string) (*draftdomain.Draft, error) {
	var draft draftdomain.Draft
	err := r.db.Where("id = ?", id).First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) ListByUser(userID string) ([]*draftdomain.Draft, error) {
	var drafts []*draftdomain.Draft
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *draftRepository) NextVersion(userID, emailID string) (int, error) {
	var max int
	err := r.db.Model(&draftdomain.Draft{}).
		Where("user_id = ? AND email_id = ?", userID, emailID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
