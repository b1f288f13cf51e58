package repository

import (
	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/gorm"
)

type RewardRepository struct {
	DB *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{DB: db}
}

func (r *RewardRepository) GetOrCreateCard(userID, businessID uint) (*entity.RewardCard, error) {
	var card entity.RewardCard
	err := r.DB.Where(entity.RewardCard{UserID: userID, BusinessID: businessID}).
		FirstOrCreate(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *RewardRepository) FindByUser(userID uint) ([]entity.RewardCard, error) {
	var cards []entity.RewardCard
	err := r.DB.Preload("Business").Where("user_id = ?", userID).Find(&cards).Error
	return cards, err
}

func (r *RewardRepository) AddPoints(cardID uint, points int) error {
	return r.DB.Model(&entity.RewardCard{}).
		Where("id = ?", cardID).
		Update("points", gorm.Expr("points + ?", points)).Error
}

// Redeem burns `target` points if the card has them. Conditional update so a
// double-tap cannot redeem twice off the same balance.
func (r *RewardRepository) Redeem(cardID uint, target int) (int64, error) {
	res := r.DB.Model(&entity.RewardCard{}).
		Where("id = ? AND points >= ?", cardID, target).
		Updates(map[string]any{
			"points":   gorm.Expr("points - ?", target),
			"redeemed": gorm.Expr("redeemed + 1"),
		})
	return res.RowsAffected, res.Error
}
