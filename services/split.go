package services

import (
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// EqualSplit divides total among participants rounding half up.
// The remainder is not redistributed, so the shares may sum to slightly
// less or more than total.
func EqualSplit(total int64, participants int) (int64, error) {
	if participants <= 0 {
		return 0, utils.NewValidationError(utils.ErrNoParticipants)
	}
	if total < 0 {
		return 0, utils.NewValidationError("total cannot be negative")
	}
	return utils.RoundDiv(total, int64(participants)), nil
}

// SumGifts returns the pooled cost of gifts, rejecting totals above MaxEventTotal
func SumGifts(gifts []models.GiftInput) (int64, error) {
	amounts := make([]int64, 0, len(gifts))
	for _, g := range gifts {
		amounts = append(amounts, g.Amount)
	}
	total, ok := utils.AddAmounts(utils.MaxEventTotal, amounts...)
	if !ok {
		return 0, utils.NewValidationError(utils.ErrTotalTooLarge)
	}
	return total, nil
}

// GiftBreakdown shows what each participant funds per gift
func GiftBreakdown(gifts []models.Gift, participants int) []models.GiftShare {
	shares := make([]models.GiftShare, 0, len(gifts))
	for _, g := range gifts {
		share := models.GiftShare{
			GiftID:       g.ID,
			GiftName:     g.Name,
			TotalAmount:  g.TotalAmount,
			Participants: participants,
		}
		if participants > 0 {
			share.PerParticipant = utils.RoundDiv(g.TotalAmount, int64(participants))
		}
		shares = append(shares, share)
	}
	return shares
}
