package services

import (
	"context"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// TotalCollected sums the paid shares
func TotalCollected(contributions []models.Contribution) int64 {
	var total int64
	for _, c := range contributions {
		if c.Paid {
			total += c.SplitAmount
		}
	}
	return total
}

// TotalPending sums the unpaid shares
func TotalPending(contributions []models.Contribution) int64 {
	var total int64
	for _, c := range contributions {
		if !c.Paid {
			total += c.SplitAmount
		}
	}
	return total
}

// CollectionPercentage is round(collected / (collected + pending) * 100), 0 on an empty ledger
func CollectionPercentage(collected, pending int64) int {
	return utils.Percentage(collected, collected+pending)
}

// SummarizeContributions aggregates one scope of contributions
func SummarizeContributions(contributions []models.Contribution) models.ContributionSummary {
	summary := models.ContributionSummary{
		TotalCollected:     TotalCollected(contributions),
		TotalPending:       TotalPending(contributions),
		ContributionsCount: len(contributions),
	}
	for _, c := range contributions {
		if c.Paid {
			summary.PaidCount++
		}
	}
	summary.TotalAmount = summary.TotalCollected + summary.TotalPending
	summary.CollectionPercentage = CollectionPercentage(summary.TotalCollected, summary.TotalPending)
	return summary
}

// EventStats builds an admin listing row from already-fetched rows
func EventStats(event models.Event, birthdayPersonName string, gifts []models.Gift, contributions []models.Contribution) models.EventWithStats {
	summary := SummarizeContributions(contributions)
	return models.EventWithStats{
		Event:                event,
		BirthdayPersonName:   birthdayPersonName,
		TotalContributions:   summary.ContributionsCount,
		PaidCount:            summary.PaidCount,
		TotalCollected:       summary.TotalCollected,
		TotalPending:         summary.TotalPending,
		GiftsCount:           len(gifts),
		CollectionPercentage: summary.CollectionPercentage,
	}
}

// Dashboard computes the system-wide rollup
func Dashboard(events []models.Event, contributions []models.Contribution) models.DashboardStats {
	stats := models.DashboardStats{TotalEvents: len(events)}
	for _, e := range events {
		switch e.Status {
		case models.StatusUpcoming:
			stats.UpcomingEvents++
		case models.StatusCompleted:
			stats.CompletedEvents++
		case models.StatusCancelled:
			stats.CancelledEvents++
		}
	}

	summary := SummarizeContributions(contributions)
	stats.TotalCollected = summary.TotalCollected
	stats.TotalPending = summary.TotalPending
	stats.TotalContributions = summary.ContributionsCount
	stats.PaidContributions = summary.PaidCount
	stats.CollectionPercentage = summary.CollectionPercentage
	stats.ParticipationRate = utils.Percentage(int64(summary.PaidCount), int64(summary.ContributionsCount))

	members := make(map[string]bool)
	for _, c := range contributions {
		members[c.UserID] = true
	}
	stats.UniqueMembers = len(members)
	return stats
}

// StatsService serves the admin dashboard
type StatsService struct {
	base
}

func (s *StatsService) DashboardStats(ctx context.Context, p auth.Principal) (*models.DashboardStats, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	events, err := s.store.Events().List(ctx, models.EventFilter{})
	if err != nil {
		return nil, storageError("list events", err)
	}
	contributions, err := s.store.Contributions().List(ctx)
	if err != nil {
		return nil, storageError("list contributions", err)
	}

	stats := Dashboard(events, contributions)
	return &stats, nil
}
