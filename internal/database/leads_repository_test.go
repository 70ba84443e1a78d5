package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/leadscout/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return sqlx.NewDb(db, "sqlmock"), mock
}

func sampleLead() *domain.Lead {
	return &domain.Lead{
		Platform:       domain.PlatformInstagram,
		Username:       "la_foodie",
		DisplayName:    "LA Foodie",
		Bio:            "hidden gems in LA",
		FollowerCount:  12000,
		FollowingCount: 800,
		MediaCount:     240,
		Category:       "Blogger",
		Score:          65,
		MatchedSignals: []string{"identity_keywords", "location_strong"},
		Source:         "hashtag",
		DiscoveredAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLeadsPromoteUpsertsAndClearsRejection(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadsRepository(db)
	lead := sampleLead()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(
			lead.Platform, lead.Username, lead.DisplayName, lead.Bio,
			lead.FollowerCount, lead.FollowingCount, lead.MediaCount,
			lead.IsVerified, lead.IsBusiness, lead.Category, lead.ExternalURL,
			lead.City, lead.Score, pq.Array(lead.MatchedSignals),
			lead.EngagementScore, lead.EngagementStatus, lead.Email,
			lead.EmailSource, lead.Phone, lead.Source, lead.DiscoveredAt,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(7, now, now))
	mock.ExpectExec("DELETE FROM rejections").
		WithArgs(lead.Platform, lead.Username).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Promote(context.Background(), lead)
	require.NoError(t, err)

	assert.Equal(t, 7, lead.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadsPromoteRollsBackOnUpsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadsRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO leads").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Promote(context.Background(), sampleLead())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadsSetEnrichment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadsRepository(db)
	attempted := time.Now()

	mock.ExpectExec("UPDATE leads").
		WithArgs(domain.PlatformInstagram, "la_foodie", "jane@lafoodie.com", "bio_regex", attempted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetEnrichment(context.Background(),
		domain.PlatformInstagram, "la_foodie", "jane@lafoodie.com", "bio_regex", attempted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadsSetEnrichmentUnknownLead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadsRepository(db)

	mock.ExpectExec("UPDATE leads").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetEnrichment(context.Background(),
		domain.PlatformInstagram, "ghost", "", "", time.Now())
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestLeadsGetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadsRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(domain.PlatformInstagram, "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUsername(context.Background(), domain.PlatformInstagram, "ghost")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestLeadsList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadsRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "platform", "username", "display_name", "bio", "follower_count",
		"following_count", "media_count", "is_verified", "is_business",
		"category", "external_url", "city", "score", "matched_signals",
		"engagement_score", "engagement_status", "email", "email_source",
		"phone", "enrichment_attempted", "source", "discovered_at",
		"created_at", "updated_at", "enriched_at",
	}).AddRow(
		1, "instagram", "la_foodie", "LA Foodie", "bio", 12000,
		800, 240, false, false,
		"Blogger", "", "Los Angeles", 65, "{identity_keywords,location_strong}",
		20, "target_match", "jane@lafoodie.com", "bio_regex",
		"", true, "hashtag", now,
		now, now, nil,
	)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("", 45, true, 100, 0).
		WillReturnRows(rows)

	leads, err := repo.List(context.Background(), LeadFilter{MinScore: 45, WithEmail: true})
	require.NoError(t, err)
	require.Len(t, leads, 1)

	assert.Equal(t, "la_foodie", leads[0].Username)
	assert.Equal(t, []string{"identity_keywords", "location_strong"}, leads[0].MatchedSignals)
	assert.Nil(t, leads[0].EnrichedAt)
}
