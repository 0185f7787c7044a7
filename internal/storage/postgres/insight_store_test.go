package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestSaveInsightInsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock, "insights", "competitors")
	require.NoError(t, err)

	payload := []byte(`{"store_url":"https://x.com"}`)
	mock.ExpectExec("INSERT INTO insights").
		WithArgs("https://x.com", payload).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.SaveInsight(context.Background(), "https://x.com", payload)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCompetitorInsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock, "", "")
	require.NoError(t, err)

	payload := []byte(`{"store_url":"https://comp.com"}`)
	mock.ExpectExec("INSERT INTO competitors").
		WithArgs("https://brand.com", "https://comp.com", payload).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.SaveCompetitor(context.Background(), "https://brand.com", "https://comp.com", payload)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveInsightPropagatesError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock, "insights", "competitors")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO insights").
		WithArgs("https://x.com", []byte("{}")).
		WillReturnError(errors.New("connection reset"))

	err = store.SaveInsight(context.Background(), "https://x.com", []byte("{}"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "insert insight")
}

func TestListRecentInsightsReturnsRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock, "insights", "competitors")
	require.NoError(t, err)

	now := time.Unix(1700000000, 0).UTC()
	rows := pgxmock.NewRows([]string{"id", "store_url", "data", "created_at"}).
		AddRow(int64(2), "https://b.com", `{"store_url":"https://b.com"}`, now).
		AddRow(int64(1), "https://a.com", `{"store_url":"https://a.com"}`, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, store_url, data, created_at FROM insights").
		WithArgs(20).
		WillReturnRows(rows)

	got, err := store.ListRecentInsights(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "https://b.com", got[0].StoreURL)
	require.Equal(t, int64(2), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentCompetitorsReturnsRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewStoreWithPool(mock, "insights", "competitors")
	require.NoError(t, err)

	now := time.Unix(1700000000, 0).UTC()
	rows := pgxmock.NewRows([]string{"id", "brand_url", "competitor_url", "data", "created_at"}).
		AddRow(int64(1), "https://brand.com", "https://comp.com", `{}`, now)
	mock.ExpectQuery("SELECT id, brand_url, competitor_url, data, created_at FROM competitors").
		WithArgs(5).
		WillReturnRows(rows)

	got, err := store.ListRecentCompetitors(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "https://brand.com", got[0].BrandURL)
	require.Equal(t, "https://comp.com", got[0].CompetitorURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStoreWithPoolValidatesTableNames(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewStoreWithPool(mock, "insights; DROP TABLE", "competitors")
	require.Error(t, err)

	_, err = NewStoreWithPool(nil, "insights", "competitors")
	require.Error(t, err)
}
