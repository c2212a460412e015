package trends

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestTopStates(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"state", "search_volume"}).
		AddRow("California", 900).
		AddRow("Texas", 800)
	mock.ExpectQuery("SELECT l.state").WithArgs(2).WillReturnRows(rows)

	result, err := store.TopStates(context.Background(), Cancer, 2)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "California", result[0].State)
	assert.Equal(t, int64(900), result[0].Volume)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopStatesRejectsUnknownCondition(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := store.TopStates(context.Background(), Condition("nope"), 5)
	assert.Error(t, err)
}

func TestYearlyTrend(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"year", "search_volume"}).
		AddRow(2004, 100).
		AddRow(2005, 150)
	mock.ExpectQuery("SELECT year").WillReturnRows(rows)

	result, err := store.YearlyTrend(context.Background(), Diabetes)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 2004, result[0].Year)
	assert.Equal(t, int64(150), result[1].Volume)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumByCondition(t *testing.T) {
	store, mock := newMockStore(t)

	cols := make([]string, len(AllConditions))
	for i := range AllConditions {
		cols[i] = string(AllConditions[i])
	}
	row := sqlmock.NewRows(cols).AddRow(int64(1), int64(2), int64(3), int64(4), int64(5), int64(6), int64(7), int64(8), int64(9))
	mock.ExpectQuery("FROM search_condition").WillReturnRows(row)

	totals, err := store.SumByCondition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals[Cancer])
	assert.Equal(t, int64(9), totals[Diabetes])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStateSeriesUsesParameter(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"year", "search_volume"}).AddRow(2010, 42)
	mock.ExpectQuery("WHERE l.state").WithArgs("california").WillReturnRows(rows)

	result, err := store.StateSeries(context.Background(), "california", nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(42), result[0].Volume)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCitySeriesWrapsFragment(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"year", "search_volume"}).AddRow(2010, 7)
	mock.ExpectQuery("WHERE l.city LIKE").WithArgs("%chicago%").WillReturnRows(rows)

	result, err := store.CitySeries(context.Background(), "chicago")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want *float64
	}{
		{"too few points", []float64{1}, []float64{2}, nil},
		{"zero variance", []float64{5, 5, 5}, []float64{1, 2, 3}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, pearson(tt.xs, tt.ys))
		})
	}

	r := pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.NotNil(t, r)
	assert.InDelta(t, 1.0, *r, 1e-9)

	r = pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	require.NotNil(t, r)
	assert.InDelta(t, -1.0, *r, 1e-9)
}
