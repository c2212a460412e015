package trends

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/eagle-health/analytics-backend/internal/storage/models"
)

// Store is the read-only aggregate query layer over the search-trends
// dataset. All queries are parameterized; condition columns come from the
// typed mapping in condition.go.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SumByCondition returns the total search volume per condition across the
// whole dataset, keyed by condition slug.
func (s *Store) SumByCondition(ctx context.Context) (map[Condition]int64, error) {
	query := "SELECT "
	for i, c := range AllConditions {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("COALESCE(SUM(%s), 0)", c.column())
	}
	query += " FROM search_condition"

	dest := make([]int64, len(AllConditions))
	ptrs := make([]interface{}, len(AllConditions))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	if err := s.db.QueryRowContext(ctx, query).Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("failed to sum by condition: %w", err)
	}

	totals := make(map[Condition]int64, len(AllConditions))
	for i, c := range AllConditions {
		totals[c] = dest[i]
	}
	return totals, nil
}

// TopStates returns the states with the highest search volume for a
// condition, descending.
func (s *Store) TopStates(ctx context.Context, condition Condition, limit int) ([]models.StateVolume, error) {
	if !condition.Valid() {
		return nil, fmt.Errorf("unknown condition %q", condition)
	}

	query := fmt.Sprintf(`
		SELECT l.state, COALESCE(SUM(s.%s), 0) AS search_volume
		FROM location l
		INNER JOIN search_condition s ON s.location_id = l.location_id
		GROUP BY l.state
		ORDER BY search_volume DESC
		LIMIT ?
	`, condition.column())

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top states: %w", err)
	}
	defer rows.Close()

	var result []models.StateVolume
	for rows.Next() {
		var sv models.StateVolume
		if err := rows.Scan(&sv.State, &sv.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, sv)
	}
	return result, rows.Err()
}

// YearlyTrend returns the per-year search totals for a condition, ascending
// by year.
func (s *Store) YearlyTrend(ctx context.Context, condition Condition) ([]models.YearVolume, error) {
	if !condition.Valid() {
		return nil, fmt.Errorf("unknown condition %q", condition)
	}

	query := fmt.Sprintf(`
		SELECT year, COALESCE(SUM(%s), 0) AS search_volume
		FROM search_condition
		GROUP BY year
		ORDER BY year
	`, condition.column())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get yearly trend: %w", err)
	}
	defer rows.Close()

	var result []models.YearVolume
	for rows.Next() {
		var yv models.YearVolume
		if err := rows.Scan(&yv.Year, &yv.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, yv)
	}
	return result, rows.Err()
}

// Correlation computes the Pearson correlation between two conditions over
// the raw location/year rows. Returns nil when undefined (fewer than two
// rows or zero variance in either column).
func (s *Store) Correlation(ctx context.Context, a, b Condition) (*float64, error) {
	if !a.Valid() || !b.Valid() {
		return nil, fmt.Errorf("unknown condition pair %q/%q", a, b)
	}

	query := fmt.Sprintf("SELECT %s, %s FROM search_condition", a.column(), b.column())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get correlation rows: %w", err)
	}
	defer rows.Close()

	var xs, ys []float64
	for rows.Next() {
		var x, y float64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pearson(xs, ys), nil
}

// StateSeries returns per-year search totals for one state, optionally
// restricted to a single condition; with no condition the totals sum all
// nine columns.
func (s *Store) StateSeries(ctx context.Context, state string, condition *Condition) ([]models.YearVolume, error) {
	var expr string
	if condition != nil {
		if !condition.Valid() {
			return nil, fmt.Errorf("unknown condition %q", *condition)
		}
		expr = "s." + condition.column()
	} else {
		expr = allColumnsSum()
	}

	query := fmt.Sprintf(`
		SELECT s.year, COALESCE(SUM(%s), 0) AS search_volume
		FROM search_condition s
		INNER JOIN location l ON s.location_id = l.location_id
		WHERE l.state = ? COLLATE NOCASE
		GROUP BY s.year
		ORDER BY s.year
	`, expr)

	rows, err := s.db.QueryContext(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get state series: %w", err)
	}
	defer rows.Close()

	var result []models.YearVolume
	for rows.Next() {
		var yv models.YearVolume
		if err := rows.Scan(&yv.Year, &yv.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, yv)
	}
	return result, rows.Err()
}

// CitySeries returns per-year search totals for locations whose city name
// contains the given fragment.
func (s *Store) CitySeries(ctx context.Context, city string) ([]models.YearVolume, error) {
	query := fmt.Sprintf(`
		SELECT s.year, COALESCE(SUM(%s), 0) AS search_volume
		FROM search_condition s
		INNER JOIN location l ON s.location_id = l.location_id
		WHERE l.city LIKE ? COLLATE NOCASE
		GROUP BY s.year
		ORDER BY s.year
	`, allColumnsSum())

	rows, err := s.db.QueryContext(ctx, query, "%"+city+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to get city series: %w", err)
	}
	defer rows.Close()

	var result []models.YearVolume
	for rows.Next() {
		var yv models.YearVolume
		if err := rows.Scan(&yv.Year, &yv.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, yv)
	}
	return result, rows.Err()
}

// TotalsByYear sums all conditions per year, ascending.
func (s *Store) TotalsByYear(ctx context.Context) ([]models.YearVolume, error) {
	query := fmt.Sprintf(`
		SELECT year, COALESCE(SUM(%s), 0) AS search_volume
		FROM search_condition
		GROUP BY year
		ORDER BY year
	`, allColumnsSum())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals by year: %w", err)
	}
	defer rows.Close()

	var result []models.YearVolume
	for rows.Next() {
		var yv models.YearVolume
		if err := rows.Scan(&yv.Year, &yv.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, yv)
	}
	return result, rows.Err()
}

// TotalsByState sums all conditions per state.
func (s *Store) TotalsByState(ctx context.Context) ([]models.StateVolume, error) {
	query := fmt.Sprintf(`
		SELECT l.state, COALESCE(SUM(%s), 0) AS search_volume
		FROM location l
		INNER JOIN search_condition s ON s.location_id = l.location_id
		GROUP BY l.state
		ORDER BY l.state
	`, allColumnsSum())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals by state: %w", err)
	}
	defer rows.Close()

	var result []models.StateVolume
	for rows.Next() {
		var sv models.StateVolume
		if err := rows.Scan(&sv.State, &sv.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, sv)
	}
	return result, rows.Err()
}

// TotalsByCity sums all conditions per city.
func (s *Store) TotalsByCity(ctx context.Context) ([]models.CityVolume, error) {
	query := fmt.Sprintf(`
		SELECT l.city, COALESCE(l.postal, ''), l.state, COALESCE(l.latitude, 0), COALESCE(l.longitude, 0),
			COALESCE(SUM(%s), 0) AS search_volume
		FROM location l
		INNER JOIN search_condition s ON s.location_id = l.location_id
		GROUP BY l.city, l.postal, l.state, l.latitude, l.longitude
		ORDER BY l.city
	`, allColumnsSum())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals by city: %w", err)
	}
	defer rows.Close()

	var result []models.CityVolume
	for rows.Next() {
		var cv models.CityVolume
		if err := rows.Scan(&cv.City, &cv.Postal, &cv.State, &cv.Lat, &cv.Lon, &cv.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, cv)
	}
	return result, rows.Err()
}

// TotalsByStateAndYear sums all conditions per state per year, ascending by
// year.
func (s *Store) TotalsByStateAndYear(ctx context.Context) ([]models.StateYearVolume, error) {
	query := fmt.Sprintf(`
		SELECT l.state, COALESCE(l.latitude, 0), COALESCE(l.longitude, 0), s.year,
			COALESCE(SUM(%s), 0) AS search_volume
		FROM location l
		INNER JOIN search_condition s ON s.location_id = l.location_id
		GROUP BY l.state, l.latitude, l.longitude, s.year
		ORDER BY s.year
	`, allColumnsSum())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals by state and year: %w", err)
	}
	defer rows.Close()

	var result []models.StateYearVolume
	for rows.Next() {
		var sy models.StateYearVolume
		if err := rows.Scan(&sy.State, &sy.Lat, &sy.Lon, &sy.Year, &sy.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, sy)
	}
	return result, rows.Err()
}

// SumsByState returns the per-condition sums for each state, descending by
// cancer volume, limited to the top N states.
func (s *Store) SumsByState(ctx context.Context, limit int) ([]map[string]interface{}, error) {
	query := "SELECT l.state"
	for _, c := range AllConditions {
		query += fmt.Sprintf(", COALESCE(SUM(s.%s), 0)", c.column())
	}
	query += `
		FROM location l
		INNER JOIN search_condition s ON s.location_id = l.location_id
		GROUP BY l.state
		ORDER BY 2 DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get sums by state: %w", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var state string
		sums := make([]int64, len(AllConditions))
		ptrs := make([]interface{}, 0, len(AllConditions)+1)
		ptrs = append(ptrs, &state)
		for i := range sums {
			ptrs = append(ptrs, &sums[i])
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := map[string]interface{}{"state": state}
		for i, c := range AllConditions {
			record[string(c)] = sums[i]
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// LeadingCauses returns the CDC leading-causes-of-death rows.
func (s *Store) LeadingCauses(ctx context.Context) ([]models.LeadingCause, error) {
	query := `SELECT year, state, cause, deaths FROM leading_causes_of_death ORDER BY year`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get leading causes: %w", err)
	}
	defer rows.Close()

	var result []models.LeadingCause
	for rows.Next() {
		var lc models.LeadingCause
		if err := rows.Scan(&lc.Year, &lc.State, &lc.Cause, &lc.Deaths); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, lc)
	}
	return result, rows.Err()
}

// Locations returns the full location table.
func (s *Store) Locations(ctx context.Context) ([]models.Location, error) {
	query := `SELECT location_id, city, COALESCE(postal, ''), state, COALESCE(latitude, 0), COALESCE(longitude, 0) FROM location ORDER BY location_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}
	defer rows.Close()

	var result []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.City, &l.Postal, &l.State, &l.Latitude, &l.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func pearson(xs, ys []float64) *float64 {
	n := float64(len(xs))
	if len(xs) < 2 || len(xs) != len(ys) {
		return nil
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return nil
	}

	r := cov / math.Sqrt(varX*varY)
	return &r
}
