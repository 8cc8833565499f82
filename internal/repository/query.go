package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type rowScanner interface {
	Scan(dest ...any) error
}

// containsPattern turns a search term into an ILIKE pattern, escaping wildcards.
func containsPattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(term)) + "%"
}

// searchAny matches term case-insensitively against any of the columns.
func searchAny(term string, columns ...string) sq.Sqlizer {
	pattern := containsPattern(term)
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.ILike{col: pattern})
	}
	return or
}

// orderBy maps an API sort field onto a whitelisted column.
func orderBy(sort domain.Sort, columns map[string]string, fallback string) string {
	col, ok := columns[sort.By]
	if !ok {
		col = fallback
	}
	dir := "DESC"
	if sort.Order == domain.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s, id %s", col, dir, dir)
}

// countWhere returns the number of rows in table matching where.
func countWhere(ctx context.Context, q persistence.Querier, table string, where sq.Sqlizer) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func paginate(b sq.SelectBuilder, page domain.PageRequest) sq.SelectBuilder {
	if page.Limit <= 0 {
		return b
	}
	return b.Limit(uint64(page.Limit)).Offset(uint64(page.Offset()))
}
