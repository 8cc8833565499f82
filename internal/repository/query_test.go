package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizen-engagement/internal/domain"
)

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%pot%", containsPattern("  pot "))
	assert.Equal(t, `%100\%\_off%`, containsPattern("100%_off"))
}

func TestOrderBy_Whitelist(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "title ASC, id ASC",
		orderBy(domain.Sort{By: "title", Order: domain.SortAsc}, ticketSortColumns, "created_at"))
	assert.Equal(t, "created_at DESC, id DESC",
		orderBy(domain.Sort{By: "password_hash; DROP TABLE users", Order: domain.SortAsc + "x"}, userSortColumns, "created_at"))
}

func TestTicketWhere_CitizenScope(t *testing.T) {
	t.Parallel()

	me := "c1"
	sql, args, err := ticketWhere(TicketFilter{
		CitizenID:        &me,
		ExcludeAnonymous: true,
		Statuses:         []domain.TicketStatus{domain.TicketStatusNew, domain.TicketStatusAssigned},
		Search:           "pothole",
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "citizen_id = ?")
	assert.Contains(t, sql, "is_anonymous = ?")
	assert.Contains(t, sql, "status IN (?,?)")
	assert.Contains(t, sql, "title ILIKE ?")
	assert.Contains(t, sql, "location ILIKE ?")
	assert.Equal(t, []any{"c1", false, "NEW", "ASSIGNED", "%pothole%", "%pothole%", "%pothole%"}, args)
}

func TestTicketWhere_Empty(t *testing.T) {
	t.Parallel()

	sql, args, err := ticketWhere(TicketFilter{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(1=1)", sql)
	assert.Empty(t, args)
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	sql, _, err := paginate(psql.Select("id").From("tickets"), domain.PageRequest{Page: 3, Limit: 10}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM tickets LIMIT 10 OFFSET 20", sql)
}
