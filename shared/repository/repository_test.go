package repository_test

import (
	"sparkle/infras/otel/mocks"
	"sparkle/shared/dto"
	"sparkle/shared/model"
	"sparkle/shared/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string `db:"id"`
	Status string `db:"status"`
	Owner  string `db:"owner_name" table:"owners" column:"name"`
	Skip   string `db:"-"`
	model.Metadata
}

func newRepo() repository.Repository[row] {
	return repository.NewRepository[row]("row", "rows", "id", nil, mocks.NewOtel())
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo := newRepo()

	assert.Equal(t, []string{"id", "status", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
}

func TestBuildUpdateQuery(t *testing.T) {
	repo := newRepo()

	filter := dto.And(
		dto.Eq("rows", "id", "r-1"),
		dto.Filter{ArgName: "expected_status", Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "rows"},
	)

	query, args, err := repo.BuildUpdateQuery(map[string]any{"status": "accepted", "modified_by": "biz"}, filter)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE rows SET modified_by = :modified_by, status = :status  WHERE (rows.id = :id AND rows.status = :expected_status) ", query)
	assert.Equal(t, "accepted", args["status"])
	assert.Equal(t, "pending", args["expected_status"])
	assert.Equal(t, "r-1", args["id"])
}

func TestBuildUpdateQuery_RequiresFilterAndFields(t *testing.T) {
	repo := newRepo()

	_, _, err := repo.BuildUpdateQuery(map[string]any{"status": "accepted"}, dto.FilterGroup{})
	assert.Error(t, err)

	_, _, err = repo.BuildUpdateQuery(map[string]any{}, dto.And(dto.Eq("rows", "id", "r-1")))
	assert.Error(t, err)
}

func TestBuildWhereClause_Empty(t *testing.T) {
	repo := newRepo()

	where, args := repo.BuildWhereClause(dto.FilterGroup{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}
