package category

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/internal/models"
)

func TestBuildTree_NestsChildrenUnderParents(t *testing.T) {
	rows := []*models.Category{
		{ID: "c1", Name: "Jobs", Slug: "jobs"},
		{ID: "c2", Name: "Engineering", Slug: "jobs-engineering", ParentID: lo.ToPtr("c1")},
		{ID: "c3", Name: "Sales", Slug: "jobs-sales", ParentID: lo.ToPtr("c1")},
		{ID: "c4", Name: "Services", Slug: "services"},
	}

	tree := buildTree(rows)
	require.Len(t, tree, 2)
	require.Equal(t, "jobs", tree[0].Slug)
	require.Len(t, tree[0].Children, 2)
	require.Equal(t, "jobs-engineering", tree[0].Children[0].Slug)
	require.Equal(t, "services", tree[1].Slug)
	require.Empty(t, tree[1].Children)
}

func TestBuildTree_OrphanedChildBecomesRoot(t *testing.T) {
	rows := []*models.Category{
		{ID: "c2", Name: "Engineering", Slug: "engineering", ParentID: lo.ToPtr("missing")},
	}
	tree := buildTree(rows)
	require.Len(t, tree, 1)
	require.Equal(t, "engineering", tree[0].Slug)
}
