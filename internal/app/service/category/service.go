package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/logctx"
	"github.com/quicklist/marketplace/pkg/tool"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrSlugTaken     = errors.New("category slug already in use")
	ErrUnknownParent = errors.New("parent category not found")
)

const treeCacheKey = "marketplace:category_tree"

// TreeNode is one category with its children, as served to browsers.
type TreeNode struct {
	*models.Category
	Children []*TreeNode `json:"children"`
}

type CreateRequest struct {
	ParentID  *string `json:"parent_id"`
	Name      string  `json:"name" binding:"required"`
	Slug      string  `json:"slug" binding:"required"`
	SortOrder int     `json:"sort_order"`
}

type Service struct {
	cfg *config.Config
	log *zap.SugaredLogger
	db  *gorm.DB
	rdb *redis.Client
}

func New(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{cfg: cfg, log: log, db: db, rdb: rdb}
}

// Tree returns the whole category tree, served from redis when possible.
// Cache problems are logged and fall through to the database.
func (s *Service) Tree(ctx context.Context) ([]*TreeNode, error) {
	if cached, err := s.rdb.Get(ctx, treeCacheKey).Bytes(); err == nil {
		var tree []*TreeNode
		if err := json.Unmarshal(cached, &tree); err == nil {
			return tree, nil
		}
		logctx.FromCtx(ctx, s.log).Warnw("dropping unreadable category tree cache entry")
		s.rdb.Del(ctx, treeCacheKey)
	} else if !errors.Is(err, redis.Nil) {
		logctx.FromCtx(ctx, s.log).Warnw("category tree cache read failed", "err", err)
	}

	var rows []*models.Category
	if err := s.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	tree := buildTree(rows)

	if payload, err := json.Marshal(tree); err == nil {
		ttl := time.Duration(s.cfg.Redis.CategoryTTLSeconds) * time.Second
		if err := s.rdb.Set(ctx, treeCacheKey, payload, ttl).Err(); err != nil {
			logctx.FromCtx(ctx, s.log).Warnw("category tree cache write failed", "err", err)
		}
	}
	return tree, nil
}

// buildTree links flat rows into parent/child nodes, keeping input order.
func buildTree(rows []*models.Category) []*TreeNode {
	nodes := make(map[string]*TreeNode, len(rows))
	for _, row := range rows {
		nodes[row.ID] = &TreeNode{Category: row, Children: []*TreeNode{}}
	}
	roots := make([]*TreeNode, 0)
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentID != nil {
			if parent, ok := nodes[*row.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var row models.Category
	if err := s.db.WithContext(ctx).First(&row, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &row, nil
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*models.Category, error) {
	row := &models.Category{
		ID:        tool.GenerateUUIDV7(),
		ParentID:  req.ParentID,
		Name:      req.Name,
		Slug:      req.Slug,
		SortOrder: req.SortOrder,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("slug = ?", req.Slug).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if count > 0 {
			return ErrSlugTaken
		}
		if req.ParentID != nil {
			var parent models.Category
			if err := tx.First(&parent, "id = ?", *req.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUnknownParent
				}
				return fmt.Errorf("failed to load parent category: %w", err)
			}
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Del(ctx, treeCacheKey).Err(); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("category tree cache invalidation failed", "err", err)
	}
	return row, nil
}
