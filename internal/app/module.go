package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/quicklist/marketplace/internal/app/api/server"
	"github.com/quicklist/marketplace/internal/app/service/candidate"
	"github.com/quicklist/marketplace/internal/app/service/category"
	"github.com/quicklist/marketplace/internal/app/service/listing"
	"github.com/quicklist/marketplace/internal/app/service/order"
	"github.com/quicklist/marketplace/internal/app/service/pricing"
	"github.com/quicklist/marketplace/internal/app/service/revenue"
	"github.com/quicklist/marketplace/internal/app/service/upsell"
	"github.com/quicklist/marketplace/internal/platform/cache"
	"github.com/quicklist/marketplace/internal/platform/db"
	"github.com/quicklist/marketplace/internal/platform/paypalclient"
	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	cache.Module,
	paypalclient.Module,
	server.Module,
	pricing.Module,
	revenue.Module,
	upsell.Module,
	listing.Module,
	category.Module,
	candidate.Module,
	order.Module,
)
