package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/catalog"
	"github.com/freshcutsco/meat-delivery-platform/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"
)

type Endpoints struct {
	DB          *sql.DB
	RedisClient *redis.Client
	Catalog     *catalog.Catalog
}

// NewHealthHandler registers a check per live dependency. Storage backends
// that are not configured are simply not checked.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "catalog",
			Timeout:   time.Second,
			SkipOnErr: false,
			Check: func(_ context.Context) error {
				if endpoints.Catalog == nil || endpoints.Catalog.Size() == 0 {
					return fmt.Errorf("catalog is empty")
				}
				return nil
			},
		},
	}

	if endpoints.DB != nil {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if endpoints.RedisClient != nil {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "meat-delivery-platform",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
