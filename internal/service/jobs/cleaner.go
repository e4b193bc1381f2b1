package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/service"
	"adelanta/internal/utils"
)

type ConnectionCleaner struct {
	notifications *service.NotificationService
}

func NewConnectionCleaner(notifications *service.NotificationService) *ConnectionCleaner {
	return &ConnectionCleaner{notifications: notifications}
}

func (c *ConnectionCleaner) Start(ctx context.Context) {
	// Poll every 5 minutes
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	log.Info("Connection cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping connection cleaner...")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *ConnectionCleaner) cleanup() {
	now := utils.NowUTC()
	hbLimit := now - entity.HeartbeatPeriodMillis - entity.HeartbeatToleranceMillis
	conns, err := c.notifications.ConnRepo.FindStale(now, hbLimit)
	if err != nil {
		log.Errorf("Cleaner: failed to fetch stale connections: %v", err)
		return
	}

	if len(conns) == 0 {
		return
	}

	log.Infof("Cleaner: Found %d stale connections. Terminating...", len(conns))

	envelope := contract.OutgoingSocketMessage{
		Type: contract.EventSessionExpired,
	}

	for _, conn := range conns {
		// Use a fresh context for network calls, detached from the ticker's timing
		bgCtx := context.Background()

		// Notify Client (So they know NOT to try reconnecting)
		_ = c.notifications.Gateway.PostToConnection(bgCtx, conn.ConnectionID, envelope)

		// Tell AWS we are dropping the connection
		_ = c.notifications.Gateway.DeleteConnection(bgCtx, conn.ConnectionID)

		// Remove from our DB
		_ = c.notifications.ConnRepo.Delete(conn.ConnectionID)
	}
}
