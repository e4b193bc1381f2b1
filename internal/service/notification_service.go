package service

import (
	"context"

	"github.com/labstack/gommon/log"

	"adelanta/internal/contract"
	"adelanta/internal/domain/entity"
	"adelanta/internal/domain/events"
	"adelanta/internal/infrastructure/aws/websocket"
	"adelanta/internal/utils"
	"adelanta/internal/utils/apierror"
)

type ConnectionRepository interface {
	Save(conn *entity.Connection) error
	Delete(connID string) error
	FindByEmployeeID(employeeID int64) ([]string, error)
	FindAll() ([]string, error)
	FindStale(now int64, hbLimit int64) ([]*entity.Connection, error)
	UpdateHeartbeat(connID string, now int64) error
}

// NotificationService pushes advance lifecycle events to registered
// dashboard connections. It implements AdvanceNotifier.
type NotificationService struct {
	ConnRepo ConnectionRepository
	Gateway  websocket.GatewayClient
}

func NewNotificationService(repo ConnectionRepository, gateway websocket.GatewayClient) *NotificationService {
	return &NotificationService{
		ConnRepo: repo,
		Gateway:  gateway,
	}
}

func (s *NotificationService) RegisterConnection(employeeID int64, connectionID string, exp int64) apierror.ErrorResponse {
	now := utils.NowUTC()
	conn := &entity.Connection{
		ConnectionID:    connectionID,
		EmployeeID:      employeeID,
		ExpiresAt:       exp * 1000, // "exp" is stored in seconds, our app uses millis
		LastHeartbeatAt: now,        // Avoid dashboards getting disconnected immediately
		CreatedAt:       now,
	}

	if err := s.ConnRepo.Save(conn); err != nil {
		log.Errorf("failed to save connection: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *NotificationService) RemoveConnection(connectionID string) {
	// We don't return error here because if it fails, it's not the client's fault
	_ = s.ConnRepo.Delete(connectionID)
}

func (s *NotificationService) HandleMessage(msg *contract.IncomingSocketMessage, connID string) {
	switch msg.Type {
	case contract.EventPing:
		s.handlePing(connID)
	}
}

// AdvanceRequested broadcasts a fresh advance request to every
// connected dashboard.
func (s *NotificationService) AdvanceRequested(adv *contract.AdvanceResponse) {
	s.Broadcast(context.Background(), &events.AdvanceRequested{AdvanceResponse: adv})
}

// AdvanceStatusChanged notifies the requesting employee's sessions.
func (s *NotificationService) AdvanceStatusChanged(employeeID int64, advanceID int64, status entity.AdvanceStatus) {
	s.Dispatch(context.Background(), employeeID, &events.AdvanceStatusChanged{
		AdvanceID: advanceID,
		Status:    string(status),
	})
}

func (s *NotificationService) Dispatch(ctx context.Context, employeeID int64, evt events.SocketEvent) {
	conns, err := s.ConnRepo.FindByEmployeeID(employeeID)
	if err != nil {
		log.Errorf("failed to fetch connections for employee %d: %v", employeeID, err)
		return
	}

	envelope := &contract.OutgoingSocketMessage{
		Type: evt.GetType(),
		Data: evt,
	}

	for _, connID := range conns {
		// We ignore errors here so one stale connection doesn't block others
		_ = s.Gateway.PostToConnection(ctx, connID, envelope)
	}
}

// Broadcast sends an event to ALL connected dashboards.
// This iterates through every active connection in the DB.
func (s *NotificationService) Broadcast(ctx context.Context, evt events.SocketEvent) {
	conns, err := s.ConnRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch all connections for broadcast: %v", err)
		return
	}

	envelope := &contract.OutgoingSocketMessage{
		Type: evt.GetType(),
		Data: evt,
	}

	for _, connID := range conns {
		_ = s.Gateway.PostToConnection(ctx, connID, envelope)
	}
}

func (s *NotificationService) handlePing(connID string) {
	now := utils.NowUTC()
	err := s.ConnRepo.UpdateHeartbeat(connID, now)
	if err != nil {
		log.Errorf("failed to update heartbeat: %v", err)
		return
	}

	go func(conn string) {
		_ = s.Gateway.PostToConnection(context.Background(), conn, &contract.OutgoingSocketMessage{
			Type: contract.EventAck,
		})
	}(connID)
}
