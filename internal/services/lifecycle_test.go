package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/panel"
)

func newLifecycleFixture(gateway panel.Gateway) (*LifecycleService, *fakeServiceRepo) {
	servers := newFakePanelServerRepo()
	servers.records["srv-1"] = &models.PanelServerRecord{
		ID: "srv-1", Hostname: "panel.example.com", AccessHash: "key-abc",
	}
	serviceRepo := newFakeServiceRepo()
	resolver := NewCredentialResolver(servers, newFakeProductRepo())
	return NewLifecycleService(gateway, serviceRepo, resolver, nil), serviceRepo
}

func TestSuspend_SendsStopAction(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("game-servers/mc-7/control", `{"success": true}`)

	lifecycle, _ := newLifecycleFixture(mock)
	svc := testService()
	svc.AssignedIdentifier = "mc-7"

	if err := lifecycle.Suspend(context.Background(), svc, models.Credentials{}); err != nil {
		t.Fatalf("Suspend failed: %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("Expected one control call, got %d", len(calls))
	}
	body := calls[0].Body.(map[string]interface{})
	if body["action"] != ActionStop {
		t.Errorf("Expected stop action, got %v", body["action"])
	}
}

func TestUnsuspend_SendsStartAction(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("game-servers/mc-7/control", `{"success": true}`)

	lifecycle, _ := newLifecycleFixture(mock)
	svc := testService()
	svc.AssignedIdentifier = "mc-7"

	if err := lifecycle.Unsuspend(context.Background(), svc, models.Credentials{}); err != nil {
		t.Fatalf("Unsuspend failed: %v", err)
	}

	body := mock.Calls()[0].Body.(map[string]interface{})
	if body["action"] != ActionStart {
		t.Errorf("Expected start action, got %v", body["action"])
	}
}

func TestLifecycle_IdentifierMissing(t *testing.T) {
	lifecycle, _ := newLifecycleFixture(panel.NewMockGateway())
	svc := testService() // no identifier stored anywhere

	if err := lifecycle.Suspend(context.Background(), svc, models.Credentials{}); !errors.Is(err, ErrIdentifierMissing) {
		t.Errorf("Suspend: expected ErrIdentifierMissing, got %v", err)
	}
	if err := lifecycle.Terminate(context.Background(), svc, models.Credentials{}); !errors.Is(err, ErrIdentifierMissing) {
		t.Errorf("Terminate: expected ErrIdentifierMissing, got %v", err)
	}
}

func TestLifecycle_UnconfirmedResponseIsError(t *testing.T) {
	mock := panel.NewMockGateway()
	// 2xx without the success flag must not count as confirmation
	mock.Set("game-servers/mc-7/control", `{"status": "maybe"}`)

	lifecycle, _ := newLifecycleFixture(mock)
	svc := testService()
	svc.AssignedIdentifier = "mc-7"

	if err := lifecycle.Suspend(context.Background(), svc, models.Credentials{}); err == nil {
		t.Error("Expected error for unconfirmed control response")
	}
}

func TestTerminate_DeletesAndClearsIdentifier(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("game-servers/mc-7", `{"success": true}`)

	lifecycle, serviceRepo := newLifecycleFixture(mock)
	svc := testService()
	svc.AssignedIdentifier = "mc-7"

	if err := lifecycle.Terminate(context.Background(), svc, models.Credentials{}); err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}

	calls := mock.Calls()
	if calls[0].Method != "DELETE" {
		t.Errorf("Expected DELETE, got %s", calls[0].Method)
	}
	cleared, ok := serviceRepo.identifiers["101"]
	if !ok || cleared != "" {
		t.Errorf("Expected identifier cleared after termination, got %q (present=%v)", cleared, ok)
	}
}

func TestTerminate_RemoteFailurePropagated(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("game-servers/mc-7", &panel.APIError{StatusCode: 500, Message: "boom", Code: "UNKNOWN"})

	lifecycle, serviceRepo := newLifecycleFixture(mock)
	svc := testService()
	svc.AssignedIdentifier = "mc-7"

	err := lifecycle.Terminate(context.Background(), svc, models.Credentials{})
	if panel.AsAPIError(err) == nil {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if _, wrote := serviceRepo.identifiers["101"]; wrote {
		t.Error("Identifier must not be cleared when termination fails")
	}
}

func TestControl_RejectsUnknownAction(t *testing.T) {
	lifecycle, _ := newLifecycleFixture(panel.NewMockGateway())
	svc := testService()
	svc.AssignedIdentifier = "mc-7"

	if err := lifecycle.Control(context.Background(), svc, models.Credentials{}, "detonate"); err == nil {
		t.Error("Expected rejection of unknown control action")
	}
}

func TestControl_RestartAllowed(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("game-servers/mc-7/control", `{"success": true}`)

	lifecycle, _ := newLifecycleFixture(mock)
	svc := testService()
	svc.AssignedIdentifier = "mc-7"

	if err := lifecycle.Control(context.Background(), svc, models.Credentials{}, ActionRestart); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	body := mock.Calls()[0].Body.(map[string]interface{})
	if body["action"] != ActionRestart {
		t.Errorf("Expected restart action, got %v", body["action"])
	}
}
