package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/panel"
)

func testService() *models.Service {
	return &models.Service{
		ServiceID:     "101",
		ProductID:     "prod-1",
		PanelServerID: "srv-1",
		Password:      "secret",
		Client: models.ClientDetails{
			ClientID:  "55",
			Email:     "alex@example.com",
			FirstName: "Alex",
			LastName:  "Doe",
		},
		CustomFields:  map[string]string{},
		ConfigOptions: map[string]string{},
	}
}

func newProvisioningFixture(gateway panel.Gateway) (*ProvisioningService, *fakeServiceRepo) {
	servers := newFakePanelServerRepo()
	servers.records["srv-1"] = &models.PanelServerRecord{
		ID:         "srv-1",
		Hostname:   "panel.example.com",
		AccessHash: "key-abc",
		Type:       models.PanelServerType,
	}
	products := newFakeProductRepo()
	products.products["prod-1"] = &models.Product{
		ID:   "prod-1",
		Name: "Minecraft Premium",
		Options: models.ModuleOptions{
			GameConfigID: "game-1",
			NameFormat:   "{product}",
		},
	}

	serviceRepo := newFakeServiceRepo()
	resolver := NewCredentialResolver(servers, products)
	naming := NewNamingService(products, nil)

	return NewProvisioningService(gateway, serviceRepo, resolver, naming, nil), serviceRepo
}

func TestEnsureUserExists_Idempotent(t *testing.T) {
	mock := panel.NewMockGateway()
	svc := testService()
	provisioning, _ := newProvisioningFixture(mock)
	creds := models.Credentials{Endpoint: "https://panel.example.com", Key: "key-abc"}

	// First invocation: lookup misses, user is created
	mock.Set("users?email=", `{"data":{"users":[]}}`)
	mock.Set("settings/users", `{"_id":"user-9"}`)

	userID, err := provisioning.EnsureUserExists(context.Background(), creds, svc.Client, svc.Password)
	if err != nil {
		t.Fatalf("First invocation failed: %v", err)
	}
	if userID != "user-9" {
		t.Fatalf("Expected created user id, got %q", userID)
	}

	// Second invocation: the user now exists, lookup must short-circuit
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9","email":"alex@example.com"}]}}`)

	userID, err = provisioning.EnsureUserExists(context.Background(), creds, svc.Client, svc.Password)
	if err != nil {
		t.Fatalf("Second invocation failed: %v", err)
	}
	if userID != "user-9" {
		t.Fatalf("Expected looked-up user id, got %q", userID)
	}

	if creates := mock.CallCount("settings/users"); creates != 1 {
		t.Errorf("Expected exactly one create across two invocations, got %d", creates)
	}
}

func TestCreate_Success(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", `{"gameServer":{"serverId":"mc-7"}}`)

	provisioning, serviceRepo := newProvisioningFixture(mock)
	svc := testService()

	serverID, err := provisioning.Create(context.Background(), svc, models.Credentials{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if serverID != "mc-7" {
		t.Errorf("Expected server id mc-7, got %q", serverID)
	}

	// Identifier persisted onto the billing record
	if serviceRepo.identifiers["101"] != "mc-7" {
		t.Errorf("Expected persisted identifier, got %q", serviceRepo.identifiers["101"])
	}
	// Username synced to the contact email
	if serviceRepo.usernames["101"] != "alex@example.com" {
		t.Errorf("Expected username sync, got %q", serviceRepo.usernames["101"])
	}
}

func TestCreate_MirrorsIdentifierIntoCustomField(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", `{"gameServer":{"serverId":"mc-7"}}`)

	provisioning, serviceRepo := newProvisioningFixture(mock)
	svc := testService()

	if _, err := provisioning.Create(context.Background(), svc, models.Credentials{}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The custom field is the last identifier fallback read by
	// ResolveServerID, so it must carry the same value
	mirrored := serviceRepo.customFields["101/"+ServerIDCustomField]
	if mirrored != "mc-7" {
		t.Errorf("Expected identifier mirrored into %q, got %q", ServerIDCustomField, mirrored)
	}
}

func TestCreate_FlatIdentifierShape(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", `{"serverId":"mc-8"}`)

	provisioning, _ := newProvisioningFixture(mock)

	serverID, err := provisioning.Create(context.Background(), testService(), models.Credentials{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if serverID != "mc-8" {
		t.Errorf("Expected flat server id, got %q", serverID)
	}
}

func TestCreate_NoIdentifierReturned(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", `{}`)

	provisioning, serviceRepo := newProvisioningFixture(mock)

	_, err := provisioning.Create(context.Background(), testService(), models.Credentials{})
	if !errors.Is(err, ErrProvisioningFailed) {
		t.Fatalf("Expected ErrProvisioningFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "no identifier returned") {
		t.Errorf("Expected 'no identifier returned' in message, got %q", err.Error())
	}
	if serviceRepo.identifiers["101"] != "" {
		t.Error("No identifier must be persisted on failure")
	}
}

func TestCreate_RemoteFailureSurfaced(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", &panel.APIError{
		StatusCode: 401,
		Message:    "Authentication failed",
		Code:       "AUTH",
	})

	provisioning, _ := newProvisioningFixture(mock)

	_, err := provisioning.Create(context.Background(), testService(), models.Credentials{})
	if !errors.Is(err, ErrProvisioningFailed) {
		t.Fatalf("Expected ErrProvisioningFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Authentication failed") {
		t.Errorf("Expected remote message surfaced, got %q", err.Error())
	}
}

func TestCreate_CredentialsMissing(t *testing.T) {
	provisioning, _ := newProvisioningFixture(panel.NewMockGateway())
	svc := testService()
	svc.PanelServerID = ""
	svc.ProductID = ""

	_, err := provisioning.Create(context.Background(), svc, models.Credentials{})
	if !errors.Is(err, ErrCredentialsMissing) {
		t.Fatalf("Expected ErrCredentialsMissing, got %v", err)
	}
}

func TestCreate_GameTypeMissing(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)

	servers := newFakePanelServerRepo()
	servers.records["srv-1"] = &models.PanelServerRecord{
		ID: "srv-1", Hostname: "panel.example.com", AccessHash: "key-abc",
	}
	products := newFakeProductRepo()
	products.products["prod-1"] = &models.Product{ID: "prod-1", Name: "Rust Hosting"}

	provisioning := NewProvisioningService(
		mock,
		newFakeServiceRepo(),
		NewCredentialResolver(servers, products),
		NewNamingService(products, nil),
		nil,
	)

	_, err := provisioning.Create(context.Background(), testService(), models.Credentials{})
	if !errors.Is(err, ErrGameTypeMissing) {
		t.Fatalf("Expected ErrGameTypeMissing, got %v", err)
	}
}

func TestCreate_GameTypeFromCustomField(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", `{"serverId":"mc-9"}`)

	servers := newFakePanelServerRepo()
	servers.records["srv-1"] = &models.PanelServerRecord{
		ID: "srv-1", Hostname: "panel.example.com", AccessHash: "key-abc",
	}
	products := newFakeProductRepo()
	products.products["prod-1"] = &models.Product{ID: "prod-1", Name: "Rust Hosting"}

	provisioning := NewProvisioningService(
		mock,
		newFakeServiceRepo(),
		NewCredentialResolver(servers, products),
		NewNamingService(products, nil),
		nil,
	)

	svc := testService()
	svc.CustomFields[GameConfigCustomField] = "game-from-field"

	if _, err := provisioning.Create(context.Background(), svc, models.Credentials{}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The submitted payload must carry the custom-field game id
	var payload map[string]interface{}
	for _, call := range mock.Calls() {
		if call.Path == "game-servers" {
			payload = call.Body.(map[string]interface{})
		}
	}
	if payload == nil {
		t.Fatal("No creation request observed")
	}
	if payload["gameId"] != "game-from-field" {
		t.Errorf("Expected game id from custom field, got %v", payload["gameId"])
	}
}

func TestCreate_UserBindingFailed(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[]}}`)
	mock.Set("settings/users", &panel.TransportError{Message: "connect refused"})

	provisioning, _ := newProvisioningFixture(mock)

	_, err := provisioning.Create(context.Background(), testService(), models.Credentials{})
	if !errors.Is(err, ErrUserBindingFailed) {
		t.Fatalf("Expected ErrUserBindingFailed, got %v", err)
	}
}

func TestCreate_PersistFailureDoesNotFailProvisioning(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", `{"gameServer":{"serverId":"mc-7"}}`)

	provisioning, serviceRepo := newProvisioningFixture(mock)
	serviceRepo.updateErr = errors.New("store down")

	// The remote server exists once creation succeeded; a failed local
	// write must not invalidate the outcome
	serverID, err := provisioning.Create(context.Background(), testService(), models.Credentials{})
	if err != nil {
		t.Fatalf("Expected success despite persist failure, got %v", err)
	}
	if serverID != "mc-7" {
		t.Errorf("Expected server id mc-7, got %q", serverID)
	}
}

func TestCreate_PayloadShape(t *testing.T) {
	mock := panel.NewMockGateway()
	mock.Set("users?email=", `{"data":{"users":[{"_id":"user-9"}]}}`)
	mock.Set("game-servers", `{"serverId":"mc-1"}`)

	servers := newFakePanelServerRepo()
	servers.records["srv-1"] = &models.PanelServerRecord{
		ID: "srv-1", Hostname: "panel.example.com", AccessHash: "key-abc",
	}
	products := newFakeProductRepo()
	products.products["prod-1"] = &models.Product{
		ID:   "prod-1",
		Name: "Valheim",
		Options: models.ModuleOptions{
			GameConfigID: "game-1",
			NodeID:       "node-3",
			Location:     "eu-central",
			AutoDeploy:   "on",
		},
	}

	provisioning := NewProvisioningService(
		mock,
		newFakeServiceRepo(),
		NewCredentialResolver(servers, products),
		NewNamingService(products, nil),
		nil,
	)

	svc := testService()
	svc.ConfigOptions = map[string]string{"World Size": "large"}

	if _, err := provisioning.Create(context.Background(), svc, models.Credentials{}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var payload map[string]interface{}
	for _, call := range mock.Calls() {
		if call.Path == "game-servers" {
			payload = call.Body.(map[string]interface{})
		}
	}
	if payload == nil {
		t.Fatal("No creation request observed")
	}

	if payload["name"] != "Valheim" {
		t.Errorf("Expected resolved name, got %v", payload["name"])
	}
	if payload["ownerId"] != "user-9" {
		t.Errorf("Expected bound owner id, got %v", payload["ownerId"])
	}
	if payload["autoInstall"] != true {
		t.Errorf("Expected autoInstall true for 'on', got %v", payload["autoInstall"])
	}
	if payload["startAfterInstall"] != true {
		t.Errorf("Expected startAfterInstall true, got %v", payload["startAfterInstall"])
	}
	if payload["assignmentType"] != "automatic" {
		t.Errorf("Expected automatic port assignment, got %v", payload["assignmentType"])
	}
	if payload["nodeId"] != "node-3" {
		t.Errorf("Expected node hint, got %v", payload["nodeId"])
	}
	if payload["location"] != "eu-central" {
		t.Errorf("Expected location hint, got %v", payload["location"])
	}
	overrides := payload["configOverrides"].(map[string]string)
	if overrides["World Size"] != "large" {
		t.Errorf("Expected config override forwarded, got %v", overrides)
	}
}

func TestAutoDeployEnabled(t *testing.T) {
	truthy := []string{"on", "1", "yes"}
	for _, v := range truthy {
		if !autoDeployEnabled(v) {
			t.Errorf("Expected %q to enable auto deploy", v)
		}
	}
	falsy := []string{"", "no", "off", "0", "true", "YES"}
	for _, v := range falsy {
		if autoDeployEnabled(v) {
			t.Errorf("Expected %q to disable auto deploy", v)
		}
	}
}
