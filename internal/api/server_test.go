package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/chorepoint/chorepoint/internal/auth"
	"github.com/chorepoint/chorepoint/internal/models"
	"github.com/chorepoint/chorepoint/internal/service"
	"github.com/chorepoint/chorepoint/internal/storage/sqlite"
)

type testAPI struct {
	server *httptest.Server
	users  *service.UserService
	jwt    *auth.JWTManager
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	achievements := service.NewAchievementService(store, logger)
	users := service.NewUserService(store, achievements, logger)
	tasks := service.NewTaskService(store, achievements, logger)
	rewards := service.NewRewardService(store, logger)
	authSvc := service.NewAuthService(store, jwtManager, logger)

	srv := NewServer(users, tasks, achievements, rewards, authSvc, jwtManager)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testAPI{server: ts, users: users, jwt: jwtManager}
}

// caregiverToken seeds a caregiver directly through the service layer and
// mints a session token for it. Creating users over HTTP needs a caregiver
// session already, so tests bootstrap the first one here.
func (a *testAPI) caregiverToken(t *testing.T) (string, *models.User) {
	t.Helper()
	caregiver, err := a.users.Create(context.Background(), "Parent", models.RoleCaregiver)
	if err != nil {
		t.Fatalf("Failed to seed caregiver: %v", err)
	}
	token, err := a.jwt.Generate(caregiver)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token, caregiver
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	api := setupAPI(t)

	resp := api.do(t, http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestCaregiverRoutesRequireToken(t *testing.T) {
	api := setupAPI(t)

	t.Run("missing token is rejected", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/users", "", createUserRequest{Name: "Kid", Role: "CHILD"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/users", "not-a-token", createUserRequest{Name: "Kid", Role: "CHILD"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("child session is forbidden", func(t *testing.T) {
		child, err := api.users.Create(context.Background(), "Kid", models.RoleChild)
		if err != nil {
			t.Fatalf("Failed to seed child: %v", err)
		}
		token, err := api.jwt.Generate(child)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		resp := api.do(t, http.MethodPost, "/api/users", token, createUserRequest{Name: "Sib", Role: "CHILD"})
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", resp.StatusCode)
		}
	})
}

func TestUserEndpoints(t *testing.T) {
	api := setupAPI(t)
	token, _ := api.caregiverToken(t)

	var created models.User
	t.Run("create child", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/users", token, createUserRequest{Name: "Maya", Role: "CHILD"})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
		decodeBody(t, resp, &created)
		if created.ID == "" || created.TokenBalance != 0 {
			t.Errorf("Expected new user with zero balance, got %+v", created)
		}
	})

	t.Run("invalid role is a 400", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/users", token, createUserRequest{Name: "X", Role: "ROBOT"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("get user", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/api/users/"+created.ID, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var user models.User
		decodeBody(t, resp, &user)
		if user.Name != "Maya" {
			t.Errorf("Expected Maya, got %s", user.Name)
		}
	})

	t.Run("unknown user is a 404", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/api/users/no-such-id", "", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("adjust balance goes negative on the admin path", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/users/"+created.ID+"/tokens/adjust", token, adjustBalanceRequest{Delta: -5})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var user models.User
		decodeBody(t, resp, &user)
		if user.TokenBalance != -5 {
			t.Errorf("Expected balance -5, got %d", user.TokenBalance)
		}
	})
}

func TestTaskCompletionFlow(t *testing.T) {
	api := setupAPI(t)
	token, _ := api.caregiverToken(t)

	ctx := context.Background()
	child, err := api.users.Create(ctx, "Theo", models.RoleChild)
	if err != nil {
		t.Fatalf("Failed to seed child: %v", err)
	}

	var task models.Task
	t.Run("create uses category default reward", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/tasks", token, createTaskRequest{
			Title:      "Do homework",
			Category:   "HOMEWORK",
			AssignedTo: child.ID,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
		decodeBody(t, resp, &task)
		if task.TokenReward != 15 {
			t.Errorf("Expected homework reward 15, got %d", task.TokenReward)
		}
	})

	t.Run("unknown category is a 400", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/tasks", token, createTaskRequest{
			Title:      "Mystery",
			Category:   "YARD_WORK",
			AssignedTo: child.ID,
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("complete grants tokens and reports unlocks", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/tasks/"+task.ID+"/complete", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		var result service.CompletionResult
		decodeBody(t, resp, &result)
		if result.TokensGranted != 15 {
			t.Errorf("Expected 15 tokens granted, got %d", result.TokensGranted)
		}
		if result.NewBalance != 15 {
			t.Errorf("Expected balance 15, got %d", result.NewBalance)
		}

		unlockedTypes := make(map[models.AchievementType]bool)
		for _, a := range result.Unlocked {
			unlockedTypes[a.Type] = true
		}
		if !unlockedTypes[models.AchievementFirstSteps] {
			t.Error("Expected FIRST_STEPS to unlock on first completion")
		}
	})

	t.Run("double completion is a 409", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/tasks/"+task.ID+"/complete", "", nil)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("undo reverts the task and the balance", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/tasks/"+task.ID+"/undo", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		resp = api.do(t, http.MethodGet, "/api/users/"+child.ID, "", nil)
		var user models.User
		decodeBody(t, resp, &user)
		if user.TokenBalance != 0 {
			t.Errorf("Expected balance back to 0, got %d", user.TokenBalance)
		}
	})

	t.Run("achievements listing shows progress", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/api/achievements?user_id="+child.ID, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var body struct {
			Achievements []models.Achievement `json:"achievements"`
		}
		decodeBody(t, resp, &body)
		if len(body.Achievements) != len(models.AchievementTypes()) {
			t.Errorf("Expected %d records, got %d", len(models.AchievementTypes()), len(body.Achievements))
		}
	})
}

func TestRewardEndpoints(t *testing.T) {
	api := setupAPI(t)
	token, _ := api.caregiverToken(t)

	ctx := context.Background()
	child, err := api.users.Create(ctx, "Nora", models.RoleChild)
	if err != nil {
		t.Fatalf("Failed to seed child: %v", err)
	}
	if _, err := api.users.AdjustBalance(ctx, child.ID, 50); err != nil {
		t.Fatalf("Failed to grant tokens: %v", err)
	}

	var reward models.Reward
	t.Run("create reward", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/rewards", token, createRewardRequest{
			Title:     "Movie night",
			TokenCost: 30,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
		decodeBody(t, resp, &reward)
		if !reward.Active {
			t.Error("Expected new reward to be active")
		}
	})

	t.Run("redeem spends tokens", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/rewards/"+reward.ID+"/redeem", "", redeemRequest{UserID: child.ID})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var result service.RedemptionResult
		decodeBody(t, resp, &result)
		if result.NewBalance != 20 {
			t.Errorf("Expected balance 20 after redeeming, got %d", result.NewBalance)
		}
	})

	t.Run("insufficient balance is a 409", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/rewards/"+reward.ID+"/redeem", "", redeemRequest{UserID: child.ID})
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("retire then hide from default listing", func(t *testing.T) {
		resp := api.do(t, http.MethodPatch, "/api/rewards/"+reward.ID, token, setRewardActiveRequest{Active: false})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		resp = api.do(t, http.MethodGet, "/api/rewards", "", nil)
		var body struct {
			Rewards []models.Reward `json:"rewards"`
		}
		decodeBody(t, resp, &body)
		for _, r := range body.Rewards {
			if r.ID == reward.ID {
				t.Error("Expected retired reward to be hidden")
			}
		}
	})

	t.Run("redemption history", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/api/rewards/redemptions?user_id="+child.ID, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var body struct {
			Redemptions []models.Redemption `json:"redemptions"`
		}
		decodeBody(t, resp, &body)
		if len(body.Redemptions) != 1 {
			t.Errorf("Expected 1 redemption, got %d", len(body.Redemptions))
		}
	})
}

func TestPinFlowOverHTTP(t *testing.T) {
	api := setupAPI(t)
	token, caregiver := api.caregiverToken(t)

	t.Run("set pin", func(t *testing.T) {
		resp := api.do(t, http.MethodPut, "/api/auth/pin", token, setPINRequest{PIN: "4321"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("verify with wrong pin is a 401", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/auth/pin/verify", "", verifyPINRequest{UserID: caregiver.ID, PIN: "0000"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("verify issues a working session token", func(t *testing.T) {
		resp := api.do(t, http.MethodPost, "/api/auth/pin/verify", "", verifyPINRequest{UserID: caregiver.ID, PIN: "4321"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var body map[string]string
		decodeBody(t, resp, &body)
		if body["token"] == "" {
			t.Fatal("Expected a session token")
		}

		resp = api.do(t, http.MethodPost, "/api/users", body["token"], createUserRequest{Name: "Zoe", Role: "CHILD"})
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("Expected 201 using issued token, got %d", resp.StatusCode)
		}
	})
}
