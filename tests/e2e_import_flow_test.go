package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/repfit/repfit-api/internal/config"
	"github.com/repfit/repfit-api/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestImportFlow walks the full member journey: login, template authoring by
// an admin, plan creation, preview, import, and re-import with a wipe.
func TestImportFlow(t *testing.T) {
	// 1. Setup Infrastructure
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	mockAuth := NewMockAuthClient()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-123"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Server.IdempotencyTTL = time.Minute

	// 2. Initialize App
	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
		AuthClient:  mockAuth,
	})

	// Helper for requests
	request := func(method, path, token string, body interface{}, headers map[string]string) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	decode := func(resp *http.Response) map[string]interface{} {
		var data map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		return data
	}

	// ==========================================
	// STEP 1: Admin Login
	// ==========================================
	// Registration only hands out the member role, so the admin account is
	// seeded directly.
	_, err = db.Collection("users").InsertOne(t.Context(), map[string]interface{}{
		"email":        "admin@repfit.app",
		"firebase_uid": "uid_admin",
		"roles":        []string{"admin"},
		"name":         "Catalog Admin",
	})
	require.NoError(t, err)
	mockAuth.AddMockUser("token_admin", "uid_admin", "admin@repfit.app")

	resp := request("POST", "/v1/auth/login", "token_admin", nil, nil)
	assert.Equal(t, 200, resp.StatusCode)
	adminToken := decode(resp)["token"].(string)
	require.NotEmpty(t, adminToken)

	fmt.Println("✓ Admin Logged In")

	// ==========================================
	// STEP 2: Member Login (first login registers)
	// ==========================================
	mockAuth.AddMockUser("token_member", "uid_member", "member@repfit.app")

	resp = request("POST", "/v1/auth/login", "token_member", nil, nil)
	assert.Equal(t, 200, resp.StatusCode)
	loginData := decode(resp)
	assert.Equal(t, true, loginData["is_new_user"])
	memberToken := loginData["token"].(string)
	require.NotEmpty(t, memberToken)

	fmt.Println("✓ Member Registered & Logged In")

	// ==========================================
	// STEP 3: Admin creates catalog + template
	// ==========================================
	resp = request("POST", "/v1/workouts", adminToken, map[string]interface{}{
		"name":         "Barbell Bench Press",
		"muscle_group": "Chest",
		"equipment":    "Barbell",
	}, nil)
	assert.Equal(t, 201, resp.StatusCode)
	benchID := decode(resp)["id"].(string)

	resp = request("POST", "/v1/workouts", adminToken, map[string]interface{}{
		"name":         "Barbell Row",
		"muscle_group": "Back",
		"equipment":    "Barbell",
	}, nil)
	assert.Equal(t, 201, resp.StatusCode)
	rowID := decode(resp)["id"].(string)

	week := map[string]interface{}{
		"days": []map[string]interface{}{
			{"name": "Push", "workout_ids": []string{benchID}},
			{"name": "Pull", "workout_ids": []string{rowID}},
		},
	}
	resp = request("POST", "/v1/templates", adminToken, map[string]interface{}{
		"name":          "Push Pull",
		"num_weeks":     2,
		"days_per_week": 2,
		"weeks":         []interface{}{week, week},
	}, nil)
	assert.Equal(t, 201, resp.StatusCode)
	tplID := decode(resp)["id"].(string)

	fmt.Println("✓ Catalog & Template Created")

	// ==========================================
	// STEP 4: Import before a plan exists fails in the body
	// ==========================================
	importBody := map[string]interface{}{
		"template_id": tplID,
		"start_date":  "2024-01-01", // Monday
		"days":        []string{"monday", "thursday"},
	}
	resp = request("POST", "/v1/me/plan/import", memberToken, importBody, nil)
	assert.Equal(t, 200, resp.StatusCode)
	importData := decode(resp)
	assert.Equal(t, false, importData["success"])
	assert.Equal(t, "failed", importData["status"])
	assert.Equal(t, "Could not find workout plan", importData["error"])

	fmt.Println("✓ Import Without Plan Rejected")

	// ==========================================
	// STEP 5: Member creates a plan
	// ==========================================
	resp = request("POST", "/v1/me/plan", memberToken, map[string]interface{}{
		"name": "Strength Block",
	}, nil)
	assert.Equal(t, 201, resp.StatusCode)

	// Second active plan is refused
	resp = request("POST", "/v1/me/plan", memberToken, map[string]interface{}{}, nil)
	assert.Equal(t, 409, resp.StatusCode)

	fmt.Println("✓ Plan Created")

	// ==========================================
	// STEP 6: Preview
	// ==========================================
	resp = request("POST", "/v1/me/plan/import/preview", memberToken, importBody, nil)
	assert.Equal(t, 200, resp.StatusCode)
	previewData := decode(resp)
	assert.EqualValues(t, 4, previewData["count"])

	items := previewData["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "2024-01-01", first["scheduled_date"])
	assert.Equal(t, "Barbell Bench Press", first["workout_name"])

	fmt.Println("✓ Preview Verified")

	// ==========================================
	// STEP 7: Import
	// ==========================================
	resp = request("POST", "/v1/me/plan/import", memberToken, importBody, nil)
	assert.Equal(t, 200, resp.StatusCode)
	importData = decode(resp)
	assert.Equal(t, true, importData["success"])
	assert.Equal(t, "complete", importData["status"])
	assert.EqualValues(t, 4, importData["items_created"])

	resp = request("GET", "/v1/me/plan/items", memberToken, nil, nil)
	assert.Equal(t, 200, resp.StatusCode)
	itemsData := decode(resp)
	planItems := itemsData["items"].([]interface{})
	require.Len(t, planItems, 4)

	// Items come back sorted by scheduled date: Mon, Thu, Mon, Thu
	firstItem := planItems[0].(map[string]interface{})
	assert.Equal(t, "2024-01-01", firstItem["scheduled_date"])
	assert.Equal(t, benchID, firstItem["workout_id"])
	lastItem := planItems[3].(map[string]interface{})
	assert.Equal(t, "2024-01-11", lastItem["scheduled_date"])
	assert.Equal(t, rowID, lastItem["workout_id"])

	fmt.Println("✓ Import Verified")

	// ==========================================
	// STEP 8: Date-range query
	// ==========================================
	resp = request("GET", "/v1/me/plan/items?from=2024-01-01&to=2024-01-07", memberToken, nil, nil)
	assert.Equal(t, 200, resp.StatusCode)
	itemsData = decode(resp)
	assert.Len(t, itemsData["items"].([]interface{}), 2)

	// ==========================================
	// STEP 9: Complete an item
	// ==========================================
	resp = request("PATCH", "/v1/me/plan/items/"+firstItem["id"].(string)+"/complete", memberToken, map[string]interface{}{
		"completed": true,
	}, nil)
	assert.Equal(t, 200, resp.StatusCode)

	objID, _ := primitive.ObjectIDFromHex(firstItem["id"].(string))
	var itemDoc map[string]interface{}
	err = db.Collection("plan_items").FindOne(t.Context(), map[string]interface{}{"_id": objID}).Decode(&itemDoc)
	require.NoError(t, err)
	assert.Equal(t, true, itemDoc["completed"])

	fmt.Println("✓ Item Completed")

	// ==========================================
	// STEP 9b: A different member cannot complete someone else's item
	// ==========================================
	mockAuth.AddMockUser("token_intruder", "uid_intruder", "intruder@repfit.app")
	resp = request("POST", "/v1/auth/login", "token_intruder", nil, nil)
	require.Equal(t, 200, resp.StatusCode)
	intruderToken := decode(resp)["token"].(string)

	resp = request("POST", "/v1/me/plan", intruderToken, map[string]interface{}{
		"name": "Intruder Plan",
	}, nil)
	require.Equal(t, 201, resp.StatusCode)

	resp = request("PATCH", "/v1/me/plan/items/"+firstItem["id"].(string)+"/complete", intruderToken, map[string]interface{}{
		"completed": false,
	}, nil)
	assert.Equal(t, 403, resp.StatusCode)

	err = db.Collection("plan_items").FindOne(t.Context(), map[string]interface{}{"_id": objID}).Decode(&itemDoc)
	require.NoError(t, err)
	assert.Equal(t, true, itemDoc["completed"], "foreign member must not flip the completed flag")

	fmt.Println("✓ Cross-User Completion Rejected")

	// ==========================================
	// STEP 10: Re-import with clear_existing replaces the schedule
	// ==========================================
	reimportBody := map[string]interface{}{
		"template_id":    tplID,
		"start_date":     "2024-02-05", // Monday
		"days":           []string{"wednesday"},
		"clear_existing": true,
	}
	resp = request("POST", "/v1/me/plan/import", memberToken, reimportBody, nil)
	assert.Equal(t, 200, resp.StatusCode)
	importData = decode(resp)
	assert.Equal(t, "complete", importData["status"])
	assert.EqualValues(t, 4, importData["items_created"])

	resp = request("GET", "/v1/me/plan/items", memberToken, nil, nil)
	itemsData = decode(resp)
	planItems = itemsData["items"].([]interface{})
	require.Len(t, planItems, 4)
	// Start is a Monday and only Wednesday is selected: first slot lands on
	// Wed Feb 7, second extends to Thu Feb 8
	assert.Equal(t, "2024-02-07", planItems[0].(map[string]interface{})["scheduled_date"])
	assert.Equal(t, "2024-02-08", planItems[1].(map[string]interface{})["scheduled_date"])

	fmt.Println("✓ Re-Import With Clear Verified")

	// ==========================================
	// STEP 11: Idempotent replay via X-Correlation-ID
	// ==========================================
	headers := map[string]string{"X-Correlation-ID": "import-replay-1"}
	resp = request("POST", "/v1/me/plan/import", memberToken, reimportBody, headers)
	assert.Equal(t, 200, resp.StatusCode)
	firstBody, _ := io.ReadAll(resp.Body)

	// Response caching is fire-and-forget, give it a beat
	time.Sleep(200 * time.Millisecond)

	resp = request("POST", "/v1/me/plan/import", memberToken, reimportBody, headers)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replay"))
	replayBody, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, string(firstBody), string(replayBody))

	fmt.Println("✓ Idempotent Replay Verified")
}
