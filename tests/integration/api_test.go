package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fair-wager-core/config"
	httpHandler "fair-wager-core/internal/adapter/http/handler"
	redisStorage "fair-wager-core/internal/adapter/storage/redis"
	"fair-wager-core/internal/core/domain"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/internal/service"
	"fair-wager-core/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds a full application stack: real HTTP layer, middleware,
// handlers and services, real Redis stores backed by miniredis, and
// in-memory postgres repos. Only the database is faked.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	lockCfg := config.LockConfig{
		TTL:            2 * time.Second,
		AcquireTimeout: 5 * time.Second,
		RetryInterval:  2 * time.Millisecond,
	}
	fairCfg := config.FairnessConfig{
		CrashHouseEdge:     0.01,
		CrashMaxMultiplier: 1000000.0,
		MinesGridSize:      25,
		MaxDrawIterations:  2048,
	}

	log := logger.New("debug", false)

	// Redis stores
	locker := redisStorage.NewAccountLock(rdb, lockCfg, log)
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	events := redisStorage.NewEventPublisher(rdb, log)

	// In-memory repos
	walletRepo := newInMemoryWalletRepo()
	journalRepo := newInMemoryJournalRepo()
	statsRepo := newInMemoryStatsRepo()
	seedRepo := newInMemorySeedRepo()
	transactor := newInMemoryTransactor()

	// Business services
	ledgerSvc := service.NewLedgerService(walletRepo, journalRepo, statsRepo, transactor, locker, idempotencyCache, events, lockCfg, log)
	fairnessSvc := service.NewFairnessService(fairCfg, log)
	seedSvc := service.NewSeedService(seedRepo, transactor, locker, lockCfg, log)
	rateSvc := service.NewRateService(map[string]decimal.Decimal{
		"BTC":  decimal.NewFromInt(60000),
		"USDT": decimal.NewFromInt(1),
		"USD":  decimal.NewFromInt(1),
	}, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		FairnessSvc:    fairnessSvc,
		SeedSvc:        seedSvc,
		RateSvc:        rateSvc,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	server := httptest.NewServer(router)

	return &testApp{
		server: server,
		redis:  mr,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

func (a *testApp) postJSON(t *testing.T, path string, body any) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func (a *testApp) getJSON(t *testing.T, path string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func applyBody(key string, accountID uuid.UUID, asset, kind, amount string) map[string]interface{} {
	return map[string]interface{}{
		"idempotency_key": key,
		"operations": []map[string]interface{}{
			{
				"account_id": accountID.String(),
				"asset":      asset,
				"kind":       kind,
				"amount":     amount,
			},
		},
	}
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, body := app.getJSON(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_DepositBetWinReplay(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	accountID := uuid.New()

	// Deposit 100 USD into a wallet that does not exist yet.
	resp, body := app.postJSON(t, "/v1/ledger/apply", applyBody("d1", accountID, "USD", "DEPOSIT", "100"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "SUCCESS", data["status"])
	assert.Equal(t, true, data["applied"])
	assert.Equal(t, "100", data["balance"])

	// Bet 10.
	resp, body = app.postJSON(t, "/v1/ledger/apply", applyBody("b1", accountID, "USD", "BET", "10"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "SUCCESS", data["status"])
	assert.Equal(t, "90", data["balance"])

	// Win 25.
	resp, body = app.postJSON(t, "/v1/ledger/apply", applyBody("w1", accountID, "USD", "WIN", "25"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "115", data["balance"])

	// Replay the bet key: no second debit, current balance reported.
	resp, body = app.postJSON(t, "/v1/ledger/apply", applyBody("b1", accountID, "USD", "BET", "10"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "SUCCESS", data["status"])
	assert.Equal(t, false, data["applied"])
	assert.Equal(t, "115", data["balance"])

	// Reads agree.
	resp, body = app.getJSON(t, "/v1/ledger/"+accountID.String()+"/balance/USD")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "115", data["balance"])

	resp, body = app.getJSON(t, "/v1/ledger/"+accountID.String()+"/stats/USD")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "100", data["total_deposited"])
	assert.Equal(t, "10", data["total_wagered"])
	assert.Equal(t, "25", data["total_won"])

	resp, body = app.getJSON(t, "/v1/ledger/"+accountID.String()+"/history")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := body["data"].([]interface{})
	assert.Len(t, entries, 3)
}

func TestIntegration_InsufficientFundsLeavesBalanceUntouched(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	accountID := uuid.New()

	resp, _ := app.postJSON(t, "/v1/ledger/apply", applyBody("fund", accountID, "USD", "DEPOSIT", "10"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := app.postJSON(t, "/v1/ledger/apply", applyBody("big-bet", accountID, "USD", "BET", "1000000"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "INSUFFICIENT_FUNDS", data["status"])

	resp, body = app.getJSON(t, "/v1/ledger/"+accountID.String()+"/balance/USD")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "10", data["balance"])
}

func TestIntegration_KeyReuseWithDifferentPayloadConflicts(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	accountID := uuid.New()

	resp, _ := app.postJSON(t, "/v1/ledger/apply", applyBody("k1", accountID, "USD", "DEPOSIT", "100"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := app.postJSON(t, "/v1/ledger/apply", applyBody("k1", accountID, "USD", "DEPOSIT", "50"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LED_001", body["error_code"])
}

func TestIntegration_ValidationErrors(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	accountID := uuid.New()

	// Missing idempotency key fails request binding.
	resp, body := app.postJSON(t, "/v1/ledger/apply", map[string]interface{}{
		"operations": []map[string]interface{}{
			{"account_id": accountID.String(), "asset": "USD", "kind": "DEPOSIT", "amount": "10"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_001", body["error_code"])

	resp, body = app.postJSON(t, "/v1/ledger/apply", applyBody("v1", accountID, "SHELLS", "DEPOSIT", "10"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_002", body["error_code"])

	resp, body = app.postJSON(t, "/v1/ledger/apply", applyBody("v2", accountID, "USD", "SPLIT", "10"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_003", body["error_code"])

	resp, body = app.postJSON(t, "/v1/ledger/apply", applyBody("v3", accountID, "USD", "DEPOSIT", "-5"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_001", body["error_code"])
}

func TestIntegration_SeedLifecycleAndVerification(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	accountID := uuid.New()

	// Activate: only the commitment is published.
	resp, body := app.postJSON(t, "/v1/seeds/activate", map[string]interface{}{
		"account_id":  accountID.String(),
		"client_seed": "alpha",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	commitment := data["commitment"].(string)
	assert.Len(t, commitment, 64)
	assert.Equal(t, "alpha", data["client_seed"])
	_, leaked := data["server_seed"]
	assert.False(t, leaked, "active pair must not reveal the server seed")

	// Second activation is rejected while a pair is active.
	resp, body = app.postJSON(t, "/v1/seeds/activate", map[string]interface{}{
		"account_id": accountID.String(),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "FAIR_004", body["error_code"])

	// Rotate: the retired secret is revealed and matches its commitment.
	resp, body = app.postJSON(t, "/v1/seeds/rotate", map[string]interface{}{
		"account_id":  accountID.String(),
		"client_seed": "beta",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	revealed := data["revealed"].(map[string]interface{})
	active := data["active"].(map[string]interface{})

	serverSeed := revealed["server_seed"].(string)
	require.NotEmpty(t, serverSeed)
	assert.True(t, domain.VerifyCommitment(serverSeed, commitment))
	assert.False(t, revealed["is_active"].(bool))
	assert.NotEqual(t, commitment, active["commitment"])
	assert.Equal(t, "beta", active["client_seed"])

	// The revealed seed replays a deterministic outcome.
	outcomeReq := map[string]interface{}{
		"server_seed": serverSeed,
		"client_seed": "alpha",
		"nonce":       0,
		"game_type":   "DICE",
	}
	resp, body = app.postJSON(t, "/v1/fair/outcome", outcomeReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	outcome := body["data"].(map[string]interface{})
	value := outcome["value"].(float64)
	digest := outcome["digest"].(string)

	resp, body = app.postJSON(t, "/v1/fair/outcome", outcomeReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	again := body["data"].(map[string]interface{})
	assert.Equal(t, value, again["value"].(float64))
	assert.Equal(t, digest, again["digest"].(string))

	// Verification of the claimed value succeeds.
	verifyReq := map[string]interface{}{
		"server_seed":   serverSeed,
		"client_seed":   "alpha",
		"nonce":         0,
		"game_type":     "DICE",
		"claimed_value": value,
	}
	resp, body = app.postJSON(t, "/v1/fair/verify", verifyReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	verdict := body["data"].(map[string]interface{})
	assert.True(t, verdict["is_valid"].(bool))

	// A tampered claim fails.
	verifyReq["claimed_value"] = value + 1
	resp, body = app.postJSON(t, "/v1/fair/verify", verifyReq)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	verdict = body["data"].(map[string]interface{})
	assert.False(t, verdict["is_valid"].(bool))
}

func TestIntegration_SeedCurrentAndRates(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	accountID := uuid.New()

	resp, body := app.getJSON(t, "/v1/seeds/"+accountID.String())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "FAIR_003", body["error_code"])

	resp, _ = app.postJSON(t, "/v1/seeds/activate", map[string]interface{}{
		"account_id": accountID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = app.getJSON(t, "/v1/seeds/"+accountID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["nonce"])

	resp, body = app.getJSON(t, "/v1/rates/BTC")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "60000", data["rate"])
}

// TestIntegration_NoDriftUnderRandomSequence applies a deterministic
// pseudo-random mix of operations and checks two invariants at the end: the
// wallet equals the independently tracked expected balance, and it equals the
// signed sum of every journal entry.
func TestIntegration_NoDriftUnderRandomSequence(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	accountID := uuid.New()
	rng := rand.New(rand.NewSource(42))
	expected := decimal.Zero

	kinds := []string{"DEPOSIT", "BET", "WIN", "WITHDRAW"}
	applied := 0
	for i := 0; i < 200; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		amount := decimal.NewFromInt(int64(rng.Intn(50) + 1))

		resp, body := app.postJSON(t, "/v1/ledger/apply",
			applyBody(fmt.Sprintf("seq-%d", i), accountID, "USD", kind, amount.String()))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]interface{})

		switch kind {
		case "DEPOSIT", "WIN":
			require.Equal(t, "SUCCESS", data["status"])
			expected = expected.Add(amount)
			applied++
		default:
			if expected.GreaterThanOrEqual(amount) {
				require.Equal(t, "SUCCESS", data["status"])
				expected = expected.Sub(amount)
				applied++
			} else {
				require.Equal(t, "INSUFFICIENT_FUNDS", data["status"])
			}
		}
	}

	resp, body := app.getJSON(t, "/v1/ledger/"+accountID.String()+"/balance/USD")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, expected.String(), data["balance"])

	resp, body = app.getJSON(t, "/v1/ledger/"+accountID.String()+"/history?limit=500")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := body["data"].([]interface{})
	require.Len(t, entries, applied)

	sum := decimal.Zero
	for _, raw := range entries {
		entry := raw.(map[string]interface{})
		delta, err := decimal.NewFromString(entry["delta"].(string))
		require.NoError(t, err)
		sum = sum.Add(delta)
	}
	assert.Equal(t, expected.String(), sum.String(), "journal deltas must sum to the balance")
}

func TestIntegration_MultiAccountBatchIsAtomic(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sender := uuid.New()
	receiver := uuid.New()

	resp, _ := app.postJSON(t, "/v1/ledger/apply", applyBody("fund-sender", sender, "USD", "DEPOSIT", "50"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tip := func(key, amount string) map[string]interface{} {
		return map[string]interface{}{
			"idempotency_key": key,
			"operations": []map[string]interface{}{
				{"account_id": sender.String(), "asset": "USD", "kind": "TIP_OUT", "amount": amount},
				{"account_id": receiver.String(), "asset": "USD", "kind": "TIP_IN", "amount": amount},
			},
		}
	}

	resp, body := app.postJSON(t, "/v1/ledger/apply", tip("tip-1", "20"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	require.Equal(t, "SUCCESS", data["status"])
	balances := data["balances"].(map[string]interface{})
	assert.Equal(t, "30", balances[fmt.Sprintf("%s:USD", sender)])
	assert.Equal(t, "20", balances[fmt.Sprintf("%s:USD", receiver)])

	// A tip the sender cannot cover credits nobody.
	resp, body = app.postJSON(t, "/v1/ledger/apply", tip("tip-2", "100"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "INSUFFICIENT_FUNDS", data["status"])

	resp, body = app.getJSON(t, "/v1/ledger/"+receiver.String()+"/balance/USD")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "20", data["balance"])
}
