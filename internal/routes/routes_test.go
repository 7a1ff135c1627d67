package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastro-app/cadastro/internal/config"
	"github.com/cadastro-app/cadastro/internal/logging"
	"github.com/cadastro-app/cadastro/internal/middleware"
)

func newTestApp(t *testing.T, cache *redis.Client) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{AppEnv: "development", ValidateRateLimit: 100}
	require.NoError(t, Setup(app, Deps{Cfg: cfg, Cache: cache, Logger: logging.Discard()}))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestCPFValidateEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		body   string
		valid  bool
		reason string
	}{
		{`{"cpf":"111.444.777-35"}`, true, ""},
		{`{"cpf":"12345678901"}`, false, "checksum_mismatch"},
		{`{"cpf":"11111111111"}`, false, "repeated_digits"},
		{`{"cpf":"123"}`, false, "wrong_length"},
		{`{"cpf":""}`, true, ""},
		{`{"cpf":null}`, true, ""},
		{`{}`, true, ""},
	}
	for _, tt := range tests {
		status, body := do(t, app, http.MethodPost, "/api/v1/cpf/validate", tt.body, nil)
		require.Equal(t, http.StatusOK, status, tt.body)
		assert.Equal(t, tt.valid, body["valid"], tt.body)
		if tt.reason != "" {
			assert.Equal(t, tt.reason, body["reason"], tt.body)
			assert.Equal(t, "cpfInvalid", body["error"], tt.body)
		}
	}
}

func TestLookupEndpoints(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := do(t, app, http.MethodPost, "/api/v1/cep", `{"cep":"50000-000"}`, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Recife", body["cidade"])

	status, _ = do(t, app, http.MethodPost, "/mock/cep", `{"cep":"123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodGet, "/mock/profissoes", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var profs []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profs))
	assert.Contains(t, profs, "Designer UI/UX")

	status, body = do(t, app, http.MethodGet, "/api/v1/schema", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["sections"], 3)
}

func TestFormLifecycle(t *testing.T) {
	app := newTestApp(t, nil)

	status, created := do(t, app, http.MethodPost, "/api/v1/forms", "", nil)
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)
	token := created["token"].(string)
	auth := map[string]string{middleware.DraftTokenHeader: token}
	base := "/api/v1/forms/" + id

	status, _ = do(t, app, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, app, http.MethodGet, base, "", map[string]string{middleware.DraftTokenHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := do(t, app, http.MethodPatch, base+"/personal", `{"cpf":"52998224726"}`, auth)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)["personal"].(map[string]any)["cpf"].(map[string]any)
	assert.Equal(t, "cpfInvalid", errs["key"])
	assert.Equal(t, "CPF inválido", errs["message"])

	status, _ = do(t, app, http.MethodPost, base+"/submit", "", auth)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = do(t, app, http.MethodPatch, base+"/personal",
		`{"nome":"Maria Silva","nascimento":"01/02/1990","cpf":"529.982.247-25","telefone":"(81) 99999-0000"}`, auth)
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, app, http.MethodPatch, base+"/address",
		`{"cep":"50000-000","rua":"Av. Exemplo, 123","bairro":"Centro","cidade":"Recife","estado":"PE"}`, auth)
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, app, http.MethodPatch, base+"/professional",
		`{"profissao":"Gerente de Produto","empresa":"Acme","salario":"8000,00"}`, auth)
	require.Equal(t, http.StatusOK, status)

	status, body = do(t, app, http.MethodPost, base+"/submit", "", auth)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["submitted_at"])
	assert.NotContains(t, body, "token")

	status, _ = do(t, app, http.MethodPost, base+"/submit", "", auth)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/forms/00000000-0000-0000-0000-000000000000", "", auth)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubmitIsIdempotentWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := newTestApp(t, cache)

	status, created := do(t, app, http.MethodPost, "/api/v1/forms", "", nil)
	require.Equal(t, http.StatusCreated, status)
	base := "/api/v1/forms/" + created["id"].(string)
	auth := map[string]string{middleware.DraftTokenHeader: created["token"].(string)}

	status, _ = do(t, app, http.MethodPost, base+"/submit", "", auth)
	assert.Equal(t, http.StatusBadRequest, status, "submit requires an Idempotency-Key with redis")

	auth[middleware.IdempotencyKeyHeader] = "submit-1"
	first, _ := do(t, app, http.MethodPost, base+"/submit", "", auth)
	second, _ := do(t, app, http.MethodPost, base+"/submit", "", auth)
	assert.Equal(t, http.StatusUnprocessableEntity, first)
	assert.Equal(t, first, second)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, nil)

	status, body := do(t, app, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "disabled", body["status"].(map[string]any)["postgres"])

	do(t, app, http.MethodPost, "/api/v1/cpf/validate", `{"cpf":"12345678901"}`, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `cadastro_cpf_validations_total{verdict="invalid"} 1`)
}

func TestSetupRequiresBackendsOutsideDev(t *testing.T) {
	app := fiber.New()
	err := Setup(app, Deps{Cfg: config.Config{AppEnv: "production"}, Logger: logging.Discard()})
	assert.Error(t, err)
}
