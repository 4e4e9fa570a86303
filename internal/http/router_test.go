package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"finbook/internal/auth"
	"finbook/internal/config"
	"finbook/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	users := auth.NewMemStore()
	svc := &ledger.Service{Store: ledger.NewMemStore()}
	sessions := auth.NewSessions("test-secret")

	srv := httptest.NewServer(NewRouter(config.Config{}, users, svc, sessions))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	return resp
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func register(t *testing.T, client *http.Client, base, name, email, password string) *http.Response {
	t.Helper()
	return postForm(t, client, base+"/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
}

func login(t *testing.T, client *http.Client, base, email, password string) *http.Response {
	t.Helper()
	return postForm(t, client, base+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func TestDashboardRequiresLogin(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// The redirect target shows the flash message.
	page, err := client.Get(srv.URL + "/login")
	require.NoError(t, err)
	assert.Contains(t, readBody(t, page), "Please log in to access this page.")
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	srv, client := newTestServer(t)

	resp := register(t, client, srv.URL, "Ada", "ada@x", "pw1")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()

	page, err := client.Get(srv.URL + "/login")
	require.NoError(t, err)
	assert.Contains(t, readBody(t, page), "Registration successful! Please login.")

	// Wrong password re-renders with the ambiguous flash.
	resp = login(t, client, srv.URL, "ada@x", "pw2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid email or password")

	resp = login(t, client, srv.URL, "ada@x", "pw1")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()

	dash, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, dash.StatusCode)
	assert.Contains(t, readBody(t, dash), "Ada")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "Ada", "ada@x", "pw").Body.Close()

	resp := register(t, client, srv.URL, "Ada2", "ada@x", "pw")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Email already registered")
}

func TestTransactionFlow(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "Ada", "ada@x", "pw").Body.Close()
	login(t, client, srv.URL, "ada@x", "pw").Body.Close()

	for _, body := range []string{
		`{"direction":"deposit","amount":"100.00","date":"2024-01-01"}`,
		`{"direction":"withdraw","amount":"30.00","date":"2024-01-02","description":"rent"}`,
		`{"direction":"deposit","amount":50.00,"date":"2024-01-02"}`,
	} {
		resp := postJSON(t, client, srv.URL+"/add_transaction", body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Success     bool   `json:"success"`
			Message     string `json:"message"`
			Transaction struct {
				ID     uint64 `json:"id"`
				Amount string `json:"amount"`
			} `json:"transaction"`
		}
		decodeBody(t, resp, &out)
		assert.True(t, out.Success)
		assert.NotZero(t, out.Transaction.ID)
	}

	resp, err := client.Get(srv.URL + "/api/balance")
	require.NoError(t, err)
	var balance struct {
		Balance string `json:"balance"`
		Count   int    `json:"transaction_count"`
	}
	decodeBody(t, resp, &balance)
	assert.Equal(t, "120.00", balance.Balance)
	assert.Equal(t, 3, balance.Count)

	resp, err = client.Get(srv.URL + "/api/transactions/chart_data")
	require.NoError(t, err)
	var chart struct {
		Labels         []string `json:"labels"`
		Data           []string `json:"data"`
		CumulativeData []string `json:"cumulative_data"`
	}
	decodeBody(t, resp, &chart)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-02"}, chart.Labels)
	assert.Equal(t, []string{"100.00", "70.00", "120.00"}, chart.Data)
	assert.Equal(t, chart.Data, chart.CumulativeData)
}

func TestAddTransactionValidation(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "Ada", "ada@x", "pw").Body.Close()
	login(t, client, srv.URL, "ada@x", "pw").Body.Close()

	resp := postJSON(t, client, srv.URL+"/add_transaction",
		`{"direction":"withdraw","amount":"-5","date":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &out)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Message)

	// Balance unchanged.
	bresp, err := client.Get(srv.URL + "/api/balance")
	require.NoError(t, err)
	var balance struct {
		Balance string `json:"balance"`
		Count   int    `json:"transaction_count"`
	}
	decodeBody(t, bresp, &balance)
	assert.Equal(t, "0.00", balance.Balance)
	assert.Zero(t, balance.Count)
}

func TestCrossUserIsolationOverHTTP(t *testing.T) {
	srv, clientA := newTestServer(t)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	clientB := &http.Client{Jar: jar, CheckRedirect: clientA.CheckRedirect}

	register(t, clientA, srv.URL, "Ada", "ada@x", "pw").Body.Close()
	login(t, clientA, srv.URL, "ada@x", "pw").Body.Close()
	register(t, clientB, srv.URL, "Bob", "bob@x", "pw").Body.Close()
	login(t, clientB, srv.URL, "bob@x", "pw").Body.Close()

	postJSON(t, clientA, srv.URL+"/add_transaction",
		`{"direction":"deposit","amount":"10","date":"2024-01-01"}`).Body.Close()
	postJSON(t, clientB, srv.URL+"/add_transaction",
		`{"direction":"deposit","amount":"10","date":"2024-01-01"}`).Body.Close()

	for _, c := range []*http.Client{clientA, clientB} {
		resp, err := c.Get(srv.URL + "/api/balance")
		require.NoError(t, err)
		var balance struct {
			Balance string `json:"balance"`
			Count   int    `json:"transaction_count"`
		}
		decodeBody(t, resp, &balance)
		assert.Equal(t, "10.00", balance.Balance)
		assert.Equal(t, 1, balance.Count)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "Ada", "ada@x", "pw").Body.Close()
	login(t, client, srv.URL, "ada@x", "pw").Body.Close()

	resp, err := client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestTamperedSessionRejected(t *testing.T) {
	srv, client := newTestServer(t)

	register(t, client, srv.URL, "Ada", "ada@x", "pw").Body.Close()
	login(t, client, srv.URL, "ada@x", "pw").Body.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == auth.SessionCookie {
			c.Value += "tampered"
			client.Jar.SetCookies(u, []*http.Cookie{c})
		}
	}

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHealth(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))
}
