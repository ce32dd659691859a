package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	err := Health(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAircraftReqValidate(t *testing.T) {
	cases := []struct {
		name string
		req  aircraftReq
		ok   bool
	}{
		{"valid", aircraftReq{Model: "Boeing 737", Rows: 30, Columns: 6}, true},
		{"single seat", aircraftReq{Model: "Cessna", Rows: 1, Columns: 1}, true},
		{"max columns", aircraftReq{Model: "Wide", Rows: 10, Columns: 26}, true},
		{"max rows", aircraftReq{Model: "Long", Rows: 200, Columns: 6}, true},
		{"missing model", aircraftReq{Rows: 30, Columns: 6}, false},
		{"blank model", aircraftReq{Model: "   ", Rows: 30, Columns: 6}, false},
		{"zero rows", aircraftReq{Model: "B737", Rows: 0, Columns: 6}, false},
		{"zero columns", aircraftReq{Model: "B737", Rows: 30, Columns: 0}, false},
		{"too many columns", aircraftReq{Model: "B737", Rows: 30, Columns: 27}, false},
		{"too many rows", aircraftReq{Model: "B737", Rows: 201, Columns: 6}, false},
		{"overflowing rows", aircraftReq{Model: "B737", Rows: 1 << 31, Columns: 2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.req.validate()
			if tc.ok {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	e := echo.New()
	newCtx := func(v interface{}) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if v != nil {
			c.Set("user_id", v)
		}
		return c
	}

	id, err := getUserID(newCtx(float64(9))) // JWT claims decode as float64
	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)

	id, err = getUserID(newCtx(uint64(4)))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), id)

	id, err = getUserID(newCtx("17"))
	require.NoError(t, err)
	assert.Equal(t, uint64(17), id)

	_, err = getUserID(newCtx(nil))
	assert.Error(t, err)

	_, err = getUserID(newCtx("not-a-number"))
	assert.Error(t, err)
}

func TestPathID(t *testing.T) {
	e := echo.New()
	newCtx := func(raw string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		return c
	}

	id, ok := pathID(newCtx("12"), "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(12), id)

	_, ok = pathID(newCtx("0"), "id")
	assert.False(t, ok)

	_, ok = pathID(newCtx("abc"), "id")
	assert.False(t, ok)
}
