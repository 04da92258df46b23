package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront-cart/internal/catalog"
	"github.com/Gunvolt24/storefront-cart/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func newClient(t *testing.T, h http.HandlerFunc, retries uint64) (*catalog.Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := catalog.NewClient(catalog.Options{
		BaseURL:         srv.URL + "/",
		Timeout:         time.Second,
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
	}, nopLogger{})
	return c, &calls
}

func TestProduct_OK_MongoIDAndObjectImages(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"abc","name":"Tee","price":19.9,"stock":4,
			"images":[{"public_id":"x","url":"https://img/1.jpg"},{"url":"https://img/2.jpg"}]}}`))
	}, 0)

	p, err := c.Product(context.Background(), "abc")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, "Tee", p.Name)
	assert.InDelta(t, 19.9, p.Price, 1e-9)
	assert.Equal(t, 4, p.Stock)
	assert.Equal(t, "https://img/1.jpg", p.Image)
}

func TestProduct_OK_PlainIDAndStringImages(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"p2","name":"Cap","price":5,"stock":-3,"images":["/a.png"]}}`))
	}, 0)

	p, err := c.Product(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", p.ID)
	assert.Equal(t, "/a.png", p.Image)
	assert.Zero(t, p.Stock, "negative stock is clamped")
}

func TestProduct_HugeStockClampedToCeiling(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"bulk","name":"Nails","price":0.1,"stock":9223372036854775807}}`))
	}, 0)

	p, err := c.Product(context.Background(), "bulk")
	require.NoError(t, err)
	assert.Equal(t, domain.MaxStock, p.Stock)
}

func TestProduct_NotFound_NilNil(t *testing.T) {
	c, calls := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"success":false}`, http.StatusNotFound)
	}, 3)

	p, err := c.Product(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

// 5xx ретраится и в итоге проходит
func TestProduct_ServerError_RetriedThenOK(t *testing.T) {
	var n int32
	c, calls := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&n, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"p1","name":"X","price":1,"stock":1}}`))
	}, 2)

	p, err := c.Product(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.EqualValues(t, 3, atomic.LoadInt32(calls))
}

func TestProduct_ServerError_ExhaustsRetries(t *testing.T) {
	c, calls := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 2)

	_, err := c.Product(context.Background(), "p1")
	require.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(calls))
}

// 4xx (кроме 404) не ретраится
func TestProduct_ClientError_Permanent(t *testing.T) {
	c, calls := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, 5)

	_, err := c.Product(context.Background(), "p1")
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestProduct_BadPayload_Permanent(t *testing.T) {
	cases := map[string]string{
		"not json":      `<html>`,
		"success false": `{"success":false,"data":null}`,
		"no id":         `{"success":true,"data":{"name":"X"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, calls := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}, 3)

			_, err := c.Product(context.Background(), "p1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, catalog.ErrUnexpectedResponse), "got %v", err)
			assert.EqualValues(t, 1, atomic.LoadInt32(calls))
		})
	}
}

func TestProduct_ContextCanceled(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Product(ctx, "p1")
	require.Error(t, err)
}
