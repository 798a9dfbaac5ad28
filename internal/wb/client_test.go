package wb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(srvURL string) *Client {
	c := NewClient(Settings{
		Currency:     "byn",
		Dest:         "-59208",
		SPP:          30,
		PriceDivider: 100,
		Timeout:      2 * time.Second,
	})
	c.baseURL = srvURL
	return c
}

func TestClientPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("nm"); got != "172638392" {
			t.Errorf("nm query param: %q", got)
		}
		if got := r.URL.Query().Get("curr"); got != "byn" {
			t.Errorf("curr query param: %q", got)
		}
		_, _ = w.Write([]byte(`{"data":{"products":[{"name":"Кроссовки","sizes":[{"price":{"product":5500,"logistics":200,"return":100}}]}]}}`))
	}))
	defer srv.Close()

	info, err := testClient(srv.URL).Price(context.Background(), "172638392")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if info.Total != 58.0 {
		t.Fatalf("total: %v", info.Total)
	}
}

func TestClientPriceUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200 status", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}},
		{"no matching product", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"products":[]}}`))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			if _, err := testClient(srv.URL).Price(context.Background(), "111"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
