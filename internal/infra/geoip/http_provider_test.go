package geoip

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"universidad-sunshine/internal/domain/model"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestHTTPProvider_SupportedCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country":"MX","country_name":"México"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", testLogger())
	c, err := p.Detect(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if c.Code != "MX" || c.Flag != "🇲🇽" {
		t.Fatalf("got %+v, want registry MX", c)
	}
}

func TestHTTPProvider_RequestPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"country":"MX","country_name":"México"}`))
	}))
	defer srv.Close()

	// Trailing slash is normalized in the constructor.
	p := NewHTTPProvider(srv.URL, testLogger())

	if _, err := p.Detect(context.Background(), "1.2.3.4"); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if gotPath != "/1.2.3.4/json/" {
		t.Fatalf("path = %q, want /1.2.3.4/json/", gotPath)
	}

	// Without an IP the endpoint resolves the caller's own address.
	if _, err := p.Detect(context.Background(), ""); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if gotPath != "/json/" {
		t.Fatalf("path = %q, want /json/", gotPath)
	}
}

func TestHTTPProvider_UnsupportedCountryBecomesAdHoc(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"country":"BR","country_name":"Brasil"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", testLogger())
	c, err := p.Detect(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if c.Code != "BR" || c.Name != "Brasil" || c.Flag != "🌎" {
		t.Fatalf("got %+v, want ad-hoc BR with placeholder flag", c)
	}
	if model.IsSupportedCountry(c.Code) {
		t.Fatal("BR must stay outside the registry")
	}
}

func TestHTTPProvider_Errors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		p := NewHTTPProvider(srv.URL+"/", testLogger())
		if _, err := p.Detect(context.Background(), "1.2.3.4"); err == nil {
			t.Fatal("expected error on 429")
		}
	})

	t.Run("empty country", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		p := NewHTTPProvider(srv.URL+"/", testLogger())
		if _, err := p.Detect(context.Background(), "1.2.3.4"); err == nil {
			t.Fatal("expected error on empty payload")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		p := NewHTTPProvider("http://127.0.0.1:1/", testLogger())
		if _, err := p.Detect(context.Background(), "1.2.3.4"); err == nil {
			t.Fatal("expected dial error")
		}
	})
}

type stubDetector struct {
	c   model.Country
	err error
}

func (s stubDetector) Detect(context.Context, string) (model.Country, error) {
	return s.c, s.err
}

func TestMultiProvider_FallsThrough(t *testing.T) {
	mx, _ := model.FindCountry("MX")
	m := NewMultiProvider(testLogger(),
		stubDetector{err: errors.New("down")},
		stubDetector{c: mx},
	)
	c, err := m.Detect(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if c.Code != "MX" {
		t.Fatalf("got %s", c.Code)
	}
}

func TestMultiProvider_AllFail(t *testing.T) {
	m := NewMultiProvider(testLogger(),
		stubDetector{err: errors.New("one")},
		stubDetector{err: errors.New("two")},
	)
	if _, err := m.Detect(context.Background(), "1.2.3.4"); err == nil || err.Error() != "two" {
		t.Fatalf("want last error, got %v", err)
	}
}
