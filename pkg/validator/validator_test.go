package validator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/barstock/pkg/validator"
)

type sampleStruct struct {
	Name  string `json:"name" validate:"required,notblank,max=10"`
	Kind  string `json:"kind" validate:"required,oneof=a b"`
	Count pkgvalidator.Number `json:"count" validate:"required,jsonnumber,whole,nonnegative"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{Name: "hello", Kind: "a", Count: "3"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    sampleStruct
		field string
		want  string
	}{
		{"required uses json name", sampleStruct{Kind: "a", Count: "1"}, "name", "This field is required"},
		{"blank name", sampleStruct{Name: "   ", Kind: "a", Count: "1"}, "name", "This field must not be blank"},
		{"max", sampleStruct{Name: "12345678901", Kind: "a", Count: "1"}, "name", "Maximum length is 10"},
		{"oneof", sampleStruct{Name: "x", Kind: "c", Count: "1"}, "kind", "Must be one of: a, b"},
		{"not a number", sampleStruct{Name: "x", Kind: "a", Count: "abc"}, "count", "Must be a numeric value"},
		{"fraction", sampleStruct{Name: "x", Kind: "a", Count: "1.5"}, "count", "Must be a whole number"},
		{"negative", sampleStruct{Name: "x", Kind: "a", Count: "-1"}, "count", "Must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgvalidator.Validate(&tt.in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			m := pkgvalidator.FormatValidationErrors(err)
			if m[tt.field] != tt.want {
				t.Errorf("message for %s = %q, want %q (all: %v)", tt.field, m[tt.field], tt.want, m)
			}
		})
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

func TestFormatValidationErrorsWith(t *testing.T) {
	err := pkgvalidator.Validate(&sampleStruct{Name: "", Kind: "z", Count: "-4"})
	m := pkgvalidator.FormatValidationErrorsWith(err, map[string]string{
		"name.required":     "Name please",
		"count.nonnegative": "No debts",
	})
	want := map[string]string{
		"name":  "Name please",
		"kind":  "Must be one of: a, b",
		"count": "No debts",
	}
	for field, msg := range want {
		if m[field] != msg {
			t.Errorf("%s = %q, want %q", field, m[field], msg)
		}
	}
}

func TestRegisterStringValidation(t *testing.T) {
	err := pkgvalidator.RegisterStringValidation("shouty", func(s string) bool {
		return s == strings.ToUpper(s)
	}, "Must be upper case")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	type shout struct {
		Word string `json:"word" validate:"shouty"`
	}
	if err := pkgvalidator.Validate(&shout{Word: "HEY"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&shout{Word: "hey"}))
	if m["word"] != "Must be upper case" {
		t.Errorf("unexpected message: %v", m)
	}
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want pkgvalidator.Number
	}{
		{`{"count": 5}`, "5"},
		{`{"count": "5"}`, "5"},
		{`{"count": " 7 "}`, "7"},
		{`{"count": -2.5}`, "-2.5"},
		{`{"count": null}`, ""},
		{`{}`, ""},
		{`{"count": true}`, "true"},
		{`{"count": [1]}`, "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var s struct {
				Count pkgvalidator.Number `json:"count"`
			}
			if err := json.Unmarshal([]byte(tt.body), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if s.Count != tt.want {
				t.Errorf("got %q, want %q", s.Count, tt.want)
			}
		})
	}
}

func TestNumber_Int64(t *testing.T) {
	tests := []struct {
		in      pkgvalidator.Number
		want    int64
		wantErr error
	}{
		{"12", 12, nil},
		{"-3", -3, nil},
		{"+4", 4, nil},
		{"5.0", 5, nil},
		{"1e3", 1000, nil},
		{"2.5", 0, pkgvalidator.ErrNotWhole},
		{"1e30", 0, pkgvalidator.ErrNotWhole},
		{"NaN", 0, pkgvalidator.ErrNotNumber},
		{"Inf", 0, pkgvalidator.ErrNotNumber},
		{"abc", 0, pkgvalidator.ErrNotNumber},
		{"", 0, pkgvalidator.ErrNotNumber},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := tt.in.Int64()
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIntNumber(t *testing.T) {
	if got := pkgvalidator.IntNumber(-42); got != "-42" {
		t.Errorf("IntNumber(-42) = %q", got)
	}
}

type decodeTarget struct {
	Name string `json:"name"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"gin"}`))
		rec := httptest.NewRecorder()
		got, ok := pkgvalidator.DecodeJSON[decodeTarget](rec, req)
		if !ok {
			t.Fatalf("expected ok, got status %d", rec.Code)
		}
		if got.Name != "gin" {
			t.Errorf("Name = %q", got.Name)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		rec := httptest.NewRecorder()
		if _, ok := pkgvalidator.DecodeJSON[decodeTarget](rec, req); ok {
			t.Fatal("expected failure")
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid JSON") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("body over limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
		rec := httptest.NewRecorder()
		req.Body = http.MaxBytesReader(rec, req.Body, 16)
		if _, ok := pkgvalidator.DecodeJSON[decodeTarget](rec, req); ok {
			t.Fatal("expected failure")
		}
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rec.Code)
		}
	})
}
