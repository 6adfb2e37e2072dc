package validation

import (
	"net/url"
	"testing"

	"github.com/hypernova-labs/dashboard-service/internal/models"
)

func TestParseInvoice(t *testing.T) {
	v := New()

	t.Run("valid input converts amount to cents", func(t *testing.T) {
		form := url.Values{}
		form.Set("customerId", "c1")
		form.Set("amount", "42.50")
		form.Set("status", "pending")

		input, fieldErrors := v.ParseInvoice(form)
		if fieldErrors != nil {
			t.Fatalf("expected no errors, got %v", fieldErrors)
		}
		if input.CustomerID != "c1" {
			t.Errorf("unexpected customer id: %q", input.CustomerID)
		}
		if input.AmountCents != 4250 {
			t.Errorf("expected 4250 cents, got %d", input.AmountCents)
		}
		if input.Status != models.InvoiceStatusPending {
			t.Errorf("unexpected status: %q", input.Status)
		}
	})

	t.Run("whole amounts", func(t *testing.T) {
		form := url.Values{}
		form.Set("customerId", "c1")
		form.Set("amount", "100")
		form.Set("status", "paid")

		input, fieldErrors := v.ParseInvoice(form)
		if fieldErrors != nil {
			t.Fatalf("expected no errors, got %v", fieldErrors)
		}
		if input.AmountCents != 10000 {
			t.Errorf("expected 10000 cents, got %d", input.AmountCents)
		}
	})

	invalidAmounts := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"non numeric", "abc"},
		{"empty", ""},
		{"below one cent", "0.004"},
	}

	for _, tc := range invalidAmounts {
		t.Run("amount "+tc.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("customerId", "c1")
			form.Set("amount", tc.amount)
			form.Set("status", "pending")

			input, fieldErrors := v.ParseInvoice(form)
			if input != nil {
				t.Fatal("expected validation to fail")
			}
			messages := fieldErrors["amount"]
			if len(messages) == 0 || messages[0] != MsgAmountTooLow {
				t.Errorf("expected amount message %q, got %v", MsgAmountTooLow, messages)
			}
		})
	}

	for _, status := range []string{"draft", "PAID", "unknown", ""} {
		t.Run("status "+status, func(t *testing.T) {
			form := url.Values{}
			form.Set("customerId", "c1")
			form.Set("amount", "10")
			form.Set("status", status)

			input, fieldErrors := v.ParseInvoice(form)
			if input != nil {
				t.Fatal("expected validation to fail")
			}
			messages := fieldErrors["status"]
			if len(messages) == 0 || messages[0] != MsgSelectStatus {
				t.Errorf("expected status message %q, got %v", MsgSelectStatus, messages)
			}
		})
	}

	t.Run("collects every violation", func(t *testing.T) {
		_, fieldErrors := v.ParseInvoice(url.Values{})
		if fieldErrors == nil {
			t.Fatal("expected validation to fail")
		}
		for _, field := range []string{"customerId", "amount", "status"} {
			if len(fieldErrors[field]) == 0 {
				t.Errorf("expected an error for field %q, got %v", field, fieldErrors)
			}
		}
	})

	t.Run("missing customer", func(t *testing.T) {
		form := url.Values{}
		form.Set("amount", "10")
		form.Set("status", "paid")

		_, fieldErrors := v.ParseInvoice(form)
		messages := fieldErrors["customerId"]
		if len(messages) == 0 || messages[0] != MsgSelectCustomer {
			t.Errorf("expected customer message %q, got %v", MsgSelectCustomer, messages)
		}
	})
}

func TestParseCustomer(t *testing.T) {
	v := New()

	t.Run("valid input", func(t *testing.T) {
		form := url.Values{}
		form.Set("name", "Jane")
		form.Set("email", "jane@x.com")

		input, fieldErrors := v.ParseCustomer(form)
		if fieldErrors != nil {
			t.Fatalf("expected no errors, got %v", fieldErrors)
		}
		if input.Name != "Jane" || input.Email != "jane@x.com" {
			t.Errorf("unexpected input: %+v", input)
		}
	})

	t.Run("name absent", func(t *testing.T) {
		form := url.Values{}
		form.Set("email", "jane@x.com")

		_, fieldErrors := v.ParseCustomer(form)
		messages := fieldErrors["name"]
		if len(messages) == 0 || messages[0] != MsgNameMissing {
			t.Errorf("expected %q, got %v", MsgNameMissing, messages)
		}
	})

	t.Run("name submitted empty", func(t *testing.T) {
		form := url.Values{}
		form.Set("name", "   ")
		form.Set("email", "jane@x.com")

		_, fieldErrors := v.ParseCustomer(form)
		messages := fieldErrors["name"]
		if len(messages) == 0 || messages[0] != MsgNameEmpty {
			t.Errorf("expected %q, got %v", MsgNameEmpty, messages)
		}
	})

	t.Run("email absent", func(t *testing.T) {
		form := url.Values{}
		form.Set("name", "Jane")

		_, fieldErrors := v.ParseCustomer(form)
		messages := fieldErrors["email"]
		if len(messages) == 0 || messages[0] != MsgEmailMissing {
			t.Errorf("expected %q, got %v", MsgEmailMissing, messages)
		}
	})

	for _, email := range []string{"not-an-email", "jane@", "@x.com", "jane x@x.com"} {
		t.Run("email invalid "+email, func(t *testing.T) {
			form := url.Values{}
			form.Set("name", "Jane")
			form.Set("email", email)

			input, fieldErrors := v.ParseCustomer(form)
			if input != nil {
				t.Fatal("expected validation to fail")
			}
			messages := fieldErrors["email"]
			if len(messages) == 0 || messages[0] != MsgEmailInvalid {
				t.Errorf("expected %q, got %v", MsgEmailInvalid, messages)
			}
		})
	}

	t.Run("collects every violation", func(t *testing.T) {
		_, fieldErrors := v.ParseCustomer(url.Values{})
		if len(fieldErrors["name"]) == 0 || len(fieldErrors["email"]) == 0 {
			t.Errorf("expected errors for name and email, got %v", fieldErrors)
		}
	})
}
