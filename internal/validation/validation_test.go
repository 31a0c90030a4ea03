package validation_test

import (
	"testing"

	"github.com/lojaweb/catalog/internal/domain/product"
	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/validation"
)

func fields(errs validation.Errors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name  string
		in    product.Input
		want  []string
		rules []string
	}{
		{
			name: "valid",
			in:   product.Input{Description: "Mouse", Price: 10, Brand: "X"},
			want: []string{},
		},
		{
			name:  "missing_description_only",
			in:    product.Input{Description: "", Price: 10, Brand: "X"},
			want:  []string{"descricao"},
			rules: []string{"required"},
		},
		{
			name:  "all_missing_in_declaration_order",
			in:    product.Input{},
			want:  []string{"descricao", "valor", "marca"},
			rules: []string{"required", "required", "required"},
		},
		{
			name:  "negative_price",
			in:    product.Input{Description: "Mouse", Price: -1, Brand: "X"},
			want:  []string{"valor"},
			rules: []string{"gt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.ValidateProduct(tt.in)

			if got := fields(errs); !equal(got, tt.want) {
				t.Fatalf("fields = %v, want %v", got, tt.want)
			}

			for i, rule := range tt.rules {
				if errs[i].Rule != rule {
					t.Fatalf("errs[%d].rule = %q, want %q", i, errs[i].Rule, rule)
				}
				if errs[i].Message == "" {
					t.Fatalf("errs[%d] has no message", i)
				}
			}
		})
	}
}

func TestValidateProduct_Idempotent(t *testing.T) {
	in := product.Input{Price: 10}

	first := validation.ValidateProduct(in)
	second := validation.ValidateProduct(in)

	if !equal(fields(first), fields(second)) {
		t.Fatalf("results differ: %v vs %v", first, second)
	}
}

func TestValidateRegistration(t *testing.T) {
	errs := validation.ValidateRegistration(user.RegisterRequest{})

	want := []string{"nome", "email", "login", "senha"}
	if got := fields(errs); !equal(got, want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}

	errs = validation.ValidateRegistration(user.RegisterRequest{
		Name: "Ana", Email: "not-an-email", Login: "ana", Password: "pw",
	})
	if len(errs) != 1 || errs[0].Field != "email" || errs[0].Rule != "email" {
		t.Fatalf("unexpected result: %+v", errs)
	}

	errs = validation.ValidateRegistration(user.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Login: "ana", Password: "pw",
	})
	if len(errs) != 0 {
		t.Fatalf("expected valid registration, got %+v", errs)
	}
}

func TestValidateLogin(t *testing.T) {
	errs := validation.ValidateLogin(user.LoginRequest{Login: "ana"})

	if got := fields(errs); !equal(got, []string{"senha"}) {
		t.Fatalf("fields = %v", got)
	}

	if errs.Error() == "" {
		t.Fatalf("expected error text")
	}
}
