package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/resource"
	"github.com/zebrands/catalog-api/internal/infrastructure/db/memory"
)

var ctx = context.Background()

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	return ve.Fields
}

func expectMessage(t *testing.T, err error, field, want string) {
	t.Helper()
	fields := fieldErrors(t, err)
	for _, msg := range fields[field] {
		if msg == want {
			return
		}
	}
	t.Fatalf("expected %s message %q, got %+v", field, want, fields)
}

// ---------------------------------------------------------------------------
// User
// ---------------------------------------------------------------------------

func newUserRules() (*UserRules, *memory.UserRepository) {
	repo := memory.NewUserRepository()
	return NewUserRules(New("zebrands.com"), repo, bcrypt.MinCost), repo
}

func TestUserRules_Create_NormalizesEmailAndHashesPassword(t *testing.T) {
	rules, _ := newUserRules()

	u, err := rules.Validate(ctx, domain.UserFields{
		Email:    strPtr("User@ZEBRANDS.COM"),
		Name:     strPtr("User Full Name"),
		Password: strPtr("pass123"),
	}, nil, resource.FullReplace)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if u.Email != "user@zebrands.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.PasswordHash == "" || u.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !u.IsActive || u.IsStaff || u.IsSuperuser {
		t.Fatalf("unexpected flags on new user: %+v", u)
	}
}

func TestUserRules_Create_RejectsForeignDomain(t *testing.T) {
	rules, _ := newUserRules()

	_, err := rules.Validate(ctx, domain.UserFields{
		Email:    strPtr("pedro_rodriguez@another.domain"),
		Name:     strPtr("Pedro"),
		Password: strPtr("password123"),
	}, nil, resource.FullReplace)

	expectMessage(t, err, "email", "Enter a valid zebrands.com email address.")
}

func TestUserRules_Create_RejectsLookalikeDomain(t *testing.T) {
	rules, _ := newUserRules()

	for _, email := range []string{"a@zebrands.com.mx", "a@evilzebrands.com", "a b@zebrands.com", "@zebrands.com"} {
		_, err := rules.Validate(ctx, domain.UserFields{
			Email:    strPtr(email),
			Name:     strPtr("x"),
			Password: strPtr("x"),
		}, nil, resource.FullReplace)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected %q to be rejected, got %v", email, err)
		}
	}
}

func TestUserRules_Create_DistinguishesMissingBlankAndMalformed(t *testing.T) {
	rules, _ := newUserRules()

	_, err := rules.Validate(ctx, domain.UserFields{Name: strPtr("x"), Password: strPtr("x")}, nil, resource.FullReplace)
	expectMessage(t, err, "email", msgRequired)

	_, err = rules.Validate(ctx, domain.UserFields{Email: strPtr(""), Name: strPtr("x"), Password: strPtr("x")}, nil, resource.FullReplace)
	expectMessage(t, err, "email", msgBlank)
}

func TestUserRules_Create_RequiresPassword(t *testing.T) {
	rules, _ := newUserRules()

	_, err := rules.Validate(ctx, domain.UserFields{
		Email: strPtr("test@zebrands.com"),
		Name:  strPtr("x"),
	}, nil, resource.FullReplace)
	expectMessage(t, err, "password", msgRequired)
}

func TestUserRules_PasswordLimitIsInBytes(t *testing.T) {
	rules, repo := newUserRules()

	// 40 characters, 80 bytes.
	_, err := rules.Validate(ctx, domain.UserFields{
		Email:    strPtr("test@zebrands.com"),
		Name:     strPtr("x"),
		Password: strPtr(strings.Repeat("é", 40)),
	}, nil, resource.FullReplace)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	expectMessage(t, err, "password", msgPasswordTooLong)

	u, err := rules.Validate(ctx, domain.UserFields{
		Email:    strPtr("test@zebrands.com"),
		Name:     strPtr("x"),
		Password: strPtr(strings.Repeat("é", 36)),
	}, nil, resource.FullReplace)
	if err != nil {
		t.Fatalf("72-byte password must be accepted: %v", err)
	}
	if u.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}
	if all, _ := repo.FindAll(ctx); len(all) != 0 {
		t.Fatalf("validation must not persist, got %d rows", len(all))
	}
}

func TestUserRules_Create_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	rules, repo := newUserRules()
	_, _ = repo.Insert(ctx, &domain.User{Email: "test@zebrands.com"})

	_, err := rules.Validate(ctx, domain.UserFields{
		Email:    strPtr("TEST@zebrands.com"),
		Name:     strPtr("x"),
		Password: strPtr("x"),
	}, nil, resource.FullReplace)
	expectMessage(t, err, "email", "user with this email already exists.")
}

func TestUserRules_Update_KeepsPasswordWhenAbsent(t *testing.T) {
	rules, repo := newUserRules()
	current, _ := repo.Insert(ctx, &domain.User{Email: "test@zebrands.com", Name: "Old", PasswordHash: "stored-hash", IsActive: true})

	u, err := rules.Validate(ctx, domain.UserFields{
		Email: strPtr("test@zebrands.com"),
		Name:  strPtr("New"),
	}, current, resource.FullReplace)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if u.PasswordHash != "stored-hash" {
		t.Fatalf("expected password hash to be unchanged, got %q", u.PasswordHash)
	}
	if u.Name != "New" || u.ID != current.ID {
		t.Fatalf("unexpected merged user: %+v", u)
	}
}

func TestUserRules_Update_RehashesSuppliedPassword(t *testing.T) {
	rules, repo := newUserRules()
	current, _ := repo.Insert(ctx, &domain.User{Email: "test@zebrands.com", PasswordHash: "stored-hash"})

	u, err := rules.Validate(ctx, domain.UserFields{Password: strPtr("n3w")}, current, resource.PartialUpdate)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("n3w")); err != nil {
		t.Fatalf("expected new password hash: %v", err)
	}
}

func TestUserRules_Update_CanDeactivate(t *testing.T) {
	rules, repo := newUserRules()
	current, _ := repo.Insert(ctx, &domain.User{Email: "test@zebrands.com", IsActive: true})

	u, err := rules.Validate(ctx, domain.UserFields{IsActive: boolPtr(false)}, current, resource.PartialUpdate)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if u.IsActive {
		t.Fatalf("expected user to be deactivated")
	}
}

// ---------------------------------------------------------------------------
// Product
// ---------------------------------------------------------------------------

func newProductRules() (*ProductRules, *memory.ProductRepository) {
	repo := memory.NewProductRepository()
	return NewProductRules(New("zebrands.com"), repo), repo
}

func TestProductRules_Create_Success(t *testing.T) {
	rules, _ := newProductRules()

	p, err := rules.Validate(ctx, domain.ProductFields{
		SKU:   strPtr("sku_0001"),
		Name:  strPtr("Test Name"),
		Price: floatPtr(10.0),
		Brand: strPtr("Test Brand"),
	}, nil, resource.FullReplace)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if p.SKU != "sku_0001" || p.Price != 10.0 || p.Visits != 0 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestProductRules_Full_MissingFieldsReported(t *testing.T) {
	rules, _ := newProductRules()

	_, err := rules.Validate(ctx, domain.ProductFields{
		SKU:   strPtr("new_sku_0001"),
		Price: floatPtr(999.0),
		Brand: strPtr("New Brand"),
	}, &domain.Product{ID: 1, SKU: "sku_0001"}, resource.FullReplace)
	expectMessage(t, err, "name", msgRequired)
}

func TestProductRules_Create_BlankSKU(t *testing.T) {
	rules, _ := newProductRules()

	_, err := rules.Validate(ctx, domain.ProductFields{SKU: strPtr("")}, nil, resource.FullReplace)
	fields := fieldErrors(t, err)
	if fields["sku"][0] != msgBlank {
		t.Fatalf("expected blank sku message, got %+v", fields)
	}
	for _, f := range []string{"name", "price", "brand"} {
		if fields[f][0] != msgRequired {
			t.Fatalf("expected %s to be required, got %+v", f, fields)
		}
	}
}

func TestProductRules_NegativePrice(t *testing.T) {
	rules, _ := newProductRules()

	_, err := rules.Validate(ctx, domain.ProductFields{Price: floatPtr(-1)}, &domain.Product{ID: 1}, resource.PartialUpdate)
	expectMessage(t, err, "price", "Ensure this value is greater than or equal to 0.")
}

func TestProductRules_Partial_KeepsOmittedFieldsAndVisits(t *testing.T) {
	rules, _ := newProductRules()
	current := &domain.Product{ID: 1, SKU: "sku_0001", Name: "Test Name", Price: 10, Brand: "Test Brand", Visits: 7}

	p, err := rules.Validate(ctx, domain.ProductFields{Name: strPtr("New Name")}, current, resource.PartialUpdate)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	want := domain.Product{ID: 1, SKU: "sku_0001", Name: "New Name", Price: 10, Brand: "Test Brand", Visits: 7}
	if *p != want {
		t.Fatalf("expected %+v, got %+v", want, *p)
	}
	if current.Name != "Test Name" {
		t.Fatalf("current row must not be mutated")
	}
}

func TestProductRules_Partial_EmptyRejected(t *testing.T) {
	rules, _ := newProductRules()

	_, err := rules.Validate(ctx, domain.ProductFields{}, &domain.Product{ID: 1}, resource.PartialUpdate)
	expectMessage(t, err, domain.NonFieldErrors, msgNoFields)
}

func TestProductRules_SKUUniqueExcludingOwnRow(t *testing.T) {
	rules, repo := newProductRules()
	own, _ := repo.Insert(ctx, &domain.Product{SKU: "sku_0001"})
	_, _ = repo.Insert(ctx, &domain.Product{SKU: "sku_0002"})

	if _, err := rules.Validate(ctx, domain.ProductFields{SKU: strPtr("sku_0001")}, own, resource.PartialUpdate); err != nil {
		t.Fatalf("own sku must be accepted, got %v", err)
	}

	_, err := rules.Validate(ctx, domain.ProductFields{SKU: strPtr("sku_0002")}, own, resource.PartialUpdate)
	expectMessage(t, err, "sku", "product with this sku already exists.")

	_, err = rules.Validate(ctx, domain.ProductFields{
		SKU: strPtr("sku_0001"), Name: strPtr("n"), Price: floatPtr(1), Brand: strPtr("b"),
	}, nil, resource.FullReplace)
	expectMessage(t, err, "sku", "product with this sku already exists.")
}

// ---------------------------------------------------------------------------
// Brand
// ---------------------------------------------------------------------------

func newBrandRules() (*BrandRules, *memory.BrandRepository) {
	repo := memory.NewBrandRepository()
	return NewBrandRules(New("zebrands.com"), repo), repo
}

func TestBrandRules_Create_RequiresNameAndCategory(t *testing.T) {
	rules, _ := newBrandRules()

	_, err := rules.Validate(ctx, domain.BrandFields{}, nil, resource.FullReplace)
	expectMessage(t, err, "name", msgRequired)
	expectMessage(t, err, "category", msgRequired)
}

func TestBrandRules_Partial_CategoryOptional(t *testing.T) {
	rules, _ := newBrandRules()
	current := &domain.Brand{ID: 1, Name: "Test Name", Category: "Test Category"}

	b, err := rules.Validate(ctx, domain.BrandFields{Name: strPtr("Renamed")}, current, resource.PartialUpdate)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if b.Name != "Renamed" || b.Category != "Test Category" {
		t.Fatalf("unexpected brand: %+v", b)
	}
}

func TestBrandRules_NameUnique(t *testing.T) {
	rules, repo := newBrandRules()
	_, _ = repo.Insert(ctx, &domain.Brand{Name: "Test Name", Category: "Test Category"})

	_, err := rules.Validate(ctx, domain.BrandFields{
		Name:     strPtr("Test Name"),
		Category: strPtr("Test Category"),
	}, nil, resource.FullReplace)
	expectMessage(t, err, "name", "brand with this name already exists.")
}

func TestBrandRules_NameTooLong(t *testing.T) {
	rules, _ := newBrandRules()
	long := make([]byte, 151)
	for i := range long {
		long[i] = 'a'
	}

	_, err := rules.Validate(ctx, domain.BrandFields{Name: strPtr(string(long))}, &domain.Brand{ID: 1}, resource.PartialUpdate)
	expectMessage(t, err, "name", "Ensure this field has no more than 150 characters.")
}
